package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Kaushal171205/Code-Visualizer/compiler"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	v := compiler.New("/bin/true", 0, testLogger())
	return NewManager(v, testLogger())
}

func TestManagerStartAndStep(t *testing.T) {
	m := newTestManager(t)
	id, total, initial, err := m.Start(context.Background(), `int main(){ int x=1; int y=2; }`)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if total != 2 {
		t.Fatalf("got total=%d, want 2", total)
	}
	if initial.StepIndex != 0 {
		t.Errorf("initial.StepIndex = %d, want 0", initial.StepIndex)
	}

	t.Run("StepForward", func(t *testing.T) {
		st, step, tot, atEnd, err := m.StepForward(id)
		if err != nil {
			t.Fatal(err)
		}
		if step != 1 || tot != 2 || !atEnd {
			t.Errorf("got step=%d tot=%d atEnd=%v", step, tot, atEnd)
		}
		if st.StepIndex != 1 {
			t.Errorf("state StepIndex = %d, want 1", st.StepIndex)
		}
	})

	t.Run("StepForwardIdempotentAtEnd", func(t *testing.T) {
		_, step, _, atEnd, err := m.StepForward(id)
		if err != nil {
			t.Fatal(err)
		}
		if step != 1 || !atEnd {
			t.Errorf("expected idempotent step=1 atEnd=true, got step=%d atEnd=%v", step, atEnd)
		}
	})

	t.Run("StepBackwardToStart", func(t *testing.T) {
		_, step, _, atStart, err := m.StepBackward(id)
		if err != nil {
			t.Fatal(err)
		}
		if step != 0 || !atStart {
			t.Errorf("got step=%d atStart=%v, want 0/true", step, atStart)
		}
		_, step, _, atStart, err = m.StepBackward(id)
		if err != nil {
			t.Fatal(err)
		}
		if step != 0 || !atStart {
			t.Errorf("idempotent backward: got step=%d atStart=%v", step, atStart)
		}
	})

	t.Run("GetStateOutOfRange", func(t *testing.T) {
		if _, _, err := m.GetState(id, 99); err == nil {
			t.Error("expected an out-of-range error")
		}
	})

	t.Run("End", func(t *testing.T) {
		if err := m.End(id); err != nil {
			t.Fatal(err)
		}
		if err := m.End(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("second End should be ErrNotFound, got %v", err)
		}
	})
}

func TestManagerUnknownSession(t *testing.T) {
	m := newTestManager(t)
	if _, _, _, _, err := m.StepForward("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if _, _, _, _, err := m.StepBackward("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if _, _, err := m.GetState("nope", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
