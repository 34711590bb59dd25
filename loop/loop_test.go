package loop

import (
	"testing"

	"github.com/Kaushal171205/Code-Visualizer/object"
)

func TestDiscoverMatchesBraces(t *testing.T) {
	lines := []string{
		"int main() {",
		"  int arr[5] = {1,2,3,4,5};",
		"  for (int i = 0; i < 5; i++) {",
		"    arr[i] = arr[i] * 2;",
		"  }",
		"}",
	}
	headers := Discover(lines)
	if len(headers) != 1 {
		t.Fatalf("expected 1 header, got %d", len(headers))
	}
	if headers[0].StartLine != 2 || headers[0].EndLine != 4 {
		t.Errorf("got start=%d end=%d, want start=2 end=4", headers[0].StartLine, headers[0].EndLine)
	}
}

func TestForBoundsLiteral(t *testing.T) {
	frame := object.NewFrame()
	h := Header{HeaderRaw: "for (int i = 0; i < 5; i++) {"}
	ivar, start, end, op, step, iters, ok := ForBounds(h, frame)
	if !ok {
		t.Fatal("expected header to parse")
	}
	if ivar != "i" || start != 0 || end != 5 || op != "<" || step != 1 || iters != 5 {
		t.Errorf("got ivar=%s start=%d end=%d op=%s step=%d iters=%d", ivar, start, end, op, step, iters)
	}
}

func TestForBoundsVariable(t *testing.T) {
	frame := object.NewFrame()
	frame.Vars.Set("n", &object.Variable{Name: "n", Visual: object.Primitive, Value: object.IntValue{V: 4}})
	h := Header{HeaderRaw: "for (int i = 0; i < n; i++) {"}
	_, _, end, _, _, iters, ok := ForBounds(h, frame)
	if !ok || end != 4 || iters != 4 {
		t.Errorf("got end=%d iters=%d, want end=4 iters=4", end, iters)
	}
}

func TestIterationClamp(t *testing.T) {
	frame := object.NewFrame()
	h := Header{HeaderRaw: "for (int i = 0; i < 1000; i++) {"}
	_, _, _, _, _, iters, ok := ForBounds(h, frame)
	if !ok || iters != MaxIterations {
		t.Errorf("got iters=%d, want clamp to %d", iters, MaxIterations)
	}
}

func TestSubstituteInductionVar(t *testing.T) {
	got := SubstituteInductionVar("arr[i] = arr[i] * 2;", "i", 3)
	want := "arr[3] = arr[3] * 2;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIfCondition(t *testing.T) {
	cond, ok := IfCondition("if (i%2==0) {")
	if !ok || cond != "i%2==0" {
		t.Errorf("got cond=%q ok=%v, want i%%2==0/true", cond, ok)
	}
	if _, ok := IfCondition("int x = 5;"); ok {
		t.Error("non-if line should not match")
	}
}
