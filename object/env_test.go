package object

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVariableMapPreservesInsertionOrder(t *testing.T) {
	m := NewVariableMap()
	m.Set("z", &Variable{Name: "z", Value: IntValue{V: 1}})
	m.Set("a", &Variable{Name: "a", Value: IntValue{V: 2}})
	m.Set("z", &Variable{Name: "z", Value: IntValue{V: 3}}) // update, not re-insert

	want := []string{"z", "a"}
	if got := m.Names(); !cmp.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestVariableMapSnapshotIsIndependent(t *testing.T) {
	m := NewVariableMap()
	m.Set("x", &Variable{Name: "x", Visual: Primitive, Value: IntValue{V: 10}})

	snap := m.Snapshot()
	m.Set("x", &Variable{Name: "x", Visual: Primitive, Value: IntValue{V: 99}})

	if got := snap[0].Value.(IntValue).V; got != 10 {
		t.Errorf("snapshot mutated after later Set: got %d, want 10", got)
	}
}

func TestHeapAllocIDsAreOrderedAndStable(t *testing.T) {
	h := NewHeap()
	id1 := h.Alloc("Node")
	id2 := h.Alloc("Node")

	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %q twice", id1)
	}
	if got := h.IDs(); !cmp.Equal(got, []string{id1, id2}) {
		t.Errorf("IDs() = %v, want [%s %s]", got, id1, id2)
	}
}

func TestHeapSnapshotDeepCopiesFields(t *testing.T) {
	h := NewHeap()
	id := h.Alloc("Node")
	obj, _ := h.Get(id)
	obj.Fields = append(obj.Fields, Field{Name: "data", Value: IntValue{V: 1}, Visual: Primitive})
	h.Put(obj)

	snap := h.Snapshot()

	obj2, _ := h.Get(id)
	obj2.Fields[0].Value = IntValue{V: 999}
	h.Put(obj2)

	if got := snap[0].Fields[0].Value.(IntValue).V; got != 1 {
		t.Errorf("heap snapshot mutated after later field write: got %d, want 1", got)
	}
}
