package object

import "github.com/iancoleman/orderedmap"

// VariableMap is the insertion-order-preserving name -> Variable binding
// for the single simulated main frame (spec §3 "Variable Map"). Go's
// built-in map does not preserve iteration order, so this wraps
// orderedmap.OrderedMap the way the front-end's deterministic rendering
// requires.
type VariableMap struct {
	om *orderedmap.OrderedMap
}

// NewVariableMap returns an empty VariableMap.
func NewVariableMap() *VariableMap {
	return &VariableMap{om: orderedmap.New()}
}

// Get returns the variable bound to name, if any.
func (m *VariableMap) Get(name string) (*Variable, bool) {
	raw, ok := m.om.Get(name)
	if !ok {
		return nil, false
	}
	v, ok := raw.(*Variable)
	return v, ok
}

// Set binds name to v, preserving the original insertion position on
// update (spec §3: "Insertion order is preserved for deterministic
// rendering").
func (m *VariableMap) Set(name string, v *Variable) {
	m.om.Set(name, v)
}

// Delete removes name from the map, if present.
func (m *VariableMap) Delete(name string) {
	m.om.Delete(name)
}

// Names returns the bound names in insertion order.
func (m *VariableMap) Names() []string {
	return m.om.Keys()
}

// Len returns the number of bound variables.
func (m *VariableMap) Len() int {
	return len(m.om.Keys())
}

// Snapshot returns a deep copy of every bound Variable, in insertion
// order (spec I4).
func (m *VariableMap) Snapshot() []*Variable {
	names := m.om.Keys()
	out := make([]*Variable, 0, len(names))
	for _, n := range names {
		if v, ok := m.Get(n); ok {
			out = append(out, v.Clone())
		}
	}
	return out
}

// Clone returns an independent deep copy of the whole map.
func (m *VariableMap) Clone() *VariableMap {
	out := NewVariableMap()
	for _, n := range m.om.Keys() {
		if v, ok := m.Get(n); ok {
			out.Set(n, v.Clone())
		}
	}
	return out
}

// Heap is the insertion-order-preserving HeapId -> HeapObject store
// (spec §3 "Heap"). Objects are created exclusively by `new T()` and are
// never freed.
type Heap struct {
	om   *orderedmap.OrderedMap
	next int
}

// NewHeap returns an empty Heap.
func NewHeap() *Heap {
	return &Heap{om: orderedmap.New()}
}

// Alloc creates a new HeapObject of the given nominal type with an empty
// field list and returns its id.
func (h *Heap) Alloc(typeName string) string {
	h.next++
	id := heapID(h.next)
	h.om.Set(id, &HeapObject{ID: id, TypeName: typeName})
	return id
}

func heapID(n int) string {
	// "h1", "h2", ... — stable, order-derived, and distinct from variable
	// ids so a Ref's ID namespace never collides across VarRef/HeapRef.
	digits := []byte{}
	if n == 0 {
		digits = []byte{'0'}
	}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return "h" + string(digits)
}

// Get returns the heap object with the given id, if any.
func (h *Heap) Get(id string) (*HeapObject, bool) {
	raw, ok := h.om.Get(id)
	if !ok {
		return nil, false
	}
	obj, ok := raw.(*HeapObject)
	return obj, ok
}

// Put stores obj under its own ID, overwriting any previous value —
// used after mutating fields in place via Get.
func (h *Heap) Put(obj *HeapObject) {
	h.om.Set(obj.ID, obj)
}

// IDs returns heap object ids in allocation order.
func (h *Heap) IDs() []string {
	return h.om.Keys()
}

// Snapshot returns a deep copy of every heap object, in allocation
// order (spec I4).
func (h *Heap) Snapshot() []*HeapObject {
	ids := h.om.Keys()
	out := make([]*HeapObject, 0, len(ids))
	for _, id := range ids {
		if obj, ok := h.Get(id); ok {
			out = append(out, obj.Clone())
		}
	}
	return out
}

// Clone returns an independent deep copy of the whole heap, preserving
// the allocation counter so subsequently-allocated ids never collide
// with ids already visible in the clone.
func (h *Heap) Clone() *Heap {
	out := &Heap{om: orderedmap.New(), next: h.next}
	for _, id := range h.om.Keys() {
		if obj, ok := h.Get(id); ok {
			out.om.Set(id, obj.Clone())
		}
	}
	return out
}
