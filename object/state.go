package object

import "time"

// Frame bundles the variable map and heap that the evaluator, statement
// recognizer, and loop simulator all read and mutate together. It is the
// "vars" argument threaded through spec §4.1-§4.4.
type Frame struct {
	Vars *VariableMap
	Heap *Heap
}

// NewFrame returns an empty Frame.
func NewFrame() *Frame {
	return &Frame{Vars: NewVariableMap(), Heap: NewHeap()}
}

// StackFrame is one entry of State.StackFrames (spec §3 "State"). The
// engine only ever models a single `main` frame, but the shape is kept
// plural so the front-end's stack-frame renderer needs no special case.
type StackFrame struct {
	FrameID     string
	FunctionName string
	Line        int
	Variables   []*Variable
}

// State is one immutable snapshot of program execution (spec §3
// "State (snapshot)"). All slice fields are deep copies, independent of
// the live Frame that produced them (invariant I4).
type State struct {
	StepIndex   int
	CurrentLine int
	SourceLine  string
	Action      *string
	Variables   []*Variable
	StackFrames []StackFrame
	Heap        []*HeapObject
}

// Session is the façade-owned record of one trace (spec §3 "Session").
// The engine itself is stateless between Start calls; Session is what
// the session façade persists.
type Session struct {
	ID          string
	Source      string
	States      []State
	CurrentStep int
	CreatedAt   time.Time
}
