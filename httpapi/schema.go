// Package httpapi implements the HTTP surface of spec §6: five JSON
// endpoints over the session façade, built on net/http.ServeMux the
// same way the teacher's sampleapi demonstrates — no external router.
package httpapi

import "github.com/Kaushal171205/Code-Visualizer/object"

// Variable is the wire shape of object.Variable (spec §6 schema).
type Variable struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Value      interface{} `json:"value"`
	VisualType string      `json:"visualType"`
	PointsTo   *string     `json:"pointsTo,omitempty"`
}

// HeapField is one entry of HeapObject.Fields (spec §6 schema).
type HeapField struct {
	Name       string      `json:"name"`
	Value      interface{} `json:"value"`
	VisualType string      `json:"visualType"`
}

// HeapObject is the wire shape of object.HeapObject (spec §6 schema).
type HeapObject struct {
	ID      string      `json:"id"`
	Type    string      `json:"type"`
	Address string      `json:"address"`
	Fields  []HeapField `json:"fields"`
}

// StackFrame is the wire shape of object.StackFrame (spec §6 schema).
type StackFrame struct {
	ID           string     `json:"id"`
	FunctionName string     `json:"functionName"`
	Line         int        `json:"line"`
	Variables    []Variable `json:"variables"`
}

// State is the bit-exact wire shape of spec §6's State schema.
type State struct {
	Step        int          `json:"step"`
	CurrentLine int          `json:"currentLine"`
	SourceCode  string       `json:"sourceCode"`
	Action      *string      `json:"action"`
	Variables   []Variable   `json:"variables"`
	StackFrames []StackFrame `json:"stackFrames"`
	Heap        []HeapObject `json:"heap"`
}

func refString(r *object.Ref) *string {
	if r == nil {
		return nil
	}
	s := r.ID
	return &s
}

func valueJSON(v object.Value) interface{} {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case object.IntValue:
		return t.V
	case object.FloatValue:
		return t.V
	case object.BoolValue:
		return t.V
	default:
		return v.String()
	}
}

func toVariable(v *object.Variable) Variable {
	out := Variable{
		ID:         v.ID,
		Name:       v.Name,
		Type:       v.DeclType,
		VisualType: string(v.Visual),
		PointsTo:   refString(v.PointsTo),
	}
	if v.Visual == object.Array {
		elems := make([]interface{}, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = valueJSON(e)
		}
		out.Value = elems
	} else {
		out.Value = valueJSON(v.Value)
	}
	return out
}

func toVariables(vs []*object.Variable) []Variable {
	out := make([]Variable, len(vs))
	for i, v := range vs {
		out[i] = toVariable(v)
	}
	return out
}

func toHeapObject(h *object.HeapObject) HeapObject {
	fields := make([]HeapField, len(h.Fields))
	for i, f := range h.Fields {
		fields[i] = HeapField{Name: f.Name, Value: valueJSON(f.Value), VisualType: string(f.Visual)}
	}
	return HeapObject{ID: h.ID, Type: h.TypeName, Address: h.ID, Fields: fields}
}

func toHeap(hs []*object.HeapObject) []HeapObject {
	out := make([]HeapObject, len(hs))
	for i, h := range hs {
		out[i] = toHeapObject(h)
	}
	return out
}

func toStackFrames(fs []object.StackFrame) []StackFrame {
	out := make([]StackFrame, len(fs))
	for i, f := range fs {
		out[i] = StackFrame{ID: f.FrameID, FunctionName: f.FunctionName, Line: f.Line, Variables: toVariables(f.Variables)}
	}
	return out
}

// ToState converts an engine-internal State into its wire shape.
func ToState(s object.State) State {
	return State{
		Step:        s.StepIndex,
		CurrentLine: s.CurrentLine,
		SourceCode:  s.SourceLine,
		Action:      s.Action,
		Variables:   toVariables(s.Variables),
		StackFrames: toStackFrames(s.StackFrames),
		Heap:        toHeap(s.Heap),
	}
}
