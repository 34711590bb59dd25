// Package trace implements the Trace Driver of spec §4.4-§4.5: the
// three-pass algorithm that turns a flat sequence of statements into an
// ordered []object.State, and the pure, dependency-free Engine that the
// session façade wraps.
package trace

import (
	"fmt"
	"strings"

	"github.com/Kaushal171205/Code-Visualizer/evalcond"
	"github.com/Kaushal171205/Code-Visualizer/loop"
	"github.com/Kaushal171205/Code-Visualizer/object"
	"github.com/Kaushal171205/Code-Visualizer/stmt"
)

// Engine is the stateless trace engine (spec §3 "Session": "the engine
// is stateless between start calls"). A single Engine is safe to reuse
// across Run calls; it holds no mutable state of its own.
type Engine struct{}

// New returns a ready-to-use Engine.
func New() *Engine {
	return &Engine{}
}

// Run executes source and returns its ordered state sequence (spec
// §4.4 "Three-pass driver"). Run never fails for any source that
// reaches it — parsing and evaluation are total per spec §7 — so its
// error return exists only to surface a genuine internal fault (a
// recovered panic), matching spec §7's "Internal error" kind.
func (e *Engine) Run(source string) (states []object.State, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("trace: internal error: %v", r)
		}
	}()

	all := splitLogicalLines(source)
	bodyStart, bodyEnd := findMainBody(all)
	if bodyStart < 0 {
		return []object.State{syntheticStartState()}, nil
	}
	body := all[bodyStart:bodyEnd]

	// Pass B: structural loop discovery. Purely syntactic (brace/regex
	// matching), so it does not need Pass A's populated variables to run;
	// it runs first here because Pass A stops at the first header it finds.
	headers := loop.Discover(texts(body))

	// Pass A: suppressed-emission pre-scan up to the first loop header, to
	// prime bound variables (spec §4.4). Implemented as the same replay
	// routine as Pass C with emission turned off — "a mode flag on the
	// Trace Driver, not a separate code path" (spec §9) — against a
	// throwaway frame, so nothing it does leaks into Pass C.
	if len(headers) > 0 {
		e.replay(body[:headers[0].StartLine], nil, object.NewFrame(), false, 0)
	}

	// Pass C: full replay of the main body with emission, on a fresh frame.
	frame := object.NewFrame()
	var out []object.State
	e.replay(body, headers, frame, true, 0, &out)

	if len(out) == 0 {
		return []object.State{syntheticStartState()}, nil
	}
	for i := range out {
		out[i].StepIndex = i
	}
	return out, nil
}

func syntheticStartState() object.State {
	action := "Program start"
	return object.State{
		StepIndex:   0,
		CurrentLine: 1,
		SourceLine:  "",
		Action:      &action,
		StackFrames: []object.StackFrame{{FrameID: "main-0", FunctionName: "main", Line: 1}},
	}
}

var mainHeaderNeedle = "main("

// findMainBody locates the single simulated `main` frame's body (spec
// §3 "single simulated main frame"): the line range strictly between
// the `{` that opens `main` and its matching `}`.
func findMainBody(lines []logicalLine) (start, end int) {
	headerIdx := -1
	for i, l := range lines {
		if strings.Contains(l.text, mainHeaderNeedle) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return -1, -1
	}
	texts := texts(lines)
	closeIdx := loop.MatchBrace(texts, headerIdx)
	return headerIdx + 1, closeIdx
}

// replay is the single execution routine both Pass A and Pass C use,
// selected by the emit flag. It walks body line by line starting at
// startAt, expanding any loop whose header is reached and otherwise
// applying spec §4.3 to each line. When emit is false, out may be nil:
// no state is ever appended.
func (e *Engine) replay(body []logicalLine, headers []loop.Header, frame *object.Frame, emit bool, startAt int, out ...*[]object.State) {
	var sink *[]object.State
	if len(out) > 0 {
		sink = out[0]
	}

	headerAt := make(map[int]loop.Header, len(headers))
	for _, h := range headers {
		headerAt[h.StartLine] = h
	}

	i := startAt
	for i < len(body) {
		if h, ok := headerAt[i]; ok {
			e.expandLoop(h, body, frame, emit, sink)
			i = h.EndLine + 1
			continue
		}
		e.applyLine(body[i], frame, emit, sink)
		i++
	}
}

// applyLine hands one line to the statement recognizer and, if it
// changed state and emission is enabled, appends a new State.
func (e *Engine) applyLine(l logicalLine, frame *object.Frame, emit bool, sink *[]object.State) {
	res := stmt.Recognize(l.text, frame)
	if !res.Changed || !emit || sink == nil {
		return
	}
	*sink = append(*sink, snapshot(l, frame, res.Action))
}

// snapshot performs the deep copy spec invariant I4 requires: every
// State's Variables and Heap are independent of the live frame that
// produced them.
func snapshot(l logicalLine, frame *object.Frame, action string) object.State {
	vars := frame.Vars.Snapshot()
	heap := frame.Heap.Snapshot()
	var actionPtr *string
	if action != "" {
		actionPtr = &action
	}
	return object.State{
		CurrentLine: l.sourceNo,
		SourceLine:  stmt.Strip(l.text),
		Action:      actionPtr,
		Variables:   vars,
		Heap:        heap,
		StackFrames: []object.StackFrame{{
			FrameID:      "main-0",
			FunctionName: "main",
			Line:         l.sourceNo,
			Variables:    vars,
		}},
	}
}

// expandLoop unrolls a single for/while loop (spec §4.4 "Body execution
// per iteration"), substituting the induction variable and honouring
// single-branch `if` skipping, emitting one state per changed body line.
func (e *Engine) expandLoop(h loop.Header, body []logicalLine, frame *object.Frame, emit bool, sink *[]object.State) {
	bodyLines := body[h.StartLine+1 : h.EndLine]

	switch h.Kind {
	case loop.ForLoop:
		ivar, start, _, op, step, iterations, ok := loop.ForBounds(h, frame)
		if !ok {
			return
		}
		v := start
		for n := 0; n < iterations; n++ {
			frame.Vars.Set(ivar, &object.Variable{
				ID: ivar, Name: ivar, DeclType: "int",
				Visual: object.Primitive, Value: object.IntValue{V: v},
			})
			e.runLoopBody(bodyLines, ivar, v, frame, emit, sink)
			v += step
			_ = op
		}
	case loop.WhileLoop:
		for n := 0; n < loop.WhileIterations; n++ {
			e.runLoopBody(bodyLines, "", 0, frame, emit, sink)
		}
	}
}

// runLoopBody executes one iteration's body lines, substituting the
// induction variable (spec §4.4 step 1) and skipping the contents of a
// false `if` (step 2), nesting brace depth correctly for nested ifs.
func (e *Engine) runLoopBody(bodyLines []logicalLine, ivar string, value int64, frame *object.Frame, emit bool, sink *[]object.State) {
	i := 0
	for i < len(bodyLines) {
		raw := bodyLines[i].text
		substituted := raw
		if ivar != "" {
			substituted = loop.SubstituteInductionVar(raw, ivar, value)
		}

		if cond, ok := loop.IfCondition(substituted); ok {
			// Find the matching closing brace of this if, honouring nested
			// if brace depth (spec §4.4 step 2).
			depth := 1
			j := i + 1
			for j < len(bodyLines) && depth > 0 {
				t := strings.TrimSpace(bodyLines[j].text)
				if strings.Contains(t, "{") {
					depth++
				}
				if t == "}" {
					depth--
				}
				j++
			}
			if evalcond.Eval(cond, frame) {
				i++ // enter the branch body
				continue
			}
			i = j // skip past the matching close brace
			continue
		}

		if strings.TrimSpace(substituted) == "}" || strings.TrimSpace(substituted) == "{" {
			i++
			continue
		}

		e.applyLine(logicalLine{text: substituted, sourceNo: bodyLines[i].sourceNo}, frame, emit, sink)
		i++
	}
}
