package stmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Kaushal171205/Code-Visualizer/evalexpr"
	"github.com/Kaushal171205/Code-Visualizer/object"
)

var identRe = `[A-Za-z_]\w*`

var primitiveDeclRe = regexp.MustCompile(`^(` + primitiveTypeRe + `)\s+(` + identRe + `)\s*=\s*(.+)$`)

// Row 1: `T name = expr;` — create primitive.
func matchPrimitiveDecl(line string, frame *object.Frame) (Result, bool) {
	m := primitiveDeclRe.FindStringSubmatch(line)
	if m == nil {
		return Result{}, false
	}
	declType, name, exprText := m[1], m[2], m[3]
	val := evalexpr.Eval(exprText, frame)
	frame.Vars.Set(name, &object.Variable{
		ID: name, Name: name, DeclType: declType,
		Visual: object.Primitive, Value: val,
	})
	return Result{Changed: true, Action: fmt.Sprintf("Created %s = %s", name, val.String())}, true
}

var arrayDeclRe = regexp.MustCompile(`^(` + primitiveTypeRe + `)\s+(` + identRe + `)\s*\[\s*\d*\s*\]\s*=\s*\{(.*)\}$`)

// Row 2: `T name[N?] = {v1,v2,...};` — create array.
func matchArrayDecl(line string, frame *object.Frame) (Result, bool) {
	m := arrayDeclRe.FindStringSubmatch(line)
	if m == nil {
		return Result{}, false
	}
	declType, name, initText := m[1], m[2], m[3]
	var elems []object.Value
	if strings.TrimSpace(initText) != "" {
		for _, part := range strings.Split(initText, ",") {
			elems = append(elems, evalexpr.Eval(part, frame))
		}
	}
	frame.Vars.Set(name, &object.Variable{
		ID: name, Name: name, DeclType: declType + "[]",
		Visual: object.Array, Elements: elems,
	})
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}
	return Result{Changed: true, Action: fmt.Sprintf("Created array %s = [%s]", name, strings.Join(parts, ", "))}, true
}

var arrayElemAssignRe = regexp.MustCompile(`^(` + identRe + `)\s*\[\s*(\d+)\s*\]\s*=\s*(.+)$`)

// Row 3: `name[k] = expr;` (k literal) — mutate array element in range.
func matchArrayElemAssign(line string, frame *object.Frame) (Result, bool) {
	m := arrayElemAssignRe.FindStringSubmatch(line)
	if m == nil {
		return Result{}, false
	}
	name := m[1]
	idx, _ := strconv.Atoi(m[2])
	v, ok := frame.Vars.Get(name)
	if !ok || v.Visual != object.Array {
		return Result{}, false
	}
	newVal := evalexpr.Eval(m[3], frame)
	if idx < 0 || idx >= len(v.Elements) {
		// Invariant I2: out-of-range writes are dropped, not resized. The
		// line was still recognized, so report no change occurred.
		return Result{Changed: false}, true
	}
	old := v.Elements[idx]
	v.Elements[idx] = newVal
	return Result{Changed: true, Action: fmt.Sprintf("%s[%d] changed: %s → %s", name, idx, old.String(), newVal.String())}, true
}

var pointerNewRe = regexp.MustCompile(`^(` + identRe + `)\*\s+(` + identRe + `)\s*=\s*new\s+(` + identRe + `)\s*\(\s*\)$`)

// Row 4: `T* name = new U();` — allocate heap object, pointer points to it.
func matchPointerNew(line string, frame *object.Frame) (Result, bool) {
	m := pointerNewRe.FindStringSubmatch(line)
	if m == nil {
		return Result{}, false
	}
	declType, name, heapType := m[1], m[2], m[3]
	id := frame.Heap.Alloc(heapType)
	frame.Vars.Set(name, &object.Variable{
		ID: name, Name: name, DeclType: declType + "*",
		Visual: object.Pointer, Value: object.AddressValue{V: id},
		PointsTo: &object.Ref{Kind: object.HeapRef, ID: id},
	})
	return Result{Changed: true, Action: fmt.Sprintf("Created pointer %s -> new %s", name, heapType)}, true
}

var pointerAddrOfRe = regexp.MustCompile(`^(` + identRe + `)\*\s+(` + identRe + `)\s*=\s*&\s*(` + identRe + `)$`)

// Row 5: `T* name = &var;` — pointer points to an existing variable.
func matchPointerAddrOf(line string, frame *object.Frame) (Result, bool) {
	m := pointerAddrOfRe.FindStringSubmatch(line)
	if m == nil {
		return Result{}, false
	}
	declType, name, target := m[1], m[2], m[3]
	frame.Vars.Set(name, &object.Variable{
		ID: name, Name: name, DeclType: declType + "*",
		Visual: object.Pointer, Value: object.AddressValue{V: "&" + target},
		PointsTo: &object.Ref{Kind: object.VarRef, ID: target},
	})
	return Result{Changed: true, Action: fmt.Sprintf("Created pointer %s -> &%s", name, target)}, true
}

var pointerNullRe = regexp.MustCompile(`^(` + identRe + `)\*\s+(` + identRe + `)\s*=\s*(nullptr|NULL)$`)

// Row 6: `T* name = nullptr|NULL;` — pointer with no target.
func matchPointerNull(line string, frame *object.Frame) (Result, bool) {
	m := pointerNullRe.FindStringSubmatch(line)
	if m == nil {
		return Result{}, false
	}
	declType, name := m[1], m[2]
	frame.Vars.Set(name, &object.Variable{
		ID: name, Name: name, DeclType: declType + "*",
		Visual: object.Pointer, Value: object.Null, PointsTo: nil,
	})
	return Result{Changed: true, Action: fmt.Sprintf("Created pointer %s = nullptr", name)}, true
}

var memberAssignRe = regexp.MustCompile(`^(` + identRe + `)\s*->\s*(` + identRe + `)\s*=\s*(.+)$`)

// Row 7: `ptr->field = expr;` — update or append a field on the pointee.
func matchMemberAssign(line string, frame *object.Frame) (Result, bool) {
	m := memberAssignRe.FindStringSubmatch(line)
	if m == nil {
		return Result{}, false
	}
	ptrName, fieldName, exprText := m[1], m[2], m[3]
	v, ok := frame.Vars.Get(ptrName)
	if !ok || v.PointsTo == nil || v.PointsTo.Kind != object.HeapRef {
		return Result{}, false
	}
	obj, ok := frame.Heap.Get(v.PointsTo.ID)
	if !ok {
		return Result{}, false
	}

	val := evalexpr.Eval(exprText, frame)
	visual := object.Primitive
	var pointsTo *object.Ref
	isLink := object.IsLinkFieldName(fieldName)
	isNullExpr := strings.TrimSpace(exprText) == "nullptr" || strings.TrimSpace(exprText) == "NULL"
	if isLink || isNullExpr {
		visual = object.Pointer
		if rhsVar, ok := frame.Vars.Get(strings.TrimSpace(exprText)); ok && rhsVar.PointsTo != nil {
			r := *rhsVar.PointsTo
			pointsTo = &r
		}
	}

	if f := obj.FieldByName(fieldName); f != nil {
		f.Value = val
		f.Visual = visual
		f.PointsTo = pointsTo
	} else {
		obj.Fields = append(obj.Fields, object.Field{Name: fieldName, Value: val, Visual: visual, PointsTo: pointsTo})
	}
	frame.Heap.Put(obj)

	return Result{Changed: true, Action: fmt.Sprintf("%s->%s = %s", ptrName, fieldName, val.String())}, true
}

var pointerCopyFieldRe = regexp.MustCompile(`^(` + identRe + `)\s*=\s*(` + identRe + `)\s*->\s*(` + identRe + `)$`)

// Row 8: `name = src->field;` — copy the pointer stored in that field.
// Spec §9 open question 3: this rule fires before row 9 even when name is
// not itself a pointer, and that quirk is preserved, not fixed.
func matchPointerCopyField(line string, frame *object.Frame) (Result, bool) {
	m := pointerCopyFieldRe.FindStringSubmatch(line)
	if m == nil {
		return Result{}, false
	}
	name, srcName, fieldName := m[1], m[2], m[3]
	src, ok := frame.Vars.Get(srcName)
	if !ok || src.PointsTo == nil || src.PointsTo.Kind != object.HeapRef {
		return Result{}, false
	}
	obj, ok := frame.Heap.Get(src.PointsTo.ID)
	if !ok {
		return Result{}, false
	}
	f := obj.FieldByName(fieldName)
	if f == nil {
		return Result{}, false
	}

	target, existed := frame.Vars.Get(name)
	var pointsTo *object.Ref
	if f.PointsTo != nil {
		r := *f.PointsTo
		pointsTo = &r
	}
	if !existed {
		target = &object.Variable{ID: name, Name: name, DeclType: "auto*"}
	}
	target.Visual = object.Pointer
	target.PointsTo = pointsTo
	target.Value = f.Value
	frame.Vars.Set(name, target)

	return Result{Changed: true, Action: fmt.Sprintf("%s = %s->%s", name, srcName, fieldName)}, true
}

var reassignRe = regexp.MustCompile(`^(` + identRe + `)\s*=\s*(.+)$`)

// Row 9: `name = expr;` when none of rows 3, 7, 8 matched — update an
// existing variable's value.
func matchReassign(line string, frame *object.Frame) (Result, bool) {
	m := reassignRe.FindStringSubmatch(line)
	if m == nil {
		return Result{}, false
	}
	name, exprText := m[1], m[2]
	v, ok := frame.Vars.Get(name)
	if !ok {
		return Result{}, false
	}
	old := v.Value
	v.Value = evalexpr.Eval(exprText, frame)
	return Result{Changed: true, Action: fmt.Sprintf("%s changed: %s → %s", name, valStr(old), v.Value.String())}, true
}

var incRe = regexp.MustCompile(`^(?:\+\+(` + identRe + `)|(` + identRe + `)\+\+)$`)
var decRe = regexp.MustCompile(`^(?:--(` + identRe + `)|(` + identRe + `)--)$`)

// Row 10: `++name`, `name++`, `--name`, `name--` — integer +-1.
func matchIncDec(line string, frame *object.Frame) (Result, bool) {
	var name string
	var delta int64
	if m := incRe.FindStringSubmatch(line); m != nil {
		name = firstNonEmpty(m[1], m[2])
		delta = 1
	} else if m := decRe.FindStringSubmatch(line); m != nil {
		name = firstNonEmpty(m[1], m[2])
		delta = -1
	} else {
		return Result{}, false
	}
	v, ok := frame.Vars.Get(name)
	if !ok {
		return Result{}, false
	}
	old := object.AsInt(v.Value)
	v.Value = object.IntValue{V: old + delta}
	return Result{Changed: true, Action: fmt.Sprintf("%s changed: %d → %d", name, old, old+delta)}, true
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

var compoundAssignRe = regexp.MustCompile(`^(` + identRe + `)\s*([+\-*/])=\s*(.+)$`)

// Row 11: `name op= expr;` — integer arithmetic; `/` truncates, `/0`->0.
func matchCompoundAssign(line string, frame *object.Frame) (Result, bool) {
	m := compoundAssignRe.FindStringSubmatch(line)
	if m == nil {
		return Result{}, false
	}
	name, op, exprText := m[1], m[2][0], m[3]
	v, ok := frame.Vars.Get(name)
	if !ok {
		return Result{}, false
	}
	old := object.AsInt(v.Value)
	rhs := object.AsInt(evalexpr.Eval(exprText, frame))
	var result int64
	switch op {
	case '+':
		result = old + rhs
	case '-':
		result = old - rhs
	case '*':
		result = old * rhs
	case '/':
		if rhs == 0 {
			result = 0
		} else {
			result = old / rhs // spec §4.3 row 11 / §9 note 4: always truncates
		}
	}
	v.Value = object.IntValue{V: result}
	return Result{Changed: true, Action: fmt.Sprintf("%s changed: %d → %d", name, old, result)}, true
}

var swapRe = regexp.MustCompile(`^swap\(\s*(` + identRe + `)\s*\[\s*(\d+)\s*\]\s*,\s*(` + identRe + `)\s*\[\s*(\d+)\s*\]\s*\)$`)

// Row 12: `swap(a[i], a[j]);` — exchange array elements (i, j literal).
func matchSwap(line string, frame *object.Frame) (Result, bool) {
	m := swapRe.FindStringSubmatch(line)
	if m == nil {
		return Result{}, false
	}
	name1, i1s, name2, i2s := m[1], m[2], m[3], m[4]
	i1, _ := strconv.Atoi(i1s)
	i2, _ := strconv.Atoi(i2s)

	v1, ok1 := frame.Vars.Get(name1)
	v2, ok2 := frame.Vars.Get(name2)
	if !ok1 || !ok2 || v1.Visual != object.Array || v2.Visual != object.Array {
		return Result{}, false
	}
	if i1 < 0 || i1 >= len(v1.Elements) || i2 < 0 || i2 >= len(v2.Elements) {
		return Result{Changed: false}, true
	}
	v1.Elements[i1], v2.Elements[i2] = v2.Elements[i2], v1.Elements[i1]
	return Result{Changed: true, Action: fmt.Sprintf("Swapped %s[%d] and %s[%d]", name1, i1, name2, i2)}, true
}

func valStr(v object.Value) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
