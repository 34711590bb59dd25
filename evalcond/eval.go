// Package evalcond implements the Condition Evaluator of spec §4.2: a
// single infix comparison, with an optional leading modulo, falling
// back to a truthiness test of the whole expression.
package evalcond

import (
	"regexp"
	"strings"

	"github.com/Kaushal171205/Code-Visualizer/evalexpr"
	"github.com/Kaushal171205/Code-Visualizer/object"
)

// shape pairs a comparison regex with the operator it recognizes. Order
// matters: spec §4.2 requires modulo-forms and `==`/`!=` to be tried
// before the ordering operators, and `<=`/`>=` before `<`/`>` so that
// e.g. "x<=y" is not mis-split as "x" and "=y".
type shape struct {
	re *regexp.Regexp
	op string
}

var shapes = []shape{
	{regexp.MustCompile(`^(.+?)%(.+?)==(.+)$`), "%=="},
	{regexp.MustCompile(`^(.+?)%(.+?)!=(.+)$`), "%!="},
	{regexp.MustCompile(`^(.+?)==(.+)$`), "=="},
	{regexp.MustCompile(`^(.+?)!=(.+)$`), "!="},
	{regexp.MustCompile(`^(.+?)<=(.+)$`), "<="},
	{regexp.MustCompile(`^(.+?)>=(.+)$`), ">="},
	{regexp.MustCompile(`^(.+?)<(.+)$`), "<"},
	{regexp.MustCompile(`^(.+?)>(.+)$`), ">"},
}

// Eval evaluates a condition string against frame and returns its
// boolean result. It never fails (spec §4.2 / §7 "total").
func Eval(cond string, frame *object.Frame) bool {
	text := strings.TrimSpace(cond)
	text = strings.TrimPrefix(text, "(")
	text = strings.TrimSuffix(text, ")")
	text = strings.TrimSpace(text)

	for _, s := range shapes {
		m := s.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch s.op {
		case "%==", "%!=":
			e := evalexpr.Eval(m[1], frame)
			k := evalexpr.Eval(m[2], frame)
			r := evalexpr.Eval(m[3], frame)
			mod := object.AsInt(e)
			kv := object.AsInt(k)
			var rem int64
			if kv != 0 {
				rem = mod % kv
			}
			eq := rem == object.AsInt(r)
			if s.op == "%==" {
				return eq
			}
			return !eq
		default:
			left := evalexpr.Eval(m[1], frame)
			right := evalexpr.Eval(m[2], frame)
			return compare(left, right, s.op)
		}
	}

	// Fallback: treat the whole text as an expression and test truthiness.
	return object.Truthy(evalexpr.Eval(text, frame))
}

func compare(left, right object.Value, op string) bool {
	lk, rk := left.Kind(), right.Kind()
	if lk == object.AddressKind || lk == object.NullKind || rk == object.AddressKind || rk == object.NullKind {
		// Address tokens are opaque: only two null pointers compare equal.
		eq := lk == object.NullKind && rk == object.NullKind
		switch op {
		case "==":
			return eq
		case "!=":
			return !eq
		}
		return false
	}

	if left.Kind() == object.StringKind || right.Kind() == object.StringKind {
		ls, rs := left.String(), right.String()
		switch op {
		case "==":
			return ls == rs
		case "!=":
			return ls != rs
		case "<":
			return ls < rs
		case "<=":
			return ls <= rs
		case ">":
			return ls > rs
		case ">=":
			return ls >= rs
		}
	}

	if object.IsFloaty(left) || object.IsFloaty(right) {
		lf, rf := object.AsFloat(left), object.AsFloat(right)
		switch op {
		case "==":
			return lf == rf
		case "!=":
			return lf != rf
		case "<":
			return lf < rf
		case "<=":
			return lf <= rf
		case ">":
			return lf > rf
		case ">=":
			return lf >= rf
		}
	}

	li, ri := object.AsInt(left), object.AsInt(right)
	switch op {
	case "==":
		return li == ri
	case "!=":
		return li != ri
	case "<":
		return li < ri
	case "<=":
		return li <= ri
	case ">":
		return li > ri
	case ">=":
		return li >= ri
	}
	return false
}
