// Package evalexpr implements the Expression Evaluator of spec §4.1: a
// total, recursive-descent evaluator over a restricted C++ expression
// grammar (arithmetic with precedence, sizeof, address-of, dereference,
// array index, ternary, a handful of built-in functions, and literals).
package evalexpr

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Kaushal171205/Code-Visualizer/object"
)

// numericLookingRe matches the "numeric-looking" character set spec §4.1
// uses to decide the total fallback for text the grammar cannot parse.
var numericLookingRe = regexp.MustCompile(`^[A-Za-z0-9 _+\-*/().]*$`)

// Eval evaluates expr against the given frame. It never fails: unmatched
// forms fall back to integer zero (in a numeric-looking context) or to
// the raw source text as a StringValue, per spec §4.1.
func Eval(expr string, frame *object.Frame) object.Value {
	text := strings.TrimSpace(expr)
	if text == "" {
		return object.Zero
	}

	toks, ok := lex(text)
	if !ok {
		return fallback(text)
	}

	p := &parser{toks: toks, frame: frame}
	v := p.parseExpr()
	if p.cur().kind != tokEOF {
		// Trailing garbage the grammar didn't consume: the input wasn't a
		// clean expression, so fall back rather than trust a partial parse.
		return fallback(text)
	}
	return v
}

func fallback(text string) object.Value {
	if numericLookingRe.MatchString(text) {
		return object.Zero
	}
	return object.StringValue{V: text}
}

type parser struct {
	toks []token
	pos  int

	frame *object.Frame
}

func (p *parser) cur() token {
	if p.pos >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) atPunct(s string) bool {
	t := p.cur()
	return t.kind == tokPunct && t.text == s
}

func (p *parser) eatPunct(s string) bool {
	if p.atPunct(s) {
		p.pos++
		return true
	}
	return false
}

// expr := ternary
func (p *parser) parseExpr() object.Value {
	return p.parseTernary()
}

// ternary := addsub ('?' expr ':' expr)?
func (p *parser) parseTernary() object.Value {
	cond := p.parseAddSub()
	if p.eatPunct("?") {
		thenVal := p.parseExpr()
		p.eatPunct(":")
		elseVal := p.parseExpr()
		if object.Truthy(cond) {
			return thenVal
		}
		return elseVal
	}
	return cond
}

// addsub := muldiv (('+'|'-') muldiv)*
func (p *parser) parseAddSub() object.Value {
	left := p.parseMulDiv()
	for {
		switch {
		case p.eatPunct("+"):
			left = arith(left, p.parseMulDiv(), '+')
		case p.eatPunct("-"):
			left = arith(left, p.parseMulDiv(), '-')
		default:
			return left
		}
	}
}

// muldiv := unary (('*'|'/'|'%') unary)*
func (p *parser) parseMulDiv() object.Value {
	left := p.parseUnary()
	for {
		switch {
		case p.eatPunct("*"):
			left = arith(left, p.parseUnary(), '*')
		case p.eatPunct("/"):
			left = arith(left, p.parseUnary(), '/')
		case p.eatPunct("%"):
			left = arith(left, p.parseUnary(), '%')
		default:
			return left
		}
	}
}

// unary := ('+'|'-')? primary
func (p *parser) parseUnary() object.Value {
	if p.eatPunct("-") {
		v := p.parseUnary()
		if object.IsFloaty(v) {
			return object.FloatValue{V: -object.AsFloat(v)}
		}
		return object.IntValue{V: -object.AsInt(v)}
	}
	if p.eatPunct("+") {
		return p.parseUnary()
	}
	return p.parsePrimary()
}

// arith applies op with the integer-division-truncates-toward-zero and
// division/modulo-by-zero-yields-zero rules of spec §4.1.
func arith(a, b object.Value, op byte) object.Value {
	floaty := object.IsFloaty(a) || object.IsFloaty(b)
	if floaty && (op == '+' || op == '-' || op == '*' || op == '/') {
		af, bf := object.AsFloat(a), object.AsFloat(b)
		switch op {
		case '+':
			return object.FloatValue{V: af + bf}
		case '-':
			return object.FloatValue{V: af - bf}
		case '*':
			return object.FloatValue{V: af * bf}
		case '/':
			if bf == 0 {
				return object.IntValue{V: 0}
			}
			return object.FloatValue{V: af / bf}
		}
	}
	ai, bi := object.AsInt(a), object.AsInt(b)
	switch op {
	case '+':
		return object.IntValue{V: ai + bi}
	case '-':
		return object.IntValue{V: ai - bi}
	case '*':
		return object.IntValue{V: ai * bi}
	case '/':
		if bi == 0 {
			return object.IntValue{V: 0}
		}
		return object.IntValue{V: ai / bi} // Go's / already truncates toward zero
	case '%':
		if bi == 0 {
			return object.IntValue{V: 0}
		}
		return object.IntValue{V: ai % bi}
	}
	return object.Zero
}

// primary := NUMBER | CHAR | STRING | 'true' | 'false' | 'nullptr' | 'NULL'
//          | 'sizeof' '(' ... ')' ('/' 'sizeof' '(' ... ')')?
//          | ident '(' args? ')' | ident '[' expr ']'
//          | '&' ident | '*' ident | '(' expr ')' | ident
func (p *parser) parsePrimary() object.Value {
	t := p.cur()
	switch t.kind {
	case tokNumber:
		p.advance()
		return parseNumber(t.text)
	case tokChar:
		p.advance()
		return object.CharValue{V: unquoteChar(t.text)}
	case tokString:
		p.advance()
		return object.StringValue{V: unquoteString(t.text)}
	case tokIdent:
		switch t.text {
		case "true":
			p.advance()
			return object.True
		case "false":
			p.advance()
			return object.False
		case "nullptr", "NULL":
			p.advance()
			return object.Null
		case "sizeof":
			return p.parseSizeof()
		}
		return p.parseIdentForm()
	case tokPunct:
		switch t.text {
		case "(":
			p.advance()
			v := p.parseExpr()
			p.eatPunct(")")
			return v
		case "&":
			p.advance()
			name := p.expectIdentText()
			return object.AddressValue{V: "&" + name}
		case "*":
			p.advance()
			name := p.expectIdentText()
			return p.derefVar(name)
		}
	}
	// Unrecognized primary: total evaluator degrades to zero.
	p.advance()
	return object.Zero
}

func (p *parser) expectIdentText() string {
	t := p.cur()
	if t.kind == tokIdent {
		p.advance()
		return t.text
	}
	return ""
}

// parseIdentForm handles the three ident-headed primaries: function
// call, array index, and plain variable reference.
func (p *parser) parseIdentForm() object.Value {
	name := p.advance().text

	if p.atPunct("(") {
		return p.parseCall(name)
	}
	if p.atPunct("[") {
		p.advance()
		idx := p.parseExpr()
		p.eatPunct("]")
		return p.indexVar(name, object.AsInt(idx))
	}
	return p.lookupVar(name)
}

func (p *parser) parseCall(name string) object.Value {
	p.eatPunct("(")
	var args []object.Value
	if !p.atPunct(")") {
		args = append(args, p.parseExpr())
		for p.eatPunct(",") {
			args = append(args, p.parseExpr())
		}
	}
	p.eatPunct(")")
	return callBuiltin(name, args)
}

func callBuiltin(name string, args []object.Value) object.Value {
	switch name {
	case "abs":
		if len(args) != 1 {
			return firstOrZero(args)
		}
		if object.IsFloaty(args[0]) {
			return object.FloatValue{V: math.Abs(object.AsFloat(args[0]))}
		}
		n := object.AsInt(args[0])
		if n < 0 {
			n = -n
		}
		return object.IntValue{V: n}
	case "min":
		if len(args) < 2 {
			return firstOrZero(args)
		}
		return minMax(args, true)
	case "max":
		if len(args) < 2 {
			return firstOrZero(args)
		}
		return minMax(args, false)
	case "sqrt":
		if len(args) != 1 {
			return firstOrZero(args)
		}
		return object.FloatValue{V: math.Sqrt(object.AsFloat(args[0]))}
	case "pow":
		if len(args) != 2 {
			return firstOrZero(args)
		}
		return object.FloatValue{V: math.Pow(object.AsFloat(args[0]), object.AsFloat(args[1]))}
	default:
		// "Function calls with unknown names return their first argument if
		// present else 0" (spec §4.1).
		return firstOrZero(args)
	}
}

func firstOrZero(args []object.Value) object.Value {
	if len(args) > 0 {
		return args[0]
	}
	return object.Zero
}

func minMax(args []object.Value, wantMin bool) object.Value {
	floaty := false
	for _, a := range args {
		if object.IsFloaty(a) {
			floaty = true
		}
	}
	if floaty {
		best := object.AsFloat(args[0])
		for _, a := range args[1:] {
			f := object.AsFloat(a)
			if (wantMin && f < best) || (!wantMin && f > best) {
				best = f
			}
		}
		return object.FloatValue{V: best}
	}
	best := object.AsInt(args[0])
	for _, a := range args[1:] {
		v := object.AsInt(a)
		if (wantMin && v < best) || (!wantMin && v > best) {
			best = v
		}
	}
	return object.IntValue{V: best}
}

// typeSizes implements spec §4.1's sizeof(T) table.
var typeSizes = map[string]int64{
	"char": 1, "bool": 1,
	"short": 2,
	"int": 4, "float": 4,
	"long": 8, "double": 8,
}

// parseSizeof handles `sizeof(ident|T)` and the combined form
// `sizeof(arr)/sizeof(arr[0])`, per spec §4.1.
func (p *parser) parseSizeof() object.Value {
	p.advance() // 'sizeof'
	p.eatPunct("(")
	argName := p.expectIdentText()
	// consume an optional bracketed index inside the first sizeof, e.g.
	// sizeof(arr[0]) as it appears on the right-hand side of the combined
	// form; on the left-hand side there is none.
	if p.eatPunct("[") {
		if !p.atPunct("]") {
			p.parseExpr()
		}
		p.eatPunct("]")
	}
	p.eatPunct(")")

	firstSize := p.sizeofOperand(argName)

	if p.eatPunct("/") {
		if id := p.cur(); id.kind == tokIdent && id.text == "sizeof" {
			p.advance()
			p.eatPunct("(")
			elemName := p.expectIdentText()
			p.eatPunct("[")
			if !p.atPunct("]") {
				p.parseExpr()
			}
			p.eatPunct("]")
			p.eatPunct(")")
			if arr, ok := p.lookupArray(argName); ok && elemName == argName {
				return object.IntValue{V: int64(len(arr.Elements))}
			}
			elemSize := p.sizeofOperand(elemName)
			if elemSize == 0 {
				return object.Zero
			}
			return object.IntValue{V: firstSize / elemSize}
		}
		// Not the recognized combined form: back off to plain division so
		// the evaluator stays total instead of throwing the '/' away.
		return arith(object.IntValue{V: firstSize}, p.parseUnary(), '/')
	}

	return object.IntValue{V: firstSize}
}

func (p *parser) sizeofOperand(name string) int64 {
	if arr, ok := p.lookupArray(name); ok {
		return int64(len(arr.Elements)) * 4
	}
	if sz, ok := typeSizes[name]; ok {
		return sz
	}
	if v, ok := p.frame.Vars.Get(name); ok {
		return typeSizeOf(v.DeclType)
	}
	return 4 // default, per spec §4.1
}

func typeSizeOf(declType string) int64 {
	if sz, ok := typeSizes[declType]; ok {
		return sz
	}
	return 4
}

func (p *parser) lookupArray(name string) (*object.Variable, bool) {
	if p.frame == nil {
		return nil, false
	}
	v, ok := p.frame.Vars.Get(name)
	if !ok || v.Visual != object.Array {
		return nil, false
	}
	return v, true
}

func (p *parser) lookupVar(name string) object.Value {
	if p.frame == nil {
		return object.Zero
	}
	v, ok := p.frame.Vars.Get(name)
	if !ok {
		return object.Zero
	}
	return v.Value
}

func (p *parser) indexVar(name string, idx int64) object.Value {
	if p.frame == nil {
		return object.Zero
	}
	v, ok := p.frame.Vars.Get(name)
	if !ok || v.Visual != object.Array {
		return object.Zero
	}
	if idx < 0 || int(idx) >= len(v.Elements) {
		return object.Zero
	}
	return v.Elements[idx]
}

// derefVar implements `*p`: the value pointed to by p, or 0 (spec §4.1).
func (p *parser) derefVar(name string) object.Value {
	if p.frame == nil {
		return object.Zero
	}
	v, ok := p.frame.Vars.Get(name)
	if !ok || v.PointsTo == nil {
		return object.Zero
	}
	switch v.PointsTo.Kind {
	case object.HeapRef:
		obj, ok := p.frame.Heap.Get(v.PointsTo.ID)
		if !ok || len(obj.Fields) == 0 {
			return object.Zero
		}
		return obj.Fields[0].Value
	case object.VarRef:
		target, ok := p.frame.Vars.Get(v.PointsTo.ID)
		if !ok {
			return object.Zero
		}
		return target.Value
	}
	return object.Zero
}

func parseNumber(text string) object.Value {
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		n, err := strconv.ParseInt(text[2:], 16, 64)
		if err != nil {
			return object.Zero
		}
		return object.IntValue{V: n}
	}
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return object.Zero
		}
		return object.FloatValue{V: f}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return object.Zero
	}
	return object.IntValue{V: n}
}

func unquoteChar(text string) rune {
	inner := strings.Trim(text, "'")
	inner = unescapeC(inner)
	for _, r := range inner {
		return r
	}
	return 0
}

func unquoteString(text string) string {
	inner := strings.Trim(text, `"`)
	return unescapeC(inner)
}

var cEscapes = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\\`, `\`, `\'`, "'", `\"`, `"`, `\0`, "\x00")

func unescapeC(s string) string {
	return cEscapes.Replace(s)
}
