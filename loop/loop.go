// Package loop implements the Loop & Branch Simulator of spec §4.4:
// discovering for/while bodies by brace matching, resolving loop bounds,
// and the primitives the Trace Driver uses to substitute the induction
// variable and honour single-branch `if` skipping while replaying a
// loop body.
package loop

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Kaushal171205/Code-Visualizer/object"
)

// MaxIterations is the hard clamp of spec invariant I5: "Loop iteration
// count is clamped to [0, 50] regardless of bounds."
const MaxIterations = 50

// WhileIterations is the fixed iteration count for `while` loops (spec
// §4.4: "No condition evaluation; iterate a fixed 10 times"). Spec §9
// open question 2 flags this as a probable bug in the original system;
// it is preserved here rather than silently fixed.
const WhileIterations = 10

// Kind distinguishes a for-loop header from a while-loop header.
type Kind int

const (
	ForLoop Kind = iota
	WhileLoop
)

// Header is one discovered loop, its header line and matching body
// bracket (spec §4.4 "Loop discovery").
type Header struct {
	Kind      Kind
	StartLine int // index into the source line slice of the header line
	EndLine   int // index of the line holding the matching closing brace
	HeaderRaw string
}

var forRe = regexp.MustCompile(`^for\s*\(\s*(?:int\s+)?(\w+)\s*=\s*(\w+)\s*;\s*\w+\s*(<=|>=|!=|<|>)\s*(\w+)\s*;\s*\w+(\+\+|--|\+=\s*\d+|-=\s*\d+)\s*\)`)
var whileRe = regexp.MustCompile(`^while\s*\(`)

// Discover scans lines for `for(...)` and `while(...)` headers and pairs
// each with its matching closing brace via depth counting over `{`/`}`
// characters on the raw lines (spec §4.4 "Loop discovery").
func Discover(lines []string) []Header {
	var headers []Header
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case forRe.MatchString(line):
			end := matchBrace(lines, i)
			headers = append(headers, Header{Kind: ForLoop, StartLine: i, EndLine: end, HeaderRaw: line})
		case whileRe.MatchString(line):
			end := matchBrace(lines, i)
			headers = append(headers, Header{Kind: WhileLoop, StartLine: i, EndLine: end, HeaderRaw: line})
		}
	}
	return headers
}

// MatchBrace returns the index of the line holding the `}` that closes
// the `{` first opened on or after lines[start], by depth counting over
// brace characters (spec §4.4). Exported so the Trace Driver can reuse
// it to bound the `main` body itself.
func MatchBrace(lines []string, start int) int {
	return matchBrace(lines, start)
}

// matchBrace returns the index of the line holding the `}` that closes
// the `{` first opened on or after lines[start], by depth counting over
// brace characters (spec §4.4).
func matchBrace(lines []string, start int) int {
	depth := 0
	seenOpen := false
	for i := start; i < len(lines); i++ {
		for _, c := range lines[i] {
			switch c {
			case '{':
				depth++
				seenOpen = true
			case '}':
				depth--
			}
		}
		if seenOpen && depth == 0 {
			return i
		}
	}
	return len(lines) - 1
}

// ForBounds resolves a `for` header's induction variable, start value,
// end value, and clamped iteration count against the live frame (spec
// §4.4 "for header parsing" and "Iteration count"). Resolution of named
// bounds happens against frame at call time — late binding, not at
// discovery (spec §4.4).
func ForBounds(h Header, frame *object.Frame) (ivar string, start, end int64, op string, step int64, iterations int, ok bool) {
	m := forRe.FindStringSubmatch(h.HeaderRaw)
	if m == nil {
		return "", 0, 0, "", 0, 0, false
	}
	ivar = m[1]
	start = resolveBound(m[2], frame)
	op = m[3]
	end = resolveBound(m[4], frame)
	step = parseStep(m[5])

	iterations = clamp(iterationCount(op, start, end))
	return ivar, start, end, op, step, iterations, true
}

func resolveBound(token string, frame *object.Frame) int64 {
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return n
	}
	if v, ok := frame.Vars.Get(token); ok {
		return object.AsInt(v.Value)
	}
	return 0
}

func parseStep(token string) int64 {
	switch {
	case token == "++":
		return 1
	case token == "--":
		return -1
	case strings.HasPrefix(token, "+="):
		n, _ := strconv.ParseInt(strings.TrimSpace(token[2:]), 10, 64)
		return n
	case strings.HasPrefix(token, "-="):
		n, _ := strconv.ParseInt(strings.TrimSpace(token[2:]), 10, 64)
		return -n
	}
	return 1
}

// iterationCount implements spec §4.4's per-operator iteration table.
func iterationCount(op string, s, e int64) int64 {
	switch op {
	case "<":
		return e - s
	case "<=":
		return e - s + 1
	case ">":
		return s - e
	case ">=":
		return s - e + 1
	case "!=":
		d := e - s
		if d < 0 {
			d = -d
		}
		return d
	}
	return 0
}

func clamp(n int64) int {
	if n < 0 {
		return 0
	}
	if n > MaxIterations {
		return MaxIterations
	}
	return int(n)
}

// SubstituteInductionVar textually substitutes the induction variable
// into a loop body line before it reaches the statement recognizer
// (spec §4.4 "Body execution per iteration", step 1): `[<ivar>]` becomes
// `[<value>]`, and standalone word-boundary occurrences of `<ivar>`
// become the value.
func SubstituteInductionVar(line, ivar string, value int64) string {
	valStr := strconv.FormatInt(value, 10)
	line = strings.ReplaceAll(line, "["+ivar+"]", "["+valStr+"]")
	wordRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(ivar) + `\b`)
	return wordRe.ReplaceAllString(line, valStr)
}

var ifHeaderRe = regexp.MustCompile(`^if\s*\((.+)\)\s*\{?$`)

// IfCondition reports whether line is an `if (cond) {` (or bare
// `if (cond)`, brace on the next line) header, per spec §4.4 step 2, and
// returns the condition text.
func IfCondition(line string) (cond string, ok bool) {
	m := ifHeaderRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
