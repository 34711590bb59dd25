package trace

import "strings"

// logicalLine is one statement- or brace-sized unit of source, paired
// with the 1-based original source line its first character came from.
type logicalLine struct {
	text     string
	sourceNo int
}

// splitLogicalLines re-flows raw source into one logical line per
// statement, `{`, or `}` — regardless of how the input happens to be
// wrapped across physical lines. spec §8's scenarios are written with
// several statements sharing one physical line (e.g. S1: everything
// between `int main(){` and the trailing `}` on a single line); the
// engine's line-oriented algorithms (§4.3, §4.4) assume one shape per
// line, so this reconstructs that shape before anything else runs.
//
// `;`, `{`, and `}` end a logical line, except while inside a `(...)`
// group (so a `for(...; ...; ...)` header's internal semicolons do not
// split it) or inside a quoted literal.
func splitLogicalLines(source string) []logicalLine {
	raw := strings.Split(source, "\n")
	// Strip end-of-line comments per physical line before re-flowing, so a
	// `//` inside one physical line can't swallow the rest of the program.
	for i, l := range raw {
		if idx := strings.Index(l, "//"); idx >= 0 {
			raw[i] = l[:idx]
		}
	}

	var out []logicalLine
	var cur strings.Builder
	curLineNo := 1
	parenDepth := 0
	initDepth := 0
	inSingle, inDouble := false, false

	flush := func() {
		text := strings.TrimSpace(cur.String())
		if text != "" {
			out = append(out, logicalLine{text: text, sourceNo: curLineNo})
		}
		cur.Reset()
	}

	for lineNo, l := range raw {
		for _, c := range l {
			if cur.Len() == 0 {
				curLineNo = lineNo + 1
			}
			switch {
			case c == '\'' && !inDouble:
				inSingle = !inSingle
				cur.WriteRune(c)
			case c == '"' && !inSingle:
				inDouble = !inDouble
				cur.WriteRune(c)
			case inSingle || inDouble:
				cur.WriteRune(c)
			case c == '(':
				parenDepth++
				cur.WriteRune(c)
			case c == ')':
				if parenDepth > 0 {
					parenDepth--
				}
				cur.WriteRune(c)
			case c == '{':
				// An initializer list (`= {...}`, or a brace nested inside
				// one) is data, not a block opener, and must not split the
				// statement it appears in.
				trimmed := strings.TrimRight(cur.String(), " ")
				switch {
				case initDepth > 0 || strings.HasSuffix(trimmed, "="):
					initDepth++
					cur.WriteRune(c)
				case parenDepth == 0:
					cur.WriteRune(c)
					flush()
				default:
					cur.WriteRune(c)
				}
			case c == '}':
				switch {
				case initDepth > 0:
					initDepth--
					cur.WriteRune(c)
				case parenDepth == 0:
					if strings.TrimSpace(cur.String()) != "" {
						flush()
					}
					out = append(out, logicalLine{text: "}", sourceNo: lineNo + 1})
				default:
					cur.WriteRune(c)
				}
			case c == ';' && parenDepth == 0:
				cur.WriteRune(c)
				flush()
			default:
				cur.WriteRune(c)
			}
		}
		cur.WriteRune(' ')
	}
	flush()
	return out
}

func texts(lines []logicalLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	return out
}
