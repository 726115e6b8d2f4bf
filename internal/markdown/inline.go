package markdown

import (
	"strings"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

// ParseInline tokenizes a block's text into styled runs. Span patterns
// are tried at each position in precedence order: inline code, link,
// bold, italic, plain text. Inline code suppresses all other parsing
// inside it. Unterminated or overlapping delimiters degrade to literal
// text; the tokenizer never fails.
func ParseInline(text string) []domain.TextRun {
	var runs []domain.TextRun
	var plain strings.Builder

	flushPlain := func() {
		if plain.Len() > 0 {
			runs = append(runs, domain.TextRun{Text: plain.String()})
			plain.Reset()
		}
	}

	r := []rune(text)
	i := 0
	for i < len(r) {
		switch {
		case r[i] == '`':
			inner, next, ok := spanTo(r, i+1, "`")
			if ok {
				flushPlain()
				runs = append(runs, domain.TextRun{Text: inner, Code: true})
				i = next
				continue
			}

		case r[i] == '[':
			if run, next, ok := parseLink(r, i); ok {
				flushPlain()
				runs = append(runs, run)
				i = next
				continue
			}

		case strings.HasPrefix(string(r[i:]), "**"):
			inner, next, ok := spanTo(r, i+2, "**")
			if ok {
				flushPlain()
				runs = append(runs, domain.TextRun{Text: inner, Bold: true})
				i = next
				continue
			}

		case r[i] == '*' || r[i] == '_':
			inner, next, ok := spanTo(r, i+1, string(r[i]))
			if ok && inner != "" {
				flushPlain()
				runs = append(runs, domain.TextRun{Text: inner, Italic: true})
				i = next
				continue
			}
		}

		plain.WriteRune(r[i])
		i++
	}
	flushPlain()

	return runs
}

// spanTo finds the closing delimiter starting at from and returns the
// enclosed text and the index just past the delimiter. ok is false when
// the delimiter never closes; the caller then treats it as literal.
func spanTo(r []rune, from int, delim string) (inner string, next int, ok bool) {
	rest := string(r[from:])
	idx := strings.Index(rest, delim)
	if idx < 0 {
		return "", 0, false
	}
	return rest[:idx], from + len([]rune(rest[:idx])) + len([]rune(delim)), true
}

// parseLink matches [text](url) at position i.
func parseLink(r []rune, i int) (domain.TextRun, int, bool) {
	rest := string(r[i:])
	closeBracket := strings.Index(rest, "]")
	if closeBracket < 0 || closeBracket+1 >= len(rest) || rest[closeBracket+1] != '(' {
		return domain.TextRun{}, 0, false
	}
	closeParen := strings.Index(rest[closeBracket+2:], ")")
	if closeParen < 0 {
		return domain.TextRun{}, 0, false
	}

	label := rest[1:closeBracket]
	url := rest[closeBracket+2 : closeBracket+2+closeParen]
	consumed := len([]rune(rest[:closeBracket+2+closeParen+1]))
	return domain.TextRun{Text: label, Link: url}, i + consumed, true
}
