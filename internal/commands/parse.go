// ABOUTME: Parser for the user command language: statements split on ';' or newlines
// ABOUTME: Quotes protect separators and '#'; a '#' starting a word comments out the rest of the line

package commands

import (
	"fmt"
	"strings"
	"unicode"
)

// Statement is one parsed "verb args" statement.
type Statement struct {
	Line int    // 1-based source line
	Verb string // lowercased
	Args string // raw argument text, not yet expanded
}

// Parse splits source into statements. Blank statements and comments are
// dropped. An unterminated quote is an error.
func Parse(source string) ([]Statement, error) {
	var (
		stmts []Statement
		cur   strings.Builder
		quote rune
		line  = 1
		start = 1
	)

	flush := func() {
		text := strings.TrimSpace(cur.String())
		cur.Reset()
		if text == "" {
			return
		}
		verb, args := text, ""
		if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
			verb, args = text[:i], text[i+1:]
		}
		stmts = append(stmts, Statement{
			Line: start,
			Verb: strings.ToLower(verb),
			Args: strings.TrimSpace(args),
		})
	}

	runes := []rune(source)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == '\n' {
				line++
			}
			if r == '\\' && quote == '"' && i+1 < len(runes) {
				cur.WriteRune(r)
				i++
				cur.WriteRune(runes[i])
				continue
			}
			if r == quote {
				quote = 0
			}
			cur.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			cur.WriteRune(r)
		case r == '#' && (cur.Len() == 0 || isBlank(runes[i-1])):
			for i+1 < len(runes) && runes[i+1] != '\n' {
				i++
			}
		case r == ';':
			flush()
			start = line
		case r == '\n':
			flush()
			line++
			start = line
		default:
			if cur.Len() == 0 && isBlank(r) {
				continue
			}
			if cur.Len() == 0 {
				start = line
			}
			cur.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("line %d: unterminated %c quote", start, quote)
	}
	flush()
	return stmts, nil
}

func isBlank(r rune) bool { return r == ' ' || r == '\t' || r == '\r' }

// unquote strips one level of matching quotes around the whole of s.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		inner := s[1 : len(s)-1]
		if s[0] == '"' {
			inner = strings.NewReplacer(`\"`, `"`, `\\`, `\`).Replace(inner)
		}
		return inner
	}
	return s
}
