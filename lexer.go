package mediaq

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// token is a significant CSS token of a media query with its byte offset in
// the query text. Whitespace and comments are dropped.
type token struct {
	typ    css.TokenType
	text   string
	offset int
}

func (t token) is(typ css.TokenType) bool {
	return t.typ == typ
}

// isIdent reports whether the token is the identifier name (case-insensitive).
func (t token) isIdent(name string) bool {
	return t.typ == css.IdentToken && strings.EqualFold(t.text, name)
}

// isDelim reports whether the token is the single delimiter character c.
func (t token) isDelim(c byte) bool {
	return t.typ == css.DelimToken && len(t.text) == 1 && t.text[0] == c
}

// end returns the offset just past the token.
func (t token) end() int {
	return t.offset + len(t.text)
}

// tokenize splits text into significant tokens.
// The lexer returns every input byte as part of some token, so offsets are
// the running sum of token lengths.
func tokenize(text string) ([]token, error) {
	lexer := css.NewLexer(parse.NewInputString(text))

	var tokens []token
	offset := 0
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, &ParseError{
					Kind:   UnexpectedToken,
					Text:   remaining(text, offset),
					Offset: offset,
					Msg:    err.Error(),
				}
			}
			return tokens, nil
		}

		if tt != css.WhitespaceToken && tt != css.CommentToken {
			tokens = append(tokens, token{typ: tt, text: string(data), offset: offset})
		}
		offset += len(data)
	}
}

// remaining returns up to a short prefix of text starting at offset, for
// error messages.
func remaining(text string, offset int) string {
	if offset >= len(text) {
		return ""
	}
	rest := text[offset:]
	if len(rest) > 16 {
		rest = rest[:16]
	}
	return rest
}

// splitDimension splits a dimension token such as "1.5dppx" into its number
// and lowercase unit. The exponent of "1e3px" belongs to the number, while the
// "e" of "1em" starts the unit.
func splitDimension(text string) (number, unit string) {
	i := 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	if i+1 < len(text) && text[i] == '.' && isDigit(text[i+1]) {
		i++
		for i < len(text) && isDigit(text[i]) {
			i++
		}
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && isDigit(text[j]) {
			for j < len(text) && isDigit(text[j]) {
				j++
			}
			i = j
		}
	}
	return text[:i], strings.ToLower(text[i:])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
