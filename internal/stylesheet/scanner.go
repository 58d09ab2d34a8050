package stylesheet

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Scanner finds media query lists in CSS source.
type Scanner struct {
	log *zap.Logger
}

// NewScanner creates a scanner. A nil logger discards output.
func NewScanner(log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{log: log.Named("stylesheet")}
}

// ScanFile reads and scans a single CSS file.
func (s *Scanner) ScanFile(path string) (*Stylesheet, error) {
	// #nosec G304 - path comes from the configured globs
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return s.Scan(string(content), path)
}

// scanState tracks the lexer position while walking a stylesheet.
type scanState struct {
	lexer   *css.Lexer
	content string
	offset  int
	lines   []int

	sheet *Stylesheet
	// stack holds one entry per open brace: the block index for @media
	// blocks, -1 for anything else.
	stack []int
}

// Scan walks content and records every @media prelude and @import media list.
// Blocks left open at end of input are kept as they are.
func (s *Scanner) Scan(content, path string) (*Stylesheet, error) {
	st := &scanState{
		lexer:   css.NewLexer(parse.NewInputString(content)),
		content: content,
		lines:   lineStarts(content),
		sheet:   &Stylesheet{Path: path},
	}

	for {
		tt, text, _ := st.next()
		switch tt {
		case css.ErrorToken:
			if err := st.lexer.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("%s: lex at offset %d: %w", path, st.offset, err)
			}
			s.log.Debug("scanned stylesheet",
				zap.String("path", path),
				zap.Int("blocks", len(st.sheet.Blocks)))
			return st.sheet, nil

		case css.AtKeywordToken:
			switch strings.ToLower(text) {
			case "@media":
				st.handleMedia()
			case "@import":
				st.handleImport()
			default:
				st.skipPrelude()
			}

		case css.LeftBraceToken:
			st.open(-1)

		case css.RightBraceToken:
			st.close()
		}
	}
}

// next returns the next token and its starting byte offset.
func (st *scanState) next() (css.TokenType, string, int) {
	tt, data := st.lexer.Next()
	start := st.offset
	st.offset += len(data)
	return tt, string(data), start
}

// open pushes a brace. Braces opened directly inside an @media block count
// as rules of that block.
func (st *scanState) open(block int) {
	if n := len(st.stack); n > 0 {
		if parent := st.stack[n-1]; parent >= 0 {
			st.sheet.Blocks[parent].Rules++
		}
	}
	st.stack = append(st.stack, block)
}

func (st *scanState) close() {
	if len(st.stack) > 0 {
		st.stack = st.stack[:len(st.stack)-1]
	}
}

// parent returns the innermost open @media block and the media nesting depth.
func (st *scanState) parent() (index, depth int) {
	index = -1
	for i := len(st.stack) - 1; i >= 0; i-- {
		if st.stack[i] >= 0 {
			if index < 0 {
				index = st.stack[i]
			}
			depth++
		}
	}
	return index, depth
}

// handleMedia records the prelude between @media and its opening brace.
// An @media rule ended by ';' has no block and is still recorded.
func (st *scanState) handleMedia() {
	from := st.offset
	to, tt := st.preludeEnd()

	parent, depth := st.parent()
	st.record(KindMedia, from, to, parent, depth)

	if tt == css.LeftBraceToken {
		st.open(len(st.sheet.Blocks) - 1)
	}
}

// handleImport records the media list that follows the URL of an @import,
// after any layer and supports() clauses.
func (st *scanState) handleImport() {
	from := -1
	parenDepth := 0
	sawURL := false

	for {
		tt, text, start := st.next()
		switch tt {
		case css.ErrorToken, css.SemicolonToken, css.LeftBraceToken:
			if from >= 0 {
				parent, depth := st.parent()
				st.record(KindImport, from, start, parent, depth)
			}
			if tt == css.LeftBraceToken {
				st.open(-1)
			}
			return
		case css.WhitespaceToken, css.CommentToken:
			continue
		}

		if parenDepth > 0 {
			switch tt {
			case css.FunctionToken, css.LeftParenthesisToken:
				parenDepth++
			case css.RightParenthesisToken:
				parenDepth--
			}
			continue
		}

		if from < 0 {
			switch {
			case !sawURL && (tt == css.URLToken || tt == css.StringToken):
				sawURL = true
				continue
			case tt == css.IdentToken && strings.EqualFold(text, "layer"):
				continue
			case tt == css.FunctionToken && isImportFunction(text):
				parenDepth = 1
				continue
			}
			from = start
		}
	}
}

func isImportFunction(text string) bool {
	name := strings.ToLower(strings.TrimSuffix(text, "("))
	return name == "layer" || name == "supports" || name == "url"
}

// skipPrelude consumes the prelude of an unrelated at-rule and opens its
// block if it has one.
func (st *scanState) skipPrelude() {
	if _, tt := st.preludeEnd(); tt == css.LeftBraceToken {
		st.open(-1)
	}
}

// preludeEnd consumes tokens up to '{', ';' or end of input and returns the
// offset where the prelude stops and the terminating token type.
func (st *scanState) preludeEnd() (int, css.TokenType) {
	for {
		tt, _, start := st.next()
		switch tt {
		case css.LeftBraceToken, css.SemicolonToken, css.ErrorToken:
			return start, tt
		case css.RightBraceToken:
			// A stray '}' ends the enclosing block.
			st.close()
			return start, tt
		}
	}
}

// record stores the trimmed source between from and to as a block.
func (st *scanState) record(kind Kind, from, to, parent, depth int) {
	raw := st.content[from:to]
	trimmed := strings.TrimLeft(raw, " \t\r\n\f")
	from += len(raw) - len(trimmed)
	trimmed = strings.TrimRight(trimmed, " \t\r\n\f")

	line, col := st.position(from)
	st.sheet.Blocks = append(st.sheet.Blocks, Block{
		Kind:     kind,
		Query:    trimmed,
		Offset:   from,
		Line:     line,
		Column:   col,
		LineText: st.lineText(line),
		Parent:   parent,
		Depth:    depth,
	})
}

// position converts a byte offset to a 1-based line and column.
func (st *scanState) position(offset int) (line, col int) {
	i := sort.Search(len(st.lines), func(i int) bool { return st.lines[i] > offset }) - 1
	return i + 1, offset - st.lines[i] + 1
}

func (st *scanState) lineText(line int) string {
	start := st.lines[line-1]
	end := len(st.content)
	if line < len(st.lines) {
		end = st.lines[line] - 1
	}
	return strings.TrimRight(st.content[start:end], "\r")
}

// lineStarts returns the byte offset of the first character of every line.
func lineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
