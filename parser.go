package mediaq

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// reservedWords cannot be used as media types.
var reservedWords = map[string]bool{
	"and":   true,
	"not":   true,
	"only":  true,
	"or":    true,
	"layer": true,
}

// Parse parses a comma-separated media query list.
//
// Parsing is atomic: a malformed query anywhere in the list fails the whole
// list with a *ParseError. An empty or blank input yields an empty list,
// which matches nothing.
func Parse(text string) (MediaQueryList, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	if err := checkBalance(tokens); err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return MediaQueryList{}, nil
	}

	segments, err := splitQueries(tokens)
	if err != nil {
		return nil, err
	}

	list := make(MediaQueryList, 0, len(segments))
	for _, seg := range segments {
		p := &queryParser{src: text, tokens: seg}
		q, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		list = append(list, q)
	}
	return list, nil
}

// MustParse is like Parse but panics if the text cannot be parsed.
// It simplifies initialization of package-level query lists.
func MustParse(text string) MediaQueryList {
	list, err := Parse(text)
	if err != nil {
		panic(`mediaq: Parse(` + strconv.Quote(text) + `): ` + err.Error())
	}
	return list
}

// opensGroup reports whether the token opens a parenthesis group.
// Function tokens such as "and(" carry their opening parenthesis.
func opensGroup(t token) bool {
	return t.is(css.LeftParenthesisToken) || t.is(css.FunctionToken)
}

// checkBalance verifies that every parenthesis is paired.
func checkBalance(tokens []token) error {
	var open []token
	for _, t := range tokens {
		switch {
		case opensGroup(t):
			open = append(open, t)
		case t.is(css.RightParenthesisToken):
			if len(open) == 0 {
				return errorAt(UnbalancedGroup, t, "no matching '('")
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return errorAt(UnbalancedGroup, open[len(open)-1], "no matching ')'")
	}
	return nil
}

// splitQueries splits tokens on commas outside parentheses.
func splitQueries(tokens []token) ([][]token, error) {
	var segments [][]token
	depth, start := 0, 0

	for i, t := range tokens {
		switch {
		case opensGroup(t):
			depth++
		case t.is(css.RightParenthesisToken):
			depth--
		case t.is(css.CommaToken) && depth == 0:
			if i == start {
				return nil, errorAt(UnexpectedToken, t, "expected media query before ','")
			}
			segments = append(segments, tokens[start:i])
			start = i + 1
		}
	}

	if start == len(tokens) {
		return nil, errorAt(UnexpectedToken, tokens[len(tokens)-1], "expected media query after ','")
	}
	return append(segments, tokens[start:]), nil
}

// queryParser parses the tokens of one query of the list.
type queryParser struct {
	src    string
	tokens []token
	pos    int
}

func (p *queryParser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *queryParser) peek() token {
	return p.tokens[p.pos]
}

func (p *queryParser) next() token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

// parseQuery parses: [not|only]? type? ( and (feature) )*
// A query without a type must start with a feature clause.
func (p *queryParser) parseQuery() (MediaQuery, error) {
	q := MediaQuery{Type: MediaAll}

	switch first := p.peek(); {
	case first.isIdent("not"):
		q.Not = true
		p.pos++
	case first.isIdent("only"):
		// "only" hides the query from legacy user agents that do not
		// understand media features. It has no effect on matching.
		q.Only = true
		p.pos++
	}
	if p.atEnd() {
		prev := p.tokens[p.pos-1]
		return q, errorAt(UnexpectedToken, prev, "expected media type or feature after '"+strings.ToLower(prev.text)+"'")
	}

	if t := p.peek(); t.is(css.IdentToken) {
		name := strings.ToLower(t.text)
		if reservedWords[name] {
			return q, errorAt(UnexpectedToken, t, "reserved word cannot be used as a media type")
		}
		q.Type = MediaType(name)
		p.pos++

		if p.atEnd() {
			return q, nil
		}
		if err := p.expectAnd(); err != nil {
			return q, err
		}
	}

	for {
		cond, err := p.parseFeatureClause()
		if err != nil {
			return q, err
		}
		q.Condition = and(q.Condition, cond)

		if p.atEnd() {
			return q, nil
		}
		if err := p.expectAnd(); err != nil {
			return q, err
		}
	}
}

// expectAnd consumes the "and" combinator.
func (p *queryParser) expectAnd() error {
	t := p.next()
	switch {
	case t.isIdent("and"):
		if p.atEnd() {
			return errorAt(UnexpectedToken, t, "expected feature clause after 'and'")
		}
		return nil
	case t.isIdent("or"):
		return errorAt(UnexpectedToken, t, "'or' is only supported between comma-separated queries")
	case t.is(css.FunctionToken):
		return errorAt(UnexpectedToken, t, "expected whitespace before '('")
	default:
		return errorAt(UnexpectedToken, t, "expected 'and'")
	}
}

// parseFeatureClause parses a parenthesized feature: "(" ... ")".
func (p *queryParser) parseFeatureClause() (Condition, error) {
	open := p.next()
	if !open.is(css.LeftParenthesisToken) {
		if open.is(css.FunctionToken) {
			return nil, errorAt(UnexpectedToken, open, "expected whitespace before '('")
		}
		return nil, errorAt(UnexpectedToken, open, "expected '('")
	}

	start := p.pos
	for !p.atEnd() {
		t := p.peek()
		if opensGroup(t) {
			return nil, errorAt(UnexpectedToken, t, "nested groups are not supported")
		}
		if t.is(css.RightParenthesisToken) {
			break
		}
		p.pos++
	}
	// checkBalance guarantees the closing parenthesis is present.
	inner := p.tokens[start:p.pos]
	closing := p.next()

	if len(inner) == 0 {
		return nil, errorAt(UnexpectedToken, closing, "expected media feature")
	}
	return p.parseFeature(inner)
}

// parseFeature parses the tokens between a feature's parentheses.
func (p *queryParser) parseFeature(inner []token) (Condition, error) {
	name := inner[0]
	if name.is(css.IdentToken) && (len(inner) == 1 || inner[1].is(css.ColonToken)) {
		f, cmp, prefixed, ok := lookupFeature(strings.ToLower(name.text))
		if !ok {
			return nil, errorAt(UnknownFeature, name, "")
		}

		if len(inner) == 1 {
			if prefixed {
				return nil, errorAt(MalformedValue, name, "min-/max- features require a value")
			}
			return &FeatureTest{Feature: f, Comparator: CompareEqual}, nil
		}

		if len(inner) == 2 {
			return nil, errorAt(MalformedValue, inner[1], "expected "+f.kind().String())
		}
		v, err := parseValue(p.src, f.kind(), inner[2:])
		if err != nil {
			return nil, err
		}
		return &FeatureTest{Feature: f, Comparator: cmp, Value: v}, nil
	}

	return p.parseRange(inner)
}

// rangeOp is a comparison operator found in a range feature.
type rangeOp struct {
	cmp        Comparator
	start, end int // token indexes [start, end)
	equal      bool
}

// findOps locates <, <=, >, >= and = delimiters.
func findOps(inner []token) []rangeOp {
	var ops []rangeOp
	for i := 0; i < len(inner); i++ {
		t := inner[i]
		switch {
		case t.isDelim('<'), t.isDelim('>'):
			op := rangeOp{start: i, end: i + 1, cmp: CompareLess}
			if t.isDelim('>') {
				op.cmp = CompareGreater
			}
			if i+1 < len(inner) && inner[i+1].isDelim('=') && inner[i+1].offset == t.end() {
				op.end = i + 2
				if op.cmp == CompareLess {
					op.cmp = CompareLessEqual
				} else {
					op.cmp = CompareGreaterEqual
				}
				i++
			}
			ops = append(ops, op)
		case t.isDelim('='):
			ops = append(ops, rangeOp{start: i, end: i + 1, cmp: CompareEqual, equal: true})
		}
	}
	return ops
}

// parseRange parses the Level 4 range forms:
//
//	(width >= 600px)
//	(600px <= width)
//	(400px <= width < 800px)
func (p *queryParser) parseRange(inner []token) (Condition, error) {
	ops := findOps(inner)

	switch len(ops) {
	case 0:
		if inner[0].is(css.IdentToken) {
			return nil, errorAt(UnexpectedToken, inner[1], "expected ':' or a comparison")
		}
		return nil, errorAt(UnexpectedToken, inner[0], "expected media feature name")

	case 1:
		op := ops[0]
		left, right := inner[:op.start], inner[op.end:]
		if len(left) == 0 || len(right) == 0 {
			return nil, errorAt(UnexpectedToken, inner[op.start], "comparison needs a feature and a value")
		}
		var (
			test *FeatureTest
			err  error
		)
		switch {
		case len(left) == 1 && left[0].is(css.IdentToken):
			test, err = p.rangeTest(left[0], op, inner[op.start], right)
		case len(right) == 1 && right[0].is(css.IdentToken):
			flipped := op
			flipped.cmp = op.cmp.flip()
			test, err = p.rangeTest(right[0], flipped, inner[op.start], left)
		default:
			return nil, errorAt(UnexpectedToken, inner[op.start], "comparison needs a feature name on one side")
		}
		if err != nil {
			return nil, err
		}
		return test, nil

	case 2:
		lo, hi := ops[0], ops[1]
		for _, op := range ops {
			if op.equal {
				return nil, errorAt(UnexpectedToken, inner[op.start], "'=' cannot be chained")
			}
		}
		if isLess(lo.cmp) != isLess(hi.cmp) {
			return nil, errorAt(UnexpectedToken, inner[hi.start], "chained comparisons must point the same way")
		}

		left, mid, right := inner[:lo.start], inner[lo.end:hi.start], inner[hi.end:]
		if len(left) == 0 || len(right) == 0 || len(mid) != 1 || !mid[0].is(css.IdentToken) {
			return nil, errorAt(UnexpectedToken, inner[lo.start], "expected value < feature < value")
		}

		flipped := lo
		flipped.cmp = lo.cmp.flip()
		lower, err := p.rangeTest(mid[0], flipped, inner[lo.start], left)
		if err != nil {
			return nil, err
		}
		upper, err := p.rangeTest(mid[0], hi, inner[hi.start], right)
		if err != nil {
			return nil, err
		}
		return &And{Left: lower, Right: upper}, nil

	default:
		return nil, errorAt(UnexpectedToken, inner[ops[2].start], "too many comparisons")
	}
}

func isLess(c Comparator) bool {
	return c == CompareLess || c == CompareLessEqual
}

// rangeTest builds "feature op value" from a range expression.
func (p *queryParser) rangeTest(name token, op rangeOp, opTok token, valueTokens []token) (*FeatureTest, error) {
	f, _, prefixed, ok := lookupFeature(strings.ToLower(name.text))
	if !ok {
		return nil, errorAt(UnknownFeature, name, "")
	}
	if prefixed {
		return nil, errorAt(UnexpectedToken, opTok, "min-/max- features cannot be compared")
	}
	if !f.IsRange() && !op.equal {
		return nil, errorAt(UnexpectedToken, opTok, f.String()+" does not support comparisons")
	}

	v, err := parseValue(p.src, f.kind(), valueTokens)
	if err != nil {
		return nil, err
	}
	return &FeatureTest{Feature: f, Comparator: op.cmp, Value: v}, nil
}
