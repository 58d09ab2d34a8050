package mediaq

// MediaType is the media type a query applies to.
type MediaType string

// Media types with defined matching behavior. Any other identifier is a valid
// type that never matches.
const (
	MediaAll    MediaType = "all"
	MediaScreen MediaType = "screen"
	MediaPrint  MediaType = "print"
)

// MediaQueryList is an ordered list of queries joined by commas.
// It matches if any member matches.
type MediaQueryList []MediaQuery

// MediaQuery is a single query of a comma-separated list.
type MediaQuery struct {
	Not       bool      // Leading "not": inverts the whole query
	Only      bool      // Leading "only": parsed, no effect on matching
	Type      MediaType // "all" when the query names no type
	Condition Condition // nil when the query has no feature clauses
}

// Condition is a node of a query's condition tree: either *FeatureTest or *And.
type Condition interface {
	String() string
	condition()
}

// And is true iff both sides are true.
type And struct {
	Left  Condition
	Right Condition
}

func (*And) condition() {}

// Comparator relates the environment value to the test value.
type Comparator int

const (
	CompareEqual        Comparator = iota // (width: 600px)
	CompareGreaterEqual                   // (min-width: 600px), (width >= 600px)
	CompareLessEqual                      // (max-width: 600px), (width <= 600px)
	CompareGreater                        // (width > 600px)
	CompareLess                           // (width < 600px)
)

// String returns the range-syntax operator.
func (c Comparator) String() string {
	switch c {
	case CompareGreaterEqual:
		return ">="
	case CompareLessEqual:
		return "<="
	case CompareGreater:
		return ">"
	case CompareLess:
		return "<"
	default:
		return "="
	}
}

// flip mirrors the comparator so that "600px < width" becomes "width > 600px".
func (c Comparator) flip() Comparator {
	switch c {
	case CompareGreaterEqual:
		return CompareLessEqual
	case CompareLessEqual:
		return CompareGreaterEqual
	case CompareGreater:
		return CompareLess
	case CompareLess:
		return CompareGreater
	default:
		return c
	}
}

// FeatureTest is a leaf condition such as (min-width: 600px) or (color).
type FeatureTest struct {
	Feature    Feature
	Comparator Comparator
	Value      Value // nil for an existence test like (color)
}

func (*FeatureTest) condition() {}

// IsExistence reports whether the test has no value and only checks that the
// environment supports the feature.
func (t *FeatureTest) IsExistence() bool {
	return t.Value == nil
}

// features returns the leaf tests of a condition tree in source order.
func features(c Condition) []*FeatureTest {
	switch n := c.(type) {
	case *FeatureTest:
		return []*FeatureTest{n}
	case *And:
		return append(features(n.Left), features(n.Right)...)
	}
	return nil
}

// and joins two conditions, treating nil as "no condition".
func and(left, right Condition) Condition {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	return &And{Left: left, Right: right}
}
