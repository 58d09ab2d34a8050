// Package mediaq parses CSS media queries and evaluates them against a
// viewport environment.
//
// A query string is parsed once into an immutable MediaQueryList and can then
// be evaluated any number of times, from any number of goroutines:
//
//	list, err := mediaq.Parse("screen and (min-width: 600px), print")
//	if err != nil {
//		// the rule block does not apply
//	}
//	env := mediaq.Environment{Width: 800, Height: 600}
//	if list.Matches(env) {
//		// apply the rule block
//	}
//
// # Grammar
//
// Each comma-separated query is an optional `not` or `only`, an optional
// media type (`all`, `screen`, `print`) and zero or more `and (feature)`
// clauses. Supported features are width, height, device-width,
// device-height, resolution, orientation, aspect-ratio, device-aspect-ratio
// and color, with `min-`/`max-` prefixes on the range features. The
// Media Queries Level 4 range form `(400px <= width < 800px)` is accepted as
// well.
//
// # Errors
//
// Parse fails on the first malformed query with a *ParseError carrying the
// offending text and its byte offset. The error kinds can be tested with
// errors.Is against ErrUnknownFeature, ErrMalformedValue, ErrUnexpectedToken
// and ErrUnbalancedGroup.
//
// # Stylesheet checking
//
// Check scans CSS files for @media rules and @import media lists, parses
// every query, and reports invalid and never-matching queries in
// golangci-lint format. The mediaq CLI wraps it:
//
//	go install github.com/yacobolo/mediaq/cmd/mediaq@latest
package mediaq
