package cnrange

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
)

var (
	// ErrMalformedExpression is returned when the expression does not match
	// the PREFIX<digits>-PREFIX<digits> grammar
	ErrMalformedExpression = errors.New("malformed common name range")
	// ErrNumericOverflow is returned when a number in the expression
	// does not fit into the supported numeric range
	ErrNumericOverflow = errors.New("common name range number overflow")
	// ErrTooManyNames is returned by Expand when the range has more than MaxNames names
	ErrTooManyNames = errors.New("common name range is too large")
)

// MaxNames is the largest number of names Expand returns
const MaxNames = 1000000

// Example is a well formed range expression, used in error messages
const Example = "YDL0001-YDL0010"

// Range is a parsed common name range
type Range struct {
	// Prefix is the first prefix of the expression
	Prefix string
	// Start and End are inclusive bounds, Start <= End
	Start uint32
	End   uint32
	// Width is the zero-pad width, taken from the first number
	Width int
}

// Len returns the number of names in the range
func (r *Range) Len() int {
	return int(uint64(r.End) - uint64(r.Start) + 1)
}

// Names returns the names in ascending order
func (r *Range) Names() []string {
	names := make([]string, 0, r.Len())
	for i := uint64(r.Start); i <= uint64(r.End); i++ {
		names = append(names, fmt.Sprintf("%s%0*d", r.Prefix, r.Width, i))
	}
	return names
}

// Expand parses the expression and returns the names it denotes,
// in ascending numeric order regardless of the order of the endpoints.
func Expand(expr string) ([]string, error) {
	r, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	if r.Len() > MaxNames {
		return nil, errors.Mark(
			errors.Errorf("common name range %q has %d names, the limit is %d", expr, r.Len(), MaxNames),
			ErrTooManyNames)
	}
	return r.Names(), nil
}

// Parse parses the range expression
func Parse(expr string) (*Range, error) {
	s := scanner{in: expr}

	prefix := s.letters()
	num1 := s.digits()
	hyphen := s.literal('-')
	prefix2 := s.letters()
	num2 := s.digits()

	if prefix == "" || num1 == "" || !hyphen || prefix2 == "" || num2 == "" || !s.done() {
		return nil, errors.Mark(
			errors.Errorf("unable to parse common name range %q, expected format: %s", expr, Example),
			ErrMalformedExpression)
	}

	start, err := parseNumber(expr, num1)
	if err != nil {
		return nil, err
	}
	end, err := parseNumber(expr, num2)
	if err != nil {
		return nil, err
	}
	if start > end {
		start, end = end, start
	}

	return &Range{
		Prefix: prefix,
		Start:  start,
		End:    end,
		Width:  len(num1),
	}, nil
}

func parseNumber(expr, digits string) (uint32, error) {
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, errors.Mark(
			errors.Errorf("number %s in common name range %q is out of range", digits, expr),
			ErrNumericOverflow)
	}
	return uint32(n), nil
}

// scanner consumes the expression left to right
type scanner struct {
	in  string
	pos int
}

func (s *scanner) letters() string {
	return s.run(isLetter)
}

func (s *scanner) digits() string {
	return s.run(isDigit)
}

func (s *scanner) literal(c byte) bool {
	if s.pos < len(s.in) && s.in[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) done() bool {
	return s.pos == len(s.in)
}

func (s *scanner) run(accept func(byte) bool) string {
	start := s.pos
	for s.pos < len(s.in) && accept(s.in[s.pos]) {
		s.pos++
	}
	return s.in[start:s.pos]
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
