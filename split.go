package wkt

// componentScanner yields the top-level comma-separated components of a
// collection body, one complete parenthesized WKT fragment at a time. Commas
// inside parentheses belong to the current component, so a polygon with holes
// or a nested collection scans as a single component.
//
// Usage follows bufio.Scanner: call Scan until it returns false, reading each
// component with Text, then check Err. Scanning is a single linear pass over
// the input; restart by constructing a new scanner.
type componentScanner struct {
	rest string
	text string
	err  error
	done bool
}

func newComponentScanner(body string) *componentScanner {
	return &componentScanner{rest: body}
}

// Scan advances to the next component. It returns false at end of input or on
// a malformed body; Err tells the two apart.
func (s *componentScanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}
	depth := 0
	for i := 0; i < len(s.rest); i++ {
		switch s.rest[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				s.err = ErrUnbalanced
				return false
			}
		case ',':
			if depth == 0 {
				s.text = s.rest[:i]
				s.rest = s.rest[i+1:]
				return true
			}
		}
	}
	if depth != 0 {
		s.err = ErrUnbalanced
		return false
	}
	s.text = s.rest
	s.rest = ""
	s.done = true
	return true
}

// Text returns the component produced by the last call to Scan.
func (s *componentScanner) Text() string { return s.text }

// Err returns the first error encountered while scanning.
func (s *componentScanner) Err() error { return s.err }
