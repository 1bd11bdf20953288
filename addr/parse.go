package addr

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors.
var (
	// ErrNotAnAddress is returned when the input is not a valid address
	// expression.
	ErrNotAnAddress = errors.New("not an address")

	// ErrInvalidSuffix is returned when a relative suffix uses a base form
	// that is only valid in leading position.
	ErrInvalidSuffix = errors.New("invalid address suffix")

	// ErrUnclosedDelimiter is returned when a regex address is missing its
	// closing '/'.
	ErrUnclosedDelimiter = errors.New("unclosed regex delimiter")
)

// UnexpectedCharacterError reports a character that cannot appear at its
// position in an address expression.
type UnexpectedCharacterError struct {
	Char rune
}

func (e *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character %q in address", e.Char)
}

// Parse parses the wire form of an address expression. Round-trips with
// Addr.String. Regex patterns are checked for delimiter balance only;
// pattern validity is the editor's concern.
func Parse(input string) (Addr, error) {
	sc := &scanner{runes: []rune(input)}

	a, err := parseAddr(sc)
	if err != nil {
		return Addr{}, err
	}

	// Only trailing spaces may remain.
	for {
		r, ok := sc.peek()
		if !ok {
			break
		}
		if r != ' ' {
			return Addr{}, &UnexpectedCharacterError{Char: r}
		}
		sc.next()
	}

	return a, nil
}

type scanner struct {
	runes []rune
	pos   int
}

func (s *scanner) peek() (rune, bool) {
	if s.pos >= len(s.runes) {
		return 0, false
	}
	return s.runes[s.pos], true
}

func (s *scanner) next() (rune, bool) {
	r, ok := s.peek()
	if ok {
		s.pos++
	}
	return r, ok
}

func parseAddr(sc *scanner) (Addr, error) {
	var (
		start    simple
		hasStart bool
	)

	switch s, err := parseSimple(sc); {
	case err == nil:
		start, hasStart = s, true
	case errors.Is(err, ErrNotAnAddress):
		// A missing start is only valid ahead of a ','.
	default:
		return Addr{}, err
	}

	r, ok := sc.peek()
	if !ok || r == ' ' {
		if !hasStart {
			return Addr{}, ErrNotAnAddress
		}
		return Addr{start: start}, nil
	}

	if r != ',' {
		return Addr{}, ErrNotAnAddress
	}
	sc.next()

	a := Addr{start: start, compound: true, hasStart: hasStart}
	switch end, err := parseSimple(sc); {
	case err == nil:
		a.end, a.hasEnd = end, true
	case errors.Is(err, ErrNotAnAddress):
		// Missing end defaults to end of file.
	default:
		return Addr{}, err
	}

	return a, nil
}

func parseSimple(sc *scanner) (simple, error) {
	b, err := parseBase(sc)
	if err != nil {
		return simple{}, err
	}

	s := simple{base: b}
	for {
		r, ok := sc.peek()
		if !ok || (r != '+' && r != '-') {
			return s, nil
		}

		suf, err := parseBase(sc)
		if err != nil {
			return simple{}, err
		}
		if !suf.validSuffix() {
			return simple{}, ErrInvalidSuffix
		}
		s.suffixes = append(s.suffixes, suf)
	}
}

type direction int

const (
	dirNone direction = iota
	dirFwd
	dirBck
)

func parseBase(sc *scanner) (base, error) {
	d := dirNone
	if r, ok := sc.peek(); ok {
		switch r {
		case '-':
			sc.next()
			d = dirBck
		case '+':
			sc.next()
			d = dirFwd
		}
	}

	r, ok := sc.peek()
	if !ok {
		switch d {
		case dirFwd:
			return base{kind: kindEOL}, nil
		case dirBck:
			return base{kind: kindBOL}, nil
		}
		return base{}, ErrNotAnAddress
	}

	switch {
	case (r == '.' || r == '0' || r == '$') && d != dirNone:
		return base{}, ErrNotAnAddress

	case (r == '-' && d == dirFwd) || (r == '+' && d == dirBck):
		sc.next()
		return base{kind: kindCurrentLine}, nil

	case r == '.':
		sc.next()
		return base{kind: kindCurrent}, nil

	case r == '0':
		sc.next()
		return base{kind: kindBOF}, nil

	case r == '$':
		sc.next()
		return base{kind: kindEOF}, nil

	case r == '#':
		sc.next()
		n, err := parseNum(sc)
		if err != nil {
			return base{}, ErrNotAnAddress
		}
		switch d {
		case dirFwd:
			return base{kind: kindRelChar, n: n}, nil
		case dirBck:
			return base{kind: kindRelChar, n: -n}, nil
		}
		return base{kind: kindChar, n: n}, nil

	case isDigit(r):
		n, err := parseNum(sc)
		if err != nil {
			return base{}, err
		}

		if r2, ok2 := sc.peek(); ok2 && r2 == ':' {
			if d != dirNone {
				return base{}, ErrNotAnAddress
			}
			sc.next()
			r3, ok3 := sc.peek()
			if !ok3 {
				return base{}, ErrNotAnAddress
			}
			if !isDigit(r3) {
				return base{}, &UnexpectedCharacterError{Char: r3}
			}
			col, err := parseNum(sc)
			if err != nil {
				return base{}, err
			}
			return base{kind: kindLineCol, n: n, col: col}, nil
		}

		switch d {
		case dirFwd:
			return base{kind: kindRelLine, n: n}, nil
		case dirBck:
			return base{kind: kindRelLine, n: -n}, nil
		}
		return base{kind: kindLine, n: n}, nil

	case r == '/':
		sc.next()
		return parseDelimitedRegex(sc, d)

	case d == dirFwd:
		return base{kind: kindEOL}, nil

	case d == dirBck:
		return base{kind: kindBOL}, nil
	}

	return base{}, ErrNotAnAddress
}

func parseNum(sc *scanner) (int, error) {
	r, ok := sc.peek()
	if !ok || !isDigit(r) {
		return 0, ErrNotAnAddress
	}

	n := 0
	for {
		r, ok := sc.peek()
		if !ok || !isDigit(r) {
			return n, nil
		}
		sc.next()
		n = n*10 + int(r-'0')
	}
}

// parseDelimitedRegex consumes up to the closing unescaped '/'. Escape
// sequences are kept verbatim so the pattern round-trips byte for byte.
func parseDelimitedRegex(sc *scanner, d direction) (base, error) {
	var sb strings.Builder
	prev := '/'

	for {
		r, ok := sc.next()
		if !ok {
			return base{}, ErrUnclosedDelimiter
		}
		if r == '/' && prev != '\\' {
			if d == dirBck {
				return base{kind: kindRegexBack, re: sb.String()}, nil
			}
			return base{kind: kindRegex, re: sb.String()}, nil
		}
		sb.WriteRune(r)
		prev = r
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
