// Package addr builds and parses address expressions for the ad editor's
// addressing mini-language.
//
// The syntax is adapted from the Sam text editor and identifies a position
// or range within a buffer. Addresses are written to a buffer's addr or
// xaddr file; the editor resolves them against the buffer's content at
// write time, so an address that is well-formed here can still fail
// editor-side when it is out of bounds.
//
// Simple addresses:
//
//	.      current dot
//	0      start of file
//	$      end of file
//	5      line 5
//	#32    character 32
//	3:14   line 3, column 14
//	/re/   next match of re
//	-/re/  previous match of re
//
// A simple address may carry relative suffixes (+2, -#3, +/re/, a trailing
// - or + extending to line start or end). Two simple addresses joined by a
// comma form a range; either side may be omitted and defaults to start or
// end of file, so "," alone addresses the whole buffer.
package addr

import (
	"strconv"
	"strings"
)

type baseKind int

const (
	kindCurrent baseKind = iota
	kindCurrentLine
	kindBOL
	kindEOL
	kindBOF
	kindEOF
	kindLine
	kindRelLine
	kindChar
	kindRelChar
	kindLineCol
	kindRegex
	kindRegexBack
)

// base is one primitive address component.
type base struct {
	kind baseKind
	n    int
	col  int
	re   string // wire form, '/' pre-escaped
}

func (b base) validSuffix() bool {
	switch b.kind {
	case kindBOL, kindEOL, kindCurrentLine, kindRelLine, kindRelChar, kindRegex, kindRegexBack:
		return true
	}
	return false
}

func (b base) render(sb *strings.Builder, suffix bool) {
	switch b.kind {
	case kindCurrent:
		sb.WriteByte('.')
	case kindCurrentLine:
		sb.WriteString("-+")
	case kindBOL:
		sb.WriteByte('-')
	case kindEOL:
		sb.WriteByte('+')
	case kindBOF:
		sb.WriteByte('0')
	case kindEOF:
		sb.WriteByte('$')
	case kindLine:
		sb.WriteString(strconv.Itoa(b.n))
	case kindRelLine:
		writeSigned(sb, b.n)
	case kindChar:
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(b.n))
	case kindRelChar:
		if b.n < 0 {
			sb.WriteString("-#")
			sb.WriteString(strconv.Itoa(-b.n))
		} else {
			sb.WriteString("+#")
			sb.WriteString(strconv.Itoa(b.n))
		}
	case kindLineCol:
		sb.WriteString(strconv.Itoa(b.n))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(b.col))
	case kindRegex:
		// In suffix position a forward regex needs its direction sign.
		if suffix {
			sb.WriteByte('+')
		}
		sb.WriteByte('/')
		sb.WriteString(b.re)
		sb.WriteByte('/')
	case kindRegexBack:
		sb.WriteString("-/")
		sb.WriteString(b.re)
		sb.WriteByte('/')
	}
}

func writeSigned(sb *strings.Builder, n int) {
	if n < 0 {
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(-n))
	} else {
		sb.WriteByte('+')
		sb.WriteString(strconv.Itoa(n))
	}
}

// simple is a base address plus any relative suffixes applied to it.
type simple struct {
	base     base
	suffixes []base
}

func (s simple) render(sb *strings.Builder) {
	s.base.render(sb, false)
	for _, suf := range s.suffixes {
		suf.render(sb, true)
	}
}

// Addr is a position or range within a buffer, expressed in the editor's
// addressing language. The zero value is the current dot.
type Addr struct {
	start    simple
	end      simple
	compound bool
	hasStart bool // compound only: start written explicitly
	hasEnd   bool // compound only: end written explicitly
}

func simpleAddr(b base) Addr {
	return Addr{start: simple{base: b}}
}

// Current addresses the current dot: ".".
func Current() Addr { return simpleAddr(base{kind: kindCurrent}) }

// BOF addresses the start of the file: "0".
func BOF() Addr { return simpleAddr(base{kind: kindBOF}) }

// EOF addresses the end of the file: "$".
func EOF() Addr { return simpleAddr(base{kind: kindEOF}) }

// Line addresses the nth line of the file (1-based, as typed): "n".
func Line(n int) Addr { return simpleAddr(base{kind: kindLine, n: n}) }

// RelLines addresses n lines forward (or backward when negative) from the
// current dot: "+n" / "-n".
func RelLines(n int) Addr { return simpleAddr(base{kind: kindRelLine, n: n}) }

// Char addresses the nth character of the file: "#n".
func Char(n int) Addr { return simpleAddr(base{kind: kindChar, n: n}) }

// RelChars addresses n characters forward (or backward when negative) from
// the current dot: "+#n" / "-#n".
func RelChars(n int) Addr { return simpleAddr(base{kind: kindRelChar, n: n}) }

// LineCol addresses a line and column (both 1-based, as typed): "l:c".
func LineCol(line, col int) Addr {
	return simpleAddr(base{kind: kindLineCol, n: line, col: col})
}

// Regex addresses the next match of re: "/re/". Any '/' in re is escaped;
// pattern validity is checked by the editor, not here.
func Regex(re string) Addr {
	return simpleAddr(base{kind: kindRegex, re: escapeRegex(re)})
}

// RegexBack addresses the previous match of re: "-/re/".
func RegexBack(re string) Addr {
	return simpleAddr(base{kind: kindRegexBack, re: escapeRegex(re)})
}

func escapeRegex(re string) string {
	return strings.ReplaceAll(re, "/", `\/`)
}

// Full addresses the whole file: ",".
func Full() Addr {
	return Addr{compound: true}
}

// Range addresses from the start of a to the end of b: "a,b".
func Range(a, b Addr) Addr {
	return Addr{
		start:    a.start,
		end:      endPart(b),
		compound: true,
		hasStart: true,
		hasEnd:   true,
	}
}

// From addresses from the start of a to the end of the file: "a,".
func From(a Addr) Addr {
	return Addr{start: a.start, compound: true, hasStart: true}
}

// To addresses from the start of the file to the end of a: ",a".
func To(a Addr) Addr {
	return Addr{end: endPart(a), compound: true, hasEnd: true}
}

func endPart(a Addr) simple {
	if a.compound {
		return a.end
	}
	return a.start
}

// withSuffix appends a relative suffix to the address. For a compound
// address the suffix extends the end of the range.
func (a Addr) withSuffix(b base) Addr {
	if a.compound {
		a.end.suffixes = append(append([]base(nil), a.end.suffixes...), b)
		a.hasEnd = true
		return a
	}
	a.start.suffixes = append(append([]base(nil), a.start.suffixes...), b)
	return a
}

// PlusLines extends the address n lines forward: "+n".
func (a Addr) PlusLines(n int) Addr {
	return a.withSuffix(base{kind: kindRelLine, n: n})
}

// MinusLines extends the address n lines backward: "-n".
func (a Addr) MinusLines(n int) Addr {
	return a.withSuffix(base{kind: kindRelLine, n: -n})
}

// PlusChars extends the address n characters forward: "+#n".
func (a Addr) PlusChars(n int) Addr {
	return a.withSuffix(base{kind: kindRelChar, n: n})
}

// MinusChars extends the address n characters backward: "-#n".
func (a Addr) MinusChars(n int) Addr {
	return a.withSuffix(base{kind: kindRelChar, n: -n})
}

// ToLineStart extends the address back to the start of its line: "-".
func (a Addr) ToLineStart() Addr {
	return a.withSuffix(base{kind: kindBOL})
}

// ToLineEnd extends the address forward to the end of its line: "+".
func (a Addr) ToLineEnd() Addr {
	return a.withSuffix(base{kind: kindEOL})
}

// ThenRegex extends the address to the next match of re: "+/re/".
func (a Addr) ThenRegex(re string) Addr {
	return a.withSuffix(base{kind: kindRegex, re: escapeRegex(re)})
}

// ThenRegexBack extends the address to the previous match of re: "-/re/".
func (a Addr) ThenRegexBack(re string) Addr {
	return a.withSuffix(base{kind: kindRegexBack, re: escapeRegex(re)})
}

// String renders the exact wire form written to an addr or xaddr file.
func (a Addr) String() string {
	var sb strings.Builder

	if !a.compound {
		a.start.render(&sb)
		return sb.String()
	}

	if a.hasStart {
		a.start.render(&sb)
	}
	sb.WriteByte(',')
	if a.hasEnd {
		a.end.render(&sb)
	}
	return sb.String()
}
