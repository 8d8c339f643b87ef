package bitflags

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ParseReason classifies why a token was rejected.
type ParseReason int

const (
	ParseEmptyToken ParseReason = iota
	ParseUnknownName
	ParseInvalidHex
	ParseHexOverflow
)

func (r ParseReason) String() string {
	switch r {
	case ParseEmptyToken:
		return "empty flag"
	case ParseUnknownName:
		return "unrecognized named flag"
	case ParseInvalidHex:
		return "invalid hex flag"
	case ParseHexOverflow:
		return "hex flag overflows the underlying width"
	default:
		return "invalid flag"
	}
}

// ParseError reports the token that could not be resolved, the byte offset of
// its first non-space byte in the input, and the reason.
type ParseError struct {
	Token  string
	Offset int
	Reason ParseReason
}

func (e *ParseError) Error() string {
	if e.Reason == ParseEmptyToken {
		return fmt.Sprintf("%s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("%s %q at offset %d", e.Reason, e.Token, e.Offset)
}

// String formats the value in the flag grammar: the names of the declared
// flags present, in declaration order, joined by " | ". Bits not covered by
// any declared flag are appended as one trailing hex literal. The empty value
// formats as "".
func (v Value[T]) String() string {
	var sb strings.Builder
	it := v.Iter()
	for f, ok := it.Next(); ok; f, ok = it.Next() {
		if sb.Len() > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(f.Name)
	}
	if rest := it.Remaining(); rest != 0 {
		if sb.Len() > 0 {
			sb.WriteString(" | ")
		}
		fmt.Fprintf(&sb, "0x%x", rest)
	}
	return sb.String()
}

// Parse decodes the flag grammar: tokens separated by '|', each either an
// exact declared name or a 0x-prefixed hex literal of the underlying width,
// with insignificant whitespace around tokens. Blank input is the empty
// value. Parse is the inverse of String at the bit level.
func (d *Def[T]) Parse(input string) (Value[T], error) {
	v := d.Empty()
	if strings.TrimSpace(input) == "" {
		return v, nil
	}
	pos := 0
	for i, raw := range strings.Split(input, "|") {
		if i > 0 {
			pos++ // the '|'
		}
		tok := strings.TrimSpace(raw)
		start := pos + (len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace)))
		pos += len(raw)

		if tok == "" {
			return d.Empty(), &ParseError{Offset: start, Reason: ParseEmptyToken}
		}
		if hex, isHex := strings.CutPrefix(tok, "0x"); isHex {
			n, err := strconv.ParseUint(hex, 16, width[T]())
			if err != nil {
				reason := ParseInvalidHex
				if errors.Is(err, strconv.ErrRange) {
					reason = ParseHexOverflow
				}
				return d.Empty(), &ParseError{Token: tok, Offset: start, Reason: reason}
			}
			v.Insert(d.FromBitsRetain(T(n)))
			continue
		}
		f, known := d.FromName(tok)
		if !known {
			return d.Empty(), &ParseError{Token: tok, Offset: start, Reason: ParseUnknownName}
		}
		v.Insert(f)
	}
	return v, nil
}
