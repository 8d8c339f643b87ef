// Package bitflags implements typesafe bitmask flag sets over a fixed,
// closed table of named flags.
//
// A Def holds the declaration table (name, bit pattern pairs) and is built
// once, either by hand with NewDef or from a generated file produced by the
// flaggen tool. Values constructed from a Def support the usual set algebra,
// three conversion policies for raw integers, iteration over set flags and a
// textual grammar of the form "A | B | 0x8".
package bitflags

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Bits is the set of underlying integer widths a flag set can wrap.
type Bits interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Flag is a single named bit pattern within a declaration table. Bits may be
// zero (a flag contained in every value) and may overlap other flags; a flag
// with more than one bit set is treated as one atomic unit by the conversion
// policies.
type Flag[T Bits] struct {
	Name string
	Bits T
}

var (
	ErrEmptyName     = errors.New("flag name must not be empty")
	ErrDuplicateName = errors.New("duplicate flag name")
)

// Def is the closed declaration table of one flag-set type. It is immutable
// after construction; all Values hang off a Def.
type Def[T Bits] struct {
	flags  []Flag[T]
	byName map[string]T
	all    T
}

// NewDef builds a declaration table from flags in declaration order. Names
// must be non-empty and unique (case-sensitive).
func NewDef[T Bits](flags ...Flag[T]) (*Def[T], error) {
	d := &Def[T]{
		flags:  append([]Flag[T](nil), flags...),
		byName: make(map[string]T, len(flags)),
	}
	for _, f := range flags {
		if f.Name == "" {
			return nil, ErrEmptyName
		}
		if _, dup := d.byName[f.Name]; dup {
			return nil, errors.Wrap(ErrDuplicateName, f.Name)
		}
		d.byName[f.Name] = f.Bits
		d.all |= f.Bits
	}
	return d, nil
}

// MustNewDef is NewDef, panicking on an invalid table. Intended for package
// variables and generated code.
func MustNewDef[T Bits](flags ...Flag[T]) *Def[T] {
	d, err := NewDef(flags...)
	if err != nil {
		panic(err)
	}
	return d
}

// Flags returns the declaration table in declaration order.
func (d *Def[T]) Flags() []Flag[T] {
	return append([]Flag[T](nil), d.flags...)
}

// Bits returns the union of every declared flag's bits.
func (d *Def[T]) Bits() T { return d.all }

// Empty returns the value with no bits set.
func (d *Def[T]) Empty() Value[T] { return Value[T]{def: d} }

// All returns the value holding every declared flag.
func (d *Def[T]) All() Value[T] { return Value[T]{bits: d.all, def: d} }

// FromBits converts raw bits, succeeding only if every set bit is covered by
// the declared flags. A flag with several bits set must be covered in full.
func (d *Def[T]) FromBits(bits T) (Value[T], bool) {
	v := d.FromBitsTruncate(bits)
	if v.bits != bits {
		return d.Empty(), false
	}
	return v, true
}

// FromBitsTruncate converts raw bits, silently dropping any bits not covered
// by a declared flag. A flag whose bits are only partially present
// contributes nothing.
func (d *Def[T]) FromBitsTruncate(bits T) Value[T] {
	var kept T
	for _, f := range d.flags {
		if bits&f.Bits == f.Bits {
			kept |= f.Bits
		}
	}
	return Value[T]{bits: kept, def: d}
}

// FromBitsRetain converts raw bits verbatim, without validation. Unknown bits
// are preserved by every operation except Complement and explicit truncation.
func (d *Def[T]) FromBitsRetain(bits T) Value[T] {
	return Value[T]{bits: bits, def: d}
}

// FromName resolves an exact, case-sensitive flag name to its value. It does
// not understand the "A | B" grammar; see Parse for that.
func (d *Def[T]) FromName(name string) (Value[T], bool) {
	bits, ok := d.byName[name]
	if !ok {
		return d.Empty(), false
	}
	return Value[T]{bits: bits, def: d}, true
}

// Value is a flag-set value: raw bits bound to a declaration table. It is a
// plain copyable value; the four mutators take a pointer receiver and require
// the caller's exclusive access, everything else is pure.
type Value[T Bits] struct {
	bits T
	def  *Def[T]
}

// Bits returns the raw underlying bits, unknown bits included.
func (v Value[T]) Bits() T { return v.bits }

func (v Value[T]) IsEmpty() bool { return v.bits == 0 }

// IsAll reports whether every declared flag is present. Unknown bits do not
// get in the way.
func (v Value[T]) IsAll() bool { return v.bits&v.def.all == v.def.all }

// Intersects reports whether v and other share any set bit.
func (v Value[T]) Intersects(other Value[T]) bool { return v.bits&other.bits != 0 }

// Contains reports whether other's bits are a subset of v's. The empty set is
// a subset of everything, so a zero-bit flag is contained in every value.
func (v Value[T]) Contains(other Value[T]) bool { return v.bits&other.bits == other.bits }

// Insert sets other's bits in place.
func (v *Value[T]) Insert(other Value[T]) { v.bits |= other.bits }

// Remove clears other's bits in place.
func (v *Value[T]) Remove(other Value[T]) { v.bits &^= other.bits }

// Toggle flips other's bits in place.
func (v *Value[T]) Toggle(other Value[T]) { v.bits ^= other.bits }

// SetTo inserts other when on is true and removes it otherwise.
func (v *Value[T]) SetTo(other Value[T], on bool) {
	if on {
		v.Insert(other)
	} else {
		v.Remove(other)
	}
}

func (v Value[T]) Union(other Value[T]) Value[T] {
	return Value[T]{bits: v.bits | other.bits, def: v.def}
}

func (v Value[T]) Intersection(other Value[T]) Value[T] {
	return Value[T]{bits: v.bits & other.bits, def: v.def}
}

func (v Value[T]) Difference(other Value[T]) Value[T] {
	return Value[T]{bits: v.bits &^ other.bits, def: v.def}
}

func (v Value[T]) SymmetricDifference(other Value[T]) Value[T] {
	return Value[T]{bits: v.bits ^ other.bits, def: v.def}
}

// Complement inverts the bits and then truncates: unlike the other
// combinators, bits not covered by the declaration table are cleared from the
// result.
func (v Value[T]) Complement() Value[T] {
	return v.def.FromBitsTruncate(^v.bits)
}

// width reports the size of T in bits.
func width[T Bits]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}
