package bitflags

// Iter walks the declared flags present in a value, in declaration order.
// Matched bits are consumed as the iterator advances, so when declarations
// overlap, an earlier (wider) flag claims its bits and a later, narrower flag
// covering some of the same bits is not reported again. Zero-bit flags are
// never reported.
//
// An Iter is single-pass; call Value.Iter again to restart. The source value
// is never mutated.
type Iter[T Bits] struct {
	def       *Def[T]
	idx       int
	remaining T
}

func (v Value[T]) Iter() *Iter[T] {
	return &Iter[T]{def: v.def, remaining: v.bits}
}

// Next returns the next present flag. ok is false once no declared flag
// matches the remaining bits.
func (it *Iter[T]) Next() (flag Flag[T], ok bool) {
	for it.remaining != 0 && it.idx < len(it.def.flags) {
		f := it.def.flags[it.idx]
		it.idx++
		if f.Bits == 0 {
			continue
		}
		if it.remaining&f.Bits == f.Bits {
			it.remaining &^= f.Bits
			return f, true
		}
	}
	return Flag[T]{}, false
}

// Remaining returns the bits not yet claimed by any declared flag. After Next
// has returned false this is exactly the unknown remainder of the value.
func (it *Iter[T]) Remaining() T { return it.remaining }

// BitIter yields every individually set bit of a value as a power-of-two
// mask, lowest bit first, whether or not the bit belongs to a declared flag.
type BitIter[T Bits] struct {
	remaining T
}

func (v Value[T]) IterBits() *BitIter[T] {
	return &BitIter[T]{remaining: v.bits}
}

func (it *BitIter[T]) Next() (mask T, ok bool) {
	if it.remaining == 0 {
		return 0, false
	}
	mask = it.remaining & -it.remaining
	it.remaining &^= mask
	return mask, true
}
