package bitflags

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func collectNames[T Bits](it *Iter[T]) []string {
	var names []string
	for f, ok := it.Next(); ok; f, ok = it.Next() {
		names = append(names, f.Name)
	}
	return names
}

func TestIterDeclarationOrder(t *testing.T) {
	assert := assertion.New(t)
	d := testDef(t)

	assert.Equal([]string{"A", "B", "C"}, collectNames(d.All().Iter()))
	assert.Equal([]string{"A", "C"}, collectNames(d.FromBitsTruncate(0b101).Iter()))
	assert.Nil(collectNames(d.Empty().Iter()))
}

func TestIterConsumesBits(t *testing.T) {
	assert := assertion.New(t)

	// wide flag declared first claims its bits once
	wideFirst := MustNewDef(
		Flag[uint8]{Name: "AB", Bits: 0b011},
		Flag[uint8]{Name: "A", Bits: 0b001},
		Flag[uint8]{Name: "B", Bits: 0b010},
	)
	assert.Equal([]string{"AB"}, collectNames(wideFirst.FromBitsRetain(0b011).Iter()))

	// narrow flags declared first leave nothing for the wide one
	narrowFirst := MustNewDef(
		Flag[uint8]{Name: "A", Bits: 0b001},
		Flag[uint8]{Name: "B", Bits: 0b010},
		Flag[uint8]{Name: "AB", Bits: 0b011},
	)
	assert.Equal([]string{"A", "B"}, collectNames(narrowFirst.FromBitsRetain(0b011).Iter()))
}

func TestIterSkipsZeroFlags(t *testing.T) {
	assert := assertion.New(t)
	d := MustNewDef(
		Flag[uint8]{Name: "None", Bits: 0},
		Flag[uint8]{Name: "Some", Bits: 0b1},
	)

	assert.Equal([]string{"Some"}, collectNames(d.All().Iter()))
	assert.Nil(collectNames(d.Empty().Iter()))
}

func TestIterRemaining(t *testing.T) {
	assert := assertion.New(t)
	d := testDef(t)

	v := d.FromBitsRetain(0b1101)
	it := v.Iter()
	assert.Equal([]string{"A", "C"}, collectNames(it))
	assert.Equal(uint8(0b1000), it.Remaining())

	// iteration never mutates the source
	assert.Equal(uint8(0b1101), v.Bits())

	// a fresh iterator restarts from the full value
	assert.Equal([]string{"A", "C"}, collectNames(v.Iter()))
}

func TestIterBits(t *testing.T) {
	assert := assertion.New(t)
	d := testDef(t)

	var masks []uint8
	it := d.FromBitsRetain(0b1101).IterBits()
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		masks = append(masks, m)
	}
	assert.Equal([]uint8{0b0001, 0b0100, 0b1000}, masks)

	_, ok := d.Empty().IterBits().Next()
	assert.False(ok)
}
