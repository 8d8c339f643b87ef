package bitflags

import (
	"testing"

	"github.com/pkg/errors"
	assertion "github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert := assertion.New(t)
	d := testDef(t)

	assert.Equal("A | C", d.FromBitsTruncate(0b101).String())
	assert.Equal("A | B | C", d.All().String())
	assert.Equal("", d.Empty().String())
	assert.Equal("0x8", d.FromBitsRetain(0b1000).String())
	assert.Equal("A | 0x8", d.FromBitsRetain(0b1001).String())
}

func TestParse(t *testing.T) {
	assert := assertion.New(t)
	d := testDef(t)

	v, err := d.Parse("A | C")
	assert.NoError(err)
	assert.Equal(uint8(0b101), v.Bits())

	v, err = d.Parse("A|C")
	assert.NoError(err)
	assert.Equal(uint8(0b101), v.Bits())

	v, err = d.Parse("  A  |  0x8 ")
	assert.NoError(err)
	assert.Equal(uint8(0b1001), v.Bits())

	v, err = d.Parse("")
	assert.NoError(err)
	assert.True(v.IsEmpty())

	v, err = d.Parse("   ")
	assert.NoError(err)
	assert.True(v.IsEmpty())

	v, err = d.Parse("0x0")
	assert.NoError(err)
	assert.True(v.IsEmpty())

	// repeated flags union
	v, err = d.Parse("A | A | B")
	assert.NoError(err)
	assert.Equal(uint8(0b011), v.Bits())
}

func TestParseErrors(t *testing.T) {
	assert := assertion.New(t)
	d := testDef(t)

	_, err := d.Parse("A | D")
	var pe *ParseError
	assert.True(errors.As(err, &pe))
	assert.Equal(ParseUnknownName, pe.Reason)
	assert.Equal("D", pe.Token)
	assert.Equal(4, pe.Offset)

	// names are case-sensitive
	_, err = d.Parse("a")
	assert.True(errors.As(err, &pe))
	assert.Equal(ParseUnknownName, pe.Reason)

	_, err = d.Parse("A | 0xzz")
	assert.True(errors.As(err, &pe))
	assert.Equal(ParseInvalidHex, pe.Reason)
	assert.Equal("0xzz", pe.Token)

	// 0x1ff does not fit in 8 bits
	_, err = d.Parse("0x1ff")
	assert.True(errors.As(err, &pe))
	assert.Equal(ParseHexOverflow, pe.Reason)

	_, err = d.Parse("A | | B")
	assert.True(errors.As(err, &pe))
	assert.Equal(ParseEmptyToken, pe.Reason)

	_, err = d.Parse("|")
	assert.True(errors.As(err, &pe))
	assert.Equal(ParseEmptyToken, pe.Reason)
	assert.Equal(0, pe.Offset)
}

func TestRoundTrip(t *testing.T) {
	assert := assertion.New(t)
	d := testDef(t)

	for bits := 0; bits < 256; bits++ {
		v := d.FromBitsRetain(uint8(bits))
		parsed, err := d.Parse(v.String())
		assert.NoError(err)
		assert.Equal(v.Bits(), parsed.Bits())
	}
}

func TestRoundTripOverlappingFlags(t *testing.T) {
	assert := assertion.New(t)
	d := MustNewDef(
		Flag[uint16]{Name: "AB", Bits: 0b011},
		Flag[uint16]{Name: "A", Bits: 0b001},
		Flag[uint16]{Name: "BC", Bits: 0b110},
	)

	for bits := 0; bits < 1024; bits++ {
		v := d.FromBitsRetain(uint16(bits))
		parsed, err := d.Parse(v.String())
		assert.NoError(err)
		assert.Equal(v.Bits(), parsed.Bits())
	}
}
