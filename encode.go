package bitflags

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrUnboundValue = errors.New("value is not bound to a flag definition")

// MarshalText renders the value in the flag grammar. This also makes flag
// sets serialize as strings through encoding/json.
func (v Value[T]) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText parses the flag grammar into the receiver. The receiver must
// originate from a Def so names can be resolved, e.g. a struct field
// initialized with def.Empty() before decoding.
func (v *Value[T]) UnmarshalText(text []byte) error {
	if v.def == nil {
		return ErrUnboundValue
	}
	parsed, err := v.def.Parse(string(text))
	if err != nil {
		return err
	}
	v.bits = parsed.bits
	return nil
}

// EncodeMsgpack writes the raw bits. The binary transport carries the
// lossless representation, unknown bits included, rather than the display
// grammar.
func (v Value[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeUint64(uint64(v.bits))
}

// DecodeMsgpack reads raw bits with retain semantics.
func (v *Value[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	if v.def == nil {
		return ErrUnboundValue
	}
	n, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	if w := width[T](); w < 64 && n>>w != 0 {
		return errors.Errorf("bits 0x%x overflow the %d-bit flag set", n, w)
	}
	v.bits = T(n)
	return nil
}
