// Package wire encodes records with the protobuf wire format. Fields
// are written in the order the caller appends them, which callers keep
// in field-number order, so the encoding of a record is deterministic.
package wire

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	// ErrWireType is returned when a known field arrives with
	// an unexpected wire type
	ErrWireType = errors.New("unexpected wire type")
	// ErrOverflow is returned when a varint does not fit the
	// width of the field it decodes into
	ErrOverflow = errors.New("value overflows field")
)

// Encoder accumulates an encoded record
type Encoder struct {
	buf []byte
}

// Uint appends a varint field
func (encoder *Encoder) Uint(num protowire.Number, v uint64) *Encoder {
	encoder.buf = protowire.AppendTag(encoder.buf, num, protowire.VarintType)
	encoder.buf = protowire.AppendVarint(encoder.buf, v)

	return encoder
}

// OptionalUint appends a varint field only when v is not nil
func (encoder *Encoder) OptionalUint(num protowire.Number, v *uint64) *Encoder {
	if v == nil {
		return encoder
	}

	return encoder.Uint(num, *v)
}

// String appends a length-delimited field
func (encoder *Encoder) String(num protowire.Number, s string) *Encoder {
	encoder.buf = protowire.AppendTag(encoder.buf, num, protowire.BytesType)
	encoder.buf = protowire.AppendString(encoder.buf, s)

	return encoder
}

// Bytes returns the encoded record
func (encoder *Encoder) Bytes() []byte {
	return encoder.buf
}

// Field is one decoded field. Varint fields carry their value in
// Uint, length-delimited fields in Data.
type Field struct {
	Num  protowire.Number
	Type protowire.Type
	Uint uint64
	Data []byte
}

// AsUint returns the varint value or ErrWireType
func (field Field) AsUint() (uint64, error) {
	if field.Type != protowire.VarintType {
		return 0, fmt.Errorf("%w: field %d is %d", ErrWireType, field.Num, field.Type)
	}

	return field.Uint, nil
}

// AsUint32 returns the varint value or an error if it
// does not fit in 32 bits
func (field Field) AsUint32() (uint32, error) {
	v, err := field.AsUint()

	if err != nil {
		return 0, err
	}

	if v > math.MaxUint32 {
		return 0, fmt.Errorf("%w: field %d is %d", ErrOverflow, field.Num, v)
	}

	return uint32(v), nil
}

// AsUint8 returns the varint value or an error if it
// does not fit in 8 bits
func (field Field) AsUint8() (uint8, error) {
	v, err := field.AsUint()

	if err != nil {
		return 0, err
	}

	if v > math.MaxUint8 {
		return 0, fmt.Errorf("%w: field %d is %d", ErrOverflow, field.Num, v)
	}

	return uint8(v), nil
}

// AsString copies the length-delimited value into a string
func (field Field) AsString() (string, error) {
	if field.Type != protowire.BytesType {
		return "", fmt.Errorf("%w: field %d is %d", ErrWireType, field.Num, field.Type)
	}

	return string(field.Data), nil
}

// Walk decodes b and calls fn once per field. Fields of other
// wire types are skipped without calling fn.
func Walk(b []byte, fn func(field Field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)

		if n < 0 {
			return protowire.ParseError(n)
		}

		b = b[n:]
		field := Field{Num: num, Type: typ}

		switch typ {
		case protowire.VarintType:
			field.Uint, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			field.Data, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)

			if n < 0 {
				return protowire.ParseError(n)
			}

			b = b[n:]

			continue
		}

		if n < 0 {
			return protowire.ParseError(n)
		}

		b = b[n:]

		if err := fn(field); err != nil {
			return err
		}
	}

	return nil
}

// AsEnum returns the varint value as an enumeration
// backed by uint8
func AsEnum[T ~uint8](field Field) (T, error) {
	v, err := field.AsUint8()

	return T(v), err
}
