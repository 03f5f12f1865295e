// Package wire implements the STDF field-level binary decoders.
//
// STDF records are sequences of little-endian fields with no per-field
// framing: each record kind knows its own layout and reads fields in a
// fixed order. Decoder is a cursor over one record's content bytes with
// an advancing position and a sticky error, so a record decoder can read
// its whole layout and check for truncation once at the end.
package wire

import (
	"encoding/binary"
	"errors"
	"math"

	"golang.org/x/text/encoding/charmap"
)

// ErrTruncated indicates a field read ran past the end of the record's
// content bytes. Checked with errors.Is().
var ErrTruncated = errors.New("wire: field truncated")

// Decoder reads STDF fields from a byte slice at an advancing offset.
//
// The first read that runs past the end of the data sets a sticky error;
// every subsequent read returns the field type's zero value. Callers
// check Err() after reading a full layout.
type Decoder struct {
	data []byte
	pos  int
	err  error
}

// NewDecoder creates a Decoder over data. The Decoder does not copy
// data; the caller must not mutate it while decoding.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Pos returns the current byte offset.
func (d *Decoder) Pos() int { return d.pos }

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.data) - d.pos }

// More reports whether unread bytes remain and no error has occurred.
// Record decoders use it to detect the optional trailing field block
// several STDF record kinds carry.
func (d *Decoder) More() bool { return d.err == nil && d.pos < len(d.data) }

// Err returns the first truncation error encountered, if any.
func (d *Decoder) Err() error { return d.err }

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if d.pos+n > len(d.data) {
		d.err = ErrTruncated
		return nil
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b
}

// U1 reads an unsigned 8-bit integer.
func (d *Decoder) U1() uint8 {
	b := d.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// U2 reads an unsigned 16-bit little-endian integer.
func (d *Decoder) U2() uint16 {
	b := d.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U4 reads an unsigned 32-bit little-endian integer.
func (d *Decoder) U4() uint32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// I1 reads a signed 8-bit integer.
func (d *Decoder) I1() int8 {
	return int8(d.U1())
}

// I2 reads a signed 16-bit little-endian integer.
func (d *Decoder) I2() int16 {
	return int16(d.U2())
}

// I4 reads a signed 32-bit little-endian integer.
func (d *Decoder) I4() int32 {
	return int32(d.U4())
}

// R4 reads a 32-bit little-endian IEEE 754 float.
func (d *Decoder) R4() float32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// C1 reads a single character field as its raw byte.
func (d *Decoder) C1() byte {
	return d.U1()
}

// Cn reads a length-prefixed character string: a one-byte length
// followed by that many character bytes. STDF predates Unicode, so the
// bytes are decoded as CP-1252, which is total over all byte values.
func (d *Decoder) Cn() string {
	n := int(d.U1())
	b := d.take(n)
	if b == nil {
		return ""
	}
	return decodeChars(b)
}

// Bn reads a length-prefixed byte array: a one-byte length followed by
// that many raw bytes. The returned slice is a copy.
func (d *Decoder) Bn() []byte {
	n := int(d.U1())
	b := d.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Dn reads a bit field: a two-byte bit count followed by ceil(bits/8)
// data bytes, least significant bit first. The raw packed bytes are
// returned; callers index bits as needed.
func (d *Decoder) Dn() []byte {
	bits := int(d.U2())
	n := (bits + 7) / 8
	b := d.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// KxU1 reads a fixed-count array of unsigned 8-bit integers.
func (d *Decoder) KxU1(k int) []uint8 {
	b := d.take(k)
	if b == nil {
		return nil
	}
	out := make([]uint8, k)
	copy(out, b)
	return out
}

// KxU2 reads a fixed-count array of unsigned 16-bit integers.
func (d *Decoder) KxU2(k int) []uint16 {
	b := d.take(2 * k)
	if b == nil {
		return nil
	}
	out := make([]uint16, k)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return out
}

// KxR4 reads a fixed-count array of 32-bit floats.
func (d *Decoder) KxR4(k int) []float32 {
	b := d.take(4 * k)
	if b == nil {
		return nil
	}
	out := make([]float32, k)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out
}

// KxN1 reads a fixed-count array of nibbles, packed two per byte with
// the lower nibble first. k is the nibble count; an odd k still
// consumes a whole trailing byte and the pad nibble is returned.
func (d *Decoder) KxN1(k int) []uint8 {
	n := (k + 1) / 2
	b := d.take(n)
	if b == nil {
		return nil
	}
	out := make([]uint8, 0, 2*n)
	for _, x := range b {
		out = append(out, x&0xf, x>>4)
	}
	return out
}

// decodeChars converts CP-1252 bytes to a Go string. Unlike a UTF-8
// interpretation this never fails, matching how testers actually emit
// extended characters in name and label fields.
func decodeChars(b []byte) string {
	ascii := true
	for _, c := range b {
		if c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b)
	}
	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = charmap.Windows1252.DecodeByte(c)
	}
	return string(r)
}
