package wire

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestScalarFields(t *testing.T) {
	data := []byte{
		0x2a,                   // U1 = 42
		0x34, 0x12,             // U2 = 0x1234
		0x78, 0x56, 0x34, 0x12, // U4 = 0x12345678
		0xff,                   // I1 = -1
		0xfe, 0xff,             // I2 = -2
		0x00, 0x00, 0x60, 0x40, // R4 = 3.5
		'P', // C1
	}
	d := NewDecoder(data)

	if got := d.U1(); got != 42 {
		t.Errorf("U1() = %d, want 42", got)
	}
	if got := d.U2(); got != 0x1234 {
		t.Errorf("U2() = %#x, want 0x1234", got)
	}
	if got := d.U4(); got != 0x12345678 {
		t.Errorf("U4() = %#x, want 0x12345678", got)
	}
	if got := d.I1(); got != -1 {
		t.Errorf("I1() = %d, want -1", got)
	}
	if got := d.I2(); got != -2 {
		t.Errorf("I2() = %d, want -2", got)
	}
	if got := d.R4(); got != 3.5 {
		t.Errorf("R4() = %v, want 3.5", got)
	}
	if got := d.C1(); got != 'P' {
		t.Errorf("C1() = %q, want 'P'", got)
	}
	if d.Err() != nil {
		t.Fatalf("Err() = %v, want nil", d.Err())
	}
	if d.More() {
		t.Error("More() = true after consuming all bytes")
	}
}

func TestCn(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", []byte{0x00}, ""},
		{"ascii", []byte{0x05, 'h', 'e', 'l', 'l', 'o'}, "hello"},
		{"cp1252_micro", []byte{0x02, 0xb5, 'A'}, "µA"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDecoder(tc.data)
			got := d.Cn()
			if d.Err() != nil {
				t.Fatalf("Err() = %v", d.Err())
			}
			if got != tc.want {
				t.Errorf("Cn() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBnDn(t *testing.T) {
	d := NewDecoder([]byte{0x03, 0xaa, 0xbb, 0xcc})
	if got := d.Bn(); !reflect.DeepEqual(got, []byte{0xaa, 0xbb, 0xcc}) {
		t.Errorf("Bn() = %v", got)
	}

	// 12 bits -> 2 data bytes after the u16 bit count.
	d = NewDecoder([]byte{0x0c, 0x00, 0x0f, 0xf0})
	if got := d.Dn(); !reflect.DeepEqual(got, []byte{0x0f, 0xf0}) {
		t.Errorf("Dn() = %v", got)
	}
	if d.Err() != nil {
		t.Fatalf("Err() = %v", d.Err())
	}
}

func TestFixedCountArrays(t *testing.T) {
	d := NewDecoder([]byte{0x01, 0x00, 0x02, 0x00, 0x03, 0x00})
	if got := d.KxU2(3); !reflect.DeepEqual(got, []uint16{1, 2, 3}) {
		t.Errorf("KxU2(3) = %v", got)
	}

	d = NewDecoder([]byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x00, 0x40})
	if got := d.KxR4(2); !reflect.DeepEqual(got, []float32{1, 2}) {
		t.Errorf("KxR4(2) = %v", got)
	}

	// Three nibbles packed into two bytes, lower nibble first.
	d = NewDecoder([]byte{0x21, 0x03})
	got := d.KxN1(3)
	if len(got) < 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("KxN1(3) = %v, want prefix [1 2 3]", got)
	}
}

func TestTruncation(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(d *Decoder)
	}{
		{"u4_short", []byte{0x01, 0x02}, func(d *Decoder) { d.U4() }},
		{"cn_length_overruns", []byte{0x05, 'a', 'b'}, func(d *Decoder) { d.Cn() }},
		{"bn_length_overruns", []byte{0x09}, func(d *Decoder) { d.Bn() }},
		{"kxu2_short", []byte{0x01, 0x00}, func(d *Decoder) { d.KxU2(2) }},
		{"empty_u1", nil, func(d *Decoder) { d.U1() }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDecoder(tc.data)
			tc.read(d)
			if !errors.Is(d.Err(), ErrTruncated) {
				t.Errorf("Err() = %v, want ErrTruncated", d.Err())
			}
		})
	}
}

func TestStickyError(t *testing.T) {
	d := NewDecoder([]byte{0x01})
	d.U4() // truncated
	if got := d.U1(); got != 0 {
		t.Errorf("U1() after error = %d, want 0", got)
	}
	if d.More() {
		t.Error("More() = true after sticky error")
	}
	if !errors.Is(d.Err(), ErrTruncated) {
		t.Errorf("Err() = %v, want ErrTruncated", d.Err())
	}
}

func TestR4NaN(t *testing.T) {
	d := NewDecoder([]byte{0x00, 0x00, 0xc0, 0x7f})
	if got := d.R4(); !math.IsNaN(float64(got)) {
		t.Errorf("R4() = %v, want NaN", got)
	}
}
