// Package stdftest builds synthetic STDF byte streams for tests.
//
// Every builder appends a complete record, 4-byte header included, so a
// test stream is just the concatenation of builder outputs.
package stdftest

import (
	"encoding/binary"
	"math"
)

// B accumulates record content bytes.
type B struct {
	buf []byte
}

// U1 appends an unsigned 8-bit field.
func (b *B) U1(v uint8) *B {
	b.buf = append(b.buf, v)
	return b
}

// U2 appends an unsigned 16-bit little-endian field.
func (b *B) U2(v uint16) *B {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, v)
	return b
}

// U4 appends an unsigned 32-bit little-endian field.
func (b *B) U4(v uint32) *B {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return b
}

// I2 appends a signed 16-bit little-endian field.
func (b *B) I2(v int16) *B {
	return b.U2(uint16(v))
}

// I1 appends a signed 8-bit field.
func (b *B) I1(v int8) *B {
	return b.U1(uint8(v))
}

// R4 appends a 32-bit little-endian float field.
func (b *B) R4(v float32) *B {
	return b.U4(math.Float32bits(v))
}

// C1 appends a single character field.
func (b *B) C1(c byte) *B {
	return b.U1(c)
}

// Cn appends a length-prefixed string field.
func (b *B) Cn(s string) *B {
	b.buf = append(b.buf, byte(len(s)))
	b.buf = append(b.buf, s...)
	return b
}

// Bytes returns the accumulated content.
func (b *B) Bytes() []byte {
	return b.buf
}

// Record frames content as a complete STDF record.
func Record(typ, sub uint8, content []byte) []byte {
	out := make([]byte, 0, 4+len(content))
	out = binary.LittleEndian.AppendUint16(out, uint16(len(content)))
	out = append(out, typ, sub)
	return append(out, content...)
}

// Concat joins complete records into one stream.
func Concat(recs ...[]byte) []byte {
	var out []byte
	for _, r := range recs {
		out = append(out, r...)
	}
	return out
}

// FAR returns a File Attributes Record.
func FAR() []byte {
	return Record(0, 10, new(B).U1(2).U1(4).Bytes())
}

// MIR returns a Master Information Record with the given lot id and
// every other string field empty.
func MIR(lotID string) []byte {
	b := new(B).U4(100).U4(200).U1(1).C1(' ').C1(' ').C1(' ').U2(0).C1(' ')
	b.Cn(lotID)
	for i := 0; i < 29; i++ {
		b.Cn("")
	}
	return Record(1, 10, b.Bytes())
}

// MRR returns a Master Results Record.
func MRR() []byte {
	return Record(1, 20, new(B).U4(300).C1(' ').Cn("").Cn("").Bytes())
}

// SDR returns a Site Description Record declaring the given sites.
func SDR(head uint8, sites ...uint8) []byte {
	b := new(B).U1(head).U1(1).U1(uint8(len(sites)))
	for _, s := range sites {
		b.U1(s)
	}
	for i := 0; i < 16; i++ {
		b.Cn("")
	}
	return Record(1, 80, b.Bytes())
}

// TSR returns a Test Synopsis Record including the statistics block.
func TSR(head, site uint8, testTyp byte, testNum, execCnt uint32, testNam string) []byte {
	b := new(B).U1(head).U1(site).C1(testTyp).U4(testNum).U4(execCnt).U4(0).U4(0)
	b.Cn(testNam).Cn("seq").Cn("")
	b.U1(0).R4(0.5).R4(0).R4(0).R4(0).R4(0)
	return Record(10, 30, b.Bytes())
}

// PIR returns a Part Information Record.
func PIR(head, site uint8) []byte {
	return Record(5, 10, new(B).U1(head).U1(site).Bytes())
}

// PRR returns a Part Results Record.
func PRR(head, site uint8, partID string, softBin, hardBin uint16, x, y int16) []byte {
	b := new(B).U1(head).U1(site).U1(0).U2(1).U2(hardBin).U2(softBin).
		I2(x).I2(y).U4(10).Cn(partID).Cn("")
	return Record(5, 20, b.Bytes())
}

// PTR returns a Parametric Test Record with the full optional block.
func PTR(testNum uint32, head, site uint8, result float32) []byte {
	b := new(B).U4(testNum).U1(head).U1(site).U1(0).U1(0).R4(result).
		Cn("txt").Cn("")
	b.U1(0).I1(0).I1(0).I1(0).R4(-1).R4(1).Cn("V").Cn("").Cn("").Cn("").R4(-2).R4(2)
	return Record(15, 10, b.Bytes())
}

// PTRShort returns a Parametric Test Record without the optional block.
func PTRShort(testNum uint32, head, site uint8, result float32) []byte {
	b := new(B).U4(testNum).U1(head).U1(site).U1(0).U1(0).R4(result).
		Cn("").Cn("")
	return Record(15, 10, b.Bytes())
}

// FTR returns a minimal Functional Test Record. failed sets TEST_FLG
// bit 7.
func FTR(testNum uint32, head, site uint8, failed bool) []byte {
	flg := uint8(0)
	if failed {
		flg = 0x80
	}
	b := new(B).U4(testNum).U1(head).U1(site).U1(flg)
	return Record(15, 20, b.Bytes())
}

// MPR returns a Multiple-Result Parametric Record with pin indices in
// the optional block.
func MPR(testNum uint32, head, site uint8, pinIndex []uint16, results []float32) []byte {
	b := new(B).U4(testNum).U1(head).U1(site).U1(0).U1(0)
	b.U2(uint16(len(pinIndex))).U2(uint16(len(results)))
	nibbles := (len(pinIndex) + 1) / 2
	for i := 0; i < nibbles; i++ {
		b.U1(0)
	}
	for _, r := range results {
		b.R4(r)
	}
	b.Cn("").Cn("")
	b.U1(0).I1(0).I1(0).I1(0).R4(0).R4(0).R4(0).R4(0)
	for _, p := range pinIndex {
		b.U2(p)
	}
	return Record(15, 15, b.Bytes())
}

// WIR returns a Wafer Information Record.
func WIR(head uint8, waferID string) []byte {
	return Record(2, 10, new(B).U1(head).U1(255).U4(0).Cn(waferID).Bytes())
}

// WRR returns a Wafer Results Record.
func WRR(head uint8, waferID string) []byte {
	b := new(B).U1(head).U1(255).U4(0).U4(1).U4(0).U4(0).U4(1).U4(1).
		Cn(waferID).Cn("").Cn("").Cn("").Cn("").Cn("")
	return Record(2, 20, b.Bytes())
}

// SBR returns a Software Bin Record.
func SBR(head, site uint8, bin uint16, count uint32, pf byte, name string) []byte {
	b := new(B).U1(head).U1(site).U2(bin).U4(count).C1(pf).Cn(name)
	return Record(1, 50, b.Bytes())
}

// HBR returns a Hardware Bin Record.
func HBR(head, site uint8, bin uint16, count uint32, pf byte, name string) []byte {
	b := new(B).U1(head).U1(site).U2(bin).U4(count).C1(pf).Cn(name)
	return Record(1, 40, b.Bytes())
}

// PMR returns a Pin Map Record.
func PMR(index uint16, chanNam, phyNam string) []byte {
	b := new(B).U2(index).U2(0).Cn(chanNam).Cn(phyNam).Cn("").U1(1).U1(1)
	return Record(1, 60, b.Bytes())
}
