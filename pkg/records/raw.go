package records

import (
	"bufio"
	"io"
)

// Header is the fixed 4-byte prefix of every STDF record: a content
// length and the (REC_TYP, REC_SUB) kind pair.
type Header struct {
	RecLen uint16
	RecTyp uint8
	RecSub uint8
}

// RawRecord is one undecoded record as read from the stream: its
// header, classified kind, content bytes, and the byte offset of the
// header within the stream for diagnostics.
//
// RawRecords are ephemeral: the stream reader yields a fresh one per
// step and nothing retains them once decoded.
type RawRecord struct {
	Header   Header
	Type     Type
	Offset   int64
	Contents []byte
}

// Stream reads an STDF byte source as a lazy sequence of RawRecords.
//
// A short read of either the header or the content bytes ends the
// sequence silently rather than failing: truncated files are routine
// (in-progress datalogs, interrupted transfers) and everything read up
// to the truncation point is well formed.
type Stream struct {
	r      *bufio.Reader
	offset int64
	rec    RawRecord
	done   bool
}

// NewStream creates a Stream over r. The reader is buffered internally.
func NewStream(r io.Reader) *Stream {
	return &Stream{r: bufio.NewReader(r)}
}

// Next advances to the next record. It returns false at end of stream,
// including truncation mid-record. After Next returns true the record
// is available from Record until the following call to Next.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}
	var hdr [4]byte
	if _, err := io.ReadFull(s.r, hdr[:]); err != nil {
		s.done = true
		return false
	}
	h := Header{
		RecLen: uint16(hdr[0]) | uint16(hdr[1])<<8,
		RecTyp: hdr[2],
		RecSub: hdr[3],
	}
	contents := make([]byte, int(h.RecLen))
	if _, err := io.ReadFull(s.r, contents); err != nil {
		s.done = true
		return false
	}
	s.rec = RawRecord{
		Header:   h,
		Type:     Classify(h.RecTyp, h.RecSub),
		Offset:   s.offset,
		Contents: contents,
	}
	s.offset += 4 + int64(h.RecLen)
	return true
}

// Record returns the record read by the last successful call to Next.
func (s *Stream) Record() *RawRecord {
	return &s.rec
}

// Offset returns the stream offset just past the last record read.
func (s *Stream) Offset() int64 {
	return s.offset
}
