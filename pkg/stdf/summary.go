package stdf

import (
	"sort"

	"github.com/blockberries/stdf/pkg/records"
)

// RecordSummary counts records per kind over a stream. Unknown
// (typ, sub) pairs are counted under the invalid kind.
type RecordSummary struct {
	Counts map[records.Type]int
}

// NewRecordSummary returns an empty summary.
func NewRecordSummary() *RecordSummary {
	return &RecordSummary{Counts: make(map[records.Type]int)}
}

// Add counts one raw record.
func (s *RecordSummary) Add(raw *records.RawRecord) {
	s.Counts[raw.Type]++
}

// Total returns the total record count.
func (s *RecordSummary) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	return n
}

// Types returns the counted kinds sorted by descending count, ties by
// kind order.
func (s *RecordSummary) Types() []records.Type {
	types := make([]records.Type, 0, len(s.Counts))
	for t := range s.Counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if s.Counts[types[i]] != s.Counts[types[j]] {
			return s.Counts[types[i]] > s.Counts[types[j]]
		}
		return types[i] < types[j]
	})
	return types
}
