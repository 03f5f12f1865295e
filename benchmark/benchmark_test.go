// Package benchmark measures parse throughput over synthetic STDF
// streams.
package benchmark

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/blockberries/stdf/internal/stdftest"
	"github.com/blockberries/stdf/pkg/export"
	"github.com/blockberries/stdf/pkg/records"
	"github.com/blockberries/stdf/pkg/stdf"
)

// makeStream builds a synthetic lot: numTests parametric tests
// executed on numParts parts across four sites.
func makeStream(numTests, numParts int) []byte {
	recs := [][]byte{
		stdftest.FAR(),
		stdftest.MIR("BENCH"),
		stdftest.SDR(1, 1, 2, 3, 4),
	}
	for t := 0; t < numTests; t++ {
		for site := uint8(1); site <= 4; site++ {
			recs = append(recs, stdftest.TSR(1, site, 'P', uint32(t), uint32(numParts/4), "bench"))
		}
	}
	for p := 0; p < numParts; p++ {
		site := uint8(p%4) + 1
		recs = append(recs, stdftest.PIR(1, site))
		for t := 0; t < numTests; t++ {
			recs = append(recs, stdftest.PTR(uint32(t), 1, site, float32(t)+0.5))
		}
		recs = append(recs, stdftest.PRR(1, site, "p", 1, 1, int16(p), 0))
	}
	recs = append(recs, stdftest.MRR())
	return stdftest.Concat(recs...)
}

func quiet() *stdf.Options {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &stdf.Options{Logger: log}
}

func BenchmarkStreamScan(b *testing.B) {
	stream := makeStream(50, 400)
	b.SetBytes(int64(len(stream)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := records.NewStream(bytes.NewReader(stream))
		for s.Next() {
		}
	}
}

func BenchmarkCollectTestInformation(b *testing.B) {
	stream := makeStream(50, 400)
	opts := quiet()
	b.SetBytes(int64(len(stream)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := stdf.CollectTestInformation(bytes.NewReader(stream), opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	stream := makeStream(50, 400)
	opts := quiet()
	b.SetBytes(int64(2 * len(stream)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := stdf.Parse(bytes.NewReader(stream), bytes.NewReader(stream), opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRowsRecord(b *testing.B) {
	stream := makeStream(50, 400)
	file, err := stdf.Parse(bytes.NewReader(stream), bytes.NewReader(stream), quiet())
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := export.RowsRecord(file.TestData)
		rec.Release()
	}
}
