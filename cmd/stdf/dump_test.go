package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/blockberries/stdf/internal/stdftest"
	"github.com/blockberries/stdf/pkg/stdf"
)

func testFile(t *testing.T) *stdf.File {
	t.Helper()
	stream := stdftest.Concat(
		stdftest.FAR(),
		stdftest.MIR("LOT1"),
		stdftest.SDR(1, 1),
		stdftest.TSR(1, 1, 'P', 100, 1, "vdd"),
		stdftest.PIR(1, 1),
		stdftest.PTR(100, 1, 1, 3.5),
		stdftest.PRR(1, 1, "d1", 1, 1, 0, 0),
		stdftest.MRR(),
	)
	log := logrus.New()
	log.SetOutput(io.Discard)
	file, err := stdf.Parse(bytes.NewReader(stream), bytes.NewReader(stream), &stdf.Options{Logger: log})
	require.NoError(t, err)
	return file
}

func TestDumpTableCSV(t *testing.T) {
	file := testFile(t)
	var buf bytes.Buffer
	require.NoError(t, dumpTable(&buf, file, &dumpOptions{table: "rows", format: "csv"}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[1], "d1,"))
}

func TestDumpTableArrow(t *testing.T) {
	file := testFile(t)
	var buf bytes.Buffer
	require.NoError(t, dumpTable(&buf, file, &dumpOptions{table: "tests", format: "arrow"}))
	require.NotZero(t, buf.Len())
}

func TestDumpTableRejectsUnknown(t *testing.T) {
	file := testFile(t)
	var buf bytes.Buffer
	require.Error(t, dumpTable(&buf, file, &dumpOptions{table: "nope", format: "csv"}))
	require.Error(t, dumpTable(&buf, file, &dumpOptions{table: "rows", format: "nope"}))
	require.Error(t, dumpTable(&buf, file, &dumpOptions{table: "pins", format: "arrow"}))
}
