package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blockberries/stdf/pkg/export"
	"github.com/blockberries/stdf/pkg/stdf"
)

type dumpOptions struct {
	table  string
	format string
	output string
}

func newDump(log *logrus.Logger) *cobra.Command {
	var dopts dumpOptions
	cmd := cobra.Command{
		Use:   "dump <file>",
		Short: "Parse a log and write one of its tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := stdf.ParseFile(args[0], &stdf.Options{
				SkipBadRecords: opts.skipBadRecords,
				Logger:         log,
			})
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			out := io.Writer(os.Stdout)
			if dopts.output != "" {
				f, err := os.Create(dopts.output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return dumpTable(out, file, &dopts)
		},
	}
	cmd.Flags().StringVar(&dopts.table, "table", "rows", "Table to dump: rows, tests, softbins, hardbins, pins, pinorder")
	cmd.Flags().StringVar(&dopts.format, "format", "csv", "Output format: csv, arrow")
	cmd.Flags().StringVarP(&dopts.output, "output", "o", "", "Output file (default stdout)")
	return &cmd
}

func dumpTable(w io.Writer, file *stdf.File, dopts *dumpOptions) error {
	switch dopts.format {
	case "csv":
		switch dopts.table {
		case "rows":
			return export.WriteRowsCSV(w, file.TestData)
		case "tests":
			return export.WriteTestInfoCSV(w, file.TestData)
		case "softbins":
			return export.WriteSoftBinsCSV(w, file)
		case "hardbins":
			return export.WriteHardBinsCSV(w, file)
		case "pins":
			return export.WritePinMapCSV(w, file)
		case "pinorder":
			return export.WritePinIndexOrderCSV(w, file.TestData)
		default:
			return fmt.Errorf("unknown table %q", dopts.table)
		}
	case "arrow":
		switch dopts.table {
		case "rows":
			rec := export.RowsRecord(file.TestData)
			defer rec.Release()
			return export.WriteIPC(w, rec)
		case "tests":
			rec := export.TestInfoRecord(file.TestData)
			defer rec.Release()
			return export.WriteIPC(w, rec)
		default:
			return fmt.Errorf("table %q has no arrow form", dopts.table)
		}
	default:
		return fmt.Errorf("unknown format %q", dopts.format)
	}
}
