// Command stdf parses STDF tester logs into rectangular tables.
//
// Usage:
//
//	stdf dump [options] <file>
//	stdf info [options] <file>
//
// Dump parses a log and writes one of its tables (rows, tests,
// softbins, hardbins, pins, pinorder) as CSV or Arrow IPC. Info
// parses a log and prints lot metadata, record counts, and per-test
// summary statistics.
//
// Gzip and zstd compressed inputs are decompressed transparently.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	verbose        bool
	skipBadRecords bool
}

var opts options

func newRoot(log *logrus.Logger) *cobra.Command {
	root := cobra.Command{
		Use:           "stdf",
		Short:         "Parse STDF semiconductor tester logs into tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable per-record debug logging")
	root.PersistentFlags().BoolVar(&opts.skipBadRecords, "skip-bad-records", false, "Skip records that fail to decode instead of aborting")
	root.AddCommand(newDump(log))
	root.AddCommand(newInfo(log))
	return &root
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if err := newRoot(log).Execute(); err != nil {
		log.WithError(err).Error("failed")
		os.Exit(1)
	}
}
