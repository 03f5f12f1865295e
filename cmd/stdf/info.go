package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blockberries/stdf/pkg/stdf"
)

func newInfo(log *logrus.Logger) *cobra.Command {
	var showStats bool
	cmd := cobra.Command{
		Use:   "info <file>",
		Short: "Parse a log and print its metadata and record summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := stdf.ParseFile(args[0], &stdf.Options{
				SkipBadRecords: opts.skipBadRecords,
				Logger:         log,
			})
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			return printInfo(file, showStats)
		},
	}
	cmd.Flags().BoolVar(&showStats, "stats", false, "Print per-test summary statistics")
	return &cmd
}

func printInfo(file *stdf.File, showStats bool) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)

	fmt.Fprintf(w, "lot\t%s\n", file.Master.LotID)
	fmt.Fprintf(w, "part type\t%s\n", file.Master.PartTyp)
	fmt.Fprintf(w, "tester\t%s (%s)\n", file.Master.NodeNam, file.Master.TstrTyp)
	fmt.Fprintf(w, "job\t%s %s\n", file.Master.JobNam, file.Master.JobRev)
	fmt.Fprintf(w, "operator\t%s\n", file.Master.OperNam)
	fmt.Fprintf(w, "sites\t%d\n", len(file.Site.SiteNum))
	fmt.Fprintf(w, "wafers\t%d\n", len(file.Wafers))
	fmt.Fprintf(w, "parts\t%d\n", len(file.TestData.Rows))

	info := file.TestData.Info
	fmt.Fprintf(w, "tests\t%d (%d parametric, %d functional, %d multi-pin)\n",
		len(info.TestInfos),
		info.CountByType(stdf.TestTypeParametric),
		info.CountByType(stdf.TestTypeFunctional),
		info.CountByType(stdf.TestTypeMultiPin))

	fmt.Fprintf(w, "records\t%d\n", file.Summary.Total())
	for _, typ := range file.Summary.Types() {
		fmt.Fprintf(w, "  %s\t%d\n", typ, file.Summary.Counts[typ])
	}

	if showStats {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "test\tn\tmean\tmedian\tstddev\tmin\tmax")
		for _, st := range stdf.ParametricStats(file.TestData) {
			fmt.Fprintf(w, "%d\t%d\t%g\t%g\t%g\t%g\t%g\n",
				st.TestNum, st.Count, st.Mean, st.Median, st.StdDev, st.Min, st.Max)
		}
	}
	return w.Flush()
}
