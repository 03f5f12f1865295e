package export

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/blockberries/stdf/pkg/stdf"
)

func formatF32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// WriteRowsCSV writes the finalized row table to w as CSV, one header
// line followed by one line per row. Columns match RowsSchema;
// multi-pin vectors are rendered as semicolon-joined values inside one
// cell.
func WriteRowsCSV(w io.Writer, td *stdf.TestData) error {
	cw := csv.NewWriter(w)

	header := []string{
		"part_id", "part_txt", "wafer_id", "x_coord", "y_coord",
		"head_num", "site_num", "soft_bin", "hard_bin",
	}
	for _, tnum := range td.Layout.Parametric.TestNums {
		header = append(header, testColName(tnum))
	}
	for _, tnum := range td.Layout.Functional.TestNums {
		header = append(header, testColName(tnum))
	}
	for _, tnum := range td.Layout.MultiPin.TestNums {
		header = append(header, testColName(tnum))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	line := make([]string, 0, len(header))
	for _, row := range td.Rows {
		line = line[:0]
		line = append(line,
			row.PartID, row.PartTxt, row.WaferID,
			strconv.Itoa(int(row.XCoord)), strconv.Itoa(int(row.YCoord)),
			formatUint(uint64(row.HeadNum)), formatUint(uint64(row.SiteNum)),
			formatUint(uint64(row.SoftBin)), formatUint(uint64(row.HardBin)),
		)
		for slot := range td.Layout.Parametric.TestNums {
			line = append(line, formatF32(row.Parametric[slot]))
		}
		for slot := range td.Layout.Functional.TestNums {
			line = append(line, strconv.FormatBool(row.Functional[slot]))
		}
		for slot := range td.Layout.MultiPin.TestNums {
			cells := make([]string, len(row.MultiPin[slot]))
			for i, v := range row.MultiPin[slot] {
				cells[i] = formatF32(v)
			}
			line = append(line, strings.Join(cells, ";"))
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTestInfoCSV writes the merged test information table to w as
// CSV, one line per test number in ascending order.
func WriteTestInfoCSV(w io.Writer, td *stdf.TestData) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"test_num", "test_type", "execution_count", "test_name",
		"sequence_name", "test_label", "test_time", "test_text",
		"res_scal", "llm_scal", "hlm_scal",
		"lo_spec", "hi_spec", "lo_limit", "hi_limit", "units",
	}); err != nil {
		return err
	}
	for _, tnum := range sortedTestNums(td.Info) {
		ti := td.Info.TestInfos[tnum]
		if err := cw.Write([]string{
			formatUint(uint64(ti.TestNum)),
			ti.TestType.String(),
			formatUint(uint64(ti.ExecutionCount)),
			ti.TestName, ti.SequenceName, ti.TestLabel,
			formatF32(ti.TestTime), ti.TestText,
			strconv.Itoa(int(ti.ResScal)),
			strconv.Itoa(int(ti.LlmScal)),
			strconv.Itoa(int(ti.HlmScal)),
			formatF32(ti.LoSpec), formatF32(ti.HiSpec),
			formatF32(ti.LowLimit), formatF32(ti.HighLimit),
			ti.Units,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePinIndexOrderCSV writes the multi-pin pin-order registry to w:
// one line per multi-pin test number with its ordered physical pin
// indices semicolon-joined.
func WritePinIndexOrderCSV(w io.Writer, td *stdf.TestData) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"test_num", "pin_indices"}); err != nil {
		return err
	}
	nums := make([]uint32, 0, len(td.PinIndexOrder))
	for tnum := range td.PinIndexOrder {
		nums = append(nums, tnum)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	for _, tnum := range nums {
		idx := td.PinIndexOrder[tnum]
		cells := make([]string, len(idx))
		for i, p := range idx {
			cells[i] = formatUint(uint64(p))
		}
		if err := cw.Write([]string{formatUint(uint64(tnum)), strings.Join(cells, ";")}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSoftBinsCSV writes the software bin table to w.
func WriteSoftBinsCSV(w io.Writer, file *stdf.File) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"bin_num", "count", "pass_fail", "name"}); err != nil {
		return err
	}
	nums := make([]uint16, 0, len(file.SoftBins))
	for n := range file.SoftBins {
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	for _, n := range nums {
		sbr := file.SoftBins[n]
		if err := cw.Write([]string{
			formatUint(uint64(sbr.SbinNum)),
			formatUint(uint64(sbr.SbinCnt)),
			string(sbr.SbinPF),
			sbr.SbinNam,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHardBinsCSV writes the hardware bin table to w.
func WriteHardBinsCSV(w io.Writer, file *stdf.File) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"bin_num", "count", "pass_fail", "name"}); err != nil {
		return err
	}
	nums := make([]uint16, 0, len(file.HardBins))
	for n := range file.HardBins {
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	for _, n := range nums {
		hbr := file.HardBins[n]
		if err := cw.Write([]string{
			formatUint(uint64(hbr.HbinNum)),
			formatUint(uint64(hbr.HbinCnt)),
			string(hbr.HbinPF),
			hbr.HbinNam,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePinMapCSV writes the pin map table to w.
func WritePinMapCSV(w io.Writer, file *stdf.File) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"pin_index", "channel_type", "channel_name", "physical_name", "logical_name", "head_num", "site_num"}); err != nil {
		return err
	}
	nums := make([]uint16, 0, len(file.Pins))
	for n := range file.Pins {
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	for _, n := range nums {
		pmr := file.Pins[n]
		if err := cw.Write([]string{
			formatUint(uint64(pmr.PmrIndx)),
			formatUint(uint64(pmr.ChanTyp)),
			pmr.ChanNam,
			pmr.PhyNam,
			pmr.LogNam,
			formatUint(uint64(pmr.HeadNum)),
			formatUint(uint64(pmr.SiteNum)),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
