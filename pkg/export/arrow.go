// Package export renders parsed test data into tabular output
// formats: Arrow record batches and CSV.
package export

import (
	"io"
	"sort"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/blockberries/stdf/pkg/stdf"
)

// testColName names a per-test result column by its test number.
func testColName(testNum uint32) string {
	return strconv.FormatUint(uint64(testNum), 10)
}

// sortedTestNums returns the merged table's test numbers in ascending
// order for deterministic output.
func sortedTestNums(info *stdf.FullMergedTestInformation) []uint32 {
	nums := make([]uint32, 0, len(info.TestInfos))
	for tnum := range info.TestInfos {
		nums = append(nums, tnum)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	return nums
}

// RowsSchema builds the Arrow schema for the row table: the fixed
// identity columns followed by one column per test slot. Parametric
// slots are float32, functional slots bool, multi-pin slots
// fixed-size lists of float32 at the post-finalize width.
func RowsSchema(td *stdf.TestData) *arrow.Schema {
	fields := []arrow.Field{
		{Name: "part_id", Type: arrow.BinaryTypes.String},
		{Name: "part_txt", Type: arrow.BinaryTypes.String},
		{Name: "wafer_id", Type: arrow.BinaryTypes.String},
		{Name: "x_coord", Type: arrow.PrimitiveTypes.Int16},
		{Name: "y_coord", Type: arrow.PrimitiveTypes.Int16},
		{Name: "head_num", Type: arrow.PrimitiveTypes.Uint8},
		{Name: "site_num", Type: arrow.PrimitiveTypes.Uint8},
		{Name: "soft_bin", Type: arrow.PrimitiveTypes.Uint16},
		{Name: "hard_bin", Type: arrow.PrimitiveTypes.Uint16},
	}
	for _, tnum := range td.Layout.Parametric.TestNums {
		fields = append(fields, arrow.Field{Name: testColName(tnum), Type: arrow.PrimitiveTypes.Float32})
	}
	for _, tnum := range td.Layout.Functional.TestNums {
		fields = append(fields, arrow.Field{Name: testColName(tnum), Type: arrow.FixedWidthTypes.Boolean})
	}
	for slot, tnum := range td.Layout.MultiPin.TestNums {
		listType := arrow.FixedSizeListOf(int32(td.MultiPinWidth(slot)), arrow.PrimitiveTypes.Float32)
		fields = append(fields, arrow.Field{Name: testColName(tnum), Type: listType})
	}
	return arrow.NewSchema(fields, nil)
}

// identityCols is the number of fixed leading columns in the row table.
const identityCols = 9

// RowsRecord builds one Arrow record batch holding every finalized
// row. The caller owns the returned record and must Release it.
func RowsRecord(td *stdf.TestData) arrow.Record {
	schema := RowsSchema(td)
	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()

	for _, row := range td.Rows {
		b.Field(0).(*array.StringBuilder).Append(row.PartID)
		b.Field(1).(*array.StringBuilder).Append(row.PartTxt)
		b.Field(2).(*array.StringBuilder).Append(row.WaferID)
		b.Field(3).(*array.Int16Builder).Append(row.XCoord)
		b.Field(4).(*array.Int16Builder).Append(row.YCoord)
		b.Field(5).(*array.Uint8Builder).Append(row.HeadNum)
		b.Field(6).(*array.Uint8Builder).Append(row.SiteNum)
		b.Field(7).(*array.Uint16Builder).Append(row.SoftBin)
		b.Field(8).(*array.Uint16Builder).Append(row.HardBin)

		col := identityCols
		for slot := range td.Layout.Parametric.TestNums {
			b.Field(col).(*array.Float32Builder).Append(row.Parametric[slot])
			col++
		}
		for slot := range td.Layout.Functional.TestNums {
			b.Field(col).(*array.BooleanBuilder).Append(row.Functional[slot])
			col++
		}
		for slot := range td.Layout.MultiPin.TestNums {
			lb := b.Field(col).(*array.FixedSizeListBuilder)
			lb.Append(true)
			vb := lb.ValueBuilder().(*array.Float32Builder)
			vb.AppendValues(row.MultiPin[slot], nil)
			col++
		}
	}
	return b.NewRecord()
}

// TestInfoSchema is the Arrow schema for the merged test information
// table.
func TestInfoSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "test_num", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "test_type", Type: arrow.BinaryTypes.String},
		{Name: "execution_count", Type: arrow.PrimitiveTypes.Uint32},
		{Name: "test_name", Type: arrow.BinaryTypes.String},
		{Name: "sequence_name", Type: arrow.BinaryTypes.String},
		{Name: "test_label", Type: arrow.BinaryTypes.String},
		{Name: "test_time", Type: arrow.PrimitiveTypes.Float32},
		{Name: "test_text", Type: arrow.BinaryTypes.String},
		{Name: "res_scal", Type: arrow.PrimitiveTypes.Int8},
		{Name: "llm_scal", Type: arrow.PrimitiveTypes.Int8},
		{Name: "hlm_scal", Type: arrow.PrimitiveTypes.Int8},
		{Name: "lo_spec", Type: arrow.PrimitiveTypes.Float32},
		{Name: "hi_spec", Type: arrow.PrimitiveTypes.Float32},
		{Name: "lo_limit", Type: arrow.PrimitiveTypes.Float32},
		{Name: "hi_limit", Type: arrow.PrimitiveTypes.Float32},
		{Name: "units", Type: arrow.BinaryTypes.String},
	}, nil)
}

// TestInfoRecord builds one Arrow record batch of the merged test
// information table, one row per test number in ascending order. The
// caller owns the returned record and must Release it.
func TestInfoRecord(td *stdf.TestData) arrow.Record {
	b := array.NewRecordBuilder(memory.NewGoAllocator(), TestInfoSchema())
	defer b.Release()

	for _, tnum := range sortedTestNums(td.Info) {
		ti := td.Info.TestInfos[tnum]
		b.Field(0).(*array.Uint32Builder).Append(ti.TestNum)
		b.Field(1).(*array.StringBuilder).Append(ti.TestType.String())
		b.Field(2).(*array.Uint32Builder).Append(ti.ExecutionCount)
		b.Field(3).(*array.StringBuilder).Append(ti.TestName)
		b.Field(4).(*array.StringBuilder).Append(ti.SequenceName)
		b.Field(5).(*array.StringBuilder).Append(ti.TestLabel)
		b.Field(6).(*array.Float32Builder).Append(ti.TestTime)
		b.Field(7).(*array.StringBuilder).Append(ti.TestText)
		b.Field(8).(*array.Int8Builder).Append(ti.ResScal)
		b.Field(9).(*array.Int8Builder).Append(ti.LlmScal)
		b.Field(10).(*array.Int8Builder).Append(ti.HlmScal)
		b.Field(11).(*array.Float32Builder).Append(ti.LoSpec)
		b.Field(12).(*array.Float32Builder).Append(ti.HiSpec)
		b.Field(13).(*array.Float32Builder).Append(ti.LowLimit)
		b.Field(14).(*array.Float32Builder).Append(ti.HighLimit)
		b.Field(15).(*array.StringBuilder).Append(ti.Units)
	}
	return b.NewRecord()
}

// WriteIPC writes a record batch to w in the Arrow IPC stream format.
func WriteIPC(w io.Writer, rec arrow.Record) error {
	iw := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()))
	if err := iw.Write(rec); err != nil {
		iw.Close()
		return err
	}
	return iw.Close()
}
