package stdf

import (
	"math"

	"github.com/blockberries/stdf/pkg/records"
)

// Coordinate sentinel for parts whose end record never supplied wafer
// coordinates, matching the STDF convention for "no location".
const coordUnset = -5000

// Row is the complete set of test results for one tested device. The
// three result slices are sized exactly to the column layout's
// partitions: parametric slots default to NaN, functional slots to
// false, multi-pin slots to empty vectors that Finalize later pads to
// the test's file-wide width.
type Row struct {
	PartID  string
	PartTxt string
	WaferID string
	XCoord  int16
	YCoord  int16
	HeadNum uint8
	SiteNum uint8
	SoftBin uint16
	HardBin uint16

	Parametric []float32
	Functional []bool
	MultiPin   [][]float32
}

func newRow(pir *records.PIR, layout *ColumnLayout, waferID string) *Row {
	r := &Row{
		WaferID:    waferID,
		XCoord:     coordUnset,
		YCoord:     coordUnset,
		HeadNum:    pir.HeadNum,
		SiteNum:    pir.SiteNum,
		Parametric: make([]float32, layout.Parametric.Len()),
		Functional: make([]bool, layout.Functional.Len()),
		MultiPin:   make([][]float32, layout.MultiPin.Len()),
	}
	nan := float32(math.NaN())
	for i := range r.Parametric {
		r.Parametric[i] = nan
	}
	return r
}

// partKey identifies one concurrent test-execution lane.
type partKey struct {
	HeadNum uint8
	SiteNum uint8
}

// TestData is the row assembly state machine. It consumes the second
// pass over the record stream, holding at most one open row per
// (head, site) lane, and collects finished rows in stream order.
type TestData struct {
	// FullInfo is the unmerged pass-1 metadata, kept for export.
	FullInfo *FullTestInformation

	// Info is the merged per-test-number metadata.
	Info *FullMergedTestInformation

	// Layout is the fixed column assignment derived from Info.
	Layout *ColumnLayout

	// Rows holds finished rows in part-end order.
	Rows []*Row

	// PinIndexOrder records, per multi-pin test number, which physical
	// pin index stands behind each position of the result vector.
	// Captured from the first MPR seen for the test and assumed stable
	// for the rest of the file.
	PinIndexOrder map[uint32][]uint16

	open    map[partKey]*Row
	waferID string
}

// NewTestData builds the row assembly state from the pass-1 metadata:
// it merges the per-lane table and fixes the column layout. No rows
// exist yet; feed the second record pass through the Open/Add/Close
// methods.
func NewTestData(full *FullTestInformation) *TestData {
	merged := full.Merge()
	return &TestData{
		FullInfo:      full,
		Info:          merged,
		Layout:        BuildColumnLayout(merged),
		PinIndexOrder: make(map[uint32][]uint16),
		open:          make(map[partKey]*Row),
	}
}

// OpenPart opens a new row for the record's (head, site) lane. The
// row inherits the active wafer id. Opening a lane that is already
// open is a protocol violation.
func (td *TestData) OpenPart(pir *records.PIR) error {
	key := partKey{HeadNum: pir.HeadNum, SiteNum: pir.SiteNum}
	if _, ok := td.open[key]; ok {
		return &ProtocolError{Op: "open part", HeadNum: key.HeadNum, SiteNum: key.SiteNum, Err: ErrPartAlreadyOpen}
	}
	td.open[key] = newRow(pir, td.Layout, td.waferID)
	return nil
}

// AddParametric writes a single-value result into the open row's
// parametric slot for the record's test number. A test executed more
// than once per part keeps only the last value.
func (td *TestData) AddParametric(ptr *records.PTR) error {
	key := partKey{HeadNum: ptr.HeadNum, SiteNum: ptr.SiteNum}
	row, ok := td.open[key]
	if !ok {
		return &ProtocolError{Op: "add parametric result", HeadNum: key.HeadNum, SiteNum: key.SiteNum, TestNum: ptr.TestNum, Err: ErrPartNotOpen}
	}
	slot, ok := td.Layout.Parametric.SlotOf[ptr.TestNum]
	if !ok {
		return &ProtocolError{Op: "add parametric result", HeadNum: key.HeadNum, SiteNum: key.SiteNum, TestNum: ptr.TestNum, Err: ErrUnknownTest}
	}
	row.Parametric[slot] = ptr.Result
	return nil
}

// AddFunctional writes a pass/fail outcome into the open row's
// functional slot for the record's test number.
func (td *TestData) AddFunctional(ftr *records.FTR) error {
	key := partKey{HeadNum: ftr.HeadNum, SiteNum: ftr.SiteNum}
	row, ok := td.open[key]
	if !ok {
		return &ProtocolError{Op: "add functional result", HeadNum: key.HeadNum, SiteNum: key.SiteNum, TestNum: ftr.TestNum, Err: ErrPartNotOpen}
	}
	slot, ok := td.Layout.Functional.SlotOf[ftr.TestNum]
	if !ok {
		return &ProtocolError{Op: "add functional result", HeadNum: key.HeadNum, SiteNum: key.SiteNum, TestNum: ftr.TestNum, Err: ErrUnknownTest}
	}
	row.Functional[slot] = ftr.Passed()
	return nil
}

// AddMultiPin writes a multi-pin result vector into the open row's
// multi-pin slot, and captures the test's pin index order on first
// sight.
func (td *TestData) AddMultiPin(mpr *records.MPR) error {
	key := partKey{HeadNum: mpr.HeadNum, SiteNum: mpr.SiteNum}
	row, ok := td.open[key]
	if !ok {
		return &ProtocolError{Op: "add multi-pin result", HeadNum: key.HeadNum, SiteNum: key.SiteNum, TestNum: mpr.TestNum, Err: ErrPartNotOpen}
	}
	slot, ok := td.Layout.MultiPin.SlotOf[mpr.TestNum]
	if !ok {
		return &ProtocolError{Op: "add multi-pin result", HeadNum: key.HeadNum, SiteNum: key.SiteNum, TestNum: mpr.TestNum, Err: ErrUnknownTest}
	}
	if _, seen := td.PinIndexOrder[mpr.TestNum]; !seen && len(mpr.RtnIndx) > 0 {
		td.PinIndexOrder[mpr.TestNum] = mpr.RtnIndx
	}
	row.MultiPin[slot] = mpr.RtnRslt
	return nil
}

// ClosePart finalizes the open row for the record's (head, site) lane:
// identity, coordinates, and bins come from the part-end record, and
// the row moves to the permanent collection. Closing a lane with no
// open row is a protocol violation.
func (td *TestData) ClosePart(prr *records.PRR) error {
	key := partKey{HeadNum: prr.HeadNum, SiteNum: prr.SiteNum}
	row, ok := td.open[key]
	if !ok {
		return &ProtocolError{Op: "close part", HeadNum: key.HeadNum, SiteNum: key.SiteNum, Err: ErrPartNotOpen}
	}
	delete(td.open, key)
	row.PartID = prr.PartID
	row.PartTxt = prr.PartTxt
	row.XCoord = prr.XCoord
	row.YCoord = prr.YCoord
	row.SoftBin = prr.SoftBin
	row.HardBin = prr.HardBin
	td.Rows = append(td.Rows, row)
	return nil
}

// OpenWafer sets the wafer context applied to parts opened while it is
// active. Wafer context is process-wide, not per lane: concurrent
// multi-wafer probing is out of scope.
func (td *TestData) OpenWafer(wir *records.WIR) {
	td.waferID = wir.WaferID
}

// CloseWafer clears the wafer context. Rows already opened keep the
// wafer id they inherited.
func (td *TestData) CloseWafer() {
	td.waferID = ""
}

// OpenParts returns the number of lanes with an open, unfinished row.
// Zero after a well-formed stream.
func (td *TestData) OpenParts() int {
	return len(td.open)
}

// Finalize rectangularizes the multi-pin results: each multi-pin slot
// is padded with NaN to the maximum width observed for that slot
// across all rows. A part that skipped the test (for example
// downstream of a failed continuity check) ends up as a fully-NaN
// vector rather than a missing one.
//
// Call exactly once, after the full second pass; the row collection is
// not exportable before Finalize.
func (td *TestData) Finalize() {
	widths := make([]int, td.Layout.MultiPin.Len())
	for _, row := range td.Rows {
		for i, v := range row.MultiPin {
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}
	nan := float32(math.NaN())
	for _, row := range td.Rows {
		for i, v := range row.MultiPin {
			for len(v) < widths[i] {
				v = append(v, nan)
			}
			row.MultiPin[i] = v
		}
	}
}

// MultiPinWidth returns the post-Finalize width of the given multi-pin
// slot.
func (td *TestData) MultiPinWidth(slot int) int {
	w := 0
	for _, row := range td.Rows {
		if len(row.MultiPin[slot]) > w {
			w = len(row.MultiPin[slot])
		}
	}
	return w
}
