package stdf

import (
	"math"

	"github.com/blockberries/stdf/pkg/records"
)

// TestType categorizes a test by the shape of its result.
type TestType byte

const (
	// TestTypeUnknown is a test whose synopsis never declared a type.
	TestTypeUnknown TestType = 0

	// TestTypeParametric is a test producing one numeric measurement.
	TestTypeParametric TestType = 'P'

	// TestTypeFunctional is a test producing only pass/fail.
	TestTypeFunctional TestType = 'F'

	// TestTypeMultiPin is a parametric test producing one measurement
	// per returned pin.
	TestTypeMultiPin TestType = 'M'

	// TestTypeScan is a scan test.
	TestTypeScan TestType = 'S'
)

// testTypeFromCode maps a TSR TEST_TYP character to a TestType.
func testTypeFromCode(c byte) TestType {
	switch c {
	case 'P', 'F', 'M', 'S':
		return TestType(c)
	default:
		return TestTypeUnknown
	}
}

// String returns the single-letter STDF code, or "Unknown".
func (t TestType) String() string {
	if t == TestTypeUnknown {
		return "Unknown"
	}
	return string(byte(t))
}

// Completion tracks which of the two record kinds contributing to a
// test's metadata have been seen. A TestInformation is complete once
// both a synopsis (TSR) and a result (PTR/MPR) have contributed.
type Completion int

const (
	// SeenResult means only a result record has contributed.
	SeenResult Completion = iota + 1

	// SeenSynopsis means only a synopsis record has contributed.
	SeenSynopsis

	// Complete means both kinds have contributed. Further sightings
	// of either kind are ignored: first-writer-wins.
	Complete
)

// String returns the completion state name.
func (c Completion) String() string {
	switch c {
	case SeenResult:
		return "result-only"
	case SeenSynopsis:
		return "synopsis-only"
	case Complete:
		return "complete"
	default:
		return "none"
	}
}

// headAllSentinel marks a TSR that summarizes across all heads rather
// than describing one physical test instance. Such records are
// excluded from the per-site metadata table.
const headAllSentinel = 255

// TestKey uniquely identifies one test's metadata on one site/head
// combination. Test number 0 is a valid key.
type TestKey struct {
	TestNum uint32
	SiteNum uint8
	HeadNum uint8
}

// TestInformation is the metadata for a single test on one (site,
// head) lane, assembled from a synopsis record and the first-seen
// result record. It carries no per-execution results.
type TestInformation struct {
	TestNum uint32
	HeadNum uint8
	SiteNum uint8

	// Synopsis-derived fields.
	TestType       TestType
	ExecutionCount uint32
	TestName       string
	SequenceName   string
	TestLabel      string
	TestTime       float32

	// Result-derived fields.
	TestText  string
	ResScal   int8
	LlmScal   int8
	HlmScal   int8
	LoSpec    float32
	HiSpec    float32
	LowLimit  float32
	HighLimit float32
	Units     string

	Completion Completion
}

// resultMeta is the result-derived field set shared by PTR and MPR.
type resultMeta struct {
	testText  string
	resScal   int8
	llmScal   int8
	hlmScal   int8
	loSpec    float32
	hiSpec    float32
	lowLimit  float32
	highLimit float32
	units     string
}

func ptrMeta(r *records.PTR) resultMeta {
	return resultMeta{
		testText:  r.TestTxt,
		resScal:   r.ResScal,
		llmScal:   r.LlmScal,
		hlmScal:   r.HlmScal,
		loSpec:    r.LoSpec,
		hiSpec:    r.HiSpec,
		lowLimit:  r.LoLimit,
		highLimit: r.HiLimit,
		units:     r.Units,
	}
}

func mprMeta(r *records.MPR) resultMeta {
	return resultMeta{
		testText:  r.TestTxt,
		resScal:   r.ResScal,
		llmScal:   r.LlmScal,
		hlmScal:   r.HlmScal,
		loSpec:    r.LoSpec,
		hiSpec:    r.HiSpec,
		lowLimit:  r.LoLimit,
		highLimit: r.HiLimit,
		units:     r.Units,
	}
}

func newFromSynopsis(tsr *records.TSR) *TestInformation {
	nan := float32(math.NaN())
	return &TestInformation{
		TestNum:        tsr.TestNum,
		HeadNum:        tsr.HeadNum,
		SiteNum:        tsr.SiteNum,
		TestType:       testTypeFromCode(tsr.TestTyp),
		ExecutionCount: tsr.ExecCnt,
		TestName:       tsr.TestNam,
		SequenceName:   tsr.SeqName,
		TestLabel:      tsr.TestLbl,
		TestTime:       tsr.TestTim,
		LoSpec:         nan,
		HiSpec:         nan,
		LowLimit:       nan,
		HighLimit:      nan,
		Completion:     SeenSynopsis,
	}
}

func newFromResult(key TestKey, m resultMeta) *TestInformation {
	return &TestInformation{
		TestNum:    key.TestNum,
		HeadNum:    key.HeadNum,
		SiteNum:    key.SiteNum,
		TestTime:   float32(math.NaN()),
		TestText:   m.testText,
		ResScal:    m.resScal,
		LlmScal:    m.llmScal,
		HlmScal:    m.hlmScal,
		LoSpec:     m.loSpec,
		HiSpec:     m.hiSpec,
		LowLimit:   m.lowLimit,
		HighLimit:  m.highLimit,
		Units:      m.units,
		Completion: SeenResult,
	}
}

// applySynopsis fills the synopsis-derived fields on an entry created
// from a result record. A no-op unless the entry is in the
// result-only state: redundant sightings never overwrite.
func (ti *TestInformation) applySynopsis(tsr *records.TSR) error {
	if ti.TestNum != tsr.TestNum || ti.HeadNum != tsr.HeadNum || ti.SiteNum != tsr.SiteNum {
		return &ProtocolError{Op: "apply synopsis", HeadNum: tsr.HeadNum, SiteNum: tsr.SiteNum, TestNum: tsr.TestNum, Err: ErrKeyMismatch}
	}
	if ti.Completion != SeenResult {
		return nil
	}
	ti.TestType = testTypeFromCode(tsr.TestTyp)
	ti.ExecutionCount = tsr.ExecCnt
	ti.TestName = tsr.TestNam
	ti.SequenceName = tsr.SeqName
	ti.TestLabel = tsr.TestLbl
	ti.TestTime = tsr.TestTim
	ti.Completion = Complete
	return nil
}

// applyResult fills the result-derived fields on an entry created from
// a synopsis record. A no-op unless the entry is in the synopsis-only
// state.
func (ti *TestInformation) applyResult(key TestKey, m resultMeta) error {
	if ti.TestNum != key.TestNum || ti.HeadNum != key.HeadNum || ti.SiteNum != key.SiteNum {
		return &ProtocolError{Op: "apply result", HeadNum: key.HeadNum, SiteNum: key.SiteNum, TestNum: key.TestNum, Err: ErrKeyMismatch}
	}
	if ti.Completion != SeenSynopsis {
		return nil
	}
	ti.TestText = m.testText
	ti.ResScal = m.resScal
	ti.LlmScal = m.llmScal
	ti.HlmScal = m.hlmScal
	ti.LoSpec = m.loSpec
	ti.HiSpec = m.hiSpec
	ti.LowLimit = m.lowLimit
	ti.HighLimit = m.highLimit
	ti.Units = m.units
	ti.Completion = Complete
	return nil
}

// FullTestInformation accumulates TestInformation keyed by (test
// number, site, head). It is the pass-1 accumulator.
type FullTestInformation struct {
	TestInfos map[TestKey]*TestInformation
}

// NewFullTestInformation returns an empty accumulator.
func NewFullTestInformation() *FullTestInformation {
	return &FullTestInformation{TestInfos: make(map[TestKey]*TestInformation)}
}

// AddFromTSR folds one synopsis record into the table. Cross-head
// rollup records (head 255) are skipped entirely: they duplicate the
// per-head entries rather than describing new test instances.
func (f *FullTestInformation) AddFromTSR(tsr *records.TSR) error {
	if tsr.HeadNum == headAllSentinel {
		return nil
	}
	key := TestKey{TestNum: tsr.TestNum, SiteNum: tsr.SiteNum, HeadNum: tsr.HeadNum}
	if ti, ok := f.TestInfos[key]; ok {
		return ti.applySynopsis(tsr)
	}
	f.TestInfos[key] = newFromSynopsis(tsr)
	return nil
}

// AddFromPTR folds one single-value parametric result record into the
// table.
func (f *FullTestInformation) AddFromPTR(ptr *records.PTR) error {
	key := TestKey{TestNum: ptr.TestNum, SiteNum: ptr.SiteNum, HeadNum: ptr.HeadNum}
	return f.addResult(key, ptrMeta(ptr))
}

// AddFromMPR folds one multi-pin parametric result record into the
// table.
func (f *FullTestInformation) AddFromMPR(mpr *records.MPR) error {
	key := TestKey{TestNum: mpr.TestNum, SiteNum: mpr.SiteNum, HeadNum: mpr.HeadNum}
	return f.addResult(key, mprMeta(mpr))
}

func (f *FullTestInformation) addResult(key TestKey, m resultMeta) error {
	if ti, ok := f.TestInfos[key]; ok {
		return ti.applyResult(key, m)
	}
	f.TestInfos[key] = newFromResult(key, m)
	return nil
}

// Merge collapses the per-(site, head) table to one entry per test
// number. All sites normally run the same program, so identity fields
// come from whichever entry is seen first and only execution counts
// are summed across lanes.
func (f *FullTestInformation) Merge() *FullMergedTestInformation {
	merged := NewFullMergedTestInformation()
	for _, ti := range f.TestInfos {
		merged.Add(ti)
	}
	return merged
}

// MergedTestInformation is a test's metadata collapsed across all
// (site, head) lanes. Identity fields are fixed by the first sighting;
// later sightings for the same test number only add execution counts.
type MergedTestInformation struct {
	TestNum        uint32
	TestType       TestType
	ExecutionCount uint32
	TestName       string
	SequenceName   string
	TestLabel      string
	TestTime       float32
	TestText       string
	ResScal        int8
	LlmScal        int8
	HlmScal        int8
	LoSpec         float32
	HiSpec         float32
	LowLimit       float32
	HighLimit      float32
	Units          string
}

func newMerged(ti *TestInformation) *MergedTestInformation {
	return &MergedTestInformation{
		TestNum:        ti.TestNum,
		TestType:       ti.TestType,
		ExecutionCount: ti.ExecutionCount,
		TestName:       ti.TestName,
		SequenceName:   ti.SequenceName,
		TestLabel:      ti.TestLabel,
		TestTime:       ti.TestTime,
		TestText:       ti.TestText,
		ResScal:        ti.ResScal,
		LlmScal:        ti.LlmScal,
		HlmScal:        ti.HlmScal,
		LoSpec:         ti.LoSpec,
		HiSpec:         ti.HiSpec,
		LowLimit:       ti.LowLimit,
		HighLimit:      ti.HighLimit,
		Units:          ti.Units,
	}
}

// FullMergedTestInformation is the per-test-number metadata table.
type FullMergedTestInformation struct {
	TestInfos map[uint32]*MergedTestInformation
}

// NewFullMergedTestInformation returns an empty table.
func NewFullMergedTestInformation() *FullMergedTestInformation {
	return &FullMergedTestInformation{TestInfos: make(map[uint32]*MergedTestInformation)}
}

// Add folds one per-lane entry into the merged table.
func (f *FullMergedTestInformation) Add(ti *TestInformation) {
	if mti, ok := f.TestInfos[ti.TestNum]; ok {
		mti.ExecutionCount += ti.ExecutionCount
		return
	}
	f.TestInfos[ti.TestNum] = newMerged(ti)
}

// CountByType returns the number of merged tests with the given type.
func (f *FullMergedTestInformation) CountByType(t TestType) int {
	n := 0
	for _, mti := range f.TestInfos {
		if mti.TestType == t {
			n++
		}
	}
	return n
}
