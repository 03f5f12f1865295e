package records

// Record is the closed set of decoded STDF records. Each decoded
// record kind implements it; consumers dispatch with a type switch.
type Record interface {
	Kind() Type
}

// FAR is the File Attributes Record, conventionally first in a file.
type FAR struct {
	CPUType uint8
	STDFVer uint8
}

func (*FAR) Kind() Type { return TypeFAR }

// ATR is the Audit Trail Record.
type ATR struct {
	ModTim  uint32
	CmdLine string
}

func (*ATR) Kind() Type { return TypeATR }

// MIR is the Master Information Record: lot-level metadata written at
// the start of a test run.
type MIR struct {
	SetupT  uint32
	StartT  uint32
	StatNum uint8
	ModeCod byte
	RtstCod byte
	ProtCod byte
	BurnTim uint16
	CmodCod byte
	LotID   string
	PartTyp string
	NodeNam string
	TstrTyp string
	JobNam  string
	JobRev  string
	SblotID string
	OperNam string
	ExecTyp string
	ExecVer string
	TestCod string
	TstTemp string
	UserTxt string
	AuxFile string
	PkgTyp  string
	FamlyID string
	DateCod string
	FacilID string
	FloorID string
	ProcID  string
	OperFrq string
	SpecNam string
	SpecVer string
	FlowID  string
	SetupID string
	DsgnRev string
	EngID   string
	RomCod  string
	SerlNum string
	SuprNam string
}

func (*MIR) Kind() Type { return TypeMIR }

// MRR is the Master Results Record, the lot-level counterpart to MIR
// written when the run finishes.
type MRR struct {
	FinishT uint32
	DispCod byte
	UsrDesc string
	ExcDesc string
}

func (*MRR) Kind() Type { return TypeMRR }

// PCR is the Part Count Record.
type PCR struct {
	HeadNum uint8
	SiteNum uint8
	PartCnt uint32
	RtstCnt uint32
	AbrtCnt uint32
	GoodCnt uint32
	FuncCnt uint32
}

func (*PCR) Kind() Type { return TypePCR }

// HBR is the Hardware Bin Record.
type HBR struct {
	HeadNum uint8
	SiteNum uint8
	HbinNum uint16
	HbinCnt uint32
	HbinPF  byte
	HbinNam string
}

func (*HBR) Kind() Type { return TypeHBR }

// SBR is the Software Bin Record.
type SBR struct {
	HeadNum uint8
	SiteNum uint8
	SbinNum uint16
	SbinCnt uint32
	SbinPF  byte
	SbinNam string
}

func (*SBR) Kind() Type { return TypeSBR }

// PMR is the Pin Map Record: maps a pin index to channel and pin names.
type PMR struct {
	PmrIndx uint16
	ChanTyp uint16
	ChanNam string
	PhyNam  string
	LogNam  string
	HeadNum uint8
	SiteNum uint8
}

func (*PMR) Kind() Type { return TypePMR }

// SDR is the Site Description Record: the handler/load board hardware
// configuration for a group of sites.
type SDR struct {
	HeadNum uint8
	SiteGrp uint8
	SiteCnt uint8
	SiteNum []uint8
	HandTyp string
	HandID  string
	CardTyp string
	CardID  string
	LoadTyp string
	LoadID  string
	DibTyp  string
	DibID   string
	CablTyp string
	CablID  string
	ContTyp string
	ContID  string
	LasrTyp string
	LasrID  string
	ExtrTyp string
	ExtrID  string
}

func (*SDR) Kind() Type { return TypeSDR }

// WIR is the Wafer Information Record: marks the start of a wafer
// probing region and carries the wafer id applied to parts within it.
type WIR struct {
	HeadNum uint8
	SiteGrp uint8
	StartT  uint32
	WaferID string
}

func (*WIR) Kind() Type { return TypeWIR }

// WRR is the Wafer Results Record, closing a wafer probing region.
type WRR struct {
	HeadNum uint8
	SiteGrp uint8
	FinishT uint32
	PartCnt uint32
	RtstCnt uint32
	AbrtCnt uint32
	GoodCnt uint32
	FuncCnt uint32
	WaferID string
	FabwfID string
	FrameID string
	MaskID  string
	UsrDesc string
	ExcDesc string
}

func (*WRR) Kind() Type { return TypeWRR }

// PIR is the Part Information Record: marks the start of testing one
// device on one (head, site) lane.
type PIR struct {
	HeadNum uint8
	SiteNum uint8
}

func (*PIR) Kind() Type { return TypePIR }

// PRR is the Part Results Record: closes the device opened by the
// matching PIR and carries its identity, coordinates, and bins.
type PRR struct {
	HeadNum uint8
	SiteNum uint8
	PartFlg uint8
	NumTest uint16
	HardBin uint16
	SoftBin uint16
	XCoord  int16
	YCoord  int16
	TestT   uint32
	PartID  string
	PartTxt string
	PartFix []byte
}

func (*PRR) Kind() Type { return TypePRR }

// TSR is the Test Synopsis Record: per-test, per-site aggregate
// statistics written at the end of a test program.
type TSR struct {
	HeadNum uint8
	SiteNum uint8
	TestTyp byte
	TestNum uint32
	ExecCnt uint32
	FailCnt uint32
	AlrmCnt uint32
	TestNam string
	SeqName string
	TestLbl string
	OptFlag uint8
	TestTim float32
	TestMin float32
	TestMax float32
	TstSums float32
	TstSqrs float32
}

func (*TSR) Kind() Type { return TypeTSR }

// PTR is the Parametric Test Record: a single measured value for one
// test execution. The fields from OptFlag onward form an optional
// block whose presence is determined by remaining content bytes.
type PTR struct {
	TestNum uint32
	HeadNum uint8
	SiteNum uint8
	TestFlg uint8
	ParmFlg uint8
	Result  float32
	TestTxt string
	AlarmID string
	OptFlag uint8
	ResScal int8
	LlmScal int8
	HlmScal int8
	LoLimit float32
	HiLimit float32
	Units   string
	CResfmt string
	CLlmfmt string
	CHlmfmt string
	LoSpec  float32
	HiSpec  float32
}

func (*PTR) Kind() Type { return TypePTR }

// MPR is the Multiple-Result Parametric Record: one measured value per
// returned pin for one test execution. RtnIndx (optional block) gives
// the pin index behind each position of RtnRslt.
type MPR struct {
	TestNum uint32
	HeadNum uint8
	SiteNum uint8
	TestFlg uint8
	ParmFlg uint8
	RtnIcnt uint16
	RsltCnt uint16
	RtnStat []uint8
	RtnRslt []float32
	TestTxt string
	AlarmID string
	OptFlag uint8
	ResScal int8
	LlmScal int8
	HlmScal int8
	LoLimit float32
	HiLimit float32
	StartIn float32
	IncrIn  float32
	RtnIndx []uint16
	Units   string
	UnitsIn string
	CResfmt string
	CLlmfmt string
	CHlmfmt string
	LoSpec  float32
	HiSpec  float32
}

func (*MPR) Kind() Type { return TypeMPR }

// FTR is the Functional Test Record: a pass/fail outcome for one test
// execution, with optional pattern failure detail.
type FTR struct {
	TestNum uint32
	HeadNum uint8
	SiteNum uint8
	TestFlg uint8
	OptFlag uint8
	CyclCnt uint32
	RelVadr uint32
	ReptCnt uint32
	NumFail uint32
	XFailAd int32
	YFailAd int32
	VectOff int16
	RtnIcnt uint16
	PgmIcnt uint16
	RtnIndx []uint16
	RtnStat []uint8
	PgmIndx []uint16
	PgmStat []uint8
	FailPin []byte
	VectNam string
	TimeSet string
	OpCode  string
	TestTxt string
	AlarmID string
	ProgTxt string
	RsltTxt string
	PatgNum uint8
	SpinMap []byte
}

func (*FTR) Kind() Type { return TypeFTR }

// failedBit is TEST_FLG bit 7: set when the execution failed.
const failedBit = 0x80

// Passed reports the pass/fail outcome encoded in TEST_FLG.
func (f *FTR) Passed() bool {
	return f.TestFlg&failedBit == 0
}

// Passed reports the pass/fail outcome encoded in TEST_FLG.
func (p *PTR) Passed() bool {
	return p.TestFlg&failedBit == 0
}
