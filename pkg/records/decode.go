package records

import (
	"fmt"

	"github.com/blockberries/stdf/internal/wire"
)

// DecodeError reports a malformed record: a field layout that is
// inconsistent with the record's declared content length. The error is
// scoped to the one record; the surrounding stream remains usable.
type DecodeError struct {
	// Type is the record kind being decoded.
	Type Type

	// Offset is the stream offset of the record's header.
	Offset int64

	// Cause is the underlying field-level error.
	Cause error
}

// Error returns a formatted error message.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("records: decoding %s at offset %d: %v", e.Type, e.Offset, e.Cause)
}

// Unwrap returns the underlying field-level error.
func (e *DecodeError) Unwrap() error { return e.Cause }

func decodeErr(raw *RawRecord, err error) error {
	if err == nil {
		return nil
	}
	return &DecodeError{Type: raw.Type, Offset: raw.Offset, Cause: err}
}

// Decode interprets a raw record's content bytes as its classified
// kind. Kinds with no structured decoder (pin groups, generic data,
// unknown pairs) return (nil, nil): present in the stream, not
// resolvable to a typed record.
//
// Decoding is self-contained: it consults nothing beyond the one
// record's content bytes.
func Decode(raw *RawRecord) (Record, error) {
	switch raw.Type {
	case TypeFAR:
		return DecodeFAR(raw)
	case TypeATR:
		return DecodeATR(raw)
	case TypeMIR:
		return DecodeMIR(raw)
	case TypeMRR:
		return DecodeMRR(raw)
	case TypePCR:
		return DecodePCR(raw)
	case TypeHBR:
		return DecodeHBR(raw)
	case TypeSBR:
		return DecodeSBR(raw)
	case TypePMR:
		return DecodePMR(raw)
	case TypeSDR:
		return DecodeSDR(raw)
	case TypeWIR:
		return DecodeWIR(raw)
	case TypeWRR:
		return DecodeWRR(raw)
	case TypePIR:
		return DecodePIR(raw)
	case TypePRR:
		return DecodePRR(raw)
	case TypeTSR:
		return DecodeTSR(raw)
	case TypePTR:
		return DecodePTR(raw)
	case TypeMPR:
		return DecodeMPR(raw)
	case TypeFTR:
		return DecodeFTR(raw)
	default:
		return nil, nil
	}
}

// DecodeFAR decodes a File Attributes Record.
func DecodeFAR(raw *RawRecord) (*FAR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &FAR{
		CPUType: d.U1(),
		STDFVer: d.U1(),
	}
	return r, decodeErr(raw, d.Err())
}

// DecodeATR decodes an Audit Trail Record.
func DecodeATR(raw *RawRecord) (*ATR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &ATR{
		ModTim:  d.U4(),
		CmdLine: d.Cn(),
	}
	return r, decodeErr(raw, d.Err())
}

// DecodeMIR decodes a Master Information Record.
func DecodeMIR(raw *RawRecord) (*MIR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &MIR{
		SetupT:  d.U4(),
		StartT:  d.U4(),
		StatNum: d.U1(),
		ModeCod: d.C1(),
		RtstCod: d.C1(),
		ProtCod: d.C1(),
		BurnTim: d.U2(),
		CmodCod: d.C1(),
		LotID:   d.Cn(),
		PartTyp: d.Cn(),
		NodeNam: d.Cn(),
		TstrTyp: d.Cn(),
		JobNam:  d.Cn(),
		JobRev:  d.Cn(),
		SblotID: d.Cn(),
		OperNam: d.Cn(),
		ExecTyp: d.Cn(),
		ExecVer: d.Cn(),
		TestCod: d.Cn(),
		TstTemp: d.Cn(),
		UserTxt: d.Cn(),
		AuxFile: d.Cn(),
		PkgTyp:  d.Cn(),
		FamlyID: d.Cn(),
		DateCod: d.Cn(),
		FacilID: d.Cn(),
		FloorID: d.Cn(),
		ProcID:  d.Cn(),
		OperFrq: d.Cn(),
		SpecNam: d.Cn(),
		SpecVer: d.Cn(),
		FlowID:  d.Cn(),
		SetupID: d.Cn(),
		DsgnRev: d.Cn(),
		EngID:   d.Cn(),
		RomCod:  d.Cn(),
		SerlNum: d.Cn(),
		SuprNam: d.Cn(),
	}
	return r, decodeErr(raw, d.Err())
}

// DecodeMRR decodes a Master Results Record.
func DecodeMRR(raw *RawRecord) (*MRR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &MRR{
		FinishT: d.U4(),
		DispCod: d.C1(),
		UsrDesc: d.Cn(),
		ExcDesc: d.Cn(),
	}
	return r, decodeErr(raw, d.Err())
}

// DecodePCR decodes a Part Count Record.
func DecodePCR(raw *RawRecord) (*PCR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &PCR{
		HeadNum: d.U1(),
		SiteNum: d.U1(),
		PartCnt: d.U4(),
		RtstCnt: d.U4(),
		AbrtCnt: d.U4(),
		GoodCnt: d.U4(),
		FuncCnt: d.U4(),
	}
	return r, decodeErr(raw, d.Err())
}

// DecodeHBR decodes a Hardware Bin Record.
func DecodeHBR(raw *RawRecord) (*HBR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &HBR{
		HeadNum: d.U1(),
		SiteNum: d.U1(),
		HbinNum: d.U2(),
		HbinCnt: d.U4(),
		HbinPF:  d.C1(),
		HbinNam: d.Cn(),
	}
	return r, decodeErr(raw, d.Err())
}

// DecodeSBR decodes a Software Bin Record.
func DecodeSBR(raw *RawRecord) (*SBR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &SBR{
		HeadNum: d.U1(),
		SiteNum: d.U1(),
		SbinNum: d.U2(),
		SbinCnt: d.U4(),
		SbinPF:  d.C1(),
		SbinNam: d.Cn(),
	}
	return r, decodeErr(raw, d.Err())
}

// DecodePMR decodes a Pin Map Record.
func DecodePMR(raw *RawRecord) (*PMR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &PMR{
		PmrIndx: d.U2(),
		ChanTyp: d.U2(),
		ChanNam: d.Cn(),
		PhyNam:  d.Cn(),
		LogNam:  d.Cn(),
		HeadNum: d.U1(),
		SiteNum: d.U1(),
	}
	return r, decodeErr(raw, d.Err())
}

// DecodeSDR decodes a Site Description Record.
func DecodeSDR(raw *RawRecord) (*SDR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &SDR{
		HeadNum: d.U1(),
		SiteGrp: d.U1(),
	}
	r.SiteCnt = d.U1()
	r.SiteNum = d.KxU1(int(r.SiteCnt))
	r.HandTyp = d.Cn()
	r.HandID = d.Cn()
	r.CardTyp = d.Cn()
	r.CardID = d.Cn()
	r.LoadTyp = d.Cn()
	r.LoadID = d.Cn()
	r.DibTyp = d.Cn()
	r.DibID = d.Cn()
	r.CablTyp = d.Cn()
	r.CablID = d.Cn()
	r.ContTyp = d.Cn()
	r.ContID = d.Cn()
	r.LasrTyp = d.Cn()
	r.LasrID = d.Cn()
	r.ExtrTyp = d.Cn()
	r.ExtrID = d.Cn()
	return r, decodeErr(raw, d.Err())
}

// DecodeWIR decodes a Wafer Information Record.
func DecodeWIR(raw *RawRecord) (*WIR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &WIR{
		HeadNum: d.U1(),
		SiteGrp: d.U1(),
		StartT:  d.U4(),
		WaferID: d.Cn(),
	}
	return r, decodeErr(raw, d.Err())
}

// DecodeWRR decodes a Wafer Results Record.
func DecodeWRR(raw *RawRecord) (*WRR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &WRR{
		HeadNum: d.U1(),
		SiteGrp: d.U1(),
		FinishT: d.U4(),
		PartCnt: d.U4(),
		RtstCnt: d.U4(),
		AbrtCnt: d.U4(),
		GoodCnt: d.U4(),
		FuncCnt: d.U4(),
		WaferID: d.Cn(),
		FabwfID: d.Cn(),
		FrameID: d.Cn(),
		MaskID:  d.Cn(),
		UsrDesc: d.Cn(),
		ExcDesc: d.Cn(),
	}
	return r, decodeErr(raw, d.Err())
}

// DecodePIR decodes a Part Information Record.
func DecodePIR(raw *RawRecord) (*PIR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &PIR{
		HeadNum: d.U1(),
		SiteNum: d.U1(),
	}
	return r, decodeErr(raw, d.Err())
}

// DecodePRR decodes a Part Results Record.
func DecodePRR(raw *RawRecord) (*PRR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &PRR{
		HeadNum: d.U1(),
		SiteNum: d.U1(),
		PartFlg: d.U1(),
		NumTest: d.U2(),
		HardBin: d.U2(),
		SoftBin: d.U2(),
		XCoord:  d.I2(),
		YCoord:  d.I2(),
		TestT:   d.U4(),
		PartID:  d.Cn(),
		PartTxt: d.Cn(),
	}
	if d.More() {
		r.PartFix = d.Bn()
	}
	return r, decodeErr(raw, d.Err())
}

// DecodeTSR decodes a Test Synopsis Record. The name fields and the
// statistics block are optional suffixes.
func DecodeTSR(raw *RawRecord) (*TSR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &TSR{
		HeadNum: d.U1(),
		SiteNum: d.U1(),
		TestTyp: d.C1(),
		TestNum: d.U4(),
		ExecCnt: d.U4(),
		FailCnt: d.U4(),
		AlrmCnt: d.U4(),
	}
	if d.More() {
		r.TestNam = d.Cn()
	}
	if d.More() {
		r.SeqName = d.Cn()
	}
	if d.More() {
		r.TestLbl = d.Cn()
	}
	if d.More() {
		r.OptFlag = d.U1()
		r.TestTim = d.R4()
		r.TestMin = d.R4()
		r.TestMax = d.R4()
		r.TstSums = d.R4()
		r.TstSqrs = d.R4()
	}
	return r, decodeErr(raw, d.Err())
}

// DecodePTR decodes a Parametric Test Record. Everything from OPT_FLAG
// onward is an optional suffix; absent fields keep their zero values.
func DecodePTR(raw *RawRecord) (*PTR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &PTR{
		TestNum: d.U4(),
		HeadNum: d.U1(),
		SiteNum: d.U1(),
		TestFlg: d.U1(),
		ParmFlg: d.U1(),
		Result:  d.R4(),
		TestTxt: d.Cn(),
		AlarmID: d.Cn(),
	}
	if d.More() {
		r.OptFlag = d.U1()
		r.ResScal = d.I1()
		r.LlmScal = d.I1()
		r.HlmScal = d.I1()
		r.LoLimit = d.R4()
		r.HiLimit = d.R4()
		r.Units = d.Cn()
		r.CResfmt = d.Cn()
		r.CLlmfmt = d.Cn()
		r.CHlmfmt = d.Cn()
		r.LoSpec = d.R4()
		r.HiSpec = d.R4()
	}
	return r, decodeErr(raw, d.Err())
}

// DecodeMPR decodes a Multiple-Result Parametric Record. The counted
// arrays are sized by RTN_ICNT and RSLT_CNT from the mandatory prefix;
// the limits/pin-index block is an optional suffix.
func DecodeMPR(raw *RawRecord) (*MPR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &MPR{
		TestNum: d.U4(),
		HeadNum: d.U1(),
		SiteNum: d.U1(),
		TestFlg: d.U1(),
		ParmFlg: d.U1(),
	}
	r.RtnIcnt = d.U2()
	r.RsltCnt = d.U2()
	r.RtnStat = d.KxN1(int(r.RtnIcnt))
	r.RtnRslt = d.KxR4(int(r.RsltCnt))
	if d.More() {
		r.TestTxt = d.Cn()
	}
	if d.More() {
		r.AlarmID = d.Cn()
	}
	if d.More() {
		r.OptFlag = d.U1()
		r.ResScal = d.I1()
		r.LlmScal = d.I1()
		r.HlmScal = d.I1()
		r.LoLimit = d.R4()
		r.HiLimit = d.R4()
		r.StartIn = d.R4()
		r.IncrIn = d.R4()
		r.RtnIndx = d.KxU2(int(r.RtnIcnt))
	}
	if d.More() {
		r.Units = d.Cn()
		r.UnitsIn = d.Cn()
		r.CResfmt = d.Cn()
		r.CLlmfmt = d.Cn()
		r.CHlmfmt = d.Cn()
	}
	if d.More() {
		r.LoSpec = d.R4()
		r.HiSpec = d.R4()
	}
	return r, decodeErr(raw, d.Err())
}

// DecodeFTR decodes a Functional Test Record. Only the four-field
// prefix is mandatory; the pattern failure detail is a long optional
// suffix read as far as the content bytes allow.
func DecodeFTR(raw *RawRecord) (*FTR, error) {
	d := wire.NewDecoder(raw.Contents)
	r := &FTR{
		TestNum: d.U4(),
		HeadNum: d.U1(),
		SiteNum: d.U1(),
		TestFlg: d.U1(),
	}
	if d.More() {
		r.OptFlag = d.U1()
		r.CyclCnt = d.U4()
		r.RelVadr = d.U4()
		r.ReptCnt = d.U4()
		r.NumFail = d.U4()
		r.XFailAd = d.I4()
		r.YFailAd = d.I4()
		r.VectOff = d.I2()
	}
	if d.More() {
		r.RtnIcnt = d.U2()
		r.PgmIcnt = d.U2()
		r.RtnIndx = d.KxU2(int(r.RtnIcnt))
		r.RtnStat = d.KxN1(int(r.RtnIcnt))
		r.PgmIndx = d.KxU2(int(r.PgmIcnt))
		r.PgmStat = d.KxN1(int(r.PgmIcnt))
		r.FailPin = d.Dn()
	}
	if d.More() {
		r.VectNam = d.Cn()
	}
	if d.More() {
		r.TimeSet = d.Cn()
	}
	if d.More() {
		r.OpCode = d.Cn()
	}
	if d.More() {
		r.TestTxt = d.Cn()
	}
	if d.More() {
		r.AlarmID = d.Cn()
	}
	if d.More() {
		r.ProgTxt = d.Cn()
	}
	if d.More() {
		r.RsltTxt = d.Cn()
	}
	if d.More() {
		r.PatgNum = d.U1()
		r.SpinMap = d.Dn()
	}
	return r, decodeErr(raw, d.Err())
}
