package stdf

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/blockberries/stdf/pkg/records"
)

// Options controls parse behavior.
type Options struct {
	// SkipBadRecords continues past records whose contents cannot be
	// decoded, logging them, instead of aborting the pass. Protocol
	// violations still abort: they cannot be skipped without
	// corrupting row identity.
	SkipBadRecords bool

	// Logger receives per-record trace output at debug level and
	// skipped-record reports at warn level. Defaults to the standard
	// logrus logger.
	Logger *logrus.Logger
}

func (o *Options) logger() *logrus.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}

func (o *Options) skip() bool {
	return o != nil && o.SkipBadRecords
}

// handleDecodeErr applies the decode-error policy: nil if the record
// should be skipped, the error itself if the pass should abort. The
// accumulators are never touched on a failed decode, so skipping
// cannot corrupt state.
func handleDecodeErr(raw *records.RawRecord, err error, opts *Options) error {
	if err == nil {
		return nil
	}
	if opts.skip() {
		opts.logger().WithFields(logrus.Fields{
			"record": raw.Type.String(),
			"offset": raw.Offset,
		}).WithError(err).Warn("skipping undecodable record")
		return nil
	}
	return err
}

// CollectTestInformation performs pass 1: it scans the full record
// stream and accumulates test metadata from synopsis and result
// records, along with a per-kind record summary. The returned
// metadata fixes the column layout for row assembly.
func CollectTestInformation(r io.Reader, opts *Options) (*FullTestInformation, *RecordSummary, error) {
	log := opts.logger()
	info := NewFullTestInformation()
	summary := NewRecordSummary()

	s := records.NewStream(r)
	for s.Next() {
		raw := s.Record()
		summary.Add(raw)
		log.WithFields(logrus.Fields{
			"record": raw.Type.String(),
			"offset": raw.Offset,
			"length": raw.Header.RecLen,
		}).Debug("record")

		switch raw.Type {
		case records.TypeTSR:
			tsr, err := records.DecodeTSR(raw)
			if err != nil {
				if err = handleDecodeErr(raw, err, opts); err != nil {
					return nil, nil, err
				}
				continue
			}
			if err := info.AddFromTSR(tsr); err != nil {
				return nil, nil, err
			}
		case records.TypePTR:
			ptr, err := records.DecodePTR(raw)
			if err != nil {
				if err = handleDecodeErr(raw, err, opts); err != nil {
					return nil, nil, err
				}
				continue
			}
			if err := info.AddFromPTR(ptr); err != nil {
				return nil, nil, err
			}
		case records.TypeMPR:
			mpr, err := records.DecodeMPR(raw)
			if err != nil {
				if err = handleDecodeErr(raw, err, opts); err != nil {
					return nil, nil, err
				}
				continue
			}
			if err := info.AddFromMPR(mpr); err != nil {
				return nil, nil, err
			}
		}
	}
	return info, summary, nil
}

// MasterInformation is the lot-level file metadata, combining the MIR
// written at run start with the MRR written at run end.
type MasterInformation struct {
	// MIR fields.
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

	// MRR fields.
	FinishT uint32
	DispCod byte
	UsrDesc string
	ExcDesc string
}

func newMasterInformation(mir *records.MIR, mrr *records.MRR) MasterInformation {
	return MasterInformation{
		SetupT: mir.SetupT, StartT: mir.StartT, StatNum: mir.StatNum,
		ModeCod: mir.ModeCod, RtstCod: mir.RtstCod, ProtCod: mir.ProtCod,
		BurnTim: mir.BurnTim, CmodCod: mir.CmodCod,
		LotID: mir.LotID, PartTyp: mir.PartTyp, NodeNam: mir.NodeNam,
		TstrTyp: mir.TstrTyp, JobNam: mir.JobNam, JobRev: mir.JobRev,
		SblotID: mir.SblotID, OperNam: mir.OperNam, ExecTyp: mir.ExecTyp,
		ExecVer: mir.ExecVer, TestCod: mir.TestCod, TstTemp: mir.TstTemp,
		UserTxt: mir.UserTxt, AuxFile: mir.AuxFile, PkgTyp: mir.PkgTyp,
		FamlyID: mir.FamlyID, DateCod: mir.DateCod, FacilID: mir.FacilID,
		FloorID: mir.FloorID, ProcID: mir.ProcID, OperFrq: mir.OperFrq,
		SpecNam: mir.SpecNam, SpecVer: mir.SpecVer, FlowID: mir.FlowID,
		SetupID: mir.SetupID, DsgnRev: mir.DsgnRev, EngID: mir.EngID,
		RomCod: mir.RomCod, SerlNum: mir.SerlNum, SuprNam: mir.SuprNam,
		FinishT: mrr.FinishT, DispCod: mrr.DispCod,
		UsrDesc: mrr.UsrDesc, ExcDesc: mrr.ExcDesc,
	}
}

// WaferInformation pairs a wafer-start record with its matching
// wafer-end record.
type WaferInformation struct {
	// WIR fields.
	HeadNum uint8
	SiteGrp uint8
	StartT  uint32

	// WRR fields.
	WaferID string
	FinishT uint32
	PartCnt uint32
	RtstCnt uint32
	AbrtCnt uint32
	GoodCnt uint32
	FuncCnt uint32
	FabwfID string
	FrameID string
	MaskID  string
	UsrDesc string
	ExcDesc string
}

func newWaferInformation(wir *records.WIR, wrr *records.WRR) WaferInformation {
	return WaferInformation{
		HeadNum: wir.HeadNum, SiteGrp: wir.SiteGrp, StartT: wir.StartT,
		WaferID: wrr.WaferID, FinishT: wrr.FinishT, PartCnt: wrr.PartCnt,
		RtstCnt: wrr.RtstCnt, AbrtCnt: wrr.AbrtCnt, GoodCnt: wrr.GoodCnt,
		FuncCnt: wrr.FuncCnt, FabwfID: wrr.FabwfID, FrameID: wrr.FrameID,
		MaskID: wrr.MaskID, UsrDesc: wrr.UsrDesc, ExcDesc: wrr.ExcDesc,
	}
}

// File is the complete parsed content of one STDF file: lot and wafer
// metadata, site description, bin and pin tables, and the assembled
// test data.
type File struct {
	Master   MasterInformation
	Wafers   []WaferInformation
	Site     *records.SDR
	SoftBins map[uint16]*records.SBR
	HardBins map[uint16]*records.HBR
	Pins     map[uint16]*records.PMR
	TestData *TestData
	Summary  *RecordSummary
}

// Parse runs both passes over a source that can be read twice. pass1
// and pass2 must be independent readers over the same bytes; the
// second pass cannot begin before the first completes because row
// pre-allocation depends on the full metadata.
func Parse(pass1, pass2 io.Reader, opts *Options) (*File, error) {
	info, summary, err := CollectTestInformation(pass1, opts)
	if err != nil {
		return nil, err
	}
	td := NewTestData(info)

	file := &File{
		SoftBins: make(map[uint16]*records.SBR),
		HardBins: make(map[uint16]*records.HBR),
		Pins:     make(map[uint16]*records.PMR),
		TestData: td,
		Summary:  summary,
	}

	var (
		mir  *records.MIR
		mrr  *records.MRR
		wirs []*records.WIR
		wrrs []*records.WRR
	)

	s := records.NewStream(pass2)
	for s.Next() {
		raw := s.Record()
		rec, err := records.Decode(raw)
		if err != nil {
			if err = handleDecodeErr(raw, err, opts); err != nil {
				return nil, err
			}
			continue
		}
		switch r := rec.(type) {
		case *records.MIR:
			mir = r
		case *records.MRR:
			mrr = r
		case *records.SDR:
			file.Site = r
		case *records.SBR:
			file.SoftBins[r.SbinNum] = r
		case *records.HBR:
			file.HardBins[r.HbinNum] = r
		case *records.PMR:
			file.Pins[r.PmrIndx] = r
		case *records.WIR:
			td.OpenWafer(r)
			wirs = append(wirs, r)
		case *records.WRR:
			td.CloseWafer()
			wrrs = append(wrrs, r)
		case *records.PIR:
			if err := td.OpenPart(r); err != nil {
				return nil, err
			}
		case *records.PTR:
			if err := td.AddParametric(r); err != nil {
				return nil, err
			}
		case *records.FTR:
			if err := td.AddFunctional(r); err != nil {
				return nil, err
			}
		case *records.MPR:
			if err := td.AddMultiPin(r); err != nil {
				return nil, err
			}
		case *records.PRR:
			if err := td.ClosePart(r); err != nil {
				return nil, err
			}
		}
	}
	td.Finalize()

	var missing []string
	if mir == nil {
		missing = append(missing, "MIR")
	}
	if mrr == nil {
		missing = append(missing, "MRR")
	}
	if file.Site == nil {
		missing = append(missing, "SDR")
	}
	if len(missing) > 0 {
		return nil, &MissingRecordsError{Missing: missing}
	}
	file.Master = newMasterInformation(mir, mrr)
	for i := range wirs {
		if i >= len(wrrs) {
			break
		}
		file.Wafers = append(file.Wafers, newWaferInformation(wirs[i], wrrs[i]))
	}
	return file, nil
}

// ParseFile parses the named STDF file, decompressing gzip or zstd
// containers transparently. The file is opened twice, once per pass.
func ParseFile(name string, opts *Options) (*File, error) {
	p1, err := records.Open(name)
	if err != nil {
		return nil, err
	}
	defer p1.Close()
	p2, err := records.Open(name)
	if err != nil {
		return nil, err
	}
	defer p2.Close()
	return Parse(p1, p2, opts)
}
