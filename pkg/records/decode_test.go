package records

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/blockberries/stdf/internal/stdftest"
	"github.com/blockberries/stdf/internal/wire"
)

func readOne(t *testing.T, data []byte) *RawRecord {
	t.Helper()
	s := NewStream(bytes.NewReader(data))
	if !s.Next() {
		t.Fatal("no record in test data")
	}
	return s.Record()
}

func TestDecodeMIR(t *testing.T) {
	raw := readOne(t, stdftest.MIR("LOT42"))
	r, err := DecodeMIR(raw)
	if err != nil {
		t.Fatalf("DecodeMIR: %v", err)
	}
	if r.LotID != "LOT42" {
		t.Errorf("LotID = %q, want LOT42", r.LotID)
	}
	if r.SetupT != 100 || r.StartT != 200 {
		t.Errorf("SetupT/StartT = %d/%d, want 100/200", r.SetupT, r.StartT)
	}
}

func TestDecodeSDR(t *testing.T) {
	raw := readOne(t, stdftest.SDR(1, 1, 2, 3, 4))
	r, err := DecodeSDR(raw)
	if err != nil {
		t.Fatalf("DecodeSDR: %v", err)
	}
	if r.SiteCnt != 4 || !reflect.DeepEqual(r.SiteNum, []uint8{1, 2, 3, 4}) {
		t.Errorf("SiteCnt/SiteNum = %d/%v", r.SiteCnt, r.SiteNum)
	}
}

func TestDecodeTSR(t *testing.T) {
	raw := readOne(t, stdftest.TSR(1, 2, 'P', 100, 7, "vdd_leakage"))
	r, err := DecodeTSR(raw)
	if err != nil {
		t.Fatalf("DecodeTSR: %v", err)
	}
	if r.HeadNum != 1 || r.SiteNum != 2 || r.TestTyp != 'P' {
		t.Errorf("header fields = %d/%d/%c", r.HeadNum, r.SiteNum, r.TestTyp)
	}
	if r.TestNum != 100 || r.ExecCnt != 7 {
		t.Errorf("TestNum/ExecCnt = %d/%d, want 100/7", r.TestNum, r.ExecCnt)
	}
	if r.TestNam != "vdd_leakage" {
		t.Errorf("TestNam = %q", r.TestNam)
	}
	if r.TestTim != 0.5 {
		t.Errorf("TestTim = %v, want 0.5", r.TestTim)
	}
}

func TestDecodePTRFull(t *testing.T) {
	raw := readOne(t, stdftest.PTR(100, 1, 2, 3.5))
	r, err := DecodePTR(raw)
	if err != nil {
		t.Fatalf("DecodePTR: %v", err)
	}
	if r.TestNum != 100 || r.HeadNum != 1 || r.SiteNum != 2 {
		t.Errorf("identity = %d/%d/%d", r.TestNum, r.HeadNum, r.SiteNum)
	}
	if r.Result != 3.5 {
		t.Errorf("Result = %v, want 3.5", r.Result)
	}
	if r.LoLimit != -1 || r.HiLimit != 1 || r.Units != "V" {
		t.Errorf("limits = %v/%v %q, want -1/1 V", r.LoLimit, r.HiLimit, r.Units)
	}
	if !r.Passed() {
		t.Error("Passed() = false, want true")
	}
}

func TestDecodePTRWithoutOptionalBlock(t *testing.T) {
	raw := readOne(t, stdftest.PTRShort(100, 1, 2, 3.5))
	r, err := DecodePTR(raw)
	if err != nil {
		t.Fatalf("DecodePTR: %v", err)
	}
	if r.Result != 3.5 {
		t.Errorf("Result = %v, want 3.5", r.Result)
	}
	// Absent suffix fields take zero values, never NaN.
	if r.LoLimit != 0 || r.HiLimit != 0 || r.Units != "" {
		t.Errorf("optional block = %v/%v %q, want zero values", r.LoLimit, r.HiLimit, r.Units)
	}
}

func TestDecodeMPR(t *testing.T) {
	raw := readOne(t, stdftest.MPR(300, 1, 1, []uint16{5, 6, 7}, []float32{0.1, 0.2, 0.3}))
	r, err := DecodeMPR(raw)
	if err != nil {
		t.Fatalf("DecodeMPR: %v", err)
	}
	if r.RtnIcnt != 3 || r.RsltCnt != 3 {
		t.Errorf("counts = %d/%d, want 3/3", r.RtnIcnt, r.RsltCnt)
	}
	if !reflect.DeepEqual(r.RtnRslt, []float32{0.1, 0.2, 0.3}) {
		t.Errorf("RtnRslt = %v", r.RtnRslt)
	}
	if !reflect.DeepEqual(r.RtnIndx, []uint16{5, 6, 7}) {
		t.Errorf("RtnIndx = %v", r.RtnIndx)
	}
}

func TestDecodeFTR(t *testing.T) {
	raw := readOne(t, stdftest.FTR(200, 1, 1, true))
	r, err := DecodeFTR(raw)
	if err != nil {
		t.Fatalf("DecodeFTR: %v", err)
	}
	if r.Passed() {
		t.Error("Passed() = true for a failed execution")
	}

	raw = readOne(t, stdftest.FTR(200, 1, 1, false))
	r, err = DecodeFTR(raw)
	if err != nil {
		t.Fatalf("DecodeFTR: %v", err)
	}
	if !r.Passed() {
		t.Error("Passed() = false for a passing execution")
	}
}

func TestDecodePRR(t *testing.T) {
	raw := readOne(t, stdftest.PRR(1, 2, "P7", 3, 4, -3, 9))
	r, err := DecodePRR(raw)
	if err != nil {
		t.Fatalf("DecodePRR: %v", err)
	}
	if r.PartID != "P7" || r.SoftBin != 3 || r.HardBin != 4 {
		t.Errorf("PartID/SoftBin/HardBin = %q/%d/%d", r.PartID, r.SoftBin, r.HardBin)
	}
	if r.XCoord != -3 || r.YCoord != 9 {
		t.Errorf("coords = %d/%d, want -3/9", r.XCoord, r.YCoord)
	}
}

func TestDecodeErrorOnOverrunString(t *testing.T) {
	// A WIR whose WAFER_ID declares 10 bytes but the record holds 2.
	content := new(stdftest.B).U1(1).U1(255).U4(0).U1(10).U1('W').U1('1').Bytes()
	raw := readOne(t, stdftest.Record(2, 10, content))
	_, err := DecodeWIR(raw)
	if err == nil {
		t.Fatal("DecodeWIR on overrun string: err = nil")
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err = %T, want *DecodeError", err)
	}
	if de.Type != TypeWIR {
		t.Errorf("DecodeError.Type = %v, want TypeWIR", de.Type)
	}
	if !errors.Is(err, wire.ErrTruncated) {
		t.Errorf("err does not wrap wire.ErrTruncated: %v", err)
	}
}

func TestDecodeDispatch(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Type
	}{
		{"pir", stdftest.PIR(1, 1), TypePIR},
		{"ptr", stdftest.PTR(1, 1, 1, 0), TypePTR},
		{"wir", stdftest.WIR(1, "W"), TypeWIR},
		{"sbr", stdftest.SBR(1, 1, 1, 10, 'P', "pass"), TypeSBR},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := Decode(readOne(t, tc.data))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if rec.Kind() != tc.want {
				t.Errorf("Kind() = %v, want %v", rec.Kind(), tc.want)
			}
		})
	}

	t.Run("unhandled kind", func(t *testing.T) {
		rec, err := Decode(readOne(t, stdftest.Record(50, 10, []byte{0})))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if rec != nil {
			t.Errorf("Decode(GDR) = %v, want nil", rec)
		}
	})
}

func TestDecodePTRNaNResult(t *testing.T) {
	nan := float32(math.NaN())
	raw := readOne(t, stdftest.PTRShort(1, 1, 1, nan))
	r, err := DecodePTR(raw)
	if err != nil {
		t.Fatalf("DecodePTR: %v", err)
	}
	if !math.IsNaN(float64(r.Result)) {
		t.Errorf("Result = %v, want NaN", r.Result)
	}
}
