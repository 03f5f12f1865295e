package records

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		typ, sub uint8
		want     Type
	}{
		{0, 10, TypeFAR},
		{0, 20, TypeATR},
		{1, 10, TypeMIR},
		{1, 20, TypeMRR},
		{1, 40, TypeHBR},
		{1, 50, TypeSBR},
		{1, 60, TypePMR},
		{1, 80, TypeSDR},
		{2, 10, TypeWIR},
		{2, 20, TypeWRR},
		{5, 10, TypePIR},
		{5, 20, TypePRR},
		{10, 30, TypeTSR},
		{15, 10, TypePTR},
		{15, 15, TypeMPR},
		{15, 20, TypeFTR},
		{50, 10, TypeGDR},
		{50, 30, TypeDTR},
		{99, 99, TypeInvalid},
		{1, 11, TypeInvalid},
		{15, 30, TypeInvalid},
	}
	for _, tc := range tests {
		if got := Classify(tc.typ, tc.sub); got != tc.want {
			t.Errorf("Classify(%d, %d) = %v, want %v", tc.typ, tc.sub, got, tc.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	if got := TypePTR.String(); got != "PTR" {
		t.Errorf("TypePTR.String() = %q, want PTR", got)
	}
	if got := TypeInvalid.String(); got != "invalid" {
		t.Errorf("TypeInvalid.String() = %q, want invalid", got)
	}
}
