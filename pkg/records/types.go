// Package records implements the STDF record layer: the sequential raw
// record reader, record-kind classification, and the per-kind decoders
// that turn a raw record's content bytes into typed record structs.
package records

// Type identifies an STDF record kind.
type Type uint8

// Known record kinds. The names follow the STDF V4 specification's
// three-letter record mnemonics.
const (
	TypeInvalid Type = iota
	TypeFAR          // File Attributes Record
	TypeATR          // Audit Trail Record
	TypeVUR          // Version Update Record
	TypeMIR          // Master Information Record
	TypeMRR          // Master Results Record
	TypePCR          // Part Count Record
	TypeHBR          // Hardware Bin Record
	TypeSBR          // Software Bin Record
	TypePMR          // Pin Map Record
	TypePGR          // Pin Group Record
	TypePLR          // Pin List Record
	TypeRDR          // Retest Data Record
	TypeSDR          // Site Description Record
	TypePSR          // Pattern Sequence Record
	TypeWIR          // Wafer Information Record
	TypeWRR          // Wafer Results Record
	TypeWCR          // Wafer Configuration Record
	TypePIR          // Part Information Record
	TypePRR          // Part Results Record
	TypeTSR          // Test Synopsis Record
	TypePTR          // Parametric Test Record
	TypeMPR          // Multiple-Result Parametric Record
	TypeFTR          // Functional Test Record
	TypeBPS          // Begin Program Section Record
	TypeEPS          // End Program Section Record
	TypeGDR          // Generic Data Record
	TypeDTR          // Datalog Text Record
)

// Classify maps a record header's (REC_TYP, REC_SUB) pair to a record
// kind. Unmapped pairs classify as TypeInvalid; such records are still
// yielded by the stream reader so callers can count or skip them.
func Classify(typ, sub uint8) Type {
	switch typ {
	case 0:
		switch sub {
		case 10:
			return TypeFAR
		case 20:
			return TypeATR
		case 30:
			return TypeVUR
		}
	case 1:
		switch sub {
		case 10:
			return TypeMIR
		case 20:
			return TypeMRR
		case 30:
			return TypePCR
		case 40:
			return TypeHBR
		case 50:
			return TypeSBR
		case 60:
			return TypePMR
		case 62:
			return TypePGR
		case 63:
			return TypePLR
		case 70:
			return TypeRDR
		case 80:
			return TypeSDR
		case 90:
			return TypePSR
		}
	case 2:
		switch sub {
		case 10:
			return TypeWIR
		case 20:
			return TypeWRR
		case 30:
			return TypeWCR
		}
	case 5:
		switch sub {
		case 10:
			return TypePIR
		case 20:
			return TypePRR
		}
	case 10:
		switch sub {
		case 30:
			return TypeTSR
		}
	case 15:
		switch sub {
		case 10:
			return TypePTR
		case 15:
			return TypeMPR
		case 20:
			return TypeFTR
		}
	case 20:
		switch sub {
		case 10:
			return TypeBPS
		case 20:
			return TypeEPS
		}
	case 50:
		switch sub {
		case 10:
			return TypeGDR
		case 30:
			return TypeDTR
		}
	}
	return TypeInvalid
}

var typeNames = map[Type]string{
	TypeFAR: "FAR", TypeATR: "ATR", TypeVUR: "VUR",
	TypeMIR: "MIR", TypeMRR: "MRR", TypePCR: "PCR",
	TypeHBR: "HBR", TypeSBR: "SBR", TypePMR: "PMR",
	TypePGR: "PGR", TypePLR: "PLR", TypeRDR: "RDR",
	TypeSDR: "SDR", TypePSR: "PSR", TypeWIR: "WIR",
	TypeWRR: "WRR", TypeWCR: "WCR", TypePIR: "PIR",
	TypePRR: "PRR", TypeTSR: "TSR", TypePTR: "PTR",
	TypeMPR: "MPR", TypeFTR: "FTR", TypeBPS: "BPS",
	TypeEPS: "EPS", TypeGDR: "GDR", TypeDTR: "DTR",
}

// String returns the record kind's STDF mnemonic.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "invalid"
}
