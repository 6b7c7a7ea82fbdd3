package termtreat

import "fmt"

// Term is what a Treatment maps to a RowConfiguration: its hash and stream
// identify it for diagnostics; only IdfClass drives the treatment lookup.
type Term struct {
	Hash     uint64
	Stream   uint8
	IdfClass IdfX10
}

// Treatment maps a term's IDF class to a pre-tabulated RowConfiguration.
// Implementations are constructed once per index build and are safe for
// concurrent read afterward.
type Treatment interface {
	// TreatmentFor returns the row configuration for term, clamping its IDF
	// class to MaxIdfX10. Total: never errors.
	TreatmentFor(term Term) RowConfiguration
	// Describe returns a short, human-readable summary for diagnostics.
	Describe() string
}

// NewTreatment constructs the named strategy's treatment. density must lie
// in (0, 1) and snr must be positive; variant is accepted for forward
// compatibility but currently unused by every strategy.
func NewTreatment(name StrategyName, density, snr float64, variant int32) (Treatment, error) {
	if density <= 0 || density >= 1 {
		return nil, &InvalidParameterError{Parameter: "density", Reason: "must lie in (0, 1)"}
	}
	if snr <= 0 {
		return nil, &InvalidParameterError{Parameter: "snr", Reason: "must be positive"}
	}

	switch name {
	case StrategyPrivateRank0:
		return &tabulatedTreatment{name: name, table: buildPrivateRank0Table()}, nil
	case StrategyPrivateSharedRank0:
		return &tabulatedTreatment{name: name, table: buildPrivateSharedRank0Table(density, snr)}, nil
	case StrategyPrivateSharedRank0And3:
		return &tabulatedTreatment{name: name, table: buildPrivateSharedRank0And3Table(density, snr)}, nil
	case StrategyPrivateSharedRank0ToN:
		return &tabulatedTreatment{name: name, table: buildPrivateSharedRank0ToNTable(density, snr)}, nil
	case StrategyClassicBitsliced:
		cfg := buildClassicBitslicedConfig(density, snr)
		table := make([]RowConfiguration, MaxIdfX10+1)
		for i := range table {
			table[i] = cfg
		}
		return &tabulatedTreatment{name: name, table: table}, nil
	case StrategyExperimental:
		return &tabulatedTreatment{name: name, table: buildExperimentalTable(density, snr)}, nil
	default:
		return nil, &InvalidParameterError{Parameter: "strategy", Reason: fmt.Sprintf("unknown strategy %q", name)}
	}
}

// tabulatedTreatment is the shared shape of all six strategies: a table
// indexed by IDF class, computed once at construction.
type tabulatedTreatment struct {
	name  StrategyName
	table []RowConfiguration
}

func (t *tabulatedTreatment) TreatmentFor(term Term) RowConfiguration {
	idf := term.IdfClass
	if idf > MaxIdfX10 {
		idf = MaxIdfX10
	}
	if idf < 0 {
		idf = 0
	}
	return t.table[idf]
}

func (t *tabulatedTreatment) Describe() string {
	return fmt.Sprintf("%s (%d IDF classes tabulated)", t.name, len(t.table))
}
