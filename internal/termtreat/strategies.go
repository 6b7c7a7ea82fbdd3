package termtreat

// StrategyName identifies one of the six treatment strategies by name, the
// form a caller supplies at construction time.
type StrategyName string

const (
	StrategyPrivateRank0           StrategyName = "PrivateRank0"
	StrategyPrivateSharedRank0     StrategyName = "PrivateSharedRank0"
	StrategyPrivateSharedRank0And3 StrategyName = "PrivateSharedRank0And3"
	StrategyPrivateSharedRank0ToN  StrategyName = "PrivateSharedRank0ToN"
	StrategyClassicBitsliced       StrategyName = "ClassicBitsliced"
	StrategyExperimental           StrategyName = "Experimental"
)

// privateSharedRank0ToNMaxDensity is the inner density ceiling used by
// PrivateSharedRank0ToN's rank walk, distinct from the strategy's own
// density parameter. Hard-coded in the source this strategy is grounded on.
const privateSharedRank0ToNMaxDensity = 0.15

// classicBitslicedReferenceIdf is the fixed IDF class ClassicBitsliced uses
// for every term, regardless of the term's actual class.
const classicBitslicedReferenceIdf IdfX10 = 40

func buildPrivateRank0Table() []RowConfiguration {
	table := make([]RowConfiguration, MaxIdfX10+1)
	for i := range table {
		var cfg RowConfiguration
		cfg.MustPushFront(RowConfigurationEntry{Rank: 0, Count: 1})
		table[i] = cfg
	}
	return table
}

func buildPrivateSharedRank0Table(density, snr float64) []RowConfiguration {
	table := make([]RowConfiguration, MaxIdfX10+1)
	for i := range table {
		f := IdfToFrequency(IdfX10(i))
		var cfg RowConfiguration
		if f >= density {
			cfg.MustPushFront(RowConfigurationEntry{Rank: 0, Count: 1})
		} else {
			k := ComputeRowCount(f, density, snr)
			cfg.MustPushFront(RowConfigurationEntry{Rank: 0, Count: uint8(k)})
		}
		table[i] = cfg
	}
	return table
}

func buildPrivateSharedRank0And3Table(density, snr float64) []RowConfiguration {
	table := make([]RowConfiguration, MaxIdfX10+1)
	for i := range table {
		f := IdfToFrequency(IdfX10(i))
		var cfg RowConfiguration
		if f > density {
			cfg.MustPushFront(RowConfigurationEntry{Rank: 0, Count: 1})
			table[i] = cfg
			continue
		}

		k := ComputeRowCount(f, density, snr)
		cfg.MustPushFront(RowConfigurationEntry{Rank: 0, Count: 2})
		if k > 2 {
			if FrequencyAtRank(f, 3) >= density {
				cfg.MustPushFront(RowConfigurationEntry{Rank: 3, Count: 1})
			} else {
				cfg.MustPushFront(RowConfigurationEntry{Rank: 3, Count: uint8(k - 2)})
			}
		}
		table[i] = cfg
	}
	return table
}

// buildPrivateSharedRank0ToNTable climbs ranks 1..max_rank-1 for each IDF
// class, decrementing numRows by one per rank and emitting (rank, 1) from
// both arms of the climb's if/else — this is the identical if/else the
// source carries; see Decision D2 in DESIGN.md. rank is then checked once
// more, at max_rank, or at rank 1 when max_rank is 0 and the climb never
// runs at all, since rank starts at 1: if frequency still hasn't
// reached density there, the remaining numRows stacks onto that one row
// instead of being discarded.
func buildPrivateSharedRank0ToNTable(density, snr float64) []RowConfiguration {
	table := make([]RowConfiguration, MaxIdfX10+1)
	for i := range table {
		f := IdfToFrequency(IdfX10(i))
		var cfg RowConfiguration
		if f > density {
			cfg.MustPushFront(RowConfigurationEntry{Rank: 0, Count: 1})
			table[i] = cfg
			continue
		}

		cfg.MustPushFront(RowConfigurationEntry{Rank: 0, Count: 2})

		maxRank := ComputeMaxRank(f, privateSharedRank0ToNMaxDensity)
		if maxRank > MaxRankValue {
			maxRank = MaxRankValue
		}

		numRows := int(ComputeRowCount(f, density, snr)) - 2
		rank := Rank(1)
		for ; rank < maxRank; rank++ {
			cfg.MustPushFront(RowConfigurationEntry{Rank: rank, Count: 1})
			numRows--
		}

		if FrequencyAtRank(f, rank) >= density {
			cfg.MustPushFront(RowConfigurationEntry{Rank: rank, Count: 1})
		} else {
			count := numRows
			if count <= 1 {
				count = 1
			}
			cfg.MustPushFront(RowConfigurationEntry{Rank: rank, Count: uint8(count)})
		}

		table[i] = cfg
	}
	return table
}

func buildClassicBitslicedConfig(density, snr float64) RowConfiguration {
	f := IdfToFrequency(classicBitslicedReferenceIdf)
	k := ComputeRowCount(f, density, snr)
	var cfg RowConfiguration
	cfg.MustPushFront(RowConfigurationEntry{Rank: 0, Count: uint8(k)})
	return cfg
}

func buildExperimentalTable(density, snr float64) []RowConfiguration {
	table := make([]RowConfiguration, MaxIdfX10+1)
	for i := range table {
		f := IdfToFrequency(IdfX10(i))
		rows, _ := SearchOptimal(f, density, snr)

		var cfg RowConfiguration
		for rank := 0; rank <= int(MaxRankValue); rank++ {
			if rows[rank] == 0 {
				continue
			}
			if FrequencyAtRank(f, Rank(rank)) > density {
				cfg.MustPushFront(RowConfigurationEntry{Rank: Rank(rank), Count: 1})
			} else {
				cfg.MustPushFront(RowConfigurationEntry{Rank: Rank(rank), Count: uint8(rows[rank])})
			}
		}
		table[i] = cfg
	}
	return table
}
