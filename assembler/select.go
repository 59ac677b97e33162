package assembler

import (
	"bytes"
	"sort"

	"blockasm.dev/engine/consensus"
)

// Select commits to the deterministic order the merkle root depends
// on — ascending by fee-per-weight, ties broken by txid lexicographic
// order — then walks candidates in that order, including each one that
// still fits and skipping any that would push cumulative weight
// (coinbase weight already reserved) past consensus.MaxBlockWeight.
func Select(candidates []*consensus.ValidatedTx, coinbaseWeight uint64) []*consensus.ValidatedTx {
	ordered := append([]*consensus.ValidatedTx(nil), candidates...)
	sort.Slice(ordered, func(i, j int) bool {
		fi, fj := feeRate(ordered[i]), feeRate(ordered[j])
		if fi != fj {
			return fi < fj
		}
		return bytes.Compare(ordered[i].Txid[:], ordered[j].Txid[:]) < 0
	})

	var budget uint64
	if coinbaseWeight < consensus.MaxBlockWeight {
		budget = consensus.MaxBlockWeight - coinbaseWeight
	}

	var used uint64
	selected := make([]*consensus.ValidatedTx, 0, len(ordered))
	for _, c := range ordered {
		if used+c.Weight > budget {
			continue
		}
		used += c.Weight
		selected = append(selected, c)
	}
	return selected
}

func feeRate(v *consensus.ValidatedTx) float64 {
	if v.Weight == 0 {
		return 0
	}
	return float64(v.Fee) / float64(v.Weight)
}
