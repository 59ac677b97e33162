// Package assembler implements the block-assembly pipeline: selecting
// validated candidates under the weight ceiling, synthesizing the
// coinbase, mining the header, and recording a per-run audit entry.
package assembler

import (
	"fmt"
	"math"

	"github.com/btcsuite/btclog"

	"blockasm.dev/engine/consensus"
	"blockasm.dev/engine/crypto"
	"blockasm.dev/engine/mempool"
)

// Result is everything the output writer (C8) needs from one run.
type Result struct {
	Header        consensus.BlockHeader
	CoinbaseFull  []byte
	CoinbaseTxid  [32]byte
	IncludedTxids [][32]byte
	TotalFee      uint64
	TxCount       int
}

// coinbaseWeightEstimate reserves budget for the coinbase before its
// final weight is known; the coinbase's own serialized size does not
// depend on which other transactions are selected, only on the
// witness commitment's length, so a single conservative estimate
// covers every run.
const coinbaseWeightEstimate = 500

// maxTimestampBumps bounds the bump-and-retry mining loop so a
// pathological target cannot spin forever; exhausting this many full
// nonce sweeps surfaces MiningBudgetExhausted instead.
const maxTimestampBumps = 128

// Assemble runs C0 (load) through C7 (mine), then hands the resulting
// summary to auditLog. It never mutates the mempool directory.
func Assemble(cfg Config, provider crypto.Provider, log btclog.Logger, auditLog *AuditLog, timestamp uint32) (*Result, error) {
	candidates, err := mempool.Load(cfg.MempoolDir, func(filename string, err error) {
		log.Warnf("skipping unreadable mempool file %s: %v", filename, err)
	})
	if err != nil {
		return nil, fmt.Errorf("load mempool: %w", err)
	}

	valid := make([]*consensus.ValidatedTx, 0, len(candidates))
	for _, c := range candidates {
		v, err := consensus.ValidateTx(c.Tx, c.ExternalTxid, provider)
		if err != nil {
			log.Infof("rejecting %x: %v", c.ExternalTxid, err)
			continue
		}
		valid = append(valid, v)
	}
	if len(valid) == 0 {
		return nil, &consensus.TxError{Code: consensus.NoEligibleTransactions, Msg: "no candidate transaction validated"}
	}

	selected := Select(valid, coinbaseWeightEstimate)

	var totalFee uint64
	wtxids := make([][32]byte, 0, len(selected))
	txids := make([][32]byte, 0, len(selected))
	for _, v := range selected {
		totalFee, err = addFeeSafe(totalFee, v.Fee)
		if err != nil {
			return nil, err
		}
		wtxids = append(wtxids, v.Wtxid)
		txids = append(txids, v.Txid)
	}

	witnessRoot, err := consensus.WitnessMerkleRoot(wtxids)
	if err != nil {
		return nil, err
	}

	reward, err := addFeeSafe(cfg.Subsidy, totalFee)
	if err != nil {
		return nil, err
	}
	coinbase := BuildCoinbase(0, 0, reward, cfg.PayoutScript, witnessRoot)
	coinbaseTxid := consensus.TxID(coinbase)

	merkleRoot, err := consensus.TxidMerkleRoot(coinbaseTxid, txids)
	if err != nil {
		return nil, err
	}

	var header consensus.BlockHeader
	mineTimestamp := timestamp
	ok := false
	for bump := 0; bump < maxTimestampBumps; bump++ {
		header, ok = MineHeader([32]byte{}, merkleRoot, mineTimestamp)
		if ok {
			break
		}
		mineTimestamp++
	}
	if !ok {
		return nil, &consensus.TxError{
			Code: consensus.MiningBudgetExhausted,
			Msg:  fmt.Sprintf("exhausted nonce space at %d consecutive timestamps starting from %d", maxTimestampBumps, timestamp),
		}
	}

	result := &Result{
		Header:        header,
		CoinbaseFull:  consensus.FullBytes(coinbase),
		CoinbaseTxid:  coinbaseTxid,
		IncludedTxids: txids,
		TotalFee:      totalFee,
		TxCount:       1 + len(selected),
	}

	if auditLog != nil {
		blockHash := consensus.Reverse32(consensus.Hash256(consensus.BlockHeaderBytes(header)))
		if err := auditLog.Record(RunRecord{
			BlockHash:    hex32(blockHash),
			CoinbaseTxid: hex32(coinbaseTxid),
			TxCount:      result.TxCount,
			TotalFee:     totalFee,
			Timestamp:    int64(header.Timestamp),
		}); err != nil {
			log.Errorf("audit log record failed: %v", err)
		}
	}

	return result, nil
}

func addFeeSafe(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, fmt.Errorf("fee total overflow")
	}
	return a + b, nil
}
