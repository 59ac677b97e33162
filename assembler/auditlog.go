package assembler

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketRuns = []byte("runs")

// AuditLog is a single-bucket bbolt store holding one JSON record per
// mined block: block hash, coinbase txid, included tx count, total
// fee, and a caller-supplied timestamp. It is not a UTXO-set or
// chain-index store — nothing downstream reads it back into
// consensus decisions; it exists purely for operational visibility
// into past runs of the engine.
type AuditLog struct {
	db *bolt.DB
}

// RunRecord is one audit-log entry.
type RunRecord struct {
	BlockHash    string `json:"block_hash"`
	CoinbaseTxid string `json:"coinbase_txid"`
	TxCount      int    `json:"tx_count"`
	TotalFee     uint64 `json:"total_fee"`
	Timestamp    int64  `json:"timestamp"`
}

// OpenAuditLog opens (creating if necessary) the bbolt file at path and
// ensures the runs bucket exists.
func OpenAuditLog(path string) (*AuditLog, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}
	return &AuditLog{db: db}, nil
}

func (a *AuditLog) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Record appends rec under a monotonically increasing run counter key.
func (a *AuditLog) Record(rec RunRecord) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode run record: %w", err)
	}
	return a.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		for i := 0; i < 8; i++ {
			key[i] = byte(seq >> (8 * uint(7-i)))
		}
		return b.Put(key, val)
	})
}

// hex32 renders a 32-byte hash as lowercase hex for a RunRecord.
func hex32(b [32]byte) string {
	return hex.EncodeToString(b[:])
}
