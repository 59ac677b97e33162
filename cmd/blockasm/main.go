package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/btcsuite/btclog"

	"blockasm.dev/engine/assembler"
	"blockasm.dev/engine/crypto"
)

var nowUnix = func() int64 { return time.Now().Unix() }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	defaults := assembler.DefaultConfig()
	cfg := defaults

	fs := flag.NewFlagSet("blockasm", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.MempoolDir, "mempool", defaults.MempoolDir, "directory of candidate-transaction JSON files")
	fs.StringVar(&cfg.OutputPath, "out", defaults.OutputPath, "path to write the assembled block to")
	payoutScriptHex := fs.String("payout-script", hex.EncodeToString(defaults.PayoutScript), "coinbase payout scriptPubKey, hex-encoded")
	fs.Uint64Var(&cfg.Subsidy, "subsidy", defaults.Subsidy, "block subsidy, in the smallest unit")
	fs.StringVar(&cfg.AuditDBPath, "audit-db", defaults.AuditDBPath, "path to the bbolt audit log")
	fs.StringVar(&cfg.LogLevel, "log-level", defaults.LogLevel, "log level: debug|info|warn|error")
	noAudit := fs.Bool("no-audit", false, "skip recording a run to the audit log")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	payoutScript, err := hex.DecodeString(strings.TrimSpace(*payoutScriptHex))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "invalid -payout-script: %v\n", err)
		return 2
	}
	cfg.PayoutScript = payoutScript

	if err := assembler.ValidateConfig(cfg); err != nil {
		_, _ = fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 2
	}

	backend := btclog.NewBackend(stderr)
	log := backend.Logger("BLOCKASM")
	level, ok := btclog.LevelFromString(cfg.LogLevel)
	if !ok {
		level = btclog.LevelInfo
	}
	log.SetLevel(level)

	var auditLog *assembler.AuditLog
	if !*noAudit {
		auditLog, err = assembler.OpenAuditLog(cfg.AuditDBPath)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "audit log open failed: %v\n", err)
			return 2
		}
		defer func() { _ = auditLog.Close() }()
	}

	provider := crypto.Secp256k1Provider{}

	result, err := assembler.Assemble(cfg, provider, log, auditLog, uint32(nowUnix()))
	if err != nil {
		log.Errorf("assemble failed: %v", err)
		return 1
	}

	out, err := os.Create(cfg.OutputPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "output create failed: %v\n", err)
		return 1
	}
	defer func() { _ = out.Close() }()

	if err := assembler.WriteOutput(out, result.Header, result.CoinbaseFull, result.CoinbaseTxid, result.IncludedTxids); err != nil {
		_, _ = fmt.Fprintf(stderr, "output write failed: %v\n", err)
		return 1
	}

	_, _ = fmt.Fprintf(stdout, "assembled: tx_count=%d total_fee=%d nonce=%d\n", result.TxCount, result.TotalFee, result.Header.Nonce)
	return 0
}
