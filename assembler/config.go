package assembler

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the assembler's run-time configuration: where to read
// candidates from, where to write the mined block, what payout script
// and subsidy to use, and where to keep the audit log.
type Config struct {
	MempoolDir   string
	OutputPath   string
	PayoutScript []byte
	Subsidy      uint64
	AuditDBPath  string
	LogLevel     string
}

// defaultPayoutScript is the example P2PKH scriptPubKey carried by the
// reference implementation this engine is grounded on.
var defaultPayoutScript = mustHex("76a914edf10a7fac6b32e24daa5305c723f3de58db1bc888ac")

// DefaultSubsidy is 50 BTC expressed in the smallest unit.
const DefaultSubsidy = 50_0000_0000

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("assembler: bad built-in hex constant")
	}
	return b
}

func DefaultAuditDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "blockasm-audit.db"
	}
	return filepath.Join(home, ".blockasm", "audit.db")
}

func DefaultConfig() Config {
	return Config{
		MempoolDir:   "mempool",
		OutputPath:   "output.txt",
		PayoutScript: defaultPayoutScript,
		Subsidy:      DefaultSubsidy,
		AuditDBPath:  DefaultAuditDBPath(),
		LogLevel:     "info",
	}
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// ValidateConfig reports the first structural problem with cfg, if any.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.MempoolDir) == "" {
		return errors.New("mempool directory is required")
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("output path is required")
	}
	if len(cfg.PayoutScript) == 0 {
		return errors.New("payout script is required")
	}
	if strings.TrimSpace(cfg.AuditDBPath) == "" {
		return errors.New("audit db path is required")
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	return nil
}
