// Package mempool enumerates the candidate-transaction directory and
// decodes each file's fixed JSON schema into consensus records. It is
// a collaborator, not part of the consensus core: it performs no
// semantic validation beyond what JSON decoding itself requires.
package mempool

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"blockasm.dev/engine/consensus"
)

type jsonPrevout struct {
	Value            uint64 `json:"value"`
	ScriptPubKey     string `json:"scriptpubkey"`
	ScriptPubKeyAsm  string `json:"scriptpubkey_asm"`
	ScriptPubKeyType string `json:"scriptpubkey_type"`
}

type jsonVin struct {
	Txid         string      `json:"txid"`
	Vout         uint32      `json:"vout"`
	ScriptSig    string      `json:"scriptsig"`
	ScriptSigAsm string      `json:"scriptsig_asm"`
	Sequence     uint32      `json:"sequence"`
	Witness      []string    `json:"witness"`
	Prevout      jsonPrevout `json:"prevout"`
}

type jsonVout struct {
	Value            uint64 `json:"value"`
	ScriptPubKey     string `json:"scriptpubkey"`
	ScriptPubKeyAsm  string `json:"scriptpubkey_asm"`
	ScriptPubKeyType string `json:"scriptpubkey_type"`
}

type jsonTx struct {
	Version  int32      `json:"version"`
	Locktime uint32      `json:"locktime"`
	Vin      []jsonVin  `json:"vin"`
	Vout     []jsonVout `json:"vout"`
}

// Candidate is one mempool file's decoded contents: the transaction it
// describes plus the external identifier asserted by its filename.
type Candidate struct {
	ExternalTxid [32]byte
	Tx           *consensus.Tx
}

// readFileFromDir rejects any name that is not a plain base name (no
// path separators, no "." or "..") before reading it, so a crafted
// mempool filename cannot escape the mempool directory.
func readFileFromDir(dir, name string) ([]byte, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid file name: %q", name)
	}
	return fs.ReadFile(os.DirFS(dir), name)
}

// Load enumerates dir for "*.json" files and decodes each into a
// Candidate. Files are returned sorted by name for deterministic
// downstream ordering; a file that fails to decode is skipped with its
// error reported through onError rather than aborting the whole load.
func Load(dir string, onError func(filename string, err error)) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]Candidate, 0, len(names))
	for _, name := range names {
		raw, err := readFileFromDir(dir, name)
		if err != nil {
			if onError != nil {
				onError(name, err)
			}
			continue
		}
		cand, err := decode(name, raw)
		if err != nil {
			if onError != nil {
				onError(name, err)
			}
			continue
		}
		out = append(out, cand)
	}
	return out, nil
}

func decode(filename string, raw []byte) (Candidate, error) {
	var jt jsonTx
	if err := json.Unmarshal(raw, &jt); err != nil {
		return Candidate{}, fmt.Errorf("%s: %w", filename, err)
	}

	stem := strings.TrimSuffix(filepath.Base(filename), ".json")
	externalTxid, err := parseTxidHex(stem)
	if err != nil {
		return Candidate{}, fmt.Errorf("%s: filename is not a valid txid: %w", filename, err)
	}

	tx := &consensus.Tx{
		Version:  jt.Version,
		Locktime: jt.Locktime,
	}

	hasWitness := false
	inputs := make([]consensus.TxInput, 0, len(jt.Vin))
	witnesses := make([]consensus.WitnessStack, 0, len(jt.Vin))
	for _, v := range jt.Vin {
		prevTxid, err := parseTxidHex(v.Txid)
		if err != nil {
			return Candidate{}, fmt.Errorf("%s: vin txid: %w", filename, err)
		}
		scriptSig, err := hex.DecodeString(v.ScriptSig)
		if err != nil {
			return Candidate{}, fmt.Errorf("%s: vin scriptsig: %w", filename, err)
		}
		prevoutScript, err := hex.DecodeString(v.Prevout.ScriptPubKey)
		if err != nil {
			return Candidate{}, fmt.Errorf("%s: vin prevout scriptpubkey: %w", filename, err)
		}

		stack := make(consensus.WitnessStack, 0, len(v.Witness))
		for _, w := range v.Witness {
			item, err := hex.DecodeString(w)
			if err != nil {
				return Candidate{}, fmt.Errorf("%s: vin witness item: %w", filename, err)
			}
			stack = append(stack, item)
		}
		if len(stack) > 0 {
			hasWitness = true
		}
		witnesses = append(witnesses, stack)

		inputs = append(inputs, consensus.TxInput{
			PrevTxid:  prevTxid,
			PrevVout:  v.Vout,
			ScriptSig: scriptSig,
			Sequence:  v.Sequence,
			Prevout: consensus.PrevoutView{
				Value:        v.Prevout.Value,
				ScriptPubKey: prevoutScript,
				Type:         consensus.ScriptType(v.Prevout.ScriptPubKeyType),
			},
		})
	}
	tx.Inputs = inputs
	if hasWitness {
		tx.Witnesses = witnesses
	}

	outputs := make([]consensus.TxOutput, 0, len(jt.Vout))
	for _, o := range jt.Vout {
		script, err := hex.DecodeString(o.ScriptPubKey)
		if err != nil {
			return Candidate{}, fmt.Errorf("%s: vout scriptpubkey: %w", filename, err)
		}
		outputs = append(outputs, consensus.TxOutput{Value: o.Value, ScriptPubKey: script})
	}
	tx.Outputs = outputs

	return Candidate{ExternalTxid: externalTxid, Tx: tx}, nil
}

func parseTxidHex(s string) ([32]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return [32]byte{}, err
	}
	if len(b) != 32 {
		return [32]byte{}, fmt.Errorf("txid must be 32 bytes, got %d", len(b))
	}
	var out [32]byte
	copy(out[:], b)
	return out, nil
}
