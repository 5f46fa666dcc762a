// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019 Caleb James DeLisle
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command txcorecli exercises this module's script-construction,
// address-codec and CoinJoin-authorization components from the command
// line, one operation per invocation.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	flags "github.com/jessevdk/go-flags"

	"github.com/pkt-cash/txcore/btcutil"
	"github.com/pkt-cash/txcore/coininfo"
	"github.com/pkt-cash/txcore/coinjoin"
	"github.com/pkt-cash/txcore/internal/er"
	"github.com/pkt-cash/txcore/pktlog/log"
	"github.com/pkt-cash/txcore/script"
)

// config is a flat, tag-driven option struct for go-flags rather than a
// subcommand tree: exactly one Op is selected per invocation.
type config struct {
	LogLevel string `long:"loglevel" default:"info" description:"Logging level: trace, debug, info, warn, error, critical, off"`

	Op string `long:"op" required:"true" description:"Operation: output-p2pkh, output-p2sh, output-witness, decode-address, parse-p2pkh, disasm, coinjoin-demo"`

	Hash       string `long:"hash" description:"Hex-encoded 20 or 32 byte hash/program, for output-p2pkh/output-p2sh/output-witness"`
	Address    string `long:"address" description:"Address string, for decode-address"`
	Script     string `long:"script" description:"Hex-encoded script/scriptSig, for parse-p2pkh/disasm"`
	Bech32HRP  string `long:"bech32-hrp" default:"bc" description:"bech32 human-readable prefix for decode-address"`
	AddrType   uint32 `long:"address-type" default:"0" description:"base58check P2PKH version byte for decode-address"`
	AddrTypeSH uint32 `long:"address-type-p2sh" default:"5" description:"base58check P2SH version byte for decode-address"`

	Coordinator string `long:"coordinator" description:"CoinJoin coordinator identity string, for coinjoin-demo"`
	Amount      uint64 `long:"amount" description:"Amount to mix in atomic units, for coinjoin-demo"`
	MaxFee      uint64 `long:"maxfee" description:"Maximum total fee in atomic units, for coinjoin-demo"`
	AddressN    string `long:"address-n" default:"2147483692,2147483648,2147483648" description:"Comma-separated BIP-32 account path, for coinjoin-demo"`
}

func main() {
	var cfg config
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if lvl, ok := log.LevelFromString(cfg.LogLevel); ok {
		if serr := log.SetLogLevels(lvl.String()); serr != nil {
			fmt.Fprintln(os.Stderr, serr.String())
		}
	}

	if err := run(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err.Message())
		os.Exit(1)
	}
}

func run(cfg *config) er.R {
	switch cfg.Op {
	case "output-p2pkh":
		return runOutputHash(cfg.Hash, script.OutputScriptP2PKH)
	case "output-p2sh":
		return runOutputHash(cfg.Hash, script.OutputScriptP2SH)
	case "output-witness":
		return runOutputHash(cfg.Hash, script.OutputScriptWitness)
	case "decode-address":
		return runDecodeAddress(cfg)
	case "parse-p2pkh":
		return runParseP2PKH(cfg.Script)
	case "disasm":
		return runDisasm(cfg.Script)
	case "coinjoin-demo":
		return runCoinJoinDemo(cfg)
	default:
		return er.Errorf("unknown --op %q", cfg.Op)
	}
}

func runOutputHash(hexHash string, build func([]byte) ([]byte, er.R)) er.R {
	raw, err := hex.DecodeString(hexHash)
	if err != nil {
		return er.E(err)
	}
	out, eerr := build(raw)
	if eerr != nil {
		return eerr
	}
	fmt.Println(hex.EncodeToString(out))
	return nil
}

func runDecodeAddress(cfg *config) er.R {
	coin := &coininfo.CoinInfo{
		Name:            "demo",
		Decimals:        8,
		Bech32Prefix:    cfg.Bech32HRP,
		AddressType:     cfg.AddrType,
		AddressTypeP2SH: cfg.AddrTypeSH,
		B58HashFunc:     btcutil.DoubleSha256,
		ScriptHash:      btcutil.Hash160,
	}
	outType, raw, err := script.DecodeAddress(cfg.Address, coin)
	if err != nil {
		return err
	}
	fmt.Printf("type=%d hash=%s\n", outType, hex.EncodeToString(raw))
	return nil
}

func runParseP2PKH(scriptHex string) er.R {
	raw, err := hex.DecodeString(scriptHex)
	if err != nil {
		return er.E(err)
	}
	parsed, eerr := script.ReadInputScriptP2PKH(raw)
	if eerr != nil {
		return eerr
	}
	fmt.Printf("pubkey=%s signature=%s\n",
		hex.EncodeToString(parsed.Pubkeys[0]),
		hex.EncodeToString(parsed.Signatures[0].SigAndHashType))
	return nil
}

func runDisasm(scriptHex string) er.R {
	raw, err := hex.DecodeString(scriptHex)
	if err != nil {
		return er.E(err)
	}
	fmt.Println(script.DisasmString(raw))
	return nil
}

// cliUI is a non-interactive stand-in for the hardware device's
// confirm/hold-to-confirm prompts: it prints what the device would show
// and always approves, so the CLI can exercise AuthorizeCoinJoin end to
// end without a real display.
type cliUI struct{}

func (cliUI) Confirm(text string) er.R {
	fmt.Println("[confirm]", text)
	return nil
}

func (cliUI) HoldToConfirm(text string) er.R {
	fmt.Println("[hold-to-confirm]", text)
	return nil
}

// permissivePathValidator accepts any path; a real path policy table
// (CoinInfo's cross-coin policy) is out of scope for this core and is
// supplied by the caller in a real device.
func permissivePathValidator(fullPath []uint32, curveName string, coin *coininfo.CoinInfo, scriptType int) er.R {
	return nil
}

func parseAddressN(s string) ([]uint32, er.R) {
	parts := strings.Split(s, ",")
	out := make([]uint32, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, er.E(err)
		}
		out = append(out, uint32(n))
	}
	return out, nil
}

func runCoinJoinDemo(cfg *config) er.R {
	addressN, err := parseAddressN(cfg.AddressN)
	if err != nil {
		return err
	}
	coin := &coininfo.CoinInfo{
		Name:      "demo",
		Decimals:  8,
		CurveName: "secp256k1",
	}
	var session coinjoin.Session
	req := coinjoin.Request{
		Coordinator: cfg.Coordinator,
		AddressN:    addressN,
		ScriptType:  int(script.SpendWitness),
		Amount:      cfg.Amount,
		MaxFee:      cfg.MaxFee,
		Coin:        coin,
	}
	if err := coinjoin.AuthorizeCoinJoin(req, cliUI{}, permissivePathValidator, &session); err != nil {
		return err
	}
	auth, _ := session.Get()
	fmt.Printf("authorized: coordinator=%s amount=%d maxfee=%d\n", auth.Coordinator, auth.Amount, auth.MaxFee)
	return nil
}
