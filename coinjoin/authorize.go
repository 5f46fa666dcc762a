// Package coinjoin implements the CoinJoin authorization envelope: a
// one-shot, user-confirmed operation that installs a session-scoped
// record later consulted (outside this package) to decide whether a
// signing request may skip its own per-transaction confirmation.
package coinjoin

import (
	"fmt"
	"sync"

	"github.com/pkt-cash/txcore/btcutil"
	"github.com/pkt-cash/txcore/coininfo"
	"github.com/pkt-cash/txcore/script/scripterr"

	"github.com/pkt-cash/txcore/internal/er"
	"github.com/pkt-cash/txcore/pktlog/log"
)

// BIP32WalletDepth is the number of wallet-internal path levels
// (change, address index) this package appends to a user-supplied
// account-level address_n before validating the full derivation.
const BIP32WalletDepth = 2

// MaxCoordinatorLen is the longest coordinator identity string this
// package will accept.
const MaxCoordinatorLen = 18

// Authorization is the record AuthorizeCoinJoin installs: everything a
// later signing request must match before it may suppress its own
// confirmation prompt.
type Authorization struct {
	Coordinator     string
	Coin            *coininfo.CoinInfo
	Amount          uint64
	MaxFee          uint64
	AddressNPrefix  []uint32
	ScriptType      int
}

// Session holds at most one Authorization at a time. The zero value is
// an empty session. A Session is safe for concurrent use; the device's
// signing path reads it while a new authorization may be installed by a
// (necessarily serialized, on real hardware) confirmation flow.
type Session struct {
	mu   sync.RWMutex
	auth *Authorization
}

// Get returns the current authorization, if any.
func (s *Session) Get() (*Authorization, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth, s.auth != nil
}

// Clear removes any installed authorization, on session teardown or
// explicit revocation.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.auth != nil {
		log.Debugf("cleared coinjoin authorization for coordinator %s", s.auth.Coordinator)
	}
	s.auth = nil
}

func (s *Session) install(a *Authorization) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = a
}

// Request is the caller-supplied envelope AuthorizeCoinJoin validates
// and, on success, confirms with the user and installs.
type Request struct {
	Coordinator string
	AddressN    []uint32
	ScriptType  int
	Amount      uint64
	MaxFee      uint64
	Coin        *coininfo.CoinInfo
}

// validateCoordinator checks the coordinator identity string: printable
// ASCII only, length bounded.
func validateCoordinator(coordinator string) er.R {
	if len(coordinator) > MaxCoordinatorLen {
		return scripterr.New(scripterr.ErrInvalidCoordinator, "coordinator name is too long")
	}
	for i := 0; i < len(coordinator); i++ {
		b := coordinator[i]
		if b < 0x20 || b > 0x7E {
			return scripterr.New(scripterr.ErrInvalidCoordinator, "coordinator name contains a non-printable byte")
		}
	}
	return nil
}

// fullPath appends BIP32WalletDepth zero words to addressN, the
// wallet-internal levels every signing path shares beneath a CoinJoin
// account.
func fullPath(addressN []uint32) []uint32 {
	out := make([]uint32, len(addressN)+BIP32WalletDepth)
	copy(out, addressN)
	return out
}

// AuthorizeCoinJoin validates req, confirms it with the user through ui,
// and, on success, installs it into session, replacing any previous
// authorization. Any validation failure or user decline aborts before
// session state changes.
func AuthorizeCoinJoin(req Request, ui coininfo.UI, validatePath coininfo.PathValidatorFunc, session *Session) er.R {
	if err := validateCoordinator(req.Coordinator); err != nil {
		log.Debugf("rejecting coinjoin authorization: invalid coordinator: %s", err.Message())
		return err
	}

	path := fullPath(req.AddressN)
	if err := validatePath(path, req.Coin.CurveName, req.Coin, req.ScriptType); err != nil {
		log.Debugf("rejecting coinjoin authorization for %s: invalid path: %s", req.Coordinator, err.Message())
		return err
	}

	if err := ui.Confirm(fmt.Sprintf(
		"Do you really want to take part in a CoinJoin transaction at: %s",
		req.Coordinator,
	)); err != nil {
		log.Debugf("coinjoin authorization for %s declined at coordinator prompt", req.Coordinator)
		return err
	}

	if err := ui.HoldToConfirm(fmt.Sprintf(
		"Amount to mix: %s %s. Maximum total fees: %s %s",
		btcutil.FormatAmount(req.Amount, req.Coin.Decimals), req.Coin.Name,
		btcutil.FormatAmount(req.MaxFee, req.Coin.Decimals), req.Coin.Name,
	)); err != nil {
		log.Debugf("coinjoin authorization for %s declined at amount prompt", req.Coordinator)
		return err
	}

	session.install(&Authorization{
		Coordinator:    req.Coordinator,
		Coin:           req.Coin,
		Amount:         req.Amount,
		MaxFee:         req.MaxFee,
		AddressNPrefix: req.AddressN,
		ScriptType:     req.ScriptType,
	})
	log.Infof("installed coinjoin authorization for coordinator %s on %s", req.Coordinator, req.Coin.Name)
	return nil
}
