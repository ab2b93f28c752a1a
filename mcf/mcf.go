// Copyright 2012 Dmitry Chestnykh   (Go implementation)
// Copyright 2009 Colin Percival     (original C implementation)
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mcf serializes and verifies scrypt key derivations using the
// Modular Crypt Format: a printable, self-describing "$s1$<params>$<salt>$<key>"
// record that carries everything scrypt.Key needs to reproduce a derivation
// except the password itself.
//
// The Config/Params shape follows the mcf framework's scrypt plugin
// (github.com/gyepisam/mcf/scrypt): a package-level default that callers
// copy, modify, and pass back in, rather than a long positional argument
// list.
package mcf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	scryptmcf "github.com/dchest/scryptmcf"
)

// recordID is the MCF algorithm tag this package emits and recognizes.
const recordID = "s1"

// KeyLen is the fixed derived-key length stored in an MCF record.
const KeyLen = 64

// MaxSaltLen and MinSaltLen bound the salt length Generate accepts for a
// "$s1$" record.
const (
	MinSaltLen = 1
	MaxSaltLen = 16
)

// MaxR and MaxP are the largest block-size and parallelization factors the
// record's one-byte fields can hold.
const (
	MaxR = 255
	MaxP = 255
)

// MaxT is the largest log2(N) Generate will encode in the record's
// one-byte t field.
const MaxT = 31

// Params holds the scrypt cost parameters carried by an MCF record.
type Params struct {
	N, R, P int
}

// Weaker reports whether any one of p's N, R or P is lower than other's —
// i.e. whether a hash stored with p should be upgraded once the
// user's plaintext password is available again. Adapted from
// github.com/gyepisam/mcf/scrypt's Config.AtLeast, inverted to ask "is this
// one weaker" rather than "is this one at least as strong".
func (p Params) Weaker(other Params) bool {
	return p.N < other.N || p.R < other.R || p.P < other.P
}

// Config is the default scrypt configuration used by Generate when no
// explicit Params are given, plus the salt length used for random salts.
type Config struct {
	Params
	SaltLen int
}

// DefaultConfig returns the package's default configuration: scrypt's
// "interactive" work factor, with a 16-byte random salt.
func DefaultConfig() Config {
	return Config{
		Params:  Params{N: scryptmcf.DefaultN, R: scryptmcf.DefaultR, P: scryptmcf.DefaultP},
		SaltLen: MaxSaltLen,
	}
}

// Generate derives an MCF record for password using cfg's parameters. If
// salt is nil, cfg.SaltLen bytes (default 16) are drawn from crypto/rand;
// otherwise salt must be between MinSaltLen and MaxSaltLen bytes long.
//
// Two calls with salt == nil produce different records with overwhelming
// probability — callers who need the same record twice must supply the
// salt explicitly.
func (cfg Config) Generate(password, salt []byte) ([]byte, error) {
	if salt == nil {
		n := cfg.SaltLen
		if n == 0 {
			n = MaxSaltLen
		}
		salt = make([]byte, n)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("mcf: reading random salt: %w", err)
		}
	}
	if len(salt) < MinSaltLen || len(salt) > MaxSaltLen {
		return nil, fmt.Errorf("mcf: salt length %d outside [%d,%d]: %w", len(salt), MinSaltLen, MaxSaltLen, scryptmcf.ErrInvalidParams)
	}
	if cfg.R < 1 || cfg.R > MaxR {
		return nil, fmt.Errorf("mcf: r=%d outside [1,%d]: %w", cfg.R, MaxR, scryptmcf.ErrInvalidParams)
	}
	if cfg.P < 1 || cfg.P > MaxP {
		return nil, fmt.Errorf("mcf: p=%d outside [1,%d]: %w", cfg.P, MaxP, scryptmcf.ErrInvalidParams)
	}
	if !isPowerOfTwo(cfg.N) {
		return nil, fmt.Errorf("mcf: N=%d must be a power of two greater than 1: %w", cfg.N, scryptmcf.ErrInvalidParams)
	}
	t := log2(cfg.N)
	if t > MaxT {
		return nil, fmt.Errorf("mcf: N=2^%d too large for an mcf record (max 2^%d): %w", t, MaxT, scryptmcf.ErrInvalidParams)
	}

	key, err := scryptmcf.Key(password, salt, cfg.N, cfg.R, cfg.P, KeyLen)
	if err != nil {
		return nil, err
	}

	params := []byte{byte(t), byte(cfg.R), byte(cfg.P)}

	var b strings.Builder
	b.WriteString("$")
	b.WriteString(recordID)
	b.WriteString("$")
	b.WriteString(hex.EncodeToString(params))
	b.WriteString("$")
	b.WriteString(base64.StdEncoding.EncodeToString(salt))
	b.WriteString("$")
	b.WriteString(base64.StdEncoding.EncodeToString(key))
	return []byte(b.String()), nil
}

// Generate derives an MCF record for password using the package defaults
// (DefaultConfig): N=2^14, r=8, p=1, a random 16-byte salt.
func Generate(password []byte) ([]byte, error) {
	return DefaultConfig().Generate(password, nil)
}

// GenerateWithSalt derives an MCF record for password and N, r, p using an
// explicit salt.
func GenerateWithSalt(password, salt []byte, N, r, p int) ([]byte, error) {
	return Config{Params: Params{N: N, R: r, P: p}}.Generate(password, salt)
}

// Check parses record and reports whether password reproduces its stored
// key.
//
// Check returns a non-nil error only when record fails to parse —
// ErrInvalidFormat for a malformed record, wrapping scryptmcf's
// ErrInvalidParams if the embedded N/r/p are individually invalid. A
// successfully parsed record with a non-matching password returns
// (false, nil), never an error: "corrupt record" and "wrong password" are
// distinguishable outcomes.
func Check(record, password []byte) (bool, error) {
	rec, err := parseRecord(record)
	if err != nil {
		return false, err
	}

	candidate, err := scryptmcf.Key(password, rec.salt, rec.Params.N, rec.Params.R, rec.Params.P, KeyLen)
	if err != nil {
		return false, fmt.Errorf("mcf: %w", err)
	}

	return subtle.ConstantTimeCompare(candidate, rec.key) == 1, nil
}

// CurrentParams parses record and returns the scrypt parameters it was
// generated with, without touching a password. Combine with Params.Weaker
// (or NeedsRehash) to decide whether a stored hash should be upgraded the
// next time the plaintext password is available.
func CurrentParams(record []byte) (Params, error) {
	rec, err := parseRecord(record)
	if err != nil {
		return Params{}, err
	}
	return rec.Params, nil
}

// NeedsRehash reports whether record was generated with parameters weaker
// than want — e.g. DefaultConfig().Params after raising the package
// defaults. Adapted from github.com/gyepisam/mcf/scrypt's Config.AtLeast,
// which the mcf framework uses for exactly this upgrade-on-login check.
func NeedsRehash(record []byte, want Params) (bool, error) {
	have, err := CurrentParams(record)
	if err != nil {
		return false, err
	}
	return have.Weaker(want), nil
}

type parsedRecord struct {
	Params
	salt, key []byte
}

// parseRecord splits record on '$' and expects exactly five fields with
// the "s1" tag, a 6-hex-digit params field, and base64 salt/key fields.
// Any deviation is ErrInvalidFormat; a zero t field (N=1) is
// ErrInvalidParams.
func parseRecord(record []byte) (parsedRecord, error) {
	parts := strings.Split(string(record), "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != recordID {
		return parsedRecord{}, fmt.Errorf("mcf: %w", scryptmcf.ErrInvalidFormat)
	}

	paramsHex, saltB64, keyB64 := parts[2], parts[3], parts[4]

	if len(paramsHex) != 6 {
		return parsedRecord{}, fmt.Errorf("mcf: params field must be 6 hex digits, got %d: %w", len(paramsHex), scryptmcf.ErrInvalidFormat)
	}
	paramBytes, err := hex.DecodeString(paramsHex)
	if err != nil {
		return parsedRecord{}, fmt.Errorf("mcf: decoding params: %w: %v", scryptmcf.ErrInvalidFormat, err)
	}
	t, r, p := int(paramBytes[0]), int(paramBytes[1]), int(paramBytes[2])

	if t == 0 {
		return parsedRecord{}, fmt.Errorf("mcf: t=0 implies N=1: %w", scryptmcf.ErrInvalidParams)
	}
	N := 1 << uint(t)

	salt, err := decodeB64(saltB64)
	if err != nil {
		return parsedRecord{}, fmt.Errorf("mcf: decoding salt: %w: %v", scryptmcf.ErrInvalidFormat, err)
	}
	key, err := decodeB64(keyB64)
	if err != nil {
		return parsedRecord{}, fmt.Errorf("mcf: decoding key: %w: %v", scryptmcf.ErrInvalidFormat, err)
	}
	if len(key) != KeyLen {
		return parsedRecord{}, fmt.Errorf("mcf: stored key length %d, want %d: %w", len(key), KeyLen, scryptmcf.ErrInvalidFormat)
	}

	return parsedRecord{Params: Params{N: N, R: r, P: p}, salt: salt, key: key}, nil
}

// decodeB64 decodes standard base64, re-padding the input to a multiple of
// 4 characters first so a record written without trailing '=' still
// decodes.
func decodeB64(s string) ([]byte, error) {
	if rem := len(s) % 4; rem != 0 {
		s += strings.Repeat("=", 4-rem)
	}
	return base64.StdEncoding.DecodeString(s)
}

func isPowerOfTwo(n int) bool {
	return n > 1 && n&(n-1) == 0
}

func log2(n int) int {
	t := 0
	for n > 1 {
		n >>= 1
		t++
	}
	return t
}
