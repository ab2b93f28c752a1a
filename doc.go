// Copyright 2012 Dmitry Chestnykh   (Go implementation)
// Copyright 2009 Colin Percival     (original C implementation)
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scrypt implements the scrypt key derivation function as defined in
// Colin Percival's paper "Stronger Key Derivation via Sequential Memory-Hard
// Functions", together with a Modular Crypt Format codec for storing and
// verifying scrypt password hashes (see the mcf subpackage).
//
// scrypt is memory-hard: deriving a key walks a scratch table sized by the
// cost parameter N, so raising N raises both the CPU and the RAM an
// attacker needs to brute-force a password in parallel. This package does
// not choose parameters for you beyond the package-level defaults; callers
// storing verifiers for untrusted input should bound N and r themselves
// (see MaxMemory).
package scrypt
