// Command scryptmcf hashes and verifies passwords using scrypt and the
// Modular Crypt Format. It is a thin CLI over the scryptmcf/mcf package,
// dispatching between its own hash and verify subcommands only — not
// between alternate scrypt backends.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	scryptmcf "github.com/dchest/scryptmcf"
	"github.com/dchest/scryptmcf/mcf"
)

func main() {
	hashCmd := flag.NewFlagSet("hash", flag.ExitOnError)
	hashN := hashCmd.Int("N", scryptmcf.DefaultN, "CPU/memory cost, power of two")
	hashR := hashCmd.Int("r", scryptmcf.DefaultR, "block size factor")
	hashP := hashCmd.Int("p", scryptmcf.DefaultP, "parallelization factor")

	verifyCmd := flag.NewFlagSet("verify", flag.ExitOnError)
	verifyRecord := verifyCmd.String("record", "", "MCF record to verify against")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "hash":
		hashCmd.Parse(os.Args[2:])
		runHash(*hashN, *hashR, *hashP)
	case "verify":
		verifyCmd.Parse(os.Args[2:])
		runVerify(*verifyRecord)
	case "-h", "-help", "--help":
		printUsage()
	default:
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  scryptmcf hash [-N n] [-r n] [-p n]   reads a password from stdin, prints an mcf record")
	fmt.Fprintln(os.Stderr, "  scryptmcf verify -record <mcf>        reads a password from stdin, exits 0 if it matches")
}

func runHash(N, r, p int) {
	password := readPassword()
	cfg := mcf.Config{Params: mcf.Params{N: N, R: r, P: p}, SaltLen: mcf.MaxSaltLen}
	record, err := cfg.Generate(password, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scryptmcf:", err)
		os.Exit(1)
	}
	fmt.Println(string(record))
}

func runVerify(record string) {
	if record == "" {
		fmt.Fprintln(os.Stderr, "scryptmcf: -record is required")
		os.Exit(2)
	}
	password := readPassword()
	ok, err := mcf.Check([]byte(record), password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "scryptmcf:", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Println("no match")
		os.Exit(1)
	}
	fmt.Println("match")
}

// readPassword reads a single line from stdin, trimming the trailing
// newline. Passwords are never taken from argv: they would otherwise show
// up in process listings and shell history.
func readPassword() []byte {
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		fmt.Fprintln(os.Stderr, "scryptmcf: failed to read password from stdin")
		os.Exit(1)
	}
	b := scanner.Bytes()
	password := make([]byte, len(b))
	copy(password, b)
	return password
}
