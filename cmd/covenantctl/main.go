// Command covenantctl manages the operator's Sovereign signing key: it
// generates a new key into an encrypted keystore file and prints the
// address it controls, independent of running a node.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/covenant-finance/covenant/cmd/internal/passphrase"
	"github.com/covenant-finance/covenant/crypto"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "keygen":
		runKeygen(os.Args[2:])
	case "address":
		runAddress(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: covenantctl <keygen|address> [flags]")
}

func runKeygen(args []string) {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	out := fs.String("out", "sovereign.keystore", "path to write the encrypted keystore file")
	passEnv := fs.String("pass-env", "COVENANT_SOVEREIGN_PASSPHRASE", "environment variable holding the keystore passphrase")
	_ = fs.Parse(args)

	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate key: %v\n", err)
		os.Exit(1)
	}

	pass, err := passphrase.NewSource(*passEnv).Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve passphrase: %v\n", err)
		os.Exit(1)
	}

	if err := crypto.SaveToKeystore(*out, key, pass); err != nil {
		fmt.Fprintf(os.Stderr, "save keystore: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s\n", *out)
	fmt.Printf("sovereign address: %s\n", key.PubKey().Address())
}

func runAddress(args []string) {
	fs := flag.NewFlagSet("address", flag.ExitOnError)
	in := fs.String("keystore", "sovereign.keystore", "path to the encrypted keystore file")
	passEnv := fs.String("pass-env", "COVENANT_SOVEREIGN_PASSPHRASE", "environment variable holding the keystore passphrase")
	_ = fs.Parse(args)

	pass, err := passphrase.NewSource(*passEnv).Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve passphrase: %v\n", err)
		os.Exit(1)
	}

	key, err := crypto.LoadFromKeystore(*in, pass)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load keystore: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(key.PubKey().Address())
}
