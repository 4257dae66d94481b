// Command gravity is a small CLI wrapper around the gravity signature
// core: generate a keypair from random seed material, sign a message,
// and verify a signature.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gravitysig/gravity"
)

func parseFamily(c *cli.Context) (gravity.Params, error) {
	name := c.String("family")
	p, ok := gravity.FamilyByName(name)
	if !ok {
		return gravity.Params{}, fmt.Errorf("unknown family %q (want S, M or L)", name)
	}
	return p, nil
}

func cmdFamilies(c *cli.Context) error {
	for _, p := range gravity.Families() {
		fmt.Printf("%s\ttau=%d K=%d H=%d D=%d C=%d signature=%d bytes\n",
			p.Name, p.Tau, p.K, p.H, p.D, p.C, p.SignatureLen())
	}
	return nil
}

func cmdKeygen(c *cli.Context) error {
	params, err := parseFamily(c)
	if err != nil {
		return err
	}
	var seed [64]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return fmt.Errorf("reading random seed: %w", err)
	}
	_, pk, gerr := gravity.GenerateKeyPair(seed, params)
	if gerr != nil {
		return gerr
	}
	fmt.Printf("seed %s\n", hex.EncodeToString(seed[:]))
	fmt.Printf("pk   %s\n", hex.EncodeToString(pk[:]))
	return nil
}

func cmdSign(c *cli.Context) error {
	params, err := parseFamily(c)
	if err != nil {
		return err
	}
	seed, err := hex.DecodeString(c.String("seed"))
	if err != nil || len(seed) != 64 {
		return fmt.Errorf("--seed must be 128 hex characters (64 bytes)")
	}
	var seed64 [64]byte
	copy(seed64[:], seed)

	sk, _, gerr := gravity.GenerateKeyPair(seed64, params)
	if gerr != nil {
		return gerr
	}
	sig := sk.Sign([]byte(c.String("message")))
	fmt.Println(hex.EncodeToString(sig.Serialize(params)))
	return nil
}

func cmdVerify(c *cli.Context) error {
	params, err := parseFamily(c)
	if err != nil {
		return err
	}
	pkBytes, err := hex.DecodeString(c.String("pk"))
	if err != nil || len(pkBytes) != 32 {
		return fmt.Errorf("--pk must be 64 hex characters (32 bytes)")
	}
	var pk gravity.PublicKey
	copy(pk[:], pkBytes)

	sigBytes, err := hex.DecodeString(c.String("sig"))
	if err != nil {
		return fmt.Errorf("--sig is not valid hex")
	}
	sig, gerr := gravity.DeserializeSignature(sigBytes, params)
	if gerr != nil {
		fmt.Println("false")
		return nil
	}
	ok := gravity.Verify(pk, []byte(c.String("message")), sig, params)
	fmt.Println(ok)
	return nil
}

func main() {
	familyFlag := &cli.StringFlag{Name: "family", Value: "M", Usage: "parameter family: S, M or L"}

	app := &cli.App{
		Name:  "gravity",
		Usage: "gravity hash-based signature core",
		Commands: []*cli.Command{
			{
				Name:   "families",
				Usage:  "list parameter families",
				Action: cmdFamilies,
			},
			{
				Name:   "keygen",
				Usage:  "generate a random keypair",
				Flags:  []cli.Flag{familyFlag},
				Action: cmdKeygen,
			},
			{
				Name:  "sign",
				Usage: "sign a message under a 64-byte hex seed",
				Flags: []cli.Flag{
					familyFlag,
					&cli.StringFlag{Name: "seed", Required: true},
					&cli.StringFlag{Name: "message", Required: true},
				},
				Action: cmdSign,
			},
			{
				Name:  "verify",
				Usage: "verify a message/signature against a public key",
				Flags: []cli.Flag{
					familyFlag,
					&cli.StringFlag{Name: "pk", Required: true},
					&cli.StringFlag{Name: "message", Required: true},
					&cli.StringFlag{Name: "sig", Required: true},
				},
				Action: cmdVerify,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
