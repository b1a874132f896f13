package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"phased-mint-gate/core"
	"phased-mint-gate/core/model"
	"phased-mint-gate/ledger"
)

const (
	EnvChainUrl     = "CHAIN_URL"
	DefaultChainUrl = "https://emerald.oasis.dev"
)

func main() {
	app := &cli.App{
		Name:  "phased-mint-gate",
		Usage: "eligibility and allocation gate for a fixed-supply phased token drop",
		Commands: []*cli.Command{
			rootCommand,
			proofCommand,
			verifyCommand,
			supplyCommand,
			demoCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.Fatalf("run err: %v", err)
	}
}

var rootCommand = &cli.Command{
	Name:  "root",
	Usage: "compute the whitelist merkle root from an address file",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "addresses", Required: true, Usage: "file with one hex address per line"},
	},
	Action: func(c *cli.Context) error {
		tree, err := buildTreeFromFile(c.String("addresses"))
		if err != nil {
			return err
		}
		fmt.Println(tree.Root().Hex())
		return nil
	},
}

var proofCommand = &cli.Command{
	Name:  "proof",
	Usage: "print the inclusion proof for one whitelist member",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "addresses", Required: true},
		&cli.StringFlag{Name: "account", Required: true},
	},
	Action: func(c *cli.Context) error {
		account, err := parseAddress(c.String("account"))
		if err != nil {
			return err
		}
		tree, err := buildTreeFromFile(c.String("addresses"))
		if err != nil {
			return err
		}
		proof, err := tree.ProofFor(account)
		if err != nil {
			return err
		}
		fmt.Printf("root %s\n", tree.Root().Hex())
		for _, h := range proof {
			fmt.Println(h.Hex())
		}
		return nil
	},
}

var verifyCommand = &cli.Command{
	Name:  "verify",
	Usage: "check an inclusion proof against a root",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "root", Required: true},
		&cli.StringFlag{Name: "account", Required: true},
		&cli.StringFlag{Name: "proof", Usage: "comma-separated sibling hashes, leaf level first"},
	},
	Action: func(c *cli.Context) error {
		account, err := parseAddress(c.String("account"))
		if err != nil {
			return err
		}
		proof, err := parseProof(c.String("proof"))
		if err != nil {
			return err
		}
		root := common.HexToHash(c.String("root"))
		if model.VerifyProof(proof, root, account) {
			fmt.Println("valid")
			return nil
		}
		return fmt.Errorf("%w: %s", model.ErrInvalidProof, account.Hex())
	},
}

var supplyCommand = &cli.Command{
	Name:  "supply",
	Usage: "read total supply and remaining capacity from a deployed ledger",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "rpc", EnvVars: []string{EnvChainUrl}, Value: DefaultChainUrl},
		&cli.StringFlag{Name: "contract", Required: true},
	},
	Action: func(c *cli.Context) error {
		contract, err := parseAddress(c.String("contract"))
		if err != nil {
			return err
		}
		remote, err := ledger.NewRemote(c.String("rpc"), contract)
		if err != nil {
			return err
		}
		total := remote.TotalSupply()
		fmt.Printf("totalSupply %d\n", total)
		if total < model.MaxSupply {
			fmt.Printf("remaining %d\n", model.MaxSupply-total)
		} else {
			fmt.Println("remaining 0")
		}
		return nil
	},
}

var demoCommand = &cli.Command{
	Name:  "demo",
	Usage: "run the full drop lifecycle against an in-memory ledger",
	Action: func(c *cli.Context) error {
		admin := common.HexToAddress("0xf9f128d9b8ddb66883708ba08a171e9018bed559")
		alice := common.HexToAddress("0x00000000000000000000000000000000000000a1")
		bob := common.HexToAddress("0x00000000000000000000000000000000000000b2")

		tree, err := model.BuildTree([]common.Address{alice, bob})
		if err != nil {
			return err
		}

		mem := ledger.NewMemory()
		gate := core.NewGate(mem, admin)

		now := uint64(1700000000)
		if err := gate.SetWhitelistRoot(admin, tree.Root()); err != nil {
			return err
		}
		if err := gate.StartWhitelistPhase(admin, now); err != nil {
			return err
		}

		aliceProof, _ := tree.ProofFor(alice)
		if err := gate.WhitelistMint(alice, now+60, 3, aliceProof); err != nil {
			return err
		}
		logrus.Infof("alice whitelist balance %d, remaining allocation %d",
			mem.BalanceOf(alice), gate.WhitelistRemaining(alice))

		now += model.PhaseDuration
		if err := gate.StartPublicPhase(admin, now); err != nil {
			return err
		}
		if err := gate.PublicMint(bob, now+60, 1); err != nil {
			return err
		}

		now += model.PhaseDuration
		if err := gate.EndMintPermanently(admin, now); err != nil {
			return err
		}
		logrus.Infof("phase %s, ended %v, remaining supply %d",
			gate.CurrentPhase(now), gate.MintEnded(), gate.RemainingSupply())

		for _, ev := range gate.Events() {
			logrus.Infof("emitted %s %+v", ev.Name(), ev)
		}
		return nil
	},
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: bad address %q", model.ErrBadInput, s)
	}
	return common.HexToAddress(s), nil
}

func parseProof(s string) ([]common.Hash, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	proof := make([]common.Hash, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(common.FromHex(p)) != common.HashLength {
			return nil, fmt.Errorf("%w: bad proof element %q", model.ErrBadInput, p)
		}
		proof = append(proof, common.HexToHash(p))
	}
	return proof, nil
}

func buildTreeFromFile(path string) (*model.MerkleTree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var addrs []common.Address
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addr, err := parseAddress(line)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return model.BuildTree(addrs)
}
