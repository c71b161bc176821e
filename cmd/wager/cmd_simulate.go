package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/ledger"
	"github.com/iov-one/wager/x/escrow"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
	yaml "gopkg.in/yaml.v2"
)

// scenario describes a wager played on a fresh ledger. All accounts are
// referred to by the seed their key is derived from.
type scenario struct {
	// Program is the seed of the escrow program id.
	Program string `yaml:"program"`
	// Custody is the seed of the custody account key.
	Custody string `yaml:"custody"`
	// Accounts are funded at genesis, on top of the genesis file accounts.
	Accounts map[string]uint64 `yaml:"accounts"`
	Steps    []step            `yaml:"steps"`
}

type step struct {
	Action      string `yaml:"action"`
	Funder      string `yaml:"funder"`
	Sender      string `yaml:"sender"`
	Role        string `yaml:"role"`
	Creator     string `yaml:"creator"`
	Competitor  string `yaml:"competitor"`
	Destination string `yaml:"destination"`
	Amount      uint64 `yaml:"amount"`
}

const (
	actionCreateCustody = "create_custody"
	actionDeposit       = "deposit"
	actionWithdraw      = "withdraw"
)

func cmdSimulate(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Play a wager scenario on an in memory ledger.

The scenario is a YAML file given as the only argument, or read from stdin
when no argument is given. Each step is executed as a separate transaction
and its result printed. A failed step does not stop the scenario. Balances
of all accounts are printed at the end.
`)
		fl.PrintDefaults()
	}
	var (
		genesisFl  = fl.String("genesis", "", "Path to a JSON genesis file. An empty ledger with the default rent is used if not provided.")
		logLevelFl = fl.String("log_level", "none", "Log level: debug, info, error or none. Logs are written to stderr.")
	)
	fl.Parse(args)

	logger, err := newLogger(os.Stderr, *logLevelFl)
	if err != nil {
		flagDie("invalid log level: %s", err)
	}

	var raw []byte
	switch fl.NArg() {
	case 0:
		raw, err = ioutil.ReadAll(input)
	case 1:
		raw, err = ioutil.ReadFile(fl.Arg(0))
	default:
		flagDie("at most one scenario file can be given")
	}
	if err != nil {
		return fmt.Errorf("cannot read scenario: %s", err)
	}
	var sc scenario
	if err := yaml.UnmarshalStrict(raw, &sc); err != nil {
		return fmt.Errorf("cannot parse scenario: %s", err)
	}

	gen := ledger.DefaultGenesis()
	if *genesisFl != "" {
		if gen, err = ledger.LoadGenesis(*genesisFl); err != nil {
			return err
		}
	}
	return simulate(context.Background(), output, logger, gen, sc)
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w)).With("module", "wager")
	return log.NewFilter(logger, opt), nil
}

func simulate(ctx context.Context, output io.Writer, logger log.Logger, gen ledger.Genesis, sc scenario) error {
	if sc.Program == "" || sc.Custody == "" {
		return fmt.Errorf("scenario must declare program and custody seeds")
	}

	names := make(map[wager.AccountID]string)
	keys := make(map[string]ed25519.PrivateKey)
	key := func(seed string) ed25519.PrivateKey {
		k, ok := keys[seed]
		if !ok {
			k = keyFromSeed(seed)
			keys[seed] = k
			names[accountOf(k)] = seed
		}
		return k
	}
	id := func(seed string) wager.AccountID {
		return accountOf(key(seed))
	}

	seeds := make([]string, 0, len(sc.Accounts))
	for seed := range sc.Accounts {
		seeds = append(seeds, seed)
	}
	sort.Strings(seeds)
	for _, seed := range seeds {
		gen.Accounts = append(gen.Accounts, ledger.GenesisAccount{ID: id(seed), Balance: sc.Accounts[seed]})
	}

	l, err := ledger.New(gen, logger)
	if err != nil {
		return err
	}
	programID := id(sc.Program)
	l.Register(programID, escrow.NewProcessor(l))
	custodyKey := key(sc.Custody)

	for i, s := range sc.Steps {
		tx, err := buildStep(s, uint64(i), programID, custodyKey, gen.Rent, key, id)
		if err == nil {
			err = l.Execute(ctx, tx)
		}
		if err != nil {
			fmt.Fprintf(output, "step %d %s: failed: %s\n", i+1, s.Action, err)
		} else {
			fmt.Fprintf(output, "step %d %s: ok\n", i+1, s.Action)
		}
	}

	accounts, err := l.Accounts()
	if err != nil {
		return err
	}
	fmt.Fprintln(output, "balances:")
	for _, acc := range accounts {
		name, ok := names[acc.ID]
		if !ok {
			name = acc.ID.String()
		}
		fmt.Fprintf(output, "\t%s\t%d\n", name, acc.Balance)
	}
	return nil
}

func buildStep(
	s step,
	nonce uint64,
	programID wager.AccountID,
	custodyKey ed25519.PrivateKey,
	rent wager.Rent,
	key func(string) ed25519.PrivateKey,
	id func(string) wager.AccountID,
) (*ledger.Transaction, error) {
	var tx *ledger.Transaction
	var signers []ed25519.PrivateKey
	custody := accountOf(custodyKey)

	switch s.Action {
	case actionCreateCustody:
		if s.Funder == "" {
			return nil, fmt.Errorf("funder is required")
		}
		tx = ledger.NewTransaction(escrow.NewCreateCustodyInstruction(programID, id(s.Funder), custody, rent))
		signers = []ed25519.PrivateKey{key(s.Funder), custodyKey}
	case actionDeposit:
		if s.Sender == "" {
			return nil, fmt.Errorf("sender is required")
		}
		role, err := parseRole(s.Role)
		if err != nil {
			return nil, err
		}
		tx = ledger.NewTransaction(escrow.NewInitEscrowInstruction(programID, id(s.Sender), custody, role, s.Amount))
		signers = []ed25519.PrivateKey{key(s.Sender)}
	case actionWithdraw:
		if s.Creator == "" || s.Destination == "" {
			return nil, fmt.Errorf("creator and destination are required")
		}
		var competitor *wager.AccountID
		if s.Competitor != "" {
			c := id(s.Competitor)
			competitor = &c
		}
		tx = ledger.NewTransaction(escrow.NewWithdrawInstruction(programID, custody, id(s.Creator), competitor, id(s.Destination), s.Amount))
		// The custody key acts as the arbiter releasing the stake.
		signers = []ed25519.PrivateKey{custodyKey}
	default:
		return nil, fmt.Errorf("unknown action %q", s.Action)
	}

	// Steps may repeat, each one is still a distinct transaction.
	tx.Nonce = nonce
	for _, k := range signers {
		tx.Sign(k)
	}
	return tx, nil
}

func parseRole(s string) (escrow.Role, error) {
	switch s {
	case "creator":
		return escrow.RoleCreator, nil
	case "competitor":
		return escrow.RoleCompetitor, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}
