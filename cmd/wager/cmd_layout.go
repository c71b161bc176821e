package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/wager"
	"github.com/iov-one/wager/ledger"
	"github.com/iov-one/wager/x/escrow"
)

func cmdLayout(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the size of the escrow record and the balance a custody account must
hold to be rent exempt.
`)
		fl.PrintDefaults()
	}
	var (
		genesisFl = fl.String("genesis", "", "Path to a genesis file declaring the rent. Default rent is used if not provided.")
	)
	fl.Parse(args)

	rent := wager.DefaultRent()
	if *genesisFl != "" {
		gen, err := ledger.LoadGenesis(*genesisFl)
		if err != nil {
			return err
		}
		if err := gen.Rent.Validate(); err != nil {
			return err
		}
		rent = gen.Rent
	}

	fmt.Fprintf(output, "record size:\t%d\n", escrow.RecordLen)
	fmt.Fprintf(output, "instruction size:\t%d\n", escrow.InstructionLen)
	fmt.Fprintf(output, "rent exempt minimum:\t%d\n", rent.MinimumBalance(escrow.RecordLen))
	return nil
}
