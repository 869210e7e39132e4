package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/realchain/ledger"
	"github.com/realchain/ledger/app"
	"github.com/realchain/ledger/commands/server"
	"github.com/realchain/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".escrowd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("escrowd")
	fmt.Println("          Property escrow ledger")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Write config.toml and the app options of the genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check that the given genesis files can be loaded")
	fmt.Println("keys      Print the signer condition and address of a key")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.escrowd")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "escrowd")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(app.Initializers(), rest)
	case "keys":
		err = server.KeysCmd(os.Stdout, rest)
	case "version":
		fmt.Println(ledger.Version())
	default:
		err = errors.Wrapf(errors.ErrInput, "unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
