package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/iov-one/custody/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome  = "home"
	flagDebug = "debug"
	varHome   *string
	varDebug  *bool
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".custody")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varDebug = flag.Bool(flagDebug, false, "log ledger state changes")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("custodyd")
	fmt.Println("        Quorum approved shared custody")
	fmt.Println("")
	fmt.Println("help    Print this message")
	fmt.Println("keygen  Generate owner identities (-n count)")
	fmt.Println("init    Write genesis file (-owners a,b,c -threshold n -pool name)")
	fmt.Println("run     Execute a script against the pool (-genesis file script.yaml)")
	fmt.Println("version Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.custody")
  -debug
        log ledger state changes`)
}

func main() {
	flag.Parse()

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr)).
		With("module", "custody")
	if *varDebug {
		logger = log.NewFilter(logger, log.AllowDebug())
	} else {
		logger = log.NewFilter(logger, log.AllowInfo())
	}

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
	case "keygen":
		err = server.KeygenCmd(os.Stdout, rest)
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "run":
		err = server.RunCmd(app.RunScript, logger, *varHome, os.Stdout, rest)
	case "version":
		fmt.Println(custody.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
