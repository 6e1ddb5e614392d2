package server

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// ScriptRunner executes a script against an application built from the
// genesis options, writing the outcome to out.
type ScriptRunner func(ctx custody.Context, opts custody.Options, script io.Reader, out io.Writer) error

// RunCmd loads the genesis file and executes the script given as the first
// argument. Every log entry of a single run is tagged with a unique run
// identifier.
func RunCmd(run ScriptRunner, logger log.Logger, home string, out io.Writer, args []string) error {
	var genFile string
	fl := flag.NewFlagSet("run", flag.ContinueOnError)
	fl.StringVar(&genFile, "genesis", filepath.Join(home, GenesisFilename), "genesis file, JSON or YAML")
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if fl.NArg() != 1 {
		return errors.Wrap(errors.ErrInput, "usage: run [-genesis file] script.yaml")
	}

	opts, err := LoadGenesis(genFile)
	if err != nil {
		return errors.Wrap(err, "genesis")
	}

	fd, err := os.Open(fl.Arg(0))
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer fd.Close()

	runID := uuid.New().String()
	ctx := custody.WithLogger(context.Background(), logger.With("run", runID))
	logger.Info("Running script", "run", runID, "script", fl.Arg(0), "genesis", genFile)
	return run(ctx, opts, fd, out)
}
