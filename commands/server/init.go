package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// GenesisFilename is the name of the genesis file in the home directory.
const GenesisFilename = "genesis.json"

// GenOptions can parse command-line and flag to
// generate default app_options for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd will write the genesis file, as generated from the command line
// arguments, into the home directory. An existing genesis file is never
// overwritten.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	genFile := filepath.Join(home, GenesisFilename)
	if fileExists(genFile) {
		return errors.Wrapf(errors.ErrDuplicate, "genesis file %s already exists", genFile)
	}

	options, err := gen(args)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(home, 0700); err != nil {
		return errors.Wrap(err, "cannot create home directory")
	}
	if err := ioutil.WriteFile(genFile, options, 0600); err != nil {
		return errors.Wrap(err, "cannot write genesis")
	}
	logger.Info("Generated genesis file", "path", genFile)
	return nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
