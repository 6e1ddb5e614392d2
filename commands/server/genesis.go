package server

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"gopkg.in/yaml.v3"
)

// LoadGenesis reads application options from a genesis file. Files with a
// .yaml or .yml extension are decoded as YAML, everything else as JSON.
func LoadGenesis(path string) (custody.Options, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAMLOptions(raw)
	default:
		var opts custody.Options
		if err := json.Unmarshal(raw, &opts); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot decode genesis: %s", err)
		}
		return opts, nil
	}
}

// ParseYAMLOptions decodes YAML application options. Each top level
// section is converted to JSON, so that extensions read it the same way
// as a JSON genesis.
func ParseYAMLOptions(raw []byte) (custody.Options, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode genesis: %s", err)
	}
	opts := make(custody.Options, len(doc))
	for key, section := range doc {
		bz, err := json.Marshal(section)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "section %q: %s", key, err)
		}
		opts[key] = bz
	}
	return opts, nil
}
