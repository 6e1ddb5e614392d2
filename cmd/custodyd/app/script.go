package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/ledger"
	"gopkg.in/yaml.v3"
)

// Script is a list of operations executed against a custody pool, each
// on behalf of a named identity.
//
//   keys:
//     alice: <ed25519 seed hex>
//   steps:
//     - {caller: alice, action: deposit, amount: 100}
//     - {caller: alice, action: submit, to: bob, value: 10, data: rent}
//     - {caller: bob, action: confirm, index: 0}
//     - {caller: carol, action: execute, index: 0, expect_error: insufficient}
type Script struct {
	Keys  map[string]string `yaml:"keys"`
	Steps []Step            `yaml:"steps"`
}

// Step is a single script operation.
type Step struct {
	Caller string `yaml:"caller"`
	Action string `yaml:"action"`
	// To is either a key name or an address.
	To     string `yaml:"to"`
	Value  uint64 `yaml:"value"`
	Data   string `yaml:"data"`
	Index  uint64 `yaml:"index"`
	Amount uint64 `yaml:"amount"`
	// ExpectError when set must be a part of the error message. The step
	// must fail.
	ExpectError string `yaml:"expect_error"`
}

// ParseScript decodes a YAML script.
func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode script: %s", err)
	}
	return &s, nil
}

// identities resolves all script keys into their signing conditions.
func (s *Script) identities() (map[string]custody.Condition, error) {
	ids := make(map[string]custody.Condition, len(s.Keys))
	for name, seed := range s.Keys {
		key, err := crypto.PrivKeyEd25519FromHex(seed)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", name)
		}
		ids[name] = key.PublicKey().Condition()
	}
	return ids, nil
}

// Msg builds the message this step delivers.
func (st Step) Msg(ids map[string]custody.Condition) (custody.Msg, error) {
	switch st.Action {
	case "deposit":
		return &cash.DepositMsg{Amount: st.Amount}, nil
	case "submit":
		to, err := resolve(ids, st.To)
		if err != nil {
			return nil, err
		}
		var data []byte
		if st.Data != "" {
			data = []byte(st.Data)
		}
		return &ledger.SubmitMsg{To: to, Value: st.Value, Data: data}, nil
	case "confirm":
		return &ledger.ConfirmMsg{Index: st.Index}, nil
	case "revoke":
		return &ledger.RevokeMsg{Index: st.Index}, nil
	case "execute":
		return &ledger.ExecuteMsg{Index: st.Index}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown action %q", st.Action)
	}
}

func resolve(ids map[string]custody.Condition, to string) (custody.Address, error) {
	if c, ok := ids[to]; ok {
		return c.Address(), nil
	}
	return custody.ParseAddress(to)
}

// Run executes all script steps in order, writing a line per step to out.
// A step that fails unexpectedly, or succeeds when an error is expected,
// stops the script.
func (c *Custody) Run(ctx custody.Context, s *Script, out io.Writer) error {
	ids, err := s.identities()
	if err != nil {
		return err
	}

	for i, st := range s.Steps {
		signer, ok := ids[st.Caller]
		if !ok {
			return errors.Wrapf(errors.ErrInput, "step %d: unknown caller %q", i, st.Caller)
		}
		msg, err := st.Msg(ids)
		if err != nil {
			return errors.Wrapf(err, "step %d", i)
		}

		res, err := c.Handler.Deliver(x.WithSession(ctx, signer), msg)
		switch {
		case err != nil && st.ExpectError != "":
			if !strings.Contains(err.Error(), st.ExpectError) {
				return errors.Wrapf(err, "step %d: expected error %q", i, st.ExpectError)
			}
			fmt.Fprintf(out, "%3d %-8s %-8s rejected: %s\n", i, st.Caller, st.Action, err)
		case err != nil:
			return errors.Wrapf(err, "step %d", i)
		case st.ExpectError != "":
			return errors.Wrapf(errors.ErrState, "step %d: expected error %q", i, st.ExpectError)
		default:
			fmt.Fprintf(out, "%3d %-8s %-8s ok: %s\n", i, st.Caller, st.Action, res.Log)
		}
	}
	return nil
}

// Report writes all emitted events and the final state of the pool.
func (c *Custody) Report(out io.Writer) error {
	fmt.Fprintln(out, "events:")
	for _, e := range c.Events.Events() {
		fmt.Fprintf(out, "  %-8s %s\n", e.EventName(), formatKeyvals(e.Keyvals()))
	}

	pool, err := c.Vault.PoolBalance()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "pool %s balance: %d\n", c.Vault.Pool(), pool)

	fmt.Fprintf(out, "owners (threshold %d):\n", c.Ledger.Threshold())
	for _, o := range c.Ledger.Owners() {
		fmt.Fprintf(out, "  %s\n", o)
	}

	fmt.Fprintf(out, "transactions: %d\n", c.Ledger.TransactionCount())
	for i := uint64(0); i < c.Ledger.TransactionCount(); i++ {
		tx, err := c.Ledger.Transaction(i)
		if err != nil {
			return err
		}
		confirmers, err := c.Ledger.Confirmers(i)
		if err != nil {
			return err
		}
		names := make([]string, len(confirmers))
		for j, a := range confirmers {
			names[j] = a.String()
		}
		fmt.Fprintf(out, "  %d to=%s value=%d executed=%t confirmations=%d [%s]\n",
			i, tx.To, tx.Value, tx.Executed, tx.Confirmations, strings.Join(names, ","))
	}
	return nil
}

func formatKeyvals(kv []interface{}) string {
	parts := make([]string, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%v", kv[i], kv[i+1]))
	}
	return strings.Join(parts, " ")
}

// RunScript builds a custody pool from the genesis options, executes the
// script and writes the report. It implements server.ScriptRunner.
func RunScript(ctx custody.Context, opts custody.Options, script io.Reader, out io.Writer) error {
	c, err := New(opts)
	if err != nil {
		return err
	}
	s, err := ParseScript(script)
	if err != nil {
		return err
	}
	if err := c.Run(ctx, s, out); err != nil {
		return err
	}
	return c.Report(out)
}
