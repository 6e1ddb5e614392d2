/*
Package app links together all the various components
to construct the custody daemon.
*/
package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/ledger"
	"github.com/iov-one/custody/x/utils"
)

// DefaultPool is the pool name used when the genesis does not set one.
const DefaultPool = "main"

// Authenticator returns the typical authentication. Conditions are
// verified by the session layer and travel in the context.
func Authenticator() x.Authenticator {
	return x.SessionAuth{}
}

// Chain returns a chain of decorators, to handle logging and recovery.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
	)
}

// Router returns a router dispatching to ledger and cash handlers.
func Router(authFn x.Authenticator, l *ledger.Ledger, v *cash.Vault) *app.Router {
	r := app.NewRouter()
	ledger.RegisterRoutes(r, authFn, l)
	cash.RegisterRoutes(r, authFn, v)
	return r
}

// Custody is a fully wired custody pool: the approval ledger, the vault
// it moves value out of and the message handler stack.
type Custody struct {
	Ledger  *ledger.Ledger
	Vault   *cash.Vault
	Events  *custody.EventLog
	Handler custody.Handler
}

// New builds a custody pool as configured in the genesis options. All
// events are recorded and also written to the context logger.
func New(opts custody.Options) (*Custody, error) {
	pool := DefaultPool
	if err := opts.ReadOptions("pool", &pool); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "pool name")
	}

	db := store.MemStore()
	if err := (cash.Initializer{}).FromGenesis(opts, db); err != nil {
		return nil, errors.Wrap(err, "cash genesis")
	}

	events := custody.NewEventLog()
	sink := custody.MultiSink{events, custody.LogSink{}}

	vault, err := cash.NewVault(db, cash.PoolCondition(pool).Address(), cash.WithEventSink(sink))
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	l, err := ledger.FromGenesis(opts, vault, ledger.WithEventSink(sink))
	if err != nil {
		return nil, err
	}

	return &Custody{
		Ledger:  l,
		Vault:   vault,
		Events:  events,
		Handler: Chain().WithHandler(Router(Authenticator(), l, vault)),
	}, nil
}
