package custody

import (
	"bytes"
	"encoding/json"

	"github.com/iov-one/custody/errors"
)

// Msg is a request for the ledger to take an action
// (make a state transition). It is just the request, and
// must be validated by the Handlers. Authentication
// information travels in the context.
type Msg interface {
	// Return the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a stateless sanity check of the message.
	Validate() error
}

// Result is the outcome of a successfully delivered message.
type Result struct {
	// Data is a machine readable result, eg. the index of a new record.
	Data []byte
	// Log is a human readable message.
	Log string
}

// Handler is a core engine that can process a few specific messages
// This could represent "submit a transaction", or "deposit value"
type Handler interface {
	Deliver(ctx Context, msg Msg) (*Result, error)
}

// Decorator wraps a Handler to provide common functionality
// like authentication, or logging, to many Handlers
type Decorator interface {
	Deliver(ctx Context, msg Msg, next Handler) (*Result, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Stream expects an array of JSON elements under the given key and
// returns a function that decodes one element per call into the given
// destination. When all elements were read, ErrEmpty is returned. Any call
// after the stream finished or failed returns ErrState.
//
// Stream returns ErrEmpty if there is no value under the key.
func (o Options) Stream(key string) (func(dest interface{}) error, error) {
	msg := o[key]
	if len(msg) == 0 {
		return nil, errors.Wrapf(errors.ErrEmpty, "no %q key", key)
	}
	dec := json.NewDecoder(bytes.NewReader(msg))

	var started, done bool
	return func(dest interface{}) error {
		if done {
			return errors.Wrap(errors.ErrState, "stream finished")
		}
		if !started {
			started = true
			tok, err := dec.Token()
			if err != nil {
				done = true
				return errors.Wrapf(errors.ErrInput, "cannot read %q: %s", key, err)
			}
			if d, ok := tok.(json.Delim); !ok || d != '[' {
				done = true
				return errors.Wrapf(errors.ErrInput, "%q is not a list", key)
			}
		}
		if !dec.More() {
			done = true
			return errors.Wrap(errors.ErrEmpty, "end of list")
		}
		if err := dec.Decode(dest); err != nil {
			done = true
			return errors.Wrapf(errors.ErrInput, "cannot decode %q element: %s", key, err)
		}
		return nil
	}, nil
}
