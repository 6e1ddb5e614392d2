package x

import (
	"sync"

	"github.com/iov-one/custody"
)

//--------------- expose helpers -----

// TestHelpers returns helper objects for tests,
// encapsulated in one object to be easily imported in other packages
type TestHelpers struct{}

// CountingDecorator passes msg along, and counts how many times it was called.
// Adds one on input down, one on output up,
// to differentiate panic from error
func (TestHelpers) CountingDecorator() CountingDecorator {
	return &countingDecorator{}
}

// CountingHandler returns success and counts times called
func (TestHelpers) CountingHandler() CountingHandler {
	return &countingHandler{}
}

// ErrorDecorator always returns the given error when called
func (TestHelpers) ErrorDecorator(err error) custody.Decorator {
	return errorDecorator{err}
}

// ErrorHandler always returns the given error when called
func (TestHelpers) ErrorHandler(err error) custody.Handler {
	return errorHandler{err}
}

// PanicOnPathDecorator will panic if the message is routed to given path
func (TestHelpers) PanicOnPathDecorator(path string) custody.Decorator {
	return panicOnPathDecorator{path}
}

// PanicHandler always panics with the given error when called
func (TestHelpers) PanicHandler(err error) custody.Handler {
	return panicHandler{err}
}

// MockMsg returns a custody.Msg object routed to given path. Validation
// returns err.
func (TestHelpers) MockMsg(path string, err error) custody.Msg {
	return &mockMsg{path: path, err: err}
}

// CountingDecorator keeps track of number of times called.
// 2x per call, 1x per call with panic inside
type CountingDecorator interface {
	GetCount() int
	custody.Decorator
}

// CountingHandler keeps track of number of times called.
// 1x per call
type CountingHandler interface {
	GetCount() int
	custody.Handler
}

//------ msg

type mockMsg struct {
	path string
	err  error
}

var _ custody.Msg = (*mockMsg)(nil)

func (m *mockMsg) Path() string {
	return m.path
}

func (m *mockMsg) Validate() error {
	return m.err
}

//-------------- counting -------------------------

type countingDecorator struct {
	mu     sync.Mutex
	called int
}

var _ custody.Decorator = (*countingDecorator)(nil)

func (c *countingDecorator) Deliver(ctx custody.Context, msg custody.Msg, next custody.Handler) (*custody.Result, error) {
	c.inc()
	res, err := next.Deliver(ctx, msg)
	c.inc()
	return res, err
}

func (c *countingDecorator) inc() {
	c.mu.Lock()
	c.called++
	c.mu.Unlock()
}

func (c *countingDecorator) GetCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.called
}

// countingHandler counts how many times it was called
type countingHandler struct {
	mu     sync.Mutex
	called int
}

var _ custody.Handler = (*countingHandler)(nil)

func (c *countingHandler) Deliver(custody.Context, custody.Msg) (*custody.Result, error) {
	c.mu.Lock()
	c.called++
	c.mu.Unlock()
	return &custody.Result{}, nil
}

func (c *countingHandler) GetCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.called
}

//----------- errors ------------

// errorDecorator returns the given error
type errorDecorator struct {
	err error
}

var _ custody.Decorator = errorDecorator{}

func (e errorDecorator) Deliver(custody.Context, custody.Msg, custody.Handler) (*custody.Result, error) {
	return nil, e.err
}

// errorHandler returns the given error
type errorHandler struct {
	err error
}

var _ custody.Handler = errorHandler{}

func (e errorHandler) Deliver(custody.Context, custody.Msg) (*custody.Result, error) {
	return nil, e.err
}

// panicOnPathDecorator panics if msg.Path() == p.path
type panicOnPathDecorator struct {
	path string
}

var _ custody.Decorator = panicOnPathDecorator{}

func (p panicOnPathDecorator) Deliver(ctx custody.Context, msg custody.Msg, next custody.Handler) (*custody.Result, error) {
	if msg != nil && msg.Path() == p.path {
		panic("forbidden path")
	}
	return next.Deliver(ctx, msg)
}

// panicHandler always panics
type panicHandler struct {
	err error
}

var _ custody.Handler = panicHandler{}

func (p panicHandler) Deliver(custody.Context, custody.Msg) (*custody.Result, error) {
	panic(p.err)
}
