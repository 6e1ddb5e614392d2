package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/stretchr/testify/assert"
)

func TestRouter(t *testing.T) {
	var help x.TestHelpers

	r := NewRouter()
	good, bad, missing := "good", "bad/path", "missing"
	ctx := context.Background()

	// register some routers
	counter := help.CountingHandler()
	r.Handle(good, counter)
	r.Handle(bad, help.ErrorHandler(fmt.Errorf("foo")))

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle(good, counter) })
	assert.Panics(t, func() { r.Handle("l:7", counter) })

	// check proper paths work
	assert.Equal(t, 0, counter.GetCount())
	_, err := r.Deliver(ctx, help.MockMsg(good, nil))
	assert.NoError(t, err)
	assert.Equal(t, 1, counter.GetCount())

	// check errors handler is also looked up
	_, err = r.Deliver(ctx, help.MockMsg(bad, nil))
	assert.Error(t, err)
	assert.False(t, errors.ErrNotFound.Is(err))
	assert.Equal(t, "foo", err.Error())
	assert.Equal(t, 1, counter.GetCount())

	// make sure not found returns an error handler as well
	_, err = r.Deliver(ctx, help.MockMsg(missing, nil))
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Equal(t, 1, counter.GetCount())

	_, err = r.Deliver(ctx, nil)
	assert.True(t, errors.ErrMsg.Is(err))
}
