package x

import (
	"context"
	"fmt"
	"testing"

	"github.com/iov-one/custody"
	"github.com/stretchr/testify/assert"
)

func TestHelperFuncs(t *testing.T) {
	var helper TestHelpers

	msg := helper.MockMsg("mock", nil)
	err := fmt.Errorf("test error")

	cases := map[string]struct {
		h           custody.Handler
		msg         custody.Msg
		expectPanic bool
		expectError bool
	}{
		"counting handler": {
			h:   helper.CountingHandler(),
			msg: msg,
		},
		"error handler": {
			h:           helper.ErrorHandler(err),
			msg:         msg,
			expectError: true,
		},
		"panic handler": {
			h:           helper.PanicHandler(err),
			msg:         msg,
			expectPanic: true,
		},
		"error decorator": {
			h:           step{helper.ErrorDecorator(err), helper.CountingHandler()},
			msg:         msg,
			expectError: true,
		},
		"panic on path decorator": {
			h:           step{helper.PanicOnPathDecorator("mock"), helper.CountingHandler()},
			msg:         msg,
			expectPanic: true,
		},
		"panic on other path decorator": {
			h:   step{helper.PanicOnPathDecorator("other"), helper.CountingHandler()},
			msg: msg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			deliver := func() {
				_, err := tc.h.Deliver(context.Background(), tc.msg)
				if tc.expectError {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			}
			if tc.expectPanic {
				assert.Panics(t, deliver)
			} else {
				deliver()
			}
		})
	}
}

func TestCounting(t *testing.T) {
	var helper TestHelpers
	h := helper.CountingHandler()
	d := helper.CountingDecorator()
	stack := step{d, h}

	for i := 0; i < 3; i++ {
		_, err := stack.Deliver(context.Background(), helper.MockMsg("mock", nil))
		assert.NoError(t, err)
	}
	assert.Equal(t, 3, h.GetCount())
	assert.Equal(t, 6, d.GetCount())
}

// step binds a decorator with a handler.
type step struct {
	d    custody.Decorator
	next custody.Handler
}

func (s step) Deliver(ctx custody.Context, msg custody.Msg) (*custody.Result, error) {
	return s.d.Deliver(ctx, msg, s.next)
}
