package utils

import (
	"github.com/iov-one/custody"
)

// ActionTagger will inspect the message being executed and add
// `action = msg.Path()` to the context logger, so that every log entry
// written while handling the message can be attributed to it.
//
// Note that for best results, this should be at the end of the
// ChainDecorators call, right before the router.
type ActionTagger struct{}

var _ custody.Decorator = ActionTagger{}

// ActionKey is used by ActionTagger as the logger key
const ActionKey = "action"

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Deliver passes the request along with a tagged logger.
func (ActionTagger) Deliver(ctx custody.Context, msg custody.Msg, next custody.Handler) (*custody.Result, error) {
	if msg != nil {
		ctx = custody.WithLogInfo(ctx, ActionKey, msg.Path())
	}
	return next.Deliver(ctx, msg)
}
