package custody_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/custody"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, custody.DefaultLogger, custody.GetLogger(ctx))

	var buf bytes.Buffer
	ctx = custody.WithLogger(ctx, log.NewTMLogger(log.NewSyncWriter(&buf)))
	ctx = custody.WithLogInfo(ctx, "module", "ledger")
	custody.GetLogger(ctx).Info("hello")

	out := buf.String()
	assert.True(t, strings.Contains(out, "module=ledger"), out)
	assert.True(t, strings.Contains(out, "hello"), out)
}

func TestOptionsReadOptions(t *testing.T) {
	opts := custody.Options{"ledger": []byte(`{"threshold": 2}`)}

	var conf struct {
		Threshold uint32 `json:"threshold"`
	}
	assert.NoError(t, opts.ReadOptions("ledger", &conf))
	assert.Equal(t, uint32(2), conf.Threshold)

	// Missing keys are not an error.
	assert.NoError(t, opts.ReadOptions("missing", &conf))
	assert.Error(t, custody.Options{"bad": []byte(`{`)}.ReadOptions("bad", &conf))
}
