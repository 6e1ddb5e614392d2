package custody_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iov-one/custody"
)

func TestVersion(t *testing.T) {
	custody.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", custody.Version())

	custody.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", custody.Version())
	custody.GitCommit = ""
}
