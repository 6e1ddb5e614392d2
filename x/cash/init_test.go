package cash

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesisBalances(t *testing.T) {
	pool, other := custodytest.NewAddress(), custodytest.NewAddress()

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		want    map[string]uint64
	}{
		"opening balances": {
			genesis: fmt.Sprintf(`{"cash": [{"address": "%s", "amount": 500}, {"address": "hex:%s", "amount": 3}]}`, pool, other),
			want:    map[string]uint64{string(pool): 500, string(other): 3},
		},
		"repeated address adds up": {
			genesis: fmt.Sprintf(`{"cash": [{"address": "%s", "amount": 1}, {"address": "%s", "amount": 2}]}`, pool, pool),
			want:    map[string]uint64{string(pool): 3},
		},
		"no cash section": {
			genesis: `{"ledger": {}}`,
			want:    map[string]uint64{string(pool): 0},
		},
		"missing address": {
			genesis: `{"cash": [{"amount": 1}]}`,
			wantErr: errors.ErrInput,
		},
		"malformed section": {
			genesis: `{"cash": {"address": 1}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts custody.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)

			v, err := NewVault(db, pool)
			require.NoError(t, err)
			for addr, want := range tc.want {
				got, err := v.Balance(custody.Address(addr))
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		})
	}
}
