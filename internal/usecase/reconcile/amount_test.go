package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountFromRaw(t *testing.T) {
	cases := []struct {
		raw      string
		decimals int
		want     string
	}{
		{"150000000", 6, "150"},
		{"1500000", 6, "1.5"},
		{"1", 6, "0.000001"},
		{"0", 6, "0"},
		{"1000000000000000000", 18, "1"},
	}

	for _, tc := range cases {
		amount, err := AmountFromRaw(tc.raw, tc.decimals)
		require.NoError(t, err)
		assert.Equal(t, tc.want, amount.String())
	}
}

func TestAmountFromRawRejectsGarbage(t *testing.T) {
	_, err := AmountFromRaw("not-a-number", 6)
	assert.Error(t, err)

	_, err = AmountFromRaw("1.5", 6)
	assert.Error(t, err)
}
