package rpc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/solid-labs/solid-go/rpc"
)

func TestCommitmentSatisfies(t *testing.T) {
	levels := []Commitment{Processed, Confirmed, Finalized}
	for i, observed := range levels {
		for j, requested := range levels {
			assert.Equalf(t, i >= j, observed.Satisfies(requested),
				"%v satisfies %v", observed, requested)
		}
	}
	assert.True(t, Finalized.Satisfies(Processed))
	assert.False(t, Processed.Satisfies(Confirmed))
	assert.False(t, Processed.Satisfies(Finalized))

	var unknown Commitment
	for _, requested := range levels {
		assert.False(t, unknown.Satisfies(requested))
		assert.False(t, Commitment("recent").Satisfies(requested))
	}
}

func TestParseCommitment(t *testing.T) {
	c, err := ParseCommitment("finalized")
	assert.NoError(t, err)
	assert.Equal(t, Finalized, c)

	_, err = ParseCommitment("max")
	assert.EqualError(t, err, `invalid commitment "max": `+
		`expected "processed", "confirmed" or "finalized"`)

	assert.NoError(t, c.Set("processed"))
	assert.Equal(t, Processed, c)
	assert.Error(t, c.Set(""))
}
