package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageEmpty(t *testing.T) {
	assert.True(t, Usage{}.Empty())
	assert.False(t, Usage{OutputTokens: Count(0)}.Empty(), "a reported zero is not absence")
}

func TestPolicyFor(t *testing.T) {
	// Only the flat-fields vendor emits per-chunk output counts; every other
	// vendor sends cumulative snapshots.
	p := PolicyFor(VendorTitan)
	assert.Equal(t, PolicyIncremental, p.OutputTokens)
	assert.Equal(t, PolicySnapshot, p.InputTokens)

	for _, v := range []Vendor{VendorAnthropic, VendorNova, VendorMeta, VendorConverse, VendorUnknown} {
		p := PolicyFor(v)
		assert.Equal(t, UsagePolicy{}, p, "vendor %s", v)
	}
}
