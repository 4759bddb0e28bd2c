package replacer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSelectsAlgorithm(t *testing.T) {
	assert.IsType(t, &LRUKReplacer{}, New(AlgorithmLRUK, 16, 2))
	assert.IsType(t, &LRUReplacer{}, New(AlgorithmLRU, 16, 2))
	assert.IsType(t, &LRUKReplacer{}, New("something-else", 16, 2))
}

func TestParseAccessType(t *testing.T) {
	for _, want := range []AccessType{
		AccessUnknown,
		AccessLookup,
		AccessScan,
		AccessIndex,
	} {
		got, ok := ParseAccessType(want.String())
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := ParseAccessType("write")
	assert.False(t, ok)
}
