package bitset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/skolemize/internal/bitset"
)

func TestBitSet_SetClearTest(t *testing.T) {
	b := bitset.New(130)
	assert.False(t, b.Test(0))
	assert.False(t, b.Test(129))

	b.Set(64)
	assert.True(t, b.Test(64))
	assert.False(t, b.Test(63))
	assert.False(t, b.Test(65))

	b.Clear(64)
	assert.False(t, b.Test(64))
}

func TestBitSet_SetTo(t *testing.T) {
	b := bitset.New(8)
	b.SetTo(3, true)
	assert.True(t, b.Test(3))
	b.SetTo(3, false)
	assert.False(t, b.Test(3))
}

func TestBitSet_CloneIsIndependent(t *testing.T) {
	b := bitset.New(8)
	b.Set(2)
	clone := b.Clone()
	clone.Set(5)

	assert.True(t, b.Test(2))
	assert.False(t, b.Test(5), "mutating the clone must not affect the original")
	assert.True(t, clone.Test(2))
	assert.True(t, clone.Test(5))
}

func TestBitSet_Reset(t *testing.T) {
	b := bitset.New(70)
	b.Set(0)
	b.Set(69)
	b.Reset()
	assert.False(t, b.Test(0))
	assert.False(t, b.Test(69))
}

func TestBitSet_Len(t *testing.T) {
	b := bitset.New(42)
	assert.Equal(t, 42, b.Len())
}
