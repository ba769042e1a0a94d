package tusl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternStringRoundTrip(t *testing.T) {
	vm := New()
	off := vm.internString("hello")
	assert.Equal(t, "hello", vm.stringAt(off))
}

func TestInternStringGrowsThereDownward(t *testing.T) {
	vm := New()
	before := vm.There()
	vm.internString("abc")
	after := vm.There()
	assert.Equal(t, before-4, after)
}

func TestCompileGrowsHereAndAligns(t *testing.T) {
	vm := New()
	vm.here++ // misalign by one byte
	at := vm.compile(42)
	assert.Equal(t, 0, at%cellSize)
	assert.Equal(t, int32(42), vm.CellAt(at))
}

func TestAllotAdvancesHereWithoutWriting(t *testing.T) {
	vm := New()
	before := vm.Here()
	vm.allot(16)
	assert.Equal(t, before+16, vm.Here())
}

func TestAllotNegativeErrors(t *testing.T) {
	vm := New()
	_, threw := vm.protect(func() { vm.allot(-1) })
	assert.True(t, threw)
}

func TestCellAtOutOfRangeErrors(t *testing.T) {
	vm := New()
	complaint, threw := vm.protect(func() { vm.CellAt(len(vm.arena)) })
	require.True(t, threw)
	assert.Contains(t, vm.stringAt(complaint), "Arena index out of range")
}

func TestArenaExhaustionRaisesOutOfSpace(t *testing.T) {
	vm := New(WithArenaSize(64), WithReservedSpace(4))
	complaint, threw := vm.protect(func() {
		for i := 0; i < 64; i++ {
			vm.compile(int32(i))
		}
	})
	require.True(t, threw)
	assert.Contains(t, vm.stringAt(complaint), "Out of space")
}
