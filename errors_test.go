package tusl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectRecoversEscape(t *testing.T) {
	vm := New()
	complaint, threw := vm.protect(func() { vm.errorf("boom: %d", 7) })
	require.True(t, threw)
	assert.Contains(t, vm.stringAt(complaint), "boom: 7")
}

func TestProtectReportsNoThrowOnSuccess(t *testing.T) {
	vm := New()
	complaint, threw := vm.protect(func() {})
	assert.False(t, threw)
	assert.Equal(t, 0, complaint)
}

func TestNestedProtectOnlyCatchesItsOwnFrame(t *testing.T) {
	vm := New()
	var innerThrew, outerThrew bool
	_, outerThrew = vm.protect(func() {
		_, innerThrew = vm.protect(func() { vm.errorf("inner") })
	})
	assert.True(t, innerThrew)
	assert.False(t, outerThrew)
}

// TestEscapeWithNoHandlerDies checks the CORE's last-resort behavior
// (spec.md §7): an error raised with no protect() frame installed anywhere
// panics with FatalError rather than a bare vmEscape, since there is
// nothing left to recover it.
func TestEscapeWithNoHandlerDies(t *testing.T) {
	vm := New()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(FatalError)
		assert.True(t, ok)
	}()
	vm.errorf("nobody home")
}

func TestCatchRestoresStackPointerOnThrow(t *testing.T) {
	vm := New()
	vm.InstallStandardWords()
	require.NoError(t, vm.LoadString(`: bang 1 2 3 1 0 / ; 'bang catch`))
	// catch truncates the stack to its pre-call depth before pushing the
	// complaint, so the 1 2 3 pushed before the divide-by-zero must be gone.
	assert.Equal(t, 1, vm.StackDepth())
}

func TestFormatComplaintFallsBackWhenArenaIsTight(t *testing.T) {
	vm := New(WithArenaSize(64), WithReservedSpace(0))
	for vm.there-vm.here >= 8 {
		vm.allot(1)
	}
	off := vm.formatComplaint("anything")
	assert.Equal(t, 1, off)
	assert.Equal(t, "No space for complaint", vm.lastResortMessage())
}
