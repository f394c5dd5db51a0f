package diag

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorRendering(t *testing.T) {
	e := SemanticalError(Pos{Source: "mod.kst", Line: 3, Col: 7}, "redeclaration of %s", "k")
	assert.Equal(t, "mod.kst:3:7: semantical: redeclaration of k", e.Error())

	internal := New(Internal, Pos{}, "dispatch exhausted")
	assert.Equal(t, "internal: dispatch exhausted", internal.Error())
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "syntactical", Syntactical.String())
	assert.Equal(t, "semantical", Semantical.String())
	assert.Equal(t, "identification", Identification.String())
	assert.Equal(t, "internal", Internal.String())
}

func TestRecoverConvertsUserErrors(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		Panic(SemanticalError(Pos{Source: "a", Line: 1, Col: 1}, "undeclared x"))
		return nil
	}
	err := run()
	require.Error(t, err)
	assert.True(t, IsKind(err, Semantical))
	assert.Contains(t, err.Error(), "undeclared x")
}

func TestRecoverPropagatesInternalErrors(t *testing.T) {
	assert.Panics(t, func() {
		var err error
		defer Recover(&err)
		Fatal("broken invariant")
	})
}

func TestRecoverPropagatesForeignPanics(t *testing.T) {
	assert.Panics(t, func() {
		var err error
		defer Recover(&err)
		panic("not ours")
	})
}

func TestIsKindOnWrappedErrors(t *testing.T) {
	e := IdentificationError(Pos{Source: "a", Line: 1, Col: 1}, "bad pattern")
	wrapped := fmt.Errorf("front end: %w", e)
	assert.True(t, IsKind(wrapped, Identification))
	assert.False(t, IsKind(wrapped, Semantical))
}
