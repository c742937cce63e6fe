package testutil

import "testing"

// Given runs fn as a named subtest so table-free scenarios read as prose.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+desc, fn)
}
