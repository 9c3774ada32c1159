package testutil

import "testing"

func TestAssertInDelta(t *testing.T) {
	AssertInDelta(t, 1.0, 1.0005, 0.001)
	AssertNoError(t, nil)
}
