package plugintest

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Equal fails the test with a diff if a and b differ.
func Equal(t *testing.T, a, b any) {
	t.Helper()

	if diff := tryDiff(a, b); diff != "" {
		t.Logf("mismatch (-want +got):\n%s", diff)
		t.FailNow()
	}
}

func tryDiff(a, b any) (res string) {
	defer func() {
		// cmp panics on unexported fields; recover for better failure ux
		err := recover()
		if err != nil {
			res = fmt.Sprintf("diff error: %s", err)
		}
	}()

	return cmp.Diff(a, b)
}
