package value

import (
	"fmt"
	"strings"
	"testing"
)

// expectPanic recovers a panic and asserts its message contains a
// substring, rather than hand-rolling defer/recover in every test.
func expectPanic(t *testing.T, fn func(), containsMsg string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic, but function did not panic")
		}
		var msg string
		switch v := r.(type) {
		case string:
			msg = v
		case error:
			msg = v.Error()
		default:
			msg = fmt.Sprintf("%v", r)
		}
		if containsMsg != "" && !strings.Contains(msg, containsMsg) {
			t.Fatalf("panic message mismatch.\nExpected to contain: %q\nActual: %q", containsMsg, msg)
		}
	}()
	fn()
}
