package config

import (
	"bytes"
	"testing"
)

func TestExitfWritesMessageAndExitsWithCode1(t *testing.T) {
	var buf bytes.Buffer
	var code int
	prevWriter, prevExit := exitWriter, exitFunc
	exitWriter = &buf
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() {
		exitWriter = prevWriter
		exitFunc = prevExit
	})

	Exitf("fatal: %s", "ledger unavailable")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if got := buf.String(); got != "fatal: ledger unavailable\n" {
		t.Fatalf("output = %q, want %q", got, "fatal: ledger unavailable\n")
	}
}
