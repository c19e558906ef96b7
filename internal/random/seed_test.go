package random

import (
	"bytes"
	"errors"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestNewEntropyReadsLittleEndian(t *testing.T) {
	orig := Reader
	t.Cleanup(func() { Reader = orig })
	Reader = bytes.NewReader([]byte{1, 0, 0, 0, 0, 0, 0, 0})

	got, err := NewEntropy()
	if err != nil {
		t.Fatalf("NewEntropy() error = %v", err)
	}
	if got != 1 {
		t.Fatalf("NewEntropy() = %d, want 1", got)
	}
}

func TestNewEntropyPropagatesReadError(t *testing.T) {
	orig := Reader
	t.Cleanup(func() { Reader = orig })
	Reader = failingReader{}

	if _, err := NewEntropy(); err == nil {
		t.Fatal("expected read error")
	}
	if _, err := NewToken(); err == nil {
		t.Fatal("expected read error")
	}
}

func TestNewTokenLength(t *testing.T) {
	token, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken() error = %v", err)
	}
	if len(token) != 32 {
		t.Fatalf("len(NewToken()) = %d, want 32", len(token))
	}
}
