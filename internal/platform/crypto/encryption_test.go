package crypto

import (
	"bytes"
	"strings"
	"testing"
)

func TestSealerRoundTrip(t *testing.T) {
	sealer, err := NewSealer(strings.Repeat("ab", 32))
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}
	if !sealer.Configured() {
		t.Fatal("expected sealer to be configured")
	}

	plain := []byte(`[{"id":1,"name":"IT"}]`)
	sealed, err := sealer.Seal(plain)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains(sealed, []byte("IT")) {
		t.Fatal("sealed value leaks plaintext")
	}

	opened, err := sealer.Open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(opened, plain) {
		t.Fatalf("expected %q, got %q", plain, opened)
	}
}

func TestSealerWithoutKeyPassesThrough(t *testing.T) {
	sealer, err := NewSealer("")
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}
	out, err := sealer.Seal([]byte("plain"))
	if err != nil || string(out) != "plain" {
		t.Fatalf("expected pass-through, got %q (%v)", out, err)
	}
}

func TestSealerRejectsShortKey(t *testing.T) {
	if _, err := NewSealer("too-short"); err == nil {
		t.Fatal("expected error for short key")
	}
}

func TestSealerOpenRejectsTruncatedInput(t *testing.T) {
	sealer, err := NewSealer(strings.Repeat("cd", 32))
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}
	if _, err := sealer.Open([]byte{1, 2}); err != ErrCiphertextTooShort {
		t.Fatalf("expected ErrCiphertextTooShort, got %v", err)
	}
}
