package asidecache

import (
	"errors"
	"strings"
	"testing"
)

func TestStoreErrorMatching(t *testing.T) {
	cause := errors.New("i/o timeout")
	err := error(&StoreError{Op: "get", Key: "k", Err: cause})

	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("StoreError should match ErrStoreUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("StoreError should unwrap to its cause")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("StoreError must not match ErrNotFound")
	}
	if !strings.Contains(err.Error(), "store get") {
		t.Fatalf("unexpected message: %s", err)
	}
}

func TestLoaderErrorMatching(t *testing.T) {
	cause := errors.New("boom")
	err := error(&LoaderError{Key: "k", Err: cause})

	if !errors.Is(err, cause) {
		t.Fatalf("LoaderError should unwrap to its cause")
	}
	if errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrInvalidKey) {
		t.Fatalf("LoaderError matched an unrelated sentinel")
	}
}

func TestKeyErrorMatching(t *testing.T) {
	if !errors.Is(&KeyError{Reason: "empty"}, ErrInvalidKey) {
		t.Fatalf("KeyError should match ErrInvalidKey")
	}
	if got := (&KeyError{Reason: "empty"}).Error(); got != "invalid key: empty" {
		t.Fatalf("unexpected message: %s", got)
	}
}
