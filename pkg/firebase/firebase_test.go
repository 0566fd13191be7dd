package firebase

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestInitFirebaseRequiresCredentials(t *testing.T) {
	t.Parallel()

	if _, err := InitFirebase(t.Context(), ""); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}

	missing := filepath.Join(t.TempDir(), "service-account.json")
	if _, err := InitFirebase(t.Context(), missing); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}
