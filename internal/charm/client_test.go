// ABOUTME: Unit tests for the Charm KV wrapper that need no network.
// ABOUTME: Covers not-found mapping and defaults.
package charm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dgraph-io/badger/v3"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"badger missing key", badger.ErrKeyNotFound, true},
		{"wrapped missing key", fmt.Errorf("view: %w", badger.ErrKeyNotFound), true},
		{"other error", errors.New("disk full"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNotFound(tt.err); got != tt.want {
				t.Errorf("isNotFound(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	if DefaultDBName != "habits" {
		t.Errorf("DefaultDBName = %q, want habits", DefaultDBName)
	}
	if DefaultHost == "" {
		t.Error("DefaultHost should not be empty")
	}
}
