// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gl

import (
	"errors"
	"testing"
)

func TestLoadNilLookup(t *testing.T) {
	if _, err := Load(nil); !errors.Is(err, ErrNilLookup) {
		t.Errorf("Load(nil) error = %v, want %v", err, ErrNilLookup)
	}
}
