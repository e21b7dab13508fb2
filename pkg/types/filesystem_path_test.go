// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    FilesystemPath
		wantErr bool
	}{
		{"absolute path", FilesystemPath("/Applications/Xcode.app/Contents/Developer/usr/bin/Rez"), false},
		{"relative path", FilesystemPath("license.txt"), false},
		{"path with spaces", FilesystemPath("/tmp/My App.dmg"), false},
		{"dot path", FilesystemPath("."), false},
		{"empty is invalid", FilesystemPath(""), true},
		{"whitespace only is invalid", FilesystemPath("   "), true},
		{"tab only is invalid", FilesystemPath("\t"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.path.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("FilesystemPath(%q).Validate() returned unexpected error: %v", tt.path, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("FilesystemPath(%q).Validate() returned nil, want error", tt.path)
			}
			if !errors.Is(err, ErrInvalidFilesystemPath) {
				t.Errorf("error should wrap ErrInvalidFilesystemPath, got: %v", err)
			}
			var fpErr *InvalidFilesystemPathError
			if !errors.As(err, &fpErr) {
				t.Errorf("error should be *InvalidFilesystemPathError, got: %T", err)
			}
		})
	}
}

func TestFilesystemPath_Exists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "Rez")
	if err := os.WriteFile(file, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if !FilesystemPath(file).Exists() {
		t.Errorf("Exists(%q) = false, want true", file)
	}
	if !FilesystemPath(dir).Exists() {
		t.Errorf("Exists(%q) = false, want true for a directory", dir)
	}
	if FilesystemPath(filepath.Join(dir, "missing")).Exists() {
		t.Error("Exists() = true for a missing file")
	}
	if FilesystemPath("").Exists() {
		t.Error("Exists() = true for an empty path")
	}
}

func TestFilesystemPath_String(t *testing.T) {
	t.Parallel()
	p := FilesystemPath("/tmp/app.dmg")
	if p.String() != "/tmp/app.dmg" {
		t.Errorf("FilesystemPath.String() = %q, want %q", p.String(), "/tmp/app.dmg")
	}
}
