// SPDX-License-Identifier: MPL-2.0

package resource

import (
	"errors"
	"testing"
)

func TestKindForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want LicenseKind
	}{
		{"LICENSE.rtf", KindRTF},
		{"LICENSE.RTF", KindRTF},
		{"/a/b/License.Rtf", KindRTF},
		{"LICENSE.txt", KindText},
		{"LICENSE", KindText},
		{"rtf", KindText},
		{"LICENSE.rtf.txt", KindText},
	}

	for _, tt := range tests {
		if got := KindForPath(tt.path); got != tt.want {
			t.Errorf("KindForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLicenseKind_IsValid(t *testing.T) {
	t.Parallel()

	for _, k := range []LicenseKind{KindText, KindRTF} {
		if valid, errs := k.IsValid(); !valid {
			t.Errorf("LicenseKind(%q).IsValid() = false, %v", k, errs)
		}
	}

	valid, errs := LicenseKind("RTF").IsValid()
	if valid {
		t.Fatal("LicenseKind(\"RTF\") without padding must be invalid")
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidLicenseKind) {
		t.Errorf("IsValid() errors = %v, want ErrInvalidLicenseKind", errs)
	}
}
