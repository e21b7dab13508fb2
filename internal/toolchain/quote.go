// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Quote renders argv as a POSIX shell command line, quoting only the
// arguments that need it. An argument the shell cannot represent (one
// holding a NUL byte, for example) is shown raw with NUL written as \0.
func Quote(argv []string) string {
	parts := make([]string, 0, len(argv))
	for _, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			q = strings.ReplaceAll(arg, "\x00", `\0`)
		}
		parts = append(parts, q)
	}
	return strings.Join(parts, " ")
}
