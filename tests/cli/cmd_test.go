// SPDX-License-Identifier: MPL-2.0

// Package cli contains CLI integration tests using testscript.
//
// The tests run the real dmglicense binary against shell stand-ins for Rez
// and hdiutil that log their arguments, so they run on any Unix host.
package cli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

const (
	fakeRez = `#!/bin/sh
echo "Rez $*" >> "$TOOL_LOG"
cp "$2" "$TOOL_LOG.r"
exit "${FAKE_REZ_EXIT:-0}"
`

	fakeHdiutil = `#!/bin/sh
echo "hdiutil $*" >> "$TOOL_LOG"
if [ "$1" = convert ]; then
	for last; do :; done
	cp "$2" "$last"
	exit "${FAKE_CONVERT_EXIT:-0}"
fi
exit "${FAKE_HDIUTIL_EXIT:-0}"
`
)

var (
	// binaryPath is the path to the built dmglicense binary.
	binaryPath string
	// projectRoot is the path to the dmglicense project root.
	projectRoot string
)

func TestMain(m *testing.M) {
	// Find project root (where go.mod is located)
	wd, err := os.Getwd()
	if err != nil {
		panic("failed to get working directory: " + err.Error())
	}

	// Walk up to find go.mod
	projectRoot = wd
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			panic("could not find project root (go.mod)")
		}
		projectRoot = parent
	}

	binDir := filepath.Join(projectRoot, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		panic("failed to create bin directory: " + err.Error())
	}
	binaryPath = filepath.Join(binDir, "dmglicense")

	cmd := exec.CommandContext(context.Background(), "go", "build", "-o", binaryPath, ".")
	cmd.Dir = projectRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build dmglicense: " + err.Error())
	}

	os.Exit(m.Run())
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("tool stand-ins are shell scripts")
	}

	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			tools := filepath.Join(env.WorkDir, ".tools")
			if err := os.MkdirAll(tools, 0o755); err != nil {
				return err
			}
			for name, script := range map[string]string{"Rez": fakeRez, "hdiutil": fakeHdiutil} {
				if err := os.WriteFile(filepath.Join(tools, name), []byte(script), 0o755); err != nil {
					return err
				}
			}

			env.Setenv("TOOLS", tools)
			env.Setenv("TOOL_LOG", filepath.Join(env.WorkDir, "tools.log"))
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("PATH", filepath.Dir(binaryPath)+string(os.PathListSeparator)+
				tools+string(os.PathListSeparator)+env.Getenv("PATH"))
			return nil
		},
		// Continue running all tests even if one fails
		ContinueOnError: true,
	})
}
