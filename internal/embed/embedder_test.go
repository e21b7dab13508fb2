// SPDX-License-Identifier: MPL-2.0

package embed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invowk/dmglicense/internal/resource"
	"github.com/invowk/dmglicense/internal/testutil"
	"github.com/invowk/dmglicense/internal/toolchain"
	"github.com/invowk/dmglicense/internal/toolchain/toolchaintest"
	"github.com/invowk/dmglicense/pkg/types"
)

const fakeRez = "/opt/xcode/usr/bin/Rez"

type fixture struct {
	job     Job
	tempDir string
}

func newFixture(t *testing.T, licenseName, licenseText string) fixture {
	t.Helper()

	dir := t.TempDir()
	image := filepath.Join(dir, "App.dmg")
	require.NoError(t, os.WriteFile(image, []byte("original image"), 0o644))
	license := filepath.Join(dir, licenseName)
	require.NoError(t, os.WriteFile(license, []byte(licenseText), 0o644))
	tempDir := filepath.Join(dir, "tmp")
	require.NoError(t, os.Mkdir(tempDir, 0o755))

	return fixture{
		job: Job{
			Image:   types.FilesystemPath(image),
			License: types.FilesystemPath(license),
			Rez:     fakeRez,
			TempDir: tempDir,
		},
		tempDir: tempDir,
	}
}

func assertNoPayloadLeft(t *testing.T, dir string) {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, payloadPattern))
	require.NoError(t, err)
	assert.Empty(t, matches, "temporary payload must be removed")
}

// writeOutput scripts hdiutil convert to create its -o target.
func writeOutput(content string) func(toolchain.Command) error {
	return func(cmd toolchain.Command) error {
		return os.WriteFile(cmd.Args[len(cmd.Args)-1], []byte(content), 0o644)
	}
}

func TestEmbed_RunsStepsInOrder(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "LICENSE.txt", "Permission is granted \"as is\".\n")
	want, err := resource.BuildFile(fx.job.License.String())
	require.NoError(t, err)

	var compiled []byte
	rec := toolchaintest.NewRecorder().On(fakeRez, "-a", toolchaintest.Response{
		Do: func(cmd toolchain.Command) error {
			var readErr error
			compiled, readErr = os.ReadFile(cmd.Args[1])
			return readErr
		},
	})

	out, err := New(rec).Embed(context.Background(), fx.job)
	require.NoError(t, err)

	assert.Equal(t, []string{"hdiutil unflatten", fakeRez + " -a", "hdiutil flatten"}, rec.Verbs())
	inv := rec.Invocations()
	image := fx.job.Image.String()
	assert.Equal(t, []string{"unflatten", "-quiet", image}, inv[0].Args)
	assert.Equal(t, []string{"-o", image}, inv[1].Args[2:])
	assert.Equal(t, []string{"flatten", "-quiet", image}, inv[2].Args)
	assert.Equal(t, fx.tempDir, filepath.Dir(inv[1].Args[1]))

	assert.Equal(t, string(want), string(compiled), "Rez must read the generated payload")
	assert.True(t, out.Success())
	assert.Equal(t, types.ExitSuccess, out.ExitCode())
	assert.Empty(t, out.Warnings)
	assertNoPayloadLeft(t, fx.tempDir)
}

func TestEmbed_CompileFailureStillFlattens(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "LICENSE.txt", "terms\n")
	rec := toolchaintest.NewRecorder().On(fakeRez, "", toolchaintest.Response{ExitCode: 2})

	out, err := New(rec).Embed(context.Background(), fx.job)
	require.NoError(t, err, "a failed compile is reported in the outcome")

	assert.Equal(t, []string{"hdiutil unflatten", fakeRez + " -a", "hdiutil flatten"}, rec.Verbs())
	assert.False(t, out.Success())
	assert.Equal(t, types.ExitCode(2), out.CompileExitCode)
	assert.Equal(t, types.ExitFailure, out.ExitCode())
	assertNoPayloadLeft(t, fx.tempDir)
}

func TestEmbed_HdiutilFailuresAreWarnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		strict      bool
		wantSuccess bool
	}{
		{name: "lenient", strict: false, wantSuccess: true},
		{name: "strict", strict: true, wantSuccess: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fx := newFixture(t, "LICENSE.txt", "terms\n")
			fx.job.Strict = tt.strict
			rec := toolchaintest.NewRecorder().
				On("hdiutil", "flatten", toolchaintest.Response{ExitCode: 1})

			out, err := New(rec).Embed(context.Background(), fx.job)
			require.NoError(t, err)

			assert.Equal(t, tt.wantSuccess, out.Success())
			require.Len(t, out.Warnings, 1)
			var tie *ToolInvocationError
			require.ErrorAs(t, out.Warnings[0], &tie)
			assert.Equal(t, toolchain.StageFlatten, tie.Step.Stage)
			assert.ErrorIs(t, out.Warnings[0], ErrToolInvocation)
		})
	}
}

func TestEmbed_Recompress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		compression Compression
		wantArgs    []string
	}{
		{compression: CompressionBZ2, wantArgs: []string{"-format", "UDBZ", "-o"}},
		{compression: CompressionGZ, wantArgs: []string{"-format", "UDZO", "-imagekey", "zlib-devel=9", "-o"}},
	}

	for _, tt := range tests {
		t.Run(tt.compression.String(), func(t *testing.T) {
			t.Parallel()

			fx := newFixture(t, "LICENSE.txt", "terms\n")
			fx.job.Compression = tt.compression
			image := fx.job.Image.String()
			side := image + sideSuffix

			var sideContent []byte
			var imageGone bool
			rec := toolchaintest.NewRecorder().On("hdiutil", "convert", toolchaintest.Response{
				Do: func(cmd toolchain.Command) error {
					var err error
					sideContent, err = os.ReadFile(cmd.Args[1])
					_, statErr := os.Stat(image)
					imageGone = errors.Is(statErr, os.ErrNotExist)
					if err != nil {
						return err
					}
					return writeOutput("compressed")(cmd)
				},
			})

			out, err := New(rec).Embed(context.Background(), fx.job)
			require.NoError(t, err)
			assert.True(t, out.Success())

			assert.Equal(t, []string{
				"hdiutil unflatten", fakeRez + " -a", "hdiutil flatten", "hdiutil convert",
			}, rec.Verbs())
			convert := rec.Invocations()[3].Args
			assert.Equal(t, side, convert[1])
			assert.Equal(t, tt.wantArgs, convert[2:len(convert)-1])
			assert.Equal(t, image, convert[len(convert)-1])

			assert.Equal(t, "original image", string(sideContent))
			assert.True(t, imageGone, "the original must be removed before conversion")
			got, err := os.ReadFile(image)
			require.NoError(t, err)
			assert.Equal(t, "compressed", string(got))
			assert.NoFileExists(t, side)
			assertNoPayloadLeft(t, fx.tempDir)
		})
	}
}

func TestEmbed_RecompressRunsAfterCompileFailure(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "LICENSE.txt", "terms\n")
	fx.job.Compression = CompressionBZ2
	rec := toolchaintest.NewRecorder().
		On(fakeRez, "", toolchaintest.Response{ExitCode: 1}).
		On("hdiutil", "convert", toolchaintest.Response{Do: writeOutput("compressed")})

	out, err := New(rec).Embed(context.Background(), fx.job)
	require.NoError(t, err)
	assert.False(t, out.Success())
	assert.Len(t, rec.Invocations(), 4)
}

func TestEmbed_FailedConvertRestoresImage(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "LICENSE.txt", "terms\n")
	fx.job.Compression = CompressionGZ
	rec := toolchaintest.NewRecorder().
		On("hdiutil", "convert", toolchaintest.Response{ExitCode: 1})

	out, err := New(rec).Embed(context.Background(), fx.job)
	require.NoError(t, err)

	assert.True(t, out.Success(), "convert failures are warnings")
	require.Len(t, out.Warnings, 1)
	got, err := os.ReadFile(fx.job.Image.String())
	require.NoError(t, err)
	assert.Equal(t, "original image", string(got))
	assert.NoFileExists(t, fx.job.Image.String()+sideSuffix)
}

func TestEmbed_SourceReadError(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "LICENSE.txt", "terms\n")
	fx.job.License = types.FilesystemPath(filepath.Join(fx.tempDir, "missing.txt"))
	rec := toolchaintest.NewRecorder()

	out, err := New(rec).Embed(context.Background(), fx.job)
	require.Error(t, err)
	assert.Nil(t, out)

	var sre *resource.SourceReadError
	require.ErrorAs(t, err, &sre)
	assert.ErrorIs(t, err, resource.ErrSourceRead)
	assert.Empty(t, rec.Invocations())
	assertNoPayloadLeft(t, fx.tempDir)
}

func TestEmbed_PayloadWriteError(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "LICENSE.txt", "terms\n")
	fx.job.TempDir = filepath.Join(fx.tempDir, "does", "not", "exist")
	rec := toolchaintest.NewRecorder()

	out, err := New(rec).Embed(context.Background(), fx.job)
	require.Error(t, err)
	assert.Nil(t, out)

	var pwe *PayloadWriteError
	require.ErrorAs(t, err, &pwe)
	assert.Equal(t, "create", pwe.Op)
	assert.ErrorIs(t, err, ErrPayloadWrite)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, rec.Invocations())
	assertNoPayloadLeft(t, fx.tempDir)
}

func TestEmbed_RezCannotStart(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "LICENSE.txt", "terms\n")
	startErr := errors.New("exec: no such file")
	rec := toolchaintest.NewRecorder().On(fakeRez, "", toolchaintest.Response{Err: startErr})

	out, err := New(rec).Embed(context.Background(), fx.job)
	require.Error(t, err)
	require.NotNil(t, out)

	assert.ErrorIs(t, err, ErrToolInvocation)
	assert.ErrorIs(t, err, startErr)
	assert.False(t, out.Success())
	assert.Equal(t, []string{"hdiutil unflatten", fakeRez + " -a", "hdiutil flatten"}, rec.Verbs())
	assertNoPayloadLeft(t, fx.tempDir)
}

func TestEmbed_InvalidJob(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "LICENSE.txt", "terms\n")
	fx.job.Compression = "xz"
	rec := toolchaintest.NewRecorder()

	_, err := New(rec).Embed(context.Background(), fx.job)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidJob)
	assert.Empty(t, rec.Invocations())
	assertNoPayloadLeft(t, fx.tempDir)
}

func TestEmbed_CancelledBeforeStart(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "LICENSE.txt", "terms\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := toolchaintest.NewRecorder()

	_, err := New(rec).Embed(ctx, fx.job)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.Invocations())
	assertNoPayloadLeft(t, fx.tempDir)
}

func TestEmbed_CustomHdiutil(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, "LICENSE.rtf", "{\\rtf1 terms}\n")
	rec := toolchaintest.NewRecorder()

	_, err := New(rec, WithHdiutil("/usr/local/bin/hdiutil")).Embed(context.Background(), fx.job)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/hdiutil", rec.Invocations()[0].Name)
}

func TestEmbed_EmptyTempDirUsesWorkingDirectory(t *testing.T) {
	// Not parallel: changes the working directory.
	f := newFixture(t, "LICENSE.txt", "License.\n")
	f.job.TempDir = ""
	wd := t.TempDir()
	t.Cleanup(testutil.MustChdir(t, wd))

	var payload string
	rec := toolchaintest.NewRecorder().On(fakeRez, "", toolchaintest.Response{
		Do: func(cmd toolchain.Command) error {
			payload = cmd.Args[1]
			_, err := os.Stat(payload)
			return err
		},
	})

	outcome, err := New(rec).Embed(context.Background(), f.job)
	require.NoError(t, err)
	assert.True(t, outcome.Success())
	assert.Equal(t, ".", filepath.Dir(payload))
	assertNoPayloadLeft(t, wd)
}
