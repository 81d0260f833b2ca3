package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-license/internal/testsupport"
)

// setupCLITest writes an empty configuration file and returns its path
func setupCLITest(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "simple-license.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[log]\nlevel = \"error\"\n"), 0o644))
	return dir, cfgPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestTypesCommand(t *testing.T) {
	out, err := runCLI(t, "types")
	require.NoError(t, err)
	assert.Contains(t, out, ".mp3")
	assert.Contains(t, out, "audio/mpeg")
	assert.Contains(t, out, "document")
}

func TestRenderCommand(t *testing.T) {
	_, cfgPath := setupCLITest(t)

	out, err := runCLI(t, "render", "notes.txt",
		"--config", cfgPath,
		"--author", "Ada Lovelace",
		"--institution", "Acme Labs",
		"--date-format", "yyyy-m-d")
	require.NoError(t, err)
	assert.Contains(t, out, "License for notes.txt")
	assert.Contains(t, out, "Authors: Ada Lovelace")
	assert.Contains(t, out, "Acme Labs")
	assert.NotContains(t, out, "{")
}

func TestRenderCommandRejectsUnknownDateFormat(t *testing.T) {
	_, cfgPath := setupCLITest(t)

	_, err := runCLI(t, "render", "notes.txt", "--config", cfgPath, "--date-format", "dd.mm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date format")
}

func TestPackageCommand(t *testing.T) {
	dir, cfgPath := setupCLITest(t)
	input := filepath.Join(dir, "track.mp3")
	require.NoError(t, os.WriteFile(input, testsupport.MinimalMP3(3), 0o644))
	outDir := filepath.Join(dir, "out")

	out, err := runCLI(t, "package", input,
		"--config", cfgPath,
		"-o", outDir,
		"--author", "Ada Lovelace")
	require.NoError(t, err)
	assert.Contains(t, out, "track.mp3")
	assert.Contains(t, out, "true")

	archive := filepath.Join(outDir, "track.mp3.zip")
	zr, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"track.mp3", "track.mp3.license.txt"}, names)
}

func TestPackageCommandReportsFailures(t *testing.T) {
	dir, cfgPath := setupCLITest(t)

	out, err := runCLI(t, "package", filepath.Join(dir, "missing.wav"), "--config", cfgPath, "-o", dir)
	require.Error(t, err)
	assert.Equal(t, "1 of 1 files failed", err.Error())
	assert.Contains(t, out, "missing.wav")
}

func TestPackageCommandRejectsMemoryOutput(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "simple-license.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[output]\ntype = \"memory\"\n"), 0o644))
	input := filepath.Join(dir, "track.mp3")
	require.NoError(t, os.WriteFile(input, testsupport.MinimalMP3(2), 0o644))

	_, err := runCLI(t, "package", input, "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memory")

	_, err = runCLI(t, "package", input, "--config", cfgPath, "-o", filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "out", "track.mp3.zip"))
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(pdf, testsupport.MinimalPDF("/Title (Quarterly Report)"), 0o644))

	out, err := runCLI(t, "inspect", pdf)
	require.NoError(t, err)
	assert.Contains(t, out, "Quarterly Report")

	png := filepath.Join(dir, "image.png")
	require.NoError(t, os.WriteFile(png, []byte("png"), 0o644))
	out, err = runCLI(t, "inspect", png)
	require.NoError(t, err)
	assert.Contains(t, out, "carries no embedded metadata")
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "simple-license.toml")

	out, err := runCLI(t, "config", "init", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)
	assert.FileExists(t, target)

	_, err = runCLI(t, "config", "init", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--overwrite")

	_, err = runCLI(t, "config", "init", target, "--overwrite")
	require.NoError(t, err)

	out, err = runCLI(t, "config", "show", "--config", target, "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "concurrency = 4")
	assert.Regexp(t, `level = .debug.`, out)
}

func TestMissingConfigFlagFails(t *testing.T) {
	_, err := runCLI(t, "render", "a.txt", "--config", filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
