package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdataRoot = "../../testdata"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	out, err := execute(t, "--root", testdataRoot, "-b", "messages", "-l", "de", "resolve", "greeting")
	require.NoError(t, err)
	assert.Equal(t, "Hallo\n", out)
}

func TestResolveCommandWithArgs(t *testing.T) {
	out, err := execute(t, "--root", testdataRoot, "-b", "messages",
		"resolve", "welcome.text", "-a", `Ada`)
	require.NoError(t, err)
	assert.Equal(t, "Welcome Ada to a new world\n", out)
}

func TestResolveCommandQuotedArgs(t *testing.T) {
	out, err := execute(t, "--root", testdataRoot, "-b", "messages",
		"resolve", "farewell", "-a", `"Ada Lovelace"`)
	require.NoError(t, err)
	assert.Equal(t, "Goodbye Ada Lovelace\n", out)
}

func TestResolveCommandMissingCode(t *testing.T) {
	_, err := execute(t, "--root", testdataRoot, "-b", "messages", "resolve", "no.such.code")
	assert.Error(t, err)
}

func TestResolveCommandDefault(t *testing.T) {
	out, err := execute(t, "--root", testdataRoot, "-b", "messages",
		"resolve", "no.such.code", "-d", "a default")
	require.NoError(t, err)
	assert.Equal(t, "a default\n", out)

	// An explicitly empty default still counts as a default.
	out, err = execute(t, "--root", testdataRoot, "-b", "messages",
		"resolve", "no.such.code", "--default", "")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestResolveCommandRequiresBasename(t *testing.T) {
	_, err := execute(t, "--root", testdataRoot, "resolve", "greeting")
	assert.Error(t, err)
}

func TestKeysCommand(t *testing.T) {
	out, err := execute(t, "--root", testdataRoot, "-b", "messages", "-l", "en-US", "keys")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "greeting")
	assert.Contains(t, lines, "user.name")
	assert.Contains(t, lines, "welcome.text")
	// Buffered output is not a terminal, so listing is one code per line
	// and sorted.
	assert.True(t, sortedLines(lines))
}

func sortedLines(lines []string) bool {
	for i := 1; i < len(lines); i++ {
		if lines[i] < lines[i-1] {
			return false
		}
	}
	return true
}

func TestCheckCommandReportsMissing(t *testing.T) {
	out, err := execute(t, "--root", testdataRoot, "-b", "messages", "check", "--locales", "de")
	require.Error(t, err)
	// The de bundle lacks most root codes.
	assert.Contains(t, out, "missing welcome.text")
	assert.Contains(t, out, "missing farewell")
	assert.NotContains(t, out, "missing greeting")
}

func TestCheckCommandOK(t *testing.T) {
	out, err := execute(t, "--root", testdataRoot, "-b", "messages", "check")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
}

func TestInvalidLocaleFlag(t *testing.T) {
	_, err := execute(t, "--root", testdataRoot, "-b", "messages", "-l", "!!", "resolve", "greeting")
	assert.Error(t, err)
}

func TestConfigFlagDrivesSource(t *testing.T) {
	dir := t.TempDir()
	cfgPath := dir + "/i18n.yaml"
	writeFile(t, cfgPath, "basenames:\n  - messages\nresource_root: "+testdataRoot+"\n")

	out, err := execute(t, "-c", cfgPath, "-l", "en", "resolve", "greeting")
	require.NoError(t, err)
	assert.Equal(t, "Hello there\n", out)
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := dir + "/i18n.yaml"
	writeFile(t, cfgPath, "basenames:\n  - nonexistent\nresource_root: "+testdataRoot+"\n")

	out, err := execute(t, "-c", cfgPath, "-b", "messages", "resolve", "code1")
	require.NoError(t, err)
	assert.Equal(t, "message1\n", out)
}
