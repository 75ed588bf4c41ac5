package cleanup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// --- Domain suffix stripper ---

func TestStripDomainSuffixFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "020_all.txt",
		"Computer Name\tOS\n"+
			"server165.corp.example.com\tLinux\n"+
			"server168\tAIX\n")
	dst := filepath.Join(dir, "out.txt")

	require.NoError(t, StripDomainSuffixFile(src, dst))

	assert.Equal(t,
		"Computer Name\tOS\n"+
			"server165\tLinux\n"+
			"server168\tAIX\n",
		readFile(t, dst))
}

func TestStripDomainSuffixFile_Idempotent(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.txt",
		"Computer Name\nserver165.corp.example.com\n")
	once := filepath.Join(dir, "once.txt")
	twice := filepath.Join(dir, "twice.txt")

	require.NoError(t, StripDomainSuffixFile(src, once))
	require.NoError(t, StripDomainSuffixFile(once, twice))

	assert.Equal(t, readFile(t, once), readFile(t, twice))
}

func TestStripDomainSuffixFile_NameColumnNotFirst(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.txt",
		"OS\tComputer Name\nLinux\tserver165.corp.example.com\n")
	dst := filepath.Join(dir, "out.txt")

	require.NoError(t, StripDomainSuffixFile(src, dst))

	assert.Equal(t, "OS\tComputer Name\nLinux\tserver165\n", readFile(t, dst))
}

func TestStripDomainSuffixFile_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "in.txt", "")
	dst := filepath.Join(dir, "out.txt")

	require.NoError(t, StripDomainSuffixFile(src, dst))
	assert.Empty(t, readFile(t, dst))
}

func TestStripDomainSuffixDir(t *testing.T) {
	raw := t.TempDir()
	processed := filepath.Join(t.TempDir(), "processed")
	writeFile(t, raw, "a.txt", "Computer Name\nhost1.example.com\n")
	writeFile(t, raw, "b.txt", "Computer Name\nhost2\n")
	writeFile(t, raw, "skip.csv", "Computer Name\nhost3.example.com\n")

	var seen []string
	result, err := StripDomainSuffixDir(raw, processed, func(name string, err error) {
		require.NoError(t, err)
		seen = append(seen, name)
	})
	require.NoError(t, err)

	assert.True(t, result.AllOK())
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, []string{"a.txt", "b.txt"}, seen)
	assert.Equal(t, "Computer Name\nhost1\n", readFile(t, filepath.Join(processed, "a.txt")))
	// Non-.txt files are not picked up.
	assert.NoFileExists(t, filepath.Join(processed, "skip.csv"))
}

func TestStripDomainSuffixDir_MissingRawDir(t *testing.T) {
	_, err := StripDomainSuffixDir(filepath.Join(t.TempDir(), "nope"), t.TempDir(), nil)
	assert.Error(t, err)
}

// --- Comma-to-tab converter ---

func TestCommasToTabsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.txt", "a,b,c\nd,e,f\n")

	require.NoError(t, CommasToTabsFile(path, false))

	content := readFile(t, path)
	assert.Equal(t, "a\tb\tc\nd\te\tf\n", content)
	assert.Zero(t, strings.Count(content, ","))
}

func TestCommasToTabsFile_PreservesFieldCount(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.txt", "a,b,c\n")

	require.NoError(t, CommasToTabsFile(path, false))

	fields := strings.Split(strings.TrimSuffix(readFile(t, path), "\n"), "\t")
	assert.Len(t, fields, 3)
}

func TestCommasToTabsFile_RejectsQuotedContent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.txt", "a,\"b,c\",d\n")

	err := CommasToTabsFile(path, false)
	require.ErrorIs(t, err, ErrQuotedContent)

	// The file is untouched on refusal.
	assert.Equal(t, "a,\"b,c\",d\n", readFile(t, path))
}

func TestCommasToTabsFile_ForceOverridesQuoteCheck(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "in.txt", "a,\"b,c\",d\n")

	require.NoError(t, CommasToTabsFile(path, true))
	assert.Equal(t, "a\t\"b\tc\"\td\n", readFile(t, path))
}

func TestCommasToTabsDir_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.txt", "a,b\n")
	writeFile(t, dir, "quoted.txt", "\"a,b\"\n")

	result, err := CommasToTabsDir(dir, false, nil)
	require.NoError(t, err)

	assert.False(t, result.AllOK())
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, []string{"quoted.txt"}, result.Failed)
}

// --- Quote stripper ---

func TestStripQuotesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "023_CMDB_active.txt", "a,\"b,c\",d\n")

	require.NoError(t, StripQuotesFile(path))
	assert.Equal(t, "a,b,c,d\n", readFile(t, path))
}

func TestStripQuotesFile_MissingFile(t *testing.T) {
	err := StripQuotesFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

// --- Extension renamer ---

func TestRenameTxtToCSVDir_ContentUnchanged(t *testing.T) {
	dir := t.TempDir()
	content := "Computer Name\tOS\nserver165\tLinux\n"
	writeFile(t, dir, "020_all.txt", content)

	result, err := RenameTxtToCSVDir(dir, nil)
	require.NoError(t, err)

	assert.True(t, result.AllOK())
	assert.NoFileExists(t, filepath.Join(dir, "020_all.txt"))
	assert.Equal(t, content, readFile(t, filepath.Join(dir, "020_all.csv")))
}

func TestRenameTxtToCSVDir_ReplacesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "020_all.txt", "fresh\n")
	writeFile(t, dir, "020_all.csv", "stale\n")

	result, err := RenameTxtToCSVDir(dir, nil)
	require.NoError(t, err)

	assert.True(t, result.AllOK())
	assert.Equal(t, "fresh\n", readFile(t, filepath.Join(dir, "020_all.csv")))
}
