package tagger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/BigFix-Export-Cleanup/internal/config"
	"github.com/ginjaninja78/BigFix-Export-Cleanup/internal/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func reportingRule() config.TagRule {
	return config.TagRule{
		Column:        "Not reporting to BigFix",
		ReferenceFile: "021_notrep.csv",
		Anchors:       []string{config.ComputerNameColumn},
		PresentLabel:  "Not Reporting",
		AbsentLabel:   "Reporting",
	}
}

func TestLoadNameSet(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "021_notrep.csv",
		"Computer Name\nserverB\n serverC \n\nserverB\n")

	names, err := LoadNameSet(path)
	require.NoError(t, err)

	assert.Len(t, names, 2)
	assert.Contains(t, names, "serverB")
	assert.Contains(t, names, "serverC")
}

func TestLoadNameSet_MissingFile(t *testing.T) {
	_, err := LoadNameSet(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestApplyRule_InsertsAfterComputerName(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Computer Name", "OS"},
		Rows: [][]string{
			{"serverA", "Linux"},
			{"serverB", "AIX"},
		},
	}
	names := map[string]struct{}{"serverB": {}}

	result, err := ApplyRule(table, reportingRule(), names)
	require.NoError(t, err)

	assert.Equal(t, []string{"Computer Name", "Not reporting to BigFix", "OS"}, table.Headers)
	assert.Equal(t, []string{"serverA", "Reporting", "Linux"}, table.Rows[0])
	assert.Equal(t, []string{"serverB", "Not Reporting", "AIX"}, table.Rows[1])
	assert.Equal(t, 2, result.TaggedRows)
	assert.Equal(t, 1, result.ReferenceCount)
}

func TestApplyRule_OverwritesExistingColumn(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Computer Name", "Not reporting to BigFix", "OS"},
		Rows:    [][]string{{"serverA", "Not Reporting", "Linux"}},
	}

	_, err := ApplyRule(table, reportingRule(), map[string]struct{}{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Computer Name", "Not reporting to BigFix", "OS"}, table.Headers)
	assert.Equal(t, []string{"serverA", "Reporting", "Linux"}, table.Rows[0])
}

func TestApplyRule_RepositionsMisplacedColumn(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Computer Name", "OS", "Not reporting to BigFix"},
		Rows:    [][]string{{"serverA", "Linux", "Not Reporting"}},
	}

	_, err := ApplyRule(table, reportingRule(), map[string]struct{}{"serverA": {}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Computer Name", "Not reporting to BigFix", "OS"}, table.Headers)
	assert.Equal(t, []string{"serverA", "Not Reporting", "Linux"}, table.Rows[0])
}

func TestApplyRule_AnchorFallback(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Computer Name", "Not reporting to BigFix", "OS"},
		Rows:    [][]string{{"serverA", "Reporting", "Linux"}},
	}
	rule := config.TagRule{
		Column:        "CMDB Status",
		ReferenceFile: "023_CMDB_active.csv",
		// The primary anchor is absent; the fallback is present.
		Anchors:      []string{"Delayed Data Upload", "Not reporting to BigFix"},
		PresentLabel: "In CMDB",
		AbsentLabel:  "Not in CMDB",
	}

	_, err := ApplyRule(table, rule, map[string]struct{}{"serverA": {}})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"Computer Name", "Not reporting to BigFix", "CMDB Status", "OS"},
		table.Headers)
	assert.Equal(t, []string{"serverA", "Reporting", "In CMDB", "Linux"}, table.Rows[0])
}

func TestApplyRule_NoAnchorFound(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Hostname"},
		Rows:    [][]string{{"serverA"}},
	}

	_, err := ApplyRule(table, reportingRule(), map[string]struct{}{})
	assert.Error(t, err)
}

func TestApplyRule_PadsShortRows(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Computer Name", "OS"},
		Rows:    [][]string{{"serverA"}},
	}

	_, err := ApplyRule(table, reportingRule(), map[string]struct{}{})
	require.NoError(t, err)

	assert.Equal(t, []string{"serverA", "Reporting"}, table.Rows[0])
}

func TestApplyRuleFile(t *testing.T) {
	dir := t.TempDir()
	allPath := writeFile(t, dir, "020_all.csv",
		"Computer Name\tOS\nserverA\tLinux\nserverB\tAIX\n")
	writeFile(t, dir, "021_notrep.csv", "Computer Name\nserverB\n")

	result, err := ApplyRuleFile(allPath, reportingRule(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TaggedRows)

	data, err := os.ReadFile(allPath)
	require.NoError(t, err)
	assert.Equal(t,
		"Computer Name\tNot reporting to BigFix\tOS\n"+
			"serverA\tReporting\tLinux\n"+
			"serverB\tNot Reporting\tAIX\n",
		string(data))
}

func TestApplyRuleFile_EmptyAllFileLeftUntouched(t *testing.T) {
	dir := t.TempDir()
	allPath := writeFile(t, dir, "020_all.csv", "")
	writeFile(t, dir, "021_notrep.csv", "Computer Name\nserverB\n")

	result, err := ApplyRuleFile(allPath, reportingRule(), dir)
	require.NoError(t, err)
	assert.True(t, result.SkippedEmpty)

	data, err := os.ReadFile(allPath)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestDefaultChain_StableColumnOrder(t *testing.T) {
	dir := t.TempDir()
	rules := config.DefaultTagRules()

	table := &tabular.Table{
		Headers: []string{"Computer Name", "OS"},
		Rows:    [][]string{{"serverA", "Linux"}},
	}

	for _, rule := range rules {
		writeFile(t, dir, rule.ReferenceFile, "Computer Name\nserverZ\n")
		names, err := LoadNameSet(filepath.Join(dir, rule.ReferenceFile))
		require.NoError(t, err)
		_, err = ApplyRule(table, rule, names)
		require.NoError(t, err)
	}

	want := []string{"Computer Name"}
	for _, rule := range rules {
		want = append(want, rule.Column)
	}
	want = append(want, "OS")
	assert.Equal(t, want, table.Headers)
	// serverA is in none of the reference files.
	assert.Equal(t, "Reporting", table.Rows[0][1])
	assert.Equal(t, "Not in CMDB", table.Rows[0][2])
	assert.Equal(t, "NO", table.Rows[0][3])
}
