package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureSkill = `---
description: Git workflow practices
domains: [git, vcs]
---

## Branching

Use short-lived feature branches rebased onto main before merging.

## Commit messages

Write an imperative summary line under 72 characters.
`

func writeFixtureConfig(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	skillDir := filepath.Join(root, "skills", "git")
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(fixtureSkill), 0o644))

	vectordb := filepath.Join(root, "data")
	configPath := filepath.Join(root, "maestro.yaml")
	contents := fmt.Sprintf("skill_paths:\n  - %q\nvectordb_path: %q\nembedding_provider: local\n",
		filepath.Join(root, "skills"), vectordb)
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o644))
	return configPath
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestIndexCmd_IndexesFixtureSkill(t *testing.T) {
	cfgPath := writeFixtureConfig(t)

	out, err := runRoot(t, "--config", cfgPath, "index")

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 1 skill(s)")
}

func TestSearchCmd_AfterIndex_ReturnsResults(t *testing.T) {
	cfgPath := writeFixtureConfig(t)

	_, err := runRoot(t, "--config", cfgPath, "index")
	require.NoError(t, err)

	out, err := runRoot(t, "--config", cfgPath, "search", "branching strategy")
	require.NoError(t, err)
	assert.Contains(t, out, "result(s)")
}

func TestStatusCmd_ReportsSkillAndChunkCounts(t *testing.T) {
	cfgPath := writeFixtureConfig(t)

	_, err := runRoot(t, "--config", cfgPath, "index")
	require.NoError(t, err)

	out, err := runRoot(t, "--config", cfgPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Skills:")
	assert.Contains(t, out, "Indexed")
}

func TestClearCmd_WithoutYes_Fails(t *testing.T) {
	cfgPath := writeFixtureConfig(t)

	_, err := runRoot(t, "--config", cfgPath, "clear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

func TestClearCmd_WithYes_ClearsIndex(t *testing.T) {
	cfgPath := writeFixtureConfig(t)

	_, err := runRoot(t, "--config", cfgPath, "index")
	require.NoError(t, err)

	out, err := runRoot(t, "--config", cfgPath, "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	out, err = runRoot(t, "--config", cfgPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not indexed")
}

func TestContextCmd_PrintsMarkdownBlock(t *testing.T) {
	cfgPath := writeFixtureConfig(t)

	_, err := runRoot(t, "--config", cfgPath, "index")
	require.NoError(t, err)

	out, err := runRoot(t, "--config", cfgPath, "context", "commit message style")
	require.NoError(t, err)
	assert.Contains(t, out, "Relevant Knowledge")
}

func TestVersionCmd_PrintsVersionString(t *testing.T) {
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "maestro")
}
