package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"editor-backend/domain/core/aggregates"
	"editor-backend/domain/core/aggregates/aggregatestest"
	"editor-backend/domain/core/valueobjects"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runApp(t, stdin, args...)
	return out, err
}

func runApp(t *testing.T, stdin string, args ...string) (string, *app, error) {
	t.Helper()
	a := newApp()
	cmd := newRootCmd(a)
	t.Cleanup(a.close)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), a, err
}

func writeJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestValidate_NormalizesChangeList(t *testing.T) {
	input := `[{"new_value":"b","cmd":"edit_collection_property","old_value":"a","property_name":"title"},
	           {"exploration_id":"exp1","cmd":"add_collection_node"}]`

	out, err := run(t, input, "validate")
	require.NoError(t, err)
	assert.Equal(t,
		`[{"cmd":"edit_collection_property","new_value":"b","old_value":"a","property_name":"title"},{"cmd":"add_collection_node","exploration_id":"exp1"}]`+"\n",
		out)
}

func TestValidate_RejectsUnknownCommand(t *testing.T) {
	_, err := run(t, `[{"cmd":"rename_everything"}]`, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "change 0")
}

func TestReplay_Collection(t *testing.T) {
	dir := t.TempDir()
	aggregate := writeJSON(t, dir, "collection.json", aggregatestest.NewCollectionBuilder().WithExploration("exp0").Dict())
	summaries := writeJSON(t, dir, "summaries.json", map[string]*valueobjects.ExplorationSummary{
		"exp1": aggregatestest.ExplorationSummary("exp1"),
	})
	changesFile := filepath.Join(dir, "changes.json")
	require.NoError(t, os.WriteFile(changesFile, []byte(`[
		{"cmd":"add_collection_node","exploration_id":"exp1"},
		{"cmd":"swap_collection_nodes","first_index":0,"second_index":1},
		{"cmd":"edit_collection_property","property_name":"tags","new_value":["x"],"old_value":["math"]}
	]`), 0o644))

	out, err := run(t, "", "replay", "collection",
		"--aggregate", aggregate, "--changes", changesFile, "--summaries", summaries)
	require.NoError(t, err)

	var dict aggregates.CollectionDict
	require.NoError(t, json.Unmarshal([]byte(out), &dict))
	require.Len(t, dict.Nodes, 2)
	assert.Equal(t, "exp1", dict.Nodes[0].ExplorationID)
	assert.Equal(t, aggregatestest.ExplorationSummary("exp1"), dict.Nodes[0].ExplorationSummary)
	assert.Equal(t, []string{"x"}, dict.Tags)
}

func TestReplay_Skill(t *testing.T) {
	dir := t.TempDir()
	aggregate := writeJSON(t, dir, "skill.json", aggregatestest.NewSkillBuilder().Dict())

	input := `[{"cmd":"update_skill_misconceptions_property","property_name":"name","old_value":"test name","new_value":"new name","misconception_id":"2"},
	           {"cmd":"update_rubrics","difficulty":"Hard","explanations":["hard"]}]`

	out, err := run(t, input, "replay", "skill", "--aggregate", aggregate)
	require.NoError(t, err)

	var dict aggregates.SkillDict
	require.NoError(t, json.Unmarshal([]byte(out), &dict))
	assert.Equal(t, "new name", dict.Misconceptions[0].Name)
	require.Len(t, dict.Rubrics, 2)
	assert.Equal(t, "Hard", dict.Rubrics[1].Difficulty)
}

func TestReplay_RejectsWrongAggregate(t *testing.T) {
	dir := t.TempDir()
	aggregate := writeJSON(t, dir, "skill.json", aggregatestest.NewSkillBuilder().Dict())

	_, err := run(t, `[{"cmd":"add_collection_node","exploration_id":"e"}]`, "replay", "skill", "--aggregate", aggregate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be applied to a skill")
}

func TestReplay_RejectsInvalidDict(t *testing.T) {
	dir := t.TempDir()
	aggregate := writeJSON(t, dir, "collection.json", map[string]any{"title": "no id"})

	_, err := run(t, `[]`, "replay", "collection", "--aggregate", aggregate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backend dict")
}

func TestReplay_RequiresAggregateFlag(t *testing.T) {
	_, err := run(t, `[]`, "replay", "skill")
	assert.Error(t, err)
}

func TestReplay_RejectsSummariesArray(t *testing.T) {
	dir := t.TempDir()
	aggregate := writeJSON(t, dir, "collection.json", aggregatestest.NewCollectionBuilder().Dict())
	summaries := writeJSON(t, dir, "summaries.json", []*valueobjects.ExplorationSummary{
		aggregatestest.ExplorationSummary("exp1"),
	})

	_, err := run(t, `[]`, "replay", "collection", "--aggregate", aggregate, "--summaries", summaries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid summaries")
}

func TestConfigFileStartsWatcher(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "editor.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log_level: warn\n"), 0o644))

	_, a, err := runApp(t, `[]`, "--config", cfgFile, "validate")
	require.NoError(t, err)
	require.NotNil(t, a.container.Watcher)
	assert.Equal(t, "warn", a.container.Watcher.Current().LogLevel)

	_, a, err = runApp(t, `[]`, "validate")
	require.NoError(t, err)
	assert.Nil(t, a.container.Watcher)
}
