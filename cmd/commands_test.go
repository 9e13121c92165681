package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mj1618/axbridge/internal/config"
	"github.com/mj1618/axbridge/internal/model"
	"github.com/mj1618/axbridge/internal/output"
	"github.com/mj1618/axbridge/internal/render"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statusRecording = "testdata/status.yaml"

// resetFlags puts every flag back to its default; cobra keeps flag state
// between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns what was printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	prevWriter := output.Writer
	output.Writer = &buf
	t.Cleanup(func() {
		output.Writer = prevWriter
		output.OutputFormat = output.FormatYAML
		output.PrettyOutput = false
		appConfig = config.DefaultConfig()
		appLogger = nil
		configPath = ""
		resetFlags(rootCmd)
	})
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func jsonLines(t *testing.T, s string) [][]byte {
	t.Helper()
	var lines [][]byte
	sc := bufio.NewScanner(bytes.NewBufferString(s))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		lines = append(lines, append([]byte(nil), sc.Bytes()...))
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestReplay_PrintsDispatches(t *testing.T) {
	out, err := execute(t, "replay", statusRecording, "--format", "json", "--reset")
	require.NoError(t, err)

	lines := jsonLines(t, out)
	require.NotEmpty(t, lines)

	var first output.DispatchRecord
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, 0, first.Seq)
	assert.Equal(t, "events", first.Kind)
	require.NotNil(t, first.Batch)

	var last output.DispatchRecord
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &last))
	assert.Equal(t, "tree_destroyed", last.Kind)
	assert.NotEmpty(t, last.TreeID)
}

func TestReplay_Changes(t *testing.T) {
	out, err := execute(t, "replay", statusRecording, "--changes", "--format", "json", "--ignore-bounds")
	require.NoError(t, err)

	lines := jsonLines(t, out)
	require.Len(t, lines, 2, "one result per event")

	var first, second output.ChangesResult
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))

	assert.Equal(t, model.EventType("WINDOW_STATE_CHANGED"), first.Event)
	require.NotEmpty(t, first.Changes)
	types := make(map[model.ChangeType]int)
	for _, c := range first.Changes {
		types[c.Type]++
	}
	assert.Equal(t, 4, types[model.ChangeAdded], "everything is new on the first event")
	assert.Equal(t, 1, types[model.ChangeFocus], "the window takes focus")

	assert.Equal(t, 1, second.Seq)
	assert.Equal(t, model.EventType("WINDOW_CONTENT_CHANGED"), second.Event)
	require.Len(t, second.Changes, 1)
	live := second.Changes[0]
	assert.Equal(t, model.ChangeLive, live.Type)
	assert.Equal(t, int32(4), live.ID)
	assert.Equal(t, "Done", live.Name)
}

func TestReplay_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	_, err := execute(t, "replay", statusRecording, "--full-focus", "--save", path)
	require.NoError(t, err)

	saved, err := model.LoadRecording(path)
	require.NoError(t, err)
	assert.Len(t, saved.Events, 2)
	require.NotNil(t, saved.FullFocusMode)
	assert.True(t, *saved.FullFocusMode, "the mode used is pinned")

	src, err := model.LoadRecording(statusRecording)
	require.NoError(t, err)
	assert.Nil(t, src.FullFocusMode, "the source recording is untouched")
	assert.Equal(t, src.Events[1].SourceID, saved.Events[1].SourceID)
}

func TestReplay_MissingRecording(t *testing.T) {
	_, err := execute(t, "replay", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTree_FiltersByRole(t *testing.T) {
	out, err := execute(t, "tree", statusRecording, "--format", "json", "--roles", "btn")
	require.NoError(t, err)

	var result output.TreeResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Events)
	assert.NotEmpty(t, result.TreeID)
	require.Len(t, result.Elements, 1)
	assert.Equal(t, "btn", result.Elements[0].Role)
	assert.Equal(t, "OK", result.Elements[0].Name)
	assert.Equal(t, "ok", result.Elements[0].Ref)
}

func TestTree_FixedTreeIDFromConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "axbridge.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[bridge]\ntree_id = \"fixed-id\"\n"), 0o644))

	out, err := execute(t, "tree", statusRecording, "--config", cfgPath, "--format", "json")
	require.NoError(t, err)

	var result output.TreeResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "fixed-id", result.TreeID)
}

func TestTree_BadBBox(t *testing.T) {
	_, err := execute(t, "tree", statusRecording, "--bbox", "1,2")
	assert.Error(t, err)
}

func TestRender_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.png")
	_, err := execute(t, "render", statusRecording, "-o", path, "--margin", "0")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestRender_RejectsBadScale(t *testing.T) {
	_, err := execute(t, "render", statusRecording, "-o", "-", "--scale", "50")
	assert.Error(t, err)
}

func TestRoot_RejectsBadFormat(t *testing.T) {
	_, err := execute(t, "tree", statusRecording, "--format", "xml")
	assert.Error(t, err)
}

func TestRoot_RejectsBadLogLevel(t *testing.T) {
	_, err := execute(t, "tree", statusRecording, "--log-level", "loud")
	assert.Error(t, err)
}

func TestParseLabelMode(t *testing.T) {
	tests := []struct {
		in      string
		want    render.LabelMode
		wantErr bool
	}{
		{"ids", render.LabelIDs, false},
		{"roles", render.LabelRoles, false},
		{"none", render.LabelNone, false},
		{"all", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLabelMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFilterChanges(t *testing.T) {
	changes := []model.UIChange{
		{Type: model.ChangeAdded, ID: 1},
		{Type: model.ChangeChanged, ID: 2, Changes: map[string][2]string{"b": {"[0 0 1 1]", "[0 0 2 2]"}}},
		{Type: model.ChangeLive, ID: 3, Changes: map[string][2]string{"b": {"[0 0 1 1]", "[0 0 2 2]"}, "n": {"a", "b"}}},
		{Type: model.ChangeFocus, ID: 3, From: 1},
	}

	got := filterChanges(changes, true, true)
	require.Len(t, got, 2)
	assert.Equal(t, int32(1), got[0].ID)
	assert.Equal(t, int32(3), got[1].ID)
	assert.Equal(t, map[string][2]string{"n": {"a", "b"}}, got[1].Changes)

	kept := filterChanges([]model.UIChange{{Type: model.ChangeFocus, ID: 3, From: 1}}, true, false)
	assert.Len(t, kept, 1, "focus moves stay unless ignored")
}

func TestFullFocusMode(t *testing.T) {
	t.Cleanup(func() {
		appConfig = config.DefaultConfig()
		resetFlags(rootCmd)
	})
	on, off := true, false

	appConfig.Bridge.FullFocusMode = true
	assert.True(t, fullFocusMode(&model.Recording{}), "config applies when the recording is silent")
	assert.False(t, fullFocusMode(&model.Recording{FullFocusMode: &off}), "recording beats config")

	require.NoError(t, rootCmd.PersistentFlags().Set("full-focus", "false"))
	appConfig.Bridge.FullFocusMode = false
	assert.False(t, fullFocusMode(&model.Recording{FullFocusMode: &on}), "flag beats recording")
}
