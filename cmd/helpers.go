package cmd

import (
	"github.com/mj1618/axbridge/internal/automation"
	"github.com/mj1618/axbridge/internal/bridge"
	"github.com/mj1618/axbridge/internal/model"
	"github.com/mj1618/axbridge/internal/output"
	"github.com/spf13/cobra"
)

// replaySession runs a recording through a fresh bridge whose dispatches are
// mirrored into a client tree.
type replaySession struct {
	recording *model.Recording
	recorder  *automation.Recorder
	bridge    *bridge.Bridge
	fullFocus bool
}

// fullFocusMode picks the focus mode: --full-focus wins, then the recording,
// then config.
func fullFocusMode(rec *model.Recording) bool {
	if rootCmd.PersistentFlags().Changed("full-focus") || rec.FullFocusMode == nil {
		return appConfig.Bridge.FullFocusMode
	}
	return *rec.FullFocusMode
}

// newReplay loads the recording at path. Extra routers see every dispatch
// after the session's own recorder.
func newReplay(path string, routers ...automation.Router) (*replaySession, error) {
	rec, err := model.LoadRecording(path)
	if err != nil {
		return nil, err
	}
	logger := currentLogger()

	s := &replaySession{recording: rec, recorder: automation.NewRecorder(logger), fullFocus: fullFocusMode(rec)}
	var router automation.Router = s.recorder
	if len(routers) > 0 {
		router = automation.Tee(append([]automation.Router{s.recorder}, routers...)...)
	}
	opts := []bridge.Option{bridge.WithLogger(logger)}
	if appConfig.Bridge.TreeID != "" {
		opts = append(opts, bridge.WithTreeID(appConfig.Bridge.TreeID))
	}
	s.bridge = bridge.New(automation.NewModeDelegate(s.fullFocus), router, opts...)
	return s, nil
}

// run feeds every event in order, calling after (if set) once each event has
// been processed.
func (s *replaySession) run(after func(seq int, ev *model.Event) error) error {
	for i := range s.recording.Events {
		ev := &s.recording.Events[i]
		s.bridge.NotifyAccessibilityEvent(ev)
		if after != nil {
			if err := after(i, ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// save writes the recording to path with the focus mode it was replayed
// under. An empty path does nothing.
func (s *replaySession) save(path string) error {
	if path == "" {
		return nil
	}
	rec := *s.recording
	rec.FullFocusMode = &s.fullFocus
	return model.SaveRecording(path, &rec)
}

// elements returns the client tree flattened, with refs.
func (s *replaySession) elements() []model.FlatElement {
	elements := s.recorder.Flatten()
	model.AnnotateRefs(elements, s.recorder.Refs())
	return elements
}

// treeResult builds the printable client tree after filtering.
func (s *replaySession) treeResult(filter model.ElementFilter) output.TreeResult {
	result := output.TreeResult{
		TreeID:      s.bridge.TreeID(),
		Events:      len(s.recording.Events),
		InputMethod: s.bridge.IsInputMethodWindow(),
		Elements:    filter.Apply(s.elements()),
	}
	if id, ok := s.recorder.FocusID(); ok {
		result.Focus = &id
	}
	return result
}

// addFilterFlags adds the element filter flags shared by tree and render.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("roles", "", "Comma-separated roles to include (e.g. \"btn,input\" or \"interactive\")")
	cmd.Flags().String("text", "", "Filter elements by text content (case-insensitive substring match)")
	cmd.Flags().Bool("focused", false, "Only include the focused element")
	cmd.Flags().String("bbox", "", "Only include elements intersecting a bounding box (x,y,w,h)")
	cmd.Flags().Bool("prune", false, "Remove anonymous group/other elements (automatic for web content)")
}

// getFilterFlags reads the flags added by addFilterFlags.
func getFilterFlags(cmd *cobra.Command) (model.ElementFilter, error) {
	roles, _ := cmd.Flags().GetString("roles")
	text, _ := cmd.Flags().GetString("text")
	focused, _ := cmd.Flags().GetBool("focused")
	prune, _ := cmd.Flags().GetBool("prune")
	bboxStr, _ := cmd.Flags().GetString("bbox")

	f := model.ElementFilter{
		Roles:   model.ParseRoles(roles),
		Text:    text,
		Focused: focused,
		Prune:   prune,
	}
	if bboxStr != "" {
		r, err := model.ParseRect(bboxStr)
		if err != nil {
			return f, err
		}
		arr := r.Array()
		f.BBox = &arr
	}
	return f, nil
}
