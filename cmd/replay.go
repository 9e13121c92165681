package cmd

import (
	"github.com/mj1618/axbridge/internal/model"
	"github.com/mj1618/axbridge/internal/output"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <recording>",
	Short: "Replay recorded Android events and print what the bridge dispatches",
	Long: `Feed a recording (YAML or JSON) through a bridge one event at a time and print
every dispatch: tree updates with their host events, action results and tree
destruction, one document per dispatch.

With --changes, print instead how each event changed the consumer's view of the
tree: elements added, removed and changed, focus moves, live region
announcements, plus the host events raised.

With --save, write the recording back out after replaying it (JSON for a .json
path, YAML otherwise) with the focus mode used pinned in full_focus_mode.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Bool("changes", false, "Print client tree diffs per event instead of raw dispatches")
	replayCmd.Flags().Bool("ignore-bounds", false, "With --changes, ignore element position changes")
	replayCmd.Flags().Bool("ignore-focus", false, "With --changes, ignore focus changes")
	replayCmd.Flags().Bool("reset", false, "Destroy the tree after the last event")
	replayCmd.Flags().String("save", "", "Write the replayed recording to this path")
}

func runReplay(cmd *cobra.Command, args []string) error {
	changes, _ := cmd.Flags().GetBool("changes")
	reset, _ := cmd.Flags().GetBool("reset")
	save, _ := cmd.Flags().GetString("save")

	if changes {
		return replayChanges(cmd, args[0], reset, save)
	}

	router := output.NewRouter(output.Writer, output.OutputFormat)
	s, err := newReplay(args[0], router)
	if err != nil {
		return err
	}
	if err := s.run(func(int, *model.Event) error { return router.Err() }); err != nil {
		return err
	}
	if err := s.save(save); err != nil {
		return err
	}
	if reset {
		s.bridge.Reset()
	}
	return router.Err()
}

func replayChanges(cmd *cobra.Command, path string, reset bool, save string) error {
	ignoreBounds, _ := cmd.Flags().GetBool("ignore-bounds")
	ignoreFocus, _ := cmd.Flags().GetBool("ignore-focus")

	s, err := newReplay(path)
	if err != nil {
		return err
	}

	var prev []model.FlatElement
	err = s.run(func(seq int, ev *model.Event) error {
		curr := s.recorder.Flatten()
		result := output.ChangesResult{
			Seq:     seq,
			Event:   ev.Type,
			Changes: filterChanges(model.DiffElements(prev, curr), ignoreBounds, ignoreFocus),
			Events:  hostEvents(s.recorder.TakeBatches()),
		}
		prev = curr
		return output.Print(result)
	})
	if err != nil {
		return err
	}
	if err := s.save(save); err != nil {
		return err
	}
	if reset {
		s.bridge.Reset()
		return output.Print(map[string]string{"destroyed": s.bridge.TreeID()})
	}
	return nil
}

// filterChanges drops ignored changes: bounds diffs with ignoreBounds, focus
// moves with ignoreFocus. Entries left with nothing to report are dropped.
func filterChanges(changes []model.UIChange, ignoreBounds, ignoreFocus bool) []model.UIChange {
	var out []model.UIChange
	for _, change := range changes {
		switch change.Type {
		case model.ChangeFocus:
			if ignoreFocus {
				continue
			}
		case model.ChangeChanged, model.ChangeLive:
			if ignoreBounds {
				delete(change.Changes, "b")
			}
			if len(change.Changes) == 0 {
				continue
			}
		}
		out = append(out, change)
	}
	return out
}

func hostEvents(batches []model.EventBatch) []model.AXEvent {
	var events []model.AXEvent
	for _, b := range batches {
		events = append(events, b.Events...)
	}
	return events
}
