package bridge

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/mj1618/axbridge/internal/automation"
	"github.com/mj1618/axbridge/internal/model"
	"gopkg.in/yaml.v3"
)

// TestScenarios replays the event scripts under testdata. Commands:
//
//	event [full-focus]   input: one YAML event; prints the dispatched batch
//	tree                 prints the consumer's mirrored tree
//	reset                resets the bridge
func TestScenarios(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		rec := automation.NewRecorder(nil)
		delegate := automation.NewModeDelegate(false)
		b := New(delegate, rec, WithTreeID("test-tree"))

		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "event":
				delegate.SetFullFocusMode(d.HasArg("full-focus"))
				var ev model.Event
				if err := yaml.Unmarshal([]byte(d.Input), &ev); err != nil {
					d.Fatalf(t, "parsing event: %v", err)
				}
				before := len(rec.Batches())
				b.NotifyAccessibilityEvent(&ev)
				batches := rec.Batches()
				if len(batches) == before {
					return "dropped\n"
				}
				return formatBatch(batches[len(batches)-1])
			case "tree":
				return formatTree(rec.Flatten())
			case "reset":
				b.Reset()
				return fmt.Sprintf("destroyed %s\n", strings.Join(rec.Destroyed(), ","))
			default:
				d.Fatalf(t, "unknown command %q", d.Cmd)
				return ""
			}
		})
	})
}

func formatBatch(batch model.EventBatch) string {
	var buf strings.Builder
	for _, u := range batch.Updates {
		fmt.Fprintf(&buf, "update clear=%d root=%d", u.NodeIDToClear, u.RootID)
		if u.TreeData != nil && u.TreeData.FocusID != nil {
			fmt.Fprintf(&buf, " focus=%d", *u.TreeData.FocusID)
		}
		buf.WriteString("\n")
		for _, n := range u.Nodes {
			fmt.Fprintf(&buf, "  %d %s", n.ID, n.Role)
			if n.Name != "" {
				fmt.Fprintf(&buf, " %q", n.Name)
			}
			if len(n.Children) > 0 {
				fmt.Fprintf(&buf, " %v", n.Children)
			}
			buf.WriteString("\n")
		}
	}
	for _, e := range batch.Events {
		fmt.Fprintf(&buf, "event %s %d", e.Type, e.ID)
		if e.EventFrom != "" {
			fmt.Fprintf(&buf, " from=%s", e.EventFrom)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

func formatTree(elements []model.FlatElement) string {
	var buf strings.Builder
	for _, f := range elements {
		fmt.Fprintf(&buf, "%d %s", f.ID, f.Path)
		if f.Name != "" {
			fmt.Fprintf(&buf, " %q", f.Name)
		}
		if f.Focused {
			buf.WriteString(" *")
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
