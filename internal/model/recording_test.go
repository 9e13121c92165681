package model

import (
	"path/filepath"
	"testing"
)

func sampleRecording() *Recording {
	ff := true
	return &Recording{
		FullFocusMode: &ff,
		Events: []Event{{
			Type:     EventWindowStateChanged,
			SourceID: 1,
			WindowID: 1,
			Windows: []WindowInfo{{
				WindowID:   1,
				RootNodeID: 2,
				Bounds:     Rect{0, 0, 100, 100},
				Bools:      map[WindowBoolProperty]bool{WindowFocused: true},
			}},
			Nodes: []NodeInfo{{ID: 2, WindowID: 1, Bounds: Rect{0, 0, 100, 100}}},
		}},
	}
}

func TestSaveLoadRecording(t *testing.T) {
	for _, name := range []string{"rec.yaml", "rec.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := SaveRecording(path, sampleRecording()); err != nil {
				t.Fatalf("save: %v", err)
			}
			rec, err := LoadRecording(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if rec.FullFocusMode == nil || !*rec.FullFocusMode {
				t.Error("expected full_focus_mode=true")
			}
			if len(rec.Events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(rec.Events))
			}
			ev := rec.Events[0]
			if ev.Type != EventWindowStateChanged || ev.Windows[0].RootNodeID != 2 {
				t.Errorf("unexpected event %+v", ev)
			}
			if !ev.Windows[0].BoolProp(WindowFocused) {
				t.Error("expected focused window")
			}
		})
	}
}

func TestParseRecording_RejectsEventWithoutWindows(t *testing.T) {
	_, err := ParseRecording([]byte("events:\n  - type: VIEW_FOCUSED\n    source: 3\n"))
	if err == nil {
		t.Fatal("expected error for event without windows")
	}
}

func TestParseRecording_UnknownField(t *testing.T) {
	_, err := ParseRecording([]byte("events: []\nbogus: 1\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadRecording_Missing(t *testing.T) {
	if _, err := LoadRecording(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
