package config

import (
	"testing"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
)

const tomlConfig = `
[grid]
row_height = 40.0

[breakpoints]
lg = 1200
sm = 0

[cols]
lg = 12
sm = 4

[[layouts.copilot.lg]]
id = "notes"
x = 0
y = 0
w = 6
h = 2

[[layouts.board.sm]]
id = "timer"
x = 0
y = 0
w = 2
h = 1
`

func TestNewEditorByExtension(t *testing.T) {
	if _, ok := NewEditor("c.toml").(*TOMLEditor); !ok {
		t.Error("expected TOMLEditor for .toml")
	}
	if _, ok := NewEditor("c.TOML").(*TOMLEditor); !ok {
		t.Error("expected TOMLEditor for .TOML")
	}
	if _, ok := NewEditor("c.yml").(*YAMLEditor); !ok {
		t.Error("expected YAMLEditor for .yml")
	}
}

func TestTOMLSetLayouts(t *testing.T) {
	path := writeTestFile(t, "config.toml", tomlConfig)
	ed := NewEditor(path)
	err := ed.SetLayouts("copilot", grid.Layouts{
		"lg": {{ID: "notes", X: 6, Y: 1, W: 6, H: 2, MinW: grid.Bound(2)}},
		"sm": nil,
	})
	if err != nil {
		t.Fatalf("SetLayouts error: %v", err)
	}
	if err := ed.SetLayouts("fresh", grid.Layouts{"lg": {{ID: "a", W: 1, H: 1}}}); err != nil {
		t.Fatalf("SetLayouts(new) error: %v", err)
	}

	c, err := Load(path, nil)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if c.GetGrid().RowHeight != 40 || c.Cols["sm"] != 4 {
		t.Errorf("settings lost: grid %+v cols %v", c.GetGrid(), c.Cols)
	}
	ls, err := c.GetLayouts("copilot")
	if err != nil {
		t.Fatal(err)
	}
	notes := ls["lg"][0]
	if notes.X != 6 || notes.Y != 1 || notes.MinW == nil || *notes.MinW != 2 {
		t.Errorf("copilot lg = %v minW=%v", notes, notes.MinW)
	}
	if _, ok := ls["sm"]; !ok {
		t.Error("empty sm layout dropped")
	}
	if _, err := c.GetLayouts("board"); err != nil {
		t.Errorf("untouched set lost: %v", err)
	}
	if _, err := c.GetLayouts("fresh"); err != nil {
		t.Errorf("new set missing: %v", err)
	}
}

func TestTOMLDeleteLayoutSetAndSetWidget(t *testing.T) {
	path := writeTestFile(t, "config.toml", tomlConfig)
	ed := NewEditor(path)
	if err := ed.DeleteLayoutSet("board"); err != nil {
		t.Fatalf("DeleteLayoutSet error: %v", err)
	}
	if err := ed.DeleteLayoutSet("board"); err == nil {
		t.Error("expected error deleting missing set")
	}
	if err := ed.SetWidget("timer", WidgetDef{Title: "Timer", Content: "<b>0</b>", W: 2, H: 1}); err != nil {
		t.Fatalf("SetWidget error: %v", err)
	}

	c, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Layouts["board"]; ok {
		t.Error("board still present")
	}
	if _, ok := c.Layouts["copilot"]; !ok {
		t.Error("copilot removed")
	}
	w, ok := c.GetWidget("timer")
	if !ok || w.Title != "Timer" || w.W != 2 {
		t.Errorf("timer = %+v, %v", w, ok)
	}
}
