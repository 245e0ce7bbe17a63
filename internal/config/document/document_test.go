package document

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in     string
		want   Mode
		wantOK bool
	}{
		{"MAIN", ModeMain, true},
		{"inherit", ModeInherit, true},
		{"  Disable ", ModeDisable, true},
		{"", ModeNotSet, false},
		{"sometimes", ModeNotSet, false},
	}

	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMode(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMode_Marker(t *testing.T) {
	if got := ModeInherit.Marker(); got != MarkerInherit {
		t.Errorf("ModeInherit.Marker() = %q, want %q", got, MarkerInherit)
	}
	if got := ModeDisable.Marker(); got != MarkerDisable {
		t.Errorf("ModeDisable.Marker() = %q, want %q", got, MarkerDisable)
	}
	if got := ModeMain.Marker(); got != "" {
		t.Errorf("ModeMain.Marker() = %q, want empty", got)
	}
}

func TestIsMarker(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{"inherit", true},
		{"DISABLE", true},
		{"Inherit", true},
		{"inherits", false},
		{42, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := IsMarker(tt.in); got != tt.want {
			t.Errorf("IsMarker(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDocument_Order(t *testing.T) {
	doc := New("/cfg/world.yml")
	doc.Set("b", 1)
	doc.Set("a", 2)
	doc.Set("b", 3)

	if diff := cmp.Diff([]string{"b", "a"}, doc.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if v, _ := doc.Get("b"); v != 3 {
		t.Errorf("Get(b) = %v, want 3", v)
	}
	if doc.Name() != "world.yml" {
		t.Errorf("Name() = %q, want world.yml", doc.Name())
	}

	doc.Delete("b")
	if doc.Has("b") || doc.Len() != 1 {
		t.Errorf("after Delete: Has(b) = %v, Len() = %d", doc.Has("b"), doc.Len())
	}
}

func TestUnmarshal_Flattens(t *testing.T) {
	data := `
ExtraHardMode:
  Config Type: INHERIT
  Enabled Worlds:
  - world
  - "*"
  Zombies:
    Slow Players: false
    Reanimate Percent: 40
  Player:
    One Tool Adds: 0.5
`
	doc, err := Unmarshal("/cfg/a.yml", []byte(data))
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	wantKeys := []string{
		"ExtraHardMode.Config Type",
		"ExtraHardMode.Enabled Worlds",
		"ExtraHardMode.Zombies.Slow Players",
		"ExtraHardMode.Zombies.Reanimate Percent",
		"ExtraHardMode.Player.One Tool Adds",
	}
	if diff := cmp.Diff(wantKeys, doc.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		key  string
		want any
	}{
		{"ExtraHardMode.Config Type", "INHERIT"},
		{"ExtraHardMode.Enabled Worlds", []any{"world", "*"}},
		{"ExtraHardMode.Zombies.Slow Players", false},
		{"ExtraHardMode.Zombies.Reanimate Percent", 40},
		{"ExtraHardMode.Player.One Tool Adds", 0.5},
	}
	for _, tt := range tests {
		got, _ := doc.Get(tt.key)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Get(%q) mismatch (-want +got):\n%s", tt.key, diff)
		}
	}
}

func TestUnmarshal_Empty(t *testing.T) {
	for _, data := range []string{"", "\n", "# only a comment\n", "~\n"} {
		doc, err := Unmarshal("/cfg/empty.yml", []byte(data))
		if err != nil {
			t.Errorf("Unmarshal(%q) failed: %v", data, err)
			continue
		}
		if doc.Len() != 0 {
			t.Errorf("Unmarshal(%q) has %d keys, want 0", data, doc.Len())
		}
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	tests := []string{
		"a: [unclosed\n",
		"- just\n- a list\n",
	}

	for _, data := range tests {
		_, err := Unmarshal("/cfg/bad.yml", []byte(data))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Unmarshal(%q) error = %v, want *ParseError", data, err)
			continue
		}
		if pe.Path != "/cfg/bad.yml" {
			t.Errorf("ParseError.Path = %q", pe.Path)
		}
	}
}

func TestMarshal_Nests(t *testing.T) {
	doc := New("/cfg/a.yml")
	doc.Set("Root.B.Second", 2)
	doc.Set("Root.A", "inherit")
	doc.Set("Root.B.First", []string{"STONE", "IRON_ORE@1,2"})
	doc.Set("Root.C", []string{})

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `Root:
  B:
    Second: 2
    First:
      - STONE
      - IRON_ORE@1,2
  A: inherit
  C: []
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("Marshal mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_Conflict(t *testing.T) {
	doc := New("/cfg/a.yml")
	doc.Set("Root.A", 1)
	doc.Set("Root.A.B", 2)

	if _, err := Marshal(doc); err == nil {
		t.Error("expected error for key used as value and section")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	doc := New("/cfg/a.yml")
	doc.Set("ExtraHardMode.Config Type", "DISABLE")
	doc.Set("ExtraHardMode.Enabled Worlds", []string{"*"})
	doc.Set("ExtraHardMode.Mining.Blocks (Block@id,id2)", []string{"COAL_ORE"})
	doc.Set("ExtraHardMode.Value", "10")

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := Unmarshal("/cfg/a.yml", data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if diff := cmp.Diff(doc.Keys(), back.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := back.Get("ExtraHardMode.Value"); v != "10" {
		t.Errorf("quoted number = %v (%T), want string 10", v, v)
	}
	if v, _ := back.Get("ExtraHardMode.Enabled Worlds"); !cmp.Equal(v, []any{"*"}) {
		t.Errorf("worlds = %v, want [*]", v)
	}
}

func TestYAMLStore_SaveLoadList(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/cfg/notes.txt", "ignored")
	memfs.AddFile("/cfg/sub/deep.yml", "a: 1")
	store := NewYAMLStore(memfs)

	doc := New("/cfg/config.yml")
	doc.Set("A.B", true)
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	memfs.AddFile("/cfg/nether.yaml", "A:\n  B: false\n")

	paths, err := store.List("/cfg")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if diff := cmp.Diff([]string{"/cfg/config.yml", "/cfg/nether.yaml"}, paths); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	loaded, err := store.Load("/cfg/config.yml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := loaded.Get("A.B"); v != true {
		t.Errorf("A.B = %v, want true", v)
	}
}

func TestYAMLStore_Errors(t *testing.T) {
	memfs := NewMemFS()
	store := NewYAMLStore(memfs)

	if _, err := store.Load("/cfg/missing.yml"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want fs.ErrNotExist", err)
	}

	paths, err := store.List("/nowhere")
	if err != nil || len(paths) != 0 {
		t.Errorf("List(empty) = %v, %v, want none", paths, err)
	}

	memfs.WriteErr = errors.New("disk full")
	err = store.Save(New("/cfg/config.yml"))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Save error = %v, want disk full", err)
	}
}

func TestYAMLStore_OSFS(t *testing.T) {
	dir := t.TempDir()
	store := NewYAMLStore(nil)

	doc := New(dir + "/nested/config.yml")
	doc.Set("Root.Key", "value")
	if err := store.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(doc.Path())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := loaded.Get("Root.Key"); v != "value" {
		t.Errorf("Root.Key = %v, want value", v)
	}

	paths, err := store.List(dir + "/nested")
	if err != nil || len(paths) != 1 {
		t.Errorf("List = %v, %v, want one path", paths, err)
	}
}
