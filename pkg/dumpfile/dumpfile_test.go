package dumpfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/leyki/dumputil/dumpscan"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSONPreservesKeyOrder(t *testing.T) {
	path := writeFile(t, "dump.json",
		`{"z": 1, "a": {"y": 2, "b": 3}, "list": [1, [2, 3]], "flag": true, "gone": null}`)

	v, err := LoadJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	root, ok := v.(*sequencedmap.Map[string, any])
	if !ok {
		t.Fatalf("top level is %T, want ordered record", v)
	}

	if diff := cmp.Diff([]string{"z", "a", "list", "flag", "gone"}, dumpscan.Keys(root)); diff != "" {
		t.Fatalf("key order (-want +got):\n%s", diff)
	}

	nested, _ := root.Get("a")
	if diff := cmp.Diff([]string{"y", "b"}, dumpscan.Keys(nested)); diff != "" {
		t.Fatalf("nested key order (-want +got):\n%s", diff)
	}

	z, _ := root.Get("z")
	if z != 1.0 {
		t.Errorf("z = %#v, want float64 1", z)
	}
	gone, _ := root.Get("gone")
	if gone != nil {
		t.Errorf("gone = %#v, want nil", gone)
	}
	list, _ := root.Get("list")
	if diff := cmp.Diff([]any{1.0, []any{2.0, 3.0}}, list); diff != "" {
		t.Fatalf("list (-want +got):\n%s", diff)
	}
}

func TestLoadJSONErrors(t *testing.T) {
	if _, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file must error")
	}
	path := writeFile(t, "broken.json", `{"a": `)
	if _, err := LoadJSON(path); err == nil {
		t.Error("truncated JSON must error")
	}
}

func TestLoadJSONRejectsTrailingData(t *testing.T) {
	path := writeFile(t, "trailing.json", `{"a": 1} junk`)
	if _, err := LoadJSON(path); err == nil {
		t.Error("trailing data must error")
	}

	// Trailing whitespace is still a clean EOF.
	path = writeFile(t, "padded.json", "{\"a\": 1}\n\t ")
	if _, err := LoadJSON(path); err != nil {
		t.Errorf("trailing whitespace rejected: %v", err)
	}
}

func TestSaveJSONRoundTrip(t *testing.T) {
	orig := sequencedmap.New[string, any]()
	orig.Set("name", "castanic")
	orig.Set("stats", func() any {
		s := sequencedmap.New[string, any]()
		s.Set("hp", 80.0)
		s.Set("mp", 50.0)
		return s
	}())
	orig.Set("abilities", []any{"slash", []any{"parry"}})
	orig.Set("pet", nil)

	path := filepath.Join(t.TempDir(), "out", "dump.json")
	if err := SaveJSON(path, orig); err != nil {
		t.Fatal(err)
	}

	v, err := LoadJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := v.(*sequencedmap.Map[string, any])
	if !ok {
		t.Fatalf("round trip produced %T", v)
	}
	if diff := cmp.Diff(dumpscan.Keys(orig), dumpscan.Keys(got)); diff != "" {
		t.Fatalf("key order lost (-want +got):\n%s", diff)
	}
	stats, _ := got.Get("stats")
	if diff := cmp.Diff([]string{"hp", "mp"}, dumpscan.Keys(stats)); diff != "" {
		t.Fatalf("nested key order lost (-want +got):\n%s", diff)
	}
	abilities, _ := got.Get("abilities")
	if diff := cmp.Diff([]any{"slash", []any{"parry"}}, abilities); diff != "" {
		t.Fatalf("abilities (-want +got):\n%s", diff)
	}
}

func TestSaveJSONPlainMapSorted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.json")
	if err := SaveJSON(path, map[string]any{"b": 1.0, "a": 2.0}); err != nil {
		t.Fatal(err)
	}
	v, err := LoadJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, dumpscan.Keys(v)); diff != "" {
		t.Fatalf("plain maps must encode sorted (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "dump.yaml", `
z: 1
a:
  y: 2.5
  b: true
list:
  - one
  - [2, 3]
empty:
`)
	v, err := LoadYAML(path)
	if err != nil {
		t.Fatal(err)
	}
	root, ok := v.(*sequencedmap.Map[string, any])
	if !ok {
		t.Fatalf("top level is %T, want ordered record", v)
	}
	if diff := cmp.Diff([]string{"z", "a", "list", "empty"}, dumpscan.Keys(root)); diff != "" {
		t.Fatalf("key order (-want +got):\n%s", diff)
	}
	nested, _ := root.Get("a")
	y, _ := nested.(*sequencedmap.Map[string, any]).Get("y")
	if y != 2.5 {
		t.Errorf("a.y = %#v, want 2.5", y)
	}
	b, _ := nested.(*sequencedmap.Map[string, any]).Get("b")
	if b != true {
		t.Errorf("a.b = %#v, want true", b)
	}
	list, _ := root.Get("list")
	if diff := cmp.Diff([]any{"one", []any{2.0, 3.0}}, list); diff != "" {
		t.Fatalf("list (-want +got):\n%s", diff)
	}
	empty, _ := root.Get("empty")
	if empty != nil {
		t.Errorf("empty = %#v, want nil", empty)
	}
}

func TestLoadYAMLEmptyDocument(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")
	v, err := LoadYAML(path)
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Errorf("empty document = %#v, want nil", v)
	}
}

func TestLoadYAMLAnchors(t *testing.T) {
	path := writeFile(t, "anchors.yaml", `
base: &stats
  hp: 1
copy: *stats
`)
	v, err := LoadYAML(path)
	if err != nil {
		t.Fatal(err)
	}
	root := v.(*sequencedmap.Map[string, any])
	c, _ := root.Get("copy")
	hp, _ := c.(*sequencedmap.Map[string, any]).Get("hp")
	if hp != 1.0 {
		t.Errorf("copy.hp = %#v, want 1", hp)
	}
}

func TestSaveRawCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "blob.bin")
	if err := SaveRaw(path, []byte{0xde, 0xad}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 2 || data[0] != 0xde {
		t.Errorf("read back %x", data)
	}
}

func TestRemoveBestEffort(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "cache")
	if err := os.MkdirAll(filepath.Join(target, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "sub", "f"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	Remove(target)
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("target still present: %v", err)
	}

	// Removing something that does not exist is silently fine.
	Remove(filepath.Join(dir, "never-existed"))
}
