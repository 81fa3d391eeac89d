package stickers

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "stickers.toml")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfig(t *testing.T) {
	p := writeConfig(t, `
root = "assets/stickers"

[[category]]
name = "arrows"
prefix = "arrow"
rename = true

[[category]]
name = "badges"
prefix = "badge"
order = "lexical"
`)
	root, cats, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if root != "assets/stickers" {
		t.Errorf("root = %q", root)
	}
	want := []Category{
		{Name: "arrows", Prefix: "arrow", Order: Natural, Rename: true},
		{Name: "badges", Prefix: "badge", Order: Lexical},
	}
	if !reflect.DeepEqual(cats, want) {
		t.Errorf("categories = %+v, want %+v", cats, want)
	}
}

func TestLoadConfigDefaultsCategories(t *testing.T) {
	root, cats, err := LoadConfig(writeConfig(t, `root = "x"`))
	if err != nil {
		t.Fatal(err)
	}
	if root != "x" || !reflect.DeepEqual(cats, DefaultCategories()) {
		t.Errorf("root = %q, categories = %+v", root, cats)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	for _, content := range []string{
		"[[category]]\nname = \"arrows\"\n",
		"[[category]]\nname = \"arrows\"\nprefix = \"arrow\"\norder = \"random\"\n",
		"root = ",
	} {
		if _, _, err := LoadConfig(writeConfig(t, content)); err == nil {
			t.Errorf("expected error for config:\n%s", content)
		}
	}
}
