package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/javascan/java"
)

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const widgetSource = `package com.example;

/** Widget factory. */
public class Widget {
    /** How often to retry. */
    private int count;

    /** Not captured. */
    private static final int LIMIT = 3;

    /** Retry budget. */
    public void setMaxRetries(int n) {
        this.count = n;
    }

    public void bump() {
        count++;
        helper();
    }

    private void helper() {
    }
}
`

const gadgetSource = `package com.example;

public class Gadget {
    private Widget widget;

    public Gadget() {
        this.widget = new Widget();
    }

    public void run() {
        widget.bump();
    }
}
`

func TestLoadDocIndex(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "Widget.java", widgetSource)

	units, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("units = %d, want 1", len(units))
	}

	index, diags, err := java.BuildDocIndex(units)
	if err != nil {
		t.Fatalf("BuildDocIndex() error: %v", err)
	}
	for _, d := range diags {
		t.Logf("diagnostic: %+v", d)
	}
	docs := index["com.example.Widget"]
	if docs == nil {
		t.Fatalf("index missing com.example.Widget, have %v", index)
	}
	want := map[string]string{
		java.ClassKey: "Widget factory.",
		"count":       "How often to retry.",
		"maxRetries":  "Retry budget.",
	}
	for key, doc := range want {
		if docs[key] != doc {
			t.Errorf("docs[%q] = %q, want %q", key, docs[key], doc)
		}
	}
	if _, ok := docs["LIMIT"]; ok {
		t.Errorf("static final field captured: %v", docs)
	}
}

func TestLoadReferences(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "Widget.java", widgetSource)
	writeSource(t, root, "Gadget.java", gadgetSource)

	units, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("units = %d, want 2", len(units))
	}

	symbols := make(map[string]int)
	for _, unit := range units {
		refs, err := java.CollectReferences(unit)
		if err != nil {
			t.Fatalf("CollectReferences(%s) error: %v", unit.File, err)
		}
		for _, ref := range refs {
			symbols[ref.Symbol]++
		}
	}

	// Cross-file resolution: Gadget.run() calls Widget.bump().
	if symbols["com.example.Widget::bump()"] != 1 {
		t.Errorf("bump references = %d, want 1, have %v", symbols["com.example.Widget::bump()"], symbols)
	}
	if symbols["com.example.Widget::helper()"] != 1 {
		t.Errorf("helper references = %d, want 1", symbols["com.example.Widget::helper()"])
	}
	// Field use sites inside Widget resolve to the declaring class; the
	// setter body and bump each touch count once.
	if symbols["com.example.Widget::count"] != 2 {
		t.Errorf("count references = %d, want 2, have %v", symbols["com.example.Widget::count"], symbols)
	}
	// Widget declares no constructor, so the creation site in Gadget binds
	// to the class with unknown parameters.
	if symbols["com.example.Widget::Widget(null)"] != 1 {
		t.Errorf("constructor references = %d, want 1, have %v", symbols["com.example.Widget::Widget(null)"], symbols)
	}
}

func TestLoadRespectsExclude(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/Widget.java", widgetSource)
	writeSource(t, root, "gen/Skipped.java", gadgetSource)

	units, err := LoadFrom(root, Config{Exclude: []string{"gen"}})
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("units = %d, want the excluded directory skipped", len(units))
	}
	if filepath.Base(units[0].File) != "Widget.java" {
		t.Errorf("loaded %s, want Widget.java", units[0].File)
	}
}

func TestLoadRespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "Widget.java", widgetSource)
	writeSource(t, root, "build/Out.java", gadgetSource)
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte("build/\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	units, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("units = %d, want ignored directory skipped", len(units))
	}
}

func TestLoadUnresolvedDegrades(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "Uses.java", `package com.example;

import com.vendor.Remote;

public class Uses {
    public void go(Remote r) {
        r.ping();
        new Remote();
    }
}
`)

	units, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	refs, err := java.CollectReferences(units[0])
	if err != nil {
		t.Fatalf("CollectReferences() error: %v", err)
	}

	// The vendor class is imported but never parsed, so its members stay
	// unbound. Ordinary calls go silent; the constructor invocation still
	// yields a record with the unresolved sentinel.
	var ctor bool
	for _, ref := range refs {
		if ref.Kind == java.RefConstructorCall {
			ctor = true
			if ref.Symbol == "" {
				t.Errorf("constructor reference has empty symbol")
			}
		}
	}
	if !ctor {
		t.Errorf("no constructor reference emitted, have %v", refs)
	}
}
