package java

import (
	"errors"
	"testing"

	"github.com/dhamidi/javascan/java/javadoc"
)

func typeDecl(qualified, simple, doc string, members ...*Node) *Node {
	return &Node{
		Kind:     KindTypeDecl,
		Name:     simple,
		Doc:      doc,
		Binding:  &TypeBinding{Name: qualified},
		Children: members,
	}
}

func fieldDecl(doc string, static, final bool, names ...string) *Node {
	decl := &Node{Kind: KindFieldDecl, Doc: doc, Static: static, Final: final}
	for _, name := range names {
		decl.Children = append(decl.Children, &Node{Kind: KindVariableFragment, Name: name})
	}
	return decl
}

func methodDecl(name, doc string, arity int, static, ctor bool) *Node {
	return &Node{
		Kind:        KindMethodDecl,
		Name:        name,
		Doc:         doc,
		Static:      static,
		Constructor: ctor,
		Arity:       arity,
	}
}

func unitOf(decls ...*Node) *ResolvedUnit {
	return &ResolvedUnit{
		File: "Test.java",
		Root: &Node{Kind: KindOther, Children: decls},
	}
}

func TestBuildDocIndexClassDocOnly(t *testing.T) {
	unit := unitOf(typeDecl("com.example.Widget", "Widget", "/** Widget factory. */"))

	index, diags, err := BuildDocIndex([]*ResolvedUnit{unit})
	if err != nil {
		t.Fatalf("BuildDocIndex() error: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("diagnostics: %v", diags)
	}
	docs, ok := index["com.example.Widget"]
	if !ok {
		t.Fatalf("index missing com.example.Widget, have %v", index)
	}
	if len(docs) != 1 || docs[ClassKey] != "Widget factory." {
		t.Errorf("docs = %v, want only %q -> %q", docs, ClassKey, "Widget factory.")
	}
}

func TestBuildDocIndexFields(t *testing.T) {
	unit := unitOf(typeDecl("com.example.Widget", "Widget", "",
		fieldDecl("/** Retry budget. */", false, false, "a", "b"),
		fieldDecl("/** Not captured. */", true, false, "staticField"),
		fieldDecl("/** Not captured. */", false, true, "finalField"),
		fieldDecl("", false, false, "undocumented"),
	))

	index, _, err := BuildDocIndex([]*ResolvedUnit{unit})
	if err != nil {
		t.Fatalf("BuildDocIndex() error: %v", err)
	}
	docs := index["com.example.Widget"]
	if docs["a"] != "Retry budget." || docs["b"] != "Retry budget." {
		t.Errorf("fragment docs = %v, want both a and b documented", docs)
	}
	for _, key := range []string{"staticField", "finalField", "undocumented"} {
		if _, ok := docs[key]; ok {
			t.Errorf("key %q captured, want excluded", key)
		}
	}
}

func TestBuildDocIndexSetterHeuristic(t *testing.T) {
	unit := unitOf(typeDecl("com.example.Widget", "Widget", "",
		methodDecl("setMaxRetries", "/** Retry limit. */", 1, false, false),
		methodDecl("setxyz", "/** Excluded. */", 1, false, false),
		methodDecl("setName", "/** Excluded. */", 2, false, false),
		methodDecl("isEnabled", "/** Excluded. */", 0, false, false),
		methodDecl("setTimeout", "/** Excluded, static. */", 1, true, false),
		methodDecl("Widget", "/** Excluded, constructor. */", 1, false, true),
	))

	index, _, err := BuildDocIndex([]*ResolvedUnit{unit})
	if err != nil {
		t.Fatalf("BuildDocIndex() error: %v", err)
	}
	docs := index["com.example.Widget"]
	if len(docs) != 1 {
		t.Fatalf("docs = %v, want exactly one entry", docs)
	}
	if docs["maxRetries"] != "Retry limit." {
		t.Errorf("docs = %v, want maxRetries -> %q", docs, "Retry limit.")
	}
}

func TestBuildDocIndexNestedTypes(t *testing.T) {
	inner := typeDecl("com.example.Outer.Inner", "Inner", "/** Inner workings. */")
	unit := unitOf(typeDecl("com.example.Outer", "Outer", "/** Outer shell. */", inner))

	index, _, err := BuildDocIndex([]*ResolvedUnit{unit})
	if err != nil {
		t.Fatalf("BuildDocIndex() error: %v", err)
	}
	if index["com.example.Outer"][ClassKey] != "Outer shell." {
		t.Errorf("outer docs = %v", index["com.example.Outer"])
	}
	if index["com.example.Outer.Inner"][ClassKey] != "Inner workings." {
		t.Errorf("inner docs = %v", index["com.example.Outer.Inner"])
	}
}

func TestBuildDocIndexUnresolvedTypeSkipped(t *testing.T) {
	decl := &Node{Kind: KindTypeDecl, Name: "Mystery", Doc: "/** Lost. */"}
	index, diags, err := BuildDocIndex([]*ResolvedUnit{unitOf(decl)})
	if err != nil {
		t.Fatalf("BuildDocIndex() error: %v", err)
	}
	if len(index) != 0 {
		t.Errorf("index = %v, want empty", index)
	}
	if len(diags) != 1 {
		t.Errorf("diagnostics = %v, want one skip warning", diags)
	}
}

func TestBuildDocIndexLastWriteWins(t *testing.T) {
	first := unitOf(typeDecl("com.example.Widget", "Widget", "/** First parse. */"))
	second := unitOf(typeDecl("com.example.Widget", "Widget", "/** Second parse. */"))

	index, _, err := BuildDocIndex([]*ResolvedUnit{first, second})
	if err != nil {
		t.Fatalf("BuildDocIndex() error: %v", err)
	}
	if got := index["com.example.Widget"][ClassKey]; got != "Second parse." {
		t.Errorf("class doc = %q, want the later unit to win", got)
	}
}

func TestBuildDocIndexNoProseDiagnostic(t *testing.T) {
	unit := unitOf(typeDecl("com.example.Widget", "Widget", "/** @deprecated gone */"))

	index, diags, err := BuildDocIndex([]*ResolvedUnit{unit})
	if err != nil {
		t.Fatalf("BuildDocIndex() error: %v", err)
	}
	if len(index["com.example.Widget"]) != 0 {
		t.Errorf("docs = %v, want empty index for tag-only comment", index["com.example.Widget"])
	}
	if len(diags) != 1 {
		t.Errorf("diagnostics = %v, want one no-prose warning", diags)
	}
}

func TestBuildDocIndexMalformedDocFails(t *testing.T) {
	unit := unitOf(typeDecl("com.example.Widget", "Widget", "not a comment"))

	_, _, err := BuildDocIndex([]*ResolvedUnit{unit})
	if !errors.Is(err, javadoc.ErrMalformed) {
		t.Errorf("BuildDocIndex() error = %v, want ErrMalformed", err)
	}
}
