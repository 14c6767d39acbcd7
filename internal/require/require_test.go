package require

import (
	"testing"

	"github.com/rexxgo/rexxcore/internal/security"
)

type fakeResolver struct {
	origin security.Origin
	names  map[string]string // ref key -> code
}

func (f *fakeResolver) Origin() security.Origin { return f.origin }
func (f *fakeResolver) Applies(ref Ref) bool     { _, ok := f.names[ref.Key()]; return ok }
func (f *fakeResolver) Resolve(ref Ref) (LoadedLibrary, error) {
	return LoadedLibrary{Ref: ref, Code: f.names[ref.Key()]}, nil
}

type fakeEvaluator struct {
	byCode map[string]Metadata
}

func (f *fakeEvaluator) Execute(code string) (Metadata, error) {
	return f.byCode[code], nil
}

func TestGraphDetectsCycle(t *testing.T) {
	g := NewGraph()
	if err := g.AddDependency("a", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddDependency("b", "c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddDependency("c", "a"); err == nil {
		t.Fatal("expected cycle error, got nil")
	}
}

func TestBeginLoadingRejectsReentry(t *testing.T) {
	g := NewGraph()
	if !g.BeginLoading("a") {
		t.Fatal("expected first BeginLoading to succeed")
	}
	if g.BeginLoading("a") {
		t.Fatal("expected second BeginLoading (reentrant) to fail")
	}
}

func TestNormalizeStripsExtensionAndNamespace(t *testing.T) {
	ref := Normalize("utils/json.rexx", "/scripts")
	if ref.Namespace != "utils" || ref.Name != "json" || ref.IsPath {
		t.Fatalf("unexpected ref: %+v", ref)
	}
}

func TestNormalizeRelativePathResolvesAgainstScriptDir(t *testing.T) {
	ref := Normalize("./lib/helper.rexx", "/scripts")
	if !ref.IsPath || ref.Name != "/scripts/lib/helper.rexx" {
		t.Fatalf("unexpected ref: %+v", ref)
	}
}

func TestRewriteFunctionNameAddsUnderscore(t *testing.T) {
	if got := RewriteFunctionName("MY", "PARSE_JSON"); got != "MY_PARSE_JSON" {
		t.Fatalf("got %q", got)
	}
	if got := RewriteFunctionName("MY_", "PARSE_JSON"); got != "MY_PARSE_JSON" {
		t.Fatalf("got %q", got)
	}
	if got := RewriteFunctionName("", "PARSE_JSON"); got != "PARSE_JSON" {
		t.Fatalf("got %q", got)
	}
	if got := RewriteFunctionName("math_(.*)", "add"); got != "math_add" {
		t.Fatalf("got %q", got)
	}
}

func TestRewriteAddressTargetRejectsPatterns(t *testing.T) {
	if _, err := RewriteAddressTarget("MY.*TARGET", "DB"); err == nil {
		t.Fatal("expected error for pattern-like AS clause")
	}
	got, err := RewriteAddressTarget("MYDB", "DB")
	if err != nil || got != "MYDB" {
		t.Fatalf("got %q, err %v", got, err)
	}
}

func TestParsePublisherIndexSkipsCommentsAndBlankLines(t *testing.T) {
	data := "# registry index\n\nacme,https://acme.example/index.csv\nwidgets,https://widgets.example/index.csv\n"
	entries, err := ParsePublisherIndex(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].Publisher != "acme" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestLadderSkipsUnapprovedOrigin(t *testing.T) {
	gate := security.NewGate(security.PolicyStrict, security.EnvLocalNode)
	ladder := Ladder{&fakeResolver{origin: security.OriginGitHub, names: map[string]string{"json": "code"}}}
	_, err := ladder.Resolve(Ref{Name: "json"}, gate)
	if err == nil {
		t.Fatal("expected strict policy to reject github origin")
	}
}

func TestLoaderResolvesDependenciesRecursively(t *testing.T) {
	gate := security.NewGate(security.PolicyPermissive, security.EnvLocalNode)
	resolver := &fakeResolver{
		origin: security.OriginLocal,
		names: map[string]string{
			"app": "app-code",
			"lib": "lib-code",
		},
	}
	eval := &fakeEvaluator{byCode: map[string]Metadata{
		"app-code": {Type: "functions", Functions: []string{"DO_THING"}, Dependencies: []string{"lib"}},
		"lib-code": {Type: "functions", Functions: []string{"HELPER"}},
	}}
	loader := NewLoader(Ladder{resolver}, gate, eval)

	result, err := loader.Require("app", "/scripts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Metadata.Functions) != 1 || result.Metadata.Functions[0] != "DO_THING" {
		t.Fatalf("unexpected metadata: %+v", result.Metadata)
	}
	if !loader.Graph.IsLoaded("lib") {
		t.Fatal("expected transitive dependency lib to be loaded")
	}
}

func TestListStatusIsNaturallySorted(t *testing.T) {
	g := NewGraph()
	for _, name := range []string{"lib10", "lib2", "lib1"} {
		g.BeginLoading(name)
		g.FinishLoading(name)
	}
	m := &Manifest{Entries: map[string]ManifestEntry{}}
	rows := ListStatus(g, m)
	if len(rows) != 3 || rows[0].Name != "lib1" || rows[1].Name != "lib2" || rows[2].Name != "lib10" {
		t.Fatalf("unexpected order: %+v", rows)
	}
}
