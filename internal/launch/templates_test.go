package launch

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTemplates_Names(t *testing.T) {
	tmpl := DefaultTemplates()

	if got := tmpl.Service("auth").EntryName(); got != "auth" {
		t.Errorf("Service name = %q, want %q", got, "auth")
	}
	if got := tmpl.WebServer("site").EntryName(); got != "site (server)" {
		t.Errorf("WebServer name = %q, want %q", got, "site (server)")
	}
	if got := tmpl.WebClient("site").EntryName(); got != "site (client)" {
		t.Errorf("WebClient name = %q, want %q", got, "site (client)")
	}
	if got := tmpl.LibraryTest("ui").EntryName(); got != "ui" {
		t.Errorf("LibraryTest name = %q, want %q", got, "ui")
	}
}

func TestTemplates_Kinds(t *testing.T) {
	tmpl := DefaultTemplates()
	tests := []struct {
		entry Entry
		want  Kind
	}{
		{tmpl.Service("a"), KindService},
		{tmpl.WebServer("a"), KindWebServer},
		{tmpl.WebClient("a"), KindWebClient},
		{tmpl.LibraryTest("a"), KindLibraryTest},
	}
	for _, tt := range tests {
		if got := tt.entry.EntryKind(); got != tt.want {
			t.Errorf("EntryKind() = %q, want %q", got, tt.want)
		}
	}
}

func TestTemplates_Custom(t *testing.T) {
	tmpl := Templates{
		WebDir:         "packages/frontends",
		ClientURL:      "http://localhost:4200",
		PackageManager: "npx",
		TestPattern:    "smoke.spec.ts",
	}

	server := tmpl.WebServer("shop")
	if server.RuntimeExecutable != "npx" {
		t.Errorf("RuntimeExecutable = %q, want %q", server.RuntimeExecutable, "npx")
	}
	if want := "${workspaceFolder}/dist/packages/frontends/shop/**/*.(m|c|)js"; server.OutFiles[0] != want {
		t.Errorf("OutFiles[0] = %q, want %q", server.OutFiles[0], want)
	}

	client := tmpl.WebClient("shop")
	if client.URL != "http://localhost:4200" {
		t.Errorf("URL = %q, want %q", client.URL, "http://localhost:4200")
	}
	if want := "${workspaceFolder}/packages/frontends/shop"; client.WebRoot != want {
		t.Errorf("WebRoot = %q, want %q", client.WebRoot, want)
	}

	lib := tmpl.LibraryTest("core")
	if lib.Args[2] != "--testPathPattern=smoke.spec.ts" {
		t.Errorf("Args[2] = %q, want %q", lib.Args[2], "--testPathPattern=smoke.spec.ts")
	}
}

func TestTemplates_FreshSlices(t *testing.T) {
	tmpl := DefaultTemplates()
	a := tmpl.Service("a")
	b := tmpl.Service("b")

	a.SkipFiles[0] = "mutated"
	if b.SkipFiles[0] == "mutated" {
		t.Error("entries should not share skipFiles backing arrays")
	}
}

func TestWebClient_PathOverrides(t *testing.T) {
	client := DefaultTemplates().WebClient("site")

	want := PathOverrides{
		{From: "webpack://site/*", To: "${webRoot}/src/*"},
		{From: "webpack://site/./src/*", To: "${webRoot}/src/*"},
		{From: "webpack:///./*", To: "${webRoot}/*"},
		{From: "webpack:///src/*", To: "${webRoot}/src/*"},
		{From: "webpack:///*", To: "*"},
	}
	if diff := cmp.Diff(want, client.SourceMapPathOverrides); diff != "" {
		t.Errorf("SourceMapPathOverrides mismatch (-want +got):\n%s", diff)
	}

	if to, ok := client.SourceMapPathOverrides.Lookup("webpack:///*"); !ok || to != "*" {
		t.Errorf("Lookup(webpack:///*) = %q, %v; want %q, true", to, ok, "*")
	}
	if _, ok := client.SourceMapPathOverrides.Lookup("webpack://other/*"); ok {
		t.Error("Lookup() should miss unknown keys")
	}
}

func TestPathOverrides_MarshalJSON(t *testing.T) {
	p := PathOverrides{
		{From: "b", To: "<2>"},
		{From: "a", To: "1&"},
		{From: "b", To: "ignored"},
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	got := string(data)
	if !strings.HasPrefix(got, `{"b":`) {
		t.Errorf("key order not preserved: %s", got)
	}
	if strings.Contains(got, "ignored") {
		t.Errorf("duplicate key should be dropped: %s", got)
	}

	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if decoded["b"] != "<2>" || decoded["a"] != "1&" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestPathOverrides_EncodeKeepsAngleBrackets(t *testing.T) {
	doc := Document{
		Version:        Version,
		Configurations: []Entry{DefaultTemplates().Service("auth")},
	}
	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.Contains(string(data), `"<node_internals>/**"`) {
		t.Errorf("expected unescaped <node_internals>, got:\n%s", data)
	}
}

func TestCompounds(t *testing.T) {
	full := FullstackCompound("site")
	if full.Name != "site (fullstack)" || !full.StopAll {
		t.Errorf("FullstackCompound() = %+v", full)
	}
	if diff := cmp.Diff([]string{"site (server)", "site (client)"}, full.Configurations); diff != "" {
		t.Errorf("FullstackCompound members mismatch (-want +got):\n%s", diff)
	}

	svc := ServiceCompound("site", "auth")
	if svc.Name != "site (auth)" || svc.Kind != CompoundService {
		t.Errorf("ServiceCompound() = %+v", svc)
	}
}
