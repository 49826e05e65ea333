package launch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncode_Golden(t *testing.T) {
	inv := Inventory{
		Services:  []string{"auth"},
		WebApps:   []string{"site"},
		Libraries: []string{"ui"},
	}

	got, err := Encode(Assemble(inv, DefaultTemplates()))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	golden, err := os.ReadFile(filepath.Join("testdata", "auth-site-ui.golden.json"))
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	want := bytes.TrimRight(golden, "\n")

	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
	if bytes.HasSuffix(got, []byte("\n")) {
		t.Error("encoded document should not end with a newline")
	}
}

func TestEncode_Deterministic(t *testing.T) {
	inv := Inventory{
		Services:  []string{"auth", "billing"},
		WebApps:   []string{"admin", "site"},
		Libraries: []string{"ui", "utils"},
	}

	first, err := Encode(Assemble(inv, DefaultTemplates()))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	second, err := Encode(Assemble(inv, DefaultTemplates()))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("encoding the same inventory twice should be byte-identical")
	}
}

func TestEncode_EmptyInventory(t *testing.T) {
	got, err := Encode(Assemble(Inventory{}, DefaultTemplates()))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := "{\n  \"version\": \"0.2.0\",\n  \"configurations\": [],\n  \"compounds\": []\n}"
	if string(got) != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestEncode_NilSlices(t *testing.T) {
	got, err := Encode(Document{Version: Version})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if bytes.Contains(got, []byte("null")) {
		t.Errorf("nil slices should encode as empty arrays, got %s", got)
	}
}

func TestAssemble_Counts(t *testing.T) {
	tests := []struct {
		n, m, k int
	}{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 0},
		{3, 2, 4},
		{5, 3, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%d_%d", tt.n, tt.m, tt.k), func(t *testing.T) {
			inv := Inventory{
				Services:  names("svc", tt.n),
				WebApps:   names("web", tt.m),
				Libraries: names("lib", tt.k),
			}

			doc := Assemble(inv, DefaultTemplates())

			want := Stats{
				Services:         tt.n,
				WebServers:       tt.m,
				WebClients:       tt.m,
				Libraries:        tt.k,
				Fullstack:        tt.m,
				ServiceCompounds: tt.n * tt.m,
			}
			if diff := cmp.Diff(want, doc.Stats()); diff != "" {
				t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
			}
			if got := len(doc.Configurations); got != tt.n+2*tt.m+tt.k {
				t.Errorf("len(Configurations) = %d, want %d", got, tt.n+2*tt.m+tt.k)
			}
			if got := len(doc.Compounds); got != tt.m+tt.n*tt.m {
				t.Errorf("len(Compounds) = %d, want %d", got, tt.m+tt.n*tt.m)
			}
			if err := doc.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}

func TestAssemble_Order(t *testing.T) {
	inv := Inventory{
		Services:  []string{"auth", "billing"},
		WebApps:   []string{"admin", "site"},
		Libraries: []string{"ui"},
	}

	doc := Assemble(inv, DefaultTemplates())

	wantNames := []string{
		"auth", "billing",
		"admin (server)", "admin (client)",
		"site (server)", "site (client)",
		"ui",
	}
	if diff := cmp.Diff(wantNames, doc.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	var compoundNames []string
	for _, c := range doc.Compounds {
		compoundNames = append(compoundNames, c.Name)
	}
	wantCompounds := []string{
		"admin (fullstack)", "site (fullstack)",
		"admin (auth)", "admin (billing)",
		"site (auth)", "site (billing)",
	}
	if diff := cmp.Diff(wantCompounds, compoundNames); diff != "" {
		t.Errorf("compound names mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_ServiceCompoundMembers(t *testing.T) {
	doc := Assemble(Inventory{Services: []string{"auth"}, WebApps: []string{"site"}}, DefaultTemplates())

	if len(doc.Compounds) != 2 {
		t.Fatalf("len(Compounds) = %d, want 2", len(doc.Compounds))
	}
	got := doc.Compounds[1]
	want := Compound{
		Name:           "site (auth)",
		Configurations: []string{"site (server)", "site (client)", "auth"},
		StopAll:        true,
		Kind:           CompoundService,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("service compound mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_DanglingReference(t *testing.T) {
	doc := Document{
		Version:        Version,
		Configurations: []Entry{DefaultTemplates().Service("auth")},
		Compounds:      []Compound{FullstackCompound("site")},
	}

	err := doc.Validate()
	if !errors.Is(err, ErrDanglingReference) {
		t.Fatalf("Validate() error = %v, want ErrDanglingReference", err)
	}
}

func TestValidate_DuplicateName(t *testing.T) {
	tmpl := DefaultTemplates()
	doc := Assemble(Inventory{Services: []string{"shared"}, Libraries: []string{"shared"}}, tmpl)

	err := doc.Validate()
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("Validate() error = %v, want ErrDuplicateName", err)
	}
}

func TestEncode_RoundTripsAsJSON(t *testing.T) {
	doc := Assemble(Inventory{Services: []string{"auth"}, WebApps: []string{"site"}}, DefaultTemplates())
	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var decoded struct {
		Version        string           `json:"version"`
		Configurations []map[string]any `json:"configurations"`
		Compounds      []Compound       `json:"compounds"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	known := make(map[string]bool)
	for _, c := range decoded.Configurations {
		known[c["name"].(string)] = true
	}
	for _, c := range decoded.Compounds {
		for _, member := range c.Configurations {
			if !known[member] {
				t.Errorf("compound %q references unknown configuration %q", c.Name, member)
			}
		}
	}
}

func names(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return out
}
