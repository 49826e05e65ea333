// Package launch builds the VS Code debug configuration document for an Nx
// workspace. Entries are value types; each variant serializes to the flat
// field set the editor expects, in a fixed key order.
package launch

import (
	"bytes"
	"encoding/json"
)

// Version is the launch.json format version written by the generator.
const Version = "0.2.0"

// Kind identifies a launch entry variant.
type Kind string

const (
	KindService     Kind = "service"
	KindWebServer   Kind = "web-server"
	KindWebClient   Kind = "web-client"
	KindLibraryTest Kind = "library-test"
)

// Entry is one runnable or debuggable target in the configurations array.
type Entry interface {
	EntryName() string
	EntryKind() Kind
}

// ServiceEntry runs `nx serve <name>` under the node debugger.
type ServiceEntry struct {
	Type                   string   `json:"type"`
	Request                string   `json:"request"`
	Name                   string   `json:"name"`
	Program                string   `json:"program"`
	Args                   []string `json:"args"`
	Cwd                    string   `json:"cwd"`
	SkipFiles              []string `json:"skipFiles"`
	Console                string   `json:"console"`
	InternalConsoleOptions string   `json:"internalConsoleOptions"`
	SmartStep              bool     `json:"smartStep"`
}

func (e ServiceEntry) EntryName() string { return e.Name }
func (e ServiceEntry) EntryKind() Kind   { return KindService }

// WebServerEntry runs a web app's dev target through the package manager.
type WebServerEntry struct {
	Type                     string   `json:"type"`
	Request                  string   `json:"request"`
	Name                     string   `json:"name"`
	RuntimeExecutable        string   `json:"runtimeExecutable"`
	RuntimeArgs              []string `json:"runtimeArgs"`
	Console                  string   `json:"console"`
	InternalConsoleOptions   string   `json:"internalConsoleOptions"`
	SkipFiles                []string `json:"skipFiles"`
	SourceMaps               bool     `json:"sourceMaps"`
	OutFiles                 []string `json:"outFiles"`
	AutoAttachChildProcesses bool     `json:"autoAttachChildProcesses"`
	SmartStep                bool     `json:"smartStep"`
}

func (e WebServerEntry) EntryName() string { return e.Name }
func (e WebServerEntry) EntryKind() Kind   { return KindWebServer }

// WebClientEntry launches a browser against the dev server.
type WebClientEntry struct {
	Type                   string        `json:"type"`
	Request                string        `json:"request"`
	Name                   string        `json:"name"`
	URL                    string        `json:"url"`
	WebRoot                string        `json:"webRoot"`
	SmartStep              bool          `json:"smartStep"`
	SourceMaps             bool          `json:"sourceMaps"`
	SourceMapPathOverrides PathOverrides `json:"sourceMapPathOverrides"`
}

func (e WebClientEntry) EntryName() string { return e.Name }
func (e WebClientEntry) EntryKind() Kind   { return KindWebClient }

// LibraryTestEntry runs a library's test target under the node debugger.
type LibraryTestEntry struct {
	Type                   string   `json:"type"`
	Request                string   `json:"request"`
	Name                   string   `json:"name"`
	Program                string   `json:"program"`
	Args                   []string `json:"args"`
	Cwd                    string   `json:"cwd"`
	SkipFiles              []string `json:"skipFiles"`
	Console                string   `json:"console"`
	InternalConsoleOptions string   `json:"internalConsoleOptions"`
	SmartStep              bool     `json:"smartStep"`
}

func (e LibraryTestEntry) EntryName() string { return e.Name }
func (e LibraryTestEntry) EntryKind() Kind   { return KindLibraryTest }

// PathOverride maps a bundler source URL pattern to a local path.
type PathOverride struct {
	From string
	To   string
}

// PathOverrides is an ordered JSON object. Later duplicates of a key are
// dropped so the output stays a valid object.
type PathOverrides []PathOverride

// MarshalJSON encodes the overrides as an object, preserving order.
func (p PathOverrides) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	seen := make(map[string]bool, len(p))
	first := true
	for _, o := range p {
		if seen[o.From] {
			continue
		}
		seen[o.From] = true
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeString(&buf, o.From); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeString(&buf, o.To); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Lookup returns the target for from.
func (p PathOverrides) Lookup(from string) (string, bool) {
	for _, o := range p {
		if o.From == from {
			return o.To, true
		}
	}
	return "", false
}

// writeString writes s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// CompoundKind identifies a compound variant.
type CompoundKind string

const (
	CompoundFullstack CompoundKind = "fullstack"
	CompoundService   CompoundKind = "service"
)

// Compound groups launch entries by name so they start together.
type Compound struct {
	Name           string       `json:"name"`
	Configurations []string     `json:"configurations"`
	StopAll        bool         `json:"stopAll"`
	Kind           CompoundKind `json:"-"`
}

// Document is the root of launch.json.
type Document struct {
	Version        string     `json:"version"`
	Configurations []Entry    `json:"configurations"`
	Compounds      []Compound `json:"compounds"`
}

// Inventory holds the project names discovered per category, in discovery order.
type Inventory struct {
	Services  []string
	WebApps   []string
	Libraries []string
}
