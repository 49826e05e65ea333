package launch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Assemble builds the document for inv. Ordering: service entries, then per
// web app its server and client entries (plus a fullstack compound), then
// library entries, then one service compound per (web app, service) pair.
func Assemble(inv Inventory, t Templates) Document {
	configurations := make([]Entry, 0, len(inv.Services)+2*len(inv.WebApps)+len(inv.Libraries))
	compounds := make([]Compound, 0, len(inv.WebApps)*(1+len(inv.Services)))

	for _, service := range inv.Services {
		configurations = append(configurations, t.Service(service))
	}

	for _, web := range inv.WebApps {
		configurations = append(configurations, t.WebServer(web), t.WebClient(web))
		compounds = append(compounds, FullstackCompound(web))
	}

	for _, lib := range inv.Libraries {
		configurations = append(configurations, t.LibraryTest(lib))
	}

	for _, web := range inv.WebApps {
		for _, service := range inv.Services {
			compounds = append(compounds, ServiceCompound(web, service))
		}
	}

	return Document{
		Version:        Version,
		Configurations: configurations,
		Compounds:      compounds,
	}
}

// Stats counts a document's entries per variant.
type Stats struct {
	Services         int
	WebServers       int
	WebClients       int
	Libraries        int
	Fullstack        int
	ServiceCompounds int
}

// Configurations is the total number of launch entries.
func (s Stats) Configurations() int {
	return s.Services + s.WebServers + s.WebClients + s.Libraries
}

// Compounds is the total number of compound entries.
func (s Stats) Compounds() int {
	return s.Fullstack + s.ServiceCompounds
}

// Stats counts the document's entries per variant.
func (d Document) Stats() Stats {
	var s Stats
	for _, e := range d.Configurations {
		switch e.EntryKind() {
		case KindService:
			s.Services++
		case KindWebServer:
			s.WebServers++
		case KindWebClient:
			s.WebClients++
		case KindLibraryTest:
			s.Libraries++
		}
	}
	for _, c := range d.Compounds {
		switch c.Kind {
		case CompoundFullstack:
			s.Fullstack++
		case CompoundService:
			s.ServiceCompounds++
		}
	}
	return s
}

// Names returns the entry names in document order.
func (d Document) Names() []string {
	names := make([]string, len(d.Configurations))
	for i, e := range d.Configurations {
		names[i] = e.EntryName()
	}
	return names
}

// Validate checks that entry names are unique and that every compound
// member names an entry. All problems are reported in one error.
func (d Document) Validate() error {
	known := make(map[string]int, len(d.Configurations))
	var errs []error
	for _, name := range d.Names() {
		known[name]++
		if known[name] == 2 {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateName, name))
		}
	}
	for _, c := range d.Compounds {
		for _, member := range c.Configurations {
			if known[member] == 0 {
				errs = append(errs, fmt.Errorf("%w: %q in %q", ErrDanglingReference, member, c.Name))
			}
		}
	}
	return errors.Join(errs...)
}

// Encode serializes the document as 2-space indented JSON without HTML
// escaping and without a trailing newline.
func Encode(doc Document) ([]byte, error) {
	if doc.Configurations == nil {
		doc.Configurations = []Entry{}
	}
	if doc.Compounds == nil {
		doc.Compounds = []Compound{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
