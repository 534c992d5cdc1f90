// Package templates holds the fixed article template table, the stub loader
// and the HTML renderer.
package templates

import "sort"

// Descriptor ties a template id to its render template and JSON stub.
type Descriptor struct {
	ID           int    `json:"id"`
	Key          string `json:"key"`
	TemplateFile string `json:"jinja_template"`
	StubFile     string `json:"stub"`
}

var descriptors = map[int]Descriptor{
	1: {ID: 1, Key: "buzzfeed", TemplateFile: "buzzfeed.jinja.html", StubFile: "buzzfeed-master.json"},
	2: {ID: 2, Key: "journal", TemplateFile: "journal.jinja.html", StubFile: "journal-master.json"},
	3: {ID: 3, Key: "modern", TemplateFile: "modern.jinja.html", StubFile: "modern-master.json"},
}

// Lookup returns the descriptor for id.
func Lookup(id int) (Descriptor, bool) {
	d, ok := descriptors[id]
	return d, ok
}

// All returns every descriptor ordered by id.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
