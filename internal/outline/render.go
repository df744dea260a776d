package outline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// WriteText prints one entry per line; members are indented under their parent.
func WriteText(w io.Writer, entries []Entry) error {
	depth := make(map[uuid.UUID]int, len(entries))
	for _, e := range entries {
		d := 0
		if e.Parent != uuid.Nil {
			d = depth[e.Parent] + 1
		}
		depth[e.ID] = d
		pub := ""
		if e.Pub {
			pub = "pub "
		}
		name := e.Name
		if name == "" {
			name = "_"
		}
		if _, err := fmt.Fprintf(w, "%*s%s%s %s  %d:%d  %s\n", 2*d, "", pub, e.Kind, name, e.Line, e.Col, e.ID); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes {"path": ..., "decls": [...]}.
func WriteJSON(w io.Writer, path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Path  string  `json:"path"`
		Decls []Entry `json:"decls"`
	}{path, entries})
}
