package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON writes the document geometry as indented JSON. The output is
// the ground-truth record: stable key order, deterministic for equal inputs.
func WriteDebugJSON(doc *Document, path string) error {
	if doc == nil {
		return nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
