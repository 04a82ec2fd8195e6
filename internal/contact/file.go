package contact

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML record from path. Keys missing from the file keep
// their Default values; unknown keys are rejected. The result is normalized.
func LoadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("contact: reading %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return Record{}, fmt.Errorf("contact: parsing %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a YAML record layered over Default.
func Parse(data []byte) (Record, error) {
	r := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return r, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		// Comment-only documents decode to EOF.
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return Record{}, err
	}
	return Normalize(r), nil
}
