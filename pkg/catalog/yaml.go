package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/helmcode/healthai/pkg/model"
)

//go:embed data/reference.yaml
var defaultCatalog []byte

// document is the on-disk layout of a catalog file.
type document struct {
	Symptoms      []model.SymptomRecord     `yaml:"symptoms"`
	Conditions    []model.ConditionPattern  `yaml:"conditions"`
	LabReferences []model.LabReferenceEntry `yaml:"lab_references"`
}

// Default returns the built-in reference catalog.
func Default() (*Store, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML catalog. Unknown fields and values of the wrong type (for
// example a non-numeric minimum) are configuration errors.
func Parse(data []byte) (*Store, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(doc.Symptoms, doc.Conditions, doc.LabReferences)
}

// Marshal encodes the store in the catalog file layout.
func (s *Store) Marshal() ([]byte, error) {
	doc := document{
		Symptoms:      s.symptoms,
		Conditions:    s.conditions,
		LabReferences: s.labs,
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	return out, nil
}
