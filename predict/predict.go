// Package predict runs the fitted disease classifier on a symptom sample.
package predict

import (
	"fmt"

	"github.com/ariebrainware/biosecure-portal/model"
)

// Predictor returns one decoded label per configured output field.
type Predictor interface {
	Predict(in model.SymptomInput) (map[string]string, error)
	// OutputFields lists the decoded fields in declared order.
	OutputFields() []string
}

// Model is loaded once at start and only read afterwards, so it is safe for concurrent use.
type Model struct {
	art *Artifacts
}

// New wraps already loaded artifacts after checking they agree with each other.
func New(art *Artifacts) (*Model, error) {
	if art == nil {
		return nil, fmt.Errorf("%w: nil artifacts", ErrSchemaMismatch)
	}
	if err := art.Validate(); err != nil {
		return nil, err
	}
	return &Model{art: art}, nil
}

// Load reads the artifacts in dir.
func Load(dir string) (*Model, error) {
	art, err := LoadArtifacts(dir)
	if err != nil {
		return nil, err
	}
	return New(art)
}

func (m *Model) OutputFields() []string {
	fields := make([]string, len(m.art.Encoders))
	for i, enc := range m.art.Encoders {
		fields[i] = enc.Field
	}
	return fields
}

func (m *Model) Predict(in model.SymptomInput) (map[string]string, error) {
	row := Align(OneHot(in), m.art.FeatureColumns)

	codes, err := m.art.Forest.Predict(row)
	if err != nil {
		return nil, err
	}

	decoded := make(map[string]string, len(codes))
	for k, enc := range m.art.Encoders {
		label, err := enc.InverseTransform(codes[k])
		if err != nil {
			return nil, err
		}
		decoded[enc.Field] = label
	}
	return decoded, nil
}

// Unavailable stands in for a model whose artifacts failed to load.
type Unavailable struct {
	Err error
}

func (u Unavailable) Predict(model.SymptomInput) (map[string]string, error) {
	return nil, u.Err
}

func (Unavailable) OutputFields() []string { return nil }
