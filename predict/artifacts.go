package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names inside the model directory.
const (
	FeatureColumnsFile = "feature_columns.json"
	ModelFile          = "model.json"
	LabelEncodersFile  = "label_encoders.json"
)

var (
	ErrArtifactMissing = errors.New("model artifact missing")
	ErrSchemaMismatch  = errors.New("model artifact schema mismatch")
	ErrUnknownLabel    = errors.New("encoded label outside encoder classes")
)

// LabelEncoder maps encoded labels of one output field back to category names.
type LabelEncoder struct {
	Field   string   `json:"field"`
	Classes []string `json:"classes"`
}

func (e LabelEncoder) InverseTransform(code int) (string, error) {
	if code < 0 || code >= len(e.Classes) {
		return "", fmt.Errorf("%w: %s code %d", ErrUnknownLabel, e.Field, code)
	}
	return e.Classes[code], nil
}

// Artifacts are the fitted objects exported by the training pipeline.
type Artifacts struct {
	FeatureColumns []string
	Forest         *Forest
	// Encoders are in output order: Encoders[k] decodes forest output k.
	Encoders []LabelEncoder
}

// LoadArtifacts reads the three artifact files in dir. New checks they agree.
func LoadArtifacts(dir string) (*Artifacts, error) {
	var art Artifacts
	if err := readJSON(filepath.Join(dir, FeatureColumnsFile), &art.FeatureColumns); err != nil {
		return nil, err
	}
	art.Forest = &Forest{}
	if err := readJSON(filepath.Join(dir, ModelFile), art.Forest); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, LabelEncodersFile), &art.Encoders); err != nil {
		return nil, err
	}
	return &art, nil
}

func (a *Artifacts) Validate() error {
	if len(a.FeatureColumns) == 0 {
		return fmt.Errorf("%w: no feature columns", ErrSchemaMismatch)
	}
	if a.Forest == nil {
		return fmt.Errorf("%w: no classifier", ErrSchemaMismatch)
	}
	if err := a.Forest.validate(); err != nil {
		return err
	}
	if a.Forest.NFeatures != len(a.FeatureColumns) {
		return fmt.Errorf("%w: classifier expects %d features, column list has %d", ErrSchemaMismatch, a.Forest.NFeatures, len(a.FeatureColumns))
	}
	if len(a.Encoders) != a.Forest.Outputs() {
		return fmt.Errorf("%w: classifier has %d outputs, %d label encoders", ErrSchemaMismatch, a.Forest.Outputs(), len(a.Encoders))
	}
	seen := make(map[string]bool, len(a.Encoders))
	for k, enc := range a.Encoders {
		if enc.Field == "" || seen[enc.Field] {
			return fmt.Errorf("%w: encoder %d has empty or duplicate field %q", ErrSchemaMismatch, k, enc.Field)
		}
		seen[enc.Field] = true
		for _, code := range a.Forest.Classes[k] {
			if _, err := enc.InverseTransform(code); err != nil {
				return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
			}
		}
	}
	return nil
}

func readJSON(path string, dst interface{}) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSchemaMismatch, filepath.Base(path), err)
	}
	return nil
}
