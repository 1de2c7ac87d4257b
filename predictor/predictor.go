// Package predictor loads pre-trained price regression models exported as
// JSON and scores single feature rows against them.
package predictor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Regressor scores one feature row. FeatureNames lists the expected columns
// in order, or is empty when the artifact does not declare them.
type Regressor interface {
	Predict(features []float64) (float64, error)
	FeatureNames() []string
}

// Artifact kinds.
const (
	KindLinear       = "linear"
	KindTreeEnsemble = "tree_ensemble"
)

// ErrFeatureCount reports a feature row whose width does not match the model.
var ErrFeatureCount = errors.New("feature count mismatch")

type envelope struct {
	Kind string `json:"kind"`
}

// Load reads a model artifact from path.
func Load(path string) (Regressor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model %q: %w", path, err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", path, err)
	}
	return m, nil
}

// Decode parses a model artifact, dispatching on its "kind" field.
func Decode(r io.Reader) (Regressor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	switch env.Kind {
	case KindLinear:
		var m LinearModel
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode linear model: %w", err)
		}
		if err := m.validate(); err != nil {
			return nil, err
		}
		return &m, nil
	case KindTreeEnsemble:
		var m TreeEnsemble
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode tree ensemble: %w", err)
		}
		if err := m.validate(); err != nil {
			return nil, err
		}
		return &m, nil
	default:
		return nil, fmt.Errorf("unsupported model kind %q", env.Kind)
	}
}
