package predictor

import "fmt"

// LinearModel is intercept + coefficients·features.
type LinearModel struct {
	Kind         string    `json:"kind"`
	Features     []string  `json:"feature_names,omitempty"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

func (m *LinearModel) validate() error {
	if len(m.Coefficients) == 0 {
		return fmt.Errorf("linear model has no coefficients")
	}
	if len(m.Features) > 0 && len(m.Features) != len(m.Coefficients) {
		return fmt.Errorf("linear model declares %d features but %d coefficients",
			len(m.Features), len(m.Coefficients))
	}
	return nil
}

// FeatureNames returns the declared feature columns.
func (m *LinearModel) FeatureNames() []string {
	return m.Features
}

// Predict scores one row.
func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Coefficients) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), len(m.Coefficients))
	}
	y := m.Intercept
	for i, c := range m.Coefficients {
		y += c * features[i]
	}
	return y, nil
}
