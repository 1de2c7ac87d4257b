package predictor

import "fmt"

// TreeEnsemble is an additive ensemble of binary regression trees, the shape
// gradient boosting libraries export: the prediction is BaseScore plus the
// leaf value reached in every tree.
type TreeEnsemble struct {
	Kind      string   `json:"kind"`
	Features  []string `json:"feature_names,omitempty"`
	NFeatures int      `json:"num_features"`
	BaseScore float64  `json:"base_score"`
	Trees     []Tree   `json:"trees"`
}

// Tree is a flat node array; node 0 is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is either a split (go Left when x[Feature] <= Threshold) or a leaf.
type Node struct {
	Leaf      bool    `json:"leaf,omitempty"`
	Value     float64 `json:"value,omitempty"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
}

func (m *TreeEnsemble) validate() error {
	if len(m.Trees) == 0 {
		return fmt.Errorf("tree ensemble has no trees")
	}
	if m.NFeatures == 0 {
		m.NFeatures = len(m.Features)
	}
	if len(m.Features) > 0 && len(m.Features) != m.NFeatures {
		return fmt.Errorf("tree ensemble declares %d feature names but num_features %d",
			len(m.Features), m.NFeatures)
	}
	for ti, t := range m.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, n := range t.Nodes {
			if n.Leaf {
				continue
			}
			if n.Left <= ni || n.Right <= ni || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
				return fmt.Errorf("tree %d node %d: children must point forward within the tree", ti, ni)
			}
			if n.Feature < 0 || (m.NFeatures > 0 && n.Feature >= m.NFeatures) {
				return fmt.Errorf("tree %d node %d: feature index %d out of range", ti, ni, n.Feature)
			}
		}
	}
	return nil
}

// FeatureNames returns the declared feature columns.
func (m *TreeEnsemble) FeatureNames() []string {
	return m.Features
}

// Predict walks every tree and sums the reached leaves.
func (m *TreeEnsemble) Predict(features []float64) (float64, error) {
	if m.NFeatures > 0 && len(features) != m.NFeatures {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), m.NFeatures)
	}

	y := m.BaseScore
	for ti := range m.Trees {
		nodes := m.Trees[ti].Nodes
		i := 0
		for !nodes[i].Leaf {
			n := nodes[i]
			if n.Feature >= len(features) {
				return 0, fmt.Errorf("%w: tree %d needs feature %d", ErrFeatureCount, ti, n.Feature)
			}
			if features[n.Feature] <= n.Threshold {
				i = n.Left
			} else {
				i = n.Right
			}
		}
		y += nodes[i].Value
	}
	return y, nil
}
