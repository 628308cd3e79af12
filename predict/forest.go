package predict

import (
	"fmt"
)

// leaf marks a node without children, as in scikit-learn's tree arrays.
const leaf = -1

// Node is one entry of a fitted decision tree.
// Split nodes send x[Feature] <= Threshold to Left. Leaves carry per-output class weights.
type Node struct {
	Left      int         `json:"left"`
	Right     int         `json:"right"`
	Feature   int         `json:"feature"`
	Threshold float64     `json:"threshold"`
	Value     [][]float64 `json:"value,omitempty"`
}

func (n Node) isLeaf() bool { return n.Left == leaf }

type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is a multi-output random forest classifier.
// Classes[k] lists the encoded labels of output k in the order of the leaf weights.
type Forest struct {
	NFeatures int     `json:"n_features"`
	Classes   [][]int `json:"classes"`
	Trees     []Tree  `json:"trees"`
}

func (f *Forest) Outputs() int { return len(f.Classes) }

func (f *Forest) validate() error {
	if f.NFeatures <= 0 {
		return fmt.Errorf("%w: forest has no features", ErrSchemaMismatch)
	}
	if len(f.Classes) == 0 {
		return fmt.Errorf("%w: forest has no outputs", ErrSchemaMismatch)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("%w: forest has no trees", ErrSchemaMismatch)
	}
	for ti, tree := range f.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d is empty", ErrSchemaMismatch, ti)
		}
		for ni, n := range tree.Nodes {
			if n.isLeaf() {
				if len(n.Value) != len(f.Classes) {
					return fmt.Errorf("%w: tree %d node %d has %d outputs, want %d", ErrSchemaMismatch, ti, ni, len(n.Value), len(f.Classes))
				}
				for k, v := range n.Value {
					if len(v) != len(f.Classes[k]) {
						return fmt.Errorf("%w: tree %d node %d output %d has %d classes, want %d", ErrSchemaMismatch, ti, ni, k, len(v), len(f.Classes[k]))
					}
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= f.NFeatures {
				return fmt.Errorf("%w: tree %d node %d splits on feature %d", ErrSchemaMismatch, ti, ni, n.Feature)
			}
			// children always follow their parent in exported trees, which also rules out cycles
			if n.Left <= ni || n.Left >= len(tree.Nodes) || n.Right <= ni || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("%w: tree %d node %d has invalid children", ErrSchemaMismatch, ti, ni)
			}
		}
	}
	return nil
}

func (t Tree) leafFor(x []float64) Node {
	i := 0
	for {
		n := t.Nodes[i]
		if n.isLeaf() {
			return n
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Predict averages the normalised leaf weights of every tree and returns, per output,
// the encoded label with the highest mean probability. Ties go to the lower class index.
func (f *Forest) Predict(x []float64) ([]int, error) {
	if len(x) != f.NFeatures {
		return nil, fmt.Errorf("%w: sample has %d features, model expects %d", ErrSchemaMismatch, len(x), f.NFeatures)
	}

	proba := make([][]float64, len(f.Classes))
	for k := range f.Classes {
		proba[k] = make([]float64, len(f.Classes[k]))
	}

	for _, tree := range f.Trees {
		n := tree.leafFor(x)
		for k, weights := range n.Value {
			var sum float64
			for _, w := range weights {
				sum += w
			}
			if sum == 0 {
				continue
			}
			for c, w := range weights {
				proba[k][c] += w / sum
			}
		}
	}

	out := make([]int, len(f.Classes))
	for k, p := range proba {
		best := 0
		for c := 1; c < len(p); c++ {
			if p[c] > p[best] {
				best = c
			}
		}
		out[k] = f.Classes[k][best]
	}
	return out, nil
}
