package morph

import (
	"errors"
	"math"
	"testing"

	"github.com/mesh-tools/weightbake/internal/mesh"
)

func TestDecomposeValues(t *testing.T) {
	tests := []struct {
		name     string
		d        mesh.Vec3
		expected [NumJoints]float64
	}{
		{
			name:     "zero displacement is all slack",
			d:        mesh.Vec3{0, 0, 0},
			expected: [NumJoints]float64{0, 0, 0, 0, 0, 0, 1},
		},
		{
			name:     "positive X",
			d:        mesh.Vec3{2.5, 0, 0},
			expected: [NumJoints]float64{0.5, 0, 0, 0, 0, 0, 0.5},
		},
		{
			name:     "negative X",
			d:        mesh.Vec3{-2.5, 0, 0},
			expected: [NumJoints]float64{0, 0.5, 0, 0, 0, 0, 0.5},
		},
		{
			name:     "negative Y",
			d:        mesh.Vec3{0, -1, 0},
			expected: [NumJoints]float64{0, 0, 0, 0.2, 0, 0, 0.8},
		},
		{
			name:     "positive Z",
			d:        mesh.Vec3{0, 0, 1},
			expected: [NumJoints]float64{0, 0, 0, 0, 0.2, 0, 0.8},
		},
		{
			name:     "mixed signs",
			d:        mesh.Vec3{1, -1, 2},
			expected: [NumJoints]float64{0.2, 0, 0, 0.2, 0.4, 0, 0.2},
		},
		{
			name:     "full budget leaves no slack",
			d:        mesh.Vec3{5, 0, 0},
			expected: [NumJoints]float64{1, 0, 0, 0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompose(tt.d)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i := range got {
				if math.Abs(got[i]-tt.expected[i]) > 1e-12 {
					t.Errorf("weight[%d] (%s) = %g, want %g",
						i, JointNames[i], got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestDecomposeSumsToOne(t *testing.T) {
	vecs := []mesh.Vec3{
		{0.1, 0.2, 0.3},
		{-1.5, 2.0, -0.25},
		{4.9, 0.05, 0},
		{-1, -1, -1},
	}
	for _, d := range vecs {
		weights, err := Decompose(d)
		if err != nil {
			t.Fatalf("Decompose(%v): %v", d, err)
		}
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("Decompose(%v) weights sum to %g, want 1", d, sum)
		}
	}
}

func TestDecomposePairExclusivity(t *testing.T) {
	// Each axis feeds exactly one joint of its pair.
	weights, err := Decompose(mesh.Vec3{1, -1, 1})
	if err != nil {
		t.Fatal(err)
	}
	pairs := [][2]int{{0, 1}, {2, 3}, {4, 5}}
	for _, p := range pairs {
		if weights[p[0]] != 0 && weights[p[1]] != 0 {
			t.Errorf("joints %s and %s both nonzero: %g, %g",
				JointNames[p[0]], JointNames[p[1]], weights[p[0]], weights[p[1]])
		}
	}
}

func TestDecomposeOverBudget(t *testing.T) {
	d := mesh.Vec3{3, 2, 0.5} // L1 magnitude 5.5
	_, err := Decompose(d)
	if err == nil {
		t.Fatal("expected error for over-budget displacement")
	}

	var budgetErr *BudgetError
	if !errors.As(err, &budgetErr) {
		t.Fatalf("error type = %T, want *BudgetError", err)
	}
	if budgetErr.Displacement != d {
		t.Errorf("error carries %v, want %v", budgetErr.Displacement, d)
	}
}

func TestDecomposeBudgetBoundary(t *testing.T) {
	// Exactly at the budget is allowed; the L1 measure is what counts, so a
	// Euclidean length under 5 can still be rejected.
	if _, err := Decompose(mesh.Vec3{2, 2, 1}); err != nil {
		t.Errorf("L1 = 5.0 should be in budget, got %v", err)
	}
	if _, err := Decompose(mesh.Vec3{3, 3, 0}); err == nil {
		t.Error("L1 = 6.0 should be over budget even though length < 5")
	}
}
