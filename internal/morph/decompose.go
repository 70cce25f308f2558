// Package morph converts per-vertex displacements between two same-topology
// meshes into skeletal joint weights.
package morph

import (
	"fmt"
	"math"

	"github.com/mesh-tools/weightbake/internal/mesh"
)

// MaxMovement is the hard ceiling on total per-axis displacement, in meters.
// The downstream animation format clamps joint positions to 5m on any axis,
// so a displacement whose L1 magnitude exceeds this cannot be represented.
const MaxMovement = 5.0

// NumJoints is the size of the decomposed weight vector: one joint per
// signed axis direction plus the slack joint.
const NumJoints = 7

// JointNames lists the joints each weight slot maps to, in slot order.
// Each axis gets a positive-direction and a negative-direction joint; the
// last entry is the slack joint, which should not move and absorbs the
// unused displacement budget so influences total 100%.
var JointNames = [NumJoints]string{
	// +X / -X
	"mHipLeft",
	"mHipRight",
	// +Y / -Y
	"mHindLimb1Left",
	"mHindLimb1Right",
	// +Z / -Z
	"mTail1",
	"mGroin",
	"mPelvis",
}

// BudgetError reports a displacement whose magnitude exceeds MaxMovement.
// It carries the offending vector for diagnostics.
type BudgetError struct {
	Displacement mesh.Vec3
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("position difference too great: (%g, %g, %g)",
		e.Displacement[0], e.Displacement[1], e.Displacement[2])
}

// Decompose maps a displacement vector onto the seven joint weights.
//
// Each axis contributes |component|/MaxMovement to either its positive- or
// negative-direction joint depending on sign; the other joint of the pair
// stays zero. The slack joint receives whatever is left so the weights sum
// to 1. Displacements over budget are a hard error, never clamped.
func Decompose(d mesh.Vec3) ([NumJoints]float64, error) {
	var weights [NumJoints]float64

	if d.AbsSum() > MaxMovement {
		return weights, &BudgetError{Displacement: d}
	}

	xIdx, yIdx, zIdx := 0, 2, 4
	if d[0] < 0 {
		xIdx = 1
	}
	if d[1] < 0 {
		yIdx = 3
	}
	if d[2] < 0 {
		zIdx = 5
	}
	weights[xIdx] = math.Abs(d[0]) / MaxMovement
	weights[yIdx] = math.Abs(d[1]) / MaxMovement
	weights[zIdx] = math.Abs(d[2]) / MaxMovement

	// Budget check above guarantees this stays non-negative.
	weights[NumJoints-1] = 1 - (weights[xIdx] + weights[yIdx] + weights[zIdx])

	return weights, nil
}
