package compare

import (
	"math"
	"sort"

	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose/angles"
)

// DefaultAnomalyThreshold is the circular distance above which a joint
// angle counts as anomalous.
const DefaultAnomalyThreshold = 0.1

// Result summarises one live-vs-reference comparison. Each comparison
// fully replaces the previous result; results are never merged.
type Result struct {
	// MatchPercentage is the aggregate 0..100 score.
	MatchPercentage float64
	// AnomalousJoints lists the landmark indices implicated by angles
	// whose circular distance exceeded the threshold, deduplicated and
	// sorted ascending.
	AnomalousJoints []int
	// Color encodes MatchPercentage on the red→yellow→green scale.
	Color Color
}

// Comparator scores live snapshots against reference snapshots using
// the circular (cosine) distance between catalog angles.
type Comparator struct {
	// Threshold is the anomaly threshold for circular distance.
	// Zero means DefaultAnomalyThreshold.
	Threshold float64
}

// Compare computes per-joint angle deltas between the two snapshots.
// Angles that fail to resolve on either side are skipped, never
// penalised. Returns the zero-value "no opinion" result when either
// snapshot is missing.
func (c *Comparator) Compare(live, reference *pose.Snapshot) Result {
	if live == nil || reference == nil {
		return Result{MatchPercentage: 0, Color: ColorFor(0)}
	}

	threshold := c.Threshold
	if threshold == 0 {
		threshold = DefaultAnomalyThreshold
	}

	anomalous := make(map[int]bool)
	for i := range angles.Catalog {
		def := &angles.Catalog[i]
		a := def.Compute(&live.Landmarks)
		b := def.Compute(&reference.Landmarks)
		if math.IsNaN(a) || math.IsNaN(b) {
			continue
		}
		if CircularDistance(a, b) > threshold {
			for _, idx := range def.Indices() {
				anomalous[idx] = true
			}
		}
	}

	joints := make([]int, 0, len(anomalous))
	for idx := range anomalous {
		joints = append(joints, idx)
	}
	sort.Ints(joints)

	percent := MatchPercentage(len(joints), pose.NumLandmarks)
	return Result{
		MatchPercentage: percent,
		AnomalousJoints: joints,
		Color:           ColorFor(percent),
	}
}

// CircularDistance is the wrap-around-invariant difference between two
// angles in degrees: one minus the cosine of the angular difference,
// expanded as 1 − cos(a)·cos(b) − sin(a)·sin(b). A 10° deviation near
// 0° and a 10° deviation near 180° score identically. Range [0, 2].
func CircularDistance(aDeg, bDeg float64) float64 {
	a := aDeg * math.Pi / 180
	b := bDeg * math.Pi / 180
	return 1 - math.Cos(a)*math.Cos(b) - math.Sin(a)*math.Sin(b)
}

// MatchPercentage maps an anomalous-joint count to the 0..100 score.
// The ×200 scaling reaches 0% once half the joints are anomalous.
func MatchPercentage(anomalousCount, totalJoints int) float64 {
	if totalJoints <= 0 {
		return 0
	}
	p := 100 - float64(anomalousCount)/float64(totalJoints)*200
	if p < 0 {
		return 0
	}
	return p
}
