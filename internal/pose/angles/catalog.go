package angles

import "github.com/romanvieito/gym-feedback-ai-9-4/internal/pose"

// Kind distinguishes how an angle is computed from its landmarks.
type Kind string

const (
	// KindVertex is a true joint flexion angle: the angle at the middle
	// point between the two limb vectors (3 points, optional 4th as a
	// plane reference).
	KindVertex Kind = "vertex"
	// KindAxis is a limb-to-horizontal angle computed from 2 points.
	KindAxis Kind = "axis"
)

// Regime selects the normalisation range for an angle. Body-plane
// angles (pelvis, shoulder line) are inherently ambiguous past ±90°,
// so they fold into [-90, 90]; all other angles fold into [-180, 180].
type Regime string

const (
	RegimeFull  Regime = "full"  // [-180, 180]
	RegimePlane Regime = "plane" // [-90, 90]
)

// Definition describes one named joint angle: which landmarks define
// it, how to interpret them, and how to align the raw value with an
// anatomically meaningful zero (straight limb = 0°, not the raw 180°).
type Definition struct {
	Name      string
	Kind      Kind
	Landmarks []string // ordered display names, resolved via pose.LandmarkIndex
	Offset    float64  // degrees, applied additively to the raw angle
	Sign      float64  // ±1, applied after the offset
	Regime    Regime
}

// Indices resolves the definition's landmark names to schema indices.
// The catalog is validated at init, so resolution cannot fail here.
func (d *Definition) Indices() []int {
	idx := make([]int, len(d.Landmarks))
	for i, name := range d.Landmarks {
		idx[i] = pose.LandmarkIndex(name)
	}
	return idx
}

// Catalog is the declarative table of joint angles used for pose
// comparison. Vertex definitions for hips and shoulders carry a 4th
// landmark that establishes the comparison plane; it is a tie-break
// reference only and does not contribute to the vertex angle itself.
var Catalog = []Definition{
	{Name: "left_elbow", Kind: KindVertex, Landmarks: []string{"Left Shoulder", "Left Elbow", "Left Wrist"}, Offset: -180, Sign: -1, Regime: RegimeFull},
	{Name: "right_elbow", Kind: KindVertex, Landmarks: []string{"Right Shoulder", "Right Elbow", "Right Wrist"}, Offset: -180, Sign: -1, Regime: RegimeFull},
	{Name: "left_knee", Kind: KindVertex, Landmarks: []string{"Left Hip", "Left Knee", "Left Ankle"}, Offset: -180, Sign: -1, Regime: RegimeFull},
	{Name: "right_knee", Kind: KindVertex, Landmarks: []string{"Right Hip", "Right Knee", "Right Ankle"}, Offset: -180, Sign: -1, Regime: RegimeFull},
	{Name: "left_shoulder", Kind: KindVertex, Landmarks: []string{"Left Elbow", "Left Shoulder", "Left Hip", "Right Shoulder"}, Offset: 0, Sign: 1, Regime: RegimeFull},
	{Name: "right_shoulder", Kind: KindVertex, Landmarks: []string{"Right Elbow", "Right Shoulder", "Right Hip", "Left Shoulder"}, Offset: 0, Sign: 1, Regime: RegimeFull},
	{Name: "left_hip", Kind: KindVertex, Landmarks: []string{"Left Shoulder", "Left Hip", "Left Knee", "Right Hip"}, Offset: -180, Sign: -1, Regime: RegimeFull},
	{Name: "right_hip", Kind: KindVertex, Landmarks: []string{"Right Shoulder", "Right Hip", "Right Knee", "Left Hip"}, Offset: -180, Sign: -1, Regime: RegimeFull},
	{Name: "left_wrist", Kind: KindVertex, Landmarks: []string{"Left Elbow", "Left Wrist", "Left Index"}, Offset: -180, Sign: -1, Regime: RegimeFull},
	{Name: "right_wrist", Kind: KindVertex, Landmarks: []string{"Right Elbow", "Right Wrist", "Right Index"}, Offset: -180, Sign: -1, Regime: RegimeFull},
	{Name: "left_ankle", Kind: KindVertex, Landmarks: []string{"Left Knee", "Left Ankle", "Left Foot Index"}, Offset: -90, Sign: 1, Regime: RegimeFull},
	{Name: "right_ankle", Kind: KindVertex, Landmarks: []string{"Right Knee", "Right Ankle", "Right Foot Index"}, Offset: -90, Sign: 1, Regime: RegimeFull},
	{Name: "pelvis", Kind: KindAxis, Landmarks: []string{"Left Hip", "Right Hip"}, Offset: 0, Sign: 1, Regime: RegimePlane},
	{Name: "shoulder_line", Kind: KindAxis, Landmarks: []string{"Left Shoulder", "Right Shoulder"}, Offset: 0, Sign: 1, Regime: RegimePlane},
	{Name: "head_tilt", Kind: KindAxis, Landmarks: []string{"Left Ear", "Right Ear"}, Offset: 0, Sign: 1, Regime: RegimePlane},
}

// byName indexes the catalog for Lookup.
var byName = func() map[string]*Definition {
	m := make(map[string]*Definition, len(Catalog))
	for i := range Catalog {
		d := &Catalog[i]
		for _, name := range d.Landmarks {
			if pose.LandmarkIndex(name) < 0 {
				panic("angles: definition " + d.Name + " references unknown landmark " + name)
			}
		}
		m[d.Name] = d
	}
	return m
}()

// Lookup returns the definition for a named angle, or nil.
func Lookup(name string) *Definition {
	return byName[name]
}
