package angles

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose"
)

// MinResolveVisibility is the estimator confidence below which a
// landmark does not resolve for angle computation. An angle with fewer
// than its minimum resolvable points reports NaN, a soft failure:
// downstream scoring treats NaN as "no opinion for this joint".
const MinResolveVisibility = 0.5

// Compute returns the named angle in degrees for a landmark set, or
// NaN when the angle cannot be resolved. The result is offset- and
// sign-adjusted, then folded into the definition's regime range.
func Compute(name string, set *pose.LandmarkSet) float64 {
	def := Lookup(name)
	if def == nil || set == nil {
		return math.NaN()
	}
	return def.Compute(set)
}

// Compute evaluates the definition against a landmark set.
func (d *Definition) Compute(set *pose.LandmarkSet) float64 {
	points, ok := resolve(d, set)
	if !ok {
		return math.NaN()
	}

	var raw float64
	switch d.Kind {
	case KindVertex:
		raw = vertexAngle(points)
	case KindAxis:
		raw = axisAngle(points[0], points[1])
	default:
		return math.NaN()
	}

	adjusted := (raw + d.Offset) * d.Sign
	return fold(adjusted, d.Regime)
}

// resolve maps the definition's landmark names to 3D positions,
// rejecting points below the visibility floor. Vertex angles need the
// first three points; the optional 4th (plane reference) may drop out
// without failing the angle.
func resolve(d *Definition, set *pose.LandmarkSet) ([]r3.Vec, bool) {
	minPoints := 2
	if d.Kind == KindVertex {
		minPoints = 3
	}

	points := make([]r3.Vec, 0, len(d.Landmarks))
	for i, name := range d.Landmarks {
		idx := pose.LandmarkIndex(name)
		lm := set[idx]
		if lm.Visibility < MinResolveVisibility {
			if i < minPoints {
				return nil, false
			}
			// Optional plane reference missing: compute without it.
			break
		}
		points = append(points, r3.Vec{X: lm.X, Y: lm.Y, Z: lm.Z})
	}
	if len(points) < minPoints {
		return nil, false
	}
	return points, true
}

// vertexAngle returns the angle (degrees) at P2 between the vectors
// P2→P1 and P2→P3. A 4th point, when present, establishes the
// comparison plane: the angle's sign follows which side of the
// P1/P2/P3 plane the reference point lies on.
func vertexAngle(p []r3.Vec) float64 {
	v1 := r3.Sub(p[0], p[1])
	v2 := r3.Sub(p[2], p[1])

	n1 := r3.Norm(v1)
	n2 := r3.Norm(v2)
	if n1 == 0 || n2 == 0 {
		return math.NaN()
	}

	// Clamp before acos: floating point can overshoot past ±1.
	cos := r3.Dot(v1, v2) / (n1 * n2)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	deg := math.Acos(cos) * 180 / math.Pi

	if len(p) >= 4 {
		normal := r3.Cross(v1, v2)
		if r3.Dot(normal, r3.Sub(p[3], p[1])) < 0 {
			deg = -deg
		}
	}
	return deg
}

// axisAngle returns the angle (degrees) of the P1→P2 vector against
// the horizontal image axis. Y grows downward in image coordinates,
// so the sign is flipped to keep "left side higher" positive.
func axisAngle(p1, p2 r3.Vec) float64 {
	return math.Atan2(-(p2.Y - p1.Y), p2.X-p1.X) * 180 / math.Pi
}

// fold normalises an angle into its regime range. Full angles wrap
// into [-180, 180]. Plane angles additionally fold past ±90: a plane
// rotated beyond 90° reads as approaching 0° from the other side.
func fold(deg float64, regime Regime) float64 {
	deg = math.Mod(deg+180, 360)
	if deg < 0 {
		deg += 360
	}
	deg -= 180

	if regime == RegimePlane {
		if deg > 90 {
			deg -= 180
		} else if deg < -90 {
			deg += 180
		}
	}
	return deg
}
