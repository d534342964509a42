// Package draw produces the drawing primitives consumed by the
// presentation layer: scaled landmark points and the connecting
// skeleton segments, coloured by the latest comparison result.
// Actual rendering, timing display and accessibility output belong to
// the presentation layer, not here.
package draw

import (
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose/compare"
)

// MinDrawVisibility hides landmarks the estimator is unsure about so
// the overlay does not jitter on occluded limbs.
const MinDrawVisibility = 0.5

// Connection is one skeleton edge between two landmark indices.
type Connection struct {
	From, To int
}

// Connections is the standard 33-point pose skeleton edge list
// (MediaPipe pose connections).
var Connections = []Connection{
	// Face
	{pose.Nose, pose.LeftEyeInner}, {pose.LeftEyeInner, pose.LeftEye},
	{pose.LeftEye, pose.LeftEyeOuter}, {pose.LeftEyeOuter, pose.LeftEar},
	{pose.Nose, pose.RightEyeInner}, {pose.RightEyeInner, pose.RightEye},
	{pose.RightEye, pose.RightEyeOuter}, {pose.RightEyeOuter, pose.RightEar},
	{pose.MouthLeft, pose.MouthRight},
	// Torso
	{pose.LeftShoulder, pose.RightShoulder},
	{pose.LeftShoulder, pose.LeftHip}, {pose.RightShoulder, pose.RightHip},
	{pose.LeftHip, pose.RightHip},
	// Left arm
	{pose.LeftShoulder, pose.LeftElbow}, {pose.LeftElbow, pose.LeftWrist},
	{pose.LeftWrist, pose.LeftPinky}, {pose.LeftWrist, pose.LeftIndex},
	{pose.LeftWrist, pose.LeftThumb}, {pose.LeftPinky, pose.LeftIndex},
	// Right arm
	{pose.RightShoulder, pose.RightElbow}, {pose.RightElbow, pose.RightWrist},
	{pose.RightWrist, pose.RightPinky}, {pose.RightWrist, pose.RightIndex},
	{pose.RightWrist, pose.RightThumb}, {pose.RightPinky, pose.RightIndex},
	// Left leg
	{pose.LeftHip, pose.LeftKnee}, {pose.LeftKnee, pose.LeftAnkle},
	{pose.LeftAnkle, pose.LeftHeel}, {pose.LeftHeel, pose.LeftFootIndex},
	{pose.LeftAnkle, pose.LeftFootIndex},
	// Right leg
	{pose.RightHip, pose.RightKnee}, {pose.RightKnee, pose.RightAnkle},
	{pose.RightAnkle, pose.RightHeel}, {pose.RightHeel, pose.RightFootIndex},
	{pose.RightAnkle, pose.RightFootIndex},
}

// Point is one drawable landmark in surface pixel coordinates.
type Point struct {
	Index int
	X, Y  float64
}

// Segment is one drawable skeleton edge in surface pixel coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// List is one frame's worth of drawing primitives.
type List struct {
	Points   []Point
	Segments []Segment
	Color    compare.Color
	// Highlight lists anomalous landmark indices the presentation
	// layer should emphasise, independent of the base colour.
	Highlight []int
}

// Sink consumes draw lists. The active render loop of a stream is the
// surface's exclusive owner; only one loop per stream draws at a time.
type Sink interface {
	Render(List)
	Clear()
}

// Skeleton projects a landmark set onto a width×height surface and
// builds the point and segment lists. Landmarks below the visibility
// floor are omitted, along with any segment touching them.
func Skeleton(set *pose.LandmarkSet, width, height float64, color compare.Color) List {
	list := List{Color: color}
	if set == nil || width <= 0 || height <= 0 {
		return list
	}

	visible := [pose.NumLandmarks]bool{}
	for i := range set {
		if set[i].Visibility < MinDrawVisibility {
			continue
		}
		visible[i] = true
		list.Points = append(list.Points, Point{
			Index: i,
			X:     set[i].X * width,
			Y:     set[i].Y * height,
		})
	}

	for _, conn := range Connections {
		if !visible[conn.From] || !visible[conn.To] {
			continue
		}
		list.Segments = append(list.Segments, Segment{
			X1: set[conn.From].X * width,
			Y1: set[conn.From].Y * height,
			X2: set[conn.To].X * width,
			Y2: set[conn.To].Y * height,
		})
	}
	return list
}

// FitWithin scales native dimensions down to a maximum bounding box
// while preserving aspect ratio. Dimensions already inside the box are
// returned unchanged.
func FitWithin(nativeW, nativeH, maxW, maxH float64) (w, h float64) {
	if nativeW <= 0 || nativeH <= 0 {
		return 0, 0
	}
	if nativeW <= maxW && nativeH <= maxH {
		return nativeW, nativeH
	}
	scale := maxW / nativeW
	if s := maxH / nativeH; s < scale {
		scale = s
	}
	return nativeW * scale, nativeH * scale
}
