package pose

// Body landmark indices following the MediaPipe pose convention.
// Order is significant: the angle catalog references landmarks by
// these stable indices and names.
const (
	Nose = iota
	LeftEyeInner
	LeftEye
	LeftEyeOuter
	RightEyeInner
	RightEye
	RightEyeOuter
	LeftEar
	RightEar
	MouthLeft
	MouthRight
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftPinky
	RightPinky
	LeftIndex
	RightIndex
	LeftThumb
	RightThumb
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
	LeftHeel
	RightHeel
	LeftFootIndex
	RightFootIndex
	NumLandmarks
)

// landmarkNames maps landmark indices to their display names. The
// scoring wire format keys landmarks by these names.
var landmarkNames = [NumLandmarks]string{
	"Nose", "Left Eye (Inner)", "Left Eye", "Left Eye (Outer)", "Right Eye (Inner)",
	"Right Eye", "Right Eye (Outer)", "Left Ear", "Right Ear", "Mouth (Left)",
	"Mouth (Right)", "Left Shoulder", "Right Shoulder", "Left Elbow", "Right Elbow",
	"Left Wrist", "Right Wrist", "Left Pinky", "Right Pinky", "Left Index",
	"Right Index", "Left Thumb", "Right Thumb", "Left Hip", "Right Hip",
	"Left Knee", "Right Knee", "Left Ankle", "Right Ankle", "Left Heel",
	"Right Heel", "Left Foot Index", "Right Foot Index",
}

// nameToIndex is the reverse lookup, built once at init.
var nameToIndex = func() map[string]int {
	m := make(map[string]int, NumLandmarks)
	for i, name := range landmarkNames {
		m[name] = i
	}
	return m
}()

// LandmarkName returns the display name for a landmark index, or ""
// when the index is out of range.
func LandmarkName(index int) string {
	if index < 0 || index >= NumLandmarks {
		return ""
	}
	return landmarkNames[index]
}

// LandmarkIndex resolves a landmark display name back to its index.
// Returns -1 for unknown names.
func LandmarkIndex(name string) int {
	if i, ok := nameToIndex[name]; ok {
		return i
	}
	return -1
}

// Landmark is one tracked body point. X and Y are normalised image
// coordinates (0..1), Z is an optional depth estimate in the same
// scale, Visibility is the estimator's presence confidence [0, 1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// LandmarkSet is the full 33-point skeleton from one detection,
// indexed by the anatomical schema above.
type LandmarkSet [NumLandmarks]Landmark

// Valid reports whether the set carries at least one landmark with
// non-zero visibility. A zero-value set means "no detection".
func (s *LandmarkSet) Valid() bool {
	if s == nil {
		return false
	}
	for i := range s {
		if s[i].Visibility > 0 {
			return true
		}
	}
	return false
}
