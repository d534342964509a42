package angles

import "github.com/romanvieito/gym-feedback-ai-9-4/internal/pose"

// StandingPose builds a plausible upright landmark set with all points
// fully visible. Tests perturb individual landmarks from this base.
func StandingPose() pose.LandmarkSet {
	var set pose.LandmarkSet

	positions := map[int][2]float64{
		pose.Nose:           {0.50, 0.08},
		pose.LeftEyeInner:   {0.49, 0.07},
		pose.LeftEye:        {0.48, 0.07},
		pose.LeftEyeOuter:   {0.47, 0.07},
		pose.RightEyeInner:  {0.51, 0.07},
		pose.RightEye:       {0.52, 0.07},
		pose.RightEyeOuter:  {0.53, 0.07},
		pose.LeftEar:        {0.46, 0.08},
		pose.RightEar:       {0.54, 0.08},
		pose.MouthLeft:      {0.48, 0.10},
		pose.MouthRight:     {0.52, 0.10},
		pose.LeftShoulder:   {0.42, 0.20},
		pose.RightShoulder:  {0.58, 0.20},
		pose.LeftElbow:      {0.40, 0.35},
		pose.RightElbow:     {0.60, 0.35},
		pose.LeftWrist:      {0.39, 0.50},
		pose.RightWrist:     {0.61, 0.50},
		pose.LeftPinky:      {0.385, 0.545},
		pose.RightPinky:     {0.615, 0.545},
		pose.LeftIndex:      {0.383, 0.55},
		pose.RightIndex:     {0.617, 0.55},
		pose.LeftThumb:      {0.39, 0.535},
		pose.RightThumb:     {0.61, 0.535},
		pose.LeftHip:        {0.44, 0.50},
		pose.RightHip:       {0.56, 0.50},
		pose.LeftKnee:       {0.44, 0.70},
		pose.RightKnee:      {0.56, 0.70},
		pose.LeftAnkle:      {0.44, 0.90},
		pose.RightAnkle:     {0.56, 0.90},
		pose.LeftHeel:       {0.445, 0.93},
		pose.RightHeel:      {0.555, 0.93},
		pose.LeftFootIndex:  {0.42, 0.95},
		pose.RightFootIndex: {0.58, 0.95},
	}

	for idx, p := range positions {
		set[idx] = pose.Landmark{X: p[0], Y: p[1], Z: 0, Visibility: 0.95}
	}
	return set
}
