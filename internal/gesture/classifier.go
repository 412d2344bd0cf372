// Package gesture turns thumb-to-index fingertip distances into named gestures.
package gesture

import "math"

// Quality describes how centered a distance is within its gesture band.
type Quality string

const (
	QualityExcellent Quality = "Excellent"
	QualityGood      Quality = "Good"
	QualityFair      Quality = "Fair"
)

// None is reported as both gesture and action when no band matches.
const None = "None"

// Band is a closed pixel-distance interval mapped to a gesture and its action.
type Band struct {
	Name   string
	Min    float64
	Max    float64
	Action string
}

// DefaultBands returns the built-in bands in evaluation order.
// Adjacent bands share their boundary value; the earlier band wins.
func DefaultBands() []Band {
	return []Band{
		{Name: "Pinch", Min: 0, Max: 30, Action: "Click/Select"},
		{Name: "Close", Min: 30, Max: 60, Action: "Hold/Drag"},
		{Name: "Medium", Min: 60, Max: 110, Action: "Neutral"},
		{Name: "Far", Min: 110, Max: 200, Action: "Zoom+"},
	}
}

// Classification is the result of classifying a single smoothed distance.
type Classification struct {
	Gesture string
	Action  string
	Quality Quality
}

// Classifier maps distances onto an ordered list of bands.
type Classifier struct {
	bands []Band
}

// NewClassifier creates a Classifier over the default bands.
func NewClassifier() *Classifier {
	return NewClassifierWithBands(DefaultBands())
}

// NewClassifierWithBands creates a Classifier over the given bands.
// Bands are evaluated in slice order and the first one containing the
// distance wins.
func NewClassifierWithBands(bands []Band) *Classifier {
	b := make([]Band, len(bands))
	copy(b, bands)
	return &Classifier{bands: b}
}

// Bands returns a copy of the classifier's bands.
func (c *Classifier) Bands() []Band {
	b := make([]Band, len(c.bands))
	copy(b, c.bands)
	return b
}

// Classify returns the gesture, action and quality for a distance.
func (c *Classifier) Classify(distance float64) Classification {
	for _, b := range c.bands {
		if distance < b.Min || distance > b.Max {
			continue
		}
		return Classification{
			Gesture: b.Name,
			Action:  b.Action,
			Quality: bandQuality(distance, b),
		}
	}

	return Classification{Gesture: None, Action: None, Quality: QualityFair}
}

// bandQuality scores 100 at the band center and 50 at either edge.
func bandQuality(distance float64, b Band) Quality {
	center := (b.Min + b.Max) / 2
	maxOffset := (b.Max - b.Min) / 2
	if maxOffset <= 0 {
		return QualityExcellent
	}

	score := 100 - (math.Abs(distance-center)/maxOffset)*50

	switch {
	case score > 80:
		return QualityExcellent
	case score > 60:
		return QualityGood
	default:
		return QualityFair
	}
}
