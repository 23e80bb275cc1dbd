package domain

import "time"

// PreferenceSource records how a memory entered the store. Confidence is
// derived from it deterministically.
type PreferenceSource string

const (
	SourceExplicitInstruction PreferenceSource = "explicit"
	SourceStrongInference     PreferenceSource = "strong_inference"
	SourceWeakInference       PreferenceSource = "weak_inference"
)

// ConfidenceFor maps a preference source to its confidence score.
func ConfidenceFor(source PreferenceSource) float64 {
	switch source {
	case SourceExplicitInstruction:
		return 1.0
	case SourceStrongInference:
		return 0.8
	case SourceWeakInference:
		return 0.5
	default:
		return 0.5
	}
}

// PreferenceEntry is a single remembered fact. One entry per key; a re-set of
// the same key overwrites value, confidence and source (last write wins).
type PreferenceEntry struct {
	Key        string           `yaml:"key"`
	Value      string           `yaml:"value"`
	Confidence float64          `yaml:"confidence"`
	Source     PreferenceSource `yaml:"source"`
	Timestamp  time.Time        `yaml:"timestamp"`
}
