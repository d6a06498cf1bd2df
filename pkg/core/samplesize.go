package core

// Sample size labels offered by the selector.
const (
	SampleSmall  = "small"
	SampleMedium = "medium"
	SampleLarge  = "large"
)

// DefaultSampleSize is the selection a fresh widget starts with.
const DefaultSampleSize = SampleSmall

// DefaultSampleSizes returns the selector options in display order.
func DefaultSampleSizes() []string {
	return []string{SampleSmall, SampleMedium, SampleLarge}
}

// IsKnownSampleSize reports whether size is one of the built-in labels.
// The widget never validates against this set; data sources may.
func IsKnownSampleSize(size string) bool {
	switch size {
	case SampleSmall, SampleMedium, SampleLarge:
		return true
	default:
		return false
	}
}
