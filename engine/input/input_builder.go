package input

// AggregatorBuilderOption configures an Aggregator.
type AggregatorBuilderOption func(*aggregatorImpl)

// WithScreenSize sets the size used to map pointer pixels to screen space.
// Non-positive dimensions keep the default.
//
// Parameters:
//   - width, height: the mapping size in pixels
//
// Returns:
//   - AggregatorBuilderOption: a function that sets the screen size
func WithScreenSize(width, height int) AggregatorBuilderOption {
	return func(a *aggregatorImpl) {
		if width > 0 {
			a.screenWidth = float32(width)
		}
		if height > 0 {
			a.screenHeight = float32(height)
		}
	}
}
