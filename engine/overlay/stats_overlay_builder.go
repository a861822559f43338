package overlay

// StatsOverlayBuilderOption configures a stats overlay.
type StatsOverlayBuilderOption func(*statsOverlay)

// WithTitle sets the panel heading. An empty title hides the heading row.
//
// Parameters:
//   - title: the heading text
//
// Returns:
//   - StatsOverlayBuilderOption: a function that sets the title
func WithTitle(title string) StatsOverlayBuilderOption {
	return func(o *statsOverlay) {
		o.title = title
	}
}

// WithScale sets the integer text magnification. Values below 1 keep the default of 1.
//
// Parameters:
//   - scale: the magnification
//
// Returns:
//   - StatsOverlayBuilderOption: a function that sets the scale
func WithScale(scale int) StatsOverlayBuilderOption {
	return func(o *statsOverlay) {
		if scale >= 1 {
			o.scale = scale
		}
	}
}

// WithMargin sets the distance in points between the panel and the window's top-left corner.
func WithMargin(margin float32) StatsOverlayBuilderOption {
	return func(o *statsOverlay) {
		o.margin = margin
	}
}
