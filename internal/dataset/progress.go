package dataset

// ProgressSink receives fractional completion reports in [0,1]. The core
// depends only on this contract; the dashboard owns the widget behind it.
type ProgressSink interface {
	Report(fraction float64)
}

// ProgressFunc adapts a function to the ProgressSink interface.
type ProgressFunc func(fraction float64)

func (f ProgressFunc) Report(fraction float64) { f(fraction) }

// NopProgress discards all reports.
var NopProgress ProgressSink = ProgressFunc(func(float64) {})
