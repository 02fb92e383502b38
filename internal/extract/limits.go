package extract

// Limits bound a single extraction call's worst-case memory and time.
// All limits degrade gracefully when exceeded: oversized lines are
// skipped, a full dedup set always emits, a full accumulator truncates
// but keeps scanning.
type Limits struct {
	// MaxLineLength rejects pathological single lines outright before
	// any regex sees them.
	MaxLineLength int
	// DedupCapacity bounds the dedup set; past capacity, later errors
	// are emitted unconditionally rather than dropped.
	DedupCapacity int
	// AccumulatorMaxLines and AccumulatorMaxBytes bound each parser's
	// multi-line buffer.
	AccumulatorMaxLines int
	AccumulatorMaxBytes int
}

// DefaultLimits returns the limits used when no configuration is given.
func DefaultLimits() Limits {
	return Limits{
		MaxLineLength:       2000,
		DedupCapacity:       1000,
		AccumulatorMaxLines: 50,
		AccumulatorMaxBytes: 8 * 1024,
	}
}

// normalize fills zero fields with defaults so a partially-populated
// Limits from config is safe to use.
func (l Limits) normalize() Limits {
	d := DefaultLimits()
	if l.MaxLineLength <= 0 {
		l.MaxLineLength = d.MaxLineLength
	}
	if l.DedupCapacity <= 0 {
		l.DedupCapacity = d.DedupCapacity
	}
	if l.AccumulatorMaxLines <= 0 {
		l.AccumulatorMaxLines = d.AccumulatorMaxLines
	}
	if l.AccumulatorMaxBytes <= 0 {
		l.AccumulatorMaxBytes = d.AccumulatorMaxBytes
	}
	return l
}
