package health

// SupportLoadFactor scores friction inversely: fewer tickets over the
// trailing 90 days means a higher score. The window smooths occasional
// spikes; at or beyond MaxTickets the score bottoms out at 0.
type SupportLoadFactor struct {
	MaxTickets int // saturation threshold, not a cap on valid input
}

func (f *SupportLoadFactor) Key() string  { return KeySupportLoad }
func (f *SupportLoadFactor) Name() string { return "Support load" }

func (f *SupportLoadFactor) Evaluate(snap *Snapshot) float64 {
	ratio := float64(snap.Tickets90d) / float64(f.MaxTickets)
	if ratio > 1 {
		ratio = 1
	}
	return pct(1 - ratio)
}
