package health

// APITrendFactor scores integration momentum: API call volume in the current
// 30-day window against the previous 30-day window. Downtrends (<50) are an
// early churn signal; 50 means flat.
//
// Mapping: relative change (curr-prev)/prev is clamped to [-1, +1], then
// 50 + 50*change. Two windows with no calls at all score the neutral 50;
// growth from a zero baseline scores 100 (maximal momentum).
//
// A pseudo-count smoothed variant ((curr+s)/(prev+s), s=3) was considered to
// damp swings on tiny counts. The clamped relative change is the one
// implemented here; the two diverge materially for small counts and must not
// be mixed.
type APITrendFactor struct{}

func (f *APITrendFactor) Key() string  { return KeyAPITrend }
func (f *APITrendFactor) Name() string { return "API usage trend" }

func (f *APITrendFactor) Evaluate(snap *Snapshot) float64 {
	curr, prev := snap.APICallsCurr30d, snap.APICallsPrev30d

	if prev == 0 {
		if curr == 0 {
			return neutralScore
		}
		return 100
	}

	change := float64(curr-prev) / float64(prev)
	if change < -1 {
		change = -1
	}
	if change > 1 {
		change = 1
	}
	return pct((change + 1) / 2)
}
