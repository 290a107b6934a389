package health

// FeatureAdoptionFactor scores breadth of value: the share of key features
// the customer actually used in the trailing 90 days. Adoption is about
// breadth (stickiness), not raw usage counts.
type FeatureAdoptionFactor struct {
	TotalKeyFeatures int // size of the key-feature catalog
}

func (f *FeatureAdoptionFactor) Key() string  { return KeyFeatureAdoption }
func (f *FeatureAdoptionFactor) Name() string { return "Feature adoption" }

func (f *FeatureAdoptionFactor) Evaluate(snap *Snapshot) float64 {
	used := snap.DistinctFeatures90d
	// Clamp rather than score above 100 if the source data ever reports more
	// distinct features than the catalog holds.
	if used > f.TotalKeyFeatures {
		used = f.TotalKeyFeatures
	}
	return pct(float64(used) / float64(f.TotalKeyFeatures))
}
