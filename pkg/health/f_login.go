package health

// LoginFrequencyFactor scores recent engagement: logins over the trailing
// 30 days normalized against a target, capped at 100 so abnormally high
// activity doesn't skew beyond "excellent".
type LoginFrequencyFactor struct {
	Target int // logins per 30 days that count as full engagement
}

func (f *LoginFrequencyFactor) Key() string  { return KeyLoginFrequency }
func (f *LoginFrequencyFactor) Name() string { return "Login frequency" }

func (f *LoginFrequencyFactor) Evaluate(snap *Snapshot) float64 {
	return pct(float64(snap.Logins30d) / float64(f.Target))
}
