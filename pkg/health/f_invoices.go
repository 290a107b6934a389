package health

// InvoiceTimelinessFactor scores financial reliability: the share of recent
// invoices paid on or before their due date.
//
// A customer with no billing history scores the neutral 50, never 0: "no
// invoices yet" is distinct from "all invoices late", and a brand-new
// account must not look unhealthy purely for lack of history.
type InvoiceTimelinessFactor struct{}

func (f *InvoiceTimelinessFactor) Key() string  { return KeyInvoiceTimeliness }
func (f *InvoiceTimelinessFactor) Name() string { return "Invoice timeliness" }

func (f *InvoiceTimelinessFactor) Evaluate(snap *Snapshot) float64 {
	total := len(snap.Invoices)
	if total == 0 {
		return neutralScore
	}
	onTime := 0
	for _, inv := range snap.Invoices {
		if inv.PaidOnTime {
			onTime++
		}
	}
	return pct(float64(onTime) / float64(total))
}
