package health

// defaultFactors returns the five factor scorers bound to the given
// configuration, in aggregation order.
func defaultFactors(cfg Config) []Factor {
	return []Factor{
		&LoginFrequencyFactor{Target: cfg.LoginTarget},
		&FeatureAdoptionFactor{TotalKeyFeatures: cfg.TotalKeyFeatures},
		&SupportLoadFactor{MaxTickets: cfg.MaxTickets},
		&InvoiceTimelinessFactor{},
		&APITrendFactor{},
	}
}
