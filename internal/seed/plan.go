package seed

import (
	"fmt"
	"math/rand"
	"time"
)

type eventPlan struct {
	Type string
	At   time.Time
	Meta map[string]any
}

type featurePlan struct {
	Name string
	At   time.Time
}

type ticketPlan struct {
	Status string
	At     time.Time
}

type invoicePlan struct {
	Due    time.Time
	Paid   *time.Time
	Amount float64
}

type customerPlan struct {
	Name    string
	Segment string

	Events   []eventPlan
	Features []featurePlan
	Tickets  []ticketPlan
	Invoices []invoicePlan
}

var nameWords = []string{
	"Nimbus", "Vertex", "Cascade", "Meridian", "Harbor", "Summit", "Quill",
	"Beacon", "Atlas", "Lattice", "Orchard", "Pioneer", "Relay", "Solstice",
	"Tundra", "Vantage", "Willow", "Zephyr", "Granite", "Ember",
}

var nameSuffixes = []string{
	"Labs", "Systems", "Works", "Dynamics", "Software", "Group", "Partners",
	"Industries", "Logistics", "Analytics",
}

// pickSegment weights segments 35/45/20 enterprise/SMB/startup.
func pickSegment(rng *rand.Rand) string {
	r := rng.Float64()
	switch {
	case r < 0.35:
		return segments[0]
	case r < 0.80:
		return segments[1]
	default:
		return segments[2]
	}
}

// planCustomer builds a full 90-day activity history ending at now. Each
// customer draws a base activity level so the portfolio spreads across the
// three status bands instead of clustering around one score.
func planCustomer(rng *rand.Rand, now time.Time) customerPlan {
	p := customerPlan{
		Name:    fmt.Sprintf("%s %s", nameWords[rng.Intn(len(nameWords))], nameSuffixes[rng.Intn(len(nameSuffixes))]),
		Segment: pickSegment(rng),
	}

	// Engagement level in [0,1] drives every activity dimension.
	engagement := rng.Float64()

	start := now.AddDate(0, 0, -90)
	for day := 0; day < 90; day++ {
		ts := start.AddDate(0, 0, day).Add(time.Duration(rng.Intn(24*3600)) * time.Second)

		if rng.Float64() < 0.2+0.6*engagement {
			p.Events = append(p.Events, eventPlan{Type: "login", At: ts})
		}

		// API traffic trends with engagement: logging extra current-window
		// calls for engaged customers and extra prior-window calls for
		// disengaged ones makes the trend factor point the right way.
		calls := gaussInt(rng, 2+10*engagement, 3)
		if day >= 60 && engagement > 0.5 {
			calls += gaussInt(rng, 4, 2)
		}
		if day < 60 && engagement < 0.3 {
			calls += gaussInt(rng, 4, 2)
		}
		for c := 0; c < calls; c++ {
			at := ts.Add(time.Duration(rng.Intn(3600)) * time.Second)
			p.Events = append(p.Events, eventPlan{Type: "api_call", At: at})
		}
	}

	// Distinct features adopted scales with engagement, capped at the
	// catalog size. Each adopted feature is used a handful of times.
	featureCount := int(float64(len(KeyFeatures)) * engagement)
	if featureCount > len(KeyFeatures) {
		featureCount = len(KeyFeatures)
	}
	order := rng.Perm(len(KeyFeatures))
	for i := 0; i < featureCount; i++ {
		name := KeyFeatures[order[i]]
		uses := 1 + rng.Intn(6)
		for u := 0; u < uses; u++ {
			at := now.AddDate(0, 0, -rng.Intn(90)).Add(-time.Duration(rng.Intn(12*3600)) * time.Second)
			p.Features = append(p.Features, featurePlan{Name: name, At: at})
		}
	}

	// Struggling customers file more tickets.
	ticketCount := rng.Intn(1 + int(float64(maxTicketsPer90d)*(1-engagement)))
	for t := 0; t < ticketCount; t++ {
		status := "closed"
		if rng.Float64() < 0.3 {
			status = "open"
		}
		at := now.AddDate(0, 0, -rng.Intn(90))
		p.Tickets = append(p.Tickets, ticketPlan{Status: status, At: at})
	}

	// Monthly invoices over the window. Roughly one in ten customers is a
	// chronic late payer regardless of engagement.
	latePayer := rng.Float64() < 0.10
	for m := 0; m < invoiceMonths; m++ {
		if rng.Float64() > 0.9 {
			continue
		}
		due := now.AddDate(0, -m, -rng.Intn(5))
		amount := 200 + rng.Float64()*2800
		onTimeProb := 0.9
		if latePayer {
			onTimeProb = 0.2
		}
		var paid *time.Time
		if rng.Float64() < 0.95 {
			var paidAt time.Time
			if rng.Float64() < onTimeProb {
				paidAt = due.AddDate(0, 0, -rng.Intn(5))
			} else {
				paidAt = due.AddDate(0, 0, 1+rng.Intn(20))
			}
			paid = &paidAt
		}
		p.Invoices = append(p.Invoices, invoicePlan{Due: due, Paid: paid, Amount: amount})
	}

	return p
}

// gaussInt draws a non-negative integer from N(mean, stddev).
func gaussInt(rng *rand.Rand, mean, stddev float64) int {
	v := int(rng.NormFloat64()*stddev + mean)
	if v < 0 {
		return 0
	}
	return v
}
