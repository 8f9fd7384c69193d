package alert

// Result is the outcome of one evaluation pass.
type Result struct {
	// Alerts is the full collection with transitions applied, in input order.
	Alerts []Alert
	// Triggered holds the alerts that transitioned during this pass.
	Triggered []Alert
}

// Evaluate checks every active alert against the watchlist snapshot.
// Alerts whose symbol is absent from the snapshot are skipped, triggered
// alerts are never re-evaluated, and the input slice is not modified.
func Evaluate(snapshot []Quote, alerts []Alert) Result {
	prices := make(map[string]float64, len(snapshot))
	for _, q := range snapshot {
		// first entry wins when a symbol appears twice
		if _, ok := prices[q.Symbol]; !ok {
			prices[q.Symbol] = q.Price
		}
	}

	out := Result{Alerts: make([]Alert, len(alerts))}
	copy(out.Alerts, alerts)

	for i, a := range out.Alerts {
		if !a.IsActive() {
			continue
		}
		current, ok := prices[a.Symbol]
		if !ok {
			continue
		}
		if !a.Condition.Met(current, a.Price) {
			continue
		}

		a.Status = StatusTriggered
		out.Alerts[i] = a
		out.Triggered = append(out.Triggered, a)
	}

	return out
}
