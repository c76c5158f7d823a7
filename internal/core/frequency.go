package core

// FrequencyGroup aggregates the records sharing one usage_frequency label.
type FrequencyGroup struct {
	Label        string  `json:"label"`
	Count        int     `json:"count"`
	TotalAmount  float64 `json:"total_amount"`
	TotalMinutes int     `json:"total_minutes"`
}

// SummarizeByFrequency groups records by exact string equality on their
// usage_frequency label. Labels are not normalized; "Daily" and "daily"
// are distinct groups. Result order is the first appearance of each label
// in the input, so a given input ordering always yields the same output.
func SummarizeByFrequency(records []Record) []FrequencyGroup {
	index := make(map[string]int, len(records))
	groups := make([]FrequencyGroup, 0, len(records))

	for _, r := range records {
		i, ok := index[r.UsageFrequency]
		if !ok {
			i = len(groups)
			index[r.UsageFrequency] = i
			groups = append(groups, FrequencyGroup{Label: r.UsageFrequency})
		}
		groups[i].Count++
		groups[i].TotalAmount += r.Amount
		groups[i].TotalMinutes += r.UsageMinutes
	}
	return groups
}
