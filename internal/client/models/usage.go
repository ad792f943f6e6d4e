package models

// UsageStats maps a UTC calendar date (YYYY-MM-DD) to minutes spent.
type UsageStats map[string]int

// WeeklyUsage is the trailing seven days of usage, oldest first.
// The three slices have equal length.
type WeeklyUsage struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
	Dates  []string `json:"dates"`
}

// Total returns the sum of Data.
func (w WeeklyUsage) Total() int {
	n := 0
	for _, m := range w.Data {
		n += m
	}
	return n
}
