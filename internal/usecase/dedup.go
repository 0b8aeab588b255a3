package usecase

// countryTally is the run-scoped accumulator behind the country-dedup
// gate. It is created per run and discarded with it.
type countryTally struct {
	cap    int
	counts map[string]int
}

func newCountryTally(cap int) *countryTally {
	return &countryTally{cap: cap, counts: map[string]int{}}
}

// Accept reports whether a story from the given country may still be
// taken, incrementing the tally when it is. Empty countries never block.
func (t *countryTally) Accept(country string) bool {
	if country == "" {
		return true
	}
	if t.counts[country] >= t.cap {
		return false
	}
	t.counts[country]++
	return true
}
