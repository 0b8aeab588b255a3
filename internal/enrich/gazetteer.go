package enrich

import "regexp"

// gazetteerEntry maps a trigger keyword to the canonical location string
// handed to the geocoder.
type gazetteerEntry struct {
	keyword  string
	location string
	pattern  *regexp.Regexp
}

// gazetteer is scanned in declaration order; the first matching keyword
// wins, so the order below is load-bearing.
var gazetteer = buildGazetteer([]gazetteerEntry{
	{keyword: "USA", location: "Washington DC, USA"},
	{keyword: "Washington", location: "Washington DC, USA"},
	{keyword: "Trump", location: "Washington DC, USA"},
	{keyword: "Biden", location: "Washington DC, USA"},
	{keyword: "Iran", location: "Tehran, Iran"},
	{keyword: "Tehran", location: "Tehran, Iran"},
	{keyword: "Ukraine", location: "Kyiv, Ukraine"},
	{keyword: "Russia", location: "Moscow, Russia"},
	{keyword: "China", location: "Beijing, China"},
	{keyword: "UK", location: "London, UK"},
	{keyword: "Israel", location: "Tel Aviv, Israel"},
	{keyword: "Gaza", location: "Gaza City, Gaza"},
	{keyword: "Germany", location: "Berlin, Germany"},
	{keyword: "France", location: "Paris, France"},
	{keyword: "Japan", location: "Tokyo, Japan"},
	{keyword: "India", location: "New Delhi, India"},
	{keyword: "AI", location: "Silicon Valley, USA"},
})

func buildGazetteer(entries []gazetteerEntry) []gazetteerEntry {
	for i := range entries {
		entries[i].pattern = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(entries[i].keyword) + `\b`)
	}
	return entries
}

// KeywordLocation scans the gazetteer against free text, case-insensitive
// with word boundaries, and returns the first matching canonical location.
func (r *Resolver) KeywordLocation(text string) (string, bool) {
	for _, entry := range gazetteer {
		if entry.pattern.MatchString(text) {
			return entry.location, true
		}
	}
	return "", false
}
