package domain

import (
	"strings"
	"time"
)

// RawArticle is a candidate item exactly as the upstream provider returned it.
type RawArticle struct {
	Title       string
	Description string
	Content     string
	Source      string
	URL         string
	ImageURL    string
	PublishedAt time.Time
}

// Place is a resolved geographic point attached to a story.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Country derives the country segment from the display name: the text after
// the last comma, or the whole name when no comma is present.
func (p Place) Country() string {
	if idx := strings.LastIndex(p.Name, ","); idx >= 0 {
		return strings.TrimSpace(p.Name[idx+1:])
	}
	return strings.TrimSpace(p.Name)
}

// Story is one enriched, ranked news item in the daily record.
type Story struct {
	ID           int    `json:"id"`
	Headline     string `json:"headline"`
	Description  string `json:"description"`
	MainLocation *Place `json:"mainLocation"`
	Intensity    int    `json:"intensity"`
	Color        string `json:"color"`
	URL          string `json:"url"`
	ImageURL     string `json:"imageUrl"`
}

// MoodFallback is the mood word used when extraction fails, yields nothing
// usable, or no extractor is configured.
const MoodFallback = "GLOBAL"

// DailyRecord is the persisted output of one pipeline run.
type DailyRecord struct {
	Date        string  `json:"date"`
	DisplayDate string  `json:"displayDate"`
	MoodWord    string  `json:"moodWord"`
	Stories     []Story `json:"stories"`
}

// SummaryMode selects the shortening contract for the summarizer.
type SummaryMode string

const (
	ModeHeadline    SummaryMode = "headline"
	ModeDescription SummaryMode = "description"
)

// ClassOutcome enumerates the three classification results for an article.
type ClassOutcome int

const (
	// ClassGlobal means no specific place applies; enrichment continues
	// without a location.
	ClassGlobal ClassOutcome = iota
	// ClassSkip marks entertainment/irrelevant content; the article is
	// dropped without consuming a story slot.
	ClassSkip
	// ClassLocation carries a "City, Country" string to geocode.
	ClassLocation
)

// Classification is the advisory output of the location classifier.
type Classification struct {
	Outcome  ClassOutcome
	Location string
}
