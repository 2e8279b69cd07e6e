package domain

import (
	"strings"
	"time"
)

var (
	highKeywords = []string{
		"flash flood",
		"evacuation",
		"river overflow",
		"dam discharge",
		"flood warning",
	}

	mediumKeywords = []string{
		"waterlogging",
		"heavy rainfall expected",
		"monsoon alert",
		"rainfall alert",
	}

	// lowKeywords never decide the level: anything without a HIGH or MEDIUM
	// match is LOW. They are only reported as the matched keyword.
	lowKeywords = []string{
		"rain expected",
		"weather disturbance",
	}
)

// ClassifyHeadline tags a headline with a keyword severity. HIGH keywords are
// tested before MEDIUM ones; titles matching neither list are LOW. The second
// return value is the keyword that matched, or "" when none did.
func ClassifyHeadline(title string) (AlertLevel, string) {
	lower := strings.ToLower(title)
	if k, ok := firstMatch(lower, highKeywords); ok {
		return AlertHigh, k
	}
	if k, ok := firstMatch(lower, mediumKeywords); ok {
		return AlertMedium, k
	}
	k, _ := firstMatch(lower, lowKeywords)
	return AlertLow, k
}

func firstMatch(s string, keywords []string) (string, bool) {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return k, true
		}
	}
	return "", false
}

// FilterToday keeps the items published on the same UTC calendar day as now.
// Dates are compared as the leading "YYYY-MM-DD" of the RFC 3339 UTC form.
func FilterToday(items []NewsItem, now time.Time) []NewsItem {
	today := isoDate(now)
	kept := make([]NewsItem, 0, len(items))
	for _, item := range items {
		if isoDate(item.PubTime) == today {
			kept = append(kept, item)
		}
	}
	return kept
}

func isoDate(t time.Time) string {
	s := t.UTC().Format(time.RFC3339)
	if len(s) < 10 {
		return s
	}
	return s[:10]
}

// ClassifyNews tags each item with its keyword severity, preserving feed order.
func ClassifyNews(items []NewsItem) []NewsAlert {
	alerts := make([]NewsAlert, 0, len(items))
	for _, item := range items {
		level, _ := ClassifyHeadline(item.Title)
		alerts = append(alerts, NewsAlert{
			Title:     item.Title,
			Published: item.Published,
			Level:     level,
		})
	}
	return alerts
}
