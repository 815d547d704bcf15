// Package stats derives summary figures from the local mood history: the
// emotion distribution and a seven-day posting trend.
package stats

import (
	"time"

	"moodgarden/internal/emotion"
	"moodgarden/internal/history"
)

// Slice is one category's share of the recorded moods.
type Slice struct {
	Category emotion.Category
	Count    int
	Percent  float64
}

// DayBucket is one day of the weekly trend, oldest first.
type DayBucket struct {
	Date  time.Time // midnight, local
	Count int
}

// Distribution returns one slice per category, in category order, with
// percentages summing to ~100 for a non-empty history. An empty history
// yields all-zero slices rather than nil so callers can render a stable
// chart skeleton.
func Distribution(records []history.MoodRecord) []Slice {
	counts := make(map[emotion.Category]int)
	for _, r := range records {
		if r.Category.Valid() {
			counts[r.Category]++
		}
	}
	total := 0
	for _, c := range counts {
		total += c
	}

	slices := make([]Slice, 0, len(emotion.All()))
	for _, cat := range emotion.All() {
		s := Slice{Category: cat, Count: counts[cat]}
		if total > 0 {
			s.Percent = float64(s.Count) / float64(total) * 100
		}
		slices = append(slices, s)
	}
	return slices
}

// WeeklyTrend buckets the history into the last seven days ending at now,
// oldest day first. Records outside the window are ignored.
func WeeklyTrend(records []history.MoodRecord, now time.Time) []DayBucket {
	buckets := make([]DayBucket, 7)
	today := midnight(now)
	for i := range buckets {
		buckets[i].Date = today.AddDate(0, 0, i-6)
	}
	start := buckets[0].Date
	end := today.AddDate(0, 0, 1)

	for _, r := range records {
		t := r.CreatedAt
		if t.Before(start) || !t.Before(end) {
			continue
		}
		day := midnight(t)
		for i := range buckets {
			if buckets[i].Date.Equal(day) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// Dominant returns the category with the most records and whether any
// record exists at all. Ties break toward the earlier category.
func Dominant(records []history.MoodRecord) (emotion.Category, bool) {
	slices := Distribution(records)
	best := emotion.Joy
	bestCount := 0
	for _, s := range slices {
		if s.Count > bestCount {
			best = s.Category
			bestCount = s.Count
		}
	}
	return best, bestCount > 0
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
