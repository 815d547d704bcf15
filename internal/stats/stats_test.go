package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodgarden/internal/emotion"
	"moodgarden/internal/history"
)

func record(cat emotion.Category, at time.Time) history.MoodRecord {
	return history.MoodRecord{Category: cat, Message: "x", CreatedAt: at}
}

func TestDistribution(t *testing.T) {
	now := time.Now()
	records := []history.MoodRecord{
		record(emotion.Joy, now),
		record(emotion.Joy, now),
		record(emotion.Sadness, now),
		record(emotion.Anger, now),
	}
	slices := Distribution(records)
	require.Len(t, slices, 6)

	byCat := make(map[emotion.Category]Slice)
	total := 0.0
	for _, s := range slices {
		byCat[s.Category] = s
		total += s.Percent
	}
	assert.Equal(t, 2, byCat[emotion.Joy].Count)
	assert.InDelta(t, 50.0, byCat[emotion.Joy].Percent, 1e-9)
	assert.InDelta(t, 25.0, byCat[emotion.Sadness].Percent, 1e-9)
	assert.Zero(t, byCat[emotion.Calm].Count)
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestDistributionEmptyHistory(t *testing.T) {
	slices := Distribution(nil)
	require.Len(t, slices, 6)
	for _, s := range slices {
		assert.Zero(t, s.Count)
		assert.Zero(t, s.Percent)
	}
}

func TestDistributionSkipsInvalidCategories(t *testing.T) {
	records := []history.MoodRecord{
		record(emotion.Joy, time.Now()),
		record(emotion.Category(42), time.Now()),
	}
	slices := Distribution(records)
	sum := 0
	for _, s := range slices {
		sum += s.Count
	}
	assert.Equal(t, 1, sum)
}

func TestWeeklyTrend(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)
	records := []history.MoodRecord{
		record(emotion.Joy, now),                             // today
		record(emotion.Calm, now.AddDate(0, 0, -1)),          // yesterday
		record(emotion.Calm, now.AddDate(0, 0, -1)),          // yesterday
		record(emotion.Anger, now.AddDate(0, 0, -6)),         // window start
		record(emotion.Sadness, now.AddDate(0, 0, -7)),       // too old
		record(emotion.Joy, now.Add(26*time.Hour)),           // future
	}
	buckets := WeeklyTrend(records, now)
	require.Len(t, buckets, 7)

	assert.Equal(t, 1, buckets[0].Count, "oldest day")
	assert.Equal(t, 2, buckets[5].Count, "yesterday")
	assert.Equal(t, 1, buckets[6].Count, "today")
	assert.Equal(t, 0, buckets[1].Count+buckets[2].Count+buckets[3].Count+buckets[4].Count)

	for i := 1; i < len(buckets); i++ {
		assert.Equal(t, buckets[i-1].Date.AddDate(0, 0, 1), buckets[i].Date, "days must be consecutive")
	}
}

func TestDominant(t *testing.T) {
	_, ok := Dominant(nil)
	assert.False(t, ok)

	now := time.Now()
	cat, ok := Dominant([]history.MoodRecord{
		record(emotion.Fatigue, now),
		record(emotion.Fatigue, now),
		record(emotion.Joy, now),
	})
	require.True(t, ok)
	assert.Equal(t, emotion.Fatigue, cat)

	// Ties break toward the earlier category in declaration order.
	cat, ok = Dominant([]history.MoodRecord{
		record(emotion.Sadness, now),
		record(emotion.Calm, now),
	})
	require.True(t, ok)
	assert.Equal(t, emotion.Calm, cat)
}
