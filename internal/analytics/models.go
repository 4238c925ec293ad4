package analytics

import "time"

type PageStats struct {
	PageID          string
	Code            string
	Clicks          int
	Failed          int // clicks whose color could not be applied
	FirstClick      *time.Time
	LastClick       *time.Time
	ClicksPerMinute float64
	Milestones      []Milestone
}

type Summary struct {
	Pages  int
	Clicks int
	Failed int
}

type LeaderboardEntry struct {
	PageID string
	Code   string
	Value  int
	Rank   int
}
