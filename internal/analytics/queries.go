package analytics

import (
	"colorchanger/internal/db"
	"fmt"
)

type Queries struct {
	DB *db.DB
}

func NewQueries(database *db.DB) *Queries {
	return &Queries{DB: database}
}

func (q *Queries) GetSummary() (*Summary, error) {
	s := &Summary{}
	err := q.DB.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM pages),
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT applied)
		FROM click_events
	`).Scan(&s.Pages, &s.Clicks, &s.Failed)
	if err != nil {
		return nil, fmt.Errorf("getting summary: %w", err)
	}
	return s, nil
}

func (q *Queries) GetPageStats(pageID string) (*PageStats, error) {
	stats := &PageStats{PageID: pageID}

	err := q.DB.QueryRow(`SELECT code FROM pages WHERE id = $1`, pageID).Scan(&stats.Code)
	if err != nil {
		return nil, fmt.Errorf("getting page: %w", err)
	}

	err = q.DB.QueryRow(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT applied),
			MIN(clicked_at),
			MAX(clicked_at)
		FROM click_events
		WHERE page_id = $1
	`, pageID).Scan(&stats.Clicks, &stats.Failed, &stats.FirstClick, &stats.LastClick)
	if err != nil {
		return nil, fmt.Errorf("getting click stats: %w", err)
	}

	if stats.FirstClick != nil && stats.LastClick != nil {
		if mins := stats.LastClick.Sub(*stats.FirstClick).Minutes(); mins > 0 {
			stats.ClicksPerMinute = float64(stats.Clicks) / mins
		}
	}

	stats.Milestones = EvaluateMilestones(*stats)
	return stats, nil
}

// AwardMilestones evaluates a page and persists what it has earned.
func (q *Queries) AwardMilestones(pageID string) (*PageStats, error) {
	stats, err := q.GetPageStats(pageID)
	if err != nil {
		return nil, err
	}
	for _, m := range stats.Milestones {
		if err := q.DB.AwardMilestone(pageID, string(m.ID)); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (q *Queries) GetLeaderboard(category string, limit int) ([]LeaderboardEntry, error) {
	var query string
	switch category {
	case "clicks":
		query = `
			SELECT p.id, p.code, COUNT(ce.id) as value
			FROM pages p
			JOIN click_events ce ON ce.page_id = p.id
			GROUP BY p.id, p.code
			ORDER BY value DESC
			LIMIT $1`
	case "failed":
		query = `
			SELECT p.id, p.code, COUNT(ce.id) FILTER (WHERE NOT ce.applied) as value
			FROM pages p
			JOIN click_events ce ON ce.page_id = p.id
			GROUP BY p.id, p.code
			ORDER BY value DESC
			LIMIT $1`
	case "milestones":
		query = `
			SELECT p.id, p.code, COUNT(pm.milestone) as value
			FROM pages p
			JOIN page_milestones pm ON pm.page_id = p.id
			GROUP BY p.id, p.code
			ORDER BY value DESC
			LIMIT $1`
	default:
		return nil, fmt.Errorf("unknown leaderboard category: %s", category)
	}

	rows, err := q.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("getting leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PageID, &e.Code, &e.Value); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
