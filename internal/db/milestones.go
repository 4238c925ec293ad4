package db

import "fmt"

// AwardMilestone is idempotent per page and milestone.
func (d *DB) AwardMilestone(pageID, milestone string) error {
	_, err := d.conn.Exec(`
		INSERT INTO page_milestones (page_id, milestone)
		VALUES ($1, $2)
		ON CONFLICT (page_id, milestone) DO NOTHING
	`, pageID, milestone)
	if err != nil {
		return fmt.Errorf("awarding milestone: %w", err)
	}
	return nil
}

func (d *DB) GetMilestones(pageID string) ([]string, error) {
	rows, err := d.conn.Query(`
		SELECT milestone FROM page_milestones WHERE page_id = $1 ORDER BY awarded_at
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("getting milestones: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
