package db

import (
	"fmt"
	"time"
)

// ClickEvent records that a control was clicked. The drawn color is not stored.
type ClickEvent struct {
	PageID    string
	ControlID string
	Applied   bool // false when the background could not be set
	ClickedAt time.Time
}

const insertClick = `
	INSERT INTO click_events (page_id, control_id, applied, clicked_at)
	VALUES ($1, $2, $3, $4)
`

func (d *DB) RecordClick(ev ClickEvent) error {
	_, err := d.conn.Exec(insertClick, ev.PageID, ev.ControlID, ev.Applied, ev.ClickedAt)
	if err != nil {
		return fmt.Errorf("recording click: %w", err)
	}
	return nil
}

func (d *DB) BatchRecordClicks(events []ClickEvent) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertClick)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.Exec(ev.PageID, ev.ControlID, ev.Applied, ev.ClickedAt); err != nil {
			return fmt.Errorf("recording click in batch: %w", err)
		}
	}

	return tx.Commit()
}
