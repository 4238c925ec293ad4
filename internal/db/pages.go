package db

import (
	"fmt"
	"time"
)

type PageRecord struct {
	ID        string
	Code      string
	OwnerID   string
	CreatedAt time.Time
}

func (d *DB) InsertPage(id, code, ownerID string, createdAt time.Time) error {
	_, err := d.conn.Exec(`
		INSERT INTO pages (id, code, owner_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`, id, code, ownerID, createdAt)
	if err != nil {
		return fmt.Errorf("inserting page: %w", err)
	}
	return nil
}

func (d *DB) GetPage(id string) (*PageRecord, error) {
	var p PageRecord
	err := d.conn.QueryRow(`
		SELECT id, code, owner_id, created_at FROM pages WHERE id = $1
	`, id).Scan(&p.ID, &p.Code, &p.OwnerID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting page: %w", err)
	}
	return &p, nil
}
