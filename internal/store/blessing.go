package store

import "fmt"

// RecordBlessing appends b to the journal.
func (db *DB) RecordBlessing(b *Blessing) error {
	_, err := db.Exec(`INSERT INTO blessings (id, blessed_at, ends_at) VALUES (?, ?, ?)`,
		b.ID, b.BlessedAt, b.EndsAt)
	if err != nil {
		return fmt.Errorf("record blessing: %w", err)
	}
	return nil
}

// ListBlessings returns the most recent blessings first.
func (db *DB) ListBlessings(limit int) ([]Blessing, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT id, blessed_at, ends_at FROM blessings
		ORDER BY blessed_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Blessing
	for rows.Next() {
		var b Blessing
		if err := rows.Scan(&b.ID, &b.BlessedAt, &b.EndsAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CountBlessings returns the journal size.
func (db *DB) CountBlessings() (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM blessings`).Scan(&n)
	return n, err
}
