package store

import (
	"time"

	"github.com/tubegrab/tubegrab/internal/domain"
)

// downloadDBO maps to the downloads table
type downloadDBO struct {
	ID          string
	URL         string
	Kind        string
	Quality     string
	Status      string
	Error       string
	Filename    string
	CreatedAt   int64
	CompletedAt int64
}

func (d *downloadDBO) ToDomain() *domain.DownloadRecord {
	return &domain.DownloadRecord{
		ID:          d.ID,
		URL:         d.URL,
		Kind:        domain.TargetKind(d.Kind),
		Quality:     d.Quality,
		Status:      domain.Status(d.Status),
		Error:       d.Error,
		Filename:    d.Filename,
		CreatedAt:   time.Unix(d.CreatedAt, 0),
		CompletedAt: time.Unix(d.CompletedAt, 0),
	}
}

func (d *downloadDBO) FromDomain(rec *domain.DownloadRecord) {
	d.ID = rec.ID
	d.URL = rec.URL
	d.Kind = string(rec.Kind)
	d.Quality = rec.Quality
	d.Status = string(rec.Status)
	d.Error = rec.Error
	d.Filename = rec.Filename
	d.CreatedAt = rec.CreatedAt.Unix()
	d.CompletedAt = rec.CompletedAt.Unix()
}

// SaveDownload upserts one terminal session outcome. A retried request ID
// replaces its previous row.
func (s *PersistentStore) SaveDownload(rec *domain.DownloadRecord) error {
	var dbo downloadDBO
	dbo.FromDomain(rec)

	query := `INSERT OR REPLACE INTO downloads (id, url, kind, quality, status, error, filename, created_at, completed_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		dbo.ID,
		dbo.URL,
		dbo.Kind,
		dbo.Quality,
		dbo.Status,
		dbo.Error,
		dbo.Filename,
		dbo.CreatedAt,
		dbo.CompletedAt,
	)
	return err
}

// RecentDownloads returns up to limit records, newest first.
func (s *PersistentStore) RecentDownloads(limit int) ([]*domain.DownloadRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, url, kind, quality, status, error, filename, created_at, completed_at
         FROM downloads ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.DownloadRecord
	for rows.Next() {
		var dbo downloadDBO
		if err := rows.Scan(&dbo.ID, &dbo.URL, &dbo.Kind, &dbo.Quality, &dbo.Status,
			&dbo.Error, &dbo.Filename, &dbo.CreatedAt, &dbo.CompletedAt); err != nil {
			return nil, err
		}
		records = append(records, dbo.ToDomain())
	}

	return records, rows.Err()
}
