package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/platform/obs"
	"trip-logbook-service/internal/ports"
)

// SQLite-backed implementation of the LogbookStore port.
// Each owner has a single row holding the whole logbook as JSON.
type SqliteLogbookStore struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSqliteLogbookStore(db *sql.DB) *SqliteLogbookStore {
	return &SqliteLogbookStore{DB: db, now: time.Now}
}

func (s *SqliteLogbookStore) Read(ctx context.Context, owner ports.Owner) (_ domain.Logbook, err error) {
	defer obs.Time(ctx, "logbook.sqlite.Read")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite logbook store: DB is nil")
	}
	key, err := owner.Key()
	if err != nil {
		return nil, fmt.Errorf("read logbook: %w", err)
	}

	var data string
	err = s.DB.QueryRowContext(ctx, `
	SELECT logbook_data
	FROM driver_logbooks
	WHERE owner_key = ?;
	`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Logbook{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read logbook: query driver_logbooks owner=%s: %w", key, err)
	}

	l, err := domain.DecodeLogbook([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("read logbook owner=%s: %w", key, err)
	}
	return l, nil
}

func (s *SqliteLogbookStore) Write(ctx context.Context, owner ports.Owner, logbook domain.Logbook) (err error) {
	defer obs.Time(ctx, "logbook.sqlite.Write")(&err)

	if s.DB == nil {
		return errors.New("sqlite logbook store: DB is nil")
	}
	key, err := owner.Key()
	if err != nil {
		return fmt.Errorf("write logbook: %w", err)
	}

	data, err := domain.EncodeLogbook(logbook)
	if err != nil {
		return fmt.Errorf("write logbook owner=%s: %w", key, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO driver_logbooks (
		owner_key,
		logbook_data,
		updated_at
	)
	VALUES (?, ?, ?);
	`, key, string(data), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write logbook: upsert owner=%s: %w", key, err)
	}

	return nil
}
