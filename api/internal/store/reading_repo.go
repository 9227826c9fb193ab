package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"palmyst/api/internal/models"
)

// ErrNotFound is returned for an id with no reading.
var ErrNotFound = errors.New("reading not found")

// ErrEmailAlreadySet is returned when the reading exists but already has an email.
var ErrEmailAlreadySet = errors.New("reading email already set")

type ReadingRepo struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewReadingRepo(db *sql.DB, d Dialect) *ReadingRepo { return &ReadingRepo{DB: db, Dialect: d} }

var rePlaceholder = regexp.MustCompile(`\$\d+`)

func (r *ReadingRepo) q(query string) string {
	if r.Dialect == SQLite {
		return rePlaceholder.ReplaceAllString(query, "?")
	}
	return query
}

// InsertReading stores a new reading and returns the id the database assigned.
// There is no idempotency key: a retried request creates a second row.
func (r *ReadingRepo) InsertReading(ctx context.Context, nr models.NewReading) (models.ReadingID, error) {
	const q = `insert into readings (name, phone, reading) values ($1, $2, $3) returning id`
	var id int64
	if err := r.DB.QueryRowContext(ctx, r.q(q), nr.Name, nr.Phone, nr.Text).Scan(&id); err != nil {
		return 0, err
	}
	return models.ReadingID(id), nil
}

// UpdateEmail attaches an email to a reading that has none yet.
// The email of a reading is written at most once: a second call returns
// ErrEmailAlreadySet, an unknown id ErrNotFound.
func (r *ReadingRepo) UpdateEmail(ctx context.Context, id models.ReadingID, email string) error {
	const q = `update readings set email = $1 where id = $2 and email is null`
	res, err := r.DB.ExecContext(ctx, r.q(q), email, int64(id))
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff > 0 {
		return nil
	}
	if _, err := r.Find(ctx, id); err != nil {
		return err
	}
	return ErrEmailAlreadySet
}

// Find loads one reading by id.
func (r *ReadingRepo) Find(ctx context.Context, id models.ReadingID) (*models.Reading, error) {
	const q = `select id, name, phone, coalesce(email, ''), reading from readings where id = $1`
	var (
		rid int64
		rd  models.Reading
	)
	err := r.DB.QueryRowContext(ctx, r.q(q), int64(id)).Scan(&rid, &rd.Name, &rd.Phone, &rd.Email, &rd.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rd.ID = models.ReadingID(rid)
	return &rd, nil
}
