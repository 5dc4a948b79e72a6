package mysql

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"strings"

	"github.com/reviewpulse/reviewpulse/internal/domain"
)

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertApp(ctx context.Context, a domain.App) error {
	_, err := r.db.ExecContext(ctx, upsertAppSQL,
		a.ID,
		a.Title,
		a.Developer,
		a.Rating,
		a.RatingCount,
		a.Price,
		a.Category,
		a.Description,
		a.AppURL,
		a.IconURL,
	)
	return err
}

// sourceID derives the stable dedup key for a review row. The same
// (author, content, date) tuple always maps to the same id, so repeated
// ingestion hits ON DUPLICATE KEY instead of inserting twice.
func sourceID(rv domain.Review) string {
	sum := sha1.Sum([]byte(rv.Key()))
	return hex.EncodeToString(sum[:])
}

func (r *Repo) UpsertReviews(ctx context.Context, appID int64, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*9)
	for _, rv := range rs {
		values = append(values, "(?,?,?,?,?,?,?,?,?)")
		args = append(args,
			appID,
			sourceID(rv),
			rv.Author,
			nullStr(rv.Rating),
			nullStr(rv.Title),
			rv.Content,
			rv.Date,
			nullStr(rv.Version),
			nullStr(rv.Country),
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

func (r *Repo) GetApp(ctx context.Context, id int64) (domain.App, error) {
	row := r.db.QueryRowContext(ctx, getAppSQL, id)

	var a domain.App
	var developer, rating, price, category, description, appURL, iconURL sql.NullString
	var ratingCount sql.NullInt64

	if err := row.Scan(
		&a.ID,
		&a.Title,
		&developer,
		&rating,
		&ratingCount,
		&price,
		&category,
		&description,
		&appURL,
		&iconURL,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.App{}, domain.ErrNotFound
		}
		return domain.App{}, err
	}

	a.Developer = developer.String
	a.Rating = rating.String
	a.RatingCount = int(ratingCount.Int64)
	a.Price = price.String
	a.Category = category.String
	a.Description = description.String
	a.AppURL = appURL.String
	a.IconURL = iconURL.String
	return a, nil
}

func (r *Repo) ListReviews(ctx context.Context, appID int64, limit int) ([]domain.ArchivedReview, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, appID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ArchivedReview
	for rows.Next() {
		var ar domain.ArchivedReview
		var rating, title, version, country sql.NullString
		if err := rows.Scan(
			&ar.ID,
			&ar.AppID,
			&ar.SourceID,
			&ar.Author,
			&rating,
			&title,
			&ar.Content,
			&ar.Date,
			&version,
			&country,
		); err != nil {
			return nil, err
		}
		ar.Rating = rating.String
		ar.Title = title.String
		ar.Version = version.String
		ar.Country = country.String
		out = append(out, ar)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
