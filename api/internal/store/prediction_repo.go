package store

import (
	"context"
	"database/sql"
	"time"

	"speciesnet-api/api/internal/classify"
)

var ErrNotFound = sql.ErrNoRows

// PredictionRepo records classification results so downstream consumers can
// read them back without re-running the model.
type PredictionRepo struct{ DB *sql.DB }

func NewPredictionRepo(db *sql.DB) *PredictionRepo { return &PredictionRepo{DB: db} }

// PredictionRecord is one stored classification: the normalized result plus
// metadata about the image it came from.
type PredictionRecord struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ImageName string `json:"imageName"`
	ImageType string `json:"imageType"`
	ImageSize int64  `json:"imageSize"`

	classify.Result
}

// EnsureSchema creates the predictions table when it does not exist yet.
func (r *PredictionRepo) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists animal_predictions (
  id               bigserial primary key,
  created_at       timestamptz not null default now(),
  image_name       text not null,
  image_type       text not null default '',
  image_size       bigint not null default 0,
  biological_class text,
  animal_order     text,
  family           text,
  genus            text,
  species          text,
  common_name      text,
  score            double precision not null default 0,
  bbox_x           double precision,
  bbox_y           double precision,
  bbox_width       double precision,
  bbox_height      double precision
)`
	_, err := r.DB.ExecContext(ctx, q)
	return err
}

// Save inserts a record and returns its id.
func (r *PredictionRepo) Save(ctx context.Context, rec *PredictionRecord) (int64, error) {
	const q = `
insert into animal_predictions (
  image_name, image_type, image_size,
  biological_class, animal_order, family, genus, species, common_name,
  score, bbox_x, bbox_y, bbox_width, bbox_height
) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
returning id`
	row := r.DB.QueryRowContext(ctx, q,
		rec.ImageName, rec.ImageType, rec.ImageSize,
		rec.BiologicalClass, rec.Order, rec.Family, rec.Genus, rec.Species, rec.CommonName,
		rec.Score, rec.BBoxX, rec.BBoxY, rec.BBoxWidth, rec.BBoxHeight,
	)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

const selectColumns = `
id, created_at, image_name, coalesce(image_type,'') as image_type, image_size,
biological_class, animal_order, family, genus, species, common_name,
score, bbox_x, bbox_y, bbox_width, bbox_height`

// Find returns one record by id, or ErrNotFound.
func (r *PredictionRepo) Find(ctx context.Context, id int64) (*PredictionRecord, error) {
	q := `select ` + selectColumns + ` from animal_predictions where id = $1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns the most recent records, newest first.
func (r *PredictionRepo) List(ctx context.Context, limit int) ([]PredictionRecord, error) {
	q := `select ` + selectColumns + ` from animal_predictions order by created_at desc, id desc limit $1`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PredictionRecord, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*PredictionRecord, error) {
	var rec PredictionRecord
	var class, order, family, genus, species, cn sql.NullString
	var bx, by, bw, bh sql.NullFloat64
	if err := row.Scan(
		&rec.ID, &rec.CreatedAt, &rec.ImageName, &rec.ImageType, &rec.ImageSize,
		&class, &order, &family, &genus, &species, &cn,
		&rec.Score, &bx, &by, &bw, &bh,
	); err != nil {
		return nil, err
	}
	rec.BiologicalClass = nullStr(class)
	rec.Order = nullStr(order)
	rec.Family = nullStr(family)
	rec.Genus = nullStr(genus)
	rec.Species = nullStr(species)
	rec.CommonName = nullStr(cn)
	rec.BBoxX = nullFloat(bx)
	rec.BBoxY = nullFloat(by)
	rec.BBoxWidth = nullFloat(bw)
	rec.BBoxHeight = nullFloat(bh)
	return &rec, nil
}

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
