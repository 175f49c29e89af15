package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// ResourceRepository is the single owner of canonical resource state.
// Every method hands out copies; mutating a returned value never touches
// the store.
type ResourceRepository interface {
	ListResources(ctx context.Context) ([]*models.Resource, error)
	GetResource(ctx context.Context, id string) (*models.Resource, error)
	CreateResource(ctx context.Context, r *models.Resource) (*models.Resource, error)
	UpdateResource(ctx context.Context, id string, upd models.ResourceUpdate) (*models.Resource, error)
	Ping(ctx context.Context) error
}

/* ------------------------------------------------------------------
   Postgres implementation
------------------------------------------------------------------ */

type resourceRepo struct {
	*BaseVersionedRepo[*models.Resource]
	db DB
}

func NewResourceRepository(db DB) ResourceRepository {
	r := &resourceRepo{db: db}
	selectStmt := baseSelectResource() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanResource)
	return r
}

func (r *resourceRepo) ListResources(ctx context.Context) ([]*models.Resource, error) {
	rows, err := r.db.Query(ctx, baseSelectResource()+" ORDER BY created_at, id")
	if err != nil {
		return nil, upstream("list resources", err)
	}
	defer rows.Close()

	out := []*models.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("list resources", err)
	}
	return out, nil
}

func (r *resourceRepo) GetResource(ctx context.Context, id string) (*models.Resource, error) {
	res, err := r.BaseVersionedRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("resource %q: %w", id, utils.ErrNotFound)
	}
	return res, nil
}

func (r *resourceRepo) CreateResource(ctx context.Context, in *models.Resource) (*models.Resource, error) {
	res := in.Clone()
	res.Normalize()
	if err := res.Validate(); err != nil {
		return nil, err
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}

	err := r.db.QueryRow(ctx, `
        INSERT INTO food_resources (
            id, name, type, address, latitude, longitude, hours,
            is_open, distance, is_favorite, phone, appointment_required,
            created_at, row_version
        ) VALUES ($1,$2,$3,$4,NULLIF($5,''),NULLIF($6,''),$7,$8,$9,$10,$11,$12, NOW(), 1)
        RETURNING created_at, row_version
    `,
		res.ID,
		res.Name,
		string(res.Type),
		res.Address,
		res.Latitude,
		res.Longitude,
		res.Hours,
		res.IsOpen,
		res.Distance,
		res.IsFavorite,
		res.Phone,
		res.AppointmentRequired,
	).Scan(&res.CreatedAt, &res.RowVersion)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("resource %q: %w", res.ID, utils.ErrConflict)
		}
		return nil, upstream("create resource", err)
	}
	return res, nil
}

func (r *resourceRepo) UpdateResource(ctx context.Context, id string, upd models.ResourceUpdate) (*models.Resource, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id, func(res *models.Resource) error {
		upd.Apply(res)
		return nil
	}, r.updateIfVersion)
}

func (r *resourceRepo) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return upstream("ping", err)
	}
	return nil
}

func (r *resourceRepo) updateIfVersion(ctx context.Context, res *models.Resource, expected int64) (pgconn.CommandTag, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE food_resources SET
            latitude=NULLIF($1,''), longitude=NULLIF($2,''),
            is_open=$3, is_favorite=$4, phone=$5, appointment_required=$6,
            row_version=row_version+1
        WHERE id=$7 AND row_version=$8
    `,
		res.Latitude, res.Longitude,
		res.IsOpen, res.IsFavorite, res.Phone, res.AppointmentRequired,
		res.ID, expected,
	)
	if err != nil {
		return nil, upstream("update resource", err)
	}
	return tag, nil
}

func baseSelectResource() string {
	return `
        SELECT
            id, name, type, address,
            COALESCE(latitude, ''), COALESCE(longitude, ''),
            hours, COALESCE(is_open, FALSE), distance, COALESCE(is_favorite, FALSE),
            phone, COALESCE(appointment_required, FALSE),
            created_at, row_version
        FROM food_resources
    `
}

func scanResource(row pgx.Row) (*models.Resource, error) {
	var (
		res     models.Resource
		resType string
	)
	err := row.Scan(
		&res.ID,
		&res.Name,
		&resType,
		&res.Address,
		&res.Latitude,
		&res.Longitude,
		&res.Hours,
		&res.IsOpen,
		&res.Distance,
		&res.IsFavorite,
		&res.Phone,
		&res.AppointmentRequired,
		&res.CreatedAt,
		&res.RowVersion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, upstream("scan resource", err)
	}
	res.Type = models.ResourceType(resType)
	return &res, nil
}
