package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onthi-app/onthi-backend/internal/model"
)

// RefDataRepository serves the three structurally identical reference-data
// tables (subjects, grade_levels, exam_types). The collection name selects
// the table; model.RefCollection.Valid guards the interpolation.
type RefDataRepository struct {
	pool *pgxpool.Pool
}

// NewRefDataRepository creates a new RefDataRepository.
func NewRefDataRepository(pool *pgxpool.Pool) *RefDataRepository {
	return &RefDataRepository{pool: pool}
}

const refColumns = `id, name, code, is_active, is_deleted, created_at, updated_at`

// List retrieves a filtered, paginated page of a collection plus the total
// matching count.
func (r *RefDataRepository) List(ctx context.Context, coll model.RefCollection, cond model.RefCond, limit, offset int) ([]model.RefItem, int, error) {
	if !coll.Valid() {
		return nil, 0, fmt.Errorf("unknown collection %q", coll)
	}

	where := ``
	var args []interface{}
	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		if where == "" {
			where = ` WHERE `
		} else {
			where += ` AND `
		}
		where += fmt.Sprintf(clause, len(args))
	}

	if cond.IsDeleted != nil {
		add(`is_deleted = $%d`, *cond.IsDeleted)
	}
	if cond.IsActive != nil {
		add(`is_active = $%d`, *cond.IsActive)
	}
	if cond.Name != nil {
		if cond.Name.Exact != "" {
			add(`name = $%d`, cond.Name.Exact)
		} else if cond.Name.CaseInsensitive {
			add(`name ILIKE $%d`, "%"+cond.Name.Pattern+"%")
		} else {
			add(`name LIKE $%d`, "%"+cond.Name.Pattern+"%")
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM `+string(coll)+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		refColumns, coll, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []model.RefItem
	for rows.Next() {
		var it model.RefItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Code, &it.IsActive, &it.IsDeleted,
			&it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

// GetByID retrieves one entry from a collection.
func (r *RefDataRepository) GetByID(ctx context.Context, coll model.RefCollection, id uuid.UUID) (*model.RefItem, error) {
	if !coll.Valid() {
		return nil, fmt.Errorf("unknown collection %q", coll)
	}
	it := &model.RefItem{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+refColumns+` FROM `+string(coll)+` WHERE id = $1`, id,
	).Scan(&it.ID, &it.Name, &it.Code, &it.IsActive, &it.IsDeleted, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Exists reports whether an active, non-deleted entry exists in a collection.
func (r *RefDataRepository) Exists(ctx context.Context, coll model.RefCollection, id uuid.UUID) (bool, error) {
	if !coll.Valid() {
		return false, fmt.Errorf("unknown collection %q", coll)
	}
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+string(coll)+` WHERE id = $1 AND is_deleted = FALSE)`,
		id).Scan(&exists)
	return exists, err
}

// Create inserts a new entry.
func (r *RefDataRepository) Create(ctx context.Context, coll model.RefCollection, it *model.RefItem) error {
	if !coll.Valid() {
		return fmt.Errorf("unknown collection %q", coll)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO `+string(coll)+` (name, code) VALUES ($1, $2)
		 RETURNING id, is_active, is_deleted, created_at, updated_at`,
		it.Name, it.Code,
	).Scan(&it.ID, &it.IsActive, &it.IsDeleted, &it.CreatedAt, &it.UpdatedAt)
}

// Update updates name/code/is_active on an entry.
func (r *RefDataRepository) Update(ctx context.Context, coll model.RefCollection, it *model.RefItem) error {
	if !coll.Valid() {
		return fmt.Errorf("unknown collection %q", coll)
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE `+string(coll)+` SET name = $1, code = $2, is_active = $3, updated_at = NOW() WHERE id = $4`,
		it.Name, it.Code, it.IsActive, it.ID)
	return err
}

// SoftDelete marks an entry deleted without removing the row. Returns false
// when the entry does not exist or is already deleted.
func (r *RefDataRepository) SoftDelete(ctx context.Context, coll model.RefCollection, id uuid.UUID) (bool, error) {
	if !coll.Valid() {
		return false, fmt.Errorf("unknown collection %q", coll)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE `+string(coll)+` SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
