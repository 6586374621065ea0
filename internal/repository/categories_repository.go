package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/pkg/entity"
)

type CategoriesRepository struct {
	conn PgConnection
}

func NewCategoriesRepo(conn PgConnection) *CategoriesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for categoriesRepo: " + err.Error())
	}
	return &CategoriesRepository{
		conn: conn,
	}
}

func (cr *CategoriesRepository) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	var created entity.Category
	row := cr.conn.QueryRow(ctx, `INSERT INTO categories (name, color) VALUES ($1, $2) RETURNING id, name, color;`,
		category.Name, category.Color,
	)
	if err := row.Scan(&created.ID, &created.Name, &created.Color); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return nil, errorvalues.ErrCategoryExists
			}
		}
		return nil, errors.New("creating category db error: " + err.Error())
	}
	return &created, nil
}

func (cr *CategoriesRepository) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := cr.conn.Query(ctx, `SELECT id, name, color FROM categories ORDER BY name;`)
	if err != nil {
		return nil, errors.New("listing categories error: " + err.Error())
	}
	defer rows.Close()
	categories := make([]*entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err = rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, errors.New("unmarshalling category error: " + err.Error())
		}
		categories = append(categories, &c)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return categories, nil
}

func (cr *CategoriesRepository) Update(ctx context.Context, category *entity.Category) error {
	ct, err := cr.conn.Exec(ctx, `UPDATE categories SET name = $1, color = $2 WHERE id = $3;`,
		category.Name, category.Color, category.ID,
	)
	if err != nil {
		return errors.New("error updating category: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrCategoryNotFound
	}
	return nil
}

func (cr *CategoriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := cr.conn.Exec(ctx, `DELETE FROM categories WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting category: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrCategoryNotFound
	}
	return nil
}
