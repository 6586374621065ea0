package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/pkg/entity"
)

type NeedsRepository struct {
	conn PgConnection
}

func NewNeedsRepo(conn PgConnection) *NeedsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for needsRepo: " + err.Error())
	}
	return &NeedsRepository{
		conn: conn,
	}
}

func (nr *NeedsRepository) Create(ctx context.Context, n *entity.BasicNeed) (*entity.BasicNeed, error) {
	var created entity.BasicNeed
	row := nr.conn.QueryRow(ctx, `INSERT INTO necesidades_basicas (user_id, tipo, hora, duracion_minutos, rango_flexible)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, user_id, tipo, hora, duracion_minutos, rango_flexible, creado_en;`,
		n.UserID, n.Type, n.Hour, n.DurationMinutes, n.FlexibleRange,
	)
	err := row.Scan(&created.ID, &created.UserID, &created.Type, &created.Hour,
		&created.DurationMinutes, &created.FlexibleRange, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrOwnerNotFound
			}
		}
		return nil, errors.New("creating basic need db error: " + err.Error())
	}
	return &created, nil
}

func (nr *NeedsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BasicNeed, error) {
	var n entity.BasicNeed
	row := nr.conn.QueryRow(ctx, `SELECT id, user_id, tipo, hora, duracion_minutos, rango_flexible, creado_en FROM necesidades_basicas WHERE id = $1;`, id)
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Hour, &n.DurationMinutes, &n.FlexibleRange, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrNeedNotFound
		}
		return nil, errors.New("getting basic need by id error: " + err.Error())
	}
	return &n, nil
}

func (nr *NeedsRepository) ListByUser(ctx context.Context, uid uuid.UUID) ([]*entity.BasicNeed, error) {
	rows, err := nr.conn.Query(ctx, `SELECT id, user_id, tipo, hora, duracion_minutos, rango_flexible, creado_en FROM necesidades_basicas WHERE user_id = $1 ORDER BY hora;`, uid)
	if err != nil {
		return nil, errors.New("getting basic needs by uid error: " + err.Error())
	}
	defer rows.Close()
	needs := make([]*entity.BasicNeed, 0)
	for rows.Next() {
		var n entity.BasicNeed
		err = rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Hour, &n.DurationMinutes, &n.FlexibleRange, &n.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling basic need error: " + err.Error())
		}
		needs = append(needs, &n)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return needs, nil
}

func (nr *NeedsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := nr.conn.Exec(ctx, `DELETE FROM necesidades_basicas WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting basic need: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrNeedNotFound
	}
	return nil
}
