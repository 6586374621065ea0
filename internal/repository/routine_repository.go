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

type RoutineRepository struct {
	conn PgConnection
}

func NewRoutineRepo(conn PgConnection) *RoutineRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for routineRepo: " + err.Error())
	}
	return &RoutineRepository{
		conn: conn,
	}
}

const routineColumns = `id, user_id, nombre_actividad, dias, hora_inicio, hora_fin, es_inflexible, requiere_recordatorio, bloque_tipo, estado, ubicacion, category_id, creado_en, actualizado_en`

func scanRoutineEntry(row pgx.Row) (*entity.RoutineEntry, error) {
	var e entity.RoutineEntry
	err := row.Scan(&e.ID, &e.UserID, &e.ActivityName, &e.Days, &e.StartTime, &e.EndTime,
		&e.Inflexible, &e.NeedReminder, &e.Type, &e.State, &e.Location, &e.CategoryID,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (rr *RoutineRepository) Create(ctx context.Context, e *entity.RoutineEntry) (*entity.RoutineEntry, error) {
	row := rr.conn.QueryRow(ctx, `INSERT INTO rutina_base_usuario (user_id, nombre_actividad, dias, hora_inicio, hora_fin, es_inflexible, requiere_recordatorio, bloque_tipo, estado, ubicacion, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING `+routineColumns+`;`,
		e.UserID, e.ActivityName, e.Days, e.StartTime, e.EndTime, e.Inflexible,
		e.NeedReminder, e.Type, e.State, e.Location, e.CategoryID,
	)
	created, err := scanRoutineEntry(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrOwnerNotFound
			}
		}
		return nil, errors.New("creating routine entry db error: " + err.Error())
	}
	return created, nil
}

func (rr *RoutineRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RoutineEntry, error) {
	row := rr.conn.QueryRow(ctx, `SELECT `+routineColumns+` FROM rutina_base_usuario WHERE id = $1;`, id)
	entry, err := scanRoutineEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrRoutineNotFound
		}
		return nil, errors.New("getting routine entry by id error: " + err.Error())
	}
	return entry, nil
}

func (rr *RoutineRepository) ListByUser(ctx context.Context, uid uuid.UUID) ([]*entity.RoutineEntry, error) {
	rows, err := rr.conn.Query(ctx, `SELECT `+routineColumns+` FROM rutina_base_usuario WHERE user_id = $1 ORDER BY hora_inicio;`, uid)
	if err != nil {
		return nil, errors.New("getting routine entries by uid error: " + err.Error())
	}
	defer rows.Close()
	entries := make([]*entity.RoutineEntry, 0)
	for rows.Next() {
		e, err := scanRoutineEntry(rows)
		if err != nil {
			return nil, errors.New("unmarshalling routine entry error: " + err.Error())
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return entries, nil
}

func (rr *RoutineRepository) Update(ctx context.Context, e *entity.RoutineEntry) error {
	ct, err := rr.conn.Exec(ctx, `UPDATE rutina_base_usuario SET nombre_actividad = $1, dias = $2, hora_inicio = $3, hora_fin = $4, es_inflexible = $5, requiere_recordatorio = $6, bloque_tipo = $7, estado = $8, ubicacion = $9, category_id = $10, actualizado_en = NOW() WHERE id = $11;`,
		e.ActivityName, e.Days, e.StartTime, e.EndTime, e.Inflexible, e.NeedReminder,
		e.Type, e.State, e.Location, e.CategoryID, e.ID,
	)
	if err != nil {
		return errors.New("error updating routine entry: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrRoutineNotFound
	}
	return nil
}

func (rr *RoutineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := rr.conn.Exec(ctx, `DELETE FROM rutina_base_usuario WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting routine entry: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrRoutineNotFound
	}
	return nil
}
