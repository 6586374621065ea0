package repository

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/pkg/entity"
)

type BlocksRepository struct {
	conn PgConnection
}

func NewBlocksRepo(conn PgConnection) *BlocksRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for blocksRepo: " + err.Error())
	}
	return &BlocksRepository{
		conn: conn,
	}
}

const blockColumns = `id, user_id, title, start_time, end_time, tier, status, source, category_id, routine_id, icon, color, created_at, updated_at`

func scanBlock(row pgx.Row) (*entity.Block, error) {
	var b entity.Block
	err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.StartTime, &b.EndTime, &b.Tier, &b.Status,
		&b.Source, &b.CategoryID, &b.RoutineID, &b.Icon, &b.Color, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (br *BlocksRepository) Create(ctx context.Context, block *entity.Block) (*entity.Block, error) {
	row := br.conn.QueryRow(ctx, `INSERT INTO blocks (user_id, title, start_time, end_time, tier, status, source, category_id, routine_id, icon, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING `+blockColumns+`;`,
		block.UserID, block.Title, block.StartTime, block.EndTime, block.Tier, block.Status,
		block.Source, block.CategoryID, block.RoutineID, block.Icon, block.Color,
	)
	created, err := scanBlock(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrOwnerNotFound
			}
		}
		return nil, errors.New("creating block db error: " + err.Error())
	}
	return created, nil
}

func (br *BlocksRepository) CreateBatch(ctx context.Context, blocks []*entity.Block) ([]*entity.Block, error) {
	tx, err := br.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("starting batch tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	created := make([]*entity.Block, 0, len(blocks))
	for _, block := range blocks {
		row := tx.QueryRow(ctx, `INSERT INTO blocks (user_id, title, start_time, end_time, tier, status, source, category_id, routine_id, icon, color)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING `+blockColumns+`;`,
			block.UserID, block.Title, block.StartTime, block.EndTime, block.Tier, block.Status,
			block.Source, block.CategoryID, block.RoutineID, block.Icon, block.Color,
		)
		b, err := scanBlock(row)
		if err != nil {
			return nil, errors.New("batch inserting block error: " + err.Error())
		}
		created = append(created, b)
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, errors.New("committing batch tx error: " + err.Error())
	}
	return created, nil
}

// UpsertMaterialized relies on the partial unique index over
// (user_id, routine_id, date of start_time): concurrent materializations of
// the same entry collapse into one row at the store, not in client code.
func (br *BlocksRepository) UpsertMaterialized(ctx context.Context, block *entity.Block) (bool, error) {
	ct, err := br.conn.Exec(ctx, `INSERT INTO blocks (user_id, title, start_time, end_time, tier, status, source, category_id, routine_id, icon, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, routine_id, (start_time::date)) WHERE routine_id IS NOT NULL DO NOTHING;`,
		block.UserID, block.Title, block.StartTime, block.EndTime, block.Tier, block.Status,
		block.Source, block.CategoryID, block.RoutineID, block.Icon, block.Color,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return false, errorvalues.ErrRoutineNotFound
			}
		}
		return false, errors.New("upserting materialized block error: " + err.Error())
	}
	return ct.RowsAffected() > 0, nil
}

func (br *BlocksRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Block, error) {
	row := br.conn.QueryRow(ctx, `SELECT `+blockColumns+` FROM blocks WHERE id = $1;`, id)
	block, err := scanBlock(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrBlockNotFound
		}
		return nil, errors.New("getting block by id error: " + err.Error())
	}
	return block, nil
}

func (br *BlocksRepository) ListByUser(ctx context.Context, uid uuid.UUID, filter BlocksFilter) ([]*entity.Block, error) {
	query := `SELECT ` + blockColumns + ` FROM blocks WHERE user_id = $1`
	args := []any{uid}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		query += ` AND start_time::date = $2::date`
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY start_time ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}
	query += `;`
	rows, err := br.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.New("getting blocks by uid error: " + err.Error())
	}
	defer rows.Close()
	blocks := make([]*entity.Block, 0)
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, errors.New("unmarshalling block error: " + err.Error())
		}
		blocks = append(blocks, b)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return blocks, nil
}

func (br *BlocksRepository) Update(ctx context.Context, block *entity.Block) error {
	ct, err := br.conn.Exec(ctx, `UPDATE blocks SET title = $1, start_time = $2, end_time = $3, tier = $4, status = $5, category_id = $6, icon = $7, color = $8, updated_at = NOW() WHERE id = $9;`,
		block.Title, block.StartTime, block.EndTime, block.Tier, block.Status, block.CategoryID, block.Icon, block.Color, block.ID,
	)
	if err != nil {
		return errors.New("error updating block: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrBlockNotFound
	}
	return nil
}

func (br *BlocksRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := br.conn.Exec(ctx, `DELETE FROM blocks WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting block: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrBlockNotFound
	}
	return nil
}

