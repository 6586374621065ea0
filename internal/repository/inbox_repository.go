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

type InboxRepository struct {
	conn PgConnection
}

func NewInboxRepo(conn PgConnection) *InboxRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for inboxRepo: " + err.Error())
	}
	return &InboxRepository{
		conn: conn,
	}
}

const noteColumns = `id, user_id, content, type, source, processed, captured_at`

func scanNote(row pgx.Row) (*entity.InboxNote, error) {
	var n entity.InboxNote
	err := row.Scan(&n.ID, &n.UserID, &n.Content, &n.Type, &n.Source, &n.Processed, &n.CapturedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (ir *InboxRepository) Create(ctx context.Context, note *entity.InboxNote) (*entity.InboxNote, error) {
	row := ir.conn.QueryRow(ctx, `INSERT INTO inbox (user_id, content, type, source) VALUES ($1, $2, $3, $4) RETURNING `+noteColumns+`;`,
		note.UserID, note.Content, note.Type, note.Source,
	)
	created, err := scanNote(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrOwnerNotFound
			}
		}
		return nil, errors.New("creating inbox note db error: " + err.Error())
	}
	return created, nil
}

func (ir *InboxRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InboxNote, error) {
	row := ir.conn.QueryRow(ctx, `SELECT `+noteColumns+` FROM inbox WHERE id = $1;`, id)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrNoteNotFound
		}
		return nil, errors.New("getting inbox note by id error: " + err.Error())
	}
	return note, nil
}

func (ir *InboxRepository) ListByUser(ctx context.Context, uid uuid.UUID) ([]*entity.InboxNote, error) {
	rows, err := ir.conn.Query(ctx, `SELECT `+noteColumns+` FROM inbox WHERE user_id = $1 ORDER BY processed ASC, captured_at DESC;`, uid)
	if err != nil {
		return nil, errors.New("getting inbox notes by uid error: " + err.Error())
	}
	defer rows.Close()
	notes := make([]*entity.InboxNote, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, errors.New("unmarshalling inbox note error: " + err.Error())
		}
		notes = append(notes, n)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return notes, nil
}

func (ir *InboxRepository) Update(ctx context.Context, note *entity.InboxNote) error {
	ct, err := ir.conn.Exec(ctx, `UPDATE inbox SET content = $1, processed = $2 WHERE id = $3;`,
		note.Content, note.Processed, note.ID,
	)
	if err != nil {
		return errors.New("error updating inbox note: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrNoteNotFound
	}
	return nil
}

func (ir *InboxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := ir.conn.Exec(ctx, `DELETE FROM inbox WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting inbox note: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrNoteNotFound
	}
	return nil
}

// ConvertToBlock inserts the block and retires the note inside a single
// transaction. Either both happen or neither; a retry can never duplicate
// the block or orphan the note.
func (ir *InboxRepository) ConvertToBlock(ctx context.Context, noteID uuid.UUID, block *entity.Block) (*entity.Block, error) {
	tx, err := ir.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("starting conversion tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	row := tx.QueryRow(ctx, `INSERT INTO blocks (user_id, title, start_time, end_time, tier, status, source, category_id, icon, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING `+blockColumns+`;`,
		block.UserID, block.Title, block.StartTime, block.EndTime, block.Tier, block.Status,
		block.Source, block.CategoryID, block.Icon, block.Color,
	)
	created, err := scanBlock(row)
	if err != nil {
		return nil, errors.New("inserting converted block error: " + err.Error())
	}
	ct, err := tx.Exec(ctx, `DELETE FROM inbox WHERE id = $1 AND user_id = $2;`, noteID, block.UserID)
	if err != nil {
		return nil, errors.New("deleting converted note error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return nil, errorvalues.ErrNoteNotFound
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, errors.New("committing conversion tx error: " + err.Error())
	}
	return created, nil
}
