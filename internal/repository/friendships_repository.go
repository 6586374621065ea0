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

type FriendshipsRepository struct {
	conn PgConnection
}

func NewFriendshipsRepo(conn PgConnection) *FriendshipsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for friendshipsRepo: " + err.Error())
	}
	return &FriendshipsRepository{
		conn: conn,
	}
}

const friendshipColumns = `id, user_id, friend_id, status, created_at, updated_at`

func scanFriendship(row pgx.Row) (*entity.Friendship, error) {
	var f entity.Friendship
	err := row.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (fr *FriendshipsRepository) Create(ctx context.Context, userID, friendID uuid.UUID) (*entity.Friendship, error) {
	row := fr.conn.QueryRow(ctx, `INSERT INTO friendships (user_id, friend_id, status) VALUES ($1, $2, $3) RETURNING `+friendshipColumns+`;`,
		userID, friendID, entity.FriendshipPending,
	)
	created, err := scanFriendship(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return nil, errorvalues.ErrFriendshipExists
			// FK violation
			case "23503":
				return nil, errorvalues.ErrUserNotFound
			}
		}
		return nil, errors.New("creating friendship db error: " + err.Error())
	}
	return created, nil
}

func (fr *FriendshipsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Friendship, error) {
	row := fr.conn.QueryRow(ctx, `SELECT `+friendshipColumns+` FROM friendships WHERE id = $1;`, id)
	friendship, err := scanFriendship(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrFriendshipNotFound
		}
		return nil, errors.New("getting friendship by id error: " + err.Error())
	}
	return friendship, nil
}

func (fr *FriendshipsRepository) GetBetween(ctx context.Context, a, b uuid.UUID) (*entity.Friendship, error) {
	row := fr.conn.QueryRow(ctx, `SELECT `+friendshipColumns+` FROM friendships
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1);`, a, b)
	friendship, err := scanFriendship(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrFriendshipNotFound
		}
		return nil, errors.New("getting friendship between users error: " + err.Error())
	}
	return friendship, nil
}

func (fr *FriendshipsRepository) ListAcceptedByUser(ctx context.Context, uid uuid.UUID) ([]*entity.Friendship, error) {
	rows, err := fr.conn.Query(ctx, `SELECT `+friendshipColumns+` FROM friendships
		WHERE (user_id = $1 OR friend_id = $1) AND status = $2 ORDER BY created_at;`, uid, entity.FriendshipAccepted)
	if err != nil {
		return nil, errors.New("listing accepted friendships error: " + err.Error())
	}
	return fr.collect(rows)
}

func (fr *FriendshipsRepository) ListPendingForUser(ctx context.Context, uid uuid.UUID) ([]*entity.Friendship, error) {
	rows, err := fr.conn.Query(ctx, `SELECT `+friendshipColumns+` FROM friendships
		WHERE friend_id = $1 AND status = $2 ORDER BY created_at;`, uid, entity.FriendshipPending)
	if err != nil {
		return nil, errors.New("listing pending friendships error: " + err.Error())
	}
	return fr.collect(rows)
}

func (fr *FriendshipsRepository) collect(rows pgx.Rows) ([]*entity.Friendship, error) {
	defer rows.Close()
	friendships := make([]*entity.Friendship, 0)
	for rows.Next() {
		f, err := scanFriendship(rows)
		if err != nil {
			return nil, errors.New("unmarshalling friendship error: " + err.Error())
		}
		friendships = append(friendships, f)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return friendships, nil
}

func (fr *FriendshipsRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	ct, err := fr.conn.Exec(ctx, `UPDATE friendships SET status = $1, updated_at = NOW() WHERE id = $2;`, status, id)
	if err != nil {
		return errors.New("error updating friendship status: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrFriendshipNotFound
	}
	return nil
}

func (fr *FriendshipsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := fr.conn.Exec(ctx, `DELETE FROM friendships WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting friendship: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrFriendshipNotFound
	}
	return nil
}
