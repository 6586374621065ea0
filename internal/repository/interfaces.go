package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lefi/digital-brain/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type ProfilesRepositoryI interface {
	// Creates profile row. Fails with ErrLefiCodeTaken on code collision
	Create(ctx context.Context, profile *entity.Profile) (*entity.Profile, error)
	GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.Profile, error)
	// Bulk lookup used to decorate friend lists
	GetByUserIDs(ctx context.Context, uids []uuid.UUID) ([]*entity.Profile, error)
	FindByLefiCode(ctx context.Context, code string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	// Flips the server-side onboarding flag
	SetOnboardingCompleted(ctx context.Context, uid uuid.UUID) error
}

type BlocksRepositoryI interface {
	// Inserts block and returns it with generated id and timestamps
	Create(ctx context.Context, block *entity.Block) (*entity.Block, error)
	// Inserts a whole assistant batch in one transaction
	CreateBatch(ctx context.Context, blocks []*entity.Block) ([]*entity.Block, error)
	// Idempotent insert of a materialized block, keyed by
	// (user_id, routine_id, date). Reports whether a row was inserted.
	UpsertMaterialized(ctx context.Context, block *entity.Block) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Block, error)
	// Lists user's blocks ordered by start time; date and status filters
	// are optional
	ListByUser(ctx context.Context, uid uuid.UUID, filter BlocksFilter) ([]*entity.Block, error)
	Update(ctx context.Context, block *entity.Block) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BlocksFilter struct {
	Date   *time.Time
	Status string
	Limit  int
	Offset int
}

type CategoriesRepositoryI interface {
	Create(ctx context.Context, category *entity.Category) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type InboxRepositoryI interface {
	Create(ctx context.Context, note *entity.InboxNote) (*entity.InboxNote, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InboxNote, error)
	// Lists user's notes, newest captured first
	ListByUser(ctx context.Context, uid uuid.UUID) ([]*entity.InboxNote, error)
	Update(ctx context.Context, note *entity.InboxNote) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Creates the block and deletes the note in one transaction, so a
	// half-converted note can never be observed
	ConvertToBlock(ctx context.Context, noteID uuid.UUID, block *entity.Block) (*entity.Block, error)
}

type FriendshipsRepositoryI interface {
	Create(ctx context.Context, userID, friendID uuid.UUID) (*entity.Friendship, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Friendship, error)
	// Finds a friendship between two users regardless of direction
	GetBetween(ctx context.Context, a, b uuid.UUID) (*entity.Friendship, error)
	// Accepted friendships where uid is on either side
	ListAcceptedByUser(ctx context.Context, uid uuid.UUID) ([]*entity.Friendship, error)
	// Incoming pending requests (uid is the recipient)
	ListPendingForUser(ctx context.Context, uid uuid.UUID) ([]*entity.Friendship, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SleepRepositoryI interface {
	GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.SleepSettings, error)
	// Singleton row per user, insert-or-update
	Upsert(ctx context.Context, settings *entity.SleepSettings) error
}

type RoutineRepositoryI interface {
	Create(ctx context.Context, e *entity.RoutineEntry) (*entity.RoutineEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RoutineEntry, error)
	ListByUser(ctx context.Context, uid uuid.UUID) ([]*entity.RoutineEntry, error)
	Update(ctx context.Context, e *entity.RoutineEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type NeedsRepositoryI interface {
	Create(ctx context.Context, n *entity.BasicNeed) (*entity.BasicNeed, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BasicNeed, error)
	ListByUser(ctx context.Context, uid uuid.UUID) ([]*entity.BasicNeed, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
