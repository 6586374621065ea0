package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lefi/digital-brain/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type CreateBlockRequest struct {
	Title      string    `validate:"required,max=200"`
	StartTime  time.Time `validate:"required"`
	EndTime    time.Time `validate:"required,gtfield=StartTime"`
	Tier       int       `validate:"omitempty,min=1,max=4"`
	CategoryID *uuid.UUID
	Icon       string
	Color      string
}

type UpdateBlockRequest struct {
	Title      *string    `validate:"omitempty,max=200"`
	StartTime  *time.Time ``
	EndTime    *time.Time ``
	Tier       *int       `validate:"omitempty,min=1,max=4"`
	Status     *string    `validate:"omitempty,oneof=pending in_progress completed"`
	CategoryID *uuid.UUID
	Icon       *string
	Color      *string
}

type CreateCategoryRequest struct {
	Name  string `validate:"required,max=100"`
	Color string `validate:"required,hexcolor"`
}

type CaptureNoteRequest struct {
	Content string `validate:"required,max=2000"`
	Type    string `validate:"required,oneof=text voice"`
	Source  string `validate:"omitempty,max=100"`
}

type ProcessNoteRequest struct {
	Title      string    `validate:"omitempty,max=200"`
	Date       time.Time `validate:"required"`
	StartTime  string    `validate:"required,clock"`
	EndTime    string    `validate:"required,clock"`
	Tier       int       `validate:"omitempty,min=1,max=4"`
	CategoryID *uuid.UUID
}

type RoutineEntryRequest struct {
	ActivityName string `validate:"required,max=200"`
	Days         string `validate:"required,weekday_letters"`
	StartTime    string `validate:"required,clock"`
	EndTime      string `validate:"required,clock"`
	Inflexible   bool
	NeedReminder bool
	Type         string `validate:"required,oneof=fijo basico personal"`
	State        string `validate:"omitempty,oneof=activo pausado_temporalmente"`
	Location     string `validate:"omitempty,max=200"`
	CategoryID   *uuid.UUID
}

type BasicNeedRequest struct {
	Type            string `validate:"required,max=100"`
	Hour            string `validate:"required,clock"`
	DurationMinutes int    `validate:"min=1,max=1440"`
	FlexibleRange   bool
}

type UpdateProfileRequest struct {
	DisplayName *string `validate:"omitempty,min=1,max=100"`
	AvatarURL   *string `validate:"omitempty,url"`
	Bio         *string `validate:"omitempty,max=500"`
}

type SleepSettingsRequest struct {
	PreferredBedtime string `validate:"omitempty,clock"`
	CycleMinutes     int    `validate:"omitempty,min=30,max=180"`
	AlarmScheme      string `validate:"omitempty,max=100"`
	SleepGoals       []string
	LastSleepStart   *time.Time
	LastWake         *time.Time
}

type PlanActivity struct {
	Name            string `validate:"required,max=200"`
	DurationMinutes int    `validate:"min=1,max=1440"`
	Category        string `validate:"omitempty,max=100"`
}

type PlanDayRequest struct {
	Date          time.Time      `validate:"required"`
	WindowStart   string         `validate:"required,clock"`
	WindowEnd     string         `validate:"required,clock"`
	KeptBlockIDs  []uuid.UUID    ``
	Activities    []PlanActivity `validate:"required,min=1,dive"`
	IncludeBreaks bool
	BreakMinutes  int `validate:"omitempty,min=1,max=120"`
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type BlocksServiceI interface {
	CreateBlock(ctx context.Context, uid uuid.UUID, req *CreateBlockRequest) (*entity.Block, error)
	GetBlock(ctx context.Context, blockID, userID uuid.UUID) (*entity.Block, error)
	ListBlocks(ctx context.Context, uid uuid.UUID, date *time.Time, status string, pagination PaginationOpts) ([]*entity.Block, error)
	UpdateBlock(ctx context.Context, blockID, userID uuid.UUID, req *UpdateBlockRequest) (*entity.Block, error)
	DeleteBlock(ctx context.Context, blockID, userID uuid.UUID) error
}

type CategoriesServiceI interface {
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *CreateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type InboxServiceI interface {
	CaptureNote(ctx context.Context, uid uuid.UUID, req *CaptureNoteRequest) (*entity.InboxNote, error)
	ListNotes(ctx context.Context, uid uuid.UUID) ([]*entity.InboxNote, error)
	DeleteNote(ctx context.Context, noteID, userID uuid.UUID) error
	// Converts the note into a block and retires the note, atomically
	ProcessNote(ctx context.Context, noteID, userID uuid.UUID, req *ProcessNoteRequest) (*entity.Block, error)
}

type RoutineServiceI interface {
	CreateEntry(ctx context.Context, uid uuid.UUID, req *RoutineEntryRequest) (*entity.RoutineEntry, error)
	ListEntries(ctx context.Context, uid uuid.UUID) ([]*entity.RoutineEntry, error)
	UpdateEntry(ctx context.Context, entryID, userID uuid.UUID, req *RoutineEntryRequest) (*entity.RoutineEntry, error)
	DeleteEntry(ctx context.Context, entryID, userID uuid.UUID) error
	// Projects due entries into blocks for the date; safe to call any
	// number of times. Returns how many blocks were actually inserted.
	Materialize(ctx context.Context, uid uuid.UUID, date time.Time) (int, error)
}

type NeedsServiceI interface {
	CreateNeed(ctx context.Context, uid uuid.UUID, req *BasicNeedRequest) (*entity.BasicNeed, error)
	ListNeeds(ctx context.Context, uid uuid.UUID) ([]*entity.BasicNeed, error)
	DeleteNeed(ctx context.Context, needID, userID uuid.UUID) error
}

type FriendsServiceI interface {
	ListFriends(ctx context.Context, uid uuid.UUID) ([]*entity.Friend, error)
	ListRequests(ctx context.Context, uid uuid.UUID) ([]*entity.Friend, error)
	SendRequest(ctx context.Context, uid uuid.UUID, lefiCode string) (*entity.Friendship, error)
	AcceptRequest(ctx context.Context, uid, friendshipID uuid.UUID) error
	RejectRequest(ctx context.Context, uid, friendshipID uuid.UUID) error
	RemoveFriend(ctx context.Context, uid, friendshipID uuid.UUID) error
	BlockFriend(ctx context.Context, uid, friendshipID uuid.UUID) error
}

type ProfileServiceI interface {
	// Returns the user's profile, creating it with a fresh LEFI code on
	// first access
	GetOrCreate(ctx context.Context, uid uuid.UUID, displayName string) (*entity.Profile, error)
	Update(ctx context.Context, uid uuid.UUID, req *UpdateProfileRequest) (*entity.Profile, error)
	CompleteOnboarding(ctx context.Context, uid uuid.UUID) error
	SearchByLefiCode(ctx context.Context, code string) (*entity.Profile, error)
}

type SleepServiceI interface {
	Get(ctx context.Context, uid uuid.UUID) (*entity.SleepSettings, error)
	Save(ctx context.Context, uid uuid.UUID, req *SleepSettingsRequest) (*entity.SleepSettings, error)
}

type AssistantServiceI interface {
	// Validates the aggregate time budget and, when feasible, creates the
	// sequential blocks. Infeasible plans create nothing.
	PlanDay(ctx context.Context, uid uuid.UUID, req *PlanDayRequest) ([]*entity.Block, error)
}
