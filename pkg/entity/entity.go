package entity

import (
	"time"

	"github.com/google/uuid"
)

// Block statuses
const (
	BlockStatusPending    = "pending"
	BlockStatusInProgress = "in_progress"
	BlockStatusCompleted  = "completed"
)

// Block sources
const (
	BlockSourceManual        = "manual"
	BlockSourceProcessedNote = "processed_note"
	BlockSourceRoutine       = "rutina_base"
	BlockSourceAssistant     = "productive_assistant"
)

// Routine entry states and types
const (
	RoutineStateActive = "activo"
	RoutineStatePaused = "pausado_temporalmente"

	RoutineTypeFixed    = "fijo"
	RoutineTypeBasic    = "basico"
	RoutineTypePersonal = "personal"
)

// Friendship statuses
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipBlocked  = "blocked"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

type Profile struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"user_id"`
	DisplayName         string    `json:"display_name"`
	AvatarURL           string    `json:"avatar_url,omitempty"`
	Bio                 string    `json:"bio,omitempty"`
	LefiCode            string    `json:"lefi_code"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type Block struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"uid"`
	Title      string     `json:"title"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	Tier       int        `json:"tier"`
	Status     string     `json:"status"`
	Source     string     `json:"source"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	// RoutineID is set only on blocks materialized from the base routine.
	RoutineID *uuid.UUID `json:"routine_id,omitempty"`
	Icon      string     `json:"icon,omitempty"`
	Color     string     `json:"color,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Category struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

type InboxNote struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"uid"`
	Content    string    `json:"content"`
	Type       string    `json:"type"`
	Source     string    `json:"source"`
	Processed  bool      `json:"processed"`
	CapturedAt time.Time `json:"captured_at"`
}

type Friendship struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	FriendID  uuid.UUID `json:"friend_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Friend is a friendship row presented from the current user's point of
// view: FriendID always points at the other side, whichever direction the
// original request took.
type Friend struct {
	Friendship
	Profile *Profile `json:"profile,omitempty"`
}

type SleepSettings struct {
	UserID           uuid.UUID  `json:"user_id"`
	PreferredBedtime string     `json:"preferred_bedtime,omitempty"`
	CycleMinutes     int        `json:"cycle_minutes,omitempty"`
	AlarmScheme      string     `json:"alarm_scheme,omitempty"`
	SleepGoals       []string   `json:"sleep_goals,omitempty"`
	LastSleepStart   *time.Time `json:"last_sleep_start,omitempty"`
	LastWake         *time.Time `json:"last_wake,omitempty"`
}

// RoutineEntry is a weekly template row (table rutina_base_usuario). It is
// never rendered as a schedule directly, only projected into blocks for a
// concrete date.
type RoutineEntry struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"uid"`
	ActivityName string     `json:"nombre_actividad"`
	Days         string     `json:"dias"`
	StartTime    string     `json:"hora_inicio"`
	EndTime      string     `json:"hora_fin"`
	Inflexible   bool       `json:"es_inflexible"`
	NeedReminder bool       `json:"requiere_recordatorio"`
	Type         string     `json:"bloque_tipo"`
	State        string     `json:"estado"`
	Location     string     `json:"ubicacion,omitempty"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt    time.Time  `json:"creado_en"`
	UpdatedAt    time.Time  `json:"actualizado_en"`
}

// BasicNeed is a row of necesidades_basicas, captured during onboarding.
type BasicNeed struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"uid"`
	Type            string    `json:"tipo"`
	Hour            string    `json:"hora"`
	DurationMinutes int       `json:"duracion_minutos"`
	FlexibleRange   bool      `json:"rango_flexible"`
	CreatedAt       time.Time `json:"creado_en"`
}
