package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/pkg/entity"
)

type SleepRepository struct {
	conn PgConnection
}

func NewSleepRepo(conn PgConnection) *SleepRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for sleepRepo: " + err.Error())
	}
	return &SleepRepository{
		conn: conn,
	}
}

func (sr *SleepRepository) GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.SleepSettings, error) {
	var s entity.SleepSettings
	row := sr.conn.QueryRow(ctx, `SELECT user_id, preferred_bedtime, cycle_minutes, alarm_scheme, sleep_goals, last_sleep_start, last_wake
		FROM sleep_settings WHERE user_id = $1;`, uid)
	err := row.Scan(&s.UserID, &s.PreferredBedtime, &s.CycleMinutes, &s.AlarmScheme, &s.SleepGoals, &s.LastSleepStart, &s.LastWake)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrSleepSettingsNotFound
		}
		return nil, errors.New("getting sleep settings error: " + err.Error())
	}
	return &s, nil
}

func (sr *SleepRepository) Upsert(ctx context.Context, settings *entity.SleepSettings) error {
	_, err := sr.conn.Exec(ctx, `INSERT INTO sleep_settings (user_id, preferred_bedtime, cycle_minutes, alarm_scheme, sleep_goals, last_sleep_start, last_wake)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_bedtime = EXCLUDED.preferred_bedtime,
			cycle_minutes = EXCLUDED.cycle_minutes,
			alarm_scheme = EXCLUDED.alarm_scheme,
			sleep_goals = EXCLUDED.sleep_goals,
			last_sleep_start = EXCLUDED.last_sleep_start,
			last_wake = EXCLUDED.last_wake;`,
		settings.UserID, settings.PreferredBedtime, settings.CycleMinutes, settings.AlarmScheme,
		settings.SleepGoals, settings.LastSleepStart, settings.LastWake,
	)
	if err != nil {
		return errors.New("upserting sleep settings error: " + err.Error())
	}
	return nil
}
