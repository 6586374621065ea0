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

type ProfilesRepository struct {
	conn PgConnection
}

func NewProfilesRepo(conn PgConnection) *ProfilesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for profilesRepo: " + err.Error())
	}
	return &ProfilesRepository{
		conn: conn,
	}
}

const profileColumns = `id, user_id, display_name, avatar_url, bio, lefi_code, onboarding_completed, created_at, updated_at`

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.DisplayName, &p.AvatarURL, &p.Bio, &p.LefiCode,
		&p.OnboardingCompleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (pr *ProfilesRepository) Create(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	row := pr.conn.QueryRow(ctx, `INSERT INTO profiles (user_id, display_name, avatar_url, bio, lefi_code)
		VALUES ($1, $2, $3, $4, $5) RETURNING `+profileColumns+`;`,
		profile.UserID, profile.DisplayName, profile.AvatarURL, profile.Bio, profile.LefiCode,
	)
	created, err := scanProfile(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation: either the user already has a profile or
			// the generated code collided
			case "23505":
				return nil, errorvalues.ErrLefiCodeTaken
			// FK violation
			case "23503":
				return nil, errorvalues.ErrUserNotFound
			}
		}
		return nil, errors.New("creating profile db error: " + err.Error())
	}
	return created, nil
}

func (pr *ProfilesRepository) GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
	row := pr.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1;`, uid)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrProfileNotFound
		}
		return nil, errors.New("getting profile by uid error: " + err.Error())
	}
	return profile, nil
}

func (pr *ProfilesRepository) GetByUserIDs(ctx context.Context, uids []uuid.UUID) ([]*entity.Profile, error) {
	profiles := make([]*entity.Profile, 0, len(uids))
	if len(uids) == 0 {
		return profiles, nil
	}
	rows, err := pr.conn.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ANY($1);`, uids)
	if err != nil {
		return nil, errors.New("getting profiles by uids error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, errors.New("unmarshalling profile error: " + err.Error())
		}
		profiles = append(profiles, p)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return profiles, nil
}

func (pr *ProfilesRepository) FindByLefiCode(ctx context.Context, code string) (*entity.Profile, error) {
	row := pr.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE lefi_code = $1;`, code)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrProfileNotFound
		}
		return nil, errors.New("searching profile by lefi code error: " + err.Error())
	}
	return profile, nil
}

func (pr *ProfilesRepository) Update(ctx context.Context, profile *entity.Profile) error {
	ct, err := pr.conn.Exec(ctx, `UPDATE profiles SET display_name = $1, avatar_url = $2, bio = $3, updated_at = NOW() WHERE user_id = $4;`,
		profile.DisplayName, profile.AvatarURL, profile.Bio, profile.UserID,
	)
	if err != nil {
		return errors.New("error updating profile: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrProfileNotFound
	}
	return nil
}

func (pr *ProfilesRepository) SetOnboardingCompleted(ctx context.Context, uid uuid.UUID) error {
	ct, err := pr.conn.Exec(ctx, `UPDATE profiles SET onboarding_completed = TRUE, updated_at = NOW() WHERE user_id = $1;`, uid)
	if err != nil {
		return errors.New("error completing onboarding: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrProfileNotFound
	}
	return nil
}
