package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrOwnerNotFound = errors.New("owner doesn't exists")
	ErrWrongOwner    = errors.New("resource belongs to another user")

	ErrBlockNotFound    = errors.New("block doesn't exists")
	ErrEndBeforeStart   = errors.New("end time must be after start time")
	ErrCategoryNotFound = errors.New("category doesn't exists")
	ErrCategoryExists   = errors.New("such category already exists")

	ErrNoteNotFound = errors.New("inbox note doesn't exists")

	ErrRoutineNotFound = errors.New("routine entry doesn't exists")
	ErrNeedNotFound    = errors.New("basic need doesn't exists")

	ErrProfileNotFound    = errors.New("profile doesn't exists")
	ErrLefiCodeTaken      = errors.New("lefi code already taken")
	ErrFriendshipNotFound = errors.New("friendship doesn't exists")
	ErrFriendshipExists   = errors.New("friendship already exists")
	ErrSelfFriendship     = errors.New("can't befriend yourself")

	ErrSleepSettingsNotFound = errors.New("sleep settings doesn't exists")

	ErrInfeasiblePlan = errors.New("selected activities don't fit the available time")
)
