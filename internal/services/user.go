package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surakshalabs/suraksha-backend/internal/data/repos"
	types "github.com/surakshalabs/suraksha-backend/internal/domain"
	"github.com/surakshalabs/suraksha-backend/internal/pkg/logger"
)

// ProfileUpdate carries the editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	FullName         *string `json:"full_name"`
	Institution      *string `json:"institution"`
	Phone            *string `json:"phone"`
	DateOfBirth      *string `json:"date_of_birth"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergency_contact"`
	ProfilePicture   *string `json:"profile_picture"`
}

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*types.User, error)
	Search(ctx context.Context, query string) ([]*types.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	leaderboard LeaderboardInvalidator
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, leaderboard LeaderboardInvalidator) UserService {
	return &userService{
		db:          db,
		log:         log.With("service", "UserService"),
		userRepo:    userRepo,
		leaderboard: leaderboard,
	}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return nil, ErrUserNotFound
	}
	return users[0], nil
}

func (us *userService) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := us.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, fmt.Errorf("fetch user by email: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return nil, ErrUserNotFound
	}
	return users[0], nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*types.User, error) {
	fields := map[string]any{}
	set := func(column string, value *string) {
		if value != nil {
			fields[column] = strings.TrimSpace(*value)
		}
	}
	set("full_name", update.FullName)
	set("institution", update.Institution)
	set("phone", update.Phone)
	set("date_of_birth", update.DateOfBirth)
	set("address", update.Address)
	set("emergency_contact", update.EmergencyContact)
	set("profile_picture", update.ProfilePicture)

	if name, ok := fields["full_name"]; ok && name == "" {
		return nil, fmt.Errorf("%w: full name cannot be empty", ErrInvalidSubmission)
	}

	var updated *types.User
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, err := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if err != nil {
			return fmt.Errorf("fetch user: %w", err)
		}
		if len(users) == 0 || users[0] == nil {
			return ErrUserNotFound
		}
		if err := us.userRepo.UpdateProfile(ctx, tx, userID, fields); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		users, err = us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if err != nil || len(users) == 0 {
			return fmt.Errorf("reload user: %w", err)
		}
		updated = users[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	if us.leaderboard != nil {
		us.leaderboard.InvalidateSnapshots(ctx)
	}
	return updated, nil
}

func (us *userService) Search(ctx context.Context, query string) ([]*types.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*types.User{}, nil
	}
	return us.userRepo.Search(ctx, nil, query)
}

func (us *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, err := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if err != nil {
			return fmt.Errorf("fetch user: %w", err)
		}
		if len(users) == 0 || users[0] == nil {
			return ErrUserNotFound
		}
		return us.userRepo.Delete(ctx, tx, userID)
	})
	if err != nil {
		return err
	}
	us.log.Info("Deleted user", "user_id", userID.String())
	if us.leaderboard != nil {
		us.leaderboard.InvalidateSnapshots(ctx)
	}
	return nil
}
