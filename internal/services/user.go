package services

import (
	"context"
	"strings"

	"github.com/yungbote/mealplan-gateway/internal/clients/dbadapter"
	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

type UserService interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Update(ctx context.Context, id int, u domain.User) (domain.User, error)
}

type userService struct {
	log *logger.Logger
	db  dbadapter.Client
}

func NewUserService(log *logger.Logger, db dbadapter.Client) UserService {
	return &userService{
		log: log.With("service", "UserService"),
		db:  db,
	}
}

func (s *userService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, apierr.Invalid("username is required")
	}
	return s.db.GetUserByUsername(ctx, username)
}

func (s *userService) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return domain.User{}, apierr.Invalid("username is required")
	}
	if err := validateProfile(u); err != nil {
		return domain.User{}, err
	}
	normalizeProfile(&u)
	created, err := s.db.CreateUser(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	s.log.Info("user created", "user_id", created.ID, "username", created.Username)
	return created, nil
}

func (s *userService) Update(ctx context.Context, id int, u domain.User) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, apierr.Invalid("invalid user id %d", id)
	}
	if err := validateProfile(u); err != nil {
		return domain.User{}, err
	}
	normalizeProfile(&u)
	u.ID = id
	return s.db.UpdateUser(ctx, id, u)
}

func validateProfile(u domain.User) error {
	if u.Height < 0 || u.Weight < 0 {
		return apierr.Invalid("height and weight must not be negative")
	}
	if u.BirthYear < 0 {
		return apierr.Invalid("birth_year must not be negative")
	}
	return nil
}

// normalizeProfile replaces unknown enum values with their defaults; empty
// fields are left alone so partial updates stay partial.
func normalizeProfile(u *domain.User) {
	if u.Sex != "" {
		u.Sex = string(domain.ParseSex(u.Sex))
	}
	if u.DietType != "" {
		u.DietType = string(domain.ParseDietType(u.DietType))
	}
	if u.ActivityFactor != "" {
		u.ActivityFactor = string(domain.ParseActivityFactor(u.ActivityFactor))
	}
}
