package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegisterUserInput struct {
	Email string
	Role  models.Role
}

type ProfileInput struct {
	FirstName string
	LastName  string
	Bio       string
	BirthDate *time.Time
}

type UserService interface {
	RegisterUser(ctx context.Context, in RegisterUserInput) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*models.Profile, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo *repository.Repository
	tx   TxRunner
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, tx TxRunner, log *zap.Logger) UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &userService{repo: repo, tx: tx, log: log}
}

func (s *userService) RegisterUser(ctx context.Context, in RegisterUserInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}
	role := in.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	existing, err := s.repo.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, storageErr(err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	u := &models.User{Email: email, Role: role, IsActive: true}
	if err := s.repo.Users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		s.log.Error("Не удалось создать пользователя", zap.Error(err))
		return nil, storageErr(err)
	}

	s.log.Info("Пользователь зарегистрирован", zap.String("user_id", u.ID.String()), zap.String("role", string(role)))
	return u, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.repo.Users.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) UpsertProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*models.Profile, error) {
	var out *models.Profile
	err := s.tx.WithTx(ctx, func(tx *repository.Repository) error {
		u, err := tx.Users.LockByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrUserNotFound
		}
		p := &models.Profile{
			UserID:    userID,
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Bio:       in.Bio,
			BirthDate: in.BirthDate,
		}
		if err := tx.Profiles.Upsert(ctx, p); err != nil {
			return err
		}
		out, err = tx.Profiles.GetByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}

// DeactivateUser is the soft alternative to DeleteUser for users with orders.
func (s *userService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Users.Deactivate(ctx, id)
	if err != nil {
		return storageErr(err)
	}
	if !ok {
		return ErrUserNotFound
	}
	s.log.Info("Пользователь деактивирован", zap.String("user_id", id.String()))
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *repository.Repository) error {
		ok, err := tx.Orders.ExistsForUser(ctx, id)
		if err != nil {
			return err
		}
		if ok {
			return fmt.Errorf("%w: %s", ErrUserHasOrders, id)
		}
		deleted, err := tx.Users.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrUserNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %s", ErrUserHasOrders, id)
	}
	if err != nil {
		return storageErr(err)
	}
	s.log.Info("Пользователь удалён", zap.String("user_id", id.String()))
	return nil
}
