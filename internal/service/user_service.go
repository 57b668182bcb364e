package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/vogiaan1904/swiftseats/internal/auth"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
	pkgLog "github.com/vogiaan1904/swiftseats/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	repo       UserRepository
	tokens     TokenIssuer
	l          pkgLog.Logger
	bcryptCost int
}

func NewUserService(repo UserRepository, tokens TokenIssuer, l pkgLog.Logger) UserService {
	return &userService{
		repo:       repo,
		tokens:     tokens,
		l:          l,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register creates a user or organizer. Admins are never self-registered.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() || role == models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		s.l.Errorf(ctx, "service.userService.Register: %v", err)
		return nil, err
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		s.l.Errorf(ctx, "service.userService.Register: %v", err)
		return nil, err
	}

	s.l.Infof(ctx, "service.userService.Register: user=%s role=%s", u.ID, u.Role)
	return u, nil
}

func (s *userService) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.l.Errorf(ctx, "service.userService.Login: %v", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: u.ID, Role: u.Role})
	if err != nil {
		s.l.Errorf(ctx, "service.userService.Login: %v", err)
		return nil, err
	}

	return &LoginOutput{Token: token, User: u}, nil
}

func (s *userService) GetBalance(ctx context.Context, userID string) (*BalanceOutput, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrUserNotFound
		}
		s.l.Errorf(ctx, "service.userService.GetBalance: %v", err)
		return nil, err
	}

	return &BalanceOutput{UserID: u.ID, Balance: u.Balance}, nil
}
