package auth

import (
	"context"
	"errors"
	"strings"

	"brewline/internal/apperr"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = apperr.Validation("incorrect email or password")
	ErrMasterRestricted   = apperr.Forbidden("master access restricted")
	ErrDeleteSelf         = apperr.Validation("cannot delete your own account")
)

const (
	minPasswordLen = 6
	maxPasswordLen = 128
	maxEmailLen    = 320
)

type Service struct {
	repo        UserRepository
	masterEmail string
	log         logrus.FieldLogger
}

// NewService wires the user store. masterEmail, when set, is the only
// account allowed to claim the master role.
func NewService(repo UserRepository, masterEmail string, log logrus.FieldLogger) *Service {
	return &Service{
		repo:        repo,
		masterEmail: normalizeEmail(masterEmail),
		log:         log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// REGISTER
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	return s.create(ctx, email, password, false)
}

func (s *Service) create(ctx context.Context, email, password string, master bool) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || len(email) > maxEmailLen || !strings.Contains(email, "@") {
		return nil, apperr.Validation("a valid email is required")
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return nil, apperr.Validation("password must be between 6 and 128 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        email,
		PasswordHash: string(hashed),
		IsMaster:     master,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// LOGIN
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// BecomeMaster hands the master role to user. Repeating it is a no-op.
func (s *Service) BecomeMaster(ctx context.Context, user *User) (*User, error) {
	if s.masterEmail != "" && normalizeEmail(user.Email) != s.masterEmail {
		return nil, ErrMasterRestricted
	}

	if err := s.repo.AssignMaster(ctx, user.ID); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID}).Info("master assigned")
	return s.repo.FindByID(ctx, user.ID)
}

// EnsureMaster runs at startup. It does nothing unless both values are set
// and nobody holds the master role yet.
func (s *Service) EnsureMaster(ctx context.Context, email, password string) (*User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, nil
	}

	existing, err := s.repo.FindMaster(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
		if err := s.repo.AssignMaster(ctx, user.ID); err != nil {
			return nil, err
		}
		user.IsMaster = true
	case errors.Is(err, ErrUserNotFound):
		user, err = s.create(ctx, email, password, true)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("master ensured")
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*User{}
	}
	return users, nil
}

func (s *Service) DeleteUser(ctx context.Context, actor *User, id int64) error {
	if actor.ID == id {
		return ErrDeleteSelf
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"user_id": id, "by": actor.ID}).Info("user deleted")
	return nil
}
