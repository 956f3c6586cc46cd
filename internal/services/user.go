package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/summitraffle/summitraffle/internal/errors"
	"github.com/summitraffle/summitraffle/internal/logger"
	"github.com/summitraffle/summitraffle/internal/models"
	"github.com/summitraffle/summitraffle/internal/repository"
	"github.com/summitraffle/summitraffle/pkg/mailer"
)

const otpExpiry = 10 * time.Minute

// UserServiceRepository defines the repository methods needed by UserService
type UserServiceRepository interface {
	repository.CounterRepository
	repository.UserRepository
}

// UserService handles registration, login credentials and profiles
type UserService struct {
	log    logger.Logger
	repo   UserServiceRepository
	mailer mailer.Mailer

	mu         sync.Mutex
	resetCodes map[string]resetCode // phone -> pending OTP
}

type resetCode struct {
	code    string
	expires time.Time
}

// NewUserService creates a new UserService
func NewUserService(log logger.Logger, repo UserServiceRepository, m mailer.Mailer) *UserService {
	return &UserService{
		log:        log,
		repo:       repo,
		mailer:     m,
		resetCodes: make(map[string]resetCode),
	}
}

// Registration holds the fields of a registration submission
type Registration struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Password  string
}

// Register creates a new account with a freshly allocated user id and a
// bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, reg Registration) (*models.User, error) {
	if reg.FirstName == "" || reg.LastName == "" || reg.Phone == "" {
		return nil, errors.Validation("first name, last name and phone are required")
	}
	if len(reg.Password) < 6 {
		return nil, errors.Validation("password must be at least 6 characters")
	}

	exists, err := s.repo.UserExistsByPhone(ctx, reg.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPhoneTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.AllocateID(ctx, repository.KindUser)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:        id,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Phone:     reg.Phone,
		Email:     reg.Email,
	}
	if err := s.repo.CreateUser(ctx, user, string(hash)); err != nil {
		return nil, err
	}

	s.log.Info("User registered", "user_id", id, "phone", reg.Phone)
	return &user, nil
}

// Authenticate checks phone/password and returns the user id on success
func (s *UserService) Authenticate(ctx context.Context, phone, password string) (int64, error) {
	id, hash, err := s.repo.GetUserCredentials(ctx, phone)
	if err == repository.ErrNotFound {
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return 0, ErrInvalidCredentials
	}
	return id, nil
}

// GetProfile returns a user's profile including the account balance
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("user not found")
	}
	return user, err
}

// UpdateProfile updates the mutable profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, email, profilePic string) error {
	if firstName == "" || lastName == "" {
		return errors.Validation("first name and last name are required")
	}
	err := s.repo.UpdateUserProfile(ctx, userID, firstName, lastName, email, profilePic)
	if err == repository.ErrNotFound {
		return errors.NotFound("user not found")
	}
	return err
}

// RequestPasswordReset generates a 6-digit OTP, remembers it for a bounded
// window and emails it to the account's address.
func (s *UserService) RequestPasswordReset(ctx context.Context, phone string) error {
	user, err := s.repo.GetUserByPhone(ctx, phone)
	if err == repository.ErrNotFound {
		// Do not reveal whether the account exists.
		s.log.Info("Password reset requested for unknown phone", "phone", phone)
		return nil
	}
	if err != nil {
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.resetCodes[phone] = resetCode{code: otp, expires: time.Now().Add(otpExpiry)}
	s.mu.Unlock()

	if user.Email == "" {
		s.log.Warn("Password reset requested but no email on file", "user_id", user.ID)
		return nil
	}
	if err := s.mailer.Send(ctx, user.Email, "Reset Your Password",
		fmt.Sprintf("Your password reset code is: %s", otp)); err != nil {
		s.log.Warn("Password reset email failed", "user_id", user.ID, "error", err)
	}
	return nil
}

// ResetPassword verifies the OTP and replaces the password hash
func (s *UserService) ResetPassword(ctx context.Context, phone, otp, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.Validation("password must be at least 6 characters")
	}

	s.mu.Lock()
	pending, ok := s.resetCodes[phone]
	if ok && (pending.code != otp || time.Now().After(pending.expires)) {
		ok = false
	}
	if ok {
		delete(s.resetCodes, phone)
	}
	s.mu.Unlock()

	if !ok {
		return ErrInvalidOTP
	}

	id, _, err := s.repo.GetUserCredentials(ctx, phone)
	if err == repository.ErrNotFound {
		return ErrInvalidOTP
	}
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdateUserPassword(ctx, id, string(hash))
}

// generateOTP returns a random 6-digit code
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
