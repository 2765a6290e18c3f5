package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"travel_backend/internal/domain"
	"travel_backend/internal/logger"
	"travel_backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrPhoneExists        = errors.New("phone number already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrUserSuspended      = errors.New("user is suspended")
	ErrEmailNotVerified   = errors.New("email not verified")
)

// AuthService handles signup, login and email OTP verification.
type AuthService struct {
	users  *repository.UserRepository
	otps   *repository.OTPRepository
	mailer Mailer
}

func NewAuthService(users *repository.UserRepository, otps *repository.OTPRepository, mailer Mailer) *AuthService {
	return &AuthService{users: users, otps: otps, mailer: mailer}
}

type SignupInput struct {
	Email       string
	PhoneNumber string
	Password    string
	FirstName   string
	LastName    string
}

// Signup creates a user account. The email must have passed OTP verification
// first.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" || in.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: email, phone number and password are required", ErrInvalidInput)
	}

	emailTaken, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, ErrEmailExists
	}

	phoneTaken, err := s.users.PhoneExists(ctx, in.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if phoneTaken {
		return nil, ErrPhoneExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UserCode:     genUserCode("CG"),
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Welcome mail is best-effort.
	body := fmt.Sprintf("Dear %s,\n\nThank you for signing up! Your account has been created.\n", user.FirstName)
	if err := s.mailer.Send(ctx, user.Email, "Welcome aboard", body); err != nil {
		logger.Warn("welcome mail failed", "email", user.Email, "error", err)
	}

	return user, nil
}

// Login authenticates by email or phone number and returns a signed token.
func (s *AuthService) Login(ctx context.Context, credential, password string) (string, *domain.User, error) {
	if credential == "" || password == "" {
		return "", nil, fmt.Errorf("%w: credential and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByCredential(ctx, strings.TrimSpace(strings.ToLower(credential)))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	if user.IsBlocked {
		return "", nil, ErrUserBlocked
	}
	if user.SuspendedUntil != nil && user.SuspendedUntil.After(time.Now()) {
		return "", nil, fmt.Errorf("%w until %s", ErrUserSuspended, user.SuspendedUntil.Format("2006-01-02"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(user.ID, user.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// RequestOTP generates a one-time code, stores it with a TTL and mails it.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	code, err := genOTP()
	if err != nil {
		return err
	}

	if err := s.otps.Set(ctx, email, code); err != nil {
		return err
	}

	body := fmt.Sprintf("Your verification code is %s. It expires shortly.\n", code)
	if err := s.mailer.Send(ctx, email, "Email verification code", body); err != nil {
		return err
	}
	return nil
}

// VerifyOTP consumes a one-time code and marks the email verified.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || code == "" {
		return fmt.Errorf("%w: email and code are required", ErrInvalidInput)
	}

	ok, err := s.otps.Verify(ctx, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: wrong or expired code", ErrInvalidInput)
	}

	return s.users.MarkEmailVerified(ctx, email)
}

// genOTP returns a 6-digit numeric code.
func genOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// genUserCode returns a prefixed public user identifier, e.g. "CG48210973".
func genUserCode(prefix string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(100000000))
	if err != nil {
		return prefix + fmt.Sprintf("%d", time.Now().UnixNano()%100000000)
	}
	return prefix + fmt.Sprintf("%08d", n.Int64())
}
