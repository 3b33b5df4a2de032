package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"articles-backend/internal/domains/user/model"
	"articles-backend/internal/domains/user/repository"
	"articles-backend/internal/shared"
	"articles-backend/internal/shared/crud"
	"articles-backend/internal/shared/middleware"
	"articles-backend/pkg/jwt"
)

// userService implements ServiceInterface
type userService struct {
	repo     repository.UserRepository
	tokens   TokenIssuer
	lockout  *LoginLockout
	reporter FailedLoginReporter // nil => đếm trực tiếp, không qua worker
}

func NewUserService(
	repo repository.UserRepository,
	tokens TokenIssuer,
	lockout *LoginLockout,
	reporter FailedLoginReporter,
) ServiceInterface {
	return &userService{
		repo:     repo,
		tokens:   tokens,
		lockout:  lockout,
		reporter: reporter,
	}
}

// ========================================
// REGISTER
// ========================================

// Register tạo user mới; username đã tồn tại => Conflict (không idempotent như Author/Tag)
func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserDTO, error) {
	// 1. VALIDATE INPUT
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. HASH PASSWORD
	// bcrypt cost = 12: balance giữa security và performance
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), model.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. CREATE (lookup + insert, FailOnConflict)
	store := crud.StoreFuncs[model.User]{
		Find: s.repo.GetByUsername,
		Save: s.repo.Create,
	}
	u, _, err := crud.Create(ctx, store, crud.FailOnConflict(model.ErrUsernameTaken), req.Username, &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Str("username", u.Username).Msg("User registered")

	dto := u.ToDTO()
	return &dto, nil
}

// ========================================
// LOGIN
// ========================================

// Login xác thực user và trả về bearer access token
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. CHECK LOCKOUT
	if s.lockout.IsLocked(ctx, req.Username) {
		return nil, model.ErrAccountLocked
	}

	// 3. FIND USER BY USERNAME
	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			return nil, err
		}
		// Không expose "username not found"
		s.recordFailure(ctx, req.Username)
		return nil, model.ErrInvalidCredentials
	}

	// 4. VERIFY PASSWORD
	// bcrypt.CompareHashAndPassword là constant-time comparison
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailure(ctx, req.Username)
		return nil, model.ErrInvalidCredentials
	}

	// 5. GENERATE JWT
	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.lockout.Reset(ctx, u.Username)

	return &model.LoginResponse{
		AccessToken: accessToken,
		TokenType:   jwt.TokenTypeBearer,
		ExpiresAt:   expiresAt,
	}, nil
}

// recordFailure đẩy sang worker; enqueue lỗi => đếm trực tiếp để lockout vẫn có hiệu lực
func (s *userService) recordFailure(ctx context.Context, username string) {
	payload := shared.FailedLoginPayload{
		Username:  username,
		IPAddress: middleware.GetClientIPFromContext(ctx),
		Timestamp: time.Now().UTC(),
	}

	if s.reporter != nil {
		err := s.reporter.ReportFailedLogin(ctx, payload)
		if err == nil {
			return
		}
		log.Warn().Err(err).Str("username", username).Msg("Failed to enqueue failed login, counting inline")
	}

	if _, _, err := s.lockout.RecordFailure(ctx, username); err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to record failed login")
	}
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}
