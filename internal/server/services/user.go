// Package services contains server-side business logic. This file implements
// UserService, the auth engine: registration with an emailed OTP, OTP and
// password login, password reset by email, device-bound token refresh and
// the paginated user listing.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/arshan09/AuthenticationApp/internal/common"
	"github.com/arshan09/AuthenticationApp/internal/dbx"
	"github.com/arshan09/AuthenticationApp/internal/logging"
	"github.com/arshan09/AuthenticationApp/internal/server/auth"
	"github.com/arshan09/AuthenticationApp/internal/server/config"
	"github.com/arshan09/AuthenticationApp/internal/server/metrics"
	"github.com/arshan09/AuthenticationApp/internal/server/models"
	"github.com/arshan09/AuthenticationApp/internal/server/notify"
	"github.com/arshan09/AuthenticationApp/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// TokenPair bundles a short-lived access token and a refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	DeviceID string
}

// LoginInput carries the OTP and password login form. DeviceID is optional;
// when set the refresh token is bound to that device.
type LoginInput struct {
	Email    string
	OTP      string
	Password string
	DeviceID string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	hasher      auth.Hasher
	notifier    notify.Notifier
	clientURL   string
	maxPageSize int

	metrics *metrics.Metrics
	log     logging.Logger

	generateOTP func() string
	newID       func() string

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService,
	notifier notify.Notifier, cfg *config.Config) *UserService {
	maxPage := cfg.UsersMaxPageSize
	if maxPage < 1 {
		maxPage = 100
	}
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		hasher:      auth.NewBcryptHasher(),
		notifier:    notifier,
		clientURL:   strings.TrimRight(cfg.ClientURL, "/"),
		maxPageSize: maxPage,
		log:         logging.Nop{},
		generateOTP: auth.GenerateOTP,
		newID:       uuid.NewString,
	}
}

func (s *UserService) WithMetrics(m *metrics.Metrics) *UserService {
	s.metrics = m
	return s
}

func (s *UserService) WithLogger(l logging.Logger) *UserService {
	s.log = l.With("module", "users")
	return s
}

func (s *UserService) WithHasher(h auth.Hasher) *UserService {
	s.hasher = h
	return s
}

// Register creates an account, binds a refresh token to the device and
// emails a one-time password. The existence check and insert share one
// serializable transaction; the unique constraint stays authoritative.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (user *models.User, err error) {
	defer func() { s.metrics.Operation("register", err) }()

	user, err = dbx.InTx(ctx, s.db, dbx.Serializable, func(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
		usersRepo := s.repomanager.Users(tx)

		exists, err := usersRepo.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return nil, fmt.Errorf("error checking email: %w", err)
		}
		if exists {
			return nil, common.ErrConflict
		}
		if !auth.StrongPassword(in.Password) {
			return nil, common.ErrWeakPassword
		}

		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		otp := s.generateOTP()

		u, err := usersRepo.Create(ctx, &models.User{
			ID:           s.newID(),
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
			OTP:          &otp,
		})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return nil, common.ErrConflict
			}
			return nil, fmt.Errorf("error creating user: %w", err)
		}

		refresh, err := s.tokens.Mint(auth.Refresh, auth.Identity{UserID: u.ID, DeviceID: in.DeviceID})
		if err != nil {
			return nil, err
		}
		if err := s.repomanager.DeviceTokens(tx).Save(ctx, u.ID, in.DeviceID, refresh); err != nil {
			return nil, fmt.Errorf("error saving device token: %w", err)
		}
		u.Tokens = []models.DeviceToken{{UserID: u.ID, DeviceID: in.DeviceID, Token: refresh}}
		return u, nil
	})
	if err != nil {
		if dbx.IsSerializationFailure(err) {
			return nil, common.ErrConflict
		}
		return nil, err
	}

	if err := s.notifier.SendOTP(ctx, user.Email, *user.OTP); err != nil {
		return nil, fmt.Errorf("error sending otp: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "device_id", in.DeviceID)
	return user, nil
}

// VerifyOTPAndLogin checks the stored OTP and the password together and mints
// an access and refresh token. Which of the two mismatched is not revealed.
// The OTP stays valid after a successful login.
func (s *UserService) VerifyOTPAndLogin(ctx context.Context, in LoginInput) (pair *TokenPair, err error) {
	defer func() { s.metrics.Operation("login", err) }()

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep the timing of unknown emails close to known ones
			_, _ = s.hasher.Compare(s.dummy(), in.Password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if user.OTP == nil {
		return nil, common.ErrInvalidOTP
	}

	otpOK := subtle.ConstantTimeCompare([]byte(*user.OTP), []byte(in.OTP)) == 1
	passwordOK, err := s.hasher.Compare(user.PasswordHash, in.Password)
	if err != nil {
		return nil, err
	}
	if !otpOK || !passwordOK {
		return nil, common.ErrInvalidCredentials
	}

	id := auth.Identity{UserID: user.ID, Email: user.Email, DeviceID: in.DeviceID}
	pair, err = s.generateTokenPair(id)
	if err != nil {
		return nil, err
	}

	if in.DeviceID != "" {
		if err := s.repomanager.DeviceTokens(s.db).Save(ctx, user.ID, in.DeviceID, pair.RefreshToken); err != nil {
			return nil, fmt.Errorf("error saving device token: %w", err)
		}
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID, "device_id", in.DeviceID)
	return pair, nil
}

// ForgotPassword emails a reset link carrying a short-lived reset token.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (err error) {
	defer func() { s.metrics.Operation("forgot_password", err) }()

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error loading user: %w", err)
	}

	token, err := s.tokens.Mint(auth.Reset, auth.Identity{UserID: user.ID})
	if err != nil {
		return err
	}

	if err := s.notifier.SendPasswordReset(ctx, user.Email, s.ResetLink(token)); err != nil {
		return fmt.Errorf("error sending reset link: %w", err)
	}

	s.log.Info(ctx, "password reset requested", "user_id", user.ID)
	return nil
}

// ResetLink builds the client URL the reset email points at.
func (s *UserService) ResetLink(token string) string {
	return s.clientURL + "/reset-password/" + token
}

// ResetPassword replaces the password of the user named by a valid reset
// token.
func (s *UserService) ResetPassword(ctx context.Context, resetToken, newPassword string) (err error) {
	defer func() { s.metrics.Operation("reset_password", err) }()

	claims, err := s.tokens.Verify(auth.Reset, resetToken)
	if err != nil {
		return common.ErrInvalidOrExpiredToken
	}

	usersRepo := s.repomanager.Users(s.db)
	user, err := usersRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error loading user: %w", err)
	}

	if !auth.StrongPassword(newPassword) {
		return common.ErrWeakPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := usersRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error updating password: %w", err)
	}

	s.log.Info(ctx, "password reset", "user_id", user.ID)
	return nil
}

// RefreshToken mints a new access token for a device that already holds a
// stored refresh token, rotates that refresh token and returns both. The
// lookup, match and overwrite run in one transaction.
func (s *UserService) RefreshToken(ctx context.Context, userID, deviceID string) (pair *TokenPair, err error) {
	defer func() { s.metrics.Operation("refresh_token", err) }()

	if userID == "" {
		return nil, common.ErrorUnauthorized
	}

	return dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*TokenPair, error) {
		user, err := s.repomanager.Users(tx).GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrorUnauthorized
			}
			return nil, fmt.Errorf("error loading user: %w", err)
		}

		deviceRepo := s.repomanager.DeviceTokens(tx)
		stored, err := deviceRepo.ListByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading device tokens: %w", err)
		}
		if !s.deviceKnown(stored, deviceID) {
			return nil, common.ErrDeviceNotAuthorized
		}

		access, err := s.tokens.Mint(auth.Access, auth.Identity{UserID: user.ID, Email: user.Email, DeviceID: deviceID})
		if err != nil {
			return nil, err
		}
		refresh, err := s.tokens.Mint(auth.Refresh, auth.Identity{UserID: user.ID, DeviceID: deviceID})
		if err != nil {
			return nil, err
		}
		pair := &TokenPair{AccessToken: access, RefreshToken: refresh}
		if err := deviceRepo.Save(ctx, user.ID, deviceID, pair.RefreshToken); err != nil {
			return nil, fmt.Errorf("error saving device token: %w", err)
		}
		return pair, nil
	})
}

// ListUsers returns one page of users in insertion order. Values below 1
// fall back to page 1 and limit 10; limit is capped at the configured
// maximum.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) (users []*models.User, err error) {
	defer func() { s.metrics.Operation("list_users", err) }()

	page, limit = s.normalizePage(page, limit)
	if page-1 > math.MaxInt/limit {
		return []*models.User{}, nil
	}

	users, err = s.repomanager.Users(s.db).List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

func (s *UserService) normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	return page, limit
}

// --- helpers below ---

// deviceKnown matches on the deviceId claim decoded from each stored token.
func (s *UserService) deviceKnown(stored []models.DeviceToken, deviceID string) bool {
	if deviceID == "" {
		return false
	}
	for _, t := range stored {
		claims, err := s.tokens.Decode(t.Token)
		if err != nil {
			continue
		}
		if claims.DeviceID == deviceID {
			return true
		}
	}
	return false
}

func (s *UserService) generateTokenPair(id auth.Identity) (*TokenPair, error) {
	access, err := s.tokens.Mint(auth.Access, id)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Mint(auth.Refresh, id)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(uuid.NewString())
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
