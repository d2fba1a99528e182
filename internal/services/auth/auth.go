package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bio_showcase/internal/domain/models"
	"bio_showcase/internal/lib/jwt"
	"bio_showcase/internal/lib/logger/sl"
	"bio_showcase/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidHash        = errors.New("password hash is not a bcrypt hash")
)

type Auth struct {
	log         *slog.Logger
	admSaver    AdminSaver
	admProvider AdminProvider
	secret      string
	tokenTTL    time.Duration
}

type AdminSaver interface {
	SaveAdmin(ctx context.Context, username string, passHash []byte) (string, error)
	TouchLogin(ctx context.Context, id string) error
}

type AdminProvider interface {
	Admin(ctx context.Context, username string) (models.Admin, error)
}

func New(log *slog.Logger, adminSaver AdminSaver, adminProvider AdminProvider, secret string, tokenTTL time.Duration) *Auth {
	return &Auth{
		log:         log,
		admSaver:    adminSaver,
		admProvider: adminProvider,
		secret:      secret,
		tokenTTL:    tokenTTL,
	}
}

func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)

	log.Info("attempting to login admin")

	admin, err := a.admProvider.Admin(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrAdminNotFound) {
			log.Warn("admin not found", sl.Err(err))

			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get admin", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(admin.Password, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewToken(admin, a.secret, a.tokenTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := a.admSaver.TouchLogin(ctx, admin.ID); err != nil {
		log.Warn("failed to record login", sl.Err(err))
	}

	log.Info("admin logged in successfully")

	return token, nil
}

// Verify checks an admin bearer token.
func (a *Auth) Verify(token string) (models.AdminClaims, error) {
	claims, err := jwt.ParseToken(token, a.secret)
	if err != nil {
		return models.AdminClaims{}, fmt.Errorf("auth.Verify: %w", err)
	}
	return claims, nil
}

// EnsureAdmin installs the configured admin account. passHash must already be
// a bcrypt hash.
func (a *Auth) EnsureAdmin(ctx context.Context, username string, passHash []byte) (string, error) {
	const op = "auth.EnsureAdmin"

	log := a.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)

	if _, err := bcrypt.Cost(passHash); err != nil {
		log.Error("invalid password hash", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, ErrInvalidHash)
	}

	id, err := a.admSaver.SaveAdmin(ctx, username, passHash)
	if err != nil {
		log.Error("failed to save admin", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin account ready")

	return id, nil
}

func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
