// file: internals/features/admins/service/admin_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/apperr"
	"ekonomvote_backend/internals/configs"
	"ekonomvote_backend/internals/constants"
	"ekonomvote_backend/internals/helpers/clockx"
	"ekonomvote_backend/internals/helpers/dbx"

	auditModel "ekonomvote_backend/internals/features/audit/model"
	auditSvc "ekonomvote_backend/internals/features/audit/service"
	"ekonomvote_backend/internals/features/admins/model"
)

const (
	accessTokenTTL  = 2 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
	minPasswordLen  = 8
)

/* =========================
   Service & Constructor
   ========================= */

type AdminService struct {
	DB    *gorm.DB
	Clock clockx.Clock
}

func NewAdminService(db *gorm.DB, clock clockx.Clock) *AdminService {
	if clock == nil {
		clock = clockx.System
	}
	return &AdminService{DB: db, Clock: clock}
}

/* =========================
   Password policy
   ========================= */

// ValidatePassword enforces the panel password policy: at least 8
// characters with a lowercase, an uppercase, a digit and a special.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return apperr.New(apperr.KindValidationFailed, "password must be at least %d characters", minPasswordLen)
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return apperr.New(apperr.KindValidationFailed,
			"password must contain a lowercase letter, an uppercase letter, a digit and a special character")
	}
	return nil
}

/* =========================
   Create admin
   ========================= */

func (s *AdminService) Create(ctx context.Context, actorID uuid.UUID, login, password string) (*model.AdminModel, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, apperr.New(apperr.KindValidationFailed, "login is required")
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &model.AdminModel{
		AdminLogin:        login,
		AdminPasswordHash: string(hash),
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(admin).Error; err != nil {
			if dbx.IsUniqueViolation(err) {
				return apperr.New(apperr.KindValidationFailed, "login %q is already taken", login)
			}
			return err
		}
		return auditSvc.Append(tx, actorID, auditModel.ActionCreate, "Admin", admin.AdminID, nil)
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}

/* =========================
   Login
   ========================= */

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login checks the credentials against the stored bcrypt hash and issues
// an access/refresh token pair. Wrong login and wrong password return the
// same error so the endpoint does not leak which one failed.
func (s *AdminService) Login(ctx context.Context, login, password string) (*model.AdminModel, *TokenPair, error) {
	var admin model.AdminModel
	if err := s.DB.WithContext(ctx).
		Where("admin_login = ?", strings.TrimSpace(login)).
		First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.New(apperr.KindValidationFailed, "invalid login or password")
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.AdminPasswordHash), []byte(password)); err != nil {
		return nil, nil, apperr.New(apperr.KindValidationFailed, "invalid login or password")
	}

	pair, err := s.issueTokens(admin.AdminID)
	if err != nil {
		return nil, nil, err
	}
	return &admin, pair, nil
}

func (s *AdminService) issueTokens(adminID uuid.UUID) (*TokenPair, error) {
	now := s.Clock.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": adminID.String(),
		"role":    constants.RoleAdmin,
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenTTL).Unix(),
	})
	accessStr, err := access.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return nil, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": adminID.String(),
		"typ":     "refresh",
		"iat":     now.Unix(),
		"exp":     now.Add(refreshTokenTTL).Unix(),
	})
	refreshStr, err := refresh.SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessStr, RefreshToken: refreshStr}, nil
}
