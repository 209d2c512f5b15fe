package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/uph-campus/campus-events-backend/config"
	"github.com/uph-campus/campus-events-backend/internal/auditlog"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactive           = errors.New("your account is inactive")
	ErrInvalidToken       = errors.New("invalid or expired session")
)

type Service interface {
	Login(ctx context.Context, in LoginInput, ip string) (*LoginResult, error)
	ParseToken(token string) (*Session, error)
	// Authenticate is ParseToken plus a lookup of the admin row, so a
	// deactivated or deleted admin loses access before the token expires.
	Authenticate(ctx context.Context, token string) (*Session, error)
	GetAdmin(ctx context.Context, id uint) (*Admin, error)
	// SeedAdmin creates the admin if no account with that email exists.
	SeedAdmin(ctx context.Context, email, password string) error
	SessionTTL() time.Duration
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewService(r Repository, cfg *config.Config, auditSvc auditlog.Service) Service {
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &service{
		repo:     r,
		auditSvc: auditSvc,
		secret:   []byte(cfg.JWTSecret),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *service) SessionTTL() time.Duration { return s.ttl }

// =============================
// Login
// =============================

func (s *service) Login(ctx context.Context, in LoginInput, ip string) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			s.logLogin(ctx, nil, email, ip, auditlog.StatusFailure, "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		s.logLogin(ctx, &admin.ID, email, ip, auditlog.StatusFailure, "wrong password")
		return nil, ErrInvalidCredentials
	}
	if !admin.Active {
		s.logLogin(ctx, &admin.ID, email, ip, auditlog.StatusFailure, "inactive")
		return nil, ErrInactive
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	token, err := s.generateToken(admin, expiresAt)
	if err != nil {
		return nil, err
	}
	if err := s.repo.TouchLastLogin(ctx, admin.ID, now); err != nil {
		log.Printf("⚠️ failed to record last login for admin %d: %v", admin.ID, err)
	}
	s.logLogin(ctx, &admin.ID, email, ip, auditlog.StatusSuccess, "")

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

func (s *service) generateToken(admin *Admin, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"iat":      s.now().Unix(),
		"exp":      expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// =============================
// Session tokens
// =============================

func (s *service) ParseToken(tokenStr string) (*Session, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	adminID, ok := claims["admin_id"].(float64)
	if !ok || adminID <= 0 {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}
	return &Session{AdminID: uint(adminID), Email: email, ExpiresAt: exp.Time}, nil
}

func (s *service) Authenticate(ctx context.Context, tokenStr string) (*Session, error) {
	sess, err := s.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	admin, err := s.repo.FindByID(ctx, sess.AdminID)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !admin.Active {
		return nil, ErrInactive
	}
	return sess, nil
}

func (s *service) GetAdmin(ctx context.Context, id uint) (*Admin, error) {
	return s.repo.FindByID(ctx, id)
}

// =============================
// Seed
// =============================

func (s *service) SeedAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrAdminNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.Create(ctx, &Admin{Email: email, PasswordHash: string(hash), Active: true}); err != nil {
		return err
	}
	log.Printf("👤 Seeded admin %s", email)
	return nil
}

func (s *service) logLogin(ctx context.Context, adminID *uint, email, ip, status, reason string) {
	if s.auditSvc == nil {
		return
	}
	details := map[string]interface{}{"email": email}
	if reason != "" {
		details["error"] = reason
	}
	if err := s.auditSvc.LogAction(ctx, adminID, "", auditlog.ActionAdminLogin, details, ip, status); err != nil {
		log.Printf("⚠️ audit login for %s failed: %v", email, err)
	}
}
