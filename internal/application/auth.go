package application

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/MasterCatOne/zzw-gx-sub000/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AuthService covers operator accounts and API tokens. Passwords are
// bcrypt hashes; only the sha256 of a token is stored.
type AuthService struct {
	repo domain.TrackingRepository
}

func NewAuthService(repo domain.TrackingRepository) *AuthService {
	return &AuthService{repo: repo}
}

// BootstrapOperator creates the first operator. It refuses once any
// operator exists; later accounts go through CreateOperator.
func (s *AuthService) BootstrapOperator(ctx context.Context, account, name, password string) (domain.Operator, error) {
	count, err := s.repo.CountOperators(ctx)
	if err != nil {
		return domain.Operator{}, err
	}
	if count > 0 {
		return domain.Operator{}, domain.Conflict("operators already exist")
	}
	return s.createOperator(ctx, account, name, password)
}

func (s *AuthService) CreateOperator(ctx context.Context, account, name, password string) (domain.Operator, error) {
	return s.createOperator(ctx, account, name, password)
}

func (s *AuthService) createOperator(ctx context.Context, account, name, password string) (domain.Operator, error) {
	if strings.TrimSpace(account) == "" {
		return domain.Operator{}, domain.MissingParameter("account")
	}
	if strings.TrimSpace(password) == "" {
		return domain.Operator{}, domain.MissingParameter("password")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return domain.Operator{}, err
	}
	return s.repo.CreateOperator(ctx, domain.Operator{
		Account:      account,
		Name:         defaultString(name, account),
		PasswordHash: hash,
	})
}

// Login verifies the password and issues a fresh API token. The plain
// token is returned once and never stored.
func (s *AuthService) Login(ctx context.Context, account, password, tokenName string, ttl *time.Duration) (domain.Operator, string, error) {
	op, err := s.repo.GetOperatorByAccount(ctx, account)
	if err != nil {
		return domain.Operator{}, "", domain.Forbidden("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return domain.Operator{}, "", domain.Forbidden("invalid credentials")
	}

	plain, hash, err := newTokenPair()
	if err != nil {
		return domain.Operator{}, "", err
	}

	var expiresAt *time.Time
	if ttl != nil {
		t := time.Now().UTC().Add(*ttl)
		expiresAt = &t
	}

	_, err = s.repo.CreateOperatorToken(ctx, domain.OperatorToken{
		OperatorID: op.ID,
		Name:       defaultString(tokenName, "cli"),
		TokenHash:  hash,
		ExpiresAt:  expiresAt,
	})
	if err != nil {
		return domain.Operator{}, "", err
	}

	return op, plain, nil
}

func (s *AuthService) AuthenticateToken(ctx context.Context, token string) (domain.Operator, error) {
	t, err := s.repo.GetOperatorTokenByHash(ctx, hashToken(token))
	if err != nil {
		return domain.Operator{}, domain.Forbidden("unauthorized")
	}
	if t.ExpiresAt != nil && t.ExpiresAt.Before(time.Now().UTC()) {
		return domain.Operator{}, domain.Forbidden("token expired")
	}
	return s.repo.GetOperator(ctx, t.OperatorID)
}

func (s *AuthService) GetOperator(ctx context.Context, id uint) (domain.Operator, error) {
	return s.repo.GetOperator(ctx, id)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func newTokenPair() (string, string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	plain := base64.RawURLEncoding.EncodeToString(raw)
	return plain, hashToken(plain), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", sum[:])
}

func defaultString(input, fallback string) string {
	if strings.TrimSpace(input) == "" {
		return fallback
	}
	return input
}
