package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophqa/internal/common"
	"github.com/dmitrijs2005/gophqa/internal/logging"
	"github.com/dmitrijs2005/gophqa/internal/server/auth"
	"github.com/dmitrijs2005/gophqa/internal/server/config"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/repomanager"
)

const minPasswordLength = 8

type AccountService struct {
	repos                       repomanager.Repositories
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	log                         logging.Logger
}

func NewAccountService(m repomanager.Repositories, cfg *config.Config, log logging.Logger) *AccountService {
	return &AccountService{
		repos:                       m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		log:                         log,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errors.New("invalid email")
	}
	return email, nil
}

// Register creates an account with a bcrypt-hashed password.
func (s *AccountService) Register(ctx context.Context, email, password string) (*models.Account, error) {
	const op = "accounts.Register"

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, newError(op, KindInvalidInput, err)
	}
	if len(password) < minPasswordLength {
		return nil, newError(op, KindInvalidInput, errors.New("password is too short"))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, newError(op, KindInvalidInput, err)
	}

	account, err := s.repos.Accounts().Create(ctx, email, hash)
	if err != nil {
		return nil, fromData(op, err)
	}

	s.log.Info(ctx, "account registered", "account_id", account.ID)
	return account, nil
}

// Login checks the password and returns a signed access token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "accounts.Login"

	email, err := normalizeEmail(email)
	if err != nil {
		return "", newError(op, KindUnauthenticated, common.ErrorUnauthorized)
	}

	account, err := s.repos.Accounts().GetByEmail(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		return "", newError(op, KindUnauthenticated, common.ErrorUnauthorized)
	}
	if err != nil {
		return "", fromData(op, err)
	}

	ok, err := auth.VerifyPassword(account.PasswordHash, password)
	if err != nil || !ok {
		return "", newError(op, KindUnauthenticated, common.ErrorUnauthorized)
	}

	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", newError(op, KindUpstream, err)
	}

	s.log.Info(ctx, "account logged in", "account_id", account.ID)
	return token, nil
}
