package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/anish9011/plant/internal/data/db"
	"github.com/anish9011/plant/internal/data/repos"
	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/platform/apierr"
	"github.com/anish9011/plant/internal/platform/ctxutil"
	"github.com/anish9011/plant/internal/platform/dbctx"
	"github.com/anish9011/plant/internal/platform/logger"
)

const (
	CodeUserExists       = "user_exists"
	CodeInvalidPassword  = "invalid_password"
	CodeInvalidToken     = "invalid_token"
	minPasswordLength    = 1
	defaultAccessTTL     = time.Hour
	defaultSigningSecret = "change-me"
)

type SignupInput struct {
	Email    string
	Password string
	Role     string
}

type SigninResult struct {
	Account     *types.Account
	AccessToken string
	ExpiresIn   time.Duration
}

type AccountService interface {
	Signup(ctx context.Context, in SignupInput) (*types.Account, error)
	Signin(ctx context.Context, email, password string) (*SigninResult, error)
	ParseToken(tokenString string) (*ctxutil.AccountData, error)
}

type AccountClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type accountService struct {
	log        *logger.Logger
	accounts   repos.AccountRepo
	secret     []byte
	accessTTL  time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewAccountService(log *logger.Logger, accounts repos.AccountRepo, jwtSecret string, accessTTL time.Duration, bcryptCost int) AccountService {
	serviceLog := log.With("service", "AccountService")
	if strings.TrimSpace(jwtSecret) == "" {
		serviceLog.Warn("JWT secret not configured; using insecure default")
		jwtSecret = defaultSigningSecret
	}
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &accountService{
		log:        serviceLog,
		accounts:   accounts,
		secret:     []byte(jwtSecret),
		accessTTL:  accessTTL,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

func (as *accountService) Signup(ctx context.Context, in SignupInput) (*types.Account, error) {
	email := normalizeEmail(in.Email)
	if !validEmail(email) {
		return nil, apierr.Validation(CodeInvalidRequest, "a valid email is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apierr.Validation(CodeInvalidRequest, "password is required")
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = types.RoleUser
	}
	if !types.ValidRole(role) {
		return nil, apierr.Validation(CodeInvalidRequest, "role must be user or admin")
	}

	dbc := dbctx.Context{Ctx: ctx}
	exists, err := as.accounts.EmailExists(dbc, email)
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}
	if exists {
		return nil, apierr.Validation(CodeUserExists, "User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), as.bcryptCost)
	if err != nil {
		return nil, apierr.Internal(CodeInternal, fmt.Errorf("hash password: %w", err))
	}

	created, err := as.accounts.Create(dbc, []*types.Account{{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.Validation(CodeUserExists, "User already exists")
		}
		as.log.Error("create account failed", "email", email, "error", err)
		return nil, apierr.Internal(CodeInternal, err)
	}
	as.log.Info("account created", "account_id", created[0].ID, "role", role)
	return created[0], nil
}

func (as *accountService) Signin(ctx context.Context, email, password string) (*SigninResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apierr.Validation(CodeInvalidRequest, "email and password are required")
	}
	acct, err := as.accounts.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}
	if acct == nil {
		return nil, apierr.NotFound(CodeUserNotFound, "User not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			as.log.Warn("password compare failed", "account_id", acct.ID, "error", err)
		}
		return nil, apierr.Unauthorized(CodeInvalidPassword, "Invalid password")
	}

	token, err := as.generateAccessToken(acct)
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}
	return &SigninResult{Account: acct, AccessToken: token, ExpiresIn: as.accessTTL}, nil
}

func (as *accountService) generateAccessToken(acct *types.Account) (string, error) {
	now := as.now()
	claims := AccountClaims{
		Email: acct.Email,
		Role:  acct.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.secret)
}

func (as *accountService) ParseToken(tokenString string) (*ctxutil.AccountData, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, apierr.Unauthorized(CodeInvalidToken, "missing token")
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(as.now),
	)
	claims := &AccountClaims{}
	parsed, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return as.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierr.Unauthorized(CodeInvalidToken, "invalid or expired token")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apierr.Unauthorized(CodeInvalidToken, "invalid subject")
	}
	return &ctxutil.AccountData{AccountID: id, Email: claims.Email, Role: claims.Role}, nil
}
