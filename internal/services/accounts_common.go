package services

import (
	"github.com/go-playground/validator/v10"

	"github.com/anish9011/plant/internal/data/repos"
	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/platform/apierr"
	"github.com/anish9011/plant/internal/platform/dbctx"
)

const (
	CodeInvalidRequest = "invalid_request"
	CodeUserNotFound   = "user_not_found"
	CodeInternal       = "internal_error"
)

func normalizeEmail(email string) string {
	return repos.NormalizeEmail(email)
}

var validate = validator.New()

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// requireAccount resolves email to an account and fails closed: a blank
// email is a validation error, an unknown one is not-found.
func requireAccount(dbc dbctx.Context, accounts repos.AccountRepo, email string) (*types.Account, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apierr.Validation(CodeInvalidRequest, "email is required")
	}
	acct, err := accounts.GetByEmail(dbc, email)
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}
	if acct == nil {
		return nil, apierr.NotFound(CodeUserNotFound, "user not found")
	}
	return acct, nil
}
