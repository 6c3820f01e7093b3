package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/platform/apierr"
)

func TestAccountSignupAndSignin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	acct, err := env.account.Signup(ctx, SignupInput{Email: "Admin@Plant.io", Password: "s3cret", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin@plant.io", acct.Email)
	assert.Equal(t, types.RoleAdmin, acct.Role)
	assert.NotEqual(t, "s3cret", acct.PasswordHash)

	_, err = env.account.Signup(ctx, SignupInput{Email: "admin@plant.io", Password: "x"})
	assert.Equal(t, CodeUserExists, apierr.CodeOf(err))
	assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err))

	res, err := env.account.Signin(ctx, "admin@plant.io", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, types.RoleAdmin, res.Account.Role)
	require.NotEmpty(t, res.AccessToken)

	claims, err := env.account.ParseToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, acct.ID, claims.AccountID)
	assert.Equal(t, types.RoleAdmin, claims.Role)

	_, err = env.account.Signin(ctx, "admin@plant.io", "wrong")
	assert.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err))

	_, err = env.account.Signin(ctx, "nobody@plant.io", "s3cret")
	assert.Equal(t, http.StatusNotFound, apierr.StatusOf(err))
}

func TestAccountSignupValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for name, in := range map[string]SignupInput{
		"bad email":      {Email: "not-an-email", Password: "pw"},
		"no domain":      {Email: "a@", Password: "pw"},
		"no local part":  {Email: "@b.co", Password: "pw"},
		"space in local": {Email: "a b@c.co", Password: "pw"},
		"display name":   {Email: "Bob <bob@c.co>", Password: "pw"},
		"no password":    {Email: "a@b.co", Password: ""},
		"unknown role":   {Email: "a@b.co", Password: "pw", Role: "root"},
		"other role":     {Email: "a@b.co", Password: "pw", Role: "superuser"},
	} {
		_, err := env.account.Signup(ctx, in)
		assert.Equal(t, http.StatusBadRequest, apierr.StatusOf(err), name)
		assert.Equal(t, CodeInvalidRequest, apierr.CodeOf(err), name)
	}

	acct, err := env.account.Signup(ctx, SignupInput{Email: " Plain.Name+tag@Example.com ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "plain.name+tag@example.com", acct.Email)
	assert.Equal(t, types.RoleUser, acct.Role)
}

func TestAccountParseTokenRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "tok@x.com")

	svc := env.account.(*accountService)
	res, err := env.account.Signin(ctx, "tok@x.com", "pw")
	require.NoError(t, err)

	_, err = env.account.ParseToken("")
	assert.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err))
	_, err = env.account.ParseToken(res.AccessToken + "x")
	assert.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err))

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = env.account.ParseToken(res.AccessToken)
	assert.Equal(t, CodeInvalidToken, apierr.CodeOf(err))
}
