package account

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/platform/dbctx"
	"github.com/anish9011/plant/internal/platform/logger"
)

type AccountRepo interface {
	Create(dbc dbctx.Context, accounts []*types.Account) ([]*types.Account, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Account, error)
	GetByEmails(dbc dbctx.Context, emails []string) ([]*types.Account, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.Account, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	repoLog := baseLog.With("repo", "AccountRepo")
	return &accountRepo{db: db, log: repoLog}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (ar *accountRepo) Create(dbc dbctx.Context, accounts []*types.Account) ([]*types.Account, error) {
	if len(accounts) == 0 {
		return []*types.Account{}, nil
	}
	for _, a := range accounts {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		a.Email = NormalizeEmail(a.Email)
	}
	if err := dbc.Of(ar.db).Create(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (ar *accountRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Account, error) {
	var results []*types.Account
	if len(ids) == 0 {
		return results, nil
	}
	if err := dbc.Of(ar.db).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *accountRepo) GetByEmails(dbc dbctx.Context, emails []string) ([]*types.Account, error) {
	var results []*types.Account
	if len(emails) == 0 {
		return results, nil
	}
	normalized := make([]string, 0, len(emails))
	for _, e := range emails {
		normalized = append(normalized, NormalizeEmail(e))
	}
	if err := dbc.Of(ar.db).
		Where("email IN ?", normalized).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByEmail returns nil, nil when no account has the email.
func (ar *accountRepo) GetByEmail(dbc dbctx.Context, email string) (*types.Account, error) {
	found, err := ar.GetByEmails(dbc, []string{email})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (ar *accountRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var count int64
	if err := dbc.Of(ar.db).
		Model(&types.Account{}).
		Where("email = ?", NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
