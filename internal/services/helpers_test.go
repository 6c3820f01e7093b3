package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anish9011/plant/internal/data/repos"
	"github.com/anish9011/plant/internal/data/repos/testutil"
	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/observability"
)

type testEnv struct {
	db       *gorm.DB
	accounts repos.AccountRepo
	products repos.ProductRepo
	items    repos.CartItemRepo
	orders   repos.OrderRepo

	account  AccountService
	catalog  CatalogService
	cart     CartService
	checkout CheckoutService
	history  OrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	env := &testEnv{
		db:       db,
		accounts: repos.NewAccountRepo(db, log),
		products: repos.NewProductRepo(db, log),
		items:    repos.NewCartItemRepo(db, log),
		orders:   repos.NewOrderRepo(db, log),
	}
	env.account = NewAccountService(log, env.accounts, "test-secret", time.Hour, 4)
	env.catalog = NewCatalogService(log, env.products, nil, 0)
	env.cart = NewCartService(db, log, env.accounts, env.items, 0)
	env.checkout = NewCheckoutService(db, log, env.accounts, env.orders, 0)
	env.history = NewOrderService(log, env.accounts, env.orders)
	return env
}

func (e *testEnv) signup(t *testing.T, email string) *types.Account {
	t.Helper()
	acct, err := e.account.Signup(context.Background(), SignupInput{Email: email, Password: "pw"})
	require.NoError(t, err)
	return acct
}

func (e *testEnv) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func testPNG(t *testing.T, shade uint8) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: shade, G: 100, B: 50, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// counterValue enables process metrics and reads one series from the
// Prometheus text output; absent series read as zero.
func counterValue(t *testing.T, series string) float64 {
	t.Helper()
	m := observability.Init(true, 0)
	require.NotNil(t, m)
	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	for _, ln := range strings.Split(buf.String(), "\n") {
		if v, ok := strings.CutPrefix(ln, series+" "); ok {
			f, err := strconv.ParseFloat(v, 64)
			require.NoError(t, err)
			return f
		}
	}
	return 0
}
