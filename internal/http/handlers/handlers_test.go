package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/anish9011/plant/internal/data/repos"
	"github.com/anish9011/plant/internal/data/repos/testutil"
	"github.com/anish9011/plant/internal/services"
)

type testServer struct {
	engine   *gin.Engine
	accounts services.AccountService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)
	accountRepo := repos.NewAccountRepo(db, log)
	orderRepo := repos.NewOrderRepo(db, log)

	accounts := services.NewAccountService(log, accountRepo, "test-secret", time.Hour, 4)
	catalog := services.NewCatalogService(log, repos.NewProductRepo(db, log), nil, 0)
	cart := services.NewCartService(db, log, accountRepo, repos.NewCartItemRepo(db, log), 0)
	checkout := services.NewCheckoutService(db, log, accountRepo, orderRepo, 0)
	orders := services.NewOrderService(log, accountRepo, orderRepo)

	authH := NewAuthHandler(log, accounts)
	catalogH := NewCatalogHandler(log, catalog, 0)
	cartH := NewCartHandler(log, cart, 0)
	checkoutH := NewCheckoutHandler(log, checkout, services.NewDeliveryService(), 0)
	orderH := NewOrderHandler(log, orders)

	r := gin.New()
	r.POST("/signup", authH.Signup)
	r.POST("/signin", authH.Signin)
	r.POST("/cart", cartH.Add)
	r.GET("/cart", cartH.List)
	r.PUT("/cart/:id", cartH.Update)
	r.DELETE("/cart/:id", cartH.Remove)
	r.DELETE("/cart", cartH.Clear)
	r.POST("/admin/addtobag", cartH.AddToBag)
	r.POST("/checkout", checkoutH.Submit)
	r.GET("/checkout/delivery-date", checkoutH.DeliveryDate)
	r.GET("/myorders", orderH.MyOrders)
	r.GET("/admin", orderH.AllOrders)
	r.POST("/admin/addproduct", catalogH.AddProduct)
	r.GET("/getproduct", catalogH.ListProducts)
	r.GET("/getproductdetail/:id", catalogH.GetProduct)

	return &testServer{engine: r, accounts: accounts}
}

func (s *testServer) signup(t *testing.T, email string) {
	t.Helper()
	_, err := s.accounts.Signup(context.Background(), services.SignupInput{Email: email, Password: "pw"})
	require.NoError(t, err)
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type formFileField struct {
	field string
	name  string
	data  []byte
}

func multipartRequest(t *testing.T, path string, fields [][2]string, files []formFileField) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		require.NoError(t, w.WriteField(f[0], f[1]))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	decode(t, rec, &env)
	return env.Error.Code
}

func pngBytes(t *testing.T, shade uint8) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.RGBA{R: shade, G: 20, B: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func httptestGet(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func httptestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}
