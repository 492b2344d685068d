package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ucstore-inventory/internal/middleware"
	"ucstore-inventory/internal/model"
	"ucstore-inventory/internal/repository"
	"ucstore-inventory/internal/service"
	"ucstore-inventory/internal/testutil"
	"ucstore-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app     *fiber.App
	tokens  *jwt.Manager
	uploads string
}

func newServer(t *testing.T, authEnabled bool) *testServer {
	db := testutil.NewDB(t)
	products := repository.NewProductRepo(db)
	sales := repository.NewSaleRepo(db)
	purchases := repository.NewPurchaseRepo(db)
	users := repository.NewUserRepo(db)
	_, err := products.SeedDefaults()
	require.NoError(t, err)

	tokens := jwt.NewManager("test-secret", time.Hour)
	uploads := t.TempDir()

	app := fiber.New()
	Register(app, Handlers{
		Inventory:  NewInventoryHandler(service.NewInventoryService(products, sales, purchases, db, nil)),
		Stats:      NewStatsHandler(service.NewStatsService(repository.NewStatsRepo(db), products, sales, purchases)),
		Reports:    NewReportHandler(service.NewReportService(products, sales, purchases)),
		Users:      NewUserHandler(service.NewUserService(users), uploads),
		Auth:       NewAuthHandler(service.NewAuthService(users, tokens), tokens),
		AuthGate:   middleware.NewAuth(tokens, authEnabled),
		UploadsDir: uploads,
	})
	return &testServer{app: app, tokens: tokens, uploads: uploads}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v), string(data))
}

func errorOf(t *testing.T, data []byte) string {
	var body map[string]interface{}
	decode(t, data, &body)
	msg, _ := body["error"].(string)
	return msg
}

func TestProductRoutes(t *testing.T) {
	s := newServer(t, false)

	status, data := s.do(t, "GET", "/api/products", nil, "")
	require.Equal(t, 200, status)
	var products []model.Product
	decode(t, data, &products)
	assert.Len(t, products, 4)

	status, data = s.do(t, "POST", "/api/products", map[string]interface{}{"name": "SSD 1TB", "stock": 5, "price": 89.9}, "")
	require.Equal(t, 201, status)
	var created model.Product
	decode(t, data, &created)
	assert.True(t, strings.HasPrefix(created.ID, "P-"))
	assert.Equal(t, model.DefaultMinStock, created.MinStock)

	status, data = s.do(t, "POST", "/api/products", map[string]interface{}{"id": "P-1001", "name": "dup"}, "")
	assert.Equal(t, 409, status)

	status, data = s.do(t, "POST", "/api/products", map[string]interface{}{"price": 1}, "")
	assert.Equal(t, 400, status)

	status, data = s.do(t, "GET", "/api/products/"+created.ID, nil, "")
	assert.Equal(t, 200, status)

	status, data = s.do(t, "PUT", "/api/products/"+created.ID, map[string]interface{}{"stock": 1}, "")
	require.Equal(t, 200, status)
	var updated model.Product
	decode(t, data, &updated)
	assert.Equal(t, 1, updated.Stock)
	assert.Equal(t, "SSD 1TB", updated.Name)
	assert.NotNil(t, updated.UpdatedAt)

	status, data = s.do(t, "GET", "/api/products/low-stock", nil, "")
	require.Equal(t, 200, status)
	var low []model.Product
	decode(t, data, &low)
	require.Len(t, low, 1)
	assert.Equal(t, created.ID, low[0].ID)

	status, data = s.do(t, "DELETE", "/api/products/"+created.ID, nil, "")
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"success":true}`, string(data))

	status, data = s.do(t, "DELETE", "/api/products/"+created.ID, nil, "")
	assert.Equal(t, 200, status)

	status, data = s.do(t, "GET", "/api/products/"+created.ID, nil, "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "Product not found", errorOf(t, data))

	status, _ = s.do(t, "PUT", "/api/products/missing", map[string]interface{}{"stock": 1}, "")
	assert.Equal(t, 404, status)
}

func TestSaleRoutes(t *testing.T) {
	s := newServer(t, false)

	status, data := s.do(t, "POST", "/api/sales", map[string]interface{}{"productId": "P-1003", "qty": 2}, "")
	require.Equal(t, 201, status, string(data))
	var result service.SaleResult
	decode(t, data, &result)
	assert.Equal(t, 158.0, result.Sale.Total)
	assert.Equal(t, "Walk-in", result.Sale.CustomerName)
	assert.Equal(t, 20, result.Product.Stock)

	status, data = s.do(t, "POST", "/api/sales", map[string]interface{}{"productId": "P-1003", "qty": 21}, "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "Insufficient stock. Available: 20", errorOf(t, data))

	status, data = s.do(t, "POST", "/api/sales", map[string]interface{}{"productId": "nope", "qty": 1}, "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "Product not found", errorOf(t, data))

	status, _ = s.do(t, "POST", "/api/sales", map[string]interface{}{"productId": "P-1003", "qty": 0}, "")
	assert.Equal(t, 400, status)

	status, data = s.do(t, "GET", "/api/sales?productId=P-1003", nil, "")
	require.Equal(t, 200, status)
	var sales []model.Sale
	decode(t, data, &sales)
	assert.Len(t, sales, 1)

	status, data = s.do(t, "GET", "/api/sales?productId=P-1001", nil, "")
	require.Equal(t, 200, status)
	decode(t, data, &sales)
	assert.Empty(t, sales)
}

func TestPurchaseRoutes(t *testing.T) {
	s := newServer(t, false)

	status, data := s.do(t, "POST", "/api/purchases", map[string]interface{}{"productId": "P-1004", "qty": 5, "cost": 150}, "")
	require.Equal(t, 201, status, string(data))
	var result service.PurchaseResult
	decode(t, data, &result)
	assert.Equal(t, 750.0, result.Purchase.Total)
	assert.Equal(t, "ViewWorld", result.Purchase.SupplierName)
	assert.Equal(t, 15, result.Product.Stock)

	status, _ = s.do(t, "POST", "/api/purchases", map[string]interface{}{"productId": "nope", "qty": 1, "cost": 1}, "")
	assert.Equal(t, 400, status)

	status, data = s.do(t, "GET", "/api/purchases", nil, "")
	require.Equal(t, 200, status)
	var purchases []model.Purchase
	decode(t, data, &purchases)
	assert.Len(t, purchases, 1)
}

func TestStatsAndReports(t *testing.T) {
	s := newServer(t, false)
	status, _ := s.do(t, "POST", "/api/sales", map[string]interface{}{"productId": "P-1001", "qty": 10}, "")
	require.Equal(t, 201, status)

	status, data := s.do(t, "GET", "/api/stats/summary", nil, "")
	require.Equal(t, 200, status)
	var summary map[string]interface{}
	decode(t, data, &summary)
	assert.Equal(t, 59.9, summary["totalSales"])
	assert.Equal(t, 0.0, summary["totalPurchases"])
	assert.Equal(t, 4.0, summary["productsCount"])

	status, data = s.do(t, "GET", "/api/stats/movement?days=3", nil, "")
	require.Equal(t, 200, status)
	var moves []service.DailyMovement
	decode(t, data, &moves)
	require.Len(t, moves, 3)
	assert.Equal(t, 10, moves[2].Sold)

	status, _ = s.do(t, "GET", "/api/stats/recent", nil, "")
	assert.Equal(t, 200, status)
	status, _ = s.do(t, "GET", "/api/stats/top-products?limit=1", nil, "")
	assert.Equal(t, 200, status)
	status, _ = s.do(t, "GET", "/api/stats/monthly", nil, "")
	assert.Equal(t, 200, status)

	req := httptest.NewRequest("GET", "/api/reports/sales.csv", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "sales.csv")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "Date,Product ID,Quantity,Total\n"))
	assert.Contains(t, string(body), ",P-1001,10,59.90\n")

	status, data = s.do(t, "GET", "/api/reports/financials.csv", nil, "")
	assert.Equal(t, 200, status)
	assert.Contains(t, string(data), "Total Revenue,59.90\n")
}

func TestUserRoutes(t *testing.T) {
	s := newServer(t, false)

	status, data := s.do(t, "POST", "/api/users", map[string]interface{}{"username": "amy"}, "")
	assert.Equal(t, 400, status)
	assert.Equal(t, "id required", errorOf(t, data))

	status, data = s.do(t, "GET", "/api/users/u1", nil, "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "Not found", errorOf(t, data))

	status, data = s.do(t, "POST", "/api/users", map[string]interface{}{"id": "u1", "username": "amy", "role": "admin", "department": "Sales"}, "")
	require.Equal(t, 200, status, string(data))

	status, data = s.do(t, "GET", "/api/users/u1", nil, "")
	require.Equal(t, 200, status)
	var user model.User
	decode(t, data, &user)
	require.NotNil(t, user.Department)
	assert.Equal(t, "Sales", *user.Department)
}

func avatarRequest(t *testing.T, path string, withFile bool) *http.Request {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if withFile {
		part, err := w.CreateFormFile("avatar", "me.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg-bytes"))
		require.NoError(t, err)
	} else {
		require.NoError(t, w.WriteField("note", "nothing"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestAvatarUpload(t *testing.T) {
	s := newServer(t, false)
	status, _ := s.do(t, "POST", "/api/users", map[string]interface{}{"id": "u1", "username": "amy"}, "")
	require.Equal(t, 200, status)

	resp, err := s.app.Test(avatarRequest(t, "/api/users/u1/avatar", false), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = s.app.Test(avatarRequest(t, "/api/users/ghost/avatar", true), -1)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = s.app.Test(avatarRequest(t, "/api/users/u1/avatar", true), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var user model.User
	decode(t, data, &user)
	require.NotNil(t, user.AvatarURL)
	assert.True(t, strings.HasPrefix(*user.AvatarURL, "/uploads/u1-"))
	assert.True(t, strings.HasSuffix(*user.AvatarURL, ".jpg"))

	saved, err := os.ReadFile(filepath.Join(s.uploads, strings.TrimPrefix(*user.AvatarURL, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(saved))

	status, data = s.do(t, "GET", *user.AvatarURL, nil, "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestAuthFlow(t *testing.T) {
	s := newServer(t, true)

	status, _ := s.do(t, "GET", "/api/products", nil, "")
	assert.Equal(t, 401, status)

	status, data := s.do(t, "POST", "/api/auth/login", map[string]interface{}{"username": "sam", "role": "employee"}, "")
	require.Equal(t, 200, status, string(data))
	var login service.LoginResponse
	decode(t, data, &login)
	require.NotEmpty(t, login.Token)

	status, _ = s.do(t, "GET", "/api/products", nil, login.Token)
	assert.Equal(t, 200, status)

	status, _ = s.do(t, "POST", "/api/sales", map[string]interface{}{"productId": "P-1001", "qty": 1}, login.Token)
	assert.Equal(t, 201, status)

	status, _ = s.do(t, "POST", "/api/products", map[string]interface{}{"name": "x"}, login.Token)
	assert.Equal(t, 403, status)

	status, data = s.do(t, "GET", "/api/auth/me", nil, login.Token)
	require.Equal(t, 200, status)
	var me model.User
	decode(t, data, &me)
	assert.Equal(t, "sam", me.Username)

	status, data = s.do(t, "POST", "/api/auth/validate-token", map[string]interface{}{"token": login.Token}, "")
	require.Equal(t, 200, status)
	assert.Contains(t, string(data), `"valid":true`)

	status, _ = s.do(t, "POST", "/api/auth/login", map[string]interface{}{"username": "sam", "role": "owner"}, "")
	assert.Equal(t, 400, status)
}

func TestMeWithoutTokenWhenAuthDisabled(t *testing.T) {
	s := newServer(t, false)

	status, _ := s.do(t, "GET", "/api/auth/me", nil, "")
	assert.Equal(t, 401, status)
}
