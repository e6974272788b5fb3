package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steve958/plant-shop/internal/config"
	"github.com/steve958/plant-shop/internal/domain"
	"github.com/steve958/plant-shop/internal/usecase"
)

type fakeProductRepo struct {
	products []domain.Product
}

func (f *fakeProductRepo) ListByScope(_ context.Context, scope domain.PageScope) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range f.products {
		if scope.OnDiscount != nil && p.OnDiscount != *scope.OnDiscount {
			continue
		}
		if scope.Gender != domain.GenderUnspecified && p.Gender != scope.Gender {
			continue
		}
		if scope.Subcategory != "" && p.Subcategory != scope.Subcategory {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) Save(_ context.Context, p *domain.Product) error {
	for i := range f.products {
		if f.products[i].ID == p.ID {
			f.products[i] = *p
			return nil
		}
	}
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) ([]string, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) AddImages(_ context.Context, productID uuid.UUID, imgs []domain.Image) error {
	for i := range f.products {
		if f.products[i].ID == productID {
			f.products[i].Images = append(f.products[i].Images, imgs...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeProductRepo) ReorderImages(_ context.Context, productID uuid.UUID, urls []string) error {
	for i := range f.products {
		if f.products[i].ID != productID {
			continue
		}
		byURL := map[string]domain.Image{}
		for _, im := range f.products[i].Images {
			byURL[im.URL] = im
		}
		reordered := make([]domain.Image, 0, len(urls))
		for pos, u := range urls {
			im := byURL[u]
			im.Position = pos
			reordered = append(reordered, im)
		}
		f.products[i].Images = reordered
		return nil
	}
	return domain.ErrNotFound
}

type fakeOrderRepo struct {
	orders []domain.Order
}

func (f *fakeOrderRepo) Save(_ context.Context, o *domain.Order) error {
	for i := range f.orders {
		if f.orders[i].ID == o.ID {
			f.orders[i] = *o
			return nil
		}
	}
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeOrderRepo) List(_ context.Context) ([]domain.Order, error) { return f.orders, nil }

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			return &f.orders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeUserRepo struct {
	users []domain.User
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Save(_ context.Context, u *domain.User) error {
	for i := range f.users {
		if f.users[i].ID == u.ID {
			f.users[i] = *u
			return nil
		}
	}
	f.users = append(f.users, *u)
	return nil
}

type fakeStorage struct{}

func (fakeStorage) SaveImage(_ context.Context, name string, _ []byte) (string, error) {
	return "/uploads/" + name, nil
}
func (fakeStorage) Remove(context.Context, string) error { return nil }

type recordingNotifier struct {
	notified []uuid.UUID
}

func (n *recordingNotifier) NotifyOrder(_ context.Context, o *domain.Order) error {
	n.notified = append(n.notified, o.ID)
	return nil
}

type testEnv struct {
	handler  http.Handler
	products *fakeProductRepo
	orders   *fakeOrderRepo
	users    *fakeUserRepo
	notifier *recordingNotifier
}

func newTestEnv(products ...domain.Product) *testEnv {
	cfg := &config.Config{AppEnv: "test", SessionKey: "test-key", BaseURL: "http://localhost", StorageDir: "uploads"}
	prodRepo := &fakeProductRepo{products: products}
	orderRepo := &fakeOrderRepo{}
	userRepo := &fakeUserRepo{}
	notifier := &recordingNotifier{}
	h := New(cfg,
		&usecase.CatalogUC{Products: prodRepo},
		&usecase.ProductUC{Products: prodRepo, Storage: fakeStorage{}},
		&usecase.OrderUC{Orders: orderRepo, Notifier: notifier},
		&usecase.AuthUC{Users: userRepo},
		fakeStorage{}, nil)
	return &testEnv{handler: h, products: prodRepo, orders: orderRepo, users: userRepo, notifier: notifier}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{
			ID: uuid.New(), Name: "Žalfija", Price: 300, Manufacturer: "Floris",
			Gender: domain.GenderFemale, Subcategory: "začinsko bilje",
			Images: []domain.Image{{URL: "/uploads/zalfija.jpg"}},
		},
		{
			ID: uuid.New(), Name: "Aloja", Price: 500, OnDiscount: true, DiscountPrice: 400,
			Manufacturer: "Agrosem", Gender: domain.GenderFemale, Subcategory: "sobne biljke",
			Images: []domain.Image{{URL: "/uploads/aloja.jpg"}},
		},
		{
			ID: uuid.New(), Name: "Šimšir", Price: 900, Manufacturer: "Floris",
			Gender: domain.GenderMale, Subcategory: "žbunje",
		},
	}
}

func TestDiscountsPageScopesAndSorts(t *testing.T) {
	env := newTestEnv(sampleProducts()...)
	rec := env.do(t, http.MethodGet, "/api/catalog/discounts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp pageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Aloja", resp.Products[0].Name)
	assert.Equal(t, []string{"Agrosem"}, resp.Manufacturers)
}

func TestGenderPageAppliesCriteriaAndSort(t *testing.T) {
	env := newTestEnv(sampleProducts()...)
	rec := env.do(t, http.MethodGet, "/api/catalog/gender/female?sort=priceAsc", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp pageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "Žalfija", resp.Products[0].Name)
	assert.Equal(t, "Aloja", resp.Products[1].Name)

	rec = env.do(t, http.MethodGet, "/api/catalog/gender/female?manufacturer=Floris", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Žalfija", resp.Products[0].Name)
}

func TestSubcategoryPage(t *testing.T) {
	env := newTestEnv(sampleProducts()...)
	rec := env.do(t, http.MethodGet, "/api/catalog/subcategory/%C5%BEbunje", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp pageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Šimšir", resp.Products[0].Name)
}

func TestProductDetails(t *testing.T) {
	products := sampleProducts()
	env := newTestEnv(products...)
	rec := env.do(t, http.MethodGet, "/api/products/"+products[1].ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var p productJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Aloja", p.Name)
	assert.True(t, p.OnDiscount)
	assert.Equal(t, "400,00 RSD", p.PriceDisplay)

	rec = env.do(t, http.MethodGet, "/api/products/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func cartCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "cartItems" {
			return c
		}
	}
	t.Fatal("no cart cookie set")
	return nil
}

func TestCartAddMergesAndTotals(t *testing.T) {
	products := sampleProducts()
	env := newTestEnv(products...)
	id := products[0].ID.String()

	rec := env.do(t, http.MethodPost, "/api/cart/add", map[string]any{"productId": id, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	ck := cartCookie(t, rec)

	rec = env.do(t, http.MethodPost, "/api/cart/add", map[string]any{"productId": id, "quantity": 3}, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, "Žalfija", resp.Items[0].Name)
	assert.Equal(t, "/uploads/zalfija.jpg", resp.Items[0].Image)
	assert.Equal(t, "1.500,00 RSD", resp.Subtotal)
	assert.Equal(t, "1.850,00 RSD", resp.Total)
}

func TestCartAddCapturesEffectivePrice(t *testing.T) {
	products := sampleProducts()
	env := newTestEnv(products...)

	rec := env.do(t, http.MethodPost, "/api/cart/add", map[string]any{"productId": products[1].ID.String(), "quantity": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 400.0, resp.Items[0].Price, "discounted price is captured")
}

func TestCartRemoveAndClear(t *testing.T) {
	products := sampleProducts()
	env := newTestEnv(products...)

	rec := env.do(t, http.MethodPost, "/api/cart/add", map[string]any{"productId": products[0].ID.String(), "quantity": 1})
	ck := cartCookie(t, rec)

	rec = env.do(t, http.MethodPost, "/api/cart/remove", map[string]any{"productId": "nonexistent"}, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp cartJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1, "removing an absent product is a no-op")

	rec = env.do(t, http.MethodPost, "/api/cart/clear", nil, cartCookie(t, rec))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.Equal(t, "350,00 RSD", resp.Total, "empty cart still carries the delivery fee")
}

func TestCorruptedCartCookieReadsAsEmpty(t *testing.T) {
	env := newTestEnv(sampleProducts()...)
	rec := env.do(t, http.MethodGet, "/api/cart", nil, &http.Cookie{Name: "cartItems", Value: "garbage-not-signed"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestCheckoutSubmitsOrderAndClearsCart(t *testing.T) {
	products := sampleProducts()
	env := newTestEnv(products...)

	rec := env.do(t, http.MethodPost, "/api/cart/add", map[string]any{"productId": products[0].ID.String(), "quantity": 2})
	ck := cartCookie(t, rec)

	rec = env.do(t, http.MethodPost, "/api/checkout", map[string]any{
		"email": "kupac@example.com", "name": "Petar", "surname": "Petrović",
		"street": "Cvećarska", "number": "12", "place": "Novi Sad", "postalCode": "21000",
		"phoneNumber": "0641234567",
	}, ck)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.Len(t, env.orders.orders, 1)
	o := env.orders.orders[0]
	assert.Equal(t, "kupac@example.com", o.Email)
	assert.Equal(t, 600.0, o.Subtotal)
	assert.Equal(t, 950.0, o.Total)
	assert.True(t, o.Notified)
	require.Len(t, env.notifier.notified, 1)

	// the rewritten cookie must decode to an empty cart
	rec2 := env.do(t, http.MethodGet, "/api/cart", nil, cartCookie(t, rec))
	var resp cartJSON
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	env := newTestEnv(sampleProducts()...)
	rec := env.do(t, http.MethodPost, "/api/checkout", map[string]any{"email": "kupac@example.com", "name": "Petar"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminEndpointsRequireAdminSession(t *testing.T) {
	env := newTestEnv(sampleProducts()...)
	for _, path := range []string{"/api/admin/products", "/api/admin/orders", "/api/admin/products/export"} {
		rec := env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func adminSession(t *testing.T, env *testEnv) *http.Cookie {
	t.Helper()
	admin := domain.User{ID: uuid.New(), Email: "admin@example.com", IsAdmin: true}
	env.users.users = append(env.users.users, admin)

	// mint the session the same way the server does
	s := &Server{sessionKey: []byte("test-key")}
	tok, err := s.issueToken(&admin, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: sessionCookie, Value: tok}
}

func TestAdminProductLifecycle(t *testing.T) {
	env := newTestEnv()
	ck := adminSession(t, env)

	rec := env.do(t, http.MethodPost, "/api/admin/products", map[string]any{
		"name": "Ruzmarin", "price": 450.0, "manufacturer": "Floris",
		"category": "začini", "subcategory": "začinsko bilje", "gender": "female",
		"type": "sadnica", "size": []string{"S", "M"},
	}, ck)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created productJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ProductID)

	rec = env.do(t, http.MethodPut, "/api/admin/products/"+created.ProductID, map[string]any{
		"name": "Ruzmarin", "price": 450.0, "onDiscount": true, "discountPrice": 400.0,
	}, ck)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated productJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.OnDiscount)
	assert.Equal(t, "400,00 RSD", updated.PriceDisplay)

	rec = env.do(t, http.MethodDelete, "/api/admin/products/"+created.ProductID, nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.products.products)
}

func TestAdminPromoteImage(t *testing.T) {
	p := domain.Product{
		ID: uuid.New(), Name: "Fikus", Price: 700,
		Images: []domain.Image{
			{URL: "/uploads/a.jpg", Position: 0},
			{URL: "/uploads/b.jpg", Position: 1},
			{URL: "/uploads/c.jpg", Position: 2},
		},
	}
	env := newTestEnv(p)
	ck := adminSession(t, env)

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/admin/products/%s/images/promote", p.ID), map[string]any{"url": "/uploads/c.jpg"}, ck)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := env.products.products[0].Images
	require.Len(t, got, 3)
	assert.Equal(t, "/uploads/c.jpg", got[0].URL)
	assert.Equal(t, "/uploads/a.jpg", got[1].URL)
	assert.Equal(t, "/uploads/b.jpg", got[2].URL)
}

func TestAdminInvalidProductRejected(t *testing.T) {
	env := newTestEnv()
	ck := adminSession(t, env)

	rec := env.do(t, http.MethodPost, "/api/admin/products", map[string]any{"price": 100.0}, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing name")

	rec = env.do(t, http.MethodPost, "/api/admin/products", map[string]any{"name": "X", "price": -5.0}, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "negative price")
}
