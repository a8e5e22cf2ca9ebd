package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nft-tickets-backend/auth"
	"nft-tickets-backend/models"
	"nft-tickets-backend/store"
)

// fakeOrderStore mirrors the store's purchase semantics: the capacity check
// and sold increment happen under one lock.
type fakeOrderStore struct {
	mu     sync.Mutex
	events map[int64]*fakeInventory
	orders []models.Order
	nextID int64
}

type fakeInventory struct {
	priceAmount decimal.Decimal
	priceUnit   string
	capacity    int
	sold        int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{events: make(map[int64]*fakeInventory)}
}

func (f *fakeOrderStore) addEvent(id int64, price string, capacity, sold int) {
	f.events[id] = &fakeInventory{
		priceAmount: decimal.RequireFromString(price),
		priceUnit:   "ETH",
		capacity:    capacity,
		sold:        sold,
	}
}

func (f *fakeOrderStore) CreateOrder(_ context.Context, ord *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ev, ok := f.events[ord.EventID]
	if !ok {
		return store.ErrEventNotFound
	}
	if ev.sold+ord.Quantity > ev.capacity {
		return store.ErrInsufficientCapacity
	}

	total := ev.priceAmount.Mul(decimal.NewFromInt(int64(ord.Quantity)))
	ord.TotalPrice = total.StringFixed(3) + " " + ev.priceUnit
	ord.Status = models.OrderPending
	f.nextID++
	ord.ID = f.nextID
	ord.CreatedAt = time.Now()

	ev.sold += ord.Quantity
	f.orders = append(f.orders, *ord)
	return nil
}

func (f *fakeOrderStore) ListOrdersByAddress(_ context.Context, address string) ([]models.OrderWithEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.OrderWithEvent
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserAddress == address {
			out = append(out, models.OrderWithEvent{Order: f.orders[i], EventName: "Test Event"})
		}
	}
	return out, nil
}

func newOrderRouter(fake *fakeOrderStore, tokens *auth.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOrderHandler(fake, zerolog.Nop())
	r := gin.New()
	authorized := r.Group("/", RequireAuth(tokens))
	authorized.POST("/purchase", h.CreatePurchase)
	authorized.GET("/orders", h.ListOrders)
	return r
}

func sessionToken(t *testing.T, tokens *auth.TokenIssuer, address string) string {
	t.Helper()
	token, err := tokens.Issue(address)
	require.NoError(t, err)
	return token
}

func postPurchase(r *gin.Engine, token string, body map[string]any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/purchase", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePurchaseRequiresAuth(t *testing.T) {
	fake := newFakeOrderStore()
	fake.addEvent(1, "0.05", 10, 0)
	r := newOrderRouter(fake, auth.NewTokenIssuer("secret"))

	w := postPurchase(r, "", map[string]any{"event_id": 1, "quantity": 1, "seat_type": "GA"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePurchaseSuccess(t *testing.T) {
	fake := newFakeOrderStore()
	fake.addEvent(1, "0.05", 10, 4)
	tokens := auth.NewTokenIssuer("secret")
	r := newOrderRouter(fake, tokens)

	w := postPurchase(r, sessionToken(t, tokens, "0xbuyer"), map[string]any{
		"event_id": 1, "quantity": 3, "seat_type": "VIP", "tx_hash": "0xfeed",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var body models.PurchaseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.OrderPending, body.Status)
	assert.Equal(t, "0.150 ETH", body.TotalPrice)
	assert.NotZero(t, body.OrderID)

	assert.Equal(t, 7, fake.events[1].sold)
	require.Len(t, fake.orders, 1)
	assert.Equal(t, "0xbuyer", fake.orders[0].UserAddress)
	require.NotNil(t, fake.orders[0].TxHash)
	assert.Equal(t, "0xfeed", *fake.orders[0].TxHash)
}

func TestCreatePurchaseEventNotFound(t *testing.T) {
	fake := newFakeOrderStore()
	tokens := auth.NewTokenIssuer("secret")
	r := newOrderRouter(fake, tokens)

	w := postPurchase(r, sessionToken(t, tokens, "0xbuyer"), map[string]any{
		"event_id": 42, "quantity": 1, "seat_type": "GA",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePurchaseInsufficientCapacity(t *testing.T) {
	fake := newFakeOrderStore()
	fake.addEvent(1, "0.05", 10, 10)
	tokens := auth.NewTokenIssuer("secret")
	r := newOrderRouter(fake, tokens)

	w := postPurchase(r, sessionToken(t, tokens, "0xbuyer"), map[string]any{
		"event_id": 1, "quantity": 1, "seat_type": "GA",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough tickets available")
	assert.Equal(t, 10, fake.events[1].sold, "sold must be unchanged after a rejected purchase")
}

func TestCreatePurchaseRejectsNonPositiveQuantity(t *testing.T) {
	fake := newFakeOrderStore()
	fake.addEvent(1, "0.05", 10, 0)
	tokens := auth.NewTokenIssuer("secret")
	r := newOrderRouter(fake, tokens)

	for _, qty := range []int{0, -3} {
		w := postPurchase(r, sessionToken(t, tokens, "0xbuyer"), map[string]any{
			"event_id": 1, "quantity": qty, "seat_type": "GA",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "quantity %d", qty)
	}
	assert.Equal(t, 0, fake.events[1].sold)
}

// Concurrent purchases must never jointly oversell: accepted quantities sum
// to at most the remaining capacity.
func TestCreatePurchaseConcurrentNoOversell(t *testing.T) {
	const capacity = 10
	const buyers = 50

	fake := newFakeOrderStore()
	fake.addEvent(1, "0.05", capacity, 0)
	tokens := auth.NewTokenIssuer("secret")
	r := newOrderRouter(fake, tokens)
	token := sessionToken(t, tokens, "0xbuyer")

	var wg sync.WaitGroup
	results := make([]int, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := postPurchase(r, token, map[string]any{
				"event_id": 1, "quantity": 1, "seat_type": "GA",
			})
			results[i] = w.Code
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, code := range results {
		switch code {
		case http.StatusCreated:
			accepted++
		case http.StatusBadRequest:
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, capacity, accepted)
	assert.Equal(t, capacity, fake.events[1].sold)
	assert.Len(t, fake.orders, capacity, "accepted orders must equal the sold increment")
}

func TestListOrders(t *testing.T) {
	fake := newFakeOrderStore()
	fake.addEvent(1, "0.05", 10, 0)
	tokens := auth.NewTokenIssuer("secret")
	r := newOrderRouter(fake, tokens)
	token := sessionToken(t, tokens, "0xbuyer")

	postPurchase(r, token, map[string]any{"event_id": 1, "quantity": 1, "seat_type": "GA"})
	postPurchase(r, token, map[string]any{"event_id": 1, "quantity": 2, "seat_type": "VIP"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Orders []models.OrderWithEvent `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Orders, 2)
	assert.Equal(t, 2, body.Orders[0].Quantity, "most recent order first")
	assert.Equal(t, "Test Event", body.Orders[0].EventName)
}

func TestListOrdersEmpty(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret")
	r := newOrderRouter(newFakeOrderStore(), tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, tokens, "0xbuyer"))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"orders":[]}`, w.Body.String())
}
