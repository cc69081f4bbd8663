package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/engraving-service/internal/canvas"
	"github.com/guttosm/engraving-service/internal/client"
	"github.com/guttosm/engraving-service/internal/domain/dto"
	"github.com/guttosm/engraving-service/internal/domain/model"
	"github.com/guttosm/engraving-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg=="

// stubPricer is a fixed-fee image pricing client.
type stubPricer struct {
	price float64
	err   error
}

func (s *stubPricer) PriceImage(ctx context.Context, payload, kind string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.price, nil
}

// stubCart is an in-memory cart client.
type stubCart struct {
	err error
}

func (s *stubCart) CreateCart(ctx context.Context) (*model.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Cart{ID: "cart-1", CheckoutURL: "https://shop.example/checkout"}, nil
}

func (s *stubCart) FetchCart(ctx context.Context, cartID string) (*model.Cart, error) {
	return &model.Cart{ID: cartID}, nil
}

func (s *stubCart) AddLines(ctx context.Context, cartID string, lines []model.LineItem) (*model.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	cart := &model.Cart{ID: cartID}
	for _, l := range lines {
		cart.Lines = append(cart.Lines, model.CartLine{MerchandiseID: l.MerchandiseID, Quantity: l.Quantity, Attributes: l.Attributes})
	}
	return cart, nil
}

func (s *stubCart) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*model.Cart, error) {
	return &model.Cart{ID: cartID}, nil
}

// setupEditorRouter builds a router over real services with stubbed
// external clients.
func setupEditorRouter(t *testing.T, pricer client.PricingClient, cart client.CartClient) *gin.Engine {
	t.Helper()
	catalog, err := service.NewCatalogService()
	require.NoError(t, err)
	store := service.NewSessionStore(time.Minute)
	t.Cleanup(store.Stop)
	aggregator := service.NewPricingAggregatorService()

	cfg := DefaultRouterConfig()
	cfg.Editor = service.NewEditorService(store, catalog, aggregator, pricer)
	cfg.Checkout = service.NewCheckoutService(store, aggregator, canvas.NewSVGRenderer(), cart)
	cfg.Catalog = catalog
	return NewRouter(NewHealthHandler(), cfg)
}

// doJSON performs a request with a JSON body against the router.
func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBuffer(nil)
	} else {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeState extracts the session state from a success envelope.
func decodeState(t *testing.T, w *httptest.ResponseRecorder) service.SessionState {
	t.Helper()
	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)

	dataBytes, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var state service.SessionState
	require.NoError(t, json.Unmarshal(dataBytes, &state))
	return state
}

// openSession creates a session over HTTP and returns its state.
func openSession(t *testing.T, router *gin.Engine) service.SessionState {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/sessions", `{"product_id": "tumbler-20oz", "variation_id": "tumbler-20oz-brass"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeState(t, w)
}

func TestCreateSessionEndpoint(t *testing.T) {
	router := setupEditorRouter(t, &stubPricer{}, &stubCart{})

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid request",
			body:           `{"product_id": "tumbler-20oz", "variation_id": "tumbler-20oz-brass"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid JSON",
			body:           `invalid`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing variation",
			body:           `{"product_id": "tumbler-20oz"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown product",
			body:           `{"product_id": "nope", "variation_id": "tumbler-20oz-brass"}`,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/sessions", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				state := decodeState(t, w)
				assert.NotEmpty(t, state.ID)
				assert.Equal(t, "front", state.ActiveZoneID)
				assert.Equal(t, 20.0, state.Price.Total)
				assert.False(t, state.CanUndo)
			}
		})
	}
}

func TestGetSessionEndpoint(t *testing.T) {
	router := setupEditorRouter(t, &stubPricer{}, &stubCart{})
	state := openSession(t, router)

	w := doJSON(router, http.MethodGet, "/api/sessions/"+state.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/sessions/expired", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestEditingFlow tests the full edit surface over HTTP: text, image,
// modify, curve, arrange, undo/redo, price and checkout.
func TestEditingFlow(t *testing.T) {
	router := setupEditorRouter(t, &stubPricer{price: 8}, &stubCart{})
	state := openSession(t, router)
	base := "/api/sessions/" + state.ID

	// Add a 12-character text.
	w := doJSON(router, http.MethodPost, base+"/text", `{"text": "Best Dad 202"}`)
	require.Equal(t, http.StatusOK, w.Code)
	withText := decodeState(t, w)
	require.Len(t, withText.Layers, 1)
	assert.Equal(t, 40.0, withText.Price.Text)
	objectID := withText.Layers[0].ID

	// Insert a priced image.
	w = doJSON(router, http.MethodPost, base+"/images", `{"payload": "`+testPNG+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	withImage := decodeState(t, w)
	assert.Equal(t, 8.0, withImage.Price.Images)
	assert.Equal(t, 68.0, withImage.Price.Total)

	// Modify the text layer.
	w = doJSON(router, http.MethodPatch, base+"/objects/"+objectID, `{"bold": true, "x": 300}`)
	require.Equal(t, http.StatusOK, w.Code)
	modified := decodeState(t, w)
	assert.True(t, modified.Layers[0].Bold)

	// Curve it.
	w = doJSON(router, http.MethodPost, base+"/objects/"+objectID+"/curve", `{"curve": 40}`)
	require.Equal(t, http.StatusOK, w.Code)
	curved := decodeState(t, w)
	assert.Equal(t, 40.0, curved.Layers[0].Curve)

	// Bring it to the front.
	w = doJSON(router, http.MethodPost, base+"/objects/"+objectID+"/arrange", `{"direction": "front"}`)
	require.Equal(t, http.StatusOK, w.Code)
	arranged := decodeState(t, w)
	assert.Equal(t, objectID, arranged.Layers[len(arranged.Layers)-1].ID)

	// Undo then redo the arrange.
	w = doJSON(router, http.MethodPost, base+"/undo", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodPost, base+"/redo", "")
	require.Equal(t, http.StatusOK, w.Code)
	redone := decodeState(t, w)
	assert.Equal(t, arranged.Layers, redone.Layers)

	// Price endpoint agrees with the state.
	w = doJSON(router, http.MethodGet, base+"/price", "")
	require.Equal(t, http.StatusOK, w.Code)
	var priceResp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &priceResp))
	dataBytes, _ := json.Marshal(priceResp.Data)
	var price model.PriceDetails
	require.NoError(t, json.Unmarshal(dataBytes, &price))
	assert.Equal(t, 68.0, price.Total)

	// Checkout into a fresh cart.
	w = doJSON(router, http.MethodPost, base+"/checkout", "")
	require.Equal(t, http.StatusOK, w.Code)
	var checkoutResp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkoutResp))
	dataBytes, _ = json.Marshal(checkoutResp.Data)
	var cart model.Cart
	require.NoError(t, json.Unmarshal(dataBytes, &cart))
	assert.Equal(t, "cart-1", cart.ID)
	assert.Len(t, cart.Lines, 3)
}

func TestSwitchZoneEndpoint(t *testing.T) {
	router := setupEditorRouter(t, &stubPricer{}, &stubCart{})
	state := openSession(t, router)
	base := "/api/sessions/" + state.ID

	w := doJSON(router, http.MethodPost, base+"/text", `{"text": "Hi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, base+"/zone", `{"zone_id": "back"}`)
	require.Equal(t, http.StatusOK, w.Code)
	back := decodeState(t, w)
	assert.Equal(t, "back", back.ActiveZoneID)
	assert.Empty(t, back.Layers)
	assert.Equal(t, 40.0, back.Price.Total, "price still covers the other zone")

	// Unknown zones are a silent no-op.
	w = doJSON(router, http.MethodPost, base+"/zone", `{"zone_id": "lid"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "back", decodeState(t, w).ActiveZoneID)
}

func TestInsertImageEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name           string
		pricer         *stubPricer
		body           string
		expectedStatus int
	}{
		{
			name:           "invalid upload",
			pricer:         &stubPricer{price: 8},
			body:           `{"payload": "data:image/gif;base64,AAAA"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing payload",
			pricer:         &stubPricer{price: 8},
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "pricing unavailable",
			pricer:         &stubPricer{err: errors.New("down")},
			body:           `{"payload": "` + testPNG + `"}`,
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupEditorRouter(t, tt.pricer, &stubCart{})
			state := openSession(t, router)

			w := doJSON(router, http.MethodPost, "/api/sessions/"+state.ID+"/images", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCheckoutEndpoint_Errors(t *testing.T) {
	t.Run("empty design", func(t *testing.T) {
		router := setupEditorRouter(t, &stubPricer{}, &stubCart{})
		state := openSession(t, router)

		w := doJSON(router, http.MethodPost, "/api/sessions/"+state.ID+"/checkout", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("cart service unavailable", func(t *testing.T) {
		cartErr := &stubCart{err: client.ErrServiceUnavailable}
		router := setupEditorRouter(t, &stubPricer{}, cartErr)
		state := openSession(t, router)

		w := doJSON(router, http.MethodPost, "/api/sessions/"+state.ID+"/text", `{"text": "Hi"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, http.MethodPost, "/api/sessions/"+state.ID+"/checkout", "")
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

// slowCheckout blocks until the request context is cancelled.
type slowCheckout struct{}

func (s *slowCheckout) Checkout(ctx context.Context, sessionID, cartID string) (*model.Cart, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// TestCheckoutEndpoint_Timeout tests that a hanging cart call is cut off by
// the checkout timeout wrapper.
func TestCheckoutEndpoint_Timeout(t *testing.T) {
	catalog, err := service.NewCatalogService()
	require.NoError(t, err)
	store := service.NewSessionStore(time.Minute)
	t.Cleanup(store.Stop)

	cfg := DefaultRouterConfig()
	cfg.CheckoutTimeout = 50 * time.Millisecond
	cfg.Editor = service.NewEditorService(store, catalog, service.NewPricingAggregatorService(), &stubPricer{price: 4})
	cfg.Checkout = &slowCheckout{}
	cfg.Catalog = catalog
	router := NewRouter(NewHealthHandler(), cfg)

	state := openSession(t, router)
	w := doJSON(router, http.MethodPost, "/api/sessions/"+state.ID+"/checkout", "")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

// errEditor returns a fixed error from every operation, to exercise the
// error mapping.
type errEditor struct {
	err error
}

func (e *errEditor) CreateSession(ctx context.Context, productID, variationID string) (service.SessionState, error) {
	return service.SessionState{}, e.err
}
func (e *errEditor) Session(ctx context.Context, sessionID string) (service.SessionState, error) {
	return service.SessionState{}, e.err
}
func (e *errEditor) SwitchZone(ctx context.Context, sessionID, zoneID string) (service.SessionState, error) {
	return service.SessionState{}, e.err
}
func (e *errEditor) AddText(ctx context.Context, sessionID string, params service.TextParams) (service.SessionState, error) {
	return service.SessionState{}, e.err
}
func (e *errEditor) InsertPricedImage(ctx context.Context, sessionID, payload string, kind model.ObjectKind) (service.SessionState, error) {
	return service.SessionState{}, e.err
}
func (e *errEditor) Modify(ctx context.Context, sessionID, objectID string, patch service.ObjectPatch) (service.SessionState, error) {
	return service.SessionState{}, e.err
}
func (e *errEditor) SetCurve(ctx context.Context, sessionID, objectID string, curve float64) (service.SessionState, error) {
	return service.SessionState{}, e.err
}
func (e *errEditor) Arrange(ctx context.Context, sessionID, objectID, direction string) (service.SessionState, error) {
	return service.SessionState{}, e.err
}
func (e *errEditor) Delete(ctx context.Context, sessionID, objectID string) (service.SessionState, error) {
	return service.SessionState{}, e.err
}
func (e *errEditor) Undo(ctx context.Context, sessionID string) (service.SessionState, error) {
	return service.SessionState{}, e.err
}
func (e *errEditor) Redo(ctx context.Context, sessionID string) (service.SessionState, error) {
	return service.SessionState{}, e.err
}
func (e *errEditor) Price(ctx context.Context, sessionID string) (model.PriceDetails, error) {
	return model.PriceDetails{}, e.err
}

// TestEditorErrorMapping tests the service error to HTTP status mapping.
func TestEditorErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "session not found", err: service.ErrSessionNotFound, expectedStatus: http.StatusNotFound},
		{name: "unknown product", err: service.ErrUnknownProduct, expectedStatus: http.StatusNotFound},
		{name: "invalid upload", err: service.ErrInvalidUpload, expectedStatus: http.StatusBadRequest},
		{name: "pricing in flight", err: service.ErrPricingInFlight, expectedStatus: http.StatusConflict},
		{name: "pricing unavailable", err: service.ErrPricingUnavailable, expectedStatus: http.StatusBadGateway},
		{name: "unexpected error", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := service.NewCatalogService()
			require.NoError(t, err)

			cfg := DefaultRouterConfig()
			cfg.Editor = &errEditor{err: tt.err}
			cfg.Catalog = catalog
			router := NewRouter(NewHealthHandler(), cfg)

			w := doJSON(router, http.MethodPost, "/api/sessions/abc/undo", "")
			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Message)
		})
	}
}
