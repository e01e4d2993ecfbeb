package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/codemillmatt/cosmos-db-permissions/internal/errors"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockBrokerUseCase is a mock implementation of usecase.BrokerUseCase for testing.
type mockBrokerUseCase struct {
	mock.Mock
}

func (m *mockBrokerUseCase) PublicToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockBrokerUseCase) BatchTokens(ctx context.Context, userID string, resources []string) ([]string, error) {
	args := m.Called(ctx, userID, resources)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// newTestHandler creates a token handler with a discarding logger.
func newTestHandler(useCase *mockBrokerUseCase) *TokenHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTokenHandler(useCase, logger)
}

func performRequest(handler gin.HandlerFunc, method, target string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestTokenHandler_GetPublicTokenHandler(t *testing.T) {
	t.Run("Success_ReturnsToken", func(t *testing.T) {
		mockUseCase := &mockBrokerUseCase{}
		handler := newTestHandler(mockUseCase)

		mockUseCase.On("PublicToken", mock.Anything).Return("public-token", nil)

		w := performRequest(handler.GetPublicTokenHandler, http.MethodGet, "/v1/public-token", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "public-token", response["token"])
	})

	t.Run("Error_StoreFailureReturns500", func(t *testing.T) {
		mockUseCase := &mockBrokerUseCase{}
		handler := newTestHandler(mockUseCase)

		mockUseCase.On("PublicToken", mock.Anything).Return("", errors.New("store unavailable"))

		w := performRequest(handler.GetPublicTokenHandler, http.MethodGet, "/v1/public-token", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "internal_error", response["error"])
	})
}

func TestTokenHandler_IssueBatchTokensHandler(t *testing.T) {
	t.Run("Success_TokensInRequestOrder", func(t *testing.T) {
		mockUseCase := &mockBrokerUseCase{}
		handler := newTestHandler(mockUseCase)

		mockUseCase.On("BatchTokens", mock.Anything, "alice", []string{"orders", "invoices"}).
			Return([]string{"token-orders", "token-invoices"}, nil)

		body := []byte(`{"user_id":"alice","resources":["orders","invoices"]}`)
		w := performRequest(handler.IssueBatchTokensHandler, http.MethodPost, "/v1/tokens", body)
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Tokens []struct {
				ResourceID string `json:"resource_id"`
				Token      string `json:"token"`
			} `json:"tokens"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Tokens, 2)
		assert.Equal(t, "orders", response.Tokens[0].ResourceID)
		assert.Equal(t, "token-orders", response.Tokens[0].Token)
		assert.Equal(t, "invoices", response.Tokens[1].ResourceID)
		assert.Equal(t, "token-invoices", response.Tokens[1].Token)
	})

	t.Run("Error_MalformedJSONReturns400", func(t *testing.T) {
		mockUseCase := &mockBrokerUseCase{}
		handler := newTestHandler(mockUseCase)

		w := performRequest(handler.IssueBatchTokensHandler, http.MethodPost, "/v1/tokens", []byte(`{not json`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "BatchTokens", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_MissingUserIDReturns422", func(t *testing.T) {
		mockUseCase := &mockBrokerUseCase{}
		handler := newTestHandler(mockUseCase)

		body := []byte(`{"resources":["orders"]}`)
		w := performRequest(handler.IssueBatchTokensHandler, http.MethodPost, "/v1/tokens", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "BatchTokens", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_EmptyResourcesReturns422", func(t *testing.T) {
		mockUseCase := &mockBrokerUseCase{}
		handler := newTestHandler(mockUseCase)

		body := []byte(`{"user_id":"alice","resources":[]}`)
		w := performRequest(handler.IssueBatchTokensHandler, http.MethodPost, "/v1/tokens", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidInputFromUseCaseReturns422", func(t *testing.T) {
		mockUseCase := &mockBrokerUseCase{}
		handler := newTestHandler(mockUseCase)

		mockUseCase.On("BatchTokens", mock.Anything, "alice", []string{"orders"}).
			Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "bad input"))

		body := []byte(`{"user_id":"alice","resources":["orders"]}`)
		w := performRequest(handler.IssueBatchTokensHandler, http.MethodPost, "/v1/tokens", body)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_StoreFailureReturns500", func(t *testing.T) {
		mockUseCase := &mockBrokerUseCase{}
		handler := newTestHandler(mockUseCase)

		mockUseCase.On("BatchTokens", mock.Anything, "alice", []string{"orders"}).
			Return(nil, errors.New("store unavailable"))

		body := []byte(`{"user_id":"alice","resources":["orders"]}`)
		w := performRequest(handler.IssueBatchTokensHandler, http.MethodPost, "/v1/tokens", body)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
