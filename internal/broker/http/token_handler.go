// Package http provides HTTP handlers for token issuance operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/http/dto"
	brokerUseCase "github.com/codemillmatt/cosmos-db-permissions/internal/broker/usecase"
	"github.com/codemillmatt/cosmos-db-permissions/internal/httputil"
	customValidation "github.com/codemillmatt/cosmos-db-permissions/internal/validation"
)

// TokenHandler handles HTTP requests for token operations.
// It coordinates token issuance with the BrokerUseCase.
type TokenHandler struct {
	brokerUseCase brokerUseCase.BrokerUseCase
	logger        *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	useCase brokerUseCase.BrokerUseCase,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		brokerUseCase: useCase,
		logger:        logger,
	}
}

// GetPublicTokenHandler issues a read token for the shared public user.
// GET /v1/public-token - No authentication required.
// Returns 200 OK with the serialized token.
func (h *TokenHandler) GetPublicTokenHandler(c *gin.Context) {
	token, err := h.brokerUseCase.PublicToken(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PublicTokenResponse{Token: token})
}

// IssueBatchTokensHandler issues read tokens for a user across multiple resources.
// POST /v1/tokens - No authentication required.
// Returns 200 OK with one token per requested resource, in request order.
func (h *TokenHandler) IssueBatchTokensHandler(c *gin.Context) {
	var req dto.BatchTokensRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	tokens, err := h.brokerUseCase.BatchTokens(c.Request.Context(), req.UserID, req.Resources)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Pair tokens back with their resources, preserving request order
	response := dto.BatchTokensResponse{
		Tokens: make([]dto.ResourceToken, len(tokens)),
	}
	for i, token := range tokens {
		response.Tokens[i] = dto.ResourceToken{
			ResourceID: req.Resources[i],
			Token:      token,
		}
	}

	c.JSON(http.StatusOK, response)
}
