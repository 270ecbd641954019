package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/uxrlabs/uxr-tracker-backend/errs"
	"github.com/uxrlabs/uxr-tracker-backend/models"
)

// tokenStore is the slice of token persistence the handler needs.
// *database.ApiTokenRepo satisfies it.
type tokenStore interface {
	FindAll() ([]*models.ApiToken, error)
	Upsert(service, tokenValue string) (*models.ApiToken, error)
}

type tokenHandler struct {
	responder Responder
	logger    zerolog.Logger
	tokenRepo tokenStore
}

func newTokenHandler(tokenRepo tokenStore) tokenHandler {
	logger := log.With().Str("handlerName", "tokenHandler").Logger()

	return tokenHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tokenRepo: tokenRepo,
	}
}

type tokenRequest struct {
	Service string `json:"service"`
	Token   string `json:"token"`
}

// TokenView is an API token with the secret redacted.
type TokenView struct {
	ID       string `json:"id"`
	Service  string `json:"service"`
	Token    string `json:"token"`
	IsActive bool   `json:"isActive"`
}

// TokenCollection represents multiple redacted tokens
type TokenCollection struct {
	Tokens []TokenView `json:"tokens"`
}

func redactToken(t *models.ApiToken) TokenView {
	return TokenView{
		ID:       t.ID.String(),
		Service:  t.Service,
		Token:    t.Redacted().Token,
		IsActive: t.IsActive,
	}
}

// getTokens retrieves all configured API tokens in redacted form
// @Summary List API tokens
// @Description Retrieves all configured external service tokens; token values are redacted to the last four characters
// @Tags Tokens
// @Accept json
// @Produce json
// @Success 200 {object} TokenCollection "List of redacted tokens"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching tokens"
// @Router /tokens [get]
func (h tokenHandler) getTokens() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokens, err := h.tokenRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tokens", "tokens", err))
			return
		}

		views := make([]TokenView, 0, len(tokens))
		for _, t := range tokens {
			views = append(views, redactToken(t))
		}

		h.responder.WriteJSON(w, TokenCollection{Tokens: views})
	}
}

// upsertToken stores or replaces the token for a service
// @Summary Store API token
// @Description Stores the token for an external service, replacing any existing one and marking it active
// @Tags Tokens
// @Accept json
// @Produce json
// @Param token body tokenRequest true "Service token"
// @Success 200 {object} TokenView "Stored token, redacted"
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown service"
// @Router /tokens [post]
func (h tokenHandler) upsertToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode token request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}
		if !models.ValidService(req.Service) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("service", "unknown service"))
			return
		}
		if req.Token == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("token"))
			return
		}

		token, err := h.tokenRepo.Upsert(req.Service, req.Token)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("upsert token", "token", err))
			return
		}

		h.logger.Info().Str("service", req.Service).Msg("API token updated")
		h.responder.WriteJSON(w, redactToken(token))
	}
}
