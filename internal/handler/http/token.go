package http

import (
	"encoding/json"
	"net/http"

	"github.com/gama-center/ponto-backend-go/internal/handler/http/response"
	"github.com/gama-center/ponto-backend-go/internal/pkg/token"
)

type TokenHandler interface {
	Current(w http.ResponseWriter, r *http.Request)
	Challenge(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
}

type tokenHandlerImpl struct {
	tokens *token.Manager
}

func NewTokenHandler(tokens *token.Manager) TokenHandler {
	return &tokenHandlerImpl{
		tokens: tokens,
	}
}

// Current implements TokenHandler. The viewer UI polls this for the active
// code and its remaining lifetime.
func (h *tokenHandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.tokens.Snapshot())
}

// Challenge implements TokenHandler.
func (h *tokenHandlerImpl) Challenge(w http.ResponseWriter, r *http.Request) {
	options, err := h.tokens.Challenge()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"options": options,
	})
}

type verifyRequest struct {
	Code string `json:"code"`
}

// Verify implements TokenHandler.
func (h *tokenHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.tokens.Verify(req.Code); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Code confirmed", nil)
}
