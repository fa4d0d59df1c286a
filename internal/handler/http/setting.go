package http

import (
	"encoding/json"
	"net/http"

	"github.com/gama-center/ponto-backend-go/internal/domain/setting"
	"github.com/gama-center/ponto-backend-go/internal/handler/http/response"
)

type SettingHandler interface {
	GetRadius(w http.ResponseWriter, r *http.Request)
	UpdateRadius(w http.ResponseWriter, r *http.Request)
}

type settingHandlerImpl struct {
	settingService setting.SettingService
}

func NewSettingHandler(settingService setting.SettingService) SettingHandler {
	return &settingHandlerImpl{
		settingService: settingService,
	}
}

// GetRadius implements SettingHandler.
func (h *settingHandlerImpl) GetRadius(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingService.GetRadius(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateRadius implements SettingHandler.
func (h *settingHandlerImpl) UpdateRadius(w http.ResponseWriter, r *http.Request) {
	var req setting.UpdateRadiusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.settingService.UpdateRadius(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Radius updated", result)
}
