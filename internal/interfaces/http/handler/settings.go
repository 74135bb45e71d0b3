package httphandler

import (
	"net/http"

	"github.com/JerryMichels/bitpay-app/internal/core/application"
	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsSvc application.SettingsService
}

func newSettingsHandler(settingsSvc application.SettingsService) *settingsHandler {
	return &settingsHandler{settingsSvc}
}

func (h *settingsHandler) getSettings(c *gin.Context) {
	settings, err := h.settingsSvc.GetSettings(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *settingsHandler) updateSettings(c *gin.Context) {
	var req domain.AppSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	settings, err := h.settingsSvc.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
