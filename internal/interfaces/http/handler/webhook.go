package httphandler

import (
	"net/http"

	"github.com/JerryMichels/bitpay-app/internal/core/application"
	"github.com/gin-gonic/gin"
)

type webhookHandler struct {
	webhookSvc application.PubSubService
}

func newWebhookHandler(webhookSvc application.PubSubService) *webhookHandler {
	return &webhookHandler{webhookSvc}
}

func (h *webhookHandler) addWebhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	hookID, err := h.webhookSvc.AddWebhook(c.Request.Context(), application.Webhook{
		Topic:    req.Topic,
		Endpoint: req.Endpoint,
		Secret:   req.Secret,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": hookID})
}

func (h *webhookHandler) removeWebhook(c *gin.Context) {
	if err := h.webhookSvc.RemoveWebhook(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *webhookHandler) listWebhooks(c *gin.Context) {
	hooks, err := h.webhookSvc.ListWebhooks(c.Request.Context(), c.Query("topic"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"webhooks": hooks})
}
