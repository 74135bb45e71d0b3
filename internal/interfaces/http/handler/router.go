// Package httphandler exposes the application services over a REST API.
package httphandler

import (
	"time"

	"github.com/JerryMichels/bitpay-app/internal/core/application"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Services are the application services served by the router.
type Services struct {
	Wallet   application.WalletService
	Fee      application.FeeService
	Settings application.SettingsService
	PubSub   application.PubSubService
}

// NewRouter returns the gin engine serving the REST API and the prometheus
// metrics.
func NewRouter(svcs Services) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())

	wallet := newWalletHandler(svcs.Wallet)
	fee := newFeeHandler(svcs.Fee)
	settings := newSettingsHandler(svcs.Settings)
	webhook := newWebhookHandler(svcs.PubSub)

	v1 := router.Group("/v1")
	{
		v1.POST("/keys", wallet.createKey)
		v1.POST("/keys/import", wallet.importKey)
		v1.GET("/keys", wallet.listKeys)
		v1.GET("/keys/:id", wallet.getKey)
		v1.POST("/keys/:id/wallets", wallet.addWallet)
		v1.DELETE("/keys/:id/wallets/:wid", wallet.removeWallet)
		v1.POST("/keys/:id/tokens/detect", wallet.detectTokens)

		v1.GET("/fees/:coin/options", fee.getFeeOptions)
		v1.POST("/fees/:coin/check", fee.checkCustomFee)

		v1.GET("/settings", settings.getSettings)
		v1.PUT("/settings", settings.updateSettings)

		v1.POST("/webhooks", webhook.addWebhook)
		v1.GET("/webhooks", webhook.listWebhooks)
		v1.DELETE("/webhooks/:id", webhook.removeWebhook)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debugf("%s %s", c.Request.Method, c.Request.URL.Path)
	}
}
