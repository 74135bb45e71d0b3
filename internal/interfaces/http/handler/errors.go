package httphandler

import (
	"errors"
	"net/http"

	"github.com/JerryMichels/bitpay-app/internal/core/application"
	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	log "github.com/sirupsen/logrus"
)

var (
	badRequestErrors = []error{
		domain.ErrUnsupportedCurrency,
		domain.ErrMissingTokenAddress,
		domain.ErrInvalidTokenAddress,
		domain.ErrNullSettings,
		application.ErrEmptyCurrencies,
		application.ErrInvalidAssociatedWallet,
		application.ErrInvalidTopic,
	}
	notFoundErrors = []error{
		domain.ErrKeyNotFound,
		domain.ErrWalletNotFound,
		domain.ErrTokenOptsNotFound,
		ports.ErrSubscriptionNotFound,
	}
	conflictErrors = []error{
		domain.ErrWalletAlreadyExists,
		ports.ErrCopayerRegistered,
	}
)

// errorStatus maps the errors returned by the application services to http
// status codes.
func errorStatus(err error) int {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest
	}
	if errors.Is(err, domain.ErrInvalidPassword) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, domain.ErrAccountLimitReached) {
		return http.StatusTooManyRequests
	}
	if errors.Is(err, application.ErrWebhookManagerNotInitialized) ||
		errors.Is(err, application.ErrNullTokenBalanceProvider) ||
		errors.Is(err, domain.ErrEmptyFeeLevels) {
		return http.StatusServiceUnavailable
	}
	for _, e := range badRequestErrors {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}
	for _, e := range notFoundErrors {
		if errors.Is(err, e) {
			return http.StatusNotFound
		}
	}
	for _, e := range conflictErrors {
		if errors.Is(err, e) {
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Warnf("%s %s failed", c.Request.Method, c.FullPath())
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func abortWithBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
