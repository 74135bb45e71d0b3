package httphandler

import (
	"errors"
	"io"
	"net/http"

	"github.com/JerryMichels/bitpay-app/internal/core/application"
	"github.com/gin-gonic/gin"
)

type walletHandler struct {
	walletSvc application.WalletService
}

func newWalletHandler(walletSvc application.WalletService) *walletHandler {
	return &walletHandler{walletSvc}
}

func (h *walletHandler) createKey(c *gin.Context) {
	var req createKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	opts := req.Options
	opts.Password = req.Password
	key, err := h.walletSvc.CreateKey(c.Request.Context(), application.CreateKeyRequest{
		Currencies: req.Currencies,
		Options:    opts,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newKeyInfo(key))
}

func (h *walletHandler) importKey(c *gin.Context) {
	var req importKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	opts := req.KeyOptions
	opts.Password = req.Password
	key, err := h.walletSvc.CreateKeyWithOpts(c.Request.Context(), opts)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newKeyInfo(key))
}

func (h *walletHandler) listKeys(c *gin.Context) {
	keys, err := h.walletSvc.ListKeys(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	list := make([]keyInfo, 0, len(keys))
	for i := range keys {
		list = append(list, newKeyInfo(&keys[i]))
	}
	c.JSON(http.StatusOK, gin.H{"keys": list})
}

func (h *walletHandler) getKey(c *gin.Context) {
	key, err := h.walletSvc.GetKey(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newKeyInfo(key))
}

func (h *walletHandler) addWallet(c *gin.Context) {
	var req addWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	opts := req.Options
	opts.Password = req.Password
	wallet, err := h.walletSvc.AddWallet(c.Request.Context(), application.AddWalletRequest{
		KeyID:              c.Param("id"),
		Currency:           req.Currency,
		AssociatedWalletID: req.AssociatedWalletID,
		Options:            opts,
		Context:            req.Context,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newWalletInfo(wallet))
}

func (h *walletHandler) removeWallet(c *gin.Context) {
	if err := h.walletSvc.RemoveWallet(
		c.Request.Context(), c.Param("id"), c.Param("wid"),
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *walletHandler) detectTokens(c *gin.Context) {
	var req detectTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithBadRequest(c, err)
		return
	}

	wallets, err := h.walletSvc.DetectAndCreateTokens(
		c.Request.Context(), c.Param("id"), req.Password,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallets": newWalletInfoList(wallets)})
}
