package httphandler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/JerryMichels/bitpay-app/internal/core/application"
	"github.com/gin-gonic/gin"
)

type feeHandler struct {
	feeSvc application.FeeService
}

func newFeeHandler(feeSvc application.FeeService) *feeHandler {
	return &feeHandler{feeSvc}
}

func (h *feeHandler) getFeeOptions(c *gin.Context) {
	req, err := parseFeeOptionsQuery(c)
	if err != nil {
		abortWithBadRequest(c, err)
		return
	}

	res, err := h.feeSvc.GetFeeOptions(c.Request.Context(), *req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, feeOptionsResponse{
		Options:            res.Options,
		Bounds:             res.Bounds,
		FeeUnit:            res.FeeUnit,
		FeeUnitAmount:      res.FeeUnitAmount,
		SelectedFeePerUnit: res.SelectedFeePerUnit,
		SpeedUpMinFeePerKb: res.SpeedUpMinFeePerKb,
		CustomFeePerUnit:   res.CustomFeePerUnit,
	})
}

func (h *feeHandler) checkCustomFee(c *gin.Context) {
	var req checkFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	check, err := h.feeSvc.CheckCustomFee(c.Request.Context(), application.CheckFeeRequest{
		FeeOptionsRequest: application.FeeOptionsRequest{
			Coin:           c.Param("coin"),
			Chain:          req.Chain,
			Network:        req.Network,
			FeeLevel:       req.FeeLevel,
			IsSpeedUp:      req.IsSpeedUp,
			CustomFeePerKb: req.CustomFeePerKb,
		},
		FeePerUnit: req.FeePerUnit,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}

func parseFeeOptionsQuery(c *gin.Context) (*application.FeeOptionsRequest, error) {
	req := &application.FeeOptionsRequest{
		Coin:     c.Param("coin"),
		Chain:    c.Query("chain"),
		Network:  c.Query("network"),
		FeeLevel: c.Query("level"),
	}
	if str := c.Query("speedup"); str != "" {
		isSpeedUp, err := strconv.ParseBool(str)
		if err != nil {
			return nil, fmt.Errorf("invalid speedup: %s", str)
		}
		req.IsSpeedUp = isSpeedUp
	}
	if str := c.Query("custom_fee_per_kb"); str != "" {
		fee, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid custom_fee_per_kb: %s", str)
		}
		req.CustomFeePerKb = fee
	}
	return req, nil
}
