package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/meypanhawath/corebank/internal/core/ports/services"
)

// exchangeHandler exposes the fixed conversion rates for confirmation screens.
type exchangeHandler struct {
	exchangeService portssvc.ExchangeService
}

// registerExchangeRoutes registers routes related to currency conversion.
func registerExchangeRoutes(rg *gin.RouterGroup, es portssvc.ExchangeService) {
	h := &exchangeHandler{exchangeService: es}
	rg.GET("/exchange-rates/:from/:to", h.getRate)
}

func (h *exchangeHandler) getRate(c *gin.Context) {
	from := currency(c.Param("from"))
	to := currency(c.Param("to"))
	if !from.Valid() || !to.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": "unsupported currency pair"})
		return
	}

	rate, err := h.exchangeService.Rate(from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	display, err := h.exchangeService.RateDisplay(from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":    string(from),
		"to":      string(to),
		"rate":    rate,
		"display": display,
	})
}
