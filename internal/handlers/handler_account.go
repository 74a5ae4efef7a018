package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meypanhawath/corebank/internal/core/domain"
	portssvc "github.com/meypanhawath/corebank/internal/core/ports/services"
	"github.com/meypanhawath/corebank/internal/dto"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountService
	limitService   portssvc.LimitService
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountService, ls portssvc.LimitService) *accountHandler {
	return &accountHandler{accountService: as, limitService: ls}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountService, ls portssvc.LimitService) {
	h := newAccountHandler(as, ls)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.openAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/types", h.availableTypes)
		accounts.GET("/limits", h.limitsSummary)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/limit", h.dailyRemaining)
		accounts.DELETE("/:id", h.closeAccount)
		accounts.GET("/number/:accountNo", h.getAccountByNo)
		accounts.PATCH("/number/:accountNo/frozen", h.setFrozen)
	}
}

func (h *accountHandler) openAccount(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.accountService.OpenAccount(c.Request.Context(), portssvc.OpenAccountParams{
		CustomerID:     customerID,
		AccountType:    domain.AccountType(req.AccountType),
		Currency:       domain.Currency(req.Currency),
		InitialDeposit: req.InitialDeposit,
		MaturityDate:   req.MaturityDate,
		Name:           req.Name,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	var (
		accounts []domain.Account
		err      error
	)
	if c.Query("active") == "true" {
		accounts, err = h.accountService.ListActiveAccounts(c.Request.Context(), customerID)
	} else {
		accounts, err = h.accountService.ListAccounts(c.Request.Context(), customerID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": "invalid account id"})
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), customerID, accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccountByNo(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByNo(c.Request.Context(), customerID, c.Param("accountNo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) setFrozen(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	var req dto.SetFrozenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.accountService.SetFrozen(c.Request.Context(), customerID, c.Param("accountNo"), *req.Frozen)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) closeAccount(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": "invalid account id"})
		return
	}
	var req dto.CloseAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.accountService.CloseAccount(c.Request.Context(), customerID, accountID, req.Pin); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) availableTypes(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	entries, err := h.accountService.AvailableAccountTypes(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAvailabilityResponse(entries))
}

func (h *accountHandler) dailyRemaining(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": "invalid account id"})
		return
	}

	limit, err := h.limitService.DailyRemaining(c.Request.Context(), customerID, accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	if limit == nil {
		c.JSON(http.StatusOK, gin.H{"dailyLimit": nil})
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyLimitResponse(limit))
}

func (h *accountHandler) limitsSummary(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	entries, err := h.limitService.LimitsSummary(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLimitsSummaryResponse(entries))
}
