package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/meypanhawath/corebank/internal/core/ports/services"
	"github.com/meypanhawath/corebank/internal/dto"
)

// transactionHandler handles HTTP requests for money movements.
type transactionHandler struct {
	transactionService portssvc.TransactionService
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionService) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers routes related to money movements.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionService) {
	h := newTransactionHandler(ts)

	txns := rg.Group("/transactions")
	{
		txns.POST("/deposit", h.deposit)
		txns.POST("/withdraw", h.withdraw)
		txns.POST("/transfer", h.transfer)
		txns.POST("/bills", h.payBill)
		txns.GET("", h.listCustomerTransactions)
		txns.GET("/:id", h.getTransaction)
	}
	rg.GET("/accounts/:id/transactions", h.listTransactions)
}

func (h *transactionHandler) deposit(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.transactionService.Deposit(c.Request.Context(), customerID, portssvc.DepositParams{
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Currency:  currency(req.Currency),
		Remark:    req.Remark,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) withdraw(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.transactionService.Withdraw(c.Request.Context(), customerID, portssvc.WithdrawParams{
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Currency:  currency(req.Currency),
		Remark:    req.Remark,
		Pin:       req.Pin,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) transfer(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.transactionService.Transfer(c.Request.Context(), customerID, portssvc.TransferParams{
		SenderID: req.SenderID,
		Receiver: req.Receiver,
		Amount:   req.Amount,
		Currency: currency(req.Currency),
		Remark:   req.Remark,
		Pin:      req.Pin,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) payBill(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	var req dto.BillPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.transactionService.PayBill(c.Request.Context(), customerID, portssvc.BillPaymentParams{
		SenderID:       req.AccountID,
		BillCategoryID: req.BillCategoryID,
		Amount:         req.Amount,
		Currency:       currency(req.Currency),
		Remark:         req.Remark,
		Pin:            req.Pin,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	transactionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": "invalid transaction id"})
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), customerID, transactionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listCustomerTransactions(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, err := h.transactionService.ListCustomerTransactions(c.Request.Context(), customerID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": "invalid account id"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), customerID, accountID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}
