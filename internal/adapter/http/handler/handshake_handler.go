package handler

import (
	"time"

	"wom-connector/internal/adapter/http/dto"
	"wom-connector/internal/adapter/http/middleware"
	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"
	"wom-connector/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HandshakeHandler exposes voucher issuance and payment registration.
type HandshakeHandler struct {
	svc ports.HandshakeService
	now func() time.Time
}

// NewHandshakeHandler creates a new HandshakeHandler.
func NewHandshakeHandler(svc ports.HandshakeService) *HandshakeHandler {
	return &HandshakeHandler{svc: svc, now: time.Now}
}

// IssueVouchers handles POST /api/v1/instrument/vouchers.
func (h *HandshakeHandler) IssueVouchers(c *gin.Context) {
	operator, ok := middleware.Operator(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.IssueVouchersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.svc.IssueVouchers(c.Request.Context(), operator, c.GetHeader(middleware.HeaderIdempotencyKey),
		req.ToVoucherSpecs(h.now()), ports.IssueOptions{Nonce: req.Nonce, Password: req.Password})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewHandleResponse(result.Otc, result.Password, result.Link))
}

// RegisterPayment handles POST /api/v1/pos/payments.
func (h *HandshakeHandler) RegisterPayment(c *gin.Context) {
	operator, ok := middleware.Operator(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.svc.RegisterPayment(c.Request.Context(), operator, c.GetHeader(middleware.HeaderIdempotencyKey),
		ports.PaymentParams{
			Amount:       req.Amount,
			PocketAckURL: req.PocketAckURL,
			PosAckURL:    req.PosAckURL,
			Filter:       req.Filter,
			Persistent:   req.Persistent,
			Nonce:        req.Nonce,
			Password:     req.Password,
		})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewHandleResponse(result.Otc, result.Password, result.Link))
}

// PaymentStatus handles GET /api/v1/pos/payments/:otc.
func (h *HandshakeHandler) PaymentStatus(c *gin.Context) {
	otc, err := uuid.Parse(c.Param("otc"))
	if err != nil {
		response.Error(c, apperror.Validation("otc must be a UUID"))
		return
	}

	status, err := h.svc.PaymentStatus(c.Request.Context(), otc)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewPaymentStatusResponse(otc, status))
}
