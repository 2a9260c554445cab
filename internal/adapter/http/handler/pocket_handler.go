package handler

import (
	"wom-connector/internal/adapter/http/dto"
	"wom-connector/internal/core/domain"
	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"
	"wom-connector/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PocketHandler exposes the gateway's own Pocket.
type PocketHandler struct {
	wallet ports.WalletService
}

// NewPocketHandler creates a new PocketHandler.
func NewPocketHandler(wallet ports.WalletService) *PocketHandler {
	return &PocketHandler{wallet: wallet}
}

// Collect handles POST /api/v1/pocket/collect.
func (h *PocketHandler) Collect(c *gin.Context) {
	var req dto.CollectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var location *domain.GeoCoords
	if req.Location != nil {
		location = &domain.GeoCoords{Latitude: req.Location.Latitude, Longitude: req.Location.Longitude}
	}

	ctx := c.Request.Context()
	received, err := h.wallet.Collect(ctx, uuid.MustParse(req.Otc), req.Password, location)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.CollectResponse{
		Received: received,
		Held:     len(h.wallet.Vouchers(ctx)),
	})
}

// Pay handles POST /api/v1/pocket/pay.
func (h *PocketHandler) Pay(c *gin.Context) {
	var req dto.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	ackURL, err := h.wallet.Pay(c.Request.Context(), uuid.MustParse(req.Otc), req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PayResponse{AckURL: ackURL})
}

// Vouchers handles GET /api/v1/pocket/vouchers.
func (h *PocketHandler) Vouchers(c *gin.Context) {
	response.OK(c, dto.NewVoucherResponses(h.wallet.Vouchers(c.Request.Context())))
}

// AimsHandler handles GET /api/v1/aims.
func AimsHandler(catalog ports.AimCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		aims, err := catalog.GetAims(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, aims)
	}
}
