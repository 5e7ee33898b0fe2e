package handlers

import (
	"net/http"

	"github.com/SscSPs/mandi_ledger_app/internal/dto"
	"github.com/SscSPs/mandi_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// newSettingsResponse exposes the configured rates and limits read-only.
func newSettingsResponse(cfg *config.Config) dto.SettingsResponse {
	r, l := cfg.Rates, cfg.Limits
	return dto.SettingsResponse{
		Rates: map[string]decimal.Decimal{
			"mandiChargeRate":           r.MandiChargeRate,
			"muddatRate":                r.MuddatRate,
			"cashDiscountRate":          r.CashDiscountRate,
			"tractorRentPerQuintal":     r.TractorRentPerQtl,
			"labourChargePerQuintal":    r.LabourChargePerQtl,
			"transportChargePerQuintal": r.TransportChargePerQtl,
		},
		Limits: map[string]decimal.Decimal{
			"minQuantity":       l.MinQuantity,
			"maxQuantity":       l.MaxQuantity,
			"minPrice":          l.MinPrice,
			"maxPrice":          l.MaxPrice,
			"maxAmount":         l.MaxAmount,
			"maxNameLength":     decimal.NewFromInt(int64(l.MaxNameLength)),
			"maxItemNameLength": decimal.NewFromInt(int64(l.MaxItemNameLength)),
			"maxNotesLength":    decimal.NewFromInt(int64(l.MaxNotesLength)),
		},
		Driver: cfg.DBDriver,
	}
}

// getSettings godoc
// @Summary Active pricing rates and validation limits
// @Tags settings
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Security BearerAuth
// @Router /settings [get]
func getSettings(cfg *config.Config) gin.HandlerFunc {
	resp := newSettingsResponse(cfg)
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}
