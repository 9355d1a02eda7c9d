package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/BuzzHive_Go/internal/aitips"
	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/logger"
)

// TipsHandler serves the optimization tip routes
type TipsHandler struct {
	hives   HiveService
	advisor aitips.Advisor
}

// NewTipsHandler creates a tips handler
func NewTipsHandler(hives HiveService, advisor aitips.Advisor) *TipsHandler {
	return &TipsHandler{hives: hives, advisor: advisor}
}

// HandleOptimize answers a raw advisor request
// @Summary Optimization tips
// @Description Returns tips for the described hive. Invalid input is a 400, a failed model call a 500.
// @Tags tips
// @Accept json
// @Produce json
// @Param request body aitips.Request true "Hive description"
// @Success 200 {object} aitips.Response
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/tips [post]
func (h *TipsHandler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	var req aitips.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondServiceError(w, r, ErrMsgTipsFailed, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}

	h.optimize(w, r, req)
}

// HandleHiveTips answers with tips for the current state of a hive
// @Summary Optimization tips for a hive
// @Tags tips
// @Produce json
// @Param hiveID path string true "Hive ID"
// @Success 200 {object} aitips.Response
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/hives/{hiveID}/tips [post]
func (h *TipsHandler) HandleHiveTips(w http.ResponseWriter, r *http.Request) {
	state, err := h.hives.Snapshot(r.Context(), HiveIDParam(r))
	if err != nil {
		respondServiceError(w, r, ErrMsgTipsFailed, err)
		return
	}

	h.optimize(w, r, aitips.FromState(state))
}

func (h *TipsHandler) optimize(w http.ResponseWriter, r *http.Request, req aitips.Request) {
	res, err := h.advisor.Optimize(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, ErrMsgTipsFailed, err)
		return
	}

	logger.FromContext(r.Context()).Debug(LogMsgTipsGenerated, "tips", len(res.OptimizationTips))
	respondJSON(w, http.StatusOK, res)
}
