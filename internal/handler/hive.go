package handler

import (
	"context"
	"net/http"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/hive"
	"github.com/osse101/BuzzHive_Go/internal/logger"
	"github.com/osse101/BuzzHive_Go/internal/session"
)

// HiveService is the part of session.Manager the HTTP layer needs
type HiveService interface {
	Create(ctx context.Context) (*session.Session, error)
	Get(ctx context.Context, hiveID string) (*session.Session, error)
	Snapshot(ctx context.Context, hiveID string) (domain.HiveState, error)
	Apply(ctx context.Context, hiveID string, act func(context.Context, *session.Session) (hive.Result, error)) (hive.Result, error)
	// Watch keeps hiveID's session alive until release is called
	Watch(ctx context.Context, hiveID string) (release func(), err error)
}

// WorkersRequest is the body of the add-workers action
type WorkersRequest struct {
	Count int `json:"count" validate:"min=1,max=100000"`
}

// TradeRequest is the body of the sell and buy actions
type TradeRequest struct {
	Resource string  `json:"resource" validate:"required,max=32"`
	Amount   float64 `json:"amount"`
}

// HiveHandler serves the hive state and action routes
type HiveHandler struct {
	hives HiveService
}

// NewHiveHandler creates a hive handler
func NewHiveHandler(hives HiveService) *HiveHandler {
	return &HiveHandler{hives: hives}
}

// HandleCreate starts a new hive
// @Summary Create hive
// @Description Starts a new hive with default state and saves it immediately
// @Tags hives
// @Produce json
// @Success 201 {object} domain.Hive
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/hives [post]
func (h *HiveHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s, err := h.hives.Create(ctx)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateHiveFailed, err)
		return
	}
	state, err := s.Snapshot(ctx)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateHiveFailed, err)
		return
	}

	logger.FromContext(ctx).Info(LogMsgHiveCreated, logger.AttrKeyHiveID, s.ID())
	respondJSON(w, http.StatusCreated, domain.Hive{ID: s.ID(), State: state})
}

// HandleGet returns the current state of a hive
// @Summary Get hive
// @Description Loads the hive if needed, credits offline production and returns its state
// @Tags hives
// @Produce json
// @Param hiveID path string true "Hive ID"
// @Success 200 {object} domain.Hive
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/hives/{hiveID} [get]
func (h *HiveHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := HiveIDParam(r)

	state, err := h.hives.Snapshot(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetHiveFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, domain.Hive{ID: id, State: state})
}

// HandleBonus collects the manual bonus
// @Summary Collect bonus
// @Tags actions
// @Produce json
// @Param hiveID path string true "Hive ID"
// @Success 200 {object} ActionResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/hives/{hiveID}/bonus [post]
func (h *HiveHandler) HandleBonus(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, session.ActionBonus, func(ctx context.Context, s *session.Session) (hive.Result, error) {
		return s.CollectBonus(ctx)
	})
}

// HandleUpgrade raises the hive level
// @Summary Upgrade hive
// @Tags actions
// @Produce json
// @Param hiveID path string true "Hive ID"
// @Success 200 {object} ActionResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/hives/{hiveID}/upgrade [post]
func (h *HiveHandler) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, session.ActionUpgrade, func(ctx context.Context, s *session.Session) (hive.Result, error) {
		return s.UpgradeHive(ctx)
	})
}

// HandleWorkers buys worker bees
// @Summary Add worker bees
// @Tags actions
// @Accept json
// @Produce json
// @Param hiveID path string true "Hive ID"
// @Param request body WorkersRequest true "Number of bees"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/hives/{hiveID}/workers [post]
func (h *HiveHandler) HandleWorkers(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest[WorkersRequest](w, r, session.ActionWorkers)
	if !ok {
		return
	}

	h.act(w, r, session.ActionWorkers, func(ctx context.Context, s *session.Session) (hive.Result, error) {
		return s.AddWorkerBees(ctx, req.Count)
	})
}

// HandleSell sells a resource at the current market price
// @Summary Sell resource
// @Tags actions
// @Accept json
// @Produce json
// @Param hiveID path string true "Hive ID"
// @Param request body TradeRequest true "Resource and amount"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/hives/{hiveID}/sell [post]
func (h *HiveHandler) HandleSell(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, session.ActionSell, (*session.Session).Sell)
}

// HandleBuy buys a resource at the current market price
// @Summary Buy resource
// @Tags actions
// @Accept json
// @Produce json
// @Param hiveID path string true "Hive ID"
// @Param request body TradeRequest true "Resource and amount"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/hives/{hiveID}/buy [post]
func (h *HiveHandler) HandleBuy(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, session.ActionBuy, (*session.Session).Buy)
}

type tradeFunc func(*session.Session, context.Context, domain.ResourceKind, float64) (hive.Result, error)

func (h *HiveHandler) trade(w http.ResponseWriter, r *http.Request, action string, fn tradeFunc) {
	req, ok := decodeRequest[TradeRequest](w, r, action)
	if !ok {
		return
	}

	kind, err := hive.ParseResource(req.Resource)
	if err != nil {
		respondServiceError(w, r, action, err)
		return
	}

	h.act(w, r, action, func(ctx context.Context, s *session.Session) (hive.Result, error) {
		return fn(s, ctx, kind, req.Amount)
	})
}

// act applies an action and writes the result. Rejected actions are a
// normal outcome and share the 200 status with accepted ones.
func (h *HiveHandler) act(w http.ResponseWriter, r *http.Request, action string, fn func(context.Context, *session.Session) (hive.Result, error)) {
	id := HiveIDParam(r)

	res, err := h.hives.Apply(r.Context(), id, fn)
	if err != nil {
		respondServiceError(w, r, ErrMsgActionFailed, err)
		return
	}

	logger.FromContext(r.Context()).Debug(LogMsgActionApplied,
		logger.AttrKeyHiveID, id, "action", action, "accepted", res.Accepted)
	respondJSON(w, http.StatusOK, newActionResponse(res))
}
