package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/userhub/internal/app/system/inputval"
	"github.com/dalemusser/userhub/internal/app/system/respond"
	"github.com/dalemusser/userhub/internal/app/system/timeouts"
)

// Handler adapts HTTP requests to the users service. It owns request
// decoding, input validation, timeouts, and the envelope-to-status
// mapping; all business decisions live in the service.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, log: logger}
}

// createUserRequest wraps the payload under a "user" key. The inner
// document is kept raw so the validation layer can distinguish absent
// fields from zero values.
type createUserRequest struct {
	User json.RawMessage `json:"user"`
}

type addOrderRequest struct {
	Order json.RawMessage `json:"order"`
}

// parseUserID reads the userId path parameter. A non-numeric value is
// treated the same as a missing user.
func parseUserID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// validationFailure writes the 500 envelope with field-level violations
// attached. Malformed input shares the generic message with
// infrastructure errors; the fields array is what tells them apart.
func (h *Handler) validationFailure(w http.ResponseWriter, ve *inputval.Error) {
	env := respond.Fail(respond.GenericMessage)
	env.Error = ve.Fields
	respond.JSON(w, http.StatusInternalServerError, env)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("malformed create body", zap.Error(err))
		respond.JSON(w, http.StatusInternalServerError, respond.Fail(respond.GenericMessage))
		return
	}

	u, err := inputval.User(req.User)
	if err != nil {
		var ve *inputval.Error
		if errors.As(err, &ve) {
			h.validationFailure(w, ve)
			return
		}
		respond.JSON(w, http.StatusInternalServerError, respond.Fail(respond.GenericMessage))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	env := h.svc.CreateUser(ctx, u)
	respond.JSON(w, respond.Status(env, http.StatusCreated, http.StatusBadRequest), env)
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	env := h.svc.GetUsers(ctx)
	respond.JSON(w, respond.Status(env, http.StatusOK, http.StatusNotFound), env)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(r)
	if !ok {
		respond.JSON(w, http.StatusNotFound, respond.NotFound("User not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	env := h.svc.GetUserByUserID(ctx, id)
	respond.JSON(w, respond.Status(env, http.StatusOK, http.StatusNotFound), env)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(r)
	if !ok {
		respond.JSON(w, http.StatusNotFound, respond.NotFound("User not found"))
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("malformed update body", zap.Error(err))
		respond.JSON(w, http.StatusInternalServerError, respond.Fail(respond.GenericMessage))
		return
	}

	u, err := inputval.User(req.User)
	if err != nil {
		var ve *inputval.Error
		if errors.As(err, &ve) {
			h.validationFailure(w, ve)
			return
		}
		respond.JSON(w, http.StatusInternalServerError, respond.Fail(respond.GenericMessage))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	env := h.svc.UpdateUserByID(ctx, id, u)
	respond.JSON(w, respond.Status(env, http.StatusOK, http.StatusNotFound), env)
}

func (h *Handler) AddOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(r)
	if !ok {
		respond.JSON(w, http.StatusNotFound, respond.NotFound("User not found"))
		return
	}

	var req addOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("malformed order body", zap.Error(err))
		respond.JSON(w, http.StatusInternalServerError, respond.Fail(respond.GenericMessage))
		return
	}

	order, err := inputval.Order(req.Order)
	if err != nil {
		var ve *inputval.Error
		if errors.As(err, &ve) {
			h.validationFailure(w, ve)
			return
		}
		respond.JSON(w, http.StatusInternalServerError, respond.Fail(respond.GenericMessage))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	env := h.svc.AddOrder(ctx, id, order)
	respond.JSON(w, respond.Status(env, http.StatusOK, http.StatusNotFound), env)
}

func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(r)
	if !ok {
		respond.JSON(w, http.StatusNotFound, respond.NotFound("User not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	env := h.svc.GetOrders(ctx, id)
	respond.JSON(w, respond.Status(env, http.StatusOK, http.StatusNotFound), env)
}

func (h *Handler) GetOrdersTotalPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(r)
	if !ok {
		respond.JSON(w, http.StatusNotFound, respond.NotFound("User not found"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	env := h.svc.GetOrdersTotalPrice(ctx, id)
	respond.JSON(w, respond.Status(env, http.StatusOK, http.StatusNotFound), env)
}
