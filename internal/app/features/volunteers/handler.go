// internal/app/features/volunteers/handler.go
package volunteers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	volunteerstore "github.com/dalemusser/volunteerhub/internal/app/store/volunteers"
	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/app/system/auditlog"
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/app/system/webjson"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
)

var validate = validator.New()

// Handler serves the volunteer CRUD endpoints.
type Handler struct {
	store *volunteerstore.Store
	audit *auditlog.Logger
	log   *zap.Logger
}

// NewHandler constructs a volunteers Handler.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		store: volunteerstore.New(db),
		audit: audit,
		log:   logger,
	}
}

// List handles GET /api/volunteers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	volunteers, err := h.store.List(ctx, "")
	if err != nil {
		h.log.Error("list volunteers failed", zap.Error(err))
		apierr.Write(w, err)
		return
	}
	webjson.Write(w, http.StatusOK, volunteers)
}

// Get handles GET /api/volunteers/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, apierr.Validation("invalid volunteer id"))
		return
	}

	v, err := h.store.GetByID(ctx, id)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	webjson.Write(w, http.StatusOK, v)
}

type createRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Phone    string     `json:"phone" validate:"required"`
	Address  string     `json:"address"`
	Skills   string     `json:"skills"`
	Status   string     `json:"status" validate:"omitempty,oneof=active inactive"`
	Hours    float64    `json:"hours" validate:"gte=0"`
	JoinDate *time.Time `json:"joinDate"`
}

// Create handles POST /api/volunteers.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := webjson.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierr.Write(w, apierr.Validation("invalid volunteer: "+err.Error()))
		return
	}

	v := models.Volunteer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Skills:  req.Skills,
		Status:  req.Status,
		Hours:   req.Hours,
	}
	if req.JoinDate != nil {
		v.JoinDate = *req.JoinDate
	}

	created, err := h.store.Create(ctx, v)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	if id, ok := auth.CurrentIdentity(r); ok {
		h.audit.VolunteerCreated(ctx, r, id.Subject, created.ID, created.Email)
	}
	h.log.Info("volunteer created", zap.String("id", created.ID.Hex()))
	webjson.Write(w, http.StatusCreated, created)
}

type updateRequest struct {
	Name     *string    `json:"name"`
	Email    *string    `json:"email" validate:"omitempty,email"`
	Phone    *string    `json:"phone"`
	Address  *string    `json:"address"`
	Skills   *string    `json:"skills"`
	Status   *string    `json:"status" validate:"omitempty,oneof=active inactive"`
	JoinDate *time.Time `json:"joinDate"`
}

// Update handles PUT /api/volunteers/{id}. Absent fields are left
// unchanged; the cumulative hours total is not updatable here.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, apierr.Validation("invalid volunteer id"))
		return
	}

	var req updateRequest
	if err := webjson.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierr.Write(w, apierr.Validation("invalid volunteer: "+err.Error()))
		return
	}

	updated, err := h.store.Apply(ctx, id, volunteerstore.Update{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Skills:   req.Skills,
		Status:   req.Status,
		JoinDate: req.JoinDate,
	})
	if err != nil {
		apierr.Write(w, err)
		return
	}

	if caller, ok := auth.CurrentIdentity(r); ok {
		h.audit.VolunteerUpdated(ctx, r, caller.Subject, updated.ID)
	}
	webjson.Write(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/volunteers/{id}. Attendance and task
// records that reference the volunteer remain in place.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, apierr.Validation("invalid volunteer id"))
		return
	}

	if err := h.store.Delete(ctx, id); err != nil {
		apierr.Write(w, err)
		return
	}

	if caller, ok := auth.CurrentIdentity(r); ok {
		h.audit.VolunteerDeleted(ctx, r, caller.Subject, id)
	}
	webjson.Message(w, http.StatusOK, "Volunteer deleted")
}
