// internal/app/features/events/handler.go
package events

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	eventstore "github.com/dalemusser/volunteerhub/internal/app/store/events"
	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/app/system/auditlog"
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/app/system/webjson"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
)

var validate = validator.New()

// Handler serves the event CRUD endpoints.
type Handler struct {
	store *eventstore.Store
	audit *auditlog.Logger
	log   *zap.Logger
}

// NewHandler constructs an events Handler.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		store: eventstore.New(db),
		audit: audit,
		log:   logger,
	}
}

// List handles GET /api/events. ?sort=date orders by event date instead
// of creation time.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sortField := ""
	if r.URL.Query().Get("sort") == "date" {
		sortField = "date"
	}

	events, err := h.store.List(ctx, sortField)
	if err != nil {
		h.log.Error("list events failed", zap.Error(err))
		apierr.Write(w, err)
		return
	}
	webjson.Write(w, http.StatusOK, events)
}

// Get handles GET /api/events/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, apierr.Validation("invalid event id"))
		return
	}

	e, err := h.store.GetByID(ctx, id)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	webjson.Write(w, http.StatusOK, e)
}

type createRequest struct {
	Name               string    `json:"name" validate:"required"`
	Date               time.Time `json:"date" validate:"required"`
	Location           string    `json:"location" validate:"required"`
	Description        string    `json:"description"`
	RequiredVolunteers int       `json:"requiredVolunteers" validate:"gte=0"`
	AssignedVolunteers []string  `json:"assignedVolunteers"`
	Status             string    `json:"status" validate:"omitempty,oneof=upcoming ongoing completed"`
}

// Create handles POST /api/events.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := webjson.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierr.Write(w, apierr.Validation("invalid event: "+err.Error()))
		return
	}

	assigned, err := parseObjectIDs(req.AssignedVolunteers)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	created, err := h.store.Create(ctx, models.Event{
		Name:               req.Name,
		Date:               req.Date,
		Location:           req.Location,
		Description:        req.Description,
		RequiredVolunteers: req.RequiredVolunteers,
		AssignedVolunteers: assigned,
		Status:             req.Status,
	})
	if err != nil {
		apierr.Write(w, err)
		return
	}

	if caller, ok := auth.CurrentIdentity(r); ok {
		h.audit.EventCreated(ctx, r, caller.Subject, created.ID, created.Name)
	}
	h.log.Info("event created", zap.String("id", created.ID.Hex()))
	webjson.Write(w, http.StatusCreated, created)
}

type updateRequest struct {
	Name               *string    `json:"name"`
	Date               *time.Time `json:"date"`
	Location           *string    `json:"location"`
	Description        *string    `json:"description"`
	RequiredVolunteers *int       `json:"requiredVolunteers" validate:"omitempty,gte=0"`
	AssignedVolunteers *[]string  `json:"assignedVolunteers"`
	Status             *string    `json:"status" validate:"omitempty,oneof=upcoming ongoing completed"`
}

// Update handles PUT /api/events/{id}. Absent fields are left unchanged.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, apierr.Validation("invalid event id"))
		return
	}

	var req updateRequest
	if err := webjson.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierr.Write(w, apierr.Validation("invalid event: "+err.Error()))
		return
	}

	upd := eventstore.Update{
		Name:               req.Name,
		Date:               req.Date,
		Location:           req.Location,
		Description:        req.Description,
		RequiredVolunteers: req.RequiredVolunteers,
		Status:             req.Status,
	}
	if req.AssignedVolunteers != nil {
		assigned, err := parseObjectIDs(*req.AssignedVolunteers)
		if err != nil {
			apierr.Write(w, err)
			return
		}
		upd.AssignedVolunteers = &assigned
	}

	updated, err := h.store.Apply(ctx, id, upd)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	if caller, ok := auth.CurrentIdentity(r); ok {
		h.audit.EventUpdated(ctx, r, caller.Subject, updated.ID)
	}
	webjson.Write(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/events/{id}. Tasks and attendance that
// reference the event remain in place.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, apierr.Validation("invalid event id"))
		return
	}

	if err := h.store.Delete(ctx, id); err != nil {
		apierr.Write(w, err)
		return
	}

	if caller, ok := auth.CurrentIdentity(r); ok {
		h.audit.EventDeleted(ctx, r, caller.Subject, id)
	}
	webjson.Message(w, http.StatusOK, "Event deleted")
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, hx := range hexes {
		id, err := primitive.ObjectIDFromHex(hx)
		if err != nil {
			return nil, apierr.Validation("invalid volunteer id in assignedVolunteers: " + hx)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
