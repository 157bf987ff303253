// internal/app/features/tasks/handler.go
package tasks

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
	taskstore "github.com/dalemusser/volunteerhub/internal/app/store/tasks"
	volunteerstore "github.com/dalemusser/volunteerhub/internal/app/store/volunteers"
	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/app/system/auditlog"
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/app/system/webjson"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
)

var validate = validator.New()

// Handler serves the task CRUD endpoints. It holds the volunteer and
// event stores as well, because task references are verified against
// both collections when set.
type Handler struct {
	store      *taskstore.Store
	volunteers *volunteerstore.Store
	events     *eventstore.Store
	audit      *auditlog.Logger
	log        *zap.Logger
}

// NewHandler constructs a tasks Handler.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		store:      taskstore.New(db),
		volunteers: volunteerstore.New(db),
		events:     eventstore.New(db),
		audit:      audit,
		log:        logger,
	}
}

// List handles GET /api/tasks. ?sort=dueDate orders by due date instead
// of creation time.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sortField := ""
	if r.URL.Query().Get("sort") == "dueDate" {
		sortField = "dueDate"
	}

	tasks, err := h.store.List(ctx, sortField)
	if err != nil {
		h.log.Error("list tasks failed", zap.Error(err))
		apierr.Write(w, err)
		return
	}
	webjson.Write(w, http.StatusOK, tasks)
}

// Get handles GET /api/tasks/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, apierr.Validation("invalid task id"))
		return
	}

	task, err := h.store.GetByID(ctx, id)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	webjson.Write(w, http.StatusOK, task)
}

type createRequest struct {
	EventID     string     `json:"eventId" validate:"required"`
	VolunteerID string     `json:"volunteerId" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
}

// Create handles POST /api/tasks. Both references must resolve to
// existing documents at creation time.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := webjson.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierr.Write(w, apierr.Validation("invalid task: "+err.Error()))
		return
	}

	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		apierr.Write(w, apierr.Validation("invalid event id"))
		return
	}
	volunteerID, err := primitive.ObjectIDFromHex(req.VolunteerID)
	if err != nil {
		apierr.Write(w, apierr.Validation("invalid volunteer id"))
		return
	}
	if err := h.checkRefs(ctx, &eventID, &volunteerID); err != nil {
		apierr.Write(w, err)
		return
	}

	created, err := h.store.Create(ctx, models.Task{
		EventID:     eventID,
		VolunteerID: volunteerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		apierr.Write(w, err)
		return
	}

	if caller, ok := auth.CurrentIdentity(r); ok {
		h.audit.TaskCreated(ctx, r, caller.Subject, created.ID, created.Title)
	}
	h.log.Info("task created", zap.String("id", created.ID.Hex()))
	webjson.Write(w, http.StatusCreated, created)
}

type updateRequest struct {
	EventID     *string    `json:"eventId"`
	VolunteerID *string    `json:"volunteerId"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
}

// Update handles PUT /api/tasks/{id}. Absent fields are left unchanged;
// a changed reference must resolve to an existing document.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, apierr.Validation("invalid task id"))
		return
	}

	var req updateRequest
	if err := webjson.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierr.Write(w, apierr.Validation("invalid task: "+err.Error()))
		return
	}

	upd := taskstore.Update{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
	if req.EventID != nil {
		eventID, err := primitive.ObjectIDFromHex(*req.EventID)
		if err != nil {
			apierr.Write(w, apierr.Validation("invalid event id"))
			return
		}
		upd.EventID = &eventID
	}
	if req.VolunteerID != nil {
		volunteerID, err := primitive.ObjectIDFromHex(*req.VolunteerID)
		if err != nil {
			apierr.Write(w, apierr.Validation("invalid volunteer id"))
			return
		}
		upd.VolunteerID = &volunteerID
	}
	if err := h.checkRefs(ctx, upd.EventID, upd.VolunteerID); err != nil {
		apierr.Write(w, err)
		return
	}

	updated, err := h.store.Apply(ctx, id, upd)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	if caller, ok := auth.CurrentIdentity(r); ok {
		h.audit.TaskUpdated(ctx, r, caller.Subject, updated.ID)
	}
	webjson.Write(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, apierr.Validation("invalid task id"))
		return
	}

	if err := h.store.Delete(ctx, id); err != nil {
		apierr.Write(w, err)
		return
	}

	if caller, ok := auth.CurrentIdentity(r); ok {
		h.audit.TaskDeleted(ctx, r, caller.Subject, id)
	}
	webjson.Message(w, http.StatusOK, "Task deleted")
}

// checkRefs verifies that any supplied event and volunteer ids resolve
// to existing documents. A missing reference is a validation failure,
// not a 404: the task is the subject of the request, not the referent.
func (h *Handler) checkRefs(ctx context.Context, eventID, volunteerID *primitive.ObjectID) error {
	if eventID != nil {
		if _, err := h.events.GetByID(ctx, *eventID); err != nil {
			if apierr.KindOf(err) == apierr.KindNotFound {
				return apierr.Validation("event " + eventID.Hex() + " does not exist")
			}
			return err
		}
	}
	if volunteerID != nil {
		if _, err := h.volunteers.GetByID(ctx, *volunteerID); err != nil {
			if apierr.KindOf(err) == apierr.KindNotFound {
				return apierr.Validation("volunteer " + volunteerID.Hex() + " does not exist")
			}
			return err
		}
	}
	return nil
}
