// internal/app/features/attendance/handler.go
package attendance

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/volunteerhub/internal/app/services/accrual"
	attendancestore "github.com/dalemusser/volunteerhub/internal/app/store/attendance"
	eventstore "github.com/dalemusser/volunteerhub/internal/app/store/events"
	volunteerstore "github.com/dalemusser/volunteerhub/internal/app/store/volunteers"
	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/app/system/auditlog"
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/app/system/webjson"
)

var validate = validator.New()

// Handler serves the attendance endpoints: the expanded listing and the
// bulk marking workflow.
type Handler struct {
	store   *attendancestore.Store
	accrual *accrual.Service
	audit   *auditlog.Logger
	log     *zap.Logger
}

// NewHandler constructs an attendance Handler. The accrual service is
// built here because it spans three collections and the client handle.
func NewHandler(client *mongo.Client, db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	as := attendancestore.New(db)
	return &Handler{
		store:   as,
		accrual: accrual.New(client, volunteerstore.New(db), eventstore.New(db), as, logger),
		audit:   audit,
		log:     logger,
	}
}

// List handles GET /api/attendance. Rows are returned with their
// volunteer and event documents joined in, newest session first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	records, err := h.store.ListExpanded(ctx)
	if err != nil {
		h.log.Error("list attendance failed", zap.Error(err))
		apierr.Write(w, err)
		return
	}
	webjson.Write(w, http.StatusOK, records)
}

type bulkRecord struct {
	VolunteerID string     `json:"volunteerId" validate:"required"`
	EventID     string     `json:"eventId" validate:"required"`
	Date        *time.Time `json:"date"`
	Status      string     `json:"status" validate:"required,oneof=present absent"`
	Hours       float64    `json:"hours" validate:"gte=0"`
}

type bulkRequest struct {
	Records []bulkRecord `json:"records" validate:"required,min=1,dive"`
}

// MarkBulk handles POST /api/attendance/bulk. The whole batch commits
// or none of it does; hours accrue for present entries only.
func (h *Handler) MarkBulk(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	var req bulkRequest
	if err := webjson.Decode(w, r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierr.Write(w, apierr.Validation("invalid attendance batch: "+err.Error()))
		return
	}

	entries := make([]accrual.Entry, len(req.Records))
	for i, rec := range req.Records {
		volunteerID, err := primitive.ObjectIDFromHex(rec.VolunteerID)
		if err != nil {
			apierr.Write(w, apierr.Validation("invalid volunteer id: "+rec.VolunteerID))
			return
		}
		eventID, err := primitive.ObjectIDFromHex(rec.EventID)
		if err != nil {
			apierr.Write(w, apierr.Validation("invalid event id: "+rec.EventID))
			return
		}
		entries[i] = accrual.Entry{
			VolunteerID: volunteerID,
			EventID:     eventID,
			Status:      rec.Status,
			Hours:       rec.Hours,
		}
		if rec.Date != nil {
			entries[i].Date = *rec.Date
		}
	}

	res, err := h.accrual.MarkAttendance(ctx, entries)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	if caller, ok := auth.CurrentIdentity(r); ok {
		h.audit.AttendanceRecorded(ctx, r, caller.Subject, len(res.Records), len(res.AccruedHours))
	}
	webjson.Write(w, http.StatusCreated, res.Records)
}
