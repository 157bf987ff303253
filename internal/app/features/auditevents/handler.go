// internal/app/features/auditevents/handler.go

// Package auditevents exposes the audit trail to administrators:
// filtered event listings and a failed-login report. Events are written
// by the auditlog logger; this feature only reads.
package auditevents

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/volunteerhub/internal/app/store/audit"
	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/app/system/webjson"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// Handler serves the audit query endpoints.
type Handler struct {
	store *audit.Store
	log   *zap.Logger
}

// NewHandler constructs an auditevents Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		store: audit.New(db),
		log:   logger,
	}
}

// eventResponse is the JSON shape of one audit event.
type eventResponse struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Category      string            `json:"category"`
	EventType     string            `json:"eventType"`
	Actor         string            `json:"actor,omitempty"`
	TargetID      string            `json:"targetId,omitempty"`
	IP            string            `json:"ip,omitempty"`
	UserAgent     string            `json:"userAgent,omitempty"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failureReason,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

func toResponse(events []audit.Event) []eventResponse {
	out := make([]eventResponse, len(events))
	for i, e := range events {
		out[i] = eventResponse{
			ID:            e.ID.Hex(),
			Timestamp:     e.Timestamp,
			Category:      e.Category,
			EventType:     e.EventType,
			Actor:         e.Actor,
			IP:            e.IP,
			UserAgent:     e.UserAgent,
			Success:       e.Success,
			FailureReason: e.FailureReason,
			Details:       e.Details,
		}
		if e.TargetID != nil {
			out[i].TargetID = e.TargetID.Hex()
		}
	}
	return out
}

type listResponse struct {
	Events []eventResponse `json:"events"`
	Total  int64           `json:"total"`
	Limit  int64           `json:"limit"`
	Offset int64           `json:"offset"`
}

// List handles GET /api/audit. Filters: actor, category, type,
// start_date, end_date (2006-01-02), limit, offset.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter, err := parseFilter(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	events, err := h.store.Query(ctx, filter)
	if err != nil {
		h.log.Error("audit query failed", zap.Error(err))
		apierr.Write(w, err)
		return
	}
	total, err := h.store.CountByFilter(ctx, filter)
	if err != nil {
		h.log.Error("audit count failed", zap.Error(err))
		apierr.Write(w, err)
		return
	}

	webjson.Write(w, http.StatusOK, listResponse{
		Events: toResponse(events),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// FailedLogins handles GET /api/audit/failed-logins. since_hours
// bounds the lookback window (default 24).
func (h *Handler) FailedLogins(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	hours := 24
	if s := r.URL.Query().Get("since_hours"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			apierr.Write(w, apierr.Validation("since_hours must be a positive integer"))
			return
		}
		hours = n
	}
	limit := parseLimit(r)

	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	events, err := h.store.GetFailedLogins(ctx, since, limit)
	if err != nil {
		h.log.Error("failed-login query failed", zap.Error(err))
		apierr.Write(w, err)
		return
	}

	webjson.Write(w, http.StatusOK, map[string]interface{}{
		"events": toResponse(events),
		"since":  since,
	})
}

func parseFilter(r *http.Request) (audit.QueryFilter, error) {
	q := r.URL.Query()
	filter := audit.QueryFilter{
		Actor:     strings.TrimSpace(q.Get("actor")),
		Category:  strings.TrimSpace(q.Get("category")),
		EventType: strings.TrimSpace(q.Get("type")),
		Limit:     parseLimit(r),
	}

	if s := q.Get("offset"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return audit.QueryFilter{}, apierr.Validation("offset must be a non-negative integer")
		}
		filter.Offset = n
	}

	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return audit.QueryFilter{}, apierr.Validation("start_date must be YYYY-MM-DD")
		}
		filter.StartTime = &t
	}
	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return audit.QueryFilter{}, apierr.Validation("end_date must be YYYY-MM-DD")
		}
		// Inclusive through the end of the named day.
		endOfDay := t.Add(24*time.Hour - time.Second)
		filter.EndTime = &endOfDay
	}

	return filter, nil
}

func parseLimit(r *http.Request) int64 {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return defaultLimit
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}
