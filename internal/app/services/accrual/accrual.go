// internal/app/services/accrual/accrual.go

// Package accrual implements the bulk attendance workflow: a batch of
// attendance marks is validated as a whole, appended to the attendance
// collection, and the hours of every present volunteer are incremented,
// all inside one transaction.
package accrual

import (
	"context"
	"time"

	attendancestore "github.com/dalemusser/volunteerhub/internal/app/store/attendance"
	eventstore "github.com/dalemusser/volunteerhub/internal/app/store/events"
	volunteerstore "github.com/dalemusser/volunteerhub/internal/app/store/volunteers"
	"github.com/dalemusser/volunteerhub/internal/app/system/apierr"
	"github.com/dalemusser/volunteerhub/internal/app/system/txn"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Entry is one attendance mark in a batch.
type Entry struct {
	VolunteerID primitive.ObjectID
	EventID     primitive.ObjectID
	Date        time.Time
	Status      string
	Hours       float64
}

// Result reports what a committed batch did.
type Result struct {
	Records []models.Attendance
	// AccruedHours maps volunteer id to the hours added to its
	// cumulative total by this batch. Volunteers marked only absent
	// are not present in the map.
	AccruedHours map[primitive.ObjectID]float64
}

// Service validates and commits attendance batches.
type Service struct {
	client     *mongo.Client
	volunteers *volunteerstore.Store
	events     *eventstore.Store
	attendance *attendancestore.Store
	log        *zap.Logger
}

func New(client *mongo.Client, vs *volunteerstore.Store, es *eventstore.Store, as *attendancestore.Store, log *zap.Logger) *Service {
	return &Service{
		client:     client,
		volunteers: vs,
		events:     es,
		attendance: as,
		log:        log,
	}
}

// MarkAttendance commits a batch of attendance marks all or nothing.
//
// Every entry must reference an existing volunteer and event, carry a
// valid status, and have hours >= 0; if any entry fails, nothing is
// written. Marking is append-only: submitting the same volunteer and
// event again adds another record and accrues again. Hours accrue only
// for entries marked present, and a volunteer appearing in several
// present entries accrues the sum.
func (s *Service) MarkAttendance(ctx context.Context, entries []Entry) (*Result, error) {
	if len(entries) == 0 {
		return nil, apierr.Validation("attendance batch is empty")
	}

	if err := s.validate(ctx, entries); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	records := make([]models.Attendance, len(entries))
	accrued := map[primitive.ObjectID]float64{}
	for i, e := range entries {
		date := e.Date
		if date.IsZero() {
			date = now
		}
		records[i] = models.Attendance{
			VolunteerID: e.VolunteerID,
			EventID:     e.EventID,
			Date:        date,
			Status:      e.Status,
			Hours:       e.Hours,
		}
		if e.Status == models.AttendancePresent {
			accrued[e.VolunteerID] += e.Hours
		}
	}

	var inserted []models.Attendance
	err := txn.WithTransaction(ctx, s.client, s.log, func(ctx context.Context) error {
		var err error
		inserted, err = s.attendance.InsertBatch(ctx, records)
		if err != nil {
			return err
		}
		for id, hours := range accrued {
			if hours == 0 {
				continue
			}
			if err := s.volunteers.IncrementHours(ctx, id, hours); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("attendance batch committed",
		zap.Int("records", len(inserted)),
		zap.Int("volunteers_accrued", len(accrued)),
	)
	return &Result{Records: inserted, AccruedHours: accrued}, nil
}

// validate checks every entry before anything is written.
func (s *Service) validate(ctx context.Context, entries []Entry) error {
	volIDs := make([]primitive.ObjectID, 0, len(entries))
	evtIDs := make([]primitive.ObjectID, 0, len(entries))
	seenVol := map[primitive.ObjectID]bool{}
	seenEvt := map[primitive.ObjectID]bool{}

	for _, e := range entries {
		if e.VolunteerID.IsZero() {
			return apierr.Validation("volunteerId is required for every record")
		}
		if e.EventID.IsZero() {
			return apierr.Validation("eventId is required for every record")
		}
		if !models.IsValidAttendanceStatus(e.Status) {
			return apierr.Validation(`status must be "present" or "absent"`)
		}
		if e.Hours < 0 {
			return apierr.Validation("hours must be >= 0")
		}
		if !seenVol[e.VolunteerID] {
			seenVol[e.VolunteerID] = true
			volIDs = append(volIDs, e.VolunteerID)
		}
		if !seenEvt[e.EventID] {
			seenEvt[e.EventID] = true
			evtIDs = append(evtIDs, e.EventID)
		}
	}

	foundVols, err := s.volunteers.ExistingIDs(ctx, volIDs)
	if err != nil {
		return err
	}
	foundEvts, err := s.events.ExistingIDs(ctx, evtIDs)
	if err != nil {
		return err
	}

	// Dangling references are reported in batch order: the first entry
	// with a missing volunteer or event names that reference.
	for _, e := range entries {
		if !foundVols[e.VolunteerID] {
			return apierr.NotFound("volunteer " + e.VolunteerID.Hex() + " does not exist")
		}
		if !foundEvts[e.EventID] {
			return apierr.NotFound("event " + e.EventID.Hex() + " does not exist")
		}
	}
	return nil
}
