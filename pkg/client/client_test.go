package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// mintToken builds a signed JWT whose exp claim the client can read.
// The signature is irrelevant; the client never verifies it.
func mintToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(ttl).Unix(),
		"sub": "admin@akshar.com",
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func TestLoginAdmin_InstallsSession(t *testing.T) {
	access := mintToken(t, 15*time.Minute)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode login body: %v", err)
		}
		if body["email"] != "admin@akshar.com" || body["password"] != "admin123" {
			t.Errorf("credentials not forwarded: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token":         access,
			"refresh_token": "refresh-1",
			"admin":         map[string]string{"email": "admin@akshar.com", "role": "admin"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	ident, err := c.LoginAdmin(context.Background(), "admin@akshar.com", "admin123")
	if err != nil {
		t.Fatalf("LoginAdmin failed: %v", err)
	}
	if ident.Role != "admin" || ident.Email != "admin@akshar.com" {
		t.Errorf("identity: got %+v", ident)
	}

	sess := c.Session()
	if sess.AccessToken != access || sess.RefreshToken != "refresh-1" {
		t.Errorf("session tokens not installed: %+v", sess)
	}
	if sess.Role != "admin" {
		t.Errorf("session role: got %q", sess.Role)
	}
	if !sess.Valid(time.Now()) {
		t.Error("fresh session should be valid")
	}
	if sess.ExpiresAt.Before(time.Now().Add(10 * time.Minute)) {
		t.Errorf("expiry not read from token: %v", sess.ExpiresAt)
	}
}

func TestLoginAdmin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.LoginAdmin(context.Background(), "admin@akshar.com", "wrong")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "invalid credentials" {
		t.Errorf("error: got %+v", apiErr)
	}
}

func TestDo_UnauthorizedClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "authentication required"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSession(Session{
		AccessToken: mintToken(t, 15*time.Minute),
		Role:        "admin",
		ExpiresAt:   time.Now().Add(15 * time.Minute),
	})

	_, err := c.Volunteers(context.Background(), "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := c.Session(); got.AccessToken != "" {
		t.Error("session was not cleared after a 401")
	}
}

// stubRefresher records refresh calls and hands back a fixed session.
type stubRefresher struct {
	calls int
	next  Session
	err   error
}

func (s *stubRefresher) RefreshSession(ctx context.Context, refreshToken string) (Session, error) {
	s.calls++
	if s.err != nil {
		return Session{}, s.err
	}
	return s.next, nil
}

func TestDo_RefreshesNearExpiry(t *testing.T) {
	freshToken := mintToken(t, 15*time.Minute)

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Volunteer{})
	}))
	defer srv.Close()

	ref := &stubRefresher{next: Session{
		AccessToken:  freshToken,
		RefreshToken: "refresh-2",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}}
	c := New(srv.URL, WithRefresher(ref))
	c.SetSession(Session{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		Role:         "admin",
		ExpiresAt:    time.Now().Add(5 * time.Second), // inside the default window
	})

	if _, err := c.Volunteers(context.Background(), ""); err != nil {
		t.Fatalf("Volunteers failed: %v", err)
	}

	if ref.calls != 1 {
		t.Fatalf("refresher calls: got %d, want 1", ref.calls)
	}
	if gotAuth != "Bearer "+freshToken {
		t.Errorf("request did not carry the refreshed token: %q", gotAuth)
	}
	sess := c.Session()
	if sess.RefreshToken != "refresh-2" {
		t.Errorf("rotated refresh token not installed: %q", sess.RefreshToken)
	}
	if sess.Role != "admin" {
		t.Errorf("role lost across refresh: %q", sess.Role)
	}
}

func TestDo_NoRefreshWhenFarFromExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Volunteer{})
	}))
	defer srv.Close()

	ref := &stubRefresher{}
	c := New(srv.URL, WithRefresher(ref))
	c.SetSession(Session{
		AccessToken:  "live",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(10 * time.Minute),
	})

	if _, err := c.Volunteers(context.Background(), ""); err != nil {
		t.Fatalf("Volunteers failed: %v", err)
	}
	if ref.calls != 0 {
		t.Errorf("refresher calls: got %d, want 0", ref.calls)
	}
}

func TestAttendance_ResolvesReferences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// One row with sibling expansions, one row with a dangling
		// volunteer (deleted after the record was written).
		w.Write([]byte(`[
			{
				"id": "a1", "volunteerId": "v1", "eventId": "e1",
				"status": "present", "hours": 4,
				"volunteer": {"id": "v1", "name": "Asha Patel"},
				"event": {"id": "e1", "name": "Diwali Seva"}
			},
			{
				"id": "a2", "volunteerId": "v9", "eventId": "e1",
				"status": "absent", "hours": 0,
				"event": {"id": "e1", "name": "Diwali Seva"}
			}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSession(Session{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)})

	records, err := c.Attendance(context.Background())
	if err != nil {
		t.Fatalf("Attendance failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if !first.VolunteerID.IsExpanded() || first.VolunteerID.Expanded.Name != "Asha Patel" {
		t.Errorf("volunteer not resolved: %+v", first.VolunteerID)
	}
	if first.VolunteerID.ID != "v1" {
		t.Errorf("volunteer id: got %q", first.VolunteerID.ID)
	}
	if !first.EventID.IsExpanded() || first.EventID.Expanded.Name != "Diwali Seva" {
		t.Errorf("event not resolved: %+v", first.EventID)
	}

	second := records[1]
	if second.VolunteerID.IsExpanded() {
		t.Error("dangling volunteer should stay unexpanded")
	}
	if second.VolunteerID.ID != "v9" {
		t.Errorf("dangling volunteer keeps its id: got %q", second.VolunteerID.ID)
	}
	if !second.EventID.IsExpanded() {
		t.Error("surviving event reference should be resolved")
	}
}

func TestMarkAttendance_SendsBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/attendance/bulk" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		var body struct {
			Records []AttendanceParams `json:"records"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode bulk body: %v", err)
		}
		if len(body.Records) != 2 {
			t.Errorf("records: got %d, want 2", len(body.Records))
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[
			{"id": "a1", "volunteerId": "v1", "eventId": "e1", "status": "present", "hours": 4},
			{"id": "a2", "volunteerId": "v1", "eventId": "e1", "status": "absent", "hours": 0}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSession(Session{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)})

	records, err := c.MarkAttendance(context.Background(), []AttendanceParams{
		{VolunteerID: "v1", EventID: "e1", Status: "present", Hours: 4},
		{VolunteerID: "v1", EventID: "e1", Status: "absent"},
	})
	if err != nil {
		t.Fatalf("MarkAttendance failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].VolunteerID.ID != "v1" || records[0].Hours != 4 {
		t.Errorf("first record: %+v", records[0])
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "database": "connected"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if h.Status != "ok" || h.Database != "connected" {
		t.Errorf("health: got %+v", h)
	}
}

func TestErrorMessage_SurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "a volunteer with this email already exists"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetSession(Session{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)})

	_, err := c.CreateVolunteer(context.Background(), CreateVolunteerParams{
		Name: "Asha", Email: "dup@example.com", Phone: "555-0101",
	})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "a volunteer with this email already exists" {
		t.Errorf("message: got %q", apiErr.Message)
	}
	// 400 is not an auth failure; the session survives.
	if c.Session().AccessToken == "" {
		t.Error("session cleared on a non-401 error")
	}
}
