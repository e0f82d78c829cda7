package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/graminseva/asha/internal/dialogue"
	"github.com/graminseva/asha/internal/storage"
	"github.com/graminseva/asha/internal/telephony"
)

// echoController records the events it is handed and replies with fixed
// markup.
type echoController struct {
	events []dialogue.Event
}

func (e *echoController) Handle(_ context.Context, ev dialogue.Event) []byte {
	e.events = append(e.events, ev)
	return []byte(`<?xml version="1.0" encoding="UTF-8"?><Response><Hangup></Hangup></Response>`)
}

type fakeDashboard struct {
	stats     storage.Stats
	calls     []storage.CallRecord
	referrals []storage.ReferralRecord
	cleared   bool
	err       error
}

func (f *fakeDashboard) Aggregate() (storage.Stats, error) {
	return f.stats, f.err
}

func (f *fakeDashboard) RecentCalls(limit int) ([]storage.CallRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.calls) {
		return f.calls[:limit], nil
	}
	return f.calls, nil
}

func (f *fakeDashboard) RecentReferrals(limit int) ([]storage.ReferralRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.referrals, nil
}

func (f *fakeDashboard) Clear() error {
	if f.err != nil {
		return f.err
	}
	f.cleared = true
	return nil
}

type fakeDialer struct {
	to     string
	markup []byte
	err    error
}

func (f *fakeDialer) PlaceCall(_ context.Context, to string, markup []byte) (telephony.Call, error) {
	if f.err != nil {
		return telephony.Call{}, f.err
	}
	f.to = to
	f.markup = markup
	return telephony.Call{SID: "CA789", Status: "queued"}, nil
}

func (f *fakeDialer) Simulated() bool { return true }

func newTestHandler(ctrl *echoController, store *fakeDashboard, dialer *fakeDialer) http.Handler {
	return NewHandler(Deps{
		Controller: ctrl,
		Store:      store,
		Dialer:     dialer,
		AdminToken: "test-admin-token",
	})
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestVoiceEntryRendersXML(t *testing.T) {
	ctrl := &echoController{}
	h := newTestHandler(ctrl, &fakeDashboard{}, &fakeDialer{})

	rec := postForm(t, h, "/voice/entry", url.Values{
		"CallSid": {"CA1"},
		"From":    {"+919876543210"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/xml" {
		t.Errorf("Content-Type = %q, want text/xml", ct)
	}
	if !strings.Contains(rec.Body.String(), "<Response>") {
		t.Errorf("body = %q", rec.Body.String())
	}
	if len(ctrl.events) != 1 || ctrl.events[0].From != "+919876543210" {
		t.Errorf("events = %+v", ctrl.events)
	}
}

func TestVoiceGatherCarriesMenuContext(t *testing.T) {
	ctrl := &echoController{}
	h := newTestHandler(ctrl, &fakeDashboard{}, &fakeDialer{})

	postForm(t, h, "/voice/gather?menu=2", url.Values{
		"CallSid": {"CA1"},
		"From":    {"+91"},
		"Digits":  {"1"},
	})

	ev := ctrl.events[0]
	if ev.Menu != "2" || ev.Digits != "1" {
		t.Errorf("event = %+v", ev)
	}
}

func TestVoiceFollowupCarriesParentCall(t *testing.T) {
	ctrl := &echoController{}
	h := newTestHandler(ctrl, &fakeDashboard{}, &fakeDialer{})

	postForm(t, h, "/voice/followup?call=42", url.Values{
		"From":         {"+91"},
		"SpeechResult": {"ab theek hai"},
	})

	ev := ctrl.events[0]
	if ev.ParentCallID != 42 {
		t.Errorf("ParentCallID = %d, want 42", ev.ParentCallID)
	}
	if ev.SpeechResult != "ab theek hai" {
		t.Errorf("SpeechResult = %q", ev.SpeechResult)
	}
}

func TestVoiceMissingCallSidGetsSynthetic(t *testing.T) {
	ctrl := &echoController{}
	h := newTestHandler(ctrl, &fakeDashboard{}, &fakeDialer{})

	postForm(t, h, "/voice/entry", url.Values{"From": {"+91"}})

	if sid := ctrl.events[0].CallSid; !strings.HasPrefix(sid, "local-") {
		t.Errorf("CallSid = %q, want synthetic local- prefix", sid)
	}
}

func TestVoiceStatusAccepted(t *testing.T) {
	h := newTestHandler(&echoController{}, &fakeDashboard{}, &fakeDialer{})

	rec := postForm(t, h, "/voice/status", url.Values{
		"CallSid":    {"CA1"},
		"CallStatus": {"completed"},
	})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(&echoController{}, &fakeDashboard{}, &fakeDialer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestStats(t *testing.T) {
	store := &fakeDashboard{stats: storage.Stats{TotalCalls: 7, CriticalCalls: 2, SuccessRate: 71}}
	h := newTestHandler(&echoController{}, store, &fakeDialer{})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats storage.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalCalls != 7 || stats.CriticalCalls != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStatsError(t *testing.T) {
	store := &fakeDashboard{err: errors.New("db closed")}
	h := newTestHandler(&echoController{}, store, &fakeDialer{})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestListCallsRespectsLimit(t *testing.T) {
	store := &fakeDashboard{calls: []storage.CallRecord{
		{ID: 3}, {ID: 2}, {ID: 1},
	}}
	h := newTestHandler(&echoController{}, store, &fakeDialer{})

	req := httptest.NewRequest(http.MethodGet, "/calls?limit=2", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body struct {
		Calls []storage.CallRecord `json:"calls"`
		Count int                  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 2 || len(body.Calls) != 2 {
		t.Errorf("body = %+v", body)
	}
}

func TestListReferrals(t *testing.T) {
	store := &fakeDashboard{referrals: []storage.ReferralRecord{{ID: 1, ReferredToHospital: "Sardar Hospital"}}}
	h := newTestHandler(&echoController{}, store, &fakeDialer{})

	req := httptest.NewRequest(http.MethodGet, "/referrals", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sardar Hospital") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestInitiateCallRequiresAuth(t *testing.T) {
	h := newTestHandler(&echoController{}, &fakeDashboard{}, &fakeDialer{})

	req := httptest.NewRequest(http.MethodPost, "/calls/initiate", strings.NewReader(`{"phone":"+91"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without token", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/calls/initiate", strings.NewReader(`{"phone":"+91"}`))
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 with bad token", rec.Code)
	}
}

func TestAdminDisabledWithoutToken(t *testing.T) {
	h := NewHandler(Deps{
		Controller: &echoController{},
		Store:      &fakeDashboard{},
		Dialer:     &fakeDialer{},
	})

	req := httptest.NewRequest(http.MethodPost, "/calls/initiate", strings.NewReader(`{"phone":"+91"}`))
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 when admin token unset", rec.Code)
	}
}

func TestInitiateCall(t *testing.T) {
	dialer := &fakeDialer{}
	h := newTestHandler(&echoController{}, &fakeDashboard{}, dialer)

	body, _ := json.Marshal(InitiateCallRequest{Phone: "+919876543210"})
	req := httptest.NewRequest(http.MethodPost, "/calls/initiate", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer test-admin-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if dialer.to != "+919876543210" {
		t.Errorf("dialed %q", dialer.to)
	}
	if !strings.Contains(string(dialer.markup), "GraminSeva") {
		t.Errorf("markup = %q, want default announcement", dialer.markup)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["sid"] != "CA789" || resp["simulated"] != true {
		t.Errorf("response = %v", resp)
	}
}

func TestInitiateCallValidation(t *testing.T) {
	h := newTestHandler(&echoController{}, &fakeDashboard{}, &fakeDialer{})

	req := httptest.NewRequest(http.MethodPost, "/calls/initiate", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer test-admin-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing phone", rec.Code)
	}
}

func TestClearCalls(t *testing.T) {
	store := &fakeDashboard{}
	h := newTestHandler(&echoController{}, store, &fakeDialer{})

	req := httptest.NewRequest(http.MethodDelete, "/calls", nil)
	req.Header.Set("Authorization", "Bearer test-admin-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if !store.cleared {
		t.Error("store was not cleared")
	}
}
