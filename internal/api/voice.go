// Package api exposes the service over HTTP: the telephony webhook surface
// under /voice, and the dashboard surface (stats, call history, admin
// actions) alongside it.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/graminseva/asha/internal/dialogue"
	"github.com/graminseva/asha/internal/storage"
	"github.com/graminseva/asha/internal/telephony"
)

// VoiceController produces the markup reply for one telephony event.
type VoiceController interface {
	Handle(ctx context.Context, ev dialogue.Event) []byte
}

// Dashboard is the slice of the call record store the read and admin
// endpoints need.
type Dashboard interface {
	Aggregate() (storage.Stats, error)
	RecentCalls(limit int) ([]storage.CallRecord, error)
	RecentReferrals(limit int) ([]storage.ReferralRecord, error)
	Clear() error
}

// Dialer places outbound calls.
type Dialer interface {
	PlaceCall(ctx context.Context, to string, markup []byte) (telephony.Call, error)
	Simulated() bool
}

// Deps carries everything the handler needs.
type Deps struct {
	Controller VoiceController
	Store      Dashboard
	Dialer     Dialer
	AdminToken string
}

// NewHandler builds the full HTTP surface.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Route("/voice", func(r chi.Router) {
		r.Post("/entry", handleVoice(deps))
		r.Post("/gather", handleVoice(deps))
		r.Post("/followup", handleVoice(deps))
		r.Post("/status", handleVoiceStatus)
	})

	r.Get("/stats", handleStats(deps))
	r.Get("/calls", handleListCalls(deps))
	r.Get("/referrals", handleListReferrals(deps))

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.AdminToken))
		r.Post("/calls/initiate", handleInitiateCall(deps))
		r.Delete("/calls", handleClearCalls(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "asha",
	})
}

// handleVoice serves all three webhook entry points. The dialogue state is
// reconstructed from the form fields and query parameters, so one handler
// covers entry, gather, and follow-up.
func handleVoice(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev := eventFromRequest(r)
		markup := deps.Controller.Handle(r.Context(), ev)
		w.Header().Set("Content-Type", "text/xml")
		w.Write(markup)
	}
}

// eventFromRequest maps the provider webhook to a dialogue event. A missing
// CallSid gets a synthetic one so log lines stay correlatable.
func eventFromRequest(r *http.Request) dialogue.Event {
	r.ParseForm()
	ev := dialogue.Event{
		CallSid:      r.PostFormValue("CallSid"),
		From:         r.PostFormValue("From"),
		Digits:       r.PostFormValue("Digits"),
		SpeechResult: r.PostFormValue("SpeechResult"),
		Menu:         r.URL.Query().Get("menu"),
	}
	if ev.CallSid == "" {
		ev.CallSid = "local-" + uuid.NewString()
	}
	if id, err := strconv.ParseInt(r.URL.Query().Get("call"), 10, 64); err == nil && id > 0 {
		ev.ParentCallID = id
	}
	return ev
}

// handleVoiceStatus acknowledges provider call-lifecycle callbacks. They are
// logged for operators; nothing else reacts to them.
func handleVoiceStatus(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	slog.Info("call status update",
		"call_sid", r.PostFormValue("CallSid"),
		"status", r.PostFormValue("CallStatus"),
		"from", r.PostFormValue("From"),
	)
	w.WriteHeader(http.StatusOK)
}
