package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/graminseva/asha/internal/lang"
	"github.com/graminseva/asha/internal/twiml"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

const defaultOutreachMessage = "Namaste. Yeh GraminSeva swasthya seva ki taraf se ek suchna call hai. " +
	"Swasthya salah ke liye hamare number par call karein. Dhanyavaad."

func parseLimit(r *http.Request) int {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit
}

func handleStats(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := deps.Store.Aggregate()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "aggregating stats: %v", err)
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}

func handleListCalls(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls, err := deps.Store.RecentCalls(parseLimit(r))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing calls: %v", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"calls": calls,
			"count": len(calls),
		})
	}
}

func handleListReferrals(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		referrals, err := deps.Store.RecentReferrals(parseLimit(r))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing referrals: %v", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"referrals": referrals,
			"count":     len(referrals),
		})
	}
}

// InitiateCallRequest asks for an outbound announcement call.
type InitiateCallRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// handleInitiateCall places an outreach call that speaks an announcement
// and hangs up. The message rides inline with the call request, so no
// publicly reachable webhook URL is needed.
func handleInitiateCall(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InitiateCallRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Phone == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "phone is required")
			return
		}
		message := req.Message
		if message == "" {
			message = defaultOutreachMessage
		}

		markup, err := twiml.New().
			Say(lang.Detect(message), message).
			EndHangup().
			Render()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "rendering call markup: %v", err)
			return
		}

		call, err := deps.Dialer.PlaceCall(r.Context(), req.Phone, markup)
		if err != nil {
			httpError(w, http.StatusBadGateway, "api_error", "placing call: %v", err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"sid":       call.SID,
			"status":    call.Status,
			"simulated": deps.Dialer.Simulated(),
		})
	}
}

// handleClearCalls wipes call and referral history. Intended for demo
// resets, hence the bearer-token guard.
func handleClearCalls(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Store.Clear(); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "clearing call history: %v", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
