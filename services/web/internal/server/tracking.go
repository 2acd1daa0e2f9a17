package server

import (
	"encoding/json"
	"io"
	"net/http"

	"bookvoyage/pkg/domain"
	"bookvoyage/services/web/internal/tracking"
)

const maxEventsPerIngest = 50

type trackingIngestRequest struct {
	Events []domain.TrackingEvent `json:"events"`
}

// handleTrackingEvents accepts partial telemetry events from the browser
// and hands them to the collector, which stamps identity and batches the
// delivery. Ingest always answers quickly; delivery is asynchronous and
// best-effort.
func (s *Server) handleTrackingEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r, s.trackingLimiter, "too many tracking requests") {
		return
	}
	var req trackingIngestRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Events) == 0 {
		writeError(w, http.StatusBadRequest, "events is required")
		return
	}
	if len(req.Events) > maxEventsPerIngest {
		req.Events = req.Events[:maxEventsPerIngest]
	}
	id := tracking.EnsureIdentity(w, r)
	accepted := 0
	for _, event := range req.Events {
		switch event.EventType {
		case domain.EventImpression, domain.EventClick:
		default:
			continue
		}
		s.collector.Enqueue(id, event)
		accepted++
	}
	writeJSON(w, http.StatusAccepted, map[string]int{"accepted": accepted})
}
