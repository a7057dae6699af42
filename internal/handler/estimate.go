package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/drivetime/internal/domain"
)

// EstimateRequest is the body of POST /api/estimate.
// Origin is "lat,lng", "place_id:<id>", a preset label, or an address.
// Destination is what a chat user would type, slash syntax included.
type EstimateRequest struct {
	Origin      string `json:"origin" validate:"required,max=200"`
	Destination string `json:"destination" validate:"required,max=200"`
}

// EstimateResponse mirrors domain.TripResult.
type EstimateResponse struct {
	Label   string `json:"label"`
	Banner  string `json:"banner,omitempty"`
	Minutes int    `json:"minutes,omitempty"`
	Link    string `json:"link,omitempty"`
	Text    string `json:"text"`
	Failure string `json:"failure,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// PostEstimate handles POST /api/estimate. It runs the same pipeline as a
// chat message without touching any stored origin.
//
// 200 with the estimate; 404 no_route; 502 provider_error; 422 on an
// invalid body.
func (s *Server) PostEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if tooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return
		}
		requestBody(w, "request body must be a JSON object with origin and destination")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		validationBody(w, err)
		return
	}

	origin, err := s.parseOrigin(req.Origin)
	if err != nil {
		validationBody(w, err)
		return
	}

	result := s.trips.Plan(r.Context(), origin, req.Destination)
	resp := toEstimateResponse(result)

	switch err := result.Err(); {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, domain.ErrNoRoute):
		writeJSON(w, http.StatusNotFound, resp)
	default:
		s.log.WarnContext(r.Context(), "estimate failed", "destination", req.Destination, "error", err)
		writeJSON(w, http.StatusBadGateway, resp)
	}
}

// parseOrigin resolves a preset label first so the API and the chat menu
// agree on what "🏠 家" means.
func (s *Server) parseOrigin(text string) (domain.LocationRef, error) {
	if p, ok := s.presets.Lookup(text); ok {
		return p.Location(), nil
	}
	return domain.ParseLocation(text)
}

func toEstimateResponse(r domain.TripResult) EstimateResponse {
	return EstimateResponse{
		Label:   r.Label,
		Banner:  r.Banner,
		Minutes: r.Minutes,
		Link:    r.Link,
		Text:    r.Text(),
		Failure: r.Failure.String(),
		Reason:  r.Reason,
	}
}
