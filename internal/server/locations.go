package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sells-group/geo-locator/internal/export"
	"github.com/sells-group/geo-locator/internal/model"
	"github.com/sells-group/geo-locator/internal/pipeline"
)

const maxRequestBytes = 1 << 20

// locateRequest is the client payload. Nil fields take the configured
// default; an explicitly empty list is passed through and rejected.
type locateRequest struct {
	Lat             *float64 `json:"lat"`
	Lon             *float64 `json:"lon"`
	BusinessURL     *string  `json:"business_url"`
	Keywords        []string `json:"keywords"`
	BusinessNames   []string `json:"business_names"`
	Descriptions    []string `json:"descriptions"`
	Rings           *int     `json:"rings"`
	PointsPerRing   *int     `json:"points_per_ring"`
	RadiusStepMiles *float64 `json:"radius_step_miles"`
}

type locateResponse struct {
	RunID       string                   `json:"run_id"`
	CompletedAt time.Time                `json:"completed_at"`
	Summary     model.Summary            `json:"summary"`
	Locations   []model.ResolvedLocation `json:"locations"`
}

func newLocateResponse(rs *model.ResultSet) locateResponse {
	return locateResponse{
		RunID:       rs.RunID(),
		CompletedAt: rs.CompletedAt(),
		Summary:     rs.Summary(),
		Locations:   rs.Locations(),
	}
}

// build merges the payload over the configured defaults.
func (s *Server) build(lr locateRequest) (pipeline.Request, error) {
	if lr.Lat == nil || lr.Lon == nil {
		return pipeline.Request{}, model.NewConfigError("center", "lat and lon are required")
	}

	c := *s.cfg
	if lr.Rings != nil {
		c.Rings.Count = *lr.Rings
	}
	if lr.PointsPerRing != nil {
		c.Rings.PointsPerRing = *lr.PointsPerRing
	}
	if lr.RadiusStepMiles != nil {
		c.Rings.RadiusStepMiles = *lr.RadiusStepMiles
	}
	if lr.BusinessURL != nil {
		c.Content.BusinessURL = *lr.BusinessURL
	}
	if lr.Keywords != nil {
		c.Content.Keywords = lr.Keywords
	}
	if lr.BusinessNames != nil {
		c.Content.BusinessNames = lr.BusinessNames
	}
	if lr.Descriptions != nil {
		c.Content.Descriptions = lr.Descriptions
	}

	return c.Request(model.Coordinate{Latitude: *lr.Lat, Longitude: *lr.Lon}), nil
}

func decodeLocateRequest(w http.ResponseWriter, r *http.Request) (locateRequest, error) {
	var lr locateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&lr); err != nil {
		return lr, err
	}
	return lr, nil
}

// handleLocate runs a request to completion and returns JSON, or a file
// when ?format= is given.
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	lr, err := decodeLocateRequest(w, r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		format    export.Format
		view      = export.ViewComprehensive
		asFile    = r.URL.Query().Get("format") != ""
		parseErr  error
	)
	if asFile {
		format, parseErr = export.ParseFormat(r.URL.Query().Get("format"))
		if parseErr == nil {
			view, parseErr = export.ParseView(r.URL.Query().Get("view"))
		}
		if parseErr != nil {
			respondWithError(w, http.StatusBadRequest, parseErr.Error())
			return
		}
	}

	req, err := s.build(lr)
	if err != nil {
		respondWithLocateError(w, err)
		return
	}

	rs, err := s.locator.Locate(r.Context(), req, nil)
	if err != nil {
		respondWithLocateError(w, err)
		return
	}

	if !asFile {
		respondWithJSON(w, http.StatusOK, newLocateResponse(rs))
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, rs, format, view); err != nil {
		respondWithLocateError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.DefaultFilename(view, format)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}
