// Package api - HTTP handlers for quotes
// Handlers translate requests into calculator input and results into
// responses. They contain NO fee logic.
package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"logiquant/core/types"
	"logiquant/internal/errors"
)

const missingParams = "Required query params: w, d, h, kg"

// handleTotal handles GET /api/v1/total?w=&d=&h=&kg=&m=&r=&debug=
//
// The response is the bare final price so that it can be consumed with
// minimal tokens and cached by a CDN keyed on the query string.
func (s *Server) handleTotal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	debug := q.Get("debug") == "1"

	width, okW := queryNumber(q, "w")
	depth, okD := queryNumber(q, "d")
	height, okH := queryNumber(q, "h")
	weight, okKg := queryNumber(q, "kg")
	if !okW || !okD || !okH || !okKg {
		s.writeTotalError(w, debug, missingParams)
		return
	}

	in := types.QuoteInput{
		WidthCm:  width,
		DepthCm:  depth,
		HeightCm: height,
		WeightKg: weight,
		Mode:     lenientMode(q.Get("m")),
		Region:   lenientRegion(q.Get("r")),
	}

	res := s.calc.Calculate(in)
	if !res.Success {
		reason := res.Reason
		if reason == "" {
			reason = "Calculation failed"
		}
		s.writeTotalError(w, debug, reason)
		return
	}

	w.Header().Set("Cache-Control", s.cacheControl())
	w.Header().Set(HeaderRatesVersion, res.RatesVersion)
	s.writeText(w, strconv.FormatInt(res.FinalPrice, 10), http.StatusOK)
}

func (s *Server) writeTotalError(w http.ResponseWriter, debug bool, reason string) {
	w.Header().Set("Cache-Control", "no-store")
	if debug {
		s.writeJSON(w, ErrorResponse{
			Error:     string(errors.TypeInput),
			Reason:    reason,
			RequestID: w.Header().Get(HeaderRequestID),
		}, http.StatusBadRequest)
		return
	}
	s.writeText(w, string(errors.TypeInput), http.StatusBadRequest)
}

// handleQuote handles POST /api/v1/quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	var req QuoteRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeJSON(w, ErrorResponse{
			Error:     string(errors.TypeParsing),
			Reason:    err.Error(),
			RequestID: w.Header().Get(HeaderRequestID),
		}, http.StatusBadRequest)
		return
	}

	mode, err := types.ParseMode(string(req.Mode))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	region, err := types.ParseRegion(string(req.Region))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	req.Mode = mode
	req.Region = region

	var res types.QuoteResult
	if req.Explain {
		res = s.calc.Explain(req.QuoteInput)
	} else {
		res = s.calc.Calculate(req.QuoteInput)
	}

	w.Header().Set(HeaderRatesVersion, s.calc.RatesVersion())
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	s.writeJSON(w, res, status)
}

// handleRates handles GET /api/v1/rates
func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(HeaderRatesVersion, s.calc.RatesVersion())
	w.Header().Set("ETag", s.ratesETag)
	if r.Header.Get("If-None-Match") == s.ratesETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	s.writeJSON(w, s.calc.Rates(), http.StatusOK)
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	e, ok := err.(*errors.Error)
	if !ok {
		e = errors.Internal("unexpected error", err)
	}
	s.writeJSON(w, types.Failure(e), http.StatusBadRequest)
}

// queryNumber parses a finite number query parameter
func queryNumber(q url.Values, key string) (float64, bool) {
	raw := q.Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// lenientMode maps a short query value to a mode. Missing and unknown
// values fall back to sea freight.
func lenientMode(raw string) types.Mode {
	switch raw {
	case "s", "SEA":
		return types.ModeSea
	case "cj", "AIR_CJ":
		return types.ModeAirCJ
	case "lo", "AIR_LOTTE":
		return types.ModeAirLotte
	}
	return types.ModeSea
}

// lenientRegion maps a query value to a region; unknown values use the default
func lenientRegion(raw string) types.Region {
	switch region := types.Region(raw); region {
	case types.RegionSudo, types.RegionOther, types.RegionJeju:
		return region
	}
	return types.DefaultRegion
}
