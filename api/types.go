package api

import (
	"logiquant/core/types"
)

// QuoteRequest is the body of POST /api/v1/quote
type QuoteRequest struct {
	types.QuoteInput

	// Explain adds human-readable formulas to the calculation trace
	Explain bool `json:"explain,omitempty"`
}

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error     string `json:"error"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	RatesVersion string `json:"ratesVersion"`
	Time         string `json:"time"`
}

// VersionResponse is the body of GET /version
type VersionResponse struct {
	Version      string `json:"version"`
	Engine       string `json:"engine"`
	APIVersion   string `json:"apiVersion"`
	RatesVersion string `json:"ratesVersion"`
	RatesHash    string `json:"ratesHash"`
}
