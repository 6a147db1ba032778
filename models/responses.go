package models

// ErrorResponse is the single JSON shape every failed request receives.
type ErrorResponse struct {
	// Status mirrors the HTTP status line.
	Status int `json:"status"`

	// Kind is the machine-readable failure class, e.g. "unauthenticated".
	Kind string `json:"kind"`

	// Message is a client-safe description of the failure.
	Message string `json:"message"`
}

// HealthResponse reports readiness of the gateway and its collaborators.
type HealthResponse struct {
	Status string `json:"status"`

	// Checks maps a collaborator name ("identity", "cache") to its status.
	Checks map[string]string `json:"checks"`
}

// HealthStatusOK is reported for the gateway and for every reachable
// collaborator.
const HealthStatusOK = "ok"
