package api

// Syntax of the submitted recipes
type Syntax string

const (
	SyntaxText Syntax = "text"
	SyntaxHCL  Syntax = "hcl"
)

// PlanRequest is the input to POST /plan
type PlanRequest struct {
	// Recipes is the recipe book, goal included
	Recipes string `json:"recipes" validate:"required"`

	// Syntax is text (default) or hcl
	Syntax Syntax `json:"syntax,omitempty" validate:"omitempty,oneof=text hcl"`

	// Format is the response format (default json)
	Format string `json:"format,omitempty" validate:"omitempty,oneof=cli json markdown msgpack dot"`

	// ShowGoal adds the goal to human-readable formats
	ShowGoal bool `json:"show_goal,omitempty"`

	// EdgeLabel is total (default) or per-craft, for dot
	EdgeLabel string `json:"edge_label,omitempty" validate:"omitempty,oneof=total per-craft"`

	// Unpruned draws unused recipes too, for dot
	Unpruned bool `json:"unpruned,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	RequestID string      `json:"request_id"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// VersionResponse is the body of GET /version
type VersionResponse struct {
	Version    string   `json:"version"`
	Engine     string   `json:"engine"`
	APIVersion string   `json:"api_version"`
	Formats    []string `json:"formats"`
}
