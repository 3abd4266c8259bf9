// Package onboarding runs the registration pipeline: normalize the submitted
// data, write the registry record once, render the employee document, convert
// it to PDF and publish the artifact.
package onboarding

import (
	"context"

	"github.com/JaimeStill/roster/internal/employees"
)

// Outcome is the terminal state of a pipeline run.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeDegraded  Outcome = "degraded"
)

// ContentType of every published artifact.
const ContentType = "application/pdf"

// Artifact references a published document.
type Artifact struct {
	Codename string `json:"codename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	Pages    int    `json:"pages"`
}

// Result reports how a pipeline run ended.
//
// For OutcomeDuplicate, Employee is the record already in the registry.
// For OutcomeDegraded, Employee is the committed record and Err holds the
// publishing failure. Artifact is set only for OutcomeCreated.
type Result struct {
	Outcome  Outcome
	Employee *employees.Employee
	Artifact *Artifact
	Err      error
}

// System defines the public contract for the onboarding pipeline.
type System interface {
	Handler(maxBodySize int64) *Handler

	// Register normalizes raw and, when its codename is new, records it and
	// publishes the employee document.
	Register(ctx context.Context, raw employees.RawRegistration) (*Result, error)

	// Regenerate re-publishes the document of an existing record without
	// touching the registry.
	Regenerate(ctx context.Context, codename string) (*Result, error)
}
