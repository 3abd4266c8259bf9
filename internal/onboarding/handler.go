package onboarding

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/roster/internal/employees"
	"github.com/JaimeStill/roster/pkg/formatting"
	"github.com/JaimeStill/roster/pkg/handlers"
	"github.com/JaimeStill/roster/pkg/routes"
)

// CreatedMessage is returned when the artifact was published.
const CreatedMessage = "PDF generated successfuly!"

// CreatedResponse is the body of a successful registration.
type CreatedResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// DuplicateResponse is the body returned when the codename is already registered.
type DuplicateResponse struct {
	Message               string              `json:"message"`
	EmployeeAlreadyExists *employees.Employee `json:"employeeAlreadyExists"`
}

// DegradedResponse is the body returned when the record was committed but
// the artifact could not be stored.
type DegradedResponse struct {
	Message  string `json:"message"`
	Codename string `json:"codename"`
}

// DuplicateMessage formats the duplicate rejection for e.
func DuplicateMessage(e *employees.Employee) string {
	return fmt.Sprintf(
		"Employee (%s) already exists! Last updated at: %s",
		e.Codename,
		formatting.FormatDate(e.UpdatedAt),
	)
}

// Handler provides HTTP endpoints for the onboarding pipeline.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
}

// NewHandler creates a Handler with the given system, logger, and body size limit.
func NewHandler(sys System, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "onboarding"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for pipeline endpoints.
// POST /createEmployee is kept as an alias of POST /employees.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Tags:   []string{"Onboarding"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/employees", Handler: h.Register, OpenAPI: registerOp},
			{Method: "POST", Pattern: "/createEmployee", Handler: h.Register, OpenAPI: registerAliasOp},
			{Method: "POST", Pattern: "/employees/{codename}/document", Handler: h.Regenerate, OpenAPI: regenerateOp},
		},
	}
}

// Register runs the registration pipeline for a JSON RawRegistration body.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	raw, err := handlers.DecodeJSON[employees.RawRegistration](w, r, h.maxBodySize)
	if err != nil {
		if errors.Is(err, handlers.ErrBodyTooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", employees.ErrInvalidBody, err))
		return
	}

	result, err := h.sys.Register(r.Context(), raw)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.respond(w, result)
}

// Regenerate re-publishes the document of the employee named in the path.
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.Regenerate(r.Context(), r.PathValue("codename"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.respond(w, result)
}

func (h *Handler) respond(w http.ResponseWriter, result *Result) {
	switch result.Outcome {
	case OutcomeDuplicate:
		handlers.RespondJSON(w, http.StatusBadRequest, DuplicateResponse{
			Message:               DuplicateMessage(result.Employee),
			EmployeeAlreadyExists: result.Employee,
		})
	case OutcomeDegraded:
		handlers.RespondJSON(w, MapHTTPStatus(result.Err), DegradedResponse{
			Message:  result.Err.Error(),
			Codename: result.Employee.Codename,
		})
	default:
		handlers.RespondJSON(w, http.StatusOK, CreatedResponse{
			Message: CreatedMessage,
			URL:     result.Artifact.URL,
		})
	}
}
