package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/JaimeStill/roster/internal/onboarding"
	"github.com/JaimeStill/roster/pkg/handlers"
	"github.com/JaimeStill/roster/pkg/openapi"
	"github.com/JaimeStill/roster/pkg/routes"
	"github.com/JaimeStill/roster/pkg/storage"
)

// artifactHandler serves artifacts written by the local storage backend,
// which has no public endpoint of its own.
type artifactHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newArtifactHandler(store storage.System, logger *slog.Logger) *artifactHandler {
	return &artifactHandler{
		store:  store,
		logger: logger.With("handler", "artifacts"),
	}
}

func (h *artifactHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/artifacts",
		Tags:   []string{"Artifacts"},
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "/{key...}",
				Handler: h.download,
				OpenAPI: &openapi.Operation{
					Summary:    "Download an employee document",
					Parameters: []*openapi.Parameter{openapi.PathParam("key", "Artifact key (the employee codename)")},
					Responses: map[int]*openapi.Response{
						200: {
							Description: "PDF document",
							Content: map[string]*openapi.MediaType{
								onboarding.ContentType: {Schema: &openapi.Schema{Type: "string", Format: "binary"}},
							},
						},
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

func (h *artifactHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", onboarding.ContentType)
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("inline; filename=%q", path.Base(key)+".pdf"),
	)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("artifact stream interrupted", "key", key, "error", err)
	}
}
