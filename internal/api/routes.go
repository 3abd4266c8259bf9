package api

import (
	"net/http"

	"github.com/JaimeStill/roster/internal/config"
	"github.com/JaimeStill/roster/internal/employees"
	"github.com/JaimeStill/roster/internal/onboarding"
	"github.com/JaimeStill/roster/pkg/openapi"
	"github.com/JaimeStill/roster/pkg/routes"
	"github.com/JaimeStill/roster/pkg/storage"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := []routes.Group{
		domain.Employees.Handler(runtime.MaxBodySize).Routes(),
		domain.Onboarding.Handler(runtime.MaxBodySize).Routes(),
	}

	if cfg.Storage.Backend == storage.BackendLocal {
		groups = append(groups, newArtifactHandler(runtime.Storage, runtime.Logger).routes())
	}

	routes.Register(mux, groups...)

	spec, err := buildSpec(cfg, groups)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}

func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(employees.Schemas())
	spec.Components.AddSchemas(onboarding.Schemas())

	routes.Describe(spec, "", groups...)

	return openapi.MarshalJSON(spec)
}
