// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/dalemusser/userhub/internal/app/features/health"
	usersfeature "github.com/dalemusser/userhub/internal/app/features/users"
	userstore "github.com/dalemusser/userhub/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// UserHub mounts the health endpoint for load balancers and the user
// CRUD API under /api/users.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// User CRUD and order endpoints
	store := userstore.New(deps.MongoDatabase, appCfg.BcryptCost)
	usersService := usersfeature.NewService(store, deps.Events, logger)
	usersHandler := usersfeature.NewHandler(usersService, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler))

	return r, nil
}
