package bootstrap

import (
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/crimson-site/crimson-backend/internal/api/http"
	"github.com/crimson-site/crimson-backend/internal/api/http/middleware"
	"github.com/crimson-site/crimson-backend/internal/auth"
	projecthttp "github.com/crimson-site/crimson-backend/internal/projects/http"
	"github.com/crimson-site/crimson-backend/internal/projects/repository"
	"github.com/crimson-site/crimson-backend/internal/projects/service"
	"github.com/crimson-site/crimson-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	Redis       *redis.Client
	AuthClient  *fbauth.Client // nil disables token verification (guest mode)
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	// The generated sites are previewed from arbitrary frontends.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-User-Id", "X-Request-Id")
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	auth.RegisterGuestRoutes(api.Group("/auth"))

	userRepo := users.NewRepo(dep.DB)
	projectRepo := repository.NewProjectRepository(dep.DB)
	docCache := repository.NewDocumentCache(dep.Redis)

	projectService := service.NewProjectService(projectRepo, docCache)
	chatService := service.NewChatService(projectRepo, docCache)

	authed := api.Group("")
	authed.Use(auth.WithUser(dep.AuthClient, userRepo))

	handler := projecthttp.NewHandler(projectService, chatService)
	handler.Register(
		authed.Group("/projects"),
		middleware.PerUserRateLimit(rate.Every(2*time.Second), 5),
	)

	return r
}
