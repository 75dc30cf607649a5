package bootstrap

import (
	"database/sql"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Arviva-Admin/portfolio-backend/config"
	httpapi "github.com/Arviva-Admin/portfolio-backend/internal/api/http"
	apimiddleware "github.com/Arviva-Admin/portfolio-backend/internal/api/http/middleware"
	assistanthttp "github.com/Arviva-Admin/portfolio-backend/internal/assistant/http"
	"github.com/Arviva-Admin/portfolio-backend/internal/assistant/llm"
	assistantservice "github.com/Arviva-Admin/portfolio-backend/internal/assistant/service"
	"github.com/Arviva-Admin/portfolio-backend/internal/assistant/tools"
	authmiddleware "github.com/Arviva-Admin/portfolio-backend/internal/auth/middleware"
	cataloghttp "github.com/Arviva-Admin/portfolio-backend/internal/catalog/http"
	"github.com/Arviva-Admin/portfolio-backend/internal/catalog/repository"
	catalogservice "github.com/Arviva-Admin/portfolio-backend/internal/catalog/service"
	"github.com/Arviva-Admin/portfolio-backend/internal/deploy"
	"github.com/Arviva-Admin/portfolio-backend/internal/importer"
	"github.com/Arviva-Admin/portfolio-backend/internal/scm"
)

type RouterDeps struct {
	Config     *config.Config
	DB         *sql.DB
	Cache      *redis.Client
	AuthClient *firebaseauth.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler("portfolio-backend", dep.Config.App.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	projectRepo := repository.NewProjectRepository(dep.DB)
	projectService := catalogservice.NewProjectService(projectRepo, dep.Cache)
	bulkImporter := importer.NewImporter(projectService)

	githubClient := scm.NewClient(dep.Config.GitHub)
	vercelClient := deploy.NewClient(dep.Config.Vercel)
	registry := tools.NewRegistry(projectService, githubClient, vercelClient)

	modelClient := llm.NewClient(dep.Config.OpenRouter)
	chatService := assistantservice.NewChatService(modelClient, registry)

	catalogHandler := cataloghttp.New(projectService, bulkImporter, dep.Config.Webhook.APIKey)
	assistantHandler := assistanthttp.New(chatService)

	api := r.Group("/api/v1")
	api.Use(apimiddleware.RequestIDMiddleware())

	catalogHandler.RegisterPublic(api.Group("/projects"))
	assistantHandler.Register(api)

	admin := api.Group("/admin/projects")
	if dep.AuthClient != nil {
		admin.Use(authmiddleware.FirebaseAuthMiddleware(dep.AuthClient))
	}
	catalogHandler.RegisterAdmin(admin)

	webhook := r.Group("/api/webhook")
	webhook.Use(apimiddleware.RequestIDMiddleware())
	catalogHandler.RegisterWebhook(webhook)

	return r
}
