package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"wayfarer/cmd/fx/collaborators_fx"
	"wayfarer/cmd/fx/controllers_fx"
	"wayfarer/cmd/fx/db_fx"
	"wayfarer/cmd/fx/memcache_fx"
	"wayfarer/cmd/fx/planner_fx"
	"wayfarer/internal/api/controllers"
	"wayfarer/internal/services"
	"wayfarer/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		collaborators_fx.Module,
		planner_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(SeedCatalog),
		fx.Invoke(StartServer),
	)

	app.Run()
}

// SeedCatalog fills an empty database catalog with the built-in seed data in
// the background. The server does not wait for it.
func SeedCatalog(lc fx.Lifecycle, sync services.CatalogSyncInterface) {
	if sync == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := sync.Sync(context.Background()); err != nil {
					log.Printf("catalog seeding failed: %v", err)
				}
			}()
			return nil
		},
	})
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(planController *controllers.PlanController) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, planController)

	return r
}

func RegisterRoutes(r *gin.Engine, planController *controllers.PlanController) {
	// Planning is open by default; set AUTH_REQUIRED=true to demand a
	// bearer token issued with the shared JWT secret.
	if os.Getenv("AUTH_REQUIRED") == "true" {
		r.POST("/plan", middleware.JWTAuthMiddleware(), planController.PlanHandler)
	} else {
		r.POST("/plan", planController.PlanHandler)
	}
	r.GET("/health", planController.HealthHandler)

	api := r.Group("/api")
	api.GET("/status", planController.StatusHandler)
}
