package main

import (
	"context"
	"log"

	"github.com/pageza/feastly/backend/config"
	"github.com/pageza/feastly/backend/internal/api"
	"github.com/pageza/feastly/backend/internal/database"
	"github.com/pageza/feastly/backend/internal/router"
	"github.com/pageza/feastly/backend/internal/server"
	"github.com/pageza/feastly/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional: short links fall back to database lookups
	// when the cache is unavailable.
	cache, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, short-link caching disabled: %v", err)
		cache = nil
	}

	// S3 is optional in the same way: image payloads are stored
	// verbatim when no bucket is configured.
	var images *service.ImageService
	if s3cfg, err := config.NewS3Config(context.Background()); err != nil {
		log.Printf("S3 unavailable, image uploads disabled: %v", err)
	} else {
		images = service.NewImageService(s3cfg)
	}

	auth := service.NewAuthService(db, cfg.JWTSecret)
	recipes := service.NewRecipeService(db)
	memberships := service.NewMembershipService(db)
	shoppingList := service.NewShoppingListService(db)
	follows := service.NewFollowService(db)
	shortLinks := service.NewShortLinkService(db, cache)
	views := service.NewViewService(db)

	userHandler := api.NewUserHandler(auth, follows, views, images)
	recipeHandler := api.NewRecipeHandler(recipes, memberships, shoppingList, shortLinks, views, images, auth, cfg.PublicHost)
	tagHandler := api.NewTagHandler(service.NewCatalogService(db))
	ingredientHandler := api.NewIngredientHandler(service.NewCatalogService(db))
	shortLinkHandler := api.NewShortLinkHandler(shortLinks)

	engine := router.SetupRouter(db, userHandler, recipeHandler, tagHandler, ingredientHandler, shortLinkHandler)

	srv := server.NewServer(engine)
	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
