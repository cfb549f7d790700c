package router

import (
	"context"

	imgsvc "gearshare-backend/internal/application/images"
	listsvc "gearshare-backend/internal/application/listings"
	"gearshare-backend/internal/config"
	"gearshare-backend/internal/infrastructure/blob"
	"gearshare-backend/internal/infrastructure/cache"
	"gearshare-backend/internal/infrastructure/database"
	"gearshare-backend/internal/infrastructure/search"
	healthhandler "gearshare-backend/internal/interfaces/handlers/health"
	imghandler "gearshare-backend/internal/interfaces/handlers/images"
	listhandler "gearshare-backend/internal/interfaces/handlers/listings"
	"gearshare-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app: collaborator clients, services, middleware
// and route registration.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		var err error
		rdb, err = cache.Open(context.Background(), cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	var index *search.Client
	if cfg.MeiliHost != "" {
		index = search.NewClient(cfg.MeiliHost, cfg.MeiliAPIKey)
		if err := index.InitIndex(); err != nil {
			return nil, nil, nil, err
		}
	}

	var blobStore *blob.MinioStorage
	if cfg.MinioEndpoint != "" {
		var err error
		blobStore, err = blob.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	healthHandlers := &healthhandler.Handlers{Rdb: rdb}
	if db != nil {
		healthHandlers.DB = &gormDBPinger{db: db}
	}
	if index != nil {
		healthHandlers.Search = index
	}
	app.Get("/health/json", healthHandlers.JSON)

	if db != nil && index != nil {
		listingsService := &listsvc.Service{DB: db, Index: index, Rdb: rdb}
		listingsHandlers := &listhandler.Handlers{Service: listingsService}
		app.Post("/listing/create/user_id=:user_id", listingsHandlers.CreateListing)
		app.Delete("/listing/delete/listing_id=:listing_id", listingsHandlers.DeleteListing)
		app.Get("/listing/get/listing_id=:listing_id", listingsHandlers.GetListing)
		app.Get("/listing/search", listingsHandlers.SearchListings)
	} else {
		log.Warn().Msg("Listing routes disabled: DATABASE_URL and MEILI_HOST are both required")
	}

	if db != nil && blobStore != nil {
		imagesService := &imgsvc.Service{DB: db, Blob: blobStore}
		imagesHandlers := &imghandler.Handlers{Service: imagesService}
		app.Post("/listing/new_listing_image/listing_id=:listing_id", imagesHandlers.NewListingImage)
		app.Delete("/listing/delete_listing_image/path=*", imagesHandlers.DeleteListingImage)
	} else {
		log.Warn().Msg("Image routes disabled: DATABASE_URL and MINIO_ENDPOINT are both required")
	}

	return app, db, rdb, nil
}
