package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/soporteti/inventario_service/config"
	"github.com/soporteti/inventario_service/infra/queue"
	"github.com/soporteti/inventario_service/internal/api/rest/handlers"
	"github.com/soporteti/inventario_service/internal/api/rest/middleware"
	"github.com/soporteti/inventario_service/internal/domain"
	"github.com/soporteti/inventario_service/internal/helper"
	"github.com/soporteti/inventario_service/internal/repository"
	"github.com/soporteti/inventario_service/internal/services"
	"github.com/soporteti/inventario_service/pkg/cloudinary"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260411

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(&domain.Inventario{}); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	var producer *queue.Producer
	if cfg.KafkaBroker != "" {
		producer = queue.NewProducer(
			cfg.KafkaBroker,
			cfg.KafkaTopic,
			cfg.KafkaUsername,
			cfg.KafkaPassword,
		)
	}

	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	invRepo := repository.NewInventarioRepository(db)

	// ---------- Services ----------
	historialSvc := services.NewHistorialService()
	assetSvc := services.NewAssetService(up)
	catalogoSvc := services.NewCatalogoService(invRepo)
	invSvc := services.NewInventarioService(invRepo, historialSvc, assetSvc, producer)

	// ---------- Handlers ----------
	invHandler := handlers.NewInventarioHandler(invSvc, catalogoSvc, historialSvc, authHelper)
	invHandler.SetupRoutes(app)

	uploadHandler := handlers.NewUploadHandler(assetSvc)
	uploadHandler.SetupRoutes(app.Group("/api", middleware.AuthMiddleware(authHelper)))

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
