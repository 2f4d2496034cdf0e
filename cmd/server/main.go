package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/imsosorrybutiloveyou/Girok/internal/config"
	"github.com/imsosorrybutiloveyou/Girok/internal/database"
	"github.com/imsosorrybutiloveyou/Girok/internal/handlers"
	"github.com/imsosorrybutiloveyou/Girok/internal/middleware"
	"github.com/imsosorrybutiloveyou/Girok/internal/routes"
	"github.com/imsosorrybutiloveyou/Girok/internal/services"
	"github.com/imsosorrybutiloveyou/Girok/internal/storage/mongostore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	store := mongostore.New(database.DB)

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.EnsureIndexes(startupCtx); err != nil {
		log.Fatal("Failed to ensure MongoDB indexes:", err)
	}

	images, err := services.NewImageService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Printf("Warning: Cloudinary unavailable, storing images inline: %v", err)
		images, _ = services.NewImageService("", "", "")
	}

	sessions := services.NewSessions(database.RedisClient)
	events := services.NewEventPublisher(database.RedisClient)

	identity := services.NewIdentityService(store)
	feed := services.NewFeedService(store, events)
	engagement := services.NewEngagementService(store, events)
	questions := services.NewQuestionService(store)
	admin := services.NewAdminService(store)
	recommend := services.NewRecommendService(store)

	if err := questions.SeedDefaultQuestion(startupCtx); err != nil {
		log.Printf("Warning: failed to seed default question: %v", err)
	}

	services.StartFeedSubscriber(context.Background(), database.RedisClient)

	auth := middleware.NewAuth(sessions, identity)

	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RequestLogger(logger))
	if cfg.IsProduction() {
		r.Use(middleware.RateLimit)
	}
	r.Use(auth.WithUser)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.Setup(r, routes.Handlers{
		Auth:       handlers.NewAuthHandler(identity, sessions),
		Profile:    handlers.NewProfileHandler(identity, images),
		Diary:      handlers.NewDiaryHandler(feed, images),
		Engagement: handlers.NewEngagementHandler(engagement),
		Question:   handlers.NewQuestionHandler(questions),
		Recommend:  handlers.NewRecommendHandler(recommend, images),
		Notice:     handlers.NewNoticeHandler(admin),
		Admin:      handlers.NewAdminHandler(admin),
	})

	log.Printf("Girok backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
