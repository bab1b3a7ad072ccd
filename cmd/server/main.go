package main

import (
	adminhandler "booklt/internal/admins/handler"
	adminrepository "booklt/internal/admins/repository"
	adminservice "booklt/internal/admins/service"
	bookinghandler "booklt/internal/bookings/handler"
	bookingrepository "booklt/internal/bookings/repository"
	bookingservice "booklt/internal/bookings/service"
	bookingvalidator "booklt/internal/bookings/validator"
	exphandler "booklt/internal/experiences/handler"
	exprepository "booklt/internal/experiences/repository"
	expservice "booklt/internal/experiences/service"
	expvalidator "booklt/internal/experiences/validator"
	promohandler "booklt/internal/promos/handler"
	promorepository "booklt/internal/promos/repository"
	promoservice "booklt/internal/promos/service"
	"booklt/internal/promos/sweeper"
	userhandler "booklt/internal/users/handler"
	userrepository "booklt/internal/users/repository"
	userservice "booklt/internal/users/service"
	"booklt/pkg/app"
	"booklt/pkg/config"
	"booklt/pkg/events"
	"booklt/pkg/imagestore"
)

const ServiceName = "booklt-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.ConnectMongo()

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaEventsTopic, ServiceName, cfg.Log)

	userSvc := userservice.NewUserService(userrepository.NewMongoUserRepository(cfg), cfg)
	adminSvc := adminservice.NewAdminService(adminrepository.NewMongoAdminRepository(cfg), cfg)

	expSvc := expservice.NewExperienceService(
		exprepository.NewMongoExperienceRepository(cfg),
		expvalidator.NewExperienceValidator(cfg.Log),
		imagestore.NewHTTPStore(cfg.ImageUploadURL, cfg.ImageUploadPreset, cfg.Log),
		cfg,
	)

	bookingSvc := bookingservice.NewBookingService(
		bookingrepository.NewMongoBookingRepository(cfg),
		bookingrepository.NewMongoBookingLockRepository(cfg),
		bookingvalidator.NewBookingValidator(cfg.Log),
		userSvc,
		expSvc,
		producer,
		cfg,
	)

	promoSvc := promoservice.NewPromoService(promorepository.NewMongoPromoRepository(cfg), producer, cfg)

	promoSweeper, err := sweeper.New(promoSvc, cfg)
	if err != nil {
		cfg.Log.Fatal("Invalid promo sweep schedule", "schedule", cfg.PromoSweepInterval, "error", err)
	}
	promoSweeper.Start()

	cfg.Log.Info("Starting Booklt API", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		userhandler.NewUserHandler(userSvc, cfg.Log),
		adminhandler.NewAdminHandler(adminSvc, cfg.Log),
		exphandler.NewExperienceHandler(expSvc, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
		promohandler.NewPromoHandler(promoSvc, cfg.Log),
	)
	serverApp.OnShutdown(promoSweeper.Stop)
	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close event producer", "error", err)
		}
	})
	serverApp.OnShutdown(func() {
		cfg.Client.CloseMongo(cfg.Log, cfg.ShutdownTimeout)
	})
	serverApp.Run()
}
