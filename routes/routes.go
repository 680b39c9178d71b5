package routes

import (
	"AyurClinic/cache"
	"AyurClinic/config"
	"AyurClinic/controllers"
	"AyurClinic/handlers"
	"AyurClinic/middlewares"
	"AyurClinic/repositories"
	"AyurClinic/services"
	"AyurClinic/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) (http.Handler, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middlewares.CorsMiddleware(middlewares.DefaultCorsConfig()))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	tokenMaker, err := utils.NewTokenMaker(config.GetSymmetricKey(), config.TokenExpiry)
	if err != nil {
		return nil, err
	}

	mailer := utils.NewMailer(
		config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass,
		config.ClinicEmail, config.AppointmentsEmail,
	)

	loc := time.Local

	userRepo := repositories.NewUserRepository(db, cache)
	patientRepo := repositories.NewPatientRepository(cache)
	appointmentRepo := repositories.NewAppointmentRepository(cache, loc)
	consultationRepo := repositories.NewConsultationRepository()
	treatmentRepo := repositories.NewTreatmentRepository(cache)

	userService := services.NewUserService(userRepo, config)
	patientService := services.NewPatientService(patientRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, patientRepo, mailer, config, loc)
	consultationService := services.NewConsultationService(consultationRepo, mailer)
	treatmentService := services.NewTreatmentService(treatmentRepo)

	authHandler := handlers.NewAuthHandler(userService, tokenMaker)
	userHandler := handlers.NewUserHandler(userService)
	patientHandler := handlers.NewPatientHandler(patientService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	consultationHandler := handlers.NewConsultationHandler(consultationService)
	contactHandler := handlers.NewContactHandler(mailer)
	treatmentHandler := handlers.NewTreatmentHandler(treatmentService)

	auth := middlewares.TokenAuthMiddleware(tokenMaker, userService)

	authController := controllers.NewAuthController(authHandler, userHandler, auth)
	authController.RegisterRoutes(router)

	controllers.SetupClinicRoutes(
		router,
		auth,
		patientHandler,
		appointmentHandler,
		consultationHandler,
		contactHandler,
		treatmentHandler,
	)

	controllers.SetupRootRoute(router)

	return router, nil
}
