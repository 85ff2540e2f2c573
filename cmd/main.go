package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/carebridge/caregiver-service/internal/app"
	"github.com/carebridge/caregiver-service/internal/config"
	"github.com/carebridge/caregiver-service/internal/controllers"
	"github.com/carebridge/caregiver-service/internal/middleware"
	"github.com/carebridge/caregiver-service/internal/repositories"
	"github.com/carebridge/caregiver-service/internal/routes"
	"github.com/carebridge/caregiver-service/internal/services"
	"github.com/carebridge/caregiver-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize caregiver-service:", err)
	}
	defer application.Close()

	caregiverRepo := repositories.NewCaregiverRepository(application.DB)

	deliverySvc := services.NewCodeDeliveryService(cfg)
	credentialSvc := services.NewCredentialService(cfg)
	caregiverSvc := services.NewCaregiverService(
		caregiverRepo,
		application.PairingCache,
		deliverySvc,
		credentialSvc,
		cfg,
	)
	cleanupSvc := services.NewInviteCleanupService(caregiverRepo)

	caregiverController := controllers.NewCaregiverController(caregiverSvc)
	healthController := controllers.NewHealthController(application)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.CaregiverInvite, caregiverController.InviteCaregiver).Methods(http.MethodPost)
	secured.HandleFunc(routes.CaregiverVerify, caregiverController.VerifyCaregiver).Methods(http.MethodPost)
	secured.HandleFunc(routes.CaregiverUpdate, caregiverController.UpdateCaregiverPermission).Methods(http.MethodPatch, http.MethodPut)
	secured.HandleFunc(routes.CaregiverDelete, caregiverController.SoftDeleteCaregiver).Methods(http.MethodDelete)

	c := cron.New()
	_, sweepErr := c.AddFunc("15 0 * * *", func() {
		if e := cleanupSvc.SweepStalePending(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled stale-invite sweep failed")
		}
	})
	if sweepErr != nil {
		utils.Logger.WithError(sweepErr).Fatal("Failed to schedule stale-invite sweep cron")
	}
	c.Start()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("caregiver-service failed to start:", err)
	}
}
