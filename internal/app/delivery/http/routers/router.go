package routers

import (
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/config"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/delivery/http/middlewares"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/core/fhirproxy"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/core/hl7messages"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	hl7Controller *hl7messages.HL7Controller,
	fhirController *fhirproxy.FhirController,
) {
	allowedOrigins := []string{"*"}
	if internalConfig.App.CORSAllowedOrigins != "" {
		allowedOrigins = strings.Split(internalConfig.App.CORSAllowedOrigins, ",")
	}

	corsOptions := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", constvars.HeaderXAPIKey, constvars.HeaderXRequestID},
		ExposedHeaders: []string{constvars.HeaderLocation, constvars.HeaderXRequestID},
		MaxAge:         300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RateLimit())

	router.Group(func(r chi.Router) {
		r.Use(middlewares.APIKeyAuth)
		r.Use(middlewares.BodyBuffer)

		r.Route("/V2/ITK", func(r chi.Router) {
			attachITKRoutes(r, hl7Controller)
		})

		r.Route("/HL7/v2.5.1", func(r chi.Router) {
			attachV251Routes(r, hl7Controller)
		})

		r.Route("/FHIR/R4", func(r chi.Router) {
			attachFHIRRoutes(r, fhirController)
		})
	})
}
