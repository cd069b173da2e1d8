package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/core/fhirproxy"
)

// attachFHIRRoutes registers the static paths before the {resourceType}
// wildcard so metadata and $process-message are never proxied.
func attachFHIRRoutes(router chi.Router, fhirController *fhirproxy.FhirController) {
	router.Get("/metadata", fhirController.Metadata)
	router.Post("/", fhirController.Transaction)
	router.Post("/$process-message", fhirController.ProcessMessage)

	router.Get("/{resourceType}", fhirController.Search)
	router.Post("/{resourceType}", fhirController.Create)
	router.Get("/{resourceType}/{id}", fhirController.Read)
	router.Put("/{resourceType}/{id}", fhirController.Update)
}
