package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/core/hl7messages"
)

func attachITKRoutes(router chi.Router, hl7Controller *hl7messages.HL7Controller) {
	router.Post("/$convertFHIRR4", hl7Controller.ConvertFHIRR4)
	router.Post("/$process-event", hl7Controller.ProcessEvent)
}

func attachV251Routes(router chi.Router, hl7Controller *hl7messages.HL7Controller) {
	router.Post("/$convertFHIRR4", hl7Controller.ConvertV251)
}
