package hl7messages

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

type HL7Controller struct {
	Log        *zap.Logger
	HL7Usecase contracts.HL7Usecase
}

func NewHL7Controller(logger *zap.Logger, hl7Usecase contracts.HL7Usecase) *HL7Controller {
	return &HL7Controller{
		Log:        logger,
		HL7Usecase: hl7Usecase,
	}
}

// ConvertFHIRR4 answers with the FHIR resource an ADT message describes, or
// an empty body when it describes none.
func (ctrl *HL7Controller) ConvertFHIRR4(w http.ResponseWriter, r *http.Request) {
	message, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotReadRequestBody(err))
		return
	}

	resource, err := ctrl.HL7Usecase.ConvertFHIRR4(r.Context(), string(message))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	if resource == nil {
		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSONCharsetUTF8)
		w.WriteHeader(constvars.StatusOK)
		return
	}
	utils.BuildFHIRResponse(w, constvars.StatusOK, resource)
}

// ProcessEvent always answers 200 with an ACK.
func (ctrl *HL7Controller) ProcessEvent(w http.ResponseWriter, r *http.Request) {
	message, err := io.ReadAll(r.Body)
	if err != nil {
		ctrl.Log.Error("HL7Controller.ProcessEvent error reading body",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.Error(err),
		)
	}

	ack, _ := ctrl.HL7Usecase.ProcessEvent(r.Context(), string(message))
	utils.BuildHL7Response(w, constvars.StatusOK, ack)
}

func (ctrl *HL7Controller) ConvertV251(w http.ResponseWriter, r *http.Request) {
	message, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotReadRequestBody(err))
		return
	}

	result, err := ctrl.HL7Usecase.ConvertV251(r.Context(), string(message))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildFHIRResponse(w, constvars.StatusOK, result)
}
