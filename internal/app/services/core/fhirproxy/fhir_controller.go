package fhirproxy

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

type FhirController struct {
	Log                   *zap.Logger
	FhirProxyUsecase      contracts.FhirProxyUsecase
	ProcessMessageUsecase contracts.ProcessMessageUsecase
	TransactionUsecase    contracts.TransactionUsecase
	Capabilities          *fhir_dto.CapabilityStatement
}

func NewFhirController(
	logger *zap.Logger,
	fhirProxyUsecase contracts.FhirProxyUsecase,
	processMessageUsecase contracts.ProcessMessageUsecase,
	transactionUsecase contracts.TransactionUsecase,
	capabilities *fhir_dto.CapabilityStatement,
) *FhirController {
	return &FhirController{
		Log:                   logger,
		FhirProxyUsecase:      fhirProxyUsecase,
		ProcessMessageUsecase: processMessageUsecase,
		TransactionUsecase:    transactionUsecase,
		Capabilities:          capabilities,
	}
}

func (ctrl *FhirController) Metadata(w http.ResponseWriter, r *http.Request) {
	utils.BuildFHIRResponse(w, constvars.StatusOK, ctrl.Capabilities)
}

func (ctrl *FhirController) Search(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, constvars.URLParamResourceType)

	response, err := ctrl.FhirProxyUsecase.Search(r.Context(), resourceType, r.URL.Query())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	writeForward(w, response)
}

func (ctrl *FhirController) Read(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, constvars.URLParamResourceType)
	id := chi.URLParam(r, constvars.URLParamID)

	response, err := ctrl.FhirProxyUsecase.Read(r.Context(), resourceType, id)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	writeForward(w, response)
}

func (ctrl *FhirController) Create(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, constvars.URLParamResourceType)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotReadRequestBody(err))
		return
	}

	response, err := ctrl.FhirProxyUsecase.Create(r.Context(), resourceType, body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	writeForward(w, response)
}

func (ctrl *FhirController) Update(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, constvars.URLParamResourceType)
	id := chi.URLParam(r, constvars.URLParamID)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotReadRequestBody(err))
		return
	}

	response, err := ctrl.FhirProxyUsecase.Update(r.Context(), resourceType, id, body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	writeForward(w, response)
}

func (ctrl *FhirController) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	bundle, err := decodeBundle(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	outcome, err := ctrl.ProcessMessageUsecase.ProcessMessage(r.Context(), bundle)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildFHIRResponse(w, constvars.StatusOK, outcome)
}

func (ctrl *FhirController) Transaction(w http.ResponseWriter, r *http.Request) {
	bundle, err := decodeBundle(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response, err := ctrl.TransactionUsecase.ProcessTransaction(r.Context(), bundle)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildFHIRResponse(w, constvars.StatusOK, response)
}

func decodeBundle(r *http.Request) (*fhir_dto.FHIRBundle, error) {
	bundle := new(fhir_dto.FHIRBundle)
	if err := json.NewDecoder(r.Body).Decode(bundle); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if err := utils.ValidateStruct(bundle); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	return bundle, nil
}

func writeForward(w http.ResponseWriter, response *contracts.ForwardResponse) {
	if response.Location != "" {
		w.Header().Set(constvars.HeaderLocation, response.Location)
	}
	contentType := response.ContentType
	if contentType == "" {
		contentType = constvars.MIMEApplicationFHIRJSONCharsetUTF8
	}
	w.Header().Set(constvars.HeaderContentType, contentType)
	w.WriteHeader(response.StatusCode)
	w.Write(response.Body)
}
