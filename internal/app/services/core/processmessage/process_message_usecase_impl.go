package processmessage

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/bundle"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

var focusTypes = map[string]string{
	constvars.EventPrescriptionOrder:          constvars.ResourceMedicationRequest,
	constvars.EventDispenseNotification:       constvars.ResourceMedicationDispense,
	constvars.EventDispenseNotificationUpdate: constvars.ResourceMedicationDispense,
	constvars.EventServiceRequestRequest:      constvars.ResourceServiceRequest,
	constvars.EventPDSChangeOfAddress:         constvars.ResourcePatient,
	constvars.EventPDSBirthNotification:       constvars.ResourcePatient,
	constvars.EventPDSDeathNotification:       constvars.ResourcePatient,
	constvars.EventPDSChangeOfGP:              constvars.ResourcePatient,
	constvars.EventUnsolicitedObservations:    constvars.ResourceDiagnosticReport,
	constvars.EventDocument:                   constvars.ResourceDocumentReference,
}

// FocusType returns the resource type a message event acts upon.
func FocusType(eventCode string) (string, bool) {
	focusType, ok := focusTypes[eventCode]
	return focusType, ok
}

type processMessageUsecase struct {
	Registry  contracts.UpsertRegistry
	Tasks     contracts.UpsertClient[*fhir_dto.Task]
	Documents contracts.UpsertClient[*fhir_dto.DocumentReference]
	Binaries  contracts.BinaryClient
	Log       *zap.Logger
}

func NewProcessMessageUsecase(
	registry contracts.UpsertRegistry,
	tasks contracts.UpsertClient[*fhir_dto.Task],
	documents contracts.UpsertClient[*fhir_dto.DocumentReference],
	binaries contracts.BinaryClient,
	logger *zap.Logger,
) contracts.ProcessMessageUsecase {
	return &processMessageUsecase{
		Registry:  registry,
		Tasks:     tasks,
		Documents: documents,
		Binaries:  binaries,
		Log:       logger,
	}
}

// ProcessMessage upserts the focus resources of a message bundle. Resources
// written before a failing upsert stay written.
func (uc *processMessageUsecase) ProcessMessage(ctx context.Context, b *fhir_dto.FHIRBundle) (*fhir_dto.OperationOutcome, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Debug("processMessageUsecase.ProcessMessage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(b.Entry)),
	)

	outcome := fhir_dto.NewOperationOutcome()

	headers := bundle.FilterResources(b, constvars.ResourceMessageHeader)
	if len(headers) == 0 {
		uc.Log.Info("processMessageUsecase.ProcessMessage bundle has no MessageHeader",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return outcome, nil
	}

	var header fhir_dto.MessageHeader
	if err := json.Unmarshal(headers[0], &header); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	eventCode := header.EventCode()
	focusType, ok := FocusType(eventCode)
	if !ok {
		uc.Log.Info("processMessageUsecase.ProcessMessage event has no focus resource",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventCodeKey, eventCode),
		)
		return outcome, nil
	}

	var err error
	switch focusType {
	case constvars.ResourceMedicationRequest:
		err = uc.processPrescriptions(ctx, b, outcome)
	case constvars.ResourceDocumentReference:
		err = uc.processDocuments(ctx, b, outcome)
	default:
		_, err = uc.processFocus(ctx, b, focusType, outcome)
	}
	if err == nil && focusType == constvars.ResourcePatient {
		if _, err = uc.processFocus(ctx, b, constvars.ResourceRelatedPerson, outcome); err == nil {
			_, err = uc.processFocus(ctx, b, constvars.ResourceObservation, outcome)
		}
	}
	if err != nil {
		uc.Log.Error("processMessageUsecase.ProcessMessage error processing focus resources",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventCodeKey, eventCode),
			zap.String(constvars.LoggingResourceTypeKey, focusType),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("processMessageUsecase.ProcessMessage succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventCodeKey, eventCode),
		zap.Int(constvars.LoggingCountKey, len(outcome.Issue)),
	)
	return outcome, nil
}

func (uc *processMessageUsecase) processFocus(ctx context.Context, b *fhir_dto.FHIRBundle, resourceType string, outcome *fhir_dto.OperationOutcome) ([]fhir_dto.Resource, error) {
	var saved []fhir_dto.Resource
	for _, raw := range bundle.FilterResources(b, resourceType) {
		resource, err := uc.Registry.CreateUpdateRaw(ctx, raw, b)
		if err != nil {
			return saved, err
		}
		addInformation(outcome, resource.GetResourceType(), resource.GetID())
		saved = append(saved, resource)
	}
	return saved, nil
}

func (uc *processMessageUsecase) processPrescriptions(ctx context.Context, b *fhir_dto.FHIRBundle, outcome *fhir_dto.OperationOutcome) error {
	saved, err := uc.processFocus(ctx, b, constvars.ResourceMedicationRequest, outcome)
	if err != nil {
		return err
	}

	var requests []*fhir_dto.MedicationRequest
	for _, resource := range saved {
		if request, ok := resource.(*fhir_dto.MedicationRequest); ok {
			requests = append(requests, request)
		}
	}

	for _, task := range PrescriptionTasks(requests) {
		if len(task.Identifier) == 0 {
			uc.Log.Warn("processMessageUsecase.processPrescriptions prescription has no group identifier, task skipped",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			)
			continue
		}
		if _, err := uc.Tasks.CreateUpdate(ctx, task, b); err != nil {
			return err
		}
	}
	return nil
}

func (uc *processMessageUsecase) processDocuments(ctx context.Context, b *fhir_dto.FHIRBundle, outcome *fhir_dto.OperationOutcome) error {
	for _, raw := range bundle.FilterResources(b, constvars.ResourceDocumentReference) {
		document := &fhir_dto.DocumentReference{}
		if err := json.Unmarshal(raw, document); err != nil {
			return exceptions.ErrCannotParseJSON(err)
		}

		locations, err := uc.Binaries.AttachBinaries(ctx, document, b)
		if err != nil {
			return err
		}
		for _, location := range locations {
			outcome.AddIssue(information(location))
		}

		saved, err := uc.Documents.CreateUpdate(ctx, document, b)
		if err != nil {
			return err
		}
		addInformation(outcome, constvars.ResourceDocumentReference, saved.ID)
	}
	return nil
}

// PrescriptionTasks builds one order Task per prescription, grouping the
// medication requests by their group identifier. A request without a group
// identifier yields a Task without identifiers.
func PrescriptionTasks(requests []*fhir_dto.MedicationRequest) []*fhir_dto.Task {
	var tasks []*fhir_dto.Task
	byGroup := make(map[string]*fhir_dto.Task)

	for _, request := range requests {
		key := ""
		if request.GroupIdentifier.HasValue() {
			key = request.GroupIdentifier.Token()
		}
		task, ok := byGroup[key]
		if !ok || key == "" {
			task = newPrescriptionTask(request)
			tasks = append(tasks, task)
			if key != "" {
				byGroup[key] = task
			}
		}
		task.Input = append(task.Input, fhir_dto.TaskParameter{
			Type:           fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Code: constvars.ResourceMedicationRequest}}},
			ValueReference: &fhir_dto.Reference{Reference: constvars.ResourceMedicationRequest + "/" + request.ID},
		})
	}
	return tasks
}

func newPrescriptionTask(request *fhir_dto.MedicationRequest) *fhir_dto.Task {
	task := fhir_dto.NewTask()
	task.Code = fhir_dto.NewCodeableConcept(constvars.SystemSNOMEDCT, constvars.SnomedPrescription, constvars.SnomedPrescriptionDisplay)
	task.Status = constvars.FhirTaskStatusRequested
	task.Intent = constvars.FhirTaskIntentOrder
	task.AuthoredOn = request.AuthoredOn
	if request.Subject != nil {
		subject := *request.Subject
		task.For = &subject
	}

	group := request.GroupIdentifier
	if !group.HasValue() {
		return task
	}
	task.AddIdentifier(fhir_dto.Identifier{System: group.System, Value: group.Value})
	task.GroupIdentifier = &fhir_dto.Identifier{System: group.System, Value: group.Value}
	for _, extension := range group.Extension {
		if extension.Url == constvars.ExtensionPrescriptionID && extension.ValueIdentifier.HasValue() {
			task.AddIdentifier(fhir_dto.Identifier{
				System: extension.ValueIdentifier.System,
				Value:  extension.ValueIdentifier.Value,
			})
		}
	}
	return task
}

func addInformation(outcome *fhir_dto.OperationOutcome, resourceType, id string) {
	location := id
	if !strings.Contains(id, "/") {
		location = resourceType + "/" + id
	}
	outcome.AddIssue(information(location))
}

func information(location string) fhir_dto.OperationOutcomeIssue {
	return fhir_dto.OperationOutcomeIssue{
		Severity: constvars.FhirIssueSeverityInformation,
		Code:     constvars.FhirIssueCodeInformational,
		Location: []string{location},
	}
}
