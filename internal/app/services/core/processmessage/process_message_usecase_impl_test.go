package processmessage_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/core/processmessage"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/binaries"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/fhirclients"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/fhirtest"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/shared/storage"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

const (
	prescriptionSystem   = "https://fhir.nhs.uk/Id/prescription-order-number"
	prescriptionIDSystem = "https://fhir.nhs.uk/Id/prescription"
	prescriptionNumber   = "A0548B-A99968-451485"
	prescriptionID       = "a5b9dc81-ccf4-4dab-b887-3d88e557febb"
)

func setup(t *testing.T) (*fhirtest.Server, contracts.ProcessMessageUsecase) {
	t.Helper()
	server := fhirtest.NewServer()
	t.Cleanup(server.Close)

	engine := server.Engine(nil)
	clients := fhirclients.New(engine, zap.NewNop())
	usecase := processmessage.NewProcessMessageUsecase(
		clients.Registry,
		clients.Tasks,
		clients.DocumentReferences,
		binaries.NewBinaryFhirClient(engine, storage.NewNoopStorage(), "tie-binary", zap.NewNop()),
		zap.NewNop(),
	)
	return server, usecase
}

func messageBundle(t *testing.T, eventCode string, resources map[string]interface{}) *fhir_dto.FHIRBundle {
	t.Helper()
	b := fhir_dto.NewBundle(constvars.FhirBundleTypeMessage)
	header := &fhir_dto.MessageHeader{
		ResourceType: constvars.ResourceMessageHeader,
		EventCoding:  &fhir_dto.Coding{System: "https://fhir.nhs.uk/CodeSystem/message-event", Code: eventCode},
	}
	require.NoError(t, b.AddEntry("urn:uuid:header", header, nil))
	for fullUrl, resource := range resources {
		require.NoError(t, b.AddEntry(fullUrl, resource, nil))
	}
	return b
}

func medicationRequest(line string) *fhir_dto.MedicationRequest {
	request := &fhir_dto.MedicationRequest{DomainResource: fhir_dto.DomainResource{ResourceType: constvars.ResourceMedicationRequest}}
	request.AddIdentifier(fhir_dto.Identifier{System: "https://fhir.nhs.uk/Id/prescription-order-item-number", Value: line})
	request.Status = "active"
	request.Intent = "order"
	request.Subject = &fhir_dto.Reference{Reference: "Patient/patient-42"}
	request.AuthoredOn = "2024-03-01T09:30:00+00:00"
	request.GroupIdentifier = &fhir_dto.Identifier{
		System: prescriptionSystem,
		Value:  prescriptionNumber,
		Extension: []fhir_dto.Extension{{
			Url:             constvars.ExtensionPrescriptionID,
			ValueIdentifier: &fhir_dto.Identifier{System: prescriptionIDSystem, Value: prescriptionID},
		}},
	}
	return request
}

func TestProcessMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("prescription order writes the request and one order task", func(t *testing.T) {
		server, usecase := setup(t)
		b := messageBundle(t, constvars.EventPrescriptionOrder, map[string]interface{}{
			"urn:uuid:mr1": medicationRequest("line-1"),
		})

		outcome, err := usecase.ProcessMessage(ctx, b)
		require.NoError(t, err)

		assert.Equal(t, 1, server.CountCalls(http.MethodPost, constvars.ResourceMedicationRequest))
		require.Len(t, outcome.Issue, 1)
		assert.Equal(t, constvars.FhirIssueSeverityInformation, outcome.Issue[0].Severity)
		assert.Equal(t, constvars.FhirIssueCodeInformational, outcome.Issue[0].Code)
		require.Len(t, outcome.Issue[0].Location, 1)
		assert.True(t, strings.HasPrefix(outcome.Issue[0].Location[0], "MedicationRequest/"))

		var tasks []fhir_dto.Task
		require.NoError(t, server.Decode(constvars.ResourceTask, &tasks))
		require.Len(t, tasks, 1)
		task := tasks[0]
		assert.Equal(t, constvars.FhirTaskStatusRequested, task.Status)
		assert.Equal(t, constvars.FhirTaskIntentOrder, task.Intent)
		require.NotNil(t, task.For)
		assert.Equal(t, "Patient/patient-42", task.For.Reference)
		assert.Equal(t, constvars.SnomedPrescription, task.Code.Coding[0].Code)
		assert.Equal(t, "2024-03-01T09:30:00+00:00", task.AuthoredOn)
		assert.Equal(t, &fhir_dto.Identifier{System: prescriptionSystem, Value: prescriptionNumber}, task.GroupIdentifier)
		assert.Equal(t, []fhir_dto.Identifier{
			{System: prescriptionSystem, Value: prescriptionNumber},
			{System: prescriptionIDSystem, Value: prescriptionID},
		}, task.Identifier)
		require.Len(t, task.Input, 1)
		assert.Equal(t, outcome.Issue[0].Location[0], task.Input[0].ValueReference.Reference)
	})

	t.Run("redelivered prescription updates instead of duplicating", func(t *testing.T) {
		server, usecase := setup(t)
		for i := 0; i < 2; i++ {
			b := messageBundle(t, constvars.EventPrescriptionOrder, map[string]interface{}{
				"urn:uuid:mr1": medicationRequest("line-1"),
			})
			_, err := usecase.ProcessMessage(ctx, b)
			require.NoError(t, err)
		}
		assert.Len(t, server.Resources(constvars.ResourceMedicationRequest), 1)
		assert.Len(t, server.Resources(constvars.ResourceTask), 1)
	})

	t.Run("prescription lines share one task", func(t *testing.T) {
		server, usecase := setup(t)
		b := messageBundle(t, constvars.EventPrescriptionOrder, map[string]interface{}{
			"urn:uuid:mr1": medicationRequest("line-1"),
			"urn:uuid:mr2": medicationRequest("line-2"),
		})

		outcome, err := usecase.ProcessMessage(ctx, b)
		require.NoError(t, err)
		assert.Len(t, outcome.Issue, 2)

		var tasks []fhir_dto.Task
		require.NoError(t, server.Decode(constvars.ResourceTask, &tasks))
		require.Len(t, tasks, 1)
		assert.Len(t, tasks[0].Input, 2)
	})

	t.Run("dispense notification writes dispenses only", func(t *testing.T) {
		server, usecase := setup(t)
		dispense := &fhir_dto.MedicationDispense{DomainResource: fhir_dto.DomainResource{ResourceType: constvars.ResourceMedicationDispense}}
		dispense.AddIdentifier(fhir_dto.Identifier{System: "https://fhir.nhs.uk/Id/dispense-item-number", Value: "D-1"})
		dispense.Status = "completed"
		b := messageBundle(t, constvars.EventDispenseNotificationUpdate, map[string]interface{}{
			"urn:uuid:md1": dispense,
			"urn:uuid:mr1": medicationRequest("line-1"),
		})

		outcome, err := usecase.ProcessMessage(ctx, b)
		require.NoError(t, err)
		assert.Len(t, outcome.Issue, 1)
		assert.Equal(t, 1, server.CountCalls(http.MethodPost, constvars.ResourceMedicationDispense))
		assert.Zero(t, server.CountCalls(http.MethodPost, constvars.ResourceMedicationRequest))
		assert.Empty(t, server.Resources(constvars.ResourceTask))
	})

	t.Run("patient feed also writes related persons and observations", func(t *testing.T) {
		server, usecase := setup(t)
		practice := fhir_dto.NewOrganization()
		practice.AddIdentifier(fhir_dto.Identifier{System: constvars.SystemODSCode, Value: "Y12345"})
		server.Seed(practice)

		patient := fhir_dto.NewPatient()
		patient.AddIdentifier(fhir_dto.Identifier{System: constvars.SystemNHSNumber, Value: "9449310475"})
		patient.GeneralPractitioner = []fhir_dto.Reference{*fhir_dto.IdentifierRef(constvars.SystemODSCode, "Y12345")}

		person := &fhir_dto.RelatedPerson{DomainResource: fhir_dto.DomainResource{ResourceType: constvars.ResourceRelatedPerson}}
		person.AddIdentifier(fhir_dto.Identifier{System: "https://fhir.nhs.uk/Id/related-person", Value: "RP-1"})
		person.Patient = fhir_dto.Reference{Reference: "urn:uuid:patient"}

		observation := fhir_dto.NewObservation()
		observation.AddIdentifier(fhir_dto.Identifier{System: "https://fhir.nhs.uk/Id/observation", Value: "OBS-1"})
		observation.Status = "final"

		b := messageBundle(t, constvars.EventPDSBirthNotification, map[string]interface{}{
			"urn:uuid:patient": patient,
			"urn:uuid:person":  person,
			"urn:uuid:obs":     observation,
		})

		outcome, err := usecase.ProcessMessage(ctx, b)
		require.NoError(t, err)
		assert.Len(t, outcome.Issue, 3)
		assert.Equal(t, []string{constvars.ResourceObservation, constvars.ResourceOrganization, constvars.ResourcePatient, constvars.ResourceRelatedPerson}, server.Types())

		var people []fhir_dto.RelatedPerson
		require.NoError(t, server.Decode(constvars.ResourceRelatedPerson, &people))
		require.Len(t, people, 1)
		assert.True(t, strings.HasPrefix(people[0].Patient.Reference, "Patient/"))
	})

	t.Run("document message stores the attached binary", func(t *testing.T) {
		server, usecase := setup(t)
		document := &fhir_dto.DocumentReference{DomainResource: fhir_dto.DomainResource{ResourceType: constvars.ResourceDocumentReference}}
		document.AddIdentifier(fhir_dto.Identifier{System: "https://fhir.nhs.uk/Id/document", Value: "DOC-1"})
		document.Status = "current"
		document.Content = []fhir_dto.DocumentReferenceContent{{Attachment: fhir_dto.Attachment{ContentType: "text/plain", Url: "urn:uuid:binary"}}}
		binary := &fhir_dto.Binary{ResourceType: constvars.ResourceBinary, ContentType: "text/plain", Data: "aGVsbG8="}

		b := messageBundle(t, constvars.EventDocument, map[string]interface{}{
			"urn:uuid:doc":    document,
			"urn:uuid:binary": binary,
		})

		outcome, err := usecase.ProcessMessage(ctx, b)
		require.NoError(t, err)
		require.Len(t, outcome.Issue, 2)
		assert.True(t, strings.HasPrefix(outcome.Issue[0].Location[0], "Binary/"))

		var documents []fhir_dto.DocumentReference
		require.NoError(t, server.Decode(constvars.ResourceDocumentReference, &documents))
		require.Len(t, documents, 1)
		assert.Equal(t, server.URL+"/"+outcome.Issue[0].Location[0], documents[0].Content[0].Attachment.Url)
	})

	t.Run("unknown event code writes nothing", func(t *testing.T) {
		server, usecase := setup(t)
		b := messageBundle(t, "admin-notification", map[string]interface{}{
			"urn:uuid:mr1": medicationRequest("line-1"),
		})

		outcome, err := usecase.ProcessMessage(ctx, b)
		require.NoError(t, err)
		assert.Empty(t, outcome.Issue)
		assert.Empty(t, server.Calls())
	})

	t.Run("bundle without a message header is not an error", func(t *testing.T) {
		server, usecase := setup(t)
		b := fhir_dto.NewBundle(constvars.FhirBundleTypeMessage)
		require.NoError(t, b.AddEntry("urn:uuid:mr1", medicationRequest("line-1"), nil))

		outcome, err := usecase.ProcessMessage(ctx, b)
		require.NoError(t, err)
		assert.Empty(t, outcome.Issue)
		assert.Empty(t, server.Calls())
	})

	t.Run("failed upsert is returned to the caller", func(t *testing.T) {
		_, usecase := setup(t)
		request := medicationRequest("line-1")
		request.Identifier = nil
		b := messageBundle(t, constvars.EventPrescriptionOrder, map[string]interface{}{"urn:uuid:mr1": request})

		_, err := usecase.ProcessMessage(ctx, b)
		require.Error(t, err)
		assert.Equal(t, constvars.StatusUnprocessableEntity, exceptions.StatusCode(err))
	})
}

func TestFocusType(t *testing.T) {
	tests := []struct {
		eventCode string
		want      string
		ok        bool
	}{
		{constvars.EventPrescriptionOrder, constvars.ResourceMedicationRequest, true},
		{constvars.EventDispenseNotification, constvars.ResourceMedicationDispense, true},
		{constvars.EventServiceRequestRequest, constvars.ResourceServiceRequest, true},
		{constvars.EventPDSChangeOfGP, constvars.ResourcePatient, true},
		{constvars.EventUnsolicitedObservations, constvars.ResourceDiagnosticReport, true},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.eventCode, func(t *testing.T) {
			got, ok := processmessage.FocusType(tt.eventCode)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrescriptionTasks(t *testing.T) {
	t.Run("request without group identifier gets an unidentified task", func(t *testing.T) {
		request := medicationRequest("line-1")
		request.GroupIdentifier = nil
		request.ID = "mr-1"

		tasks := processmessage.PrescriptionTasks([]*fhir_dto.MedicationRequest{request})
		require.Len(t, tasks, 1)
		assert.Empty(t, tasks[0].Identifier)
		assert.Nil(t, tasks[0].GroupIdentifier)
		assert.Equal(t, "MedicationRequest/mr-1", tasks[0].Input[0].ValueReference.Reference)

		raw, err := json.Marshal(tasks[0])
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"intent":"order"`)
	})
}
