package transaction_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/core/transaction"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/binaries"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/fhirclients"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/fhirtest"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/shared/storage"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

func setup(t *testing.T) (*fhirtest.Server, contracts.TransactionUsecase) {
	t.Helper()
	server := fhirtest.NewServer()
	t.Cleanup(server.Close)

	engine := server.Engine(nil)
	clients := fhirclients.New(engine, zap.NewNop())
	usecase := transaction.NewTransactionUsecase(
		clients.Registry,
		clients.DocumentReferences,
		binaries.NewBinaryFhirClient(engine, storage.NewNoopStorage(), "tie-binary", zap.NewNop()),
		zap.NewNop(),
	)
	return server, usecase
}

func document() *fhir_dto.DocumentReference {
	document := &fhir_dto.DocumentReference{DomainResource: fhir_dto.DomainResource{ResourceType: constvars.ResourceDocumentReference}}
	document.AddIdentifier(fhir_dto.Identifier{System: "https://tools.ietf.org/html/rfc4122", Value: "urn:uuid:8d2ee2f5-3c8f-4b2a-9f3a-5a0b6e1c7d10"})
	document.Status = "current"
	document.Content = []fhir_dto.DocumentReferenceContent{{
		Attachment: fhir_dto.Attachment{ContentType: "application/pdf", Url: "urn:uuid:binary"},
	}}
	return document
}

func TestProcessTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("document with binary and a service request", func(t *testing.T) {
		server, usecase := setup(t)

		request := fhir_dto.NewServiceRequest()
		request.AddIdentifier(fhir_dto.Identifier{System: "https://fhir.nhs.uk/Id/UBRN", Value: "000049637654"})
		request.Status = "active"
		request.Intent = "order"

		b := fhir_dto.NewBundle(constvars.FhirBundleTypeTransaction)
		b.ID = "tx-1"
		require.NoError(t, b.AddEntry("urn:uuid:doc", document(), nil))
		require.NoError(t, b.AddEntry("urn:uuid:binary", &fhir_dto.Binary{
			ResourceType: constvars.ResourceBinary,
			ContentType:  "application/pdf",
			Data:         "JVBERi0xLjQK",
		}, nil))
		require.NoError(t, b.AddEntry("urn:uuid:sr", request, nil))

		response, err := usecase.ProcessTransaction(ctx, b)
		require.NoError(t, err)

		assert.Equal(t, constvars.FhirBundleTypeTransactionResponse, response.Type)
		assert.Equal(t, "tx-1", response.ID)
		require.Len(t, response.Entry, 2)
		assert.Equal(t, "urn:uuid:doc", response.Entry[0].FullUrl)
		assert.Equal(t, constvars.FhirResponseStatusOK, response.Entry[0].Response.Status)
		assert.Regexp(t, `^DocumentReference/documentreference-\d+$`, response.Entry[0].Response.Location)
		assert.Regexp(t, `^ServiceRequest/servicerequest-\d+$`, response.Entry[1].Response.Location)

		assert.Equal(t, 1, server.CountCalls(http.MethodPost, constvars.ResourceBinary))

		var binaries []fhir_dto.Binary
		require.NoError(t, server.Decode(constvars.ResourceBinary, &binaries))
		require.Len(t, binaries, 1)

		var documents []fhir_dto.DocumentReference
		require.NoError(t, server.Decode(constvars.ResourceDocumentReference, &documents))
		require.Len(t, documents, 1)
		assert.Equal(t, server.URL+"/Binary/"+binaries[0].ID, documents[0].Content[0].Attachment.Url)
	})

	t.Run("unsupported entries are skipped", func(t *testing.T) {
		server, usecase := setup(t)

		patient := fhir_dto.NewPatient()
		patient.AddIdentifier(fhir_dto.Identifier{System: constvars.SystemNHSNumber, Value: "9449310475"})

		b := fhir_dto.NewBundle(constvars.FhirBundleTypeTransaction)
		require.NoError(t, b.AddEntry("urn:uuid:patient", patient, nil))

		response, err := usecase.ProcessTransaction(ctx, b)
		require.NoError(t, err)
		assert.Empty(t, response.Entry)
		assert.Empty(t, server.Calls())
	})

	t.Run("task and appointment are upserted by identifier", func(t *testing.T) {
		server, usecase := setup(t)

		task := fhir_dto.NewTask()
		task.AddIdentifier(fhir_dto.Identifier{System: "https://fhir.nhs.uk/Id/task", Value: "T-1"})
		task.Status = constvars.FhirTaskStatusRequested
		task.Intent = constvars.FhirTaskIntentOrder

		appointment := fhir_dto.NewAppointment()
		appointment.AddIdentifier(fhir_dto.Identifier{System: "https://fhir.nhs.uk/Id/appointment", Value: "A-1"})
		appointment.Status = "booked"

		for i := 0; i < 2; i++ {
			b := fhir_dto.NewBundle(constvars.FhirBundleTypeTransaction)
			require.NoError(t, b.AddEntry("urn:uuid:task", task, nil))
			require.NoError(t, b.AddEntry("urn:uuid:appointment", appointment, nil))

			response, err := usecase.ProcessTransaction(ctx, b)
			require.NoError(t, err)
			require.Len(t, response.Entry, 2)
		}

		assert.Len(t, server.Resources(constvars.ResourceTask), 1)
		assert.Len(t, server.Resources(constvars.ResourceAppointment), 1)
		assert.Equal(t, 1, server.CountCalls(http.MethodPut, constvars.ResourceTask))
	})

	t.Run("message bundle is rejected", func(t *testing.T) {
		server, usecase := setup(t)
		b := fhir_dto.NewBundle(constvars.FhirBundleTypeMessage)
		require.NoError(t, b.AddEntry("urn:uuid:doc", document(), nil))

		_, err := usecase.ProcessTransaction(ctx, b)
		require.Error(t, err)
		assert.Equal(t, constvars.StatusUnprocessableEntity, exceptions.StatusCode(err))
		assert.Empty(t, server.Calls())
	})

	t.Run("repository failure stops the transaction", func(t *testing.T) {
		server, usecase := setup(t)
		server.FailNext(http.MethodPost, http.StatusBadRequest, 1)

		b := fhir_dto.NewBundle(constvars.FhirBundleTypeTransaction)
		require.NoError(t, b.AddEntry("urn:uuid:doc", document(), nil))

		_, err := usecase.ProcessTransaction(ctx, b)
		require.Error(t, err)
		assert.Empty(t, server.Resources(constvars.ResourceDocumentReference))
	})
}
