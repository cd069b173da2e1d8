package transaction

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

// Entries of any other type are ignored. Binaries are written through the
// DocumentReference that points at them.
var transactionTypes = map[string]bool{
	constvars.ResourceDocumentReference: true,
	constvars.ResourceServiceRequest:    true,
	constvars.ResourceTask:              true,
	constvars.ResourceAppointment:       true,
}

type transactionUsecase struct {
	Registry  contracts.UpsertRegistry
	Documents contracts.UpsertClient[*fhir_dto.DocumentReference]
	Binaries  contracts.BinaryClient
	Log       *zap.Logger
}

func NewTransactionUsecase(
	registry contracts.UpsertRegistry,
	documents contracts.UpsertClient[*fhir_dto.DocumentReference],
	binaries contracts.BinaryClient,
	logger *zap.Logger,
) contracts.TransactionUsecase {
	return &transactionUsecase{
		Registry:  registry,
		Documents: documents,
		Binaries:  binaries,
		Log:       logger,
	}
}

// ProcessTransaction upserts each supported entry on its own and reports
// the stored location per entry in a transaction-response bundle.
func (uc *transactionUsecase) ProcessTransaction(ctx context.Context, b *fhir_dto.FHIRBundle) (*fhir_dto.FHIRBundle, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Debug("transactionUsecase.ProcessTransaction called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(b.Entry)),
	)

	if b.Type != constvars.FhirBundleTypeTransaction {
		return nil, exceptions.ErrUnprocessableEntity(nil, constvars.ErrDevFHIRNotTransaction)
	}

	response := fhir_dto.NewBundle(constvars.FhirBundleTypeTransactionResponse)
	response.ID = b.ID

	for _, entry := range b.Entry {
		resourceType := entry.EntryResourceType()
		if !transactionTypes[resourceType] {
			continue
		}

		var (
			saved fhir_dto.Resource
			err   error
		)
		if resourceType == constvars.ResourceDocumentReference {
			saved, err = uc.createDocument(ctx, entry.Resource, b)
		} else {
			saved, err = uc.Registry.CreateUpdateRaw(ctx, entry.Resource, b)
		}
		if err != nil {
			uc.Log.Error("transactionUsecase.ProcessTransaction error processing entry",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingResourceTypeKey, resourceType),
				zap.String(constvars.LoggingReferenceKey, entry.FullUrl),
				zap.Error(err),
			)
			return nil, err
		}

		response.Entry = append(response.Entry, fhir_dto.Entry{
			FullUrl: entry.FullUrl,
			Response: &fhir_dto.EntryResponse{
				Status:   constvars.FhirResponseStatusOK,
				Location: resourceType + "/" + saved.GetID(),
			},
		})
	}

	uc.Log.Info("transactionUsecase.ProcessTransaction succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(response.Entry)),
	)
	return response, nil
}

func (uc *transactionUsecase) createDocument(ctx context.Context, raw json.RawMessage, b *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	document := &fhir_dto.DocumentReference{}
	if err := json.Unmarshal(raw, document); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if _, err := uc.Binaries.AttachBinaries(ctx, document, b); err != nil {
		return nil, err
	}
	return uc.Documents.CreateUpdate(ctx, document, b)
}
