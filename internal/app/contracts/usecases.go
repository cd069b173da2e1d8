package contracts

import (
	"context"
	"net/url"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type ProcessMessageUsecase interface {
	ProcessMessage(ctx context.Context, bundle *fhir_dto.FHIRBundle) (*fhir_dto.OperationOutcome, error)
}

type TransactionUsecase interface {
	ProcessTransaction(ctx context.Context, bundle *fhir_dto.FHIRBundle) (*fhir_dto.FHIRBundle, error)
}

type HL7Usecase interface {
	// ConvertFHIRR4 returns nil without error when the message yields no resource.
	ConvertFHIRR4(ctx context.Context, message string) (fhir_dto.Resource, error)
	// ProcessEvent always returns an ACK; the error is for logging only.
	ProcessEvent(ctx context.Context, message string) (string, error)
	ConvertV251(ctx context.Context, message string) (interface{}, error)
}

type FhirProxyUsecase interface {
	Read(ctx context.Context, resourceType, id string) (*ForwardResponse, error)
	Search(ctx context.Context, resourceType string, query url.Values) (*ForwardResponse, error)
	Create(ctx context.Context, resourceType string, body []byte) (*ForwardResponse, error)
	Update(ctx context.Context, resourceType, id string, body []byte) (*ForwardResponse, error)
}
