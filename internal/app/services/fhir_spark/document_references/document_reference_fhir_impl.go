package document_references

import (
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type documentReferenceFhirClient struct {
	engine   *upsert.Engine
	resolver *upsert.Resolver
	Log      *zap.Logger
}

func NewDocumentReferenceFhirClient(engine *upsert.Engine, resolver *upsert.Resolver, logger *zap.Logger) contracts.UpsertClient[*fhir_dto.DocumentReference] {
	return &documentReferenceFhirClient{
		engine:   engine,
		resolver: resolver,
		Log:      logger,
	}
}

func (c *documentReferenceFhirClient) ResourceType() string {
	return constvars.ResourceDocumentReference
}

func (c *documentReferenceFhirClient) CreateUpdate(ctx context.Context, document *fhir_dto.DocumentReference, bundle *fhir_dto.FHIRBundle) (*fhir_dto.DocumentReference, error) {
	return upsert.Upsert[fhir_dto.DocumentReference](ctx, c.engine, c, document, nil, bundle)
}

func (c *documentReferenceFhirClient) CreateUpdateRaw(ctx context.Context, raw json.RawMessage, bundle *fhir_dto.FHIRBundle) (fhir_dto.Resource, error) {
	return upsert.UpsertRaw[fhir_dto.DocumentReference](ctx, c.engine, c, raw, bundle)
}

func (c *documentReferenceFhirClient) Resolve(ctx context.Context, document *fhir_dto.DocumentReference, scope upsert.Scope) error {
	if _, err := c.resolver.Resolve(ctx, document.Subject, scope, constvars.ResourcePatient); err != nil {
		return err
	}
	if _, err := c.resolver.Resolve(ctx, document.Custodian, scope, constvars.ResourceOrganization); err != nil {
		return err
	}
	for i := range document.Author {
		author := &document.Author[i]
		targets := upsert.TargetsFor(author, upsert.ProviderTargets, constvars.ResourcePractitioner, constvars.ResourceOrganization)
		if _, err := c.resolver.Resolve(ctx, author, scope, targets...); err != nil {
			return err
		}
	}
	return nil
}

func (c *documentReferenceFhirClient) Validate(document *fhir_dto.DocumentReference, found bool) error {
	return nil
}
