package binaries

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/bundle"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

type binaryFhirClient struct {
	engine  *upsert.Engine
	storage contracts.Storage
	bucket  string
	Log     *zap.Logger
}

// NewBinaryFhirClient creates Binaries on the repository as-is and keeps a
// copy of each decoded payload in bucket.
func NewBinaryFhirClient(engine *upsert.Engine, storage contracts.Storage, bucket string, logger *zap.Logger) contracts.BinaryClient {
	return &binaryFhirClient{
		engine:  engine,
		storage: storage,
		bucket:  bucket,
		Log:     logger,
	}
}

func (c *binaryFhirClient) Create(ctx context.Context, binary *fhir_dto.Binary) (*fhir_dto.Binary, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Debug("binaryFhirClient.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingContentTypeKey, binary.ContentType),
	)

	data, err := base64.StdEncoding.DecodeString(binary.Data)
	if err != nil {
		return nil, exceptions.ErrUnprocessableEntity(err, fmt.Sprintf(constvars.ErrDevFHIRBinaryData, binary.ID))
	}

	binary.ResourceType = constvars.ResourceBinary
	binary.ID = ""
	body, err := json.Marshal(binary)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	var raw json.RawMessage
	err = c.engine.Do(ctx, constvars.ResourceBinary, func(ctx context.Context) error {
		var err error
		raw, err = c.engine.Client().Create(ctx, constvars.ResourceBinary, body)
		return err
	})
	if err != nil {
		c.Log.Error("binaryFhirClient.Create error creating Binary",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	saved := &fhir_dto.Binary{}
	if err := json.Unmarshal(raw, saved); err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceBinary)
	}

	// The repository copy is authoritative; a failed archive is only logged.
	objectName := constvars.ResourceBinary + "/" + saved.ID
	_, err = c.storage.PutObject(ctx, contracts.StorageObject{
		Bucket:      c.bucket,
		Name:        objectName,
		ContentType: binary.ContentType,
		Data:        data,
		Metadata: map[string]string{
			constvars.StorageMetadataRequestID:  requestID,
			constvars.StorageMetadataResourceID: saved.ID,
		},
	})
	if err != nil {
		c.Log.Error("binaryFhirClient.Create error archiving Binary payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, c.bucket),
			zap.String(constvars.LoggingObjectKey, objectName),
			zap.Error(err),
		)
	}

	c.Log.Info("binaryFhirClient.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, saved.ID),
		zap.Int(constvars.LoggingSizeKey, len(data)),
	)
	return saved, nil
}

func (c *binaryFhirClient) AttachBinaries(ctx context.Context, document *fhir_dto.DocumentReference, b *fhir_dto.FHIRBundle) ([]string, error) {
	var locations []string
	for i := range document.Content {
		attachment := &document.Content[i].Attachment
		if attachment.Url == "" {
			continue
		}
		raw := bundle.FindResource(b, constvars.ResourceBinary, attachment.Url)
		if raw == nil {
			continue
		}

		binary := &fhir_dto.Binary{}
		if err := json.Unmarshal(raw, binary); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		saved, err := c.Create(ctx, binary)
		if err != nil {
			return nil, err
		}

		attachment.Url = strings.TrimSuffix(c.engine.Client().BaseUrl(), "/") + "/" + constvars.ResourceBinary + "/" + saved.ID
		locations = append(locations, constvars.ResourceBinary+"/"+saved.ID)
	}
	return locations, nil
}
