package binaries_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/binaries"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/fhirtest"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type recordingStorage struct {
	mu      sync.Mutex
	objects []contracts.StorageObject
	err     error
}

func (s *recordingStorage) EnsureBucket(ctx context.Context, bucketName string) error {
	return nil
}

func (s *recordingStorage) PutObject(ctx context.Context, object contracts.StorageObject) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, object)
	return object.Name, s.err
}

func TestBinaryFhirClient(t *testing.T) {
	payload := []byte("%PDF-1.4 discharge summary")
	encoded := base64.StdEncoding.EncodeToString(payload)
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")

	t.Run("create stores on the repository and archives the payload", func(t *testing.T) {
		server := fhirtest.NewServer()
		defer server.Close()
		archive := &recordingStorage{}
		client := binaries.NewBinaryFhirClient(server.Engine(nil), archive, "tie-binary", zap.NewNop())

		saved, err := client.Create(ctx, &fhir_dto.Binary{ID: "local", ContentType: "application/pdf", Data: encoded})
		require.NoError(t, err)
		assert.NotEqual(t, "local", saved.ID)
		assert.Equal(t, 1, server.CountCalls(http.MethodPost, constvars.ResourceBinary))

		require.Len(t, archive.objects, 1)
		object := archive.objects[0]
		assert.Equal(t, "tie-binary", object.Bucket)
		assert.Equal(t, constvars.ResourceBinary+"/"+saved.ID, object.Name)
		assert.Equal(t, payload, object.Data)
		assert.Equal(t, "req-1", object.Metadata[constvars.StorageMetadataRequestID])
		assert.Equal(t, saved.ID, object.Metadata[constvars.StorageMetadataResourceID])
	})

	t.Run("archive failure does not fail the create", func(t *testing.T) {
		server := fhirtest.NewServer()
		defer server.Close()
		archive := &recordingStorage{err: errors.New("bucket gone")}
		client := binaries.NewBinaryFhirClient(server.Engine(nil), archive, "tie-binary", zap.NewNop())

		_, err := client.Create(ctx, &fhir_dto.Binary{ContentType: "text/plain", Data: encoded})
		assert.NoError(t, err)
	})

	t.Run("invalid base64 is unprocessable", func(t *testing.T) {
		server := fhirtest.NewServer()
		defer server.Close()
		client := binaries.NewBinaryFhirClient(server.Engine(nil), &recordingStorage{}, "tie-binary", zap.NewNop())

		_, err := client.Create(ctx, &fhir_dto.Binary{ContentType: "text/plain", Data: "!!not base64"})
		assert.Error(t, err)
		assert.Empty(t, server.Calls())
	})

	t.Run("attachments pointing at bundled binaries are rewritten", func(t *testing.T) {
		server := fhirtest.NewServer()
		defer server.Close()
		client := binaries.NewBinaryFhirClient(server.Engine(nil), &recordingStorage{}, "tie-binary", zap.NewNop())

		b := fhir_dto.NewBundle(constvars.FhirBundleTypeTransaction)
		require.NoError(t, b.AddEntry("urn:uuid:bin-1", &fhir_dto.Binary{
			ResourceType: constvars.ResourceBinary,
			ContentType:  "application/pdf",
			Data:         encoded,
		}, nil))

		document := &fhir_dto.DocumentReference{
			Content: []fhir_dto.DocumentReferenceContent{
				{Attachment: fhir_dto.Attachment{ContentType: "application/pdf", Url: "urn:uuid:bin-1"}},
				{Attachment: fhir_dto.Attachment{Url: "https://elsewhere.example/doc.pdf"}},
			},
		}

		locations, err := client.AttachBinaries(ctx, document, b)
		require.NoError(t, err)
		require.Len(t, locations, 1)
		assert.Equal(t, server.URL+"/"+locations[0], document.Content[0].Attachment.Url)
		assert.Equal(t, "https://elsewhere.example/doc.pdf", document.Content[1].Attachment.Url)
	})
}
