package hl7messages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/models"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/hl7v2"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/transforms"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

const endpointProcessEvent = "$process-event"

type hl7Usecase struct {
	Registry contracts.UpsertRegistry
	Journal  contracts.MessageJournal
	Log      *zap.Logger
	Now      func() time.Time
}

func NewHL7Usecase(registry contracts.UpsertRegistry, journal contracts.MessageJournal, logger *zap.Logger) contracts.HL7Usecase {
	return &hl7Usecase{
		Registry: registry,
		Journal:  journal,
		Log:      logger,
		Now:      time.Now,
	}
}

func (uc *hl7Usecase) ConvertFHIRR4(ctx context.Context, message string) (fhir_dto.Resource, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Debug("hl7Usecase.ConvertFHIRR4 called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	msg, err := hl7v2.Parse(message)
	if err != nil {
		uc.Log.Error("hl7Usecase.ConvertFHIRR4 error parsing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrHL7Parse(err)
	}

	resource := transforms.ConvertADT(msg)
	uc.Log.Info("hl7Usecase.ConvertFHIRR4 succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingControlIDKey, msg.ControlID()),
		zap.String(constvars.LoggingMessageTypeKey, msg.Name()),
		zap.Bool("converted", resource != nil),
	)
	return resource, nil
}

// ProcessEvent upserts the resource an ADT message describes and answers
// with an ACK: AA with the stored id, AE when the resource cannot be
// derived or stored, AR when the message cannot be parsed.
func (uc *hl7Usecase) ProcessEvent(ctx context.Context, message string) (string, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Debug("hl7Usecase.ProcessEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	entry := &models.HL7Message{
		RequestID:  requestID,
		Endpoint:   endpointProcessEvent,
		Message:    message,
		ReceivedAt: uc.Now().UTC(),
	}

	msg, err := hl7v2.Parse(message)
	if err != nil {
		err = exceptions.ErrHL7Parse(err)
		return uc.acknowledge(ctx, entry, nil, constvars.HL7AckReject, constvars.ErrClientInvalidHL7Message, err), err
	}
	entry.ControlID = msg.ControlID()
	entry.MessageType = msg.MessageType()
	entry.Trigger = msg.TriggerEvent()
	entry.Sender = msg.SendingFacility()

	resource := transforms.ConvertADT(msg)
	if resource == nil {
		err = exceptions.ErrHL7NoResource(msg.Name())
		return uc.acknowledge(ctx, entry, msg, constvars.HL7AckError, constvars.ErrDevHL7NoResourceDerived, err), err
	}

	raw, err := json.Marshal(resource)
	if err != nil {
		err = exceptions.ErrCannotMarshalJSON(err)
		return uc.acknowledge(ctx, entry, msg, constvars.HL7AckError, constvars.ErrClientCannotProcessRequest, err), err
	}

	saved, err := uc.Registry.CreateUpdateRaw(ctx, raw, nil)
	if err != nil {
		return uc.acknowledge(ctx, entry, msg, constvars.HL7AckError, clientMessage(err), err), err
	}

	entry.ResourceID = saved.GetResourceType() + "/" + saved.GetID()
	return uc.acknowledge(ctx, entry, msg, constvars.HL7AckAccept, saved.GetID(), nil), nil
}

// ConvertV251 converts ORU_R01 results into a transaction bundle and ADT
// events into their single resource.
func (uc *hl7Usecase) ConvertV251(ctx context.Context, message string) (interface{}, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Debug("hl7Usecase.ConvertV251 called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	msg, err := hl7v2.Parse(message)
	if err != nil {
		return nil, exceptions.ErrHL7Parse(err)
	}

	switch msg.MessageType() {
	case constvars.HL7MessageTypeORU:
		b, err := transforms.ConvertORU(msg)
		if err != nil {
			return nil, exceptions.ErrHL7NoResource(msg.Name())
		}
		uc.Log.Info("hl7Usecase.ConvertV251 succeeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingControlIDKey, msg.ControlID()),
			zap.Int(constvars.LoggingCountKey, len(b.Entry)),
		)
		return b, nil
	case constvars.HL7MessageTypeADT:
		if resource := transforms.ConvertADT(msg); resource != nil {
			return resource, nil
		}
	}
	return nil, exceptions.ErrHL7NoResource(msg.Name())
}

func (uc *hl7Usecase) acknowledge(ctx context.Context, entry *models.HL7Message, msg *hl7v2.Message, code, text string, cause error) string {
	requestID := utils.GetRequestID(ctx)

	ack := hl7v2.BuildACK(msg, hl7v2.ACK{
		Code:      code,
		ControlID: newControlID(),
		Text:      text,
		Timestamp: uc.Now(),
	})

	entry.Ack = ack
	entry.AckCode = code
	entry.Outcome = text
	if cause != nil {
		entry.Outcome = cause.Error()
		uc.Log.Error("hl7Usecase.ProcessEvent message not accepted",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingControlIDKey, entry.ControlID),
			zap.String(constvars.LoggingAckCodeKey, code),
			zap.Error(cause),
		)
	} else {
		uc.Log.Info("hl7Usecase.ProcessEvent succeeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingControlIDKey, entry.ControlID),
			zap.String(constvars.LoggingResourceIDKey, entry.ResourceID),
		)
	}

	// A journal outage never changes the ACK.
	if err := uc.Journal.Record(ctx, entry); err != nil {
		uc.Log.Error("hl7Usecase.ProcessEvent error journaling message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingControlIDKey, entry.ControlID),
			zap.Error(err),
		)
	}
	return ack
}

func clientMessage(err error) string {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr.ClientMessage
	}
	return constvars.ErrClientSomethingWrongWithApplication
}

// newControlID fits MSH-10, which is limited to 20 characters.
func newControlID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:20]
}
