// Package fhirclients wires the per-resource upsert clients into one
// registry sharing an engine and a reference resolver.
package fhirclients

import (
	"go.uber.org/zap"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/appointments"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/diagnostic_reports"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/document_references"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/encounters"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/medication_dispenses"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/medication_requests"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/observations"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/organizations"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/patients"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/practitioner_role"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/practitioners"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/related_persons"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/service_requests"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/tasks"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/services/fhir_spark/upsert"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type Clients struct {
	Registry *upsert.Registry

	Patients           contracts.UpsertClient[*fhir_dto.Patient]
	Practitioners      contracts.UpsertClient[*fhir_dto.Practitioner]
	Organizations      contracts.UpsertClient[*fhir_dto.Organization]
	PractitionerRoles  contracts.UpsertClient[*fhir_dto.PractitionerRole]
	Encounters         contracts.UpsertClient[*fhir_dto.Encounter]
	Observations       contracts.UpsertClient[*fhir_dto.Observation]
	DiagnosticReports  contracts.UpsertClient[*fhir_dto.DiagnosticReport]
	RelatedPersons     contracts.UpsertClient[*fhir_dto.RelatedPerson]
	Appointments       contracts.UpsertClient[*fhir_dto.Appointment]
	ServiceRequests    contracts.UpsertClient[*fhir_dto.ServiceRequest]
	MedicationRequests contracts.UpsertClient[*fhir_dto.MedicationRequest]
	MedicationDispense contracts.UpsertClient[*fhir_dto.MedicationDispense]
	Tasks              contracts.UpsertClient[*fhir_dto.Task]
	DocumentReferences contracts.UpsertClient[*fhir_dto.DocumentReference]
}

func New(engine *upsert.Engine, logger *zap.Logger) *Clients {
	registry := upsert.NewRegistry(logger)
	resolver := upsert.NewResolver(engine, registry)

	c := &Clients{
		Registry:           registry,
		Patients:           patients.NewPatientFhirClient(engine, resolver, logger),
		Practitioners:      practitioners.NewPractitionerFhirClient(engine, resolver, logger),
		Organizations:      organizations.NewOrganizationFhirClient(engine, resolver, logger),
		PractitionerRoles:  practitioner_role.NewPractitionerRoleFhirClient(engine, resolver, logger),
		Encounters:         encounters.NewEncounterFhirClient(engine, resolver, logger),
		Observations:       observations.NewObservationFhirClient(engine, resolver, logger),
		DiagnosticReports:  diagnostic_reports.NewDiagnosticReportFhirClient(engine, resolver, logger),
		RelatedPersons:     related_persons.NewRelatedPersonFhirClient(engine, resolver, logger),
		Appointments:       appointments.NewAppointmentFhirClient(engine, resolver, logger),
		ServiceRequests:    service_requests.NewServiceRequestFhirClient(engine, resolver, logger),
		MedicationRequests: medication_requests.NewMedicationRequestFhirClient(engine, resolver, logger),
		MedicationDispense: medication_dispenses.NewMedicationDispenseFhirClient(engine, resolver, logger),
		Tasks:              tasks.NewTaskFhirClient(engine, resolver, logger),
		DocumentReferences: document_references.NewDocumentReferenceFhirClient(engine, resolver, logger),
	}

	registry.Register(
		c.Patients,
		c.Practitioners,
		c.Organizations,
		c.PractitionerRoles,
		c.Encounters,
		c.Observations,
		c.DiagnosticReports,
		c.RelatedPersons,
		c.Appointments,
		c.ServiceRequests,
		c.MedicationRequests,
		c.MedicationDispense,
		c.Tasks,
		c.DocumentReferences,
	)
	return c
}
