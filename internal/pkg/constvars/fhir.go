package constvars

const (
	ResourcePatient               = "Patient"
	ResourceEncounter             = "Encounter"
	ResourceAppointment           = "Appointment"
	ResourceServiceRequest        = "ServiceRequest"
	ResourceObservation           = "Observation"
	ResourceSpecimen              = "Specimen"
	ResourceDiagnosticReport      = "DiagnosticReport"
	ResourceMedicationRequest     = "MedicationRequest"
	ResourceMedicationDispense    = "MedicationDispense"
	ResourceTask                  = "Task"
	ResourceRelatedPerson         = "RelatedPerson"
	ResourceDocumentReference     = "DocumentReference"
	ResourceBinary                = "Binary"
	ResourcePractitioner          = "Practitioner"
	ResourcePractitionerRole      = "PractitionerRole"
	ResourceOrganization          = "Organization"
	ResourceMessageHeader         = "MessageHeader"
	ResourceOperationOutcome      = "OperationOutcome"
	ResourceAuditEvent            = "AuditEvent"
	ResourceBundle                = "Bundle"
	ResourceDevice                = "Device"
	ResourceCapabilityStatement   = "CapabilityStatement"
	ResourceCommunicationRequest  = "CommunicationRequest"
	ResourceCommunication         = "Communication"
	ResourceQuestionnaire         = "Questionnaire"
	ResourceQuestionnaireResponse = "QuestionnaireResponse"
	ResourceSubscription          = "Subscription"
	ResourceCareTeam              = "CareTeam"
)

// ProxiedResources are the resource types exposed on the FHIR REST surface.
var ProxiedResources = []string{
	ResourcePatient,
	ResourceEncounter,
	ResourceCommunicationRequest,
	ResourceCommunication,
	ResourceQuestionnaireResponse,
	ResourceQuestionnaire,
	ResourceTask,
	ResourceSubscription,
	ResourceDocumentReference,
	ResourceBinary,
	ResourceCareTeam,
}

const (
	FhirSearchParamIdentifier = "identifier"
	FhirSearchParamCount      = "_count"
)

const (
	FhirBundleTypeTransaction         = "transaction"
	FhirBundleTypeTransactionResponse = "transaction-response"
	FhirBundleTypeMessage             = "message"
	FhirBundleTypeSearchSet           = "searchset"
	FhirBundleTypeBatch               = "batch"
	FhirBundleTypeBatchResponse       = "batch-response"
	FhirBundleTypeDocument            = "document"
	FhirBundleTypeCollection          = "collection"
	FhirBundleTypeHistory             = "history"
)

const (
	FhirIssueSeverityInformation = "information"
	FhirIssueSeverityError       = "error"
	FhirIssueSeverityFatal       = "fatal"

	FhirIssueCodeInformational = "informational"
	FhirIssueCodeProcessing    = "processing"
	FhirIssueCodeInvalid       = "invalid"
	FhirIssueCodeNotFound      = "not-found"
	FhirIssueCodeSecurity      = "security"
	FhirIssueCodeTransient     = "transient"
	FhirIssueCodeException     = "exception"
)

const (
	FhirEncounterStatusPlanned    = "planned"
	FhirEncounterStatusInProgress = "in-progress"
	FhirEncounterStatusFinished   = "finished"

	FhirAppointmentStatusBooked    = "booked"
	FhirAppointmentStatusFulfilled = "fulfilled"

	FhirTaskStatusRequested = "requested"
	FhirTaskIntentOrder     = "order"

	FhirServiceRequestStatusActive = "active"
	FhirServiceRequestIntentOrder  = "order"
	FhirServiceRequestPriorityUrg  = "urgent"
	FhirServiceRequestPriorityStat = "stat"

	FhirObservationStatusFinal      = "final"
	FhirDiagnosticReportStatusFinal = "final"

	FhirGenderMale    = "male"
	FhirGenderFemale  = "female"
	FhirGenderOther   = "other"
	FhirGenderUnknown = "unknown"

	FhirUseHome = "home"
	FhirUseWork = "work"
	FhirUseTemp = "temp"

	FhirContactPointSystemPhone = "phone"

	FhirResponseStatusOK = "200 OK"
)

// Event codes carried by MessageHeader.eventCoding.code.
const (
	EventPrescriptionOrder          = "prescription-order"
	EventDispenseNotification       = "dispense-notification"
	EventDispenseNotificationUpdate = "dispense-notification-update"
	EventUnsolicitedObservations    = "unsolicited-observations"
	EventServiceRequestRequest      = "servicerequest-request"
	EventPDSChangeOfAddress         = "pds-change-of-address-1"
	EventPDSBirthNotification       = "pds-birth-notification-1"
	EventPDSDeathNotification       = "pds-death-notification-1"
	EventPDSChangeOfGP              = "pds-change-of-gp-1"
	EventDocument                   = "document"
)

// Identifier and code systems.
const (
	SystemNHSNumber        = "https://fhir.nhs.uk/Id/nhs-number"
	SystemODSCode          = "https://fhir.nhs.uk/Id/ods-organization-code"
	SystemODSSiteCode      = "https://fhir.nhs.uk/Id/ods-site-code"
	SystemGMCNumber        = "https://fhir.hl7.org.uk/Id/gmc-number"
	SystemGMPNumber        = "https://fhir.hl7.org.uk/Id/gmp-number"
	SystemCardiffMRN       = "https://cardiff.nhs.uk/Id/mrn"
	SystemUBRN             = "https://fhir.nhs.uk/Id/UBRN"
	SystemSNOMEDCT         = "http://snomed.info/sct"
	SystemLOINC            = "http://loinc.org"
	SystemUCUM             = "http://unitsofmeasure.org"
	SystemV20203           = "http://terminology.hl7.org/CodeSystem/v2-0203"
	SystemV20074           = "http://terminology.hl7.org/CodeSystem/v2-0074"
	SystemV3ActCode        = "http://terminology.hl7.org/CodeSystem/v3-ActCode"
	SystemV3Participation  = "http://terminology.hl7.org/CodeSystem/v3-ParticipationType"
	SystemV3Interpretation = "http://terminology.hl7.org/CodeSystem/v3-ObservationInterpretation"
	SystemObservationCat   = "http://terminology.hl7.org/CodeSystem/observation-category"
	SystemTreatmentFunc    = "https://fhir.nhs.uk/CodeSystem/NHSDataModelAndDictionary-treatment-function"
	SystemAdmissionMethod  = "https://fhir.hl7.org.uk/CodeSystem/UKCore-AdmissionMethodEngland"
	SystemSourceOfAdmisson = "https://fhir.nhs.uk/CodeSystem/UKCore-SourceOfAdmission"
	SystemDischargeMethod  = "https://fhir.hl7.org.uk/CodeSystem/UKCore-DischargeMethodEngland"
	SystemISOEHREvents     = "http://terminology.hl7.org/CodeSystem/iso-21089-lifecycle"
	SystemAuditEventType   = "http://terminology.hl7.org/CodeSystem/audit-event-type"
	SystemDICOM            = "http://dicom.nema.org/resources/ontology/DCM"
	SystemV3RoleClass      = "http://terminology.hl7.org/CodeSystem/v3-RoleClass"
	SystemResourceTypes    = "http://hl7.org/fhir/resource-types"
	SystemEncounterPrefix  = "https://fhir.nhs.uk/%s/Id/Encounter"
	SystemAppointmentFmt   = "https://fhir.nhs.uk/%s/Id/Appointment"
)

// Extension urls.
const (
	ExtensionAdmissionMethod      = "https://fhir.hl7.org.uk/StructureDefinition/Extension-UKCore-AdmissionMethod"
	ExtensionPrescriptionID       = "https://fhir.nhs.uk/StructureDefinition/Extension-DM-PrescriptionId"
	ExtensionDiagnosticReportNote = "http://hl7.org/fhir/5.0/StructureDefinition/extension-DiagnosticReport.note"
)

// SNOMED codes used for synthesized resources.
const (
	SnomedPrescription        = "16076005"
	SnomedPrescriptionDisplay = "Prescription"
	SnomedHospitalAdmission   = "32485007"
	SnomedPatientTransfer     = "107724000"
	SnomedPatientDischarge    = "58000006"
	SnomedConsultation        = "11429006"
)

// AuditEvent codes.
const (
	AuditActionCreate        = "C"
	AuditActionUpdate        = "U"
	AuditTypeTransmit        = "transmit"
	AuditTypeTransmitDisplay = "Transmit Record Lifecycle Event"
	AuditAgentApplication    = "110150"
	AuditAgentAppDisplay     = "Application"
	AuditAgentPatient        = "PAT"
	AuditAgentPatientDisplay = "patient"
	AuditDetailQuery         = "query"
	AuditDetailResource      = "resource"
)

// CapabilityStatement content.
const (
	FhirVersionR4                  = "4.0.1"
	FhirCapabilityStatusActive     = "active"
	FhirCapabilityKindInstance     = "instance"
	FhirRestModeServer             = "server"
	FhirInteractionRead            = "read"
	FhirInteractionSearchType      = "search-type"
	FhirInteractionCreate          = "create"
	FhirInteractionUpdate          = "update"
	FhirOperationProcessMessage    = "process-message"
	FhirOperationProcessMessageDef = "http://hl7.org/fhir/OperationDefinition/MessageHeader-process-message"
	ImplementationGuideUKCore      = "https://simplifier.net/guide/ukcoreimplementationguide0.5.0-stu1"
	ImplementationGuideNHSDigital  = "https://simplifier.net/guide/nhsdigital"
	ImplementationDescription      = "NHS Digital FHIR Implementation Guide"
)
