package constvars

const (
	ResourcePatient             = "Patient"
	ResourceCondition           = "Condition"
	ResourceAllergyIntolerance  = "AllergyIntolerance"
	ResourceMedicationRequest   = "MedicationRequest"
	ResourceImmunization        = "Immunization"
	ResourceProcedure           = "Procedure"
	ResourceFamilyMemberHistory = "FamilyMemberHistory"
	ResourceBundle              = "Bundle"
)

const (
	FhirBundleTypeSearchset = "searchset"
	FhirNarrativeGenerated  = "generated"
	FhirNarrativeDivFormat  = `<div xmlns="http://www.w3.org/1999/xhtml">%s</div>`
	FhirDateFormat          = "2006-01-02"
	FhirAgeUnitYears        = "a"
)

const (
	FhirSystemConditionClinical = "http://terminology.hl7.org/CodeSystem/condition-clinical"
	FhirSystemConditionCategory = "http://terminology.hl7.org/CodeSystem/condition-category"
	FhirSystemRoleCode          = "urn:oid:2.16.840.1.113883.5.111"
)

const (
	FhirExtensionCauseOfDeath = "https://www.healthgorilla.com/fhir/StructureDefinition/familymemberhistory-cause-of-death"
	FhirExtensionIMOSearch    = "https://www.healthgorilla.com/fhir/StructureDefinition/imo-core-search-data"
)

const (
	ClinicalStatusActive   = "active"
	ClinicalStatusInactive = "inactive"
	ClinicalStatusResolved = "resolved"

	FamilyHistoryStatusHealthUnknown = "health-unknown"
)

const (
	RelationshipFather      = "Father"
	RelationshipMother      = "Mother"
	RelationshipSibling     = "Sibling"
	RelationshipGrandparent = "Grandparent"
	RelationshipOther       = "Other"
)

// RelationshipRoleCodes maps a relationship label to its v3 RoleCode.
var RelationshipRoleCodes = map[string]string{
	RelationshipFather:      "FTH",
	RelationshipMother:      "MTH",
	RelationshipSibling:     "SIB",
	RelationshipGrandparent: "GRPRN",
	RelationshipOther:       "OTH",
}

// GatewayResources maps gateway URL segments to FHIR resource types.
var GatewayResources = map[string]string{
	"conditions":     ResourceCondition,
	"allergies":      ResourceAllergyIntolerance,
	"medications":    ResourceMedicationRequest,
	"immunizations":  ResourceImmunization,
	"procedures":     ResourceProcedure,
	"family-history": ResourceFamilyMemberHistory,
}

const (
	FhirSearchParamPatient   = "patient"
	FhirSearchParamGiven     = "given"
	FhirSearchParamFamily    = "family"
	FhirSearchParamBirthdate = "birthdate"
)
