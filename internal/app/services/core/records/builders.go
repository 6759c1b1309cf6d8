package records

import (
	"fmt"
	"html"
	"strings"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
)

// buildConditionEntry turns a manually entered condition into a stored
// Condition entry. tokenized is attached as is when not empty.
func buildConditionEntry(request *requests.ManualCondition, tokenized json.RawMessage) fhir_dto.ConditionEntry {
	narrative := request.ConditionText
	if narrative == "" {
		narrative = request.ConditionName
	}

	condition := fhir_dto.Condition{
		ResourceType: constvars.ResourceCondition,
		Code: &fhir_dto.CodeableConcept{
			Text:   request.ConditionName,
			Coding: []fhir_dto.Coding{{Display: request.ConditionName}},
		},
		AssertedDate: request.RecordedDate,
		ClinicalStatus: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{{
				System:  constvars.FhirSystemConditionClinical,
				Code:    request.ClinicalStatus,
				Display: capitalizeFirst(request.ClinicalStatus),
			}},
		},
		Category: []fhir_dto.CodeableConcept{{
			Coding: []fhir_dto.Coding{{
				System:  constvars.FhirSystemConditionCategory,
				Code:    strings.ToUpper(request.Category),
				Display: request.Category,
			}},
		}},
		Text: &fhir_dto.Narrative{
			Status: constvars.FhirNarrativeGenerated,
			Div:    fmt.Sprintf(constvars.FhirNarrativeDivFormat, html.EscapeString(narrative)),
		},
		TokenizedData: tokenized,
	}
	if request.OnsetDate != "" {
		condition.OnsetPeriod = &fhir_dto.Period{Start: request.OnsetDate}
	}

	return fhir_dto.ConditionEntry{Resource: condition}
}

type imoSearchData struct {
	Title         string `json:"kndg_title"`
	ICD10CMTitle  string `json:"ICD10CM_TITLE"`
	SNOMEDCTTitle string `json:"SNOMEDCT_TITLE"`
	ID            string `json:"kndg_id"`
	ICD10CMCode   string `json:"ICD10CM_CODE"`
	SNOMEDCTCode  string `json:"SNOMEDCT_CODE"`
}

// buildFamilyHistoryEntry turns a manually entered relative into a stored
// FamilyMemberHistory entry. Every condition carries the same extension list.
func buildFamilyHistoryEntry(request *requests.ManualFamilyHistory) (fhir_dto.FamilyMemberHistoryEntry, error) {
	roleCode, ok := constvars.RelationshipRoleCodes[request.Relationship]
	if !ok {
		roleCode = constvars.RelationshipRoleCodes[constvars.RelationshipOther]
	}

	var extensions []fhir_dto.Extension
	if request.IsCauseOfDeath {
		causeOfDeath := true
		extensions = append(extensions, fhir_dto.Extension{
			Url:          constvars.FhirExtensionCauseOfDeath,
			ValueBoolean: &causeOfDeath,
		})
	}
	for _, condition := range request.Conditions {
		searchData, err := json.Marshal(imoSearchData{
			Title:         condition.Title,
			ICD10CMTitle:  condition.ICD10CMTitle,
			SNOMEDCTTitle: condition.SNOMEDCTTitle,
			ID:            condition.ID,
			ICD10CMCode:   condition.ICD10CMCode,
			SNOMEDCTCode:  condition.SNOMEDCTCode,
		})
		if err != nil {
			return fhir_dto.FamilyMemberHistoryEntry{}, err
		}
		extensions = append(extensions, fhir_dto.Extension{
			Url:         constvars.FhirExtensionIMOSearch,
			ValueString: string(searchData),
		})
	}

	history := fhir_dto.FamilyMemberHistory{
		ResourceType: constvars.ResourceFamilyMemberHistory,
		Status:       constvars.FamilyHistoryStatusHealthUnknown,
		Relationship: fhir_dto.CodeableConcept{
			Text: request.Relationship,
			Coding: []fhir_dto.Coding{{
				System:  constvars.FhirSystemRoleCode,
				Code:    roleCode,
				Display: request.Relationship,
			}},
		},
		Gender:   request.Gender,
		BornDate: request.BirthYear,
	}

	for _, condition := range request.Conditions {
		member := fhir_dto.FamilyMemberHistoryCondition{
			Code: fhir_dto.CodeableConcept{
				Text:   condition.Title,
				Coding: []fhir_dto.Coding{{Display: condition.Title}},
			},
			Extension: extensions,
		}
		if request.AgeAtOnset != nil && *request.AgeAtOnset > 0 {
			member.OnsetAge = &fhir_dto.Age{Value: *request.AgeAtOnset, Unit: constvars.FhirAgeUnitYears}
		}
		history.Condition = append(history.Condition, member)
	}

	if request.Notes != "" {
		history.Note = []fhir_dto.Annotation{{Text: request.Notes}}
	}

	return fhir_dto.FamilyMemberHistoryEntry{Resource: history}, nil
}

func capitalizeFirst(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
