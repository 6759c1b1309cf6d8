package reports

import (
	"fmt"
	"strings"
	"theracare-service/internal/pkg/dto/responses"
)

const narrativeSystemPrompt = `You write simple, list-based health reports for patients.
You must include ALL conditions and family history entries, in the order given, without skipping any.
Use these sections:
1. Patient Information
2. Medical Conditions, one numbered item per condition with its onset date and recorded date
3. Family History, one numbered item per family member with their conditions, age at diagnosis and whether it was the cause of death
Keep the formatting consistent and verify that the number of items matches the input.`

func buildNarrativePrompt(report *responses.HealthReport) string {
	var prompt strings.Builder

	fmt.Fprintf(&prompt, "Patient Information:\n- Name: %s\n- Gender: %s\n- Date of Birth: %s\n- Email: %s\n\n",
		report.Patient.Name, report.Patient.Gender, report.Patient.BirthDate, report.Patient.Email)

	fmt.Fprintf(&prompt, "Medical Conditions (Total: %d):\n", report.TotalConditions)
	for i, condition := range report.Conditions {
		fmt.Fprintf(&prompt, "%d. %s\n   - Onset Date: %s\n   - Recorded Date: %s\n",
			i+1, condition.Name, condition.OnsetDate, condition.RecordedDate)
	}

	fmt.Fprintf(&prompt, "\nFamily History (Total: %d):\n", len(report.FamilyHistory))
	for i, member := range report.FamilyHistory {
		fmt.Fprintf(&prompt, "%d. %s (gender: %s, born: %s)\n", i+1, member.Relationship, member.Gender, member.BornDate)
		for _, condition := range member.Conditions {
			fmt.Fprintf(&prompt, "   - %s, age at diagnosis: %s, cause of death: %t\n",
				condition.Name, condition.AgeAtDiagnosis, condition.IsCauseOfDeath)
		}
	}
	return prompt.String()
}
