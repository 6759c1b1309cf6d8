package utils

import (
	"testing"
	"theracare-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRegisterUserRequest(t *testing.T) {
	t.Run("Email Sanitization", func(t *testing.T) {
		request := &requests.RegisterUser{
			Username: "  jdoe  ",
			Email:    "  JDOE@EXAMPLE.COM  ",
			Password: " Secret!23 ",
		}

		SanitizeRegisterUserRequest(request)

		assert.Equal(t, "jdoe@example.com", request.Email, "email should be lowercase and trimmed")
		assert.Equal(t, "jdoe", request.Username, "username should be trimmed")
		assert.Equal(t, "Secret!23", request.Password, "password should be trimmed")
	})
}

func TestSanitizeManualConditionRequest(t *testing.T) {
	request := &requests.ManualCondition{
		ConditionName:  "  Asthma ",
		RecordedDate:   " 2020-01-01",
		ClinicalStatus: " Active ",
		Category:       " Problem ",
	}

	SanitizeManualConditionRequest(request)

	assert.Equal(t, "Asthma", request.ConditionName)
	assert.Equal(t, "2020-01-01", request.RecordedDate)
	assert.Equal(t, "active", request.ClinicalStatus, "status should be lowercase")
	assert.Equal(t, "Problem", request.Category, "category case should be kept")
}

func TestSanitizeManualFamilyHistoryRequest(t *testing.T) {
	t.Run("Relationship And Gender", func(t *testing.T) {
		request := &requests.ManualFamilyHistory{
			Relationship: "  fATHER ",
			Gender:       " Male",
			BirthYear:    " 1950 ",
			Conditions:   []requests.FamilyHistoryCondition{{Title: "  Diabetes  "}},
		}

		SanitizeManualFamilyHistoryRequest(request)

		assert.Equal(t, "Father", request.Relationship, "relationship should be capitalized")
		assert.Equal(t, "male", request.Gender, "gender should be lowercase")
		assert.Equal(t, "1950", request.BirthYear)
		assert.Equal(t, "Diabetes", request.Conditions[0].Title, "condition titles should be trimmed")
	})

	t.Run("Empty Conditions", func(t *testing.T) {
		request := &requests.ManualFamilyHistory{Relationship: "mother", Conditions: []requests.FamilyHistoryCondition{}}

		SanitizeManualFamilyHistoryRequest(request)

		assert.Equal(t, "Mother", request.Relationship)
		assert.Equal(t, []requests.FamilyHistoryCondition{}, request.Conditions, "empty conditions should remain empty")
	})
}
