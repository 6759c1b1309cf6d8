package utils

import (
	"regexp"
	"theracare-service/internal/pkg/constvars"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("record_category", validateRecordCategory)
	validate.RegisterValidation("fhir_date", validateFhirDate)
	validate.RegisterValidation("year", validateYear)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar validates a single value such as a URL param against a tag.
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	hasMinLen := len(password) >= 8
	hasSpecialChar := regexp.MustCompile(constvars.RegexContainAtLeastOneSpecialChar).MatchString(password)
	hasUppercase := regexp.MustCompile(constvars.RegexContainAtLeastOneUppercase).MatchString(password)
	return hasMinLen && hasSpecialChar && hasUppercase
}

func validateRecordCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.RecordCategoryConditions || value == constvars.RecordCategoryFamilyHistory
}

func validateFhirDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !regexp.MustCompile(constvars.RegexDateYYYYMMDD).MatchString(value) {
		return false
	}
	_, err := time.Parse(constvars.FhirDateFormat, value)
	return err == nil
}

func validateYear(fl validator.FieldLevel) bool {
	return regexp.MustCompile(constvars.RegexYear).MatchString(fl.Field().String())
}
