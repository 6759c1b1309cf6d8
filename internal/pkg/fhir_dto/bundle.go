package fhir_dto

import "github.com/goccy/go-json"

type FHIRBundle struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id,omitempty"`
	Type         string            `json:"type"`
	Total        int               `json:"total"`
	Entry        []json.RawMessage `json:"entry"`
}
