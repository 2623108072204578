package types

import (
	"fmt"
	"strings"
)

// LabelService defines the interface for label API operations
type LabelService interface {
	CheckKeyAvailable(key string) (ExistenceResult, error)
	CreateLabel(payload CreateLabelRequest) (CreationOutcome, error)
}

// LabelType is the label type accepted by the labels endpoint
const LabelType = "VERACODE"

// Core data models

// LabelSpec represents one label definition parsed from an input line
type LabelSpec struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// IsValid checks if the label spec has the minimum required fields
func (s *LabelSpec) IsValid() bool {
	return s.Key != ""
}

// String returns a string representation of the label spec
func (s *LabelSpec) String() string {
	if len(s.Values) > 0 {
		return fmt.Sprintf("%s (%s)", s.Key, strings.Join(s.Values, ", "))
	}
	return s.Key
}

// Availability classifies the platform's answer to a key availability check
type Availability string

const (
	// AvailabilityAvailable means the key is free and the label can be created
	AvailabilityAvailable Availability = "available"
	// AvailabilityTaken means a label with this key already exists in the tenant
	AvailabilityTaken Availability = "taken"
	// AvailabilityUnknown means the platform answered with something other
	// than the literal strings "true" or "false"
	AvailabilityUnknown Availability = "unknown"
)

// ExistenceResult represents the outcome of a key availability check
type ExistenceResult struct {
	Availability Availability `json:"availability"`
	Raw          string       `json:"raw"`
}

// CreationOutcome represents the platform's response to a label creation call
type CreationOutcome struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}

// API request models

// LabelValue is one permitted value inside a label creation payload
type LabelValue struct {
	Value string `json:"value"`
}

// LabelSettings carries the behavior flags of a label definition
type LabelSettings struct {
	ValueRequired    bool `json:"valueRequired"`
	ValuesManagement bool `json:"valuesManagement"`
}

// CreateLabelRequest represents the JSON body posted to the label creation endpoint
type CreateLabelRequest struct {
	Key             string        `json:"key"`
	Type            string        `json:"type"`
	Description     string        `json:"description"`
	AvailableValues []LabelValue  `json:"availableValues"`
	Settings        LabelSettings `json:"settings"`
}
