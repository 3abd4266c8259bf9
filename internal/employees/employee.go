// Package employees implements the employee registry: normalization of raw
// registration data, the registry record, and its data access.
package employees

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JaimeStill/roster/pkg/formatting"
)

// Text is a free-form input field. It accepts JSON strings, numbers and
// booleans as their literal text; null or a missing field is empty.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return fmt.Errorf("expected text, got %s", data[:1])
	default:
		*t = Text(data)
	}
	return nil
}

// RawRegistration is a registration as submitted by the client, before normalization.
type RawRegistration struct {
	RawFullName      Text `json:"rawfullname"`
	RawCodename      Text `json:"rawcodename"`
	Canac            Text `json:"canac"`
	Address          Text `json:"address"`
	RawNeighborhood  Text `json:"rawneighborhood"`
	RawCity          Text `json:"rawcity"`
	RawState         Text `json:"rawstate"`
	RawCPF           Text `json:"rawcpf"`
	RawRG            Text `json:"rawrg"`
	BirthDate        Text `json:"birthDate"`
	HiringDate       Text `json:"hiringDate"`
	EmergencyContact Text `json:"emergencyContact"`
	RawBloodType     Text `json:"rawbloodtype"`
	RawCellphone     Text `json:"rawcellphone"`
	Email            Text `json:"email"`
	RawCEP           Text `json:"rawcep"`
}

// Employee is a normalized registry record. Codename is its identity.
type Employee struct {
	Codename         string    `json:"codename"`
	FullName         string    `json:"fullname"`
	Canac            *string   `json:"canac,omitempty"`
	Address          string    `json:"address"`
	Neighborhood     string    `json:"neighborhood"`
	City             string    `json:"city"`
	State            *string   `json:"state,omitempty"`
	CPF              string    `json:"cpf"`
	RG               string    `json:"rg"`
	BirthDate        string    `json:"birthDate"`
	HiringDate       string    `json:"hiringDate"`
	EmergencyContact string    `json:"emergencyContact"`
	BloodType        string    `json:"bloodtype"`
	Cellphone        string    `json:"cellphone"`
	Email            string    `json:"email"`
	CEP              string    `json:"cep"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// MarshalJSON writes CreatedAt and UpdatedAt as DD/MM/YYYY.
func (e Employee) MarshalJSON() ([]byte, error) {
	type record Employee
	return json.Marshal(struct {
		record
		CreatedAt string `json:"createdAt"`
		UpdatedAt string `json:"updatedAt"`
	}{
		record:    record(e),
		CreatedAt: formatting.FormatDate(e.CreatedAt),
		UpdatedAt: formatting.FormatDate(e.UpdatedAt),
	})
}

// TemplateData flattens the record into the field names used by document
// templates. Optional fields absent from the record map to empty strings.
func (e *Employee) TemplateData() map[string]string {
	return map[string]string{
		"fullname":         e.FullName,
		"codename":         e.Codename,
		"canac":            deref(e.Canac),
		"address":          e.Address,
		"neighborhood":     e.Neighborhood,
		"city":             e.City,
		"state":            deref(e.State),
		"cpf":              e.CPF,
		"rg":               e.RG,
		"birthDate":        e.BirthDate,
		"hiringDate":       e.HiringDate,
		"emergencyContact": e.EmergencyContact,
		"bloodtype":        e.BloodType,
		"cellphone":        e.Cellphone,
		"email":            e.Email,
		"cep":              e.CEP,
		"createdAt":        formatting.FormatDate(e.CreatedAt),
		"updatedAt":        formatting.FormatDate(e.UpdatedAt),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
