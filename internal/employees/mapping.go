package employees

import (
	"database/sql"
	"net/url"

	"github.com/JaimeStill/roster/pkg/query"
	"github.com/JaimeStill/roster/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "employees", "e").
	Project("codename", "Codename").
	Project("fullname", "FullName").
	Project("canac", "Canac").
	Project("address", "Address").
	Project("neighborhood", "Neighborhood").
	Project("city", "City").
	Project("state", "State").
	Project("cpf", "CPF").
	Project("rg", "RG").
	Project("birth_date", "BirthDate").
	Project("hiring_date", "HiringDate").
	Project("emergency_contact", "EmergencyContact").
	Project("bloodtype", "BloodType").
	Project("cellphone", "Cellphone").
	Project("email", "Email").
	Project("cep", "CEP").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for registry queries.
// Nil fields are ignored. State and BloodType use exact matching,
// City and Neighborhood use case-insensitive contains matching.
type Filters struct {
	City         *string `json:"city,omitempty"`
	Neighborhood *string `json:"neighborhood,omitempty"`
	State        *string `json:"state,omitempty"`
	BloodType    *string `json:"bloodtype,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("City", f.City).
		WhereContains("Neighborhood", f.Neighborhood).
		WhereEquals("State", f.State).
		WhereEquals("BloodType", f.BloodType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("city"); c != "" {
		f.City = &c
	}

	if n := values.Get("neighborhood"); n != "" {
		f.Neighborhood = &n
	}

	if s := values.Get("state"); s != "" {
		f.State = &s
	}

	if bt := values.Get("bloodtype"); bt != "" {
		f.BloodType = &bt
	}

	return f
}

func scanEmployee(s repository.Scanner) (Employee, error) {
	var (
		e     Employee
		canac sql.NullString
		state sql.NullString
	)

	err := s.Scan(
		&e.Codename,
		&e.FullName,
		&canac,
		&e.Address,
		&e.Neighborhood,
		&e.City,
		&state,
		&e.CPF,
		&e.RG,
		&e.BirthDate,
		&e.HiringDate,
		&e.EmergencyContact,
		&e.BloodType,
		&e.Cellphone,
		&e.Email,
		&e.CEP,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}

	if canac.Valid {
		e.Canac = &canac.String
	}
	if state.Valid {
		e.State = &state.String
	}
	return e, nil
}
