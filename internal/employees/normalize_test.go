package employees_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/roster/internal/employees"
)

func TestNormalizeIdentity(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"joao123", "JOAO123"},
		{"joão123", "JOAO123"},
		{"Ações", "ACOES"},
		{"straße", "STRASSE"},
		{"Øystein", "OYSTEIN"},
		{"łukasz", "LUKASZ"},
		{"þór", "THOR"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := employees.NormalizeIdentity(tt.raw); got != tt.want {
				t.Errorf("NormalizeIdentity(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdentityIdempotent(t *testing.T) {
	inputs := []string{
		"joão da silva",
		"ÇÃÕ-ñ",
		"straße",
		"Œuvre Æsir",
		"ǅemal",
		"ﬁle",
		"İstanbul",
		"agent 007",
	}

	for _, raw := range inputs {
		once := employees.NormalizeIdentity(raw)
		twice := employees.NormalizeIdentity(once)
		if once != twice {
			t.Errorf("NormalizeIdentity not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"joão da silva", "João Da Silva"},
		{"  SÃO   paulo ", "São Paulo"},
		{"copacabana", "Copacabana"},
		{"MARIA DA SILVA", "Maria Da Silva"},
		{"McDonald", "Mcdonald"},
		{"são-paulo", "São-Paulo"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := employees.NormalizeTitle(tt.raw); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeRegion(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"rj", "RJ", true},
		{"Sp", "SP", true},
		{"é", "É", true},
		{"Rio de Janeiro", "RDJ", true},
		{"são paulo", "SP", true},
		{"Mato Grosso do Sul", "MGDS", true},
		{"Bahia", "B", true},
		{"  rio grande  ", "RG", true},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := employees.NormalizeRegion(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeRegion(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeDocumentNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"123.456.789-00", "12345678900"},
		{"mg-12.345.678", "MG12345678"},
		{"20040-002", "20040002"},
		{"x.-.-y", "XY"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := employees.NormalizeDocumentNumber(tt.raw)
			if got != tt.want {
				t.Errorf("NormalizeDocumentNumber(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			if strings.ContainsAny(got, ".-") {
				t.Errorf("result %q still contains separators", got)
			}
			if got != strings.ToUpper(got) {
				t.Errorf("result %q is not uppercase", got)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"(21) 99999-0000", "21999990000"},
		{"11 2222 3333", "112222 3333"},
		{"(11) 2222-3333-4", "1122223333-4"},
		{"21999990000", "21999990000"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := employees.NormalizePhone(tt.raw); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	raw := employees.RawRegistration{
		RawFullName:      "joão  da silva",
		RawCodename:      "joão123",
		Address:          "Rua A, 10",
		RawNeighborhood:  "copacabana",
		RawCity:          "rio de janeiro",
		RawState:         "Rio de Janeiro",
		RawCPF:           "123.456.789-00",
		RawRG:            "12.345.678-9",
		BirthDate:        "1990-01-01",
		HiringDate:       "2024-02-01",
		EmergencyContact: "Maria 21 98888-7777",
		RawBloodType:     "o+",
		RawCellphone:     "(21) 99999-0000",
		Email:            "joao@example.com",
		RawCEP:           "20040-002",
	}

	e := employees.Normalize(raw)

	checks := map[string][2]string{
		"codename":     {e.Codename, "JOAO123"},
		"fullname":     {e.FullName, "João Da Silva"},
		"neighborhood": {e.Neighborhood, "Copacabana"},
		"city":         {e.City, "Rio De Janeiro"},
		"cpf":          {e.CPF, "12345678900"},
		"rg":           {e.RG, "123456789"},
		"cep":          {e.CEP, "20040002"},
		"cellphone":    {e.Cellphone, "21999990000"},
		"bloodtype":    {e.BloodType, "O+"},
		"address":      {e.Address, "Rua A, 10"},
		"email":        {e.Email, "joao@example.com"},
		"contact":      {e.EmergencyContact, "Maria 21 98888-7777"},
	}

	for field, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s: got %q, want %q", field, c[0], c[1])
		}
	}

	if e.State == nil || *e.State != "RDJ" {
		t.Errorf("state: got %v, want RDJ", e.State)
	}
	if e.Canac != nil {
		t.Errorf("canac: got %q, want absent", *e.Canac)
	}
	if !e.CreatedAt.IsZero() || !e.UpdatedAt.IsZero() {
		t.Error("timestamps should be left for the registry to set")
	}
}

func TestNormalizeBlankStateIsAbsent(t *testing.T) {
	e := employees.Normalize(employees.RawRegistration{RawCodename: "x", RawState: "  "})
	if e.State != nil {
		t.Errorf("state: got %q, want absent", *e.State)
	}
}
