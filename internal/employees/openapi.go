package employees

import "github.com/JaimeStill/roster/pkg/openapi"

var listOp = &openapi.Operation{
	Summary: "List employees",
	Parameters: []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("search", "string", "Matches codename, name or city", false),
		openapi.QueryParam("sort", "string", "Sort fields, e.g. -CreatedAt,FullName", false),
		openapi.QueryParam("city", "string", "City contains", false),
		openapi.QueryParam("neighborhood", "string", "Neighborhood contains", false),
		openapi.QueryParam("state", "string", "Exact region abbreviation", false),
		openapi.QueryParam("bloodtype", "string", "Exact blood type", false),
	},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Page of employees", "EmployeePage"),
		500: openapi.ResponseRef("InternalError"),
	},
}

var searchOp = &openapi.Operation{
	Summary:     "Search employees",
	RequestBody: openapi.RequestBodyJSON("EmployeeSearch", true),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Page of employees", "EmployeePage"),
		400: openapi.ResponseRef("BadRequest"),
		413: openapi.ResponseRef("PayloadTooLarge"),
		500: openapi.ResponseRef("InternalError"),
	},
}

var findOp = &openapi.Operation{
	Summary:    "Find an employee by codename",
	Parameters: []*openapi.Parameter{openapi.PathParam("codename", "Employee codename")},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Employee record", "Employee"),
		404: openapi.ResponseRef("NotFound"),
		500: openapi.ResponseRef("InternalError"),
	},
}

// Schemas returns the component schemas referenced by registry operations.
func Schemas() map[string]*openapi.Schema {
	str := &openapi.Schema{Type: "string"}
	date := &openapi.Schema{Type: "string", Description: "DD/MM/YYYY"}

	return map[string]*openapi.Schema{
		"RawRegistration": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"rawfullname":      str,
				"rawcodename":      {Type: "string", Example: "joao123"},
				"canac":            str,
				"address":          str,
				"rawneighborhood":  str,
				"rawcity":          str,
				"rawstate":         {Type: "string", Example: "Rio de Janeiro"},
				"rawcpf":           {Type: "string", Example: "123.456.789-00"},
				"rawrg":            str,
				"birthDate":        str,
				"hiringDate":       str,
				"emergencyContact": str,
				"rawbloodtype":     str,
				"rawcellphone":     {Type: "string", Example: "(21) 99999-0000"},
				"email":            str,
				"rawcep":           str,
			},
			Required: []string{"rawcodename"},
		},
		"Employee": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"codename":         {Type: "string", Example: "JOAO123"},
				"fullname":         str,
				"canac":            str,
				"address":          str,
				"neighborhood":     str,
				"city":             str,
				"state":            {Type: "string", Example: "RDJ"},
				"cpf":              {Type: "string", Example: "12345678900"},
				"rg":               str,
				"birthDate":        str,
				"hiringDate":       str,
				"emergencyContact": str,
				"bloodtype":        str,
				"cellphone":        str,
				"email":            str,
				"cep":              str,
				"createdAt":        date,
				"updatedAt":        date,
			},
		},
		"EmployeePage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Employee")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"EmployeeSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":         {Type: "integer"},
				"page_size":    {Type: "integer"},
				"search":       str,
				"sort":         str,
				"city":         str,
				"neighborhood": str,
				"state":        str,
				"bloodtype":    str,
			},
		},
	}
}
