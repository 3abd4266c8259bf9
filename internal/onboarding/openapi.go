package onboarding

import "github.com/JaimeStill/roster/pkg/openapi"

var registerResponses = map[int]*openapi.Response{
	200: openapi.ResponseJSON("Document generated and published", "Created"),
	400: {
		Description: "Duplicate codename, undecodable body or empty codename",
		Content: map[string]*openapi.MediaType{
			"application/json": {Schema: openapi.SchemaRef("Duplicate")},
		},
	},
	413: openapi.ResponseRef("PayloadTooLarge"),
	500: openapi.ResponseRef("InternalError"),
	502: openapi.ResponseJSON("Record committed but the artifact could not be stored", "Degraded"),
}

var registerOp = &openapi.Operation{
	Summary:     "Register an employee",
	Description: "Normalizes the submission, records it when the codename is new and publishes the employee document as PDF.",
	RequestBody: openapi.RequestBodyJSON("RawRegistration", true),
	Responses:   registerResponses,
}

var registerAliasOp = &openapi.Operation{
	Summary:     "Register an employee (alias)",
	RequestBody: openapi.RequestBodyJSON("RawRegistration", true),
	Responses:   registerResponses,
}

var regenerateOp = &openapi.Operation{
	Summary:    "Regenerate an employee document",
	Parameters: []*openapi.Parameter{openapi.PathParam("codename", "Employee codename")},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Document generated and published", "Created"),
		400: openapi.ResponseRef("BadRequest"),
		404: openapi.ResponseRef("NotFound"),
		500: openapi.ResponseRef("InternalError"),
		502: openapi.ResponseJSON("The artifact could not be stored", "Degraded"),
	},
}

// Schemas returns the component schemas referenced by pipeline operations.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Created": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"message": {Type: "string", Example: CreatedMessage},
				"url":     {Type: "string", Format: "uri"},
			},
			Required: []string{"message", "url"},
		},
		"Duplicate": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"message":               {Type: "string", Example: "Employee (JOAO123) already exists! Last updated at: 05/03/2024"},
				"employeeAlreadyExists": openapi.SchemaRef("Employee"),
			},
			Required: []string{"message"},
		},
		"Degraded": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"message":  {Type: "string"},
				"codename": {Type: "string"},
			},
			Required: []string{"message", "codename"},
		},
	}
}
