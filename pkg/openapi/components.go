package openapi

import "maps"

// NewComponents creates Components with shared schemas and error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Search query"},
					"sort":      {Type: "string", Description: "Comma-separated sort fields. Prefix with - for descending. Example: name,-created_at"},
				},
			},
			"Message": {
				Type: "object",
				Properties: map[string]*Schema{
					"message": {Type: "string", Description: "Human readable outcome"},
				},
				Required: []string{"message"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":      messageResponse("Invalid request"),
			"NotFound":        messageResponse("Resource not found"),
			"PayloadTooLarge": messageResponse("Request body exceeds the configured limit"),
			"InternalError":   messageResponse("Unexpected server failure"),
		},
	}
}

func messageResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Message")},
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
