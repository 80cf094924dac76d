// Package docs registers the OpenAPI description of the HTTP API with swag.
// The template is maintained by hand next to the handler annotations;
// api.TestDocsCoverRoutes fails when it and the router disagree.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Service health"
            }
        },
        "/metrics": {
            "get": {
                "tags": ["monitoring"],
                "summary": "Prometheus metrics"
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in"
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Log out",
                "security": [{"BearerAuth": []}]
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register an account"
            }
        },
        "/me": {
            "get": {
                "tags": ["users"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}]
            }
        },
        "/users": {
            "get": {
                "tags": ["users"],
                "summary": "List users",
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["users"],
                "summary": "Provision a user",
                "security": [{"BearerAuth": []}]
            }
        },
        "/users/{id}": {
            "delete": {
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["stations"],
                "summary": "Dashboard",
                "security": [{"BearerAuth": []}]
            }
        },
        "/stations": {
            "get": {
                "tags": ["stations"],
                "summary": "List stations",
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["stations"],
                "summary": "Create a new station",
                "security": [{"BearerAuth": []}]
            }
        },
        "/stations/{id}": {
            "get": {
                "tags": ["stations"],
                "summary": "Get a station",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["stations"],
                "summary": "Update a station",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["stations"],
                "summary": "Delete a station",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/stations/{id}/sensors": {
            "get": {
                "tags": ["sensors"],
                "summary": "List sensors of a station",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["sensors"],
                "summary": "Add a sensor",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/stations/{id}/router": {
            "get": {
                "tags": ["router"],
                "summary": "Get the router of a station",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["router"],
                "summary": "Configure the router of a station",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["router"],
                "summary": "Configure the router of a station",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["router"],
                "summary": "Remove the router of a station",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/stations/{id}/details": {
            "get": {
                "tags": ["details"],
                "summary": "List technical details of a station",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["details"],
                "summary": "Add a technical detail",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/stations/{id}/breakdowns": {
            "get": {
                "tags": ["breakdowns"],
                "summary": "List breakdowns of a station",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["breakdowns"],
                "summary": "Report a breakdown",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/stations/{id}/interventions": {
            "get": {
                "tags": ["interventions"],
                "summary": "List interventions of a station",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "post": {
                "tags": ["interventions"],
                "summary": "Schedule an intervention",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/stations/{id}/interventions/completed": {
            "post": {
                "tags": ["interventions"],
                "summary": "Log a completed intervention",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/stations/{id}/history": {
            "get": {
                "tags": ["history"],
                "summary": "Station history",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/sensors/{id}": {
            "put": {
                "tags": ["sensors"],
                "summary": "Update a sensor",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["sensors"],
                "summary": "Delete a sensor",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/details/{id}": {
            "put": {
                "tags": ["details"],
                "summary": "Update a technical detail",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["details"],
                "summary": "Delete a technical detail",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/breakdowns/{id}": {
            "get": {
                "tags": ["breakdowns"],
                "summary": "Get a breakdown",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["breakdowns"],
                "summary": "Update a breakdown",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["breakdowns"],
                "summary": "Delete a breakdown",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/breakdowns/{id}/resolve": {
            "post": {
                "tags": ["breakdowns"],
                "summary": "Resolve a breakdown",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/interventions/{id}": {
            "get": {
                "tags": ["interventions"],
                "summary": "Get an intervention",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "put": {
                "tags": ["interventions"],
                "summary": "Update an intervention",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            },
            "delete": {
                "tags": ["interventions"],
                "summary": "Delete an intervention",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/interventions/{id}/complete": {
            "post": {
                "tags": ["interventions"],
                "summary": "Complete a scheduled intervention",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        },
        "/history/{id}": {
            "delete": {
                "tags": ["history"],
                "summary": "Purge a history record",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}]
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Station Hub API",
	Description:      "Monitoring station assets, faults, maintenance and their audit history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
