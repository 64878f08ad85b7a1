// Package comply holds the generated OpenAPI document for the service.
// Regenerate with:
//
//	swag init -g internal/comply/http/router.go -o api/comply
package comply

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "ClauseHQ Team",
            "url": "https://github.com/clausehq/comply"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check Endpoint",
                "responses": {
                    "200": {
                        "description": "status, uptime, version",
                        "schema": {"$ref": "#/definitions/complysdk.HealthResponse"}
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {
                        "description": "status, uptime, version",
                        "schema": {"$ref": "#/definitions/complysdk.HealthResponse"}
                    },
                    "503": {
                        "description": "service not ready",
                        "schema": {"$ref": "#/definitions/complysdk.HealthResponse"}
                    }
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Login Endpoint",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/complysdk.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "token, member",
                        "schema": {"$ref": "#/definitions/complysdk.LoginResponse"}
                    },
                    "401": {
                        "description": "error",
                        "schema": {"$ref": "#/definitions/complysdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/invitations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "List Invitations Endpoint",
                "responses": {
                    "200": {
                        "description": "invitations",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/complysdk.Invitation"}
                        }
                    }
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Send Invitation Endpoint",
                "parameters": [
                    {
                        "description": "Invitation request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/complysdk.SendInvitationRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "success, invitationUrl, message",
                        "schema": {"$ref": "#/definitions/complysdk.SendInvitationResponse"}
                    },
                    "400": {
                        "description": "error",
                        "schema": {"$ref": "#/definitions/complysdk.ErrorResponse"}
                    },
                    "409": {
                        "description": "error",
                        "schema": {"$ref": "#/definitions/complysdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/invitations/validate": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Validate Invitation Endpoint",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Invitation token",
                        "name": "token",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "valid, email, organisationName, expiresAt",
                        "schema": {"$ref": "#/definitions/complysdk.ValidateInvitationResponse"}
                    },
                    "404": {
                        "description": "error",
                        "schema": {"$ref": "#/definitions/complysdk.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/invitations/accept": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Accept Invitation Endpoint",
                "parameters": [
                    {
                        "description": "Acceptance request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/complysdk.AcceptInvitationRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "token, member",
                        "schema": {"$ref": "#/definitions/complysdk.AcceptInvitationResponse"}
                    },
                    "400": {
                        "description": "error",
                        "schema": {"$ref": "#/definitions/complysdk.ErrorResponse"}
                    },
                    "404": {
                        "description": "error",
                        "schema": {"$ref": "#/definitions/complysdk.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "complysdk.AcceptInvitationRequest": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "fullName": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "password": {"type": "string"},
                "confirmPassword": {"type": "string"}
            }
        },
        "complysdk.AcceptInvitationResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "member": {"$ref": "#/definitions/complysdk.Member"}
            }
        },
        "complysdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "complysdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "complysdk.Invitation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "invitedBy": {"type": "string"},
                "status": {"type": "string"},
                "expiresAt": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "complysdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "complysdk.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "member": {"$ref": "#/definitions/complysdk.Member"}
            }
        },
        "complysdk.Member": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "organisationId": {"type": "string"},
                "email": {"type": "string"},
                "fullName": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "role": {"type": "string"},
                "roleLabel": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "complysdk.SendInvitationRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        },
        "complysdk.SendInvitationResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "invitationUrl": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "complysdk.ValidateInvitationResponse": {
            "type": "object",
            "properties": {
                "valid": {"type": "boolean"},
                "email": {"type": "string"},
                "organisationName": {"type": "string"},
                "expiresAt": {"type": "string"}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Compliance Tracking Service API",
	Description:      "Multi-tenant compliance record tracking with invitation-based membership.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
