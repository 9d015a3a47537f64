// Package docs registers the OpenAPI document served under /swagger. Keep it
// in step with the swag annotations on the handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
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
        "/auth/callback": {
            "get": {
                "description": "Exchanges the authorization code, caches the user's token and returns a session token.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Complete Microsoft sign-in",
                "parameters": [
                    {"type": "string", "description": "Authorization code", "name": "code", "in": "query", "required": true},
                    {"type": "string", "description": "State issued by /auth/login", "name": "state", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            }
        },
        "/auth/login": {
            "get": {
                "description": "Redirects the browser to the Microsoft authorization endpoint.",
                "tags": ["auth"],
                "summary": "Start Microsoft sign-in",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Forgets the caller's cached Microsoft token.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MessageResponse"}}}
            }
        },
        "/download-file": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Download the latest generated file of a type",
                "parameters": [
                    {"type": "string", "default": "ppt", "description": "ppt, doc or excel", "name": "file_type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            }
        },
        "/files/{name}": {
            "get": {
                "tags": ["documents"],
                "summary": "Download a generated file",
                "parameters": [
                    {"type": "string", "description": "File name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            }
        },
        "/generate-doc": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.wordprocessingml.document"],
                "tags": ["documents"],
                "summary": "Generate and download a Word document",
                "parameters": [
                    {"type": "string", "description": "Title", "name": "title", "in": "query"},
                    {"type": "string", "description": "Body text", "name": "body", "in": "query"},
                    {"type": "string", "description": "Prompt used when body is empty", "name": "prompt", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/generate-document": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Builds a pptx, docx or xlsx file from sections, a body, or text generated from a prompt.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Generate an office document",
                "parameters": [
                    {"description": "Document content", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.GenerateDocumentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.DocumentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            }
        },
        "/generate-excel": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["documents"],
                "summary": "Generate and download a spreadsheet",
                "parameters": [
                    {"type": "string", "description": "Title", "name": "title", "in": "query"},
                    {"type": "string", "description": "Body text", "name": "body", "in": "query"},
                    {"type": "string", "description": "Prompt used when body is empty", "name": "prompt", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/generate-file": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Builds the file from the given sections and stores it in the caller's OneDrive root.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Generate a file and upload it to OneDrive",
                "parameters": [
                    {"description": "File content", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.GenerateFileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.UploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            }
        },
        "/generate-ppt": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.presentationml.presentation"],
                "tags": ["documents"],
                "summary": "Generate and download a presentation",
                "parameters": [
                    {"type": "string", "description": "Title", "name": "title", "in": "query"},
                    {"type": "string", "description": "Body text", "name": "body", "in": "query"},
                    {"type": "string", "description": "Prompt used when body is empty", "name": "prompt", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/generate-text": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Returns a chat completion for the prompt. Failures are reported, never replaced with placeholder text.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["generation"],
                "summary": "Generate text",
                "parameters": [
                    {"description": "Prompt", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.GenerateTextRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.GenerateTextResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/common.AppError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "get the status of server",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Show the status of server",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MessageResponse"}}}
            }
        },
        "/send-email": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Sends mail from the signed-in user's mailbox through Microsoft Graph.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["mail"],
                "summary": "Send an email",
                "parameters": [
                    {"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.SendEmailRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.AppError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.AppError"}}
                }
            }
        }
    },
    "definitions": {
        "common.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "model.DocumentResponse": {
            "type": "object",
            "properties": {
                "download_url": {"type": "string"},
                "file_name": {"type": "string"},
                "format": {"type": "string"}
            }
        },
        "model.GenerateDocumentRequest": {
            "type": "object",
            "required": ["format", "title"],
            "properties": {
                "body": {"type": "string"},
                "format": {"type": "string"},
                "prompt": {"type": "string"},
                "sections": {"type": "array", "items": {"$ref": "#/definitions/model.Section"}},
                "title": {"type": "string", "maxLength": 255}
            }
        },
        "model.GenerateFileRequest": {
            "type": "object",
            "required": ["content"],
            "properties": {
                "content": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/model.Section"}},
                "file_type": {"type": "string"},
                "title": {"type": "string", "maxLength": 255}
            }
        },
        "model.GenerateTextRequest": {
            "type": "object",
            "required": ["prompt"],
            "properties": {
                "max_tokens": {"type": "integer", "maximum": 8192, "minimum": 1},
                "prompt": {"type": "string"}
            }
        },
        "model.GenerateTextResponse": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "model.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "model.Section": {
            "type": "object",
            "properties": {
                "body": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "model.SendEmailRequest": {
            "type": "object",
            "required": ["body", "subject", "to"],
            "properties": {
                "body": {"type": "string"},
                "cc": {"type": "array", "items": {"type": "string"}},
                "content_type": {"type": "string", "enum": ["Text", "HTML"]},
                "subject": {"type": "string", "maxLength": 255},
                "to": {"type": "array", "minItems": 1, "items": {"type": "string"}}
            }
        },
        "model.SessionResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "expires_at": {"type": "string"},
                "session_token": {"type": "string"}
            }
        },
        "model.UploadResponse": {
            "type": "object",
            "properties": {
                "file_url": {"type": "string"},
                "message": {"type": "string"}
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
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Office Graph API",
	Description:      "Signs users in with Microsoft, sends mail through Graph, generates text and office documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
