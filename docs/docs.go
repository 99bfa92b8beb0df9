// Package docs registers the OpenAPI document served at /swagger/*.
// The handler annotations in internal/http/handler describe the same routes.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Submit an upload",
                "parameters": [
                    {"type": "string", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Fiscal year id, e.g. 2024-2025", "name": "fiscalYear", "in": "formData", "required": true},
                    {"type": "string", "name": "source", "in": "formData", "required": true},
                    {"type": "string", "name": "grantType", "in": "formData", "required": true},
                    {"type": "string", "name": "remarks", "in": "formData"},
                    {"type": "file", "description": "A4 documents (.pdf)", "name": "a4Files", "in": "formData"},
                    {"type": "file", "description": "Nepali documents (.pdf,.doc,.docx)", "name": "nepaliFiles", "in": "formData"},
                    {"type": "file", "description": "Extra documents (.pdf,.xls,.xlsx,.csv)", "name": "extraFiles", "in": "formData"},
                    {"type": "file", "description": "Other documents", "name": "otherFiles", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.File"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/fiscal-years": {
            "get": {
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "List fiscal years",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.FiscalYear"}}}}
            }
        },
        "/api/sources": {
            "get": {
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "List funding sources",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Source"}}}}
            }
        },
        "/api/grant-types": {
            "get": {
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "List grant types",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.GrantType"}}}}
            }
        },
        "/api/files": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "List uploaded files",
                "parameters": [
                    {"type": "integer", "default": 10, "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"},
                    {"type": "string", "name": "fiscalYear", "in": "query"},
                    {"type": "string", "name": "source", "in": "query"},
                    {"type": "string", "name": "grantType", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.FileListResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/files/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Get a file with its documents",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.File"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "tags": ["files"],
                "summary": "Delete a file and its stored documents",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/files/{id}/documents/{docId}/url": {
            "get": {
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Pre-signed download URL for one document",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "docId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/files/{id}/documents/{docId}/download": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["files"],
                "summary": "Download one document",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "docId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/reports": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "List generated reports",
                "parameters": [
                    {"type": "integer", "default": 10, "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ReportListResult"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Generate a fiscal year report",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.generateReportRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Report"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/sync-logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sync-logs"],
                "summary": "List storage sync attempts, newest first",
                "parameters": [
                    {"type": "integer", "default": 10, "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SyncLogListResult"}}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.generateReportRequest": {
            "type": "object",
            "properties": {"fiscalYear": {"type": "string"}}
        },
        "model.Document": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "file_id": {"type": "string"},
                "category": {"type": "string", "enum": ["a4Files", "nepaliFiles", "extraFiles", "otherFiles"]},
                "filename": {"type": "string"},
                "original_filename": {"type": "string"},
                "storage_path": {"type": "string"},
                "size": {"type": "integer"},
                "content_type": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "model.File": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "fiscal_year_id": {"type": "string"},
                "source": {"type": "string"},
                "grant_type": {"type": "string"},
                "remarks": {"type": "string"},
                "uploaded_by": {"type": "string"},
                "created_at": {"type": "string"},
                "documents": {"type": "array", "items": {"$ref": "#/definitions/model.Document"}}
            }
        },
        "model.FiscalYear": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}}
        },
        "model.GrantType": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
        },
        "model.Report": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "fiscal_year_id": {"type": "string"},
                "total_files": {"type": "integer"},
                "total_documents": {"type": "integer"},
                "total_bytes": {"type": "integer"},
                "by_source": {"type": "object", "additionalProperties": {"type": "integer"}},
                "by_grant_type": {"type": "object", "additionalProperties": {"type": "integer"}},
                "generated_at": {"type": "string"}
            }
        },
        "model.Source": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
        },
        "model.SyncLog": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "file_id": {"type": "string"},
                "action": {"type": "string", "enum": ["upload", "delete"]},
                "status": {"type": "string", "enum": ["success", "failed"]},
                "message": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "service.FileListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.File"}},
                "total": {"type": "integer"}
            }
        },
        "service.ReportListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Report"}},
                "total": {"type": "integer"}
            }
        },
        "service.SyncLogListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.SyncLog"}},
                "total": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Grant Documents API",
	Description:      "Upload, categorize and track grant and budget documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
