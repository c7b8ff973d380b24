// Package docs registers the Swagger document served under /swagger.
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
        "/api/batches": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Batches with center, teacher and course names and the number of enrolled students",
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "List batches",
                "responses": {
                    "200": {"description": "success, data", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "DB_ERROR", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Allocates the next batch sequence number and names the batch B<seq>-<COURSE>-<from>-<to>",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Create a batch",
                "parameters": [
                    {"description": "Batch", "name": "batch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.BatchRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created batch", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "MISSING_FIELDS, INVALID_TIME, INVALID_COURSE", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "NO_AUTH_HEADER, INVALID_TOKEN", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "FORBIDDEN_ROLE", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "DB_ERROR", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/batches/approve": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Issues a registration number ISML<STATE2><CENTER2><RAND4> and queues the approval email",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Approve a student",
                "parameters": [
                    {"description": "Student", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ApproveRequest"}}
                ],
                "responses": {
                    "200": {"description": "Approved student", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "VALIDATION_ERROR, ALREADY_APPROVED", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "STUDENT_NOT_FOUND", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "DB_ERROR", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/batches/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Get a batch",
                "parameters": [{"type": "integer", "description": "Batch ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Batch"}},
                    "404": {"description": "BATCH_NOT_FOUND", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Rewrites the batch and its name; the sequence number is kept",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Update a batch",
                "parameters": [
                    {"type": "integer", "description": "Batch ID", "name": "id", "in": "path", "required": true},
                    {"description": "Batch", "name": "batch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.BatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated batch", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "BATCH_NOT_FOUND", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["batches"],
                "summary": "Delete a batch",
                "parameters": [{"type": "integer", "description": "Batch ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}},
                    "404": {"description": "BATCH_NOT_FOUND", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/courses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "List courses",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Course"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Create a course",
                "parameters": [
                    {"description": "Course", "name": "course", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created course", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "VALIDATION_ERROR", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/notes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "List the notes of a batch",
                "parameters": [{"type": "integer", "description": "Batch ID", "name": "batch_id", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Note"}}},
                    "400": {"description": "VALIDATION_ERROR", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Create a note",
                "parameters": [
                    {"description": "Note", "name": "note", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.NoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created note", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/gmeets": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["gmeets"],
                "summary": "Schedule a meet",
                "parameters": [
                    {"description": "Meet", "name": "meet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.GMeetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created meet", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "VALIDATION_ERROR, INVALID_REFERENCE", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/gmeets/{batch_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["gmeets"],
                "summary": "List the meets of a batch",
                "parameters": [{"type": "integer", "description": "Batch ID", "name": "batch_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.GMeet"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ApproveRequest": {
            "type": "object",
            "required": ["student_id"],
            "properties": {"student_id": {"type": "integer", "example": 42}}
        },
        "handlers.BatchRequest": {
            "type": "object",
            "required": ["center", "course_id", "duration", "teacher", "time_from", "time_to"],
            "properties": {
                "center": {"type": "integer", "example": 3},
                "course_id": {"type": "integer", "example": 7},
                "duration": {"type": "string", "example": "6 months"},
                "teacher": {"type": "integer", "example": 12},
                "time_from": {"type": "string", "example": "09:00"},
                "time_to": {"type": "string", "example": "10:30"}
            }
        },
        "handlers.CourseRequest": {
            "type": "object",
            "required": ["course_name", "duration", "language", "level", "mode", "program", "type"],
            "properties": {
                "course_name": {"type": "string", "example": "German"},
                "duration": {"type": "number", "example": 3},
                "language": {"type": "string", "example": "English"},
                "level": {"type": "string", "example": "A1"},
                "mode": {"type": "string", "example": "Online"},
                "program": {"type": "string", "example": "Language"},
                "type": {"type": "string", "example": "Regular"}
            }
        },
        "handlers.GMeetRequest": {
            "type": "object",
            "required": ["batch_id", "current", "date", "meet_link", "time", "title"],
            "properties": {
                "batch_id": {"type": "integer", "example": 5},
                "current": {"type": "boolean", "example": true},
                "date": {"type": "string", "example": "2025-03-01"},
                "meet_link": {"type": "string", "example": "https://meet.google.com/abc-defg-hij"},
                "note": {"type": "string", "example": "Bring chapter 3"},
                "time": {"type": "string", "example": "18:30"},
                "title": {"type": "string", "example": "Grammar review"}
            }
        },
        "handlers.NoteRequest": {
            "type": "object",
            "required": ["batch_id"],
            "properties": {
                "batch_id": {"type": "integer", "example": 5},
                "link": {"type": "string", "example": "https://drive.google.com/file/d/xyz"},
                "note": {"type": "string", "example": "Read before Monday"},
                "title": {"type": "string", "example": "Week 1 vocabulary"}
            }
        },
        "models.Batch": {
            "type": "object",
            "properties": {
                "batch_id": {"type": "integer"},
                "batch_name": {"type": "string"},
                "center": {"type": "integer"},
                "course": {"$ref": "#/definitions/models.Course"},
                "course_id": {"type": "integer"},
                "created_at": {"type": "string"},
                "duration": {"type": "string"},
                "teacher": {"type": "integer"},
                "time_from": {"type": "string"},
                "time_to": {"type": "string"}
            }
        },
        "models.Course": {
            "type": "object",
            "properties": {
                "course_name": {"type": "string"},
                "duration": {"type": "number"},
                "id": {"type": "integer"},
                "language": {"type": "string"},
                "level": {"type": "string"},
                "mode": {"type": "string"},
                "program": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "models.GMeet": {
            "type": "object",
            "properties": {
                "batch_id": {"type": "integer"},
                "created_at": {"type": "string"},
                "current": {"type": "boolean"},
                "date": {"type": "string"},
                "meet_id": {"type": "integer"},
                "meet_link": {"type": "string"},
                "note": {"type": "string"},
                "time": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "models.Note": {
            "type": "object",
            "properties": {
                "batch_id": {"type": "integer"},
                "created_at": {"type": "string"},
                "link": {"type": "string"},
                "note": {"type": "string"},
                "notes_id": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "INVALID_COURSE"},
                "details": {"type": "string"},
                "error": {"type": "string", "example": "Invalid course ID"}
            }
        },
        "response.SuccessResponse": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "Batch deleted successfully"}}
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ISML back office API",
	Description:      "Batches, courses, meets, notes and student approval for the ISML academic staff.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
