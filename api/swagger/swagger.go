package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "MRP Capacity API",
        "description": "Shift capacity checks and production order planning",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Capacity", "description": "Shift windows and capacity checks"},
        {"name": "ProductionOrders", "description": "Check and plan manufacturing orders"},
        {"name": "Allocations", "description": "Planning slots booked on work centers"},
        {"name": "WorkCenters", "description": "Cached work center registry"},
        {"name": "Ops", "description": "Operational endpoints"}
    ],
    "paths": {
        "/shifts": {
            "get": {
                "tags": ["Capacity"],
                "summary": "List the shift windows",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/capacity/evaluate": {
            "post": {
                "tags": ["Capacity"],
                "summary": "Check whether a duration fits in one shift on one date",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CapacityCheckRequest"}},
                    {"name": "X-Timezone", "in": "header", "type": "string"},
                    {"name": "Accept-Language", "in": "header", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Verdict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown shift or bad payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/capacity/search": {
            "post": {
                "tags": ["Capacity"],
                "summary": "Find the first date within the horizon where a duration fits",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CapacitySearchRequest"}},
                    {"name": "X-Timezone", "in": "header", "type": "string"},
                    {"name": "Accept-Language", "in": "header", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "First available date", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Incomplete request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No capacity within the horizon", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/production-orders/{id}/check": {
            "post": {
                "tags": ["ProductionOrders"],
                "summary": "Check capacity for a production order's requested shift",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No capacity", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/production-orders/{id}/plan": {
            "post": {
                "tags": ["ProductionOrders"],
                "summary": "Plan a production order on the first date with capacity",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "async", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "Planned", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "202": {"description": "Queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No capacity or order not plannable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Planning queue full", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/production-orders/{id}/work-center": {
            "put": {
                "tags": ["ProductionOrders"],
                "summary": "Change the requested work center of a production order",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignWorkCenterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planning-jobs/{id}": {
            "get": {
                "tags": ["ProductionOrders"],
                "summary": "Get the state of an asynchronous plan job",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/allocations": {
            "get": {
                "tags": ["Allocations"],
                "summary": "List planning slots of a work center",
                "parameters": [
                    {"name": "workcenter_id", "in": "query", "required": true, "type": "string"},
                    {"name": "shift_type", "in": "query", "type": "string", "enum": ["1", "2", "3"]},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Allocations"],
                "summary": "Book a planning slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAllocationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Shift already booked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/work-centers/{id}": {
            "get": {
                "tags": ["WorkCenters"],
                "summary": "Resolve a work center",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/work-centers/{id}/cache": {
            "delete": {
                "tags": ["WorkCenters"],
                "summary": "Drop the cached copy of a work center",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Ops"],
                "summary": "In-process metrics summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CapacityCheckRequest": {
            "type": "object",
            "properties": {
                "workcenter_id": {"type": "string"},
                "shift_type": {"type": "string", "enum": ["1", "2", "3"]},
                "date": {"type": "string", "format": "date"},
                "duration_minutes": {"type": "number"},
                "timezone": {"type": "string", "example": "Asia/Tehran"}
            }
        },
        "CapacitySearchRequest": {
            "type": "object",
            "properties": {
                "workcenter_id": {"type": "string"},
                "shift_type": {"type": "string", "enum": ["1", "2", "3"]},
                "date": {"type": "string", "format": "date"},
                "duration_minutes": {"type": "number"},
                "timezone": {"type": "string"},
                "horizon_days": {"type": "integer", "minimum": 1, "maximum": 366}
            }
        },
        "AssignWorkCenterRequest": {
            "type": "object",
            "required": ["workcenter_id"],
            "properties": {
                "workcenter_id": {"type": "string"},
                "shift_type": {"type": "string", "enum": ["1", "2", "3"]},
                "date": {"type": "string", "format": "date"},
                "duration_minutes": {"type": "number"}
            }
        },
        "CreateAllocationRequest": {
            "type": "object",
            "required": ["workcenter_id", "shift_type", "start_datetime", "end_datetime"],
            "properties": {
                "workcenter_id": {"type": "string"},
                "shift_type": {"type": "string", "enum": ["1", "2", "3"]},
                "start_datetime": {"type": "string", "format": "date-time"},
                "end_datetime": {"type": "string", "format": "date-time"},
                "allocated_minutes": {"type": "number"},
                "production_id": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
