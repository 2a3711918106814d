// Package docs holds the OpenAPI description of the screener JSON API served at /swagger.
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
        "/screener": {
            "get": {
                "description": "Returns the rendered rows for the view state given in the query string.",
                "produces": ["application/json"],
                "tags": ["screener"],
                "summary": "Get the screener view",
                "parameters": [
                    {"type": "string", "description": "Text filter on ticker or company", "name": "q", "in": "query"},
                    {"type": "string", "description": "Sector filter, ALL disables it", "name": "sector", "in": "query"},
                    {"type": "boolean", "description": "Keep only passing rows", "name": "only_pass", "in": "query"},
                    {"type": "string", "description": "Sort key, score by default", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "1 ascending, -1 descending (default)", "name": "dir", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PageView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/screener/refresh": {
            "post": {
                "description": "Fetches the dataset again, bypassing caches. On failure the previous rows are kept.",
                "produces": ["application/json"],
                "tags": ["screener"],
                "summary": "Reload the dataset",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PageView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/screener/sort/{key}": {
            "post": {
                "description": "Applies a header click to the view state in the query string: the active key flips direction, any other key sorts descending.",
                "produces": ["application/json"],
                "tags": ["screener"],
                "summary": "Click a sortable header",
                "parameters": [
                    {"type": "string", "description": "Row attribute", "name": "key", "in": "path", "required": true},
                    {"type": "string", "description": "Current sort key", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "Current sort direction", "name": "dir", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PageView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.Cell": {
            "type": "object",
            "properties": {
                "class": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "dto.Column": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"},
                "direction": {"type": "string"},
                "key": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "dto.PageView": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"$ref": "#/definitions/dto.Column"}},
                "loaded_at": {"type": "string"},
                "only_pass": {"type": "boolean"},
                "query": {"type": "string"},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/dto.ViewRow"}},
                "sector": {"type": "string"},
                "sectors": {"type": "array", "items": {"$ref": "#/definitions/dto.SectorOption"}},
                "sort_dir": {"type": "integer"},
                "sort_key": {"type": "string"},
                "status": {"type": "string"},
                "total_count": {"type": "integer"}
            }
        },
        "dto.SectorOption": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "selected": {"type": "boolean"},
                "value": {"type": "string"}
            }
        },
        "dto.ViewRow": {
            "type": "object",
            "properties": {
                "company": {"type": "string"},
                "ma50": {"type": "string"},
                "p_vs_ma50": {"$ref": "#/definitions/dto.Cell"},
                "price": {"type": "string"},
                "relvol": {"$ref": "#/definitions/dto.Cell"},
                "ret3m": {"$ref": "#/definitions/dto.Cell"},
                "rsi": {"type": "string"},
                "score": {"type": "string"},
                "sector": {"type": "string"},
                "ticker": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "S&P 500 Screener API",
	Description:      "Filterable, sortable view over the momentum screening dataset.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
