// Package docs holds the swaggo/swag-generated Swagger spec for the HTTP
// API. In a normal build this file is regenerated by `swag init` from the
// @-annotations in internal/api; it is hand-maintained here to keep the
// Swagger UI at /docs/ functional without requiring the swag CLI at build
// time.
package docs

import (
	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "NFL Monte Carlo Simulator API",
	Description:      "Playoff, division, and seed probability simulation for a partially completed NFL season.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

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
        "/teams": {
            "get": {
                "tags": ["teams"],
                "summary": "List teams",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/schedule": {
            "get": {
                "tags": ["schedule"],
                "summary": "List schedule",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/standings": {
            "get": {
                "tags": ["standings"],
                "summary": "List standings",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/simulate": {
            "post": {
                "tags": ["simulation"],
                "summary": "Run a synchronous simulation",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/simulation-jobs": {
            "post": {
                "tags": ["simulation"],
                "summary": "Start a simulation job",
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/simulation-jobs/{id}": {
            "get": {
                "tags": ["simulation"],
                "summary": "Get a simulation job",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["simulation"],
                "summary": "Cancel a simulation job",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/override": {
            "post": {
                "tags": ["override"],
                "summary": "Set or clear a game override",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`
