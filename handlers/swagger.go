package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the library service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>library-service - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "library-service", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Entry": { "type": "object", "properties": { "id": {"type":"string"}, "author": {"type":"string"}, "description": {"type":"string"}, "createdAt": {"type":"string","format":"date-time"} } },
      "EntryInput": { "type": "object", "required": ["author","description"], "properties": { "author": {"type":"string"}, "description": {"type":"string"} } },
      "EntryPatch": { "type": "object", "properties": { "author": {"type":"string"}, "description": {"type":"string"} } },
      "Error": { "type": "object", "properties": { "message": {"type":"string"}, "error": {"type":"string"} } }
    },
    "parameters": {
      "id": { "name": "id", "in": "path", "required": true, "schema": {"type":"string","pattern":"^[0-9a-fA-F]{24}$"} }
    }
  },
  "paths": {
    "/library": {
      "post": {
        "summary": "Create an entry",
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/EntryInput"} } } },
        "responses": { "201": { "description": "entry created", "content": { "application/json": { "schema": {"type":"object","properties":{"message":{"type":"string"},"user":{"$ref":"#/components/schemas/Entry"}}} } } }, "400": { "description": "missing field or malformed body" }, "500": { "description": "store failure" } }
      },
      "get": {
        "summary": "List all entries",
        "responses": { "200": { "description": "message, total and data" }, "500": { "description": "store failure" } }
      }
    },
    "/library/{id}": {
      "parameters": [ {"$ref":"#/components/parameters/id"} ],
      "get": { "summary": "Get an entry", "responses": { "200": { "description": "the entry" }, "400": { "description": "invalid id" }, "404": { "description": "no entry found" } } },
      "put": {
        "summary": "Partially update an entry",
        "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/EntryPatch"} } } },
        "responses": { "200": { "description": "entry updated" }, "400": { "description": "invalid id or empty field" }, "404": { "description": "no entry found" } }
      },
      "delete": { "summary": "Delete an entry", "responses": { "200": { "description": "entry deleted" }, "400": { "description": "invalid id" }, "404": { "description": "no entry found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
