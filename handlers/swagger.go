package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints:
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>contentforge — Swagger</title>
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

// Minimal OpenAPI document for the content API.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "contentforge", "version": "v0.1.0" },
  "paths": {
    "/contents": {
      "get": { "summary": "List all content records", "responses": { "200": { "description": "array of records" } } },
      "post": {
        "summary": "Create a content record",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"id":{"type":"string"},"title":{"type":"string"},"contentType":{"type":"string"},"content":{"type":"string"}}}}}},
        "responses": { "200": { "description": "created record" } }
      }
    },
    "/contents/generate": {
      "post": {
        "summary": "Generate a content body (not persisted)",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["title","contentType","prompt"],"properties":{"title":{"type":"string"},"contentType":{"type":"string"},"prompt":{"type":"string"},"userId":{"type":"string"}}}}}},
        "responses": { "200": { "description": "generated record" }, "400": { "description": "missing required fields" } }
      }
    },
    "/contents/user/{userId}": {
      "get": { "summary": "List a user's records, newest first", "responses": { "200": { "description": "array of records" }, "401": { "description": "unauthenticated" } } }
    },
    "/contents/{id}": {
      "get": { "summary": "Get a record by id", "responses": { "200": { "description": "record" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update a record (merge)", "responses": { "200": { "description": "merged record" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a record", "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
