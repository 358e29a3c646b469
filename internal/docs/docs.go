// Package docs holds the OpenAPI document served at /swagger/*. Regenerate it from the handler
// annotations with `swag init -g cmd/product-service/main.go -o internal/docs`.
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
        "/api/products": {
            "get": {"produces": ["application/json"], "tags": ["products"], "summary": "List products",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}}}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["products"], "summary": "Create a product",
                "parameters": [{"description": "Product", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ProductRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}}}
        },
        "/api/products/search": {
            "get": {"produces": ["application/json"], "tags": ["products"], "summary": "Search products by name",
                "parameters": [{"type": "string", "description": "Name fragment", "name": "name", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}}}
        },
        "/api/products/{id}": {
            "get": {"produces": ["application/json"], "tags": ["products"], "summary": "Get a product",
                "parameters": [{"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}}},
            "put": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["products"], "summary": "Update a product",
                "parameters": [{"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ProductRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}}},
            "delete": {"tags": ["products"], "summary": "Delete a product",
                "parameters": [{"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}}}
        },
        "/api/orders": {
            "get": {"produces": ["application/json"], "tags": ["orders"], "summary": "List orders",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Order"}}}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["orders"], "summary": "Create an order",
                "parameters": [{"type": "string", "description": "Replay key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.OrderRequest"}}],
                "responses": {"200": {"description": "replayed", "schema": {"$ref": "#/definitions/models.Order"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "409": {"description": "same Idempotency-Key in flight", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}}}
        },
        "/api/orders/search": {
            "get": {"produces": ["application/json"], "tags": ["orders"], "summary": "Find orders containing a product",
                "parameters": [{"type": "string", "description": "Product ID", "name": "productId", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Order"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}}}
        },
        "/api/orders/{id}": {
            "get": {"produces": ["application/json"], "tags": ["orders"], "summary": "Get an order",
                "parameters": [{"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}}},
            "put": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["orders"], "summary": "Change the delivery address",
                "parameters": [{"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true},
                    {"description": "New address", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateOrderRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/common.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}}},
            "delete": {"tags": ["orders"], "summary": "Delete an order",
                "parameters": [{"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}}}
        }
    },
    "definitions": {
        "common.ErrorResponse": {"type": "object", "properties": {"error": {"type": "object", "properties": {
            "code": {"type": "string"}, "message": {"type": "string"},
            "details": {"type": "object", "additionalProperties": {"type": "string"}}}}}},
        "common.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "models.Product": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"},
            "price": {"type": "number"}, "priceCents": {"type": "integer"},
            "categories": {"type": "array", "items": {"type": "string"}},
            "createdAt": {"type": "string"}}},
        "models.ProductRequest": {"type": "object", "properties": {
            "name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "number"},
            "categories": {"type": "array", "items": {"type": "string"}}}},
        "models.OrderItem": {"type": "object", "properties": {
            "id": {"type": "string"}, "productId": {"type": "string"}, "quantity": {"type": "integer"}, "price": {"type": "number"}}},
        "models.Order": {"type": "object", "properties": {
            "id": {"type": "string"}, "deliveryAddress": {"type": "string"}, "createdAt": {"type": "string"},
            "orderItems": {"type": "array", "items": {"$ref": "#/definitions/models.OrderItem"}}}},
        "models.OrderItemRequest": {"type": "object", "properties": {"productId": {"type": "string"}, "quantity": {"type": "integer"}}},
        "models.OrderRequest": {"type": "object", "properties": {
            "deliveryAddress": {"type": "string"},
            "products": {"type": "array", "items": {"$ref": "#/definitions/models.OrderItemRequest"}}}},
        "models.UpdateOrderRequest": {"type": "object", "properties": {"deliveryAddress": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Dataware API",
	Description:      "Product directory and order ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
