// Package docs enregistre la description OpenAPI servie sur /swagger.
// Maintenue à la main, en phase avec les annotations des handlers.
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
        "/access/{id}": {
            "get": {
                "description": "Returns the payload when the item is free or the access cookie holds a valid grant, 402 with payment instructions otherwise",
                "produces": ["application/json"],
                "tags": ["access"],
                "summary": "Access gated content",
                "parameters": [
                    {"type": "string", "description": "Content ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AccessPayload"}},
                    "402": {"description": "Payment Required", "schema": {"$ref": "#/definitions/models.PaymentRequired"}},
                    "404": {"description": "error: Content not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "error: Error message", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/access/{id}/checkout": {
            "post": {
                "description": "Creates a Stripe PaymentIntent whose id is redeemed as the proof on the grant endpoint",
                "produces": ["application/json"],
                "tags": ["access"],
                "summary": "Start a card payment",
                "parameters": [
                    {"type": "string", "description": "Content ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/payment.Checkout"}},
                    "400": {"description": "error: Content is free", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "error: Content not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "501": {"description": "error: Card payments are not configured", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "error: Error message", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/access/{id}/grant": {
            "post": {
                "description": "Verifies the payment proof and sets the access-{id} cookie for 7 days",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["access"],
                "summary": "Grant access after payment",
                "parameters": [
                    {"type": "string", "description": "Content ID", "name": "id", "in": "path", "required": true},
                    {"description": "Payment proof", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.GrantRequest"}}
                ],
                "responses": {
                    "200": {"description": "success: true", "schema": {"type": "object", "additionalProperties": {"type": "boolean"}}},
                    "400": {"description": "error: Invalid input", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "error: Payment not verified", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "error: Content not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "429": {"description": "error: Too many requests", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/content": {
            "get": {
                "description": "Public metadata of content items, newest first",
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "List content",
                "parameters": [
                    {"type": "string", "description": "ARTICLE, VIDEO or AUDIO", "name": "type", "in": "query"},
                    {"type": "string", "description": "Creator wallet", "name": "creator", "in": "query"},
                    {"type": "boolean", "description": "Only free items", "name": "free", "in": "query"},
                    {"type": "integer", "description": "Maximum number of items", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "400": {"description": "error: Invalid filter", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            },
            "post": {
                "description": "Publishes a content item for the creator owning walletAddress, creating the creator on first use",
                "consumes": ["multipart/form-data", "application/json"],
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "Create content",
                "parameters": [
                    {"type": "string", "default": "Exclusive Video", "description": "Title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData"},
                    {"type": "number", "default": 5.00, "description": "Price, as a number or a decimal string", "name": "price", "in": "formData", "required": true},
                    {"type": "string", "default": "USDC", "description": "Currency", "name": "currency", "in": "formData"},
                    {"type": "string", "default": "VIDEO", "description": "ARTICLE, VIDEO or AUDIO", "name": "type", "in": "formData", "required": true},
                    {"type": "string", "description": "Media URL for VIDEO and AUDIO", "name": "contentUrl", "in": "formData"},
                    {"type": "string", "description": "Text for ARTICLE", "name": "body", "in": "formData"},
                    {"type": "string", "description": "Thumbnail URL", "name": "thumbnailUrl", "in": "formData"},
                    {"type": "file", "description": "Thumbnail image", "name": "thumbnail", "in": "formData"},
                    {"type": "string", "default": "0x1234567890abcdef1234567890abcdef12345678", "description": "Creator wallet", "name": "walletAddress", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "400": {"description": "error: Invalid input", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "500": {"description": "error: Error message", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/content/{id}": {
            "get": {
                "description": "Title, price and creator of an item. The gated payload is served by /access/{id}",
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "Get content metadata",
                "parameters": [
                    {"type": "string", "description": "Content ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "404": {"description": "error: Content not found", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/creators/{wallet}/content": {
            "get": {
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "List a creator's content",
                "parameters": [
                    {"type": "string", "description": "Creator wallet", "name": "wallet", "in": "path", "required": true},
                    {"type": "string", "description": "ARTICLE, VIDEO or AUDIO", "name": "type", "in": "query"},
                    {"type": "boolean", "description": "Only free items", "name": "free", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "400": {"description": "error: Invalid wallet address", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/networks": {
            "get": {
                "description": "Supported networks with the merchant address configured for each",
                "produces": ["application/json"],
                "tags": ["payment"],
                "summary": "Payment networks",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        },
        "/ping": {
            "get": {
                "description": "Answers pong when the content store is reachable",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Ping test",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.Response"}}
                }
            }
        }
    },
    "definitions": {
        "models.AccessPayload": {
            "type": "object",
            "properties": {
                "data": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "models.GrantRequest": {
            "type": "object",
            "properties": {
                "proof": {"type": "string"}
            }
        },
        "models.PaymentRequired": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "currency": {"type": "string"},
                "error": {"type": "string"},
                "payToAddress": {"type": "string"}
            }
        },
        "payment.Checkout": {
            "type": "object",
            "properties": {
                "amount": {"type": "integer"},
                "clientSecret": {"type": "string"},
                "currency": {"type": "string"},
                "paymentIntentId": {"type": "string"}
            }
        },
        "utils.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"type": "string"},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Paywall Backend API",
	Description:      "Pay-per-view access gating for creator content",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
