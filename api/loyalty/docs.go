// Package loyalty registers the service's Swagger specification with the
// swag runtime so http-swagger can serve it at /swagger/.
package loyalty

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{escape .Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/http.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.HealthResponse"}},
                    "503": {"description": "a dependency is degraded", "schema": {"$ref": "#/definitions/http.HealthResponse"}}
                }
            }
        },
        "/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register a new account",
                "parameters": [
                    {"description": "username and password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "409": {"description": "username already taken", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "username and password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.LoginResponse"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/userinfo": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get user information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.UserInfoResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/users/me/qr/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Refresh QR token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.QRRefreshResponse"}},
                    "404": {"description": "account missing or deactivated", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/users/{id}/active": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["Users"],
                "summary": "Activate or deactivate an account",
                "parameters": [
                    {"type": "string", "description": "user id", "name": "id", "in": "path", "required": true},
                    {"description": "desired active flag", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.SetActiveRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/vendors": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Vendors"],
                "summary": "List vendors",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ListVendorsResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Vendors"],
                "summary": "Create vendor",
                "parameters": [
                    {"description": "vendor name", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.CreateVendorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.VendorResponse"}},
                    "409": {"description": "name already taken", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/vendors/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Vendors"],
                "summary": "Get vendor",
                "parameters": [{"type": "string", "description": "vendor id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.VendorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Vendors"],
                "summary": "Delete vendor",
                "parameters": [{"type": "string", "description": "vendor id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/vendors/{id}/validators": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Vendors"],
                "summary": "List a vendor's validators",
                "parameters": [{"type": "string", "description": "vendor id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ListValidatorsResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Vendors"],
                "summary": "Bind a validator",
                "parameters": [
                    {"type": "string", "description": "vendor id", "name": "id", "in": "path", "required": true},
                    {"description": "user to bind", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.BindValidatorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.ValidatorResponse"}},
                    "404": {"description": "vendor or user not found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "409": {"description": "user already a validator", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/vendors/{id}/promotions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Promotions"],
                "summary": "List a vendor's promotions",
                "parameters": [
                    {"type": "string", "description": "vendor id", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "description": "only promotions in their window", "name": "active", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ListPromotionsResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Promotions"],
                "summary": "Create promotion",
                "parameters": [
                    {"type": "string", "description": "vendor id", "name": "id", "in": "path", "required": true},
                    {"description": "promotion fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.PromotionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.PromotionResponse"}},
                    "400": {"description": "missing title or bad window", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "vendor not found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/promotions/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Promotions"],
                "summary": "Update promotion",
                "parameters": [
                    {"type": "string", "description": "promotion id", "name": "id", "in": "path", "required": true},
                    {"description": "replacement fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.PromotionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.PromotionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Promotions"],
                "summary": "Delete promotion",
                "parameters": [{"type": "string", "description": "promotion id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/apikeys": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["APIKeys"],
                "summary": "List API keys",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ListAPIKeysResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["APIKeys"],
                "summary": "Mint API key",
                "description": "The raw key appears in this response only; store it now.",
                "parameters": [
                    {"description": "key name", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.MintAPIKeyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.MintAPIKeyResponse"}}
                }
            }
        },
        "/v1/apikeys/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["APIKeys"],
                "summary": "Revoke API key",
                "parameters": [{"type": "string", "description": "key id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "409": {"description": "already revoked", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/scanner/scan": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Scanner"],
                "summary": "Scan a QR token",
                "description": "Decrypts and verifies a scanned token, resolving it to the user it identifies. Also accepts an X-API-Key header.",
                "parameters": [
                    {"description": "the scanned token", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.ScanRequest"}}
                ],
                "responses": {
                    "200": {"description": "status=valid with user identity", "schema": {"$ref": "#/definitions/http.ScanResponse"}},
                    "400": {"description": "status=malformed_token, decryption_failed or token_expired", "schema": {"$ref": "#/definitions/http.ScanResponse"}},
                    "403": {"description": "status=inactive_user", "schema": {"$ref": "#/definitions/http.ScanResponse"}},
                    "404": {"description": "status=unknown_user", "schema": {"$ref": "#/definitions/http.ScanResponse"}}
                }
            }
        },
        "/v1/scanner/validate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Scanner"],
                "summary": "Validate a QR token for the caller's vendor",
                "parameters": [
                    {"description": "the scanned token", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.ScanRequest"}}
                ],
                "responses": {
                    "200": {"description": "status=valid with promotions (possibly empty)", "schema": {"$ref": "#/definitions/http.ValidateResponse"}},
                    "403": {"description": "caller is not a validator", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/v1/scanner/encrypt": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Scanner"],
                "summary": "Encrypt a user id into a scanner token",
                "parameters": [
                    {"description": "user id to embed", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.EncryptRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.EncryptResponse"}},
                    "400": {"description": "empty userId", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.BindValidatorRequest": {
            "type": "object",
            "properties": {"user_id": {"type": "string"}}
        },
        "http.CreateVendorRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "http.EncryptRequest": {
            "type": "object",
            "properties": {"userId": {"type": "string"}}
        },
        "http.EncryptResponse": {
            "type": "object",
            "properties": {"encrypted": {"type": "string"}}
        },
        "http.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"type": "object", "properties": {"database": {"type": "string"}, "cipher": {"type": "string"}}}
            }
        },
        "http.LoginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "http.LoginResponse": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}, "token_type": {"type": "string"}, "expires_in": {"type": "integer"}}
        },
        "http.ListAPIKeysResponse": {
            "type": "object",
            "properties": {"keys": {"type": "array", "items": {"$ref": "#/definitions/http.APIKeyResponse"}}}
        },
        "http.ListPromotionsResponse": {
            "type": "object",
            "properties": {"promotions": {"type": "array", "items": {"$ref": "#/definitions/http.PromotionResponse"}}}
        },
        "http.ListValidatorsResponse": {
            "type": "object",
            "properties": {"validators": {"type": "array", "items": {"$ref": "#/definitions/http.ValidatorResponse"}}}
        },
        "http.ListVendorsResponse": {
            "type": "object",
            "properties": {"vendors": {"type": "array", "items": {"$ref": "#/definitions/http.VendorResponse"}}}
        },
        "http.APIKeyResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "revoked": {"type": "boolean"},
                "revoked_at": {"type": "string"},
                "created_at": {"type": "string"},
                "last_used_at": {"type": "string"}
            }
        },
        "http.MintAPIKeyRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "http.MintAPIKeyResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "api_key": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "http.PromotionRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "starts_at": {"type": "string"},
                "ends_at": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "http.PromotionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "vendor_id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "starts_at": {"type": "string"},
                "ends_at": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "http.QRRefreshResponse": {
            "type": "object",
            "properties": {"qr_token": {"type": "string"}}
        },
        "http.SetActiveRequest": {
            "type": "object",
            "properties": {"active": {"type": "boolean"}}
        },
        "http.RegisterRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "http.RegisterResponse": {
            "type": "object",
            "properties": {"user_id": {"type": "string"}, "username": {"type": "string"}, "qr_token": {"type": "string"}}
        },
        "http.ScanRequest": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "http.ScanResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "user_id": {"type": "string"},
                "username": {"type": "string"},
                "timestamp_utc": {"type": "string"}
            }
        },
        "http.UserInfoResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "username": {"type": "string"},
                "role": {"type": "string"},
                "qr_token": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "http.ValidateResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "user_id": {"type": "string"},
                "username": {"type": "string"},
                "timestamp_utc": {"type": "string"},
                "promotions": {"type": "array", "items": {"$ref": "#/definitions/http.PromotionResponse"}}
            }
        },
        "http.ValidatorResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "user_id": {"type": "string"}, "vendor_id": {"type": "string"}}
        },
        "http.VendorResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "created_at": {"type": "string"}}
        },
        "httpx.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "error_description": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Session JWT. Format: \"Bearer {token}\". Scanner endpoints also accept an X-API-Key header.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Loyalty Platform API",
	Description:      "Loyalty and promotions platform built around an encrypted QR scanner token protocol.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
