// Package docs holds the OpenAPI description served under /swagger. Keep it in sync with
// the godoc annotations on the handlers (swag init -g cmd/finance_dashboard/main.go -o cmd/docs).
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register new user",
                "parameters": [{"in": "body", "name": "register", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "409": {"description": "Email already in use", "schema": {"$ref": "#/definitions/dto.AuthResult"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "User login",
                "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResponse"}},
                    "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/dto.AuthResult"}}
                }
            }
        },
        "/auth/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Log out", "responses": {"204": {"description": "No Content"}}}
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}}}
        },
        "/auth/profile": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Update account details", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}}}
        },
        "/auth/password": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Change password", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthResult"}}}}
        },
        "/ledger": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["ledger"], "summary": "Get the whole ledger", "responses": {"200": {"description": "OK"}}}
        },
        "/ledger/reset": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["ledger"], "summary": "Reset the ledger", "responses": {"200": {"description": "OK"}}}
        },
        "/profile": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["ledger"], "summary": "Get the display profile", "responses": {"200": {"description": "OK"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["ledger"], "summary": "Update the display profile", "responses": {"200": {"description": "OK"}}}
        },
        "/accounts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "List accounts", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Create a new account", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/accounts/{accountID}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Get an account by ID", "parameters": [{"type": "string", "name": "accountID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Update an account", "parameters": [{"type": "string", "name": "accountID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Delete an account", "parameters": [{"type": "string", "name": "accountID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "List transactions",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "string", "name": "accountId", "in": "query"},
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"},
                    {"type": "string", "name": "nextToken", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Record a transaction", "responses": {"201": {"description": "Created"}, "404": {"description": "Account not found"}}}
        },
        "/transactions/{transactionID}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Get a transaction by ID", "parameters": [{"type": "string", "name": "transactionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Update a transaction", "parameters": [{"type": "string", "name": "transactionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Delete a transaction", "parameters": [{"type": "string", "name": "transactionID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/goals": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "List financial goals", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Create a financial goal", "responses": {"201": {"description": "Created"}}}
        },
        "/goals/{goalID}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Get a financial goal by ID", "parameters": [{"type": "string", "name": "goalID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Update a financial goal", "parameters": [{"type": "string", "name": "goalID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Delete a financial goal", "parameters": [{"type": "string", "name": "goalID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/reports/summary": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Dashboard summary", "responses": {"200": {"description": "OK"}}}
        },
        "/reports/categories": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Spending by category", "parameters": [{"type": "integer", "default": 5, "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/monthly": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Monthly income and expenses", "parameters": [{"type": "integer", "default": 6, "name": "months", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/reports/investments": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Investment overview", "responses": {"200": {"description": "OK"}}}
        },
        "/savings/calculate": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Savings calculator", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        }
    },
    "definitions": {
        "dto.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.AuthResult": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "success": {"type": "boolean"}}
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "id": {"type": "string"}, "name": {"type": "string"}}
        },
        "dto.AuthResponse": {
            "type": "object",
            "properties": {
                "expiresAt": {"type": "string"},
                "message": {"type": "string"},
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/dto.UserResponse"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Finance Dashboard API",
	Description:      "Personal finance ledger: accounts, transactions, goals and dashboard reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
