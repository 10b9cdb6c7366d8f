// Package docs holds OpenAPI description of the HTTP API, kept in sync with handler annotations
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
        "/api/auth/login": {
            "post": {
                "description": "Verifies provided credentials, signs access and refresh token",
                "summary": "Login user",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "User credentials",
                        "name": "login",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.login"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/identity.Session"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/errors.RemoteErr"
                        }
                    }
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "description": "Terminates caller session, live conversations of the session are stopped",
                "summary": "Logout user",
                "tags": [
                    "auth"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Successful status code"
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/errors.RemoteErr"
                        }
                    }
                }
            }
        },
        "/api/auth/refresh": {
            "post": {
                "description": "Signs new access and refresh token, session id and assurance level are kept",
                "summary": "Refresh auth",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Fingerprint and refresh token id",
                        "name": "refresh",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.refresh"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/identity.Session"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/auth/session": {
            "get": {
                "description": "Returns view the caller has to pass next together with auth state",
                "summary": "Current session",
                "tags": [
                    "auth"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.sessionView"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/auth/mfa/enroll": {
            "post": {
                "description": "Creates unverified TOTP factor, secret and otpauth uri are returned once",
                "summary": "Enroll second factor",
                "tags": [
                    "mfa"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/identity.Enrollment"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/auth/mfa/verify": {
            "post": {
                "description": "Verifies TOTP code and upgrades session to aal2, new token pair is returned",
                "summary": "Verify second factor",
                "tags": [
                    "mfa"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Factor and code",
                        "name": "mfaVerify",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.mfaVerify"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/identity.Session"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/auth/mfa/skip": {
            "post": {
                "description": "Lets caller into the app without second factor until session ends",
                "summary": "Skip second factor enrollment",
                "tags": [
                    "mfa"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.sessionView"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/users": {
            "get": {
                "description": "Returns all users, administrators only",
                "summary": "Get all users",
                "tags": [
                    "users"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.User"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/errors.RemoteErr"
                        }
                    }
                }
            },
            "post": {
                "description": "Creates user with role, administrators only",
                "summary": "New user",
                "tags": [
                    "users"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Data for new user",
                        "name": "newUser",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.newUser"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/model.User"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/customers": {
            "get": {
                "description": "Returns customers newest first filtered by status and search text (name, phone, model)",
                "summary": "Get customers",
                "tags": [
                    "customers"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Case-insensitive search text",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Status name, label or all",
                        "name": "status",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.customerList"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            },
            "post": {
                "description": "Creates customer with status New, list is refreshed by the store change feed",
                "summary": "New customer",
                "tags": [
                    "customers"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Data for new customer",
                        "name": "newCustomer",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.newCustomer"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handlers.formResult"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/errors.RemoteErr"
                        }
                    }
                }
            }
        },
        "/api/customers/export": {
            "get": {
                "description": "Renders currently filtered customers as PDF report",
                "summary": "Export customers",
                "tags": [
                    "customers"
                ],
                "produces": [
                    "application/pdf"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Case-insensitive search text",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Status name, label or all",
                        "name": "status",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/customers/{id}": {
            "get": {
                "description": "Returns single customer with provided id, list is refetched when the customer isn't there yet",
                "summary": "Get single customer by id",
                "tags": [
                    "customers"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Customer id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/model.Customer"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            },
            "patch": {
                "description": "Applies provided fields to existing customer, stored model text is kept unless changed.\nCustomer just created and not yet delivered by the change feed is found by refetching the list",
                "summary": "Update customer",
                "tags": [
                    "customers"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Customer id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Changed fields",
                        "name": "patchCustomer",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.patchCustomer"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.formResult"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/errors.RemoteErr"
                        }
                    }
                }
            }
        },
        "/api/catalog/models": {
            "get": {
                "description": "Returns models with their variants sorted by name",
                "summary": "Motorcycle catalog",
                "tags": [
                    "catalog"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/model.Motorcycle"
                            }
                        }
                    }
                }
            }
        },
        "/api/dashboard": {
            "get": {
                "description": "Returns customers count per status and daily motivation message",
                "summary": "Dashboard",
                "tags": [
                    "dashboard"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.dashboard"
                        }
                    }
                }
            }
        },
        "/api/advice/sales": {
            "post": {
                "description": "Analyses why customer didn't buy and suggests strategies, built-in suggestion is returned when inference fails",
                "summary": "Sales advice",
                "tags": [
                    "advice"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Reason customer didn't buy",
                        "name": "salesAdvice",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.salesAdvice"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/advisor.Suggestion"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/advice/color": {
            "post": {
                "description": "Recommends colors by five elements for birth year",
                "summary": "Color advice",
                "tags": [
                    "advice"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Birth year",
                        "name": "colorAdvice",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.colorAdvice"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.advice"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/voice": {
            "get": {
                "description": "Upgrades to websocket and streams audio to inference session until either side stops or session ends",
                "summary": "Live voice conversation",
                "tags": [
                    "voice"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Audio sample format",
                        "name": "format",
                        "in": "query",
                        "enum": [
                            "pcm16",
                            "float32"
                        ]
                    }
                ],
                "responses": {
                    "101": {
                        "description": "Switching protocols"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        },
        "/api/notifications": {
            "get": {
                "description": "Relays notifications published to the notification channel as server-sent events",
                "summary": "Notifications stream",
                "tags": [
                    "notifications"
                ],
                "produces": [
                    "text/event-stream"
                ],
                "security": [
                    {
                        "ApiKeyAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/notify.Notification"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/echo.HTTPError"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "advisor.Suggestion": {
            "type": "object",
            "properties": {
                "analysis": {
                    "type": "string"
                },
                "consultingStrategies": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "promotionIdeas": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "catalog.Stats": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "byStatus": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                }
            }
        },
        "echo.HTTPError": {
            "type": "object",
            "properties": {
                "message": {}
            }
        },
        "editor.Fields": {
            "type": "object",
            "properties": {
                "fullName": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "preferredModel": {
                    "type": "string"
                },
                "preferredColor": {
                    "type": "string"
                },
                "reasonNotBuying": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "New",
                        "Contacted",
                        "Potential",
                        "Closed",
                        "Lost"
                    ]
                }
            }
        },
        "editor.Selection": {
            "type": "object",
            "properties": {
                "model": {
                    "type": "string"
                },
                "variant": {
                    "type": "string"
                }
            }
        },
        "errors.RemoteErr": {
            "type": "object",
            "properties": {
                "op": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handlers.advice": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                }
            }
        },
        "handlers.colorAdvice": {
            "type": "object",
            "properties": {
                "birthYear": {
                    "type": "string"
                }
            },
            "required": [
                "birthYear"
            ]
        },
        "handlers.customerList": {
            "type": "object",
            "properties": {
                "customers": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.Customer"
                    }
                },
                "loading": {
                    "type": "boolean"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "handlers.dashboard": {
            "type": "object",
            "properties": {
                "stats": {
                    "$ref": "#/definitions/catalog.Stats"
                },
                "motivation": {
                    "type": "string"
                }
            }
        },
        "handlers.formResult": {
            "type": "object",
            "properties": {
                "fields": {
                    "$ref": "#/definitions/editor.Fields"
                },
                "selection": {
                    "$ref": "#/definitions/editor.Selection"
                }
            }
        },
        "handlers.login": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "fingerprint": {
                    "type": "string"
                }
            },
            "required": [
                "email",
                "password",
                "fingerprint"
            ]
        },
        "handlers.mfaVerify": {
            "type": "object",
            "properties": {
                "factorId": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "fingerprint": {
                    "type": "string"
                }
            },
            "required": [
                "code",
                "fingerprint"
            ]
        },
        "handlers.newCustomer": {
            "type": "object",
            "properties": {
                "fullName": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "model": {
                    "type": "string"
                },
                "variant": {
                    "type": "string"
                },
                "preferredModel": {
                    "type": "string"
                },
                "preferredColor": {
                    "type": "string"
                },
                "reasonNotBuying": {
                    "type": "string"
                }
            },
            "required": [
                "fullName",
                "phone"
            ]
        },
        "handlers.newUser": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "enum": [
                        "user",
                        "admin"
                    ]
                }
            },
            "required": [
                "email",
                "password",
                "role"
            ]
        },
        "handlers.patchCustomer": {
            "type": "object",
            "properties": {
                "fullName": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "model": {
                    "type": "string"
                },
                "variant": {
                    "type": "string"
                },
                "preferredModel": {
                    "type": "string"
                },
                "preferredColor": {
                    "type": "string"
                },
                "reasonNotBuying": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "handlers.refresh": {
            "type": "object",
            "properties": {
                "fingerprint": {
                    "type": "string"
                },
                "refreshToken": {
                    "type": "string"
                }
            },
            "required": [
                "fingerprint",
                "refreshToken"
            ]
        },
        "handlers.salesAdvice": {
            "type": "object",
            "properties": {
                "reason": {
                    "type": "string"
                }
            },
            "required": [
                "reason"
            ]
        },
        "handlers.sessionView": {
            "type": "object",
            "properties": {
                "view": {
                    "type": "string",
                    "enum": [
                        "loading",
                        "login",
                        "mfa_setup",
                        "mfa_verify",
                        "app"
                    ]
                },
                "state": {
                    "$ref": "#/definitions/identity.AuthState"
                }
            }
        },
        "identity.AuthState": {
            "type": "object",
            "properties": {
                "user": {
                    "$ref": "#/definitions/model.User"
                },
                "mfaStatus": {
                    "type": "string",
                    "enum": [
                        "not_enrolled",
                        "unverified",
                        "verified"
                    ]
                },
                "isAdmin": {
                    "type": "boolean"
                },
                "loading": {
                    "type": "boolean"
                }
            }
        },
        "identity.Enrollment": {
            "type": "object",
            "properties": {
                "factorId": {
                    "type": "string"
                },
                "secret": {
                    "type": "string"
                },
                "uri": {
                    "type": "string"
                }
            }
        },
        "identity.Session": {
            "type": "object",
            "properties": {
                "accessToken": {
                    "type": "string"
                },
                "expiresAt": {
                    "type": "integer"
                },
                "refreshToken": {
                    "type": "string"
                },
                "sessionId": {
                    "type": "string"
                },
                "aal": {
                    "type": "string"
                }
            }
        },
        "model.Customer": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "fullName": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "preferredModel": {
                    "type": "string"
                },
                "preferredColor": {
                    "type": "string"
                },
                "reasonNotBuying": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "New",
                        "Contacted",
                        "Potential",
                        "Closed",
                        "Lost"
                    ]
                }
            }
        },
        "model.Motorcycle": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "variants": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string",
                    "enum": [
                        "user",
                        "admin"
                    ]
                },
                "createdAt": {
                    "type": "string"
                }
            }
        },
        "notify.Notification": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "body": {
                    "type": "string"
                },
                "at": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
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
	Title:            "GIA HÒA 6 CRM API",
	Description:      "Customers, sessions with second factor, advisory widgets and live voice of the dealership CRM.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
