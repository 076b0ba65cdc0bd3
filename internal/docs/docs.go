// Package docs registers the OpenAPI document served at /swagger/*any.
// Regenerate with: swag init -g cmd/server/main.go -o internal/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/calendar": {
            "get": {
                "description": "Returns one entry per day of the calendar window. Viewer flags are set only for authenticated requests. Supports a weak ETag via If-None-Match.",
                "produces": ["application/json"],
                "tags": ["Calendar"],
                "summary": "Calendar day states",
                "operationId": "getCalendar",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"},
                    {"type": "string", "description": "Return 304 if ETag matches", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CalendarResponse"}, "headers": {"ETag": {"type": "string", "description": "Weak ETag for current result"}}},
                    "304": {"description": "Not Modified"},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/calendar/{date}/articles": {
            "get": {
                "description": "Lists the published articles of the date, oldest first, with author pen names and plain-text excerpts.",
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "Published articles of a day",
                "operationId": "listDayArticles",
                "parameters": [
                    {"type": "string", "example": "2025-12-24", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.DayArticle"}}},
                    "400": {"description": "Invalid date", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/dates/{date}": {
            "get": {
                "description": "Returns whether the date is past, today, or future in the calendar's time zone, the signed day distance, and a display label.",
                "produces": ["application/json"],
                "tags": ["Calendar"],
                "summary": "Classify a date",
                "operationId": "getDate",
                "parameters": [
                    {"type": "string", "example": "2025-12-25", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DateInfo"}},
                    "400": {"description": "Invalid date", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/declarations": {
            "post": {
                "description": "Records that the current user will publish on the date. At most one declaration per user and date.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Declarations"],
                "summary": "Declare a publish date",
                "operationId": "createDeclaration",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true},
                    {"description": "Declaration payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateDeclarationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Declaration"}},
                    "400": {"description": "Invalid or out-of-window date", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Already declared", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/declarations/{date}": {
            "get": {
                "description": "Returns how many users declared the date and whether the viewer is one of them.",
                "produces": ["application/json"],
                "tags": ["Declarations"],
                "summary": "Declarations for a date",
                "operationId": "getDeclaration",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"},
                    {"type": "string", "example": "2025-12-24", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.DeclarationStatus"}},
                    "400": {"description": "Invalid date", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/articles/draft": {
            "put": {
                "description": "Creates or updates the current user's article as a draft. A title is optional.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "Save a draft",
                "operationId": "saveDraft",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true},
                    {"description": "Article payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SaveArticleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ArticleResponse"}},
                    "400": {"description": "Invalid article", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Article or profile not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Another article already uses the date", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/articles/publish": {
            "put": {
                "description": "Creates or updates the current user's article and publishes it. A title is required.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "Publish an article",
                "operationId": "publishArticle",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true},
                    {"description": "Article payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SaveArticleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ArticleResponse"}},
                    "400": {"description": "Invalid article", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Article or profile not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Another article already uses the date", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/articles/{id}": {
            "get": {
                "description": "Returns a published article, or the caller's own draft.",
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "Get an article",
                "operationId": "getArticle",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"},
                    {"type": "string", "format": "uuid", "description": "Article ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ArticleResponse"}},
                    "404": {"description": "Article not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/articles/{id}/reactions": {
            "get": {
                "description": "Returns the count of each emoji on the article and, for authenticated users, the emoji they reacted with.",
                "produces": ["application/json"],
                "tags": ["Reactions"],
                "summary": "Reaction counts",
                "operationId": "getReactions",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"},
                    {"type": "string", "format": "uuid", "description": "Article ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ReactionsResponse"}},
                    "404": {"description": "Article not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Adds the emoji reaction if the current user has none of that type on the article, otherwise removes it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Reactions"],
                "summary": "Toggle a reaction",
                "operationId": "toggleReaction",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "format": "uuid", "description": "Article ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Reaction type", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ToggleReactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ToggleReactionResponse"}},
                    "400": {"description": "Unsupported reaction type", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Article not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Concurrent toggle", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/profiles": {
            "post": {
                "description": "Creates the current user's profile with a unique pen name.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Profiles"],
                "summary": "Create profile",
                "operationId": "createProfile",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true},
                    {"description": "Profile payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateProfileRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Profile"}},
                    "400": {"description": "Invalid pen name", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Profile exists or pen name taken", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profiles"],
                "summary": "Current profile",
                "operationId": "getMe",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Profile"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "No profile yet", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/me/articles/{date}": {
            "get": {
                "description": "Returns the current user's article for the date in any status, for resuming an edit.",
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "The caller's article for a day",
                "operationId": "getMyArticle",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "example": "2025-12-24", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ArticleResponse"}},
                    "400": {"description": "Invalid date", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "No article for the date", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/pickup": {
            "get": {
                "description": "Returns a random sample of published articles dated today or earlier, excluding administrators' articles.",
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "Random published articles",
                "operationId": "pickup",
                "parameters": [
                    {"maximum": 10, "minimum": 1, "type": "integer", "default": 3, "description": "Number of articles", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/services.Pickup"}}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Declaration": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "publish_date": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "domain.Profile": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "pen_name": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "admin"]},
                "updated_at": {"type": "string"}
            }
        },
        "domain.ReactionOption": {
            "type": "object",
            "properties": {
                "emoji": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "handlers.ArticleResponse": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "publish_date": {"type": "string"},
                "status": {"type": "string", "enum": ["draft", "published"]},
                "title": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "handlers.CalendarDay": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "days_until": {"type": "integer", "example": 3},
                "declaration_count": {"type": "integer"},
                "has_published_article": {"type": "boolean"},
                "is_viewer_article_exists": {"type": "boolean"},
                "is_viewer_declared": {"type": "boolean"},
                "is_viewer_draft": {"type": "boolean"},
                "is_viewer_published": {"type": "boolean"},
                "label": {"type": "string", "example": "12月25日"},
                "phase": {"type": "string", "enum": ["past", "today", "future"]}
            }
        },
        "handlers.CalendarResponse": {
            "type": "object",
            "properties": {
                "days": {"type": "array", "items": {"$ref": "#/definitions/handlers.CalendarDay"}},
                "end": {"type": "string", "example": "2025-12-25"},
                "start": {"type": "string", "example": "2025-12-01"},
                "today": {"type": "string", "example": "2025-12-10"}
            }
        },
        "handlers.CreateDeclarationRequest": {
            "type": "object",
            "required": ["date"],
            "properties": {
                "date": {"type": "string", "example": "2025-12-24"}
            }
        },
        "handlers.CreateProfileRequest": {
            "type": "object",
            "required": ["pen_name"],
            "properties": {
                "pen_name": {"type": "string", "example": "gopher"}
            }
        },
        "handlers.DateInfo": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2025-12-25"},
                "days_until": {"type": "integer", "example": 15},
                "in_window": {"type": "boolean"},
                "label": {"type": "string", "example": "12月25日"},
                "phase": {"type": "string", "enum": ["past", "today", "future"]}
            }
        },
        "handlers.DayArticle": {
            "type": "object",
            "properties": {
                "excerpt": {"type": "string"},
                "id": {"type": "string"},
                "pen_name": {"type": "string"},
                "publish_date": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "handlers.DeclarationStatus": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 3},
                "date": {"type": "string", "example": "2025-12-24"},
                "declared": {"type": "boolean"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "not_found"},
                "message": {"type": "string", "example": "resource not found"},
                "request_id": {"type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"}
            }
        },
        "handlers.ReactionsResponse": {
            "type": "object",
            "properties": {
                "counts": {"type": "object", "additionalProperties": {"type": "integer"}},
                "mine": {"type": "array", "items": {"type": "string"}},
                "palette": {"type": "array", "items": {"$ref": "#/definitions/domain.ReactionOption"}}
            }
        },
        "handlers.SaveArticleRequest": {
            "type": "object",
            "required": ["publish_date"],
            "properties": {
                "content": {"type": "string"},
                "id": {"type": "string"},
                "publish_date": {"type": "string", "example": "2025-12-24"},
                "title": {"type": "string", "example": "Go generics in practice"}
            }
        },
        "handlers.ToggleReactionRequest": {
            "type": "object",
            "required": ["type"],
            "properties": {
                "type": {"type": "string", "example": "❤️"}
            }
        },
        "handlers.ToggleReactionResponse": {
            "type": "object",
            "properties": {
                "action": {"type": "string", "enum": ["added", "removed"]}
            }
        },
        "services.Pickup": {
            "type": "object",
            "properties": {
                "excerpt": {"type": "string"},
                "id": {"type": "string"},
                "pen_name": {"type": "string"},
                "publish_date": {"type": "string"},
                "title": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Advent Calendar API",
	Description:      "Shared day calendar: publish declarations, draft and published articles, and emoji reactions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
