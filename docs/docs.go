// Package docs registers the OpenAPI document served under /swagger. It is
// maintained by hand alongside the godoc annotations on the handlers.
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
        "/account/": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Delete the caller's account together with their posts and comments",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Delete account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check if service and its dependencies are healthy",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/login/": {
            "post": {
                "description": "Authenticate with email and password and receive access and refresh tokens",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "User login",
                "parameters": [
                    {"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/service.TokenPair"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        },
        "/logout/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Log out by blacklisting the provided refresh token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "User logout",
                "parameters": [
                    {"description": "Refresh token", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LogoutRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        },
        "/posts/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Paginated posts, newest first. author filters by first name, last name or email.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "string", "description": "Author substring", "name": "author", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"allOf": [{"$ref": "#/definitions/handlers.Paginated"}, {"type": "object", "properties": {"results": {"type": "array", "items": {"$ref": "#/definitions/handlers.PostResponse"}}}}]}}}]}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Create a post authored by the caller. The slug is derived from the title.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create post",
                "parameters": [
                    {"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreatePostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/handlers.PostResponse"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        },
        "/posts/{slug}/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get post",
                "parameters": [
                    {"type": "string", "description": "Post slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/handlers.PostResponse"}}}]}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Partially update a post. Only the author may update it; the slug never changes.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Update post",
                "parameters": [
                    {"type": "string", "description": "Post slug", "name": "slug", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdatePostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/handlers.PostResponse"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Delete a post and its comments. Only the author may delete it.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Delete post",
                "parameters": [
                    {"type": "string", "description": "Post slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        },
        "/posts/{slug}/comments/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Paginated comments of a post, newest first",
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List comments",
                "parameters": [
                    {"type": "string", "description": "Post slug", "name": "slug", "in": "path", "required": true},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"allOf": [{"$ref": "#/definitions/handlers.Paginated"}, {"type": "object", "properties": {"results": {"type": "array", "items": {"$ref": "#/definitions/handlers.CommentResponse"}}}}]}}}]}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Create comment",
                "parameters": [
                    {"type": "string", "description": "Post slug", "name": "slug", "in": "path", "required": true},
                    {"description": "Comment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/handlers.CommentResponse"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        },
        "/posts/{slug}/comments/{id}/": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Only the comment's author may change it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Update comment",
                "parameters": [
                    {"type": "string", "description": "Post slug", "name": "slug", "in": "path", "required": true},
                    {"type": "integer", "description": "Comment ID", "name": "id", "in": "path", "required": true},
                    {"description": "Comment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CommentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/handlers.CommentResponse"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Only the comment's author may delete it.",
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Delete comment",
                "parameters": [
                    {"type": "string", "description": "Post slug", "name": "slug", "in": "path", "required": true},
                    {"type": "integer", "description": "Comment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        },
        "/refresh-token/": {
            "post": {
                "description": "Exchange a valid refresh token for a new access token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh access token",
                "parameters": [
                    {"description": "Refresh token", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/service.AccessToken"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        },
        "/register/": {
            "post": {
                "description": "Register a new user with email, first name, last name, date of birth and password.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "New account", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        },
        "/top-five-posts/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "The five most commented posts; ties go to the newer post.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Top five posts",
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/handlers.Envelope"}, {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/models.RankedPost"}}}}]}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CommentRequest": {
            "type": "object",
            "required": ["body"],
            "properties": {"body": {"type": "string", "maxLength": 5000}}
        },
        "handlers.CommentResponse": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "body": {"type": "string"},
                "id": {"type": "integer"},
                "post": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "handlers.CreatePostRequest": {
            "type": "object",
            "required": ["body", "title"],
            "properties": {
                "body": {"type": "string"},
                "title": {"type": "string", "maxLength": 100, "minLength": 5}
            }
        },
        "handlers.Envelope": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "msg": {"type": "string"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.LogoutRequest": {
            "type": "object",
            "properties": {"refresh": {"type": "string"}}
        },
        "handlers.Paginated": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "next": {"type": "string"},
                "previous": {"type": "string"},
                "results": {}
            }
        },
        "handlers.PostResponse": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "body": {"type": "string"},
                "id": {"type": "integer"},
                "slug": {"type": "string"},
                "timestamp": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "handlers.RefreshRequest": {
            "type": "object",
            "required": ["refresh"],
            "properties": {"refresh": {"type": "string"}}
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["email", "first_name", "last_name", "password"],
            "properties": {
                "date_of_birth": {"type": "string"},
                "email": {"type": "string", "maxLength": 254},
                "first_name": {"type": "string", "maxLength": 150},
                "last_name": {"type": "string", "maxLength": 150},
                "password": {"type": "string", "maxLength": 72, "minLength": 8}
            }
        },
        "handlers.UpdatePostRequest": {
            "type": "object",
            "properties": {
                "body": {"type": "string"},
                "title": {"type": "string", "maxLength": 100, "minLength": 5}
            }
        },
        "models.RankedPost": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "body": {"type": "string"},
                "comment_count": {"type": "integer"},
                "id": {"type": "integer"},
                "slug": {"type": "string"},
                "timestamp": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "service.AccessToken": {
            "type": "object",
            "properties": {"access": {"type": "string"}}
        },
        "service.TokenPair": {
            "type": "object",
            "properties": {
                "access": {"type": "string"},
                "refresh": {"type": "string"}
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Blog Service API",
	Description:      "Blog backend: accounts, JWT auth, posts with unique slugs, comments and a comment-ranked top five.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
