// Package docs holds the OpenAPI document served under /swagger. Keep it in
// step with the handler annotations; `swag init -g cmd/server/main.go`
// regenerates it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.HealthResponse"}}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Create an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.SignUpRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/signin": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.SignInRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/reset": {
            "post": {
                "tags": ["auth"],
                "summary": "Send a password reset email",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.ResetPasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/signout": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["auth"],
                "summary": "Sign out",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/projects": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["projects"],
                "summary": "List projects",
                "produces": ["application/json"],
                "parameters": [{"type": "boolean", "in": "query", "name": "archived"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ProjectListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["projects"],
                "summary": "Create a project",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.CreateProjectRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Project"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/projects/{project_id}": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["projects"],
                "summary": "Get a project",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "in": "path", "name": "project_id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Project"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"Bearer": []}],
                "tags": ["projects"],
                "summary": "Rename or archive a project",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "project_id", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.UpdateProjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Project"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["projects"],
                "summary": "Delete a project",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "in": "path", "name": "project_id", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/projects/{project_id}/archive": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["projects"],
                "summary": "Archive or restore a project",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "project_id", "required": true},
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/models.ArchiveProjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Project"}}
                }
            }
        },
        "/projects/{project_id}/generate": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["generate"],
                "summary": "Generate content for a project",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "project_id", "required": true},
                    {"type": "file", "in": "formData", "name": "photo"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.GenerateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/projects/{project_id}/generations": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["gallery"],
                "summary": "List a project's generations",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "project_id", "required": true},
                    {"type": "string", "in": "query", "name": "mode"},
                    {"type": "string", "in": "query", "name": "q"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.GenerationListResponse"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["gallery"],
                "summary": "Save a generation",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "project_id", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.SaveGenerationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.LocalGeneration"}}
                }
            }
        },
        "/projects/{project_id}/generations/{generation_id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["gallery"],
                "summary": "Delete a generation",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "project_id", "required": true},
                    {"type": "string", "in": "path", "name": "generation_id", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}}
                }
            }
        },
        "/projects/{project_id}/generations/{generation_id}/images": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["gallery"],
                "summary": "Add images to a generation",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "project_id", "required": true},
                    {"type": "string", "in": "path", "name": "generation_id", "required": true},
                    {"type": "file", "in": "formData", "name": "image"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.LocalGeneration"}}
                }
            }
        },
        "/projects/{project_id}/generations/{generation_id}/images/{image_id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["gallery"],
                "summary": "Delete one image",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "project_id", "required": true},
                    {"type": "string", "in": "path", "name": "generation_id", "required": true},
                    {"type": "string", "in": "path", "name": "image_id", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}}
                }
            }
        },
        "/projects/{project_id}/images": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["gallery"],
                "summary": "List a project's images",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "project_id", "required": true},
                    {"type": "string", "in": "query", "name": "mode"},
                    {"type": "string", "in": "query", "name": "q"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ImageListResponse"}}
                }
            }
        },
        "/operations": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["generate"],
                "summary": "List generation operations",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.OperationInfo"}}}
                }
            }
        },
        "/presets": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["presets"],
                "summary": "List prompt presets",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "in": "query", "name": "category"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PresetListResponse"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["presets"],
                "summary": "Create a prompt preset",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.CreatePresetRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.PromptPreset"}}
                }
            }
        },
        "/presets/{preset_id}": {
            "patch": {
                "security": [{"Bearer": []}],
                "tags": ["presets"],
                "summary": "Update a prompt preset",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "preset_id", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.UpdatePresetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/presets/category/{category}": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["presets"],
                "summary": "Get the saved form values for a category",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "in": "path", "name": "category", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CategoryPreset"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "tags": ["presets"],
                "summary": "Save form values for a category",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "in": "path", "name": "category", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.CategoryPresetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CategoryPreset"}}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["users"],
                "summary": "Get the caller's profile",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AppUser"}}
                }
            },
            "patch": {
                "security": [{"Bearer": []}],
                "tags": ["users"],
                "summary": "Update the caller's profile",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.UpdateProfileRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AppUser"}}
                }
            }
        },
        "/me/theme": {
            "put": {
                "security": [{"Bearer": []}],
                "tags": ["users"],
                "summary": "Set the UI theme",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.ThemeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}}
                }
            }
        },
        "/me/openrouter-key": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["users"],
                "summary": "Get the stored OpenRouter key",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.OpenRouterKeyResponse"}}
                }
            },
            "put": {
                "security": [{"Bearer": []}],
                "tags": ["users"],
                "summary": "Store or clear the OpenRouter key",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.OpenRouterKeyRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}}
                }
            }
        },
        "/dashboard/filters": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["dashboard"],
                "summary": "Get dashboard filters",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DashboardFilters"}}
                }
            },
            "patch": {
                "security": [{"Bearer": []}],
                "tags": ["dashboard"],
                "summary": "Update dashboard filters",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.FiltersPatchRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DashboardFilters"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/dashboard/tags/toggle": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["dashboard"],
                "summary": "Toggle one tag in the selection",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.ToggleTagRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DashboardFilters"}}
                }
            }
        },
        "/dashboard/projects": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["dashboard"],
                "summary": "Visible dashboard projects",
                "produces": ["application/json"],
                "parameters": [{"type": "boolean", "in": "query", "name": "archived"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DashboardProjectsResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "checks": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "models.SignUpRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "models.SignInRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "models.ResetPasswordRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}}
        },
        "models.AuthResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "email": {"type": "string"},
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "expires_in": {"type": "integer"}
            }
        },
        "models.Project": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "client": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "integer"},
                "updated_at": {"type": "integer"},
                "total_generations": {"type": "integer"},
                "owner_id": {"type": "string"},
                "archived": {"type": "boolean"}
            }
        },
        "models.ProjectListResponse": {
            "type": "object",
            "properties": {"projects": {"type": "array", "items": {"$ref": "#/definitions/models.Project"}}}
        },
        "models.CreateProjectRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "Spring campaign"},
                "client": {"type": "string", "example": "Acme"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.UpdateProjectRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "archived": {"type": "boolean"}
            }
        },
        "models.ArchiveProjectRequest": {
            "type": "object",
            "properties": {"archived": {"type": "boolean", "example": true}}
        },
        "models.LocalImageItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "data_url": {"type": "string"},
                "thumb_url": {"type": "string"},
                "meta": {"type": "object"}
            }
        },
        "models.LocalGeneration": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "project_id": {"type": "string"},
                "prompt": {"type": "string"},
                "mode": {"type": "string", "enum": ["t2i", "i2i"]},
                "created_at": {"type": "integer"},
                "images": {"type": "array", "items": {"$ref": "#/definitions/models.LocalImageItem"}}
            }
        },
        "models.ProjectImageFlat": {
            "type": "object",
            "properties": {
                "gen_id": {"type": "string"},
                "prompt": {"type": "string"},
                "mode": {"type": "string", "enum": ["t2i", "i2i"]},
                "created_at": {"type": "integer"},
                "image": {"$ref": "#/definitions/models.LocalImageItem"}
            }
        },
        "models.GenerationListResponse": {
            "type": "object",
            "properties": {"generations": {"type": "array", "items": {"$ref": "#/definitions/models.LocalGeneration"}}}
        },
        "models.ImageListResponse": {
            "type": "object",
            "properties": {"images": {"type": "array", "items": {"$ref": "#/definitions/models.ProjectImageFlat"}}}
        },
        "models.SaveGenerationRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string"},
                "mode": {"type": "string", "example": "t2i"},
                "images": {"type": "array", "items": {"$ref": "#/definitions/models.LocalImageItem"}}
            }
        },
        "models.GenerateResponse": {
            "type": "object",
            "properties": {
                "generation": {"$ref": "#/definitions/models.LocalGeneration"},
                "output": {"type": "string"},
                "file_id": {"type": "string"}
            }
        },
        "models.OperationInfo": {
            "type": "object",
            "properties": {
                "operation_type": {"type": "string"},
                "description": {"type": "string"},
                "requires_photo": {"type": "boolean"}
            }
        },
        "models.PromptPreset": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "category": {"type": "string", "enum": ["social", "marketing", "ecom"]},
                "platform": {"type": "string"},
                "content_type": {"type": "string"},
                "prompt": {"type": "string"},
                "owner_id": {"type": "string"},
                "created_at": {"type": "integer"},
                "updated_at": {"type": "integer"}
            }
        },
        "models.PresetListResponse": {
            "type": "object",
            "properties": {"presets": {"type": "array", "items": {"$ref": "#/definitions/models.PromptPreset"}}}
        },
        "models.CreatePresetRequest": {
            "type": "object",
            "required": ["category", "prompt"],
            "properties": {
                "category": {"type": "string", "example": "social"},
                "platform": {"type": "string", "example": "Instagram"},
                "content_type": {"type": "string", "example": "Post"},
                "prompt": {"type": "string"}
            }
        },
        "models.UpdatePresetRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "platform": {"type": "string"},
                "content_type": {"type": "string"},
                "prompt": {"type": "string"}
            }
        },
        "models.CategoryPreset": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "owner_id": {"type": "string"},
                "category": {"type": "string"},
                "values": {"type": "object"},
                "updated_at": {"type": "integer"}
            }
        },
        "models.CategoryPresetRequest": {
            "type": "object",
            "required": ["values"],
            "properties": {"values": {"type": "object"}}
        },
        "models.AppUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "display_name": {"type": "string"},
                "photo_url": {"type": "string"},
                "plan": {"type": "string"},
                "theme": {"type": "string", "enum": ["light", "dark"]},
                "openrouter_key": {"type": "string"},
                "created_at": {"type": "integer"},
                "updated_at": {"type": "integer"}
            }
        },
        "models.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "display_name": {"type": "string"},
                "photo_url": {"type": "string"}
            }
        },
        "models.ThemeRequest": {
            "type": "object",
            "required": ["theme"],
            "properties": {"theme": {"type": "string", "example": "dark"}}
        },
        "models.OpenRouterKeyRequest": {
            "type": "object",
            "properties": {"key": {"type": "string"}}
        },
        "models.OpenRouterKeyResponse": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "has_key": {"type": "boolean"}
            }
        },
        "models.DashboardFilters": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "date_sort": {"type": "string", "enum": ["newest", "oldest", "7d", "30d"]},
                "available_tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.FiltersPatchRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "tags": {},
                "date_sort": {"type": "string", "example": "newest"}
            }
        },
        "models.ToggleTagRequest": {
            "type": "object",
            "required": ["tag"],
            "properties": {"tag": {"type": "string", "example": "Design"}}
        },
        "models.DashboardProjectsResponse": {
            "type": "object",
            "properties": {
                "projects": {"type": "array", "items": {"$ref": "#/definitions/models.Project"}},
                "filters": {"$ref": "#/definitions/models.DashboardFilters"},
                "stale": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Marketing Studio Backend API",
	Description:      "Backend API for the marketing content studio: projects, prompt presets, user profiles, content generation and the per-project image gallery.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
