// Package docs registra en swag la especificación OpenAPI de la consola.
// Se regenera con: swag init -g cmd/vetadmin/main.go -o internal/docs
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
        "/health": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Liveness",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Sesión actual",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session.sessionResponse"}},
                    "401": {"description": "no hay sesión", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Iniciar sesión",
                "description": "Valida las credenciales contra el servidor remoto y guarda el perfil público.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/session.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session.sessionResponse"}},
                    "400": {"description": "faltan correo o contraseña", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "credenciales incorrectas", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "el servidor remoto falló", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "tags": ["session"],
                "summary": "Cerrar sesión",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/views": {
            "get": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Estado de carga de todas las vistas",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/views.Status"}}}
                }
            }
        },
        "/views/{entity}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Montar una vista",
                "parameters": [{"$ref": "#/parameters/entity"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/console.viewResponse"}},
                    "404": {"description": "entidad desconocida", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "el servidor remoto falló", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Crear un registro",
                "parameters": [
                    {"$ref": "#/parameters/entity"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "warning presente si la imagen no se pudo guardar", "schema": {"$ref": "#/definitions/console.createdResponse"}},
                    "422": {"description": "validación", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "502": {"description": "el servidor remoto falló", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/views/{entity}/rows": {
            "get": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Filas en memoria de una vista",
                "parameters": [{"$ref": "#/parameters/entity"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/console.viewResponse"}}}
            }
        },
        "/views/{entity}/export.pdf": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["views"],
                "summary": "Exportar la vista a PDF",
                "parameters": [{"$ref": "#/parameters/entity"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/views/{entity}/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Un registro de la vista",
                "parameters": [{"$ref": "#/parameters/entity"}, {"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "no encontrado", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Actualizar un registro",
                "parameters": [
                    {"$ref": "#/parameters/entity"},
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "422": {"description": "validación", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Eliminar un registro",
                "parameters": [{"$ref": "#/parameters/entity"}, {"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/console.deletedResponse"}},
                    "204": {"description": "No Content"},
                    "502": {"description": "el servidor remoto falló", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/views/{entity}/{id}/export.pdf": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["views"],
                "summary": "Exportar un registro a PDF",
                "parameters": [{"$ref": "#/parameters/entity"}, {"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/pets/{petID}/image": {
            "get": {
                "produces": ["image/png", "image/jpeg", "image/gif", "image/webp", "application/json"],
                "tags": ["images"],
                "summary": "Imagen local de una mascota",
                "parameters": [
                    {"name": "petID", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "required": false, "type": "string", "description": "datauri para recibir JSON"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "sin imagen", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "consumes": ["image/png", "image/jpeg", "image/gif", "image/webp", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["images"],
                "summary": "Guardar la imagen local de una mascota",
                "parameters": [{"name": "petID", "in": "path", "required": true, "type": "integer"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/images.imageResponse"}},
                    "413": {"description": "imagen demasiado grande", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "415": {"description": "tipo no soportado", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "parameters": {
        "entity": {
            "name": "entity", "in": "path", "required": true, "type": "string",
            "enum": ["pets", "owners", "vets", "consultations", "medications", "prescriptions", "histories", "admins"]
        },
        "id": {"name": "id", "in": "path", "required": true, "type": "integer"}
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "session.loginRequest": {
            "type": "object",
            "properties": {"correo": {"type": "string"}, "contraseña": {"type": "string"}}
        },
        "session.sessionResponse": {
            "type": "object",
            "properties": {
                "admin_id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "session_id": {"type": "string"},
                "started_at": {"type": "string", "format": "date-time"}
            }
        },
        "views.Status": {
            "type": "object",
            "properties": {
                "entity": {"type": "string"},
                "mount_id": {"type": "string"},
                "state": {"type": "string", "enum": ["pending", "ready", "failed"]},
                "error": {"type": "string"},
                "loaded_at": {"type": "string", "format": "date-time"}
            }
        },
        "console.viewResponse": {
            "type": "object",
            "properties": {
                "status": {"$ref": "#/definitions/views.Status"},
                "rows": {"type": "array", "items": {"type": "object"}}
            }
        },
        "console.createdResponse": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "row": {"type": "object"}, "warning": {"type": "string"}}
        },
        "console.deletedResponse": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "message": {"type": "string"}}
        },
        "images.imageResponse": {
            "type": "object",
            "properties": {"pet_id": {"type": "integer"}, "data_uri": {"type": "string"}}
        }
    }
}`

// SwaggerInfo lo ajusta el servidor al arrancar (Host, Version).
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vet Clinic Admin Console",
	Description:      "Consola de administración de la clínica veterinaria: vistas, altas, bajas, cambios y exportación a PDF sobre la API remota.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
