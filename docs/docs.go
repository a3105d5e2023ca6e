package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/dashboard": {
            "get": {
                "tags": [
                    "Dashboard"
                ],
                "summary": "Dashboard",
                "description": "Open todos, folder count, today's classes and the semester week",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/folders": {
            "get": {
                "tags": [
                    "Folders"
                ],
                "summary": "List folders",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "tags": [
                    "Folders"
                ],
                "summary": "Create a folder",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/CreateFolderRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Invalid request"
                    }
                }
            }
        },
        "/folders/{id}": {
            "get": {
                "tags": [
                    "Folders"
                ],
                "summary": "Get a folder",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "put": {
                "tags": [
                    "Folders"
                ],
                "summary": "Update a folder",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/UpdateFolderRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "delete": {
                "tags": [
                    "Folders"
                ],
                "summary": "Delete a folder and its notes",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/notes": {
            "get": {
                "tags": [
                    "Notes"
                ],
                "summary": "List notes",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "folder_id",
                        "type": "integer",
                        "required": false,
                        "description": "Only notes in this folder"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "tags": [
                    "Notes"
                ],
                "summary": "Create a note",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/CreateNoteRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Invalid request"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/notes/search": {
            "get": {
                "tags": [
                    "Notes"
                ],
                "summary": "Search notes",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "q",
                        "type": "string",
                        "required": true,
                        "description": "Search text"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/notes/import": {
            "post": {
                "tags": [
                    "Notes"
                ],
                "summary": "Import markdown files",
                "description": "YAML front matter may set title, folder_id and tags",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "formData",
                        "name": "files",
                        "type": "file",
                        "required": true,
                        "description": "Markdown files"
                    },
                    {
                        "in": "formData",
                        "name": "folder_id",
                        "type": "integer",
                        "required": false,
                        "description": "Target folder"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Invalid request"
                    }
                }
            }
        },
        "/notes/generate": {
            "post": {
                "tags": [
                    "Notes"
                ],
                "summary": "Generate notes from documents",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "formData",
                        "name": "files",
                        "type": "file",
                        "required": true,
                        "description": "Source documents"
                    },
                    {
                        "in": "formData",
                        "name": "model",
                        "type": "string",
                        "required": false,
                        "description": "Model name"
                    },
                    {
                        "in": "formData",
                        "name": "folder_id",
                        "type": "integer",
                        "required": false,
                        "description": "Target folder"
                    },
                    {
                        "in": "formData",
                        "name": "title",
                        "type": "string",
                        "required": false,
                        "description": "Note title"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Invalid request"
                    },
                    "502": {
                        "description": "AI backend error"
                    }
                }
            }
        },
        "/notes/{id}": {
            "get": {
                "tags": [
                    "Notes"
                ],
                "summary": "Get a note",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "put": {
                "tags": [
                    "Notes"
                ],
                "summary": "Update a note",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/UpdateNoteRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "delete": {
                "tags": [
                    "Notes"
                ],
                "summary": "Delete a note",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/notes/{id}/html": {
            "get": {
                "tags": [
                    "Notes"
                ],
                "summary": "Render a note as HTML",
                "produces": [
                    "text/html"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/notes/{id}/export": {
            "get": {
                "tags": [
                    "Notes"
                ],
                "summary": "Export a note",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    },
                    {
                        "in": "query",
                        "name": "format",
                        "type": "string",
                        "required": false,
                        "description": "markdown, pdf or docx"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Document"
                    },
                    "400": {
                        "description": "Invalid request"
                    },
                    "502": {
                        "description": "AI backend error"
                    }
                }
            }
        },
        "/editor/tags": {
            "get": {
                "tags": [
                    "Editor"
                ],
                "summary": "List markdown tags",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/editor/apply": {
            "post": {
                "tags": [
                    "Editor"
                ],
                "summary": "Insert markdown syntax",
                "description": "Offsets count Unicode code points. Unknown tags leave the content unchanged.",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/ApplyMarkdownRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Invalid request"
                    }
                }
            }
        },
        "/timetable": {
            "get": {
                "tags": [
                    "Timetable"
                ],
                "summary": "List classes",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "tags": [
                    "Timetable"
                ],
                "summary": "Add a class",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/CreateTimetableEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Invalid request"
                    }
                }
            },
            "delete": {
                "tags": [
                    "Timetable"
                ],
                "summary": "Delete every class",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/timetable/{id}": {
            "get": {
                "tags": [
                    "Timetable"
                ],
                "summary": "Get a class",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "put": {
                "tags": [
                    "Timetable"
                ],
                "summary": "Update a class",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/UpdateTimetableEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Invalid request"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "delete": {
                "tags": [
                    "Timetable"
                ],
                "summary": "Delete a class",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/timetable/grid": {
            "get": {
                "tags": [
                    "Timetable"
                ],
                "summary": "Week grid",
                "description": "Every weekday and hour slot with the classes active in it",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/timetable/upcoming": {
            "get": {
                "tags": [
                    "Timetable"
                ],
                "summary": "Upcoming classes",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "days",
                        "type": "integer",
                        "required": false,
                        "description": "Window length in days (1-60, default 7)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/timetable/import": {
            "post": {
                "tags": [
                    "Timetable"
                ],
                "summary": "Import CSV or YAML",
                "description": "Any invalid row rejects the whole file",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "formData",
                        "name": "file",
                        "type": "file",
                        "required": true,
                        "description": "Timetable file"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Imported"
                    },
                    "400": {
                        "description": "Invalid request"
                    }
                }
            }
        },
        "/timetable/export": {
            "get": {
                "tags": [
                    "Timetable"
                ],
                "summary": "Export CSV or YAML",
                "produces": [
                    "text/csv",
                    "application/yaml"
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "format",
                        "type": "string",
                        "required": false,
                        "description": "csv or yaml"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/timetable/export.ics": {
            "get": {
                "tags": [
                    "Timetable"
                ],
                "summary": "Export iCalendar",
                "produces": [
                    "text/calendar"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/todos": {
            "get": {
                "tags": [
                    "Todos"
                ],
                "summary": "List todos",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "completed",
                        "type": "boolean",
                        "required": false,
                        "description": "Filter by completion"
                    },
                    {
                        "in": "query",
                        "name": "pinned",
                        "type": "boolean",
                        "required": false,
                        "description": "Filter by pin"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "tags": [
                    "Todos"
                ],
                "summary": "Create a todo",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/CreateTodoRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Invalid request"
                    }
                }
            }
        },
        "/todos/{id}": {
            "get": {
                "tags": [
                    "Todos"
                ],
                "summary": "Get a todo",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "put": {
                "tags": [
                    "Todos"
                ],
                "summary": "Update a todo",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/UpdateTodoRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "delete": {
                "tags": [
                    "Todos"
                ],
                "summary": "Delete a todo",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/todos/{id}/subtasks": {
            "post": {
                "tags": [
                    "Todos"
                ],
                "summary": "Add a subtask",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/CreateSubtaskRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/todos/{id}/subtasks/{subtaskId}": {
            "put": {
                "tags": [
                    "Todos"
                ],
                "summary": "Update a subtask",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    },
                    {
                        "in": "path",
                        "name": "subtaskId",
                        "required": true,
                        "type": "integer",
                        "description": "Subtask ID"
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/UpdateSubtaskRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            },
            "delete": {
                "tags": [
                    "Todos"
                ],
                "summary": "Delete a subtask",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer",
                        "description": "ID"
                    },
                    {
                        "in": "path",
                        "name": "subtaskId",
                        "required": true,
                        "type": "integer",
                        "description": "Subtask ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/assistant/chat": {
            "post": {
                "tags": [
                    "Assistant"
                ],
                "summary": "Chat with the assistant",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/ChatRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Invalid request"
                    },
                    "404": {
                        "description": "Not found"
                    },
                    "502": {
                        "description": "AI backend error"
                    }
                }
            }
        },
        "/assistant/chat/image": {
            "post": {
                "tags": [
                    "Assistant"
                ],
                "summary": "Ask the assistant about an image",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "formData",
                        "name": "file",
                        "type": "file",
                        "required": true,
                        "description": "Image"
                    },
                    {
                        "in": "formData",
                        "name": "message",
                        "type": "string",
                        "required": true,
                        "description": "Question about the image"
                    },
                    {
                        "in": "formData",
                        "name": "model",
                        "type": "string",
                        "required": false,
                        "description": "Gemini model name"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Invalid request or non-vision model"
                    },
                    "502": {
                        "description": "AI backend error"
                    }
                }
            }
        },
        "/assistant/conversations/{id}": {
            "get": {
                "tags": [
                    "Assistant"
                ],
                "summary": "Get a conversation",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string",
                        "description": "Conversation UUID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/pen2pdf/extract": {
            "post": {
                "tags": [
                    "Pen2PDF"
                ],
                "summary": "Extract markdown from documents",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "formData",
                        "name": "files",
                        "type": "file",
                        "required": true,
                        "description": "Documents"
                    },
                    {
                        "in": "formData",
                        "name": "model",
                        "type": "string",
                        "required": false,
                        "description": "Model name"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "502": {
                        "description": "AI backend error"
                    }
                }
            }
        },
        "/pen2pdf/export": {
            "post": {
                "tags": [
                    "Pen2PDF"
                ],
                "summary": "Export markdown as a document",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "description": "Request body",
                        "schema": {
                            "$ref": "#/definitions/ExportDocumentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Document"
                    },
                    "400": {
                        "description": "Invalid request"
                    },
                    "502": {
                        "description": "AI backend error"
                    }
                }
            }
        }
    },
    "definitions": {
        "CreateFolderRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                }
            },
            "required": [
                "name"
            ]
        },
        "UpdateFolderRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                }
            }
        },
        "CreateNoteRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "folder_id": {
                    "type": "integer"
                },
                "model_used": {
                    "type": "string"
                }
            },
            "required": [
                "title"
            ]
        },
        "UpdateNoteRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "folder_id": {
                    "type": "integer"
                }
            }
        },
        "ApplyMarkdownRequest": {
            "type": "object",
            "properties": {
                "content": {
                    "type": "string"
                },
                "selection_start": {
                    "type": "integer"
                },
                "selection_end": {
                    "type": "integer"
                },
                "tag": {
                    "type": "string",
                    "example": "bold"
                }
            },
            "required": [
                "tag"
            ]
        },
        "CreateTimetableEntryRequest": {
            "type": "object",
            "properties": {
                "day": {
                    "type": "string",
                    "example": "Monday"
                },
                "start_time": {
                    "type": "string",
                    "example": "09:00"
                },
                "end_time": {
                    "type": "string",
                    "example": "10:30"
                },
                "subject": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                }
            },
            "required": [
                "day",
                "start_time",
                "end_time",
                "subject"
            ]
        },
        "UpdateTimetableEntryRequest": {
            "type": "object",
            "properties": {
                "day": {
                    "type": "string"
                },
                "start_time": {
                    "type": "string"
                },
                "end_time": {
                    "type": "string"
                },
                "subject": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                }
            }
        },
        "CreateTodoRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "due_date": {
                    "type": "string",
                    "format": "date-time"
                }
            },
            "required": [
                "title"
            ]
        },
        "UpdateTodoRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "completed": {
                    "type": "boolean"
                },
                "pinned": {
                    "type": "boolean"
                },
                "due_date": {
                    "type": "string",
                    "format": "date-time"
                },
                "clear_due_date": {
                    "type": "boolean"
                }
            }
        },
        "CreateSubtaskRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                }
            },
            "required": [
                "title"
            ]
        },
        "UpdateSubtaskRequest": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "completed": {
                    "type": "boolean"
                }
            }
        },
        "ChatRequest": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "model": {
                    "type": "string"
                },
                "conversation_id": {
                    "type": "string"
                },
                "conversation_history": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "role": {
                                "type": "string"
                            },
                            "content": {
                                "type": "string"
                            }
                        }
                    }
                },
                "use_rag": {
                    "type": "boolean"
                },
                "folder_ids": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                }
            },
            "required": [
                "message"
            ]
        },
        "ExportDocumentRequest": {
            "type": "object",
            "properties": {
                "markdown": {
                    "type": "string"
                },
                "format": {
                    "type": "string",
                    "enum": [
                        "pdf",
                        "docx",
                        "markdown",
                        "md"
                    ]
                },
                "title": {
                    "type": "string"
                },
                "add_watermark": {
                    "type": "boolean"
                }
            },
            "required": [
                "markdown",
                "format"
            ]
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "2.0",
	Host:             "localhost:8003",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "StudyBuddy API",
	Description:      "Personal study organizer: folders, notes, AI note generation, assistant chat, timetable and todos",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
