// Package docs holds the OpenAPI document for the HTTP API.
// Regenerate from the handler annotations with:
//
//	swag init --v3.1 -g cmd/spoilerguard-api/main.go -o internal/services/api/docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/spoiler/analyze": {
            "post": {
                "tags": ["Spoiler"],
                "summary": "Flag spoiler comments for an episode",
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {"$ref": "#/components/schemas/domain.AnalyzeInput"}
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/domain.AnalysisResult"}
                            }
                        }
                    },
                    "412": {"description": "api key not configured"}
                }
            }
        },
        "/spoiler/api-key": {
            "put": {
                "tags": ["Spoiler"],
                "summary": "Replace the classifier api key",
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {"$ref": "#/components/schemas/domain.APIKeyInput"}
                        }
                    }
                },
                "responses": {
                    "200": {"description": "ok"}
                }
            }
        },
        "/spoiler/status": {
            "get": {
                "tags": ["Spoiler"],
                "summary": "Cache size and credential presence",
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/domain.Status"}
                            }
                        }
                    }
                }
            }
        },
        "/spoiler/cache/{episodeId}": {
            "delete": {
                "tags": ["Spoiler"],
                "summary": "Drop the cached result of one episode",
                "parameters": [
                    {
                        "name": "episodeId",
                        "in": "path",
                        "required": true,
                        "schema": {"type": "string"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/domain.InvalidateResult"}
                            }
                        }
                    }
                }
            }
        },
        "/runs/{episodeId}": {
            "get": {
                "tags": ["Runs"],
                "summary": "Recent analysis runs for an episode",
                "parameters": [
                    {
                        "name": "episodeId",
                        "in": "path",
                        "required": true,
                        "schema": {"type": "string"}
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "schema": {"type": "integer", "minimum": 1, "maximum": 200}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "type": "array",
                                    "items": {"$ref": "#/components/schemas/domain.RunSummary"}
                                }
                            }
                        }
                    }
                }
            }
        }
    },
    "components": {
        "schemas": {
            "domain.CommentRecord": {
                "type": "object",
                "required": ["id"],
                "properties": {
                    "id": {"type": "string"},
                    "content": {"type": "string"},
                    "progress": {"type": "integer", "description": "milliseconds into the episode"}
                }
            },
            "domain.AnalyzeInput": {
                "type": "object",
                "required": ["episodeId"],
                "properties": {
                    "episodeId": {"type": "string"},
                    "danmakuList": {
                        "type": "array",
                        "items": {"$ref": "#/components/schemas/domain.CommentRecord"}
                    },
                    "animeTitle": {"type": "string"},
                    "episodeTitle": {"type": "string"},
                    "reanalyze": {"type": "boolean"}
                }
            },
            "domain.AnalysisResult": {
                "type": "object",
                "properties": {
                    "episodeId": {"type": "string"},
                    "spoilerIds": {
                        "type": "array",
                        "items": {"type": "string"}
                    },
                    "analyzedAt": {"type": "integer"},
                    "totalDanmaku": {"type": "integer"},
                    "spoilerCount": {"type": "integer"}
                }
            },
            "domain.APIKeyInput": {
                "type": "object",
                "required": ["apiKey"],
                "properties": {
                    "apiKey": {"type": "string"}
                }
            },
            "domain.Status": {
                "type": "object",
                "properties": {
                    "cacheSize": {"type": "integer"},
                    "hasApiKey": {"type": "boolean"}
                }
            },
            "domain.InvalidateResult": {
                "type": "object",
                "properties": {
                    "removed": {"type": "boolean"}
                }
            },
            "domain.RunSummary": {
                "type": "object",
                "properties": {
                    "runId": {"type": "string", "format": "uuid"},
                    "episodeId": {"type": "string"},
                    "startedAt": {"type": "string", "format": "date-time"},
                    "finishedAt": {"type": "string", "format": "date-time"},
                    "totalDanmaku": {"type": "integer"},
                    "totalBatches": {"type": "integer"},
                    "batchesOk": {"type": "integer"},
                    "batchesFailed": {"type": "integer"},
                    "spoilerCount": {"type": "integer"},
                    "stopReason": {
                        "type": "string",
                        "enum": ["completed", "quota", "rate_limited", "consecutive_failures"]
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	BasePath:         "/api/v1",
	Title:            "Spoilerguard API",
	Description:      "Spoiler classification for timed video comments",
	InfoInstanceName: "spoilerguard",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
