// Package docs holds the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/tournaments/{tournamentID}/bracket": {
            "get": {
                "tags": ["brackets"],
                "summary": "Bracket tree with depth, rounds and serialized nodes",
                "parameters": [{"name": "tournamentID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Not an elimination bracket"}, "404": {"description": "No bracket"}}
            },
            "post": {
                "tags": ["brackets"],
                "summary": "Generate and store the bracket from confirmed registrations",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "tournamentID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed"}, "409": {"description": "Already generated"}}
            }
        },
        "/tournaments/{tournamentID}/bracket/matches": {
            "get": {
                "tags": ["brackets"],
                "summary": "Bracket matches in in-order traversal",
                "parameters": [{"name": "tournamentID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "No bracket"}}
            }
        },
        "/tournaments/{tournamentID}/bracket/path/{matchID}": {
            "get": {
                "tags": ["brackets"],
                "summary": "Matches from the final down to the given match",
                "parameters": [
                    {"name": "tournamentID", "in": "path", "required": true, "type": "integer"},
                    {"name": "matchID", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Match not in bracket"}}
            }
        },
        "/tournaments/{tournamentID}/bracket/export": {
            "post": {
                "tags": ["brackets"],
                "summary": "Upload the bracket JSON to object storage",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "tournamentID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Export not configured"}}
            }
        },
        "/matches/{matchID}/result": {
            "put": {
                "tags": ["matches"],
                "summary": "Record a match result; the previous state is kept for undo",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "matchID", "in": "path", "required": true, "type": "integer"},
                    {"name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordResultInput"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation failed"}, "404": {"description": "Match not found"}}
            }
        },
        "/matches/{matchID}/undo": {
            "post": {
                "tags": ["matches"],
                "summary": "Restore the most recent snapshot of a match",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "matchID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Nothing to undo"}}
            }
        },
        "/matches/{matchID}/history": {
            "get": {
                "tags": ["matches"],
                "summary": "Snapshots of a match, oldest first",
                "parameters": [{"name": "matchID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Match not found"}}
            }
        },
        "/groups/{groupID}/standings": {
            "get": {
                "tags": ["standings"],
                "summary": "Cached group table",
                "parameters": [{"name": "groupID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Group not found"}}
            }
        },
        "/groups/{groupID}/standings/cache": {
            "delete": {
                "tags": ["standings"],
                "summary": "Drop the cached table of a group",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "groupID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/standings/cache/stats": {
            "get": {
                "tags": ["standings"],
                "summary": "Standings cache statistics",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tournaments/{tournamentID}/registrations": {
            "post": {
                "tags": ["registrations"],
                "summary": "Register a team, or queue it when the tournament is full",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "tournamentID", "in": "path", "required": true, "type": "integer"},
                    {"name": "input", "in": "body", "required": true, "schema": {"type": "object", "properties": {"team_id": {"type": "integer"}}}}
                ],
                "responses": {"201": {"description": "Registered"}, "202": {"description": "Queued"}, "409": {"description": "Already registered or queued"}}
            }
        },
        "/tournaments/{tournamentID}/registrations/{teamID}": {
            "delete": {
                "tags": ["registrations"],
                "summary": "Withdraw a team; while registration is open the head of the waiting queue is admitted",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "tournamentID", "in": "path", "required": true, "type": "integer"},
                    {"name": "teamID", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not registered"}}
            }
        },
        "/tournaments/{tournamentID}/queue": {
            "get": {
                "tags": ["registrations"],
                "summary": "Waiting queue in FIFO order",
                "parameters": [{"name": "tournamentID", "in": "path", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tournaments/{tournamentID}/queue/{teamID}": {
            "get": {
                "tags": ["registrations"],
                "summary": "Queue position of a team",
                "parameters": [
                    {"name": "tournamentID", "in": "path", "required": true, "type": "integer"},
                    {"name": "teamID", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not queued"}}
            },
            "delete": {
                "tags": ["registrations"],
                "summary": "Leave the waiting queue",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "tournamentID", "in": "path", "required": true, "type": "integer"},
                    {"name": "teamID", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not queued"}}
            }
        }
    },
    "definitions": {
        "RecordResultInput": {
            "type": "object",
            "properties": {
                "score_home": {"type": "integer"},
                "score_away": {"type": "integer"},
                "winner_id": {"type": "integer"},
                "status": {"type": "string", "enum": ["scheduled", "live", "finished", "cancelled"]},
                "match_data": {"type": "string"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tournament Engine API",
	Description:      "Brackets, match results with undo, group standings and registration queues.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
