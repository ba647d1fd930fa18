package api

// swaggerDoc is the API description served to the swagger UI. Maintained by
// hand; update it when routes change.
const swaggerDoc = `{
  "swagger": "2.0",
  "info": {
    "title": "Resume Insight Gateway API",
    "description": "Resume analysis dashboard gateway: upload resumes, track history, and enrich candidates with LeetCode/CodeChef/GitHub statistics",
    "version": "1.0",
    "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"}
  },
  "basePath": "/api",
  "paths": {
    "/resume/upload": {
      "post": {
        "tags": ["resume"],
        "summary": "Upload and analyze a resume",
        "description": "Upload a resume file, receive the parsed candidate record, and trigger platform enrichment",
        "consumes": ["multipart/form-data"],
        "produces": ["application/json"],
        "parameters": [
          {"name": "file", "in": "formData", "type": "file", "required": true, "description": "Resume file (PDF)"}
        ],
        "responses": {
          "200": {"description": "Parsed candidate record"},
          "400": {"description": "No file, oversized upload, or a server-reported analysis error"},
          "502": {"description": "Unexpected response from the analysis service"}
        }
      }
    },
    "/record": {
      "get": {
        "summary": "Current candidate record",
        "produces": ["application/json"],
        "responses": {"200": {"description": "Active candidate record"}}
      }
    },
    "/history": {
      "get": {
        "summary": "Analysis history",
        "produces": ["application/json"],
        "responses": {"200": {"description": "History entries, newest first, plus the current selection id"}}
      }
    },
    "/history/{id}/select": {
      "post": {
        "summary": "Select a history entry",
        "parameters": [
          {"name": "id", "in": "path", "type": "integer", "required": true, "description": "History entry id"}
        ],
        "responses": {
          "204": {"description": "Selection moved"},
          "400": {"description": "Invalid id"},
          "409": {"description": "Entry unknown or not selectable"}
        }
      }
    },
    "/logout": {
      "post": {
        "summary": "Log out",
        "responses": {"204": {"description": "Selection cleared, active record reset"}}
      }
    },
    "/messages": {
      "get": {
        "summary": "Status messages",
        "produces": ["application/json"],
        "responses": {"200": {"description": "Current status message snapshot"}}
      }
    },
    "/series/{platform}": {
      "get": {
        "summary": "Activity series",
        "description": "Normalized per-day activity for the active record's platform slot; series is null when there is no data",
        "produces": ["application/json"],
        "parameters": [
          {"name": "platform", "in": "path", "type": "string", "required": true, "enum": ["leetcode", "codechef", "github"], "description": "Platform"}
        ],
        "responses": {
          "200": {"description": "Labels and counts sorted by date"},
          "400": {"description": "Unknown platform"}
        }
      }
    },
    "/report": {
      "get": {
        "summary": "Download analysis report",
        "produces": ["text/plain"],
        "responses": {"200": {"description": "Plain-text analysis report"}}
      }
    }
  }
}
`
