// ABOUTME: MCP tool definitions and registration for the report QA server
// ABOUTME: Exposes upload, question answering, and history over stdio MCP
package mcp

import (
	"github.com/carelens/reportqa/internal/rag"
	"github.com/carelens/reportqa/internal/storage/sqlite"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *rag.Engine, history *sqlite.DiagnosisStore) *Handlers {
	handlers := &Handlers{
		engine:  engine,
		history: history,
	}

	// upload_report - index a report's text for question answering
	server.AddTool(mcp.Tool{
		Name:        "upload_report",
		Description: "Index a medical report's text so questions can be answered from it. Returns the document id to ask against.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Full plain text of the report",
				},
				"username": map[string]interface{}{
					"type":        "string",
					"description": "Owner of the report (default: anonymous)",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.UploadReport)

	// ask_question - answer a question from one indexed report
	server.AddTool(mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question using only the content of one previously uploaded report.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "Document id returned by upload_report",
				},
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Natural-language question about the report",
				},
				"username": map[string]interface{}{
					"type":        "string",
					"description": "Who is asking (recorded in history)",
				},
			},
			Required: []string{"document_id", "question"},
		},
	}, handlers.AskQuestion)

	// patient_history - list past Q/A exchanges for a user
	server.AddTool(mcp.Tool{
		Name:        "patient_history",
		Description: "List past question/answer exchanges for a patient, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"username": map[string]interface{}{
					"type":        "string",
					"description": "Patient username to look up",
				},
			},
			Required: []string{"username"},
		},
	}, handlers.PatientHistory)

	return handlers
}
