// ABOUTME: MCP tool handler implementations for the report QA server
// ABOUTME: Thin adapters from tool arguments onto the engine and history store
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/carelens/reportqa/internal/rag"
	"github.com/carelens/reportqa/internal/storage/sqlite"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine  *rag.Engine
	history *sqlite.DiagnosisStore
}

// UploadReport handles the upload_report tool
func (h *Handlers) UploadReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	username := request.GetString("username", "anonymous")

	result, err := h.engine.Ingest(ctx, "", text, username)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// AskQuestion handles the ask_question tool
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("document_id argument is required and must be a string"), nil
	}
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	username := request.GetString("username", "anonymous")

	result, err := h.engine.Answer(ctx, documentID, question, username)
	if err != nil {
		if errors.Is(err, rag.ErrNoChunks) {
			return mcp.NewToolResultText("No relevant content found for this document."), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// PatientHistory handles the patient_history tool
func (h *Handlers) PatientHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username, err := request.RequireString("username")
	if err != nil {
		return mcp.NewToolResultError("username argument is required and must be a string"), nil
	}

	records, err := h.history.ListByUsername(ctx, username)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(map[string]any{
		"username": username,
		"count":    len(records),
		"records":  records,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
