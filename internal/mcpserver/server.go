// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Ansuz tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/contact"
	"github.com/starford/ansuz/internal/content"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/tracker"
)

// Server wraps the MCP server with Ansuz tools.
type Server struct {
	mcp      *server.MCPServer
	store    *content.Store
	pipeline *contact.Pipeline
	track    *tracker.Tracker
}

// New creates a new MCP server with all Ansuz tools registered.
func New(store *content.Store, pipeline *contact.Pipeline, track *tracker.Tracker) *Server {
	s := &Server{store: store, pipeline: pipeline, track: track}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_profile",
		mcp.WithDescription("Read the portfolio owner's profile (name, headline, bio, contact email)."),
	), s.getProfile)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List portfolio projects with descriptions, tech stacks, and links."),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("list_skills",
		mcp.WithDescription("List skill categories with per-skill proficiency levels (0-100)."),
	), s.listSkills)

	s.mcp.AddTool(mcp.NewTool("list_experience",
		mcp.WithDescription("List work experience entries in timeline order."),
	), s.listExperience)

	s.mcp.AddTool(mcp.NewTool("send_message",
		mcp.WithDescription("Send a message to the portfolio owner through the contact pipeline. "+
			"All fields are validated; message must be at least 10 characters."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Sender name")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Sender email address")),
		mcp.WithString("subject", mcp.Required(), mcp.Description("Message subject")),
		mcp.WithString("message", mcp.Required(), mcp.Description("Message body (min 10 characters)")),
	), s.sendMessage)

	s.mcp.AddTool(mcp.NewTool("current_section",
		mcp.WithDescription("Report which page section viewers are currently reading."),
	), s.currentSection)

	// Resource: owner profile.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://profile", "Owner Profile",
			mcp.WithResourceDescription("Portfolio owner profile as JSON."),
			mcp.WithMIMEType("application/json"),
		),
		s.readProfileResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) getProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.store.Profile(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.store.Site().Projects, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listSkills(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.store.Site().Skills, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listExperience(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.store.Site().Experience, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) sendMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg := models.ContactMessage{}
	var err error
	if msg.Name, err = req.RequireString("name"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if msg.Email, err = req.RequireString("email"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if msg.Subject, err = req.RequireString("subject"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if msg.Message, err = req.RequireString("message"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.pipeline.Submit(ctx, msg); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("message sent"), nil
}

func (s *Server) currentSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cur := s.track.Current()
	if cur == "" {
		return mcp.NewToolResultText("no section tracked yet"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("current section: %s", cur)), nil
}

func (s *Server) readProfileResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	out, err := json.MarshalIndent(s.store.Profile(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://profile",
			MIMEType: "application/json",
			Text:     string(out),
		},
	}, nil
}
