package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"clickup-mcp-server/internal/domain"
)

// Server is the main MCP server implementation.
// It orchestrates the transport layer, request routing, and the MCP
// protocol methods (initialize, tools/list, tools/call).
type Server struct {
	transport domain.Transport
	router    *RequestRouter
	config    *domain.Config
	mapper    domain.ResponseMapper
	log       *logrus.Entry
}

// NewServer creates a new MCP server instance.
func NewServer(
	transport domain.Transport,
	router *RequestRouter,
	config *domain.Config,
	log *logrus.Entry,
) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{
		transport: transport,
		router:    router,
		config:    config,
		mapper:    domain.NewResponseMapper(),
		log:       log.WithField("component", "server"),
	}
}

// Start begins the server operation.
// It starts the transport layer and begins processing incoming requests.
func (s *Server) Start(ctx context.Context) error {
	if err := s.transport.Start(ctx); err != nil {
		s.log.WithError(err).WithField("transport_type", s.config.Transport.Type).
			Error("failed to start transport")
		return fmt.Errorf("failed to start transport: %w", err)
	}

	s.log.WithField("transport_type", s.config.Transport.Type).Info("server started")

	go s.processRequests(ctx)

	return nil
}

// processRequests continuously processes incoming JSON-RPC requests.
func (s *Server) processRequests(ctx context.Context) {
	reqChan := s.transport.Receive()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("server shutting down")
			return
		case req, ok := <-reqChan:
			if !ok {
				// Channel closed, transport is shutting down
				return
			}

			s.handleRequest(ctx, req)
		}
	}
}

// handleRequest processes a single JSON-RPC request.
func (s *Server) handleRequest(ctx context.Context, req *domain.Request) {
	s.log.WithFields(logrus.Fields{
		"method":     req.Method,
		"request_id": req.ID,
	}).Debug("received request")

	if err := s.validateRequest(req); err != nil {
		s.sendErrorResponse(req.ID, domain.InvalidRequest, "Invalid Request", err.Error())
		return
	}

	var response *domain.Response
	var err error

	switch req.Method {
	case "initialize":
		response, err = s.handleInitialize(req)
	case "tools/list":
		response, err = s.handleToolsList(req)
	case "tools/call":
		response, err = s.handleToolsCall(ctx, req)
	default:
		s.sendErrorResponse(req.ID, domain.MethodNotFound, "Method not found", fmt.Sprintf("unknown method: %s", req.Method))
		return
	}

	if err != nil {
		// Error response already sent by the method handler.
		s.log.WithError(err).WithFields(logrus.Fields{
			"method":     req.Method,
			"request_id": req.ID,
		}).Error("request processing failed")
		return
	}

	if err := s.transport.Send(response); err != nil {
		s.log.WithError(err).WithField("request_id", req.ID).Error("failed to send response")
	}
}

// validateRequest validates the basic structure of a JSON-RPC request.
func (s *Server) validateRequest(req *domain.Request) error {
	if req.JSONRPC != "2.0" {
		return fmt.Errorf("invalid jsonrpc version: %s", req.JSONRPC)
	}

	if req.Method == "" {
		return fmt.Errorf("method is required")
	}

	return nil
}

// handleInitialize handles the MCP initialize method.
// This is the initial handshake between client and server.
func (s *Server) handleInitialize(req *domain.Request) (*domain.Response, error) {
	result := map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "clickup-mcp-server",
			"version": "1.0.0",
		},
	}

	return &domain.Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}, nil
}

// handleToolsList handles the MCP tools/list method.
// Returns all available tools from registered handlers.
func (s *Server) handleToolsList(req *domain.Request) (*domain.Response, error) {
	result := map[string]interface{}{
		"tools": s.router.ListAllTools(),
	}

	return &domain.Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}, nil
}

// handleToolsCall handles the MCP tools/call method.
// Executes a tool call by routing it to the appropriate handler.
func (s *Server) handleToolsCall(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	toolReq, err := s.parseToolRequest(req.Params)
	if err != nil {
		s.sendErrorResponse(req.ID, domain.InvalidParams, "Invalid params", err.Error())
		return nil, err
	}

	toolResp, err := s.router.Route(ctx, toolReq)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"tool":       toolReq.Name,
			"request_id": req.ID,
		}).Error("tool execution failed")

		s.sendMappedError(req.ID, err)
		return nil, err
	}

	return &domain.Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  toolResp,
	}, nil
}

// parseToolRequest parses the params field into a ToolRequest.
func (s *Server) parseToolRequest(params interface{}) (*domain.ToolRequest, error) {
	if params == nil {
		return nil, fmt.Errorf("params is required for tools/call")
	}

	// Round-trip through JSON to handle both map[string]interface{} and
	// already-parsed structs.
	jsonData, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	var toolReq domain.ToolRequest
	if err := json.Unmarshal(jsonData, &toolReq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tool request: %w", err)
	}

	if toolReq.Name == "" {
		return nil, fmt.Errorf("tool name is required")
	}

	if toolReq.Arguments == nil {
		toolReq.Arguments = make(map[string]interface{})
	}

	return &toolReq, nil
}

// sendMappedError maps an error to an appropriate JSON-RPC error and sends it.
func (s *Server) sendMappedError(id interface{}, err error) {
	var rpcErr *domain.Error
	if errors.As(err, &rpcErr) {
		s.sendErrorResponse(id, rpcErr.Code, rpcErr.Message, rpcErr.Data)
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		mapped := s.mapper.MapError(httpErr)
		s.sendErrorResponse(id, mapped.Code, mapped.Message, mapped.Data)
		return
	}

	s.sendErrorResponse(id, domain.InternalError, "Internal error", err.Error())
}

// sendErrorResponse sends a JSON-RPC error response.
func (s *Server) sendErrorResponse(id interface{}, code int, message string, data interface{}) {
	response := &domain.Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &domain.Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}

	if err := s.transport.Send(response); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"request_id": id,
			"error_code": code,
		}).Error("failed to send error response")
	}
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	s.log.Info("closing server")
	return s.transport.Close()
}
