package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/config"
	"github.com/aretw0/reel/internal/dto"
	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/aretw0/reel/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CountersURI is the resource listing every hosted counter.
const CountersURI = "reel://counters"

// Server exposes a session.Manager as an MCP Server.
type Server struct {
	manager   *session.Manager
	presets   ports.PresetSource
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithPresets lets set_counter start from a named preset.
func WithPresets(src ports.PresetSource) Option {
	return func(s *Server) {
		s.presets = src
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(manager *session.Manager, opts ...Option) *Server {
	s := &Server{
		manager:   manager,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("reel-mcp", strings.TrimSpace(reel.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and shuts it down when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

const valueHelp = "Counter value as text. A JSON array (e.g. [\"cherry\",\"lemon\"]) is a sequence of symbols."

func (s *Server) registerTools() {
	// TOOL: plan_transition
	s.mcpServer.AddTool(mcp.NewTool("plan_transition",
		mcp.WithDescription("Plan the reel animation from one value to another without creating a counter."),
		mcp.WithString("old", mcp.Description(valueHelp+" Defaults to empty.")),
		mcp.WithString("new", mcp.Required(), mcp.Description(valueHelp)),
		mcp.WithObject("options", mcp.Description("Counter options (duration, dummy_character_count, sequential_animation_mode, ...)")),
		mcp.WithBoolean("manual", mcp.Description("Plan a replay in which every slot spins")),
		mcp.WithNumber("seed", mcp.Description("Non-zero seed for reproducible filler")),
		mcp.WithOutputSchema[dto.PlanResponse](),
	), mcp.NewStructuredToolHandler(s.handlePlan))

	// TOOL: set_counter
	s.mcpServer.AddTool(mcp.NewTool("set_counter",
		mcp.WithDescription("Create a counter or replace its options."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Counter ID")),
		mcp.WithObject("options", mcp.Required(), mcp.Description("Counter options, including value")),
		mcp.WithString("preset", mcp.Description("Preset to start from")),
		mcp.WithOutputSchema[dto.CounterView](),
	), mcp.NewStructuredToolHandler(s.handleSetCounter))

	// TOOL: set_value
	s.mcpServer.AddTool(mcp.NewTool("set_value",
		mcp.WithDescription("Change a counter's value, animating the transition."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Counter ID")),
		mcp.WithString("value", mcp.Required(), mcp.Description(valueHelp)),
		mcp.WithOutputSchema[dto.CounterView](),
	), mcp.NewStructuredToolHandler(s.handleSetValue))

	// TOOL: start_animation
	s.mcpServer.AddTool(mcp.NewTool("start_animation",
		mcp.WithDescription("Replay a counter's animation, optionally overriding timing for this run only."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Counter ID")),
		mcp.WithNumber("duration", mcp.Description("Base duration in seconds")),
		mcp.WithNumber("dummy_character_count", mcp.Description("Filler length per slot")),
		mcp.WithString("direction", mcp.Enum(string(domain.DirectionTopDown), string(domain.DirectionBottomUp))),
		mcp.WithOutputSchema[dto.CounterView](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	// TOOL: stop_animation
	s.mcpServer.AddTool(mcp.NewTool("stop_animation",
		mcp.WithDescription("Snap every slot of a counter to its target."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Counter ID")),
		mcp.WithOutputSchema[dto.CounterView](),
	), mcp.NewStructuredToolHandler(s.handleStop))

	// TOOL: get_counter
	s.mcpServer.AddTool(mcp.NewTool("get_counter",
		mcp.WithDescription("Get the displayed tokens, state and latest timeline of a counter."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Counter ID")),
		mcp.WithOutputSchema[dto.CounterView](),
	), mcp.NewStructuredToolHandler(s.handleGet))

	// TOOL: list_counters
	s.mcpServer.AddTool(mcp.NewTool("list_counters",
		mcp.WithDescription("List hosted counter IDs."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.manager.List(ctx))
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handlePlan(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (dto.PlanResponse, error) {
	optsRaw, _ := args["options"].(map[string]any)
	opts, err := config.DecodeOptions(optsRaw)
	if err != nil {
		return dto.PlanResponse{}, err
	}

	oldRaw, _ := args["old"].(string)
	newRaw, _ := args["new"].(string)
	manual, _ := args["manual"].(bool)

	var options []reel.Option
	if seed, ok := args["seed"].(float64); ok && seed != 0 {
		options = append(options, reel.WithSeed(int64(seed)))
	}

	planned, err := reel.Preview(parseValue(oldRaw), parseValue(newRaw), opts, manual, options...)
	if err != nil {
		return dto.PlanResponse{}, fmt.Errorf("plan failed: %w", err)
	}
	return dto.NewPlanResponse(planned), nil
}

func (s *Server) handleSetCounter(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (dto.CounterView, error) {
	id, _ := args["id"].(string)
	optsRaw, _ := args["options"].(map[string]any)
	presetID, _ := args["preset"].(string)

	spec, err := config.ParseCounter(optsRaw, id)
	if err != nil {
		return dto.CounterView{}, err
	}
	if presetID != "" {
		spec.Preset = presetID
	}

	opts := spec.Options
	if spec.Preset != "" {
		if s.presets == nil {
			return dto.CounterView{}, errors.New("presets are not configured")
		}
		preset, err := s.presets.GetPreset(ctx, spec.Preset)
		if err != nil {
			return dto.CounterView{}, err
		}
		if opts, err = spec.Resolve(preset); err != nil {
			return dto.CounterView{}, err
		}
	}

	counter, err := s.manager.Put(ctx, id, opts)
	if err != nil {
		return dto.CounterView{}, err
	}
	return dto.NewCounterView(counter), nil
}

func (s *Server) handleSetValue(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (dto.CounterView, error) {
	raw, _ := args["value"].(string)
	return s.withCounter(ctx, args, func(ctx context.Context, c *reel.Counter) error {
		return c.SetValue(ctx, parseValue(raw))
	})
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (dto.CounterView, error) {
	raw := make(map[string]any)
	for _, key := range []string{"duration", "dummy_character_count", "direction"} {
		if v, ok := args[key]; ok {
			raw[key] = v
		}
	}
	ov, err := config.DecodeOverrides(raw)
	if err != nil {
		return dto.CounterView{}, err
	}
	return s.withCounter(ctx, args, func(ctx context.Context, c *reel.Counter) error {
		return c.StartAnimation(ctx, ov)
	})
}

func (s *Server) handleStop(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (dto.CounterView, error) {
	return s.withCounter(ctx, args, func(ctx context.Context, c *reel.Counter) error {
		c.StopAnimation(ctx)
		return nil
	})
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (dto.CounterView, error) {
	return s.withCounter(ctx, args, nil)
}

func (s *Server) withCounter(ctx context.Context, args map[string]any, fn func(context.Context, *reel.Counter) error) (dto.CounterView, error) {
	id, _ := args["id"].(string)

	var view dto.CounterView
	err := s.manager.Do(ctx, id, func(ctx context.Context, c *reel.Counter) error {
		if fn != nil {
			if err := fn(ctx, c); err != nil {
				return err
			}
		}
		view = dto.NewCounterView(c)
		return nil
	})
	if err != nil {
		s.logger.Debug("MCP tool rejected", "counter", id, "err", err)
		return dto.CounterView{}, err
	}
	return view, nil
}

// parseValue reads a tool argument as a value. JSON arrays become unit sequences.
func parseValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var units []any
		if err := json.Unmarshal([]byte(trimmed), &units); err == nil {
			return units
		}
	}
	return raw
}

func (s *Server) registerResources() {
	// EXPOSE: reel://counters
	s.mcpServer.AddResource(mcp.NewResource(CountersURI, "Hosted Counters",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		views := make([]dto.CounterView, 0)
		for _, id := range s.manager.List(ctx) {
			c, err := s.manager.Get(ctx, id)
			if err != nil {
				continue
			}
			views = append(views, dto.NewCounterView(c))
		}
		jsonBytes, err := json.Marshal(views)
		if err != nil {
			return nil, fmt.Errorf("failed to encode counters: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CountersURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
