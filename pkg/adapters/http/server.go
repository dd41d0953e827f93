package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/config"
	"github.com/aretw0/reel/internal/dto"
	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/aretw0/reel/pkg/session"
	"github.com/go-chi/chi/v5"
)

// Server exposes a session.Manager over HTTP.
type Server struct {
	Manager *session.Manager
	Streams *StreamManager

	subscriber ports.TimelineSubscriber
	presets    ports.PresetSource
	logger     *slog.Logger

	apiVersion func() string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSubscriber enables the timeline event stream.
func WithSubscriber(sub ports.TimelineSubscriber) Option {
	return func(s *Server) {
		s.subscriber = sub
	}
}

// WithPresets enables the preset endpoints and the "preset" key of counter bodies.
func WithPresets(src ports.PresetSource) Option {
	return func(s *Server) {
		s.presets = src
	}
}

// New creates a server for manager.
func New(manager *session.Manager, opts ...Option) *Server {
	s := &Server{
		Manager: manager,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	s.apiVersion = sync.OnceValue(func() string {
		doc, err := Spec(context.Background())
		if err != nil || doc.Info == nil {
			s.logger.Error("Failed to load OpenAPI spec", "err", err)
			return "unknown"
		}
		return doc.Info.Version
	})
	return s
}

// NewHandler creates the HTTP handler for manager.
func NewHandler(manager *session.Manager, opts ...Option) http.Handler {
	return New(manager, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(RawSpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	r.Get("/info", s.GetInfo)
	r.Post("/plan", s.Plan)

	r.Route("/counters", func(r chi.Router) {
		r.Get("/", s.ListCounters)
		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", s.PutCounter)
			r.Get("/", s.GetCounter)
			r.Delete("/", s.DeleteCounter)
			r.Post("/value", s.SetValue)
			r.Post("/start", s.StartAnimation)
			r.Post("/stop", s.StopAnimation)
			r.Get("/timeline", s.GetTimeline)
			r.Get("/events", s.SubscribeTimelines)
			r.Get("/frames", s.SubscribeFrames)
		})
	})

	r.Get("/presets", s.ListPresets)
	r.Get("/presets/{id}", s.GetPreset)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Reel API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"app":         "reel-http",
		"version":     strings.TrimSpace(reel.Version),
		"api_version": s.apiVersion(),
	})
}

// Plan handles the POST /plan request.
func (s *Server) Plan(w http.ResponseWriter, r *http.Request) {
	var body dto.PlanRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeError(w, s.logger, "Plan", err)
		return
	}

	opts, err := config.DecodeOptions(body.Options)
	if err != nil {
		writeError(w, s.logger, "Plan", fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	old := body.Old
	if old == nil {
		old = ""
	}

	var options []reel.Option
	if body.Seed != 0 {
		options = append(options, reel.WithSeed(body.Seed))
	}

	planned, err := reel.Preview(old, body.New, opts, body.Manual, options...)
	if err != nil {
		writeError(w, s.logger, "Plan", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, dto.NewPlanResponse(planned))
}

// ListCounters handles the GET /counters request.
func (s *Server) ListCounters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, s.Manager.List(r.Context()))
}

// PutCounter handles the PUT /counters/{id} request.
func (s *Server) PutCounter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var raw map[string]any
	if err := decodeBody(r, &raw, false); err != nil {
		writeError(w, s.logger, "PutCounter", err)
		return
	}

	opts, err := s.resolveCounter(r.Context(), id, raw)
	if err != nil {
		writeError(w, s.logger, "PutCounter", err)
		return
	}

	counter, err := s.Manager.Put(r.Context(), id, opts)
	if err != nil {
		writeError(w, s.logger, "PutCounter", err)
		return
	}
	s.logger.Info("Counter configured", "counter", id)
	writeJSON(w, s.logger, http.StatusOK, dto.NewCounterView(counter))
}

func (s *Server) resolveCounter(ctx context.Context, id string, raw map[string]any) (domain.Options, error) {
	spec, err := config.ParseCounter(raw, id)
	if err != nil {
		return domain.Options{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	if spec.Preset == "" {
		return spec.Options, nil
	}
	if s.presets == nil {
		return domain.Options{}, fmt.Errorf("%w: presets are not configured", errBadRequest)
	}

	preset, err := s.presets.GetPreset(ctx, spec.Preset)
	if err != nil {
		if errors.Is(err, domain.ErrPresetNotFound) {
			return domain.Options{}, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		return domain.Options{}, err
	}
	opts, err := spec.Resolve(preset)
	if err != nil {
		return domain.Options{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return opts, nil
}

// GetCounter handles the GET /counters/{id} request.
func (s *Server) GetCounter(w http.ResponseWriter, r *http.Request) {
	s.respondCounter(w, r, "GetCounter", nil)
}

// DeleteCounter handles the DELETE /counters/{id} request.
func (s *Server) DeleteCounter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Manager.Delete(r.Context(), id); err != nil {
		writeError(w, s.logger, "DeleteCounter", err)
		return
	}
	s.logger.Info("Counter deleted", "counter", id)
	w.WriteHeader(http.StatusNoContent)
}

// SetValue handles the POST /counters/{id}/value request.
func (s *Server) SetValue(w http.ResponseWriter, r *http.Request) {
	var body dto.ValueRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeError(w, s.logger, "SetValue", err)
		return
	}
	s.respondCounter(w, r, "SetValue", func(ctx context.Context, c *reel.Counter) error {
		return c.SetValue(ctx, body.Value)
	})
}

// StartAnimation handles the POST /counters/{id}/start request.
func (s *Server) StartAnimation(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := decodeBody(r, &raw, true); err != nil {
		writeError(w, s.logger, "StartAnimation", err)
		return
	}
	ov, err := config.DecodeOverrides(raw)
	if err != nil {
		writeError(w, s.logger, "StartAnimation", fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	s.respondCounter(w, r, "StartAnimation", func(ctx context.Context, c *reel.Counter) error {
		return c.StartAnimation(ctx, ov)
	})
}

// StopAnimation handles the POST /counters/{id}/stop request.
func (s *Server) StopAnimation(w http.ResponseWriter, r *http.Request) {
	s.respondCounter(w, r, "StopAnimation", func(ctx context.Context, c *reel.Counter) error {
		c.StopAnimation(ctx)
		return nil
	})
}

// GetTimeline handles the GET /counters/{id}/timeline request.
func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	var timeline *domain.Timeline
	err := s.Manager.Do(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, c *reel.Counter) error {
		tl, err := c.Timeline()
		timeline = tl
		return err
	})
	if err != nil {
		writeError(w, s.logger, "GetTimeline", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, timeline)
}

// respondCounter runs fn (if any) under the counter's lock and writes its view.
func (s *Server) respondCounter(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, *reel.Counter) error) {
	var view dto.CounterView
	err := s.Manager.Do(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, c *reel.Counter) error {
		if fn != nil {
			if err := fn(ctx, c); err != nil {
				return err
			}
		}
		view = dto.NewCounterView(c)
		return nil
	})
	if err != nil {
		writeError(w, s.logger, op, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, view)
}

// ListPresets handles the GET /presets request.
func (s *Server) ListPresets(w http.ResponseWriter, r *http.Request) {
	if s.presets == nil {
		writeJSON(w, s.logger, http.StatusOK, []string{})
		return
	}
	ids, err := s.presets.ListPresets(r.Context())
	if err != nil {
		writeError(w, s.logger, "ListPresets", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, ids)
}

// GetPreset handles the GET /presets/{id} request.
func (s *Server) GetPreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.presets == nil {
		writeError(w, s.logger, "GetPreset", fmt.Errorf("%w: %s", domain.ErrPresetNotFound, id))
		return
	}
	preset, err := s.presets.GetPreset(r.Context(), id)
	if err != nil {
		writeError(w, s.logger, "GetPreset", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, preset)
}

// PublishFrames forwards frames to the SSE clients following their counters.
func (s *Server) PublishFrames(frames []domain.Frame) {
	for _, f := range frames {
		if s.Streams.Subscribers(f.CounterID) == 0 {
			continue
		}
		data, err := json.Marshal(frameEvent{Frame: f, Text: f.Text()})
		if err != nil {
			s.logger.Error("Frame encode failed", "counter", f.CounterID, "err", err)
			continue
		}
		s.Streams.Broadcast(f.CounterID, string(data))
	}
}

type frameEvent struct {
	domain.Frame
	Text string `json:"text"`
}

// SubscribeTimelines handles the GET /counters/{id}/events request (SSE).
func (s *Server) SubscribeTimelines(w http.ResponseWriter, r *http.Request) {
	if s.subscriber == nil {
		http.Error(w, "Timeline streaming not configured", http.StatusNotImplemented)
		return
	}
	id := chi.URLParam(r, "id")
	s.logger.Info("SSE: Subscribing to timelines", "counter", id)
	timelines := s.subscriber.Subscribe(r.Context(), id)

	flusher, ok := startStream(w)
	if !ok {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "counter", id)
			return
		case tl, ok := <-timelines:
			if !ok {
				return
			}
			data, err := json.Marshal(tl)
			if err != nil {
				s.logger.Error("Timeline encode failed", "counter", id, "err", err)
				continue
			}
			fmt.Fprintf(w, "event: timeline\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// SubscribeFrames handles the GET /counters/{id}/frames request (SSE).
func (s *Server) SubscribeFrames(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	flusher, ok := startStream(w)
	if !ok {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: frame\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func startStream(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return nil, false
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	return flusher, true
}

func decodeBody(r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return nil
}
