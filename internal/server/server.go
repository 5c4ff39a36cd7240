// Package server exposes the layout pipeline over HTTP.
//
// The API is a thin shell around [pipeline.Runner]: one endpoint
// computes layouts, the rest report what the service is and how it
// feels. Artifact rendering stays in the CLI; HTTP clients get layout
// JSON and draw it themselves.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/graphmotion/graphmotion/pkg/buildinfo"
	apperrors "github.com/graphmotion/graphmotion/pkg/errors"
	"github.com/graphmotion/graphmotion/pkg/events"
	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/layout/engines"
	"github.com/graphmotion/graphmotion/pkg/pipeline"
)

// maxRequestBody caps layout request bodies at 10 MiB. Datasets past
// that size should arrive by hash after an offline upload.
const maxRequestBody = 10 << 20

// GenerationHeader carries the ID of the layout run that produced a
// response. Event consumers can correlate on the same value.
const GenerationHeader = "X-Generation-Id"

// Server handles layout requests over HTTP.
type Server struct {
	runner    *pipeline.Runner
	publisher events.Publisher
	logger    *log.Logger
}

// NewServer creates a server around a runner. A nil publisher disables
// event emission, a nil logger discards request logs.
func NewServer(runner *pipeline.Runner, publisher events.Publisher, logger *log.Logger) *Server {
	if publisher == nil {
		publisher = &events.NoopPublisher{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, publisher: publisher, logger: logger}
}

// Handler returns the routed HTTP handler with all middleware attached.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Post("/v1/layout", s.handleLayout)
	r.Get("/v1/engines", s.handleEngines)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/version", s.handleVersion)
	return r
}

// LayoutResponse is the body returned by POST /v1/layout.
type LayoutResponse struct {
	Generation    string       `json:"generation"`
	DatasetHash   string       `json:"dataset_hash"`
	Layout        graph.Layout `json:"layout"`
	Steps         int          `json:"steps"`
	DatasetCached bool         `json:"dataset_cached"`
	LayoutCached  bool         `json:"layout_cached"`
}

// handleLayout handles POST /v1/layout. The request body is a
// [pipeline.Options] document carrying the dataset (inline or by hash)
// and the layout knobs; the response is the computed layout.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if opts.DatasetPath != "" {
		// Server-side file reads are a CLI affair.
		writeError(w, http.StatusBadRequest, "dataset_path is not accepted over HTTP; send the dataset inline or by hash")
		return
	}
	opts.Logger = s.logger

	ctx := r.Context()
	generation := uuid.NewString()

	g, hash, parseHit, err := s.runner.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		writeCodedError(w, err)
		return
	}

	opts.SetLayoutDefaults()
	_ = s.publisher.Publish(ctx, events.TopicLayoutStarted, events.LayoutStarted{
		Generation: generation,
		Engine:     opts.Engine,
		Nodes:      len(g.Nodes),
		Edges:      len(g.Edges),
	})

	start := time.Now()
	l, steps, layoutHit, err := s.runner.ComputeLayoutWithCacheInfo(ctx, g, hash, opts)
	if err != nil {
		_ = s.publisher.Publish(ctx, events.TopicLayoutStopped, events.LayoutStopped{
			Generation: generation,
			Engine:     opts.Engine,
			Reason:     apperrors.UserMessage(err),
		})
		writeCodedError(w, err)
		return
	}

	_ = s.publisher.Publish(ctx, events.TopicLayoutSettled, events.LayoutSettled{
		Generation: generation,
		Engine:     opts.Engine,
		Nodes:      len(l.Nodes),
		Iterations: steps,
		DurationMS: time.Since(start).Milliseconds(),
	})

	w.Header().Set(GenerationHeader, generation)
	writeJSON(w, http.StatusOK, LayoutResponse{
		Generation:    generation,
		DatasetHash:   hash,
		Layout:        l,
		Steps:         steps,
		DatasetCached: parseHit,
		LayoutCached:  layoutHit,
	})
}

// EngineInfo describes one selectable engine.
type EngineInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// handleEngines handles GET /v1/engines.
func (s *Server) handleEngines(w http.ResponseWriter, _ *http.Request) {
	infos := make([]EngineInfo, 0, len(engines.All))
	for _, e := range engines.All {
		infos = append(infos, EngineInfo{Name: e.Name, Description: e.Description})
	}
	writeJSON(w, http.StatusOK, map[string]any{"engines": infos})
}

// handleHealthz handles GET /healthz.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion handles GET /version.
func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeCodedError maps a pipeline error to an HTTP status by its code.
func writeCodedError(w http.ResponseWriter, err error) {
	writeError(w, statusForError(err), apperrors.UserMessage(err))
}

func statusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidDataset,
		apperrors.ErrCodeInvalidEngine, apperrors.ErrCodeInvalidOrientation,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidLayout,
		apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound,
		apperrors.ErrCodeLayoutNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
