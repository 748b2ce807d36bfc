package base

import (
	"net/http"
	"slices"
	"sync"

	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/samber/lo"
)

// Endpoint describes one logical operation of a gateway
type Endpoint struct {
	Name   string
	Path   string // may contain {param} placeholders
	Method string // http.MethodGet or http.MethodPost
	// BaseURL overrides the client base URL for this operation only
	BaseURL  string
	Encoding Encoding
	// DryRun marks browser flows whose request is handed to the card holder instead of sent
	DryRun  bool
	Handler Handler
}

// encoding resolves the effective wire encoding. GET always uses the query string.
func (e Endpoint) encoding() Encoding {
	if e.Method == http.MethodGet {
		return EncodingQuery
	}
	if e.Encoding == "" {
		return EncodingJSON
	}
	return e.Encoding
}

// WireEncoding reports how the endpoint sends its fields
func (e Endpoint) WireEncoding() Encoding {
	return e.encoding()
}

var supportedMethods = []string{http.MethodGet, http.MethodPost}

// Registry maps operation names to endpoints
type Registry struct {
	mu        sync.RWMutex
	endpoints map[string]Endpoint
	logger    *logger.Logger
}

func NewRegistry(logger *logger.Logger) *Registry {
	return &Registry{
		endpoints: make(map[string]Endpoint),
		logger:    logger,
	}
}

// Register adds ep. Registering a name twice overwrites the earlier endpoint and
// logs a warning. Endpoints without a handler get the passthrough handler.
func (r *Registry) Register(ep Endpoint) error {
	if ep.Name == "" {
		return ierr.NewError("endpoint name is required").
			WithHint("Every endpoint needs an operation name").
			Mark(ierr.ErrConfiguration)
	}
	if ep.Path == "" {
		return ierr.NewErrorf("endpoint %s has no path", ep.Name).
			WithHint("Every endpoint needs a path").
			WithReportableDetails(map[string]any{"operation": ep.Name}).
			Mark(ierr.ErrConfiguration)
	}
	if !lo.Contains(supportedMethods, ep.Method) {
		return ierr.NewErrorf("endpoint %s uses unsupported method %q", ep.Name, ep.Method).
			WithHint("Only GET and POST endpoints are supported").
			WithReportableDetails(map[string]any{"operation": ep.Name, "method": ep.Method}).
			Mark(ierr.ErrConfiguration)
	}
	if ep.Handler == nil {
		ep.Handler = Passthrough("")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, exists := r.endpoints[ep.Name]; exists {
		r.logger.Warnw("endpoint registered twice, last registration wins",
			"operation", ep.Name,
			"previous_path", prev.Path,
			"path", ep.Path)
	}
	r.endpoints[ep.Name] = ep
	return nil
}

// Lookup returns the endpoint registered under name
func (r *Registry) Lookup(name string) (Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ep, ok := r.endpoints[name]
	return ep, ok
}

// Names returns the registered operation names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := lo.Keys(r.endpoints)
	slices.Sort(names)
	return names
}
