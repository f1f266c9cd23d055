package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	qgraphql "github.com/quithub/qgraphql"
	"github.com/quithub/qgraphql/internal/elaborate"
	eventbus "github.com/quithub/qgraphql/internal/eventbus"
	events "github.com/quithub/qgraphql/internal/events"
	gvalue "github.com/quithub/qgraphql/internal/gvalue"
	"github.com/quithub/qgraphql/internal/mapping"
	reqid "github.com/quithub/qgraphql/internal/reqid"
	"github.com/quithub/qgraphql/internal/result"
	schema "github.com/quithub/qgraphql/internal/schema"
)

// Handler is an http.Handler that compiles posted GraphQL operations
// and returns the resulting plan tree (or the accumulated problem
// list) as JSON. It never executes a plan against live data — that's
// the runtime interpreter the compiler hands off to, out of scope here.
type Handler struct {
	schema     *schema.Schema
	elaborator *elaborate.SelectElaborator
	mappings   map[string]*mapping.ObjectMapping
	opt        Options
}

type Options struct {
	// Timeout sets a default timeout if the incoming request context has none.
	// 0 means no default timeout.
	Timeout time.Duration

	// Pretty enables indented JSON responses (useful for dev).
	Pretty bool

	// MaxBodyBytes limits the size of the request body. 0 means unlimited.
	MaxBodyBytes int64

	// CORS configuration. If AllowedOrigins is empty, CORS is disabled.
	CORS CORSOptions

	// GraphiQL enables the in-browser compile form (graphiqlPage) when true.
	GraphiQL bool
}

type Option func(*Options)

func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }
func WithPretty() Option                 { return func(o *Options) { o.Pretty = true } }
func WithMaxBodyBytes(n int64) Option    { return func(o *Options) { o.MaxBodyBytes = n } }
func WithGraphiQL(enable bool) Option    { return func(o *Options) { o.GraphiQL = enable } }
func WithCORS(origins ...string) Option {
	return func(o *Options) { o.CORS.AllowedOrigins = origins }
}

// CORSOptions holds simple CORS settings.
type CORSOptions struct {
	AllowedOrigins []string
}

// New creates a GraphQL compile-and-render HTTP handler. elaborator
// and mappings may be nil, matching a schema with no per-type select
// handlers or component delegations registered.
func New(sch *schema.Schema, elaborator *elaborate.SelectElaborator, mappings map[string]*mapping.ObjectMapping, opts ...Option) (*Handler, error) {
	op := Options{Timeout: 10 * time.Second, GraphiQL: true}
	for _, f := range opts {
		f(&op)
	}
	return &Handler{schema: sch, elaborator: elaborator, mappings: mappings, opt: op}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := ctx.Deadline(); !ok && h.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opt.Timeout)
		defer cancel()
	}

	ctx, _ = reqid.NewContext(ctx)
	status := http.StatusOK
	start := time.Now()
	eventbus.Publish(ctx, events.HTTPStart{Request: r})
	defer func() {
		eventbus.Publish(ctx, events.HTTPFinish{Request: r, Status: status, Duration: time.Since(start)})
	}()

	if r.Method == http.MethodOptions {
		if len(h.opt.CORS.AllowedOrigins) > 0 {
			setCORSHeaders(w, r, h.opt.CORS)
		}
		status = http.StatusNoContent
		w.WriteHeader(status)
		return
	}

	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		status = http.StatusMethodNotAllowed
		writeJSON(w, status, genericProblemResponse("method not allowed"), h.opt.Pretty)
		return
	}

	// Serve the compile form when enabled and the client expects HTML.
	if r.Method == http.MethodGet && h.opt.GraphiQL && acceptsHTML(r.Header.Get("Accept")) && r.URL.Query().Get("query") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(graphiqlPage)
		return
	}

	req, batch, berr := parseRequest(r, h.opt.MaxBodyBytes)
	if berr != "" {
		status = http.StatusBadRequest
		if berr == errBodyTooLargeMessage {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, genericProblemResponse(berr), h.opt.Pretty)
		return
	}

	if len(h.opt.CORS.AllowedOrigins) > 0 {
		setCORSHeaders(w, r, h.opt.CORS)
	}

	if batch != nil {
		out := make([]any, len(batch))
		for i := range batch {
			out[i] = h.compileOne(ctx, batch[i])
		}
		writeJSON(w, status, out, h.opt.Pretty)
		return
	}

	writeJSON(w, status, h.compileOne(ctx, req), h.opt.Pretty)
}

func (h *Handler) compileOne(ctx context.Context, req GraphQLRequest) CompileResponse {
	start := time.Now()
	eventbus.Publish(ctx, events.CompileStarted{Query: req.Query, OperationName: req.OperationName})

	ectx := &elaborate.Context{
		Schema:     h.schema,
		Elaborator: h.elaborator,
		Mappings:   h.mappings,
		Variables:  variablesFromJSON(req.Variables),
		PhaseObserver: func(phase string, problems result.Problems) {
			eventbus.Publish(ctx, events.CompilePhase{
				OperationName: req.OperationName,
				Phase:         phase,
				ProblemCount:  len(problems),
			})
		},
	}
	res := qgraphql.Compile(ectx, req.Query, req.OperationName)

	if res.IsFailure() {
		eventbus.Publish(ctx, events.CompileFailed{
			Query:         req.Query,
			OperationName: req.OperationName,
			ProblemCount:  len(res.Problems()),
			Duration:      time.Since(start),
		})
		return CompileResponse{Problems: problemDetails(res.Problems())}
	}

	eventbus.Publish(ctx, events.CompileDone{
		Query:         req.Query,
		OperationName: req.OperationName,
		Duration:      time.Since(start),
	})
	op, _ := res.Value()
	return CompileResponse{Plan: op.Root.Render()}
}

func variablesFromJSON(raw map[string]any) map[string]gvalue.Value {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]gvalue.Value, len(raw))
	for k, v := range raw {
		out[k] = gvalueFromJSON(v)
	}
	return out
}

func gvalueFromJSON(v any) gvalue.Value {
	switch t := v.(type) {
	case nil:
		return gvalue.NewNull()
	case bool:
		return gvalue.NewBoolean(t)
	case string:
		return gvalue.NewString(t)
	case float64:
		if t == float64(int64(t)) {
			return gvalue.NewInt(int64(t))
		}
		return gvalue.NewFloat(t)
	case []any:
		vs := make([]gvalue.Value, len(t))
		for i, e := range t {
			vs[i] = gvalueFromJSON(e)
		}
		return gvalue.NewList(vs...)
	case map[string]any:
		fields := make([]gvalue.Field, 0, len(t))
		for k, e := range t {
			fields = append(fields, gvalue.Field{Name: k, Value: gvalueFromJSON(e)})
		}
		return gvalue.NewObject(fields...)
	default:
		return gvalue.NewNull()
	}
}

// ------------------ Request parsing ------------------

type GraphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
	Extensions    map[string]any `json:"extensions,omitempty"`
}

func parseRequest(r *http.Request, maxBody int64) (GraphQLRequest, []GraphQLRequest, string) {
	if r.Method == http.MethodGet {
		q := r.URL.Query().Get("query")
		if q == "" {
			return GraphQLRequest{}, nil, "missing 'query'"
		}
		vars := map[string]any{}
		if v := r.URL.Query().Get("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &vars); err != nil {
				return GraphQLRequest{}, nil, "invalid 'variables' JSON"
			}
		}
		op := r.URL.Query().Get("operationName")
		return GraphQLRequest{Query: q, Variables: vars, OperationName: op}, nil, ""
	}

	// POST
	ct := r.Header.Get("Content-Type")
	if ct == "" || ct == "application/json" || startsWith(ct, "application/json;") {
		reader := io.Reader(r.Body)
		if maxBody > 0 {
			reader = io.LimitReader(r.Body, maxBody+1)
		}
		body, err := io.ReadAll(reader)
		if err != nil {
			return GraphQLRequest{}, nil, "failed to read body"
		}
		defer r.Body.Close()
		if maxBody > 0 && int64(len(body)) > maxBody {
			return GraphQLRequest{}, nil, errBodyTooLargeMessage
		}

		// Try array (batch)
		var arr []GraphQLRequest
		if len(body) > 0 && body[0] == '[' {
			if err := json.Unmarshal(body, &arr); err != nil {
				return GraphQLRequest{}, nil, "invalid JSON"
			}
			if len(arr) == 0 {
				return GraphQLRequest{}, nil, "empty batch"
			}
			return GraphQLRequest{}, arr, ""
		}
		// Single
		var req GraphQLRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return GraphQLRequest{}, nil, "invalid JSON"
		}
		if req.Query == "" {
			return GraphQLRequest{}, nil, "missing 'query'"
		}
		if req.Variables == nil {
			req.Variables = map[string]any{}
		}
		return req, nil, ""
	}

	return GraphQLRequest{}, nil, "unsupported Content-Type"
}

// ------------------ Response formatting ------------------

// CompileResponse is this server's response shape: either the rendered
// plan tree of a successful compile, or the problems that stopped it —
// never both, since Compile's own contract is binary.
type CompileResponse struct {
	Plan     string          `json:"plan,omitempty"`
	Problems []ProblemDetail `json:"problems,omitempty"`
}

type ProblemDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

func problemDetails(probs result.Problems) []ProblemDetail {
	out := make([]ProblemDetail, len(probs))
	for i, p := range probs {
		out[i] = ProblemDetail{Kind: p.Kind, Message: p.Message, Line: p.Line, Column: p.Column}
	}
	return out
}

func genericProblemResponse(message string) CompileResponse {
	return CompileResponse{Problems: []ProblemDetail{{Kind: "RequestError", Message: message}}}
}

func writeJSON(w http.ResponseWriter, status int, v any, pretty bool) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(v)
}

func startsWith(s, prefix string) bool { return len(s) >= len(prefix) && s[:len(prefix)] == prefix }

const errBodyTooLargeMessage = "body too large"

func setCORSHeaders(w http.ResponseWriter, r *http.Request, opts CORSOptions) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	allowed := false
	for _, o := range opts.AllowedOrigins {
		if o == "*" || o == origin {
			allowed = true
			break
		}
	}
	if !allowed {
		return
	}
	if contains(opts.AllowedOrigins, "*") {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
	}
	if r.Method == http.MethodOptions {
		if hdr := r.Header.Get("Access-Control-Request-Headers"); hdr != "" {
			w.Header().Set("Access-Control-Allow-Headers", hdr)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func acceptsHTML(accept string) bool {
	if accept == "" {
		return false
	}
	parts := strings.Split(accept, ",")
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if startsWith(p, "text/html") || p == "*/*" {
			return true
		}
	}
	return false
}
