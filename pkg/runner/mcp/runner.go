package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/storyreader/pkg/site"
)

// Transport selects how the MCP server is exposed.
type Transport string

const (
	TransportHTTP  Transport = "http"
	TransportStdio Transport = "stdio"
)

const shutdownTimeout = 5 * time.Second

// Runner serves a site's stories over MCP until the context ends.
type Runner struct {
	Source      site.Source
	Fetcher     Fetcher
	CatalogPath string
	Version     string

	Transport Transport
	// Addr and Path locate the streamable HTTP endpoint.
	Addr string
	Path string
	// Listening, if set, receives the endpoint URL once the listener is up.
	Listening func(url string)
}

func (r Runner) Do(ctx context.Context) error {
	if r.Source == nil || r.Fetcher == nil {
		return errors.New("can not serve mcp, no site")
	}
	srv := server.NewMCPServer("storyreader", r.Version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Browse and read the stories of a story site. Stories are ordered; read_story reports the previous and next ids."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	svc := NewService(r.Source, r.Fetcher, r.CatalogPath)
	registerResources(srv, svc)
	registerTools(srv, svc)

	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown mcp transport %q", r.Transport)
	}
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	ln, err := net.Listen("tcp", r.Addr)
	if err != nil {
		return fmt.Errorf("mcp: listen: %w", err)
	}
	if r.Listening != nil {
		r.Listening("http://" + ln.Addr().String() + r.EndpointPath())
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)
	mux.Handle(r.EndpointPath(), server.NewStreamableHTTPServer(srv))
	hs := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// EndpointPath is Path with a leading slash, or /mcp when unset.
func (r Runner) EndpointPath() string {
	p := strings.TrimSpace(r.Path)
	if p == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
