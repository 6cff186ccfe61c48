package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/schooldesk/mcp-school/config"
	"github.com/schooldesk/mcp-school/creds"
	"github.com/schooldesk/mcp-school/databases"
	"github.com/schooldesk/mcp-school/dispatch"
	schoolmcp "github.com/schooldesk/mcp-school/mcp"
	"github.com/schooldesk/mcp-school/proxy"
	"github.com/schooldesk/mcp-school/registry"
	"github.com/schooldesk/mcp-school/tools"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	exec, err := newExecutor(cfg)
	if err != nil {
		slog.Error("failed to create executor", "error", err)
		os.Exit(1)
	}

	reg := registry.New()
	if err := reg.Register(tools.All()...); err != nil {
		slog.Error("failed to register commands", "error", err)
		os.Exit(1)
	}
	dispatcher := dispatch.New(reg, exec)

	s := server.NewMCPServer(
		"mcp-school",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithLogging(),
	)
	schoolmcp.RegisterTools(s, reg, dispatcher)
	schoolmcp.RegisterResources(s, exec)

	sse := server.NewSSEServer(s,
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithSSEContextFunc(creds.HTTPContextFunc),
	)

	mux := http.NewServeMux()
	mux.Handle("/sse", sse.SSEHandler())
	mux.Handle("/message", sse.MessageHandler())
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/", handleIndex(reg))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("starting mcp-school", "addr", addr, "backend", cfg.Database.Backend, "tools", reg.Len())
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newExecutor(cfg *config.Config) (proxy.Executor, error) {
	if cfg.Database.Backend == "relay" {
		return proxy.NewClient(cfg.Proxy.URL, cfg.Proxy.APIKey), nil
	}
	return databases.New(cfg.Database.Backend, cfg.Database.DSN)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

func handleIndex(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "mcp-school %s\n\n", version)
		fmt.Fprintf(w, "MCP server exposing %d school-management tools.\n\n", reg.Len())
		fmt.Fprint(w, "Endpoints:\n")
		fmt.Fprint(w, "  GET  /sse      MCP event stream\n")
		fmt.Fprint(w, "  POST /message  MCP client messages\n")
		fmt.Fprint(w, "  GET  /health   liveness probe\n")
	}
}
