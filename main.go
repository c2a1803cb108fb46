package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/config"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/innoscope"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/kickstart"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/llm"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/smart"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/volvox"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/agent"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/audit"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/stream"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/tools"
	transport "github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/transport/http"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/policy"
)

func main() {
	cfg := config.Load()

	log.Printf("Starting unified tool server...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Volvox API: %s", cfg.VolvoxAPIURL)

	// Audit store
	auditStore, err := audit.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize audit store: %v", err)
	}
	defer auditStore.Close()

	// Backend clients
	volvoxClient := volvox.NewClient(cfg.VolvoxAPIURL, cfg.AdapterTimeout)
	smartClient := smart.NewClient(cfg.SmartAPIURL, cfg.AdapterTimeout)
	innoscopeClient := innoscope.NewClient(cfg.InnoscopeAPIURL, cfg.AdapterTimeout)
	kickstartClient := kickstart.NewClient(cfg.KickstartAPIURL, cfg.AdapterTimeout)

	// Reasoning backend
	llmClient := llm.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)

	// Policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Streaming and workflow machinery
	registry := stream.NewRegistry()
	supervisor := agent.NewSupervisor(registry)
	toolset := agent.NewToolset(volvoxClient, smartClient, innoscopeClient, kickstartClient)
	runner := agent.NewRunner(llmClient, cfg.LLMModel, registry, cfg.MaxIterations)

	dispatcher, err := tools.NewDispatcher(tools.Deps{
		Volvox:     volvoxClient,
		Smart:      smartClient,
		Innoscope:  innoscopeClient,
		Kickstart:  kickstartClient,
		Runner:     runner,
		Supervisor: supervisor,
		Toolset:    toolset,
		Policy:     policyEngine,
		Audit:      auditStore,
	})
	if err != nil {
		log.Fatalf("Failed to initialize dispatcher: %v", err)
	}

	server := transport.NewServer(dispatcher, registry)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %d with %d tools", cfg.HTTPPort, len(dispatcher.Definitions()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
