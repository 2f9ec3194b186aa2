package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tally/internal/adapters/filesystem"
	mcpadapter "tally/internal/adapters/mcp"
	"tally/internal/application"
	"tally/internal/config"
)

func main() {
	defaultPath, _ := config.DefaultPath()
	configFlag := flag.String("config", defaultPath, "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("tally-mcp: %v", err)
	}

	now := time.Now()
	env := application.Env{
		Store:   filesystem.NewRepository(cfg.DataDir),
		Acts:    cfg.ActivitySet(),
		Quantum: cfg.Quantum(),
		Target:  cfg.ProductiveTargetHours,
		Horizon: cfg.LookbackDays,
		Now:     now,
		Today:   cfg.Today(now),
	}

	mcpServer := server.NewMCPServer(
		"tally-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, env)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("tally-mcp: %v", err)
	}
}
