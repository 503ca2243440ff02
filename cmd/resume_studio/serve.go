package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/server"
	"github.com/jonathan/resume-studio/internal/workspace"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes editing sessions and generation endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to a YAML or JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	for _, warning := range cfg.Warnings() {
		log.Printf("[config] warning: %s", warning)
	}

	var client llm.Client
	if cfg.GatewayEnabled() {
		gateway, err := llm.NewGatewayClient(cfg.LLM())
		if err != nil {
			return fmt.Errorf("failed to create gateway client: %w", err)
		}
		defer gateway.Close() //nolint:errcheck
		client = gateway
	} else {
		log.Println("No gateway URL configured; run and audit endpoints are disabled")
	}

	sessions := workspace.NewManager(cfg.Workspace())
	srv := server.New(cfg, sessions, client)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gCtx)
	})
	g.Go(func() error {
		return sessions.Run(gCtx)
	})
	return g.Wait()
}
