package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/lmi/internal/debug"
	"github.com/standardbeagle/lmi/internal/engine"
	"github.com/standardbeagle/lmi/internal/mcp"
	"github.com/standardbeagle/lmi/internal/server"
)

// serveCommand runs the HTTP server until a signal or a shutdown request
func serveCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if v := c.String("addr"); v != "" {
		cfg.Server.Addr = v
	}
	if v := c.String("static"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := c.String("log-file"); v != "" {
		cfg.Server.LogFile = v
	}
	if cfg.Server.StaticDir != "" && !filepath.IsAbs(cfg.Server.StaticDir) {
		cfg.Server.StaticDir = filepath.Join(cfg.Root, cfg.Server.StaticDir)
	}
	if cfg.Server.LogFile != "" {
		if err := debug.InitRotatingLog(cfg.Server.LogFile, 0); err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
	}

	e, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	srv, err := server.NewMeterServer(e, cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Serving corpus %s on http://%s\n", cfg.Corpus.Name, srv.Addr())
	fmt.Fprintf(c.App.Writer, "Use 'lmi shutdown' to stop the server\n")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		fmt.Fprintf(c.App.Writer, "\nReceived signal %v, shutting down...\n", sig)
	case <-srv.Done():
		fmt.Fprintln(c.App.Writer, "Server shutdown requested")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	fmt.Fprintln(c.App.Writer, "Server shut down cleanly")
	return nil
}

// shutdownCommand sends a shutdown request to the running server
func shutdownCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	client := server.NewClient(cfg.Server.Addr)
	if !client.IsServerRunning() {
		return fmt.Errorf("no server is running at %s", cfg.Server.Addr)
	}
	if err := client.Shutdown(c.Bool("force")); err != nil {
		return err
	}

	time.Sleep(500 * time.Millisecond)
	if client.IsServerRunning() {
		return fmt.Errorf("server did not shut down")
	}
	fmt.Fprintln(c.App.Writer, "Server shut down successfully")
	return nil
}

// mcpCommand serves MCP over stdio until the client disconnects or a signal arrives
func mcpCommand(c *cli.Context) error {
	// stdout carries the protocol
	debug.SetMCPMode(true)

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	e, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	mcpServer, err := mcp.NewServer(e)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mcpServer.Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
