package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"elmora/internal/config"
	"elmora/internal/httpserver"
	mcpserver "elmora/internal/mcp"
	"elmora/internal/telephony"
	"elmora/internal/ui"
)

// RunServe is the single entry point for `elmora serve`.
//
// Always starts:
//   - the reminder scheduler (delivers alarms and medicine reminders)
//   - the HTTP API on the configured bind address
//   - stdio MCP when stdin is a pipe (e.g. spawned by an MCP client)
func RunServe() {
	stdioMCP := isStdinPipe()

	// When stdio MCP is active, redirect all log/print output to stderr so we
	// don't corrupt the JSON-RPC stream on stdout.
	var out io.Writer = os.Stdout
	if stdioMCP {
		out = os.Stderr
		log.SetOutput(os.Stderr)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		ui.ShowError("Failed to load config", err)
		os.Exit(1)
	}
	if len(cfg.Tokens) == 0 {
		token, err := generateToken()
		if err != nil {
			ui.ShowError("Failed to generate token", err)
			os.Exit(1)
		}
		cfg.Tokens = []string{token}
		if saveErr := config.SaveConfig(cfg); saveErr != nil {
			fmt.Fprintf(os.Stderr, "[warn] could not save generated token: %v\n", saveErr)
		}
		fmt.Fprintf(out, "Generated token: %s\n", token)
		fmt.Fprintf(out, "(saved to %s — use this token in API clients)\n", config.ConfigPath)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	records := openRecords(cfg)

	// Reminder scheduler: loads persisted reminders, fires past-due ones, and
	// registers the daily medicine entries.
	scheduler := openScheduler(cfg)
	if err := scheduler.Start(); err != nil {
		ui.ShowError("Failed to start reminder scheduler", err)
		os.Exit(1)
	}
	defer scheduler.Stop()
	if err := scheduler.SyncMedicines(records.Medicines.List()); err != nil {
		fmt.Fprintf(os.Stderr, "[remind] medicine sync error: %v\n", err)
	}

	// The served engine logs call requests instead of dialing: the server
	// host has no handset.
	engine := newEngine(cfg, scheduler, telephony.LogLauncher{})

	fmt.Fprintf(out, "HTTP server listening on %s\n", cfg.ListenAddr)
	httpServer := httpserver.NewHTTPServer(cfg.Tokens, Version, engine, records, scheduler)
	go func() {
		if err := httpServer.ListenAndServe(cfg.ListenAddr); err != nil && err.Error() != "http: Server closed" {
			fmt.Fprintf(os.Stderr, "[http] error: %v\n", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutCtx, c := context.WithTimeout(context.Background(), 5*time.Second)
		defer c()
		_ = httpServer.Shutdown(shutCtx)
	}()

	if stdioMCP {
		// Stdout is now exclusively for the MCP JSON-RPC protocol. The MCP
		// surface shares the engine and scheduler with the HTTP one.
		if err := mcpserver.RunServer(engine, records, scheduler, Version); err != nil && err.Error() != "server is closing: EOF" {
			fmt.Fprintf(os.Stderr, "[mcp-stdio] error: %v\n", err)
			os.Exit(1)
		}
	} else {
		<-ctx.Done()
		fmt.Fprintf(out, "\nShutting down...\n")
	}
}

// RunMCP starts a standalone stdio MCP server without the HTTP side.
func RunMCP() {
	log.SetOutput(os.Stderr)

	cfg, err := config.LoadConfig()
	if err != nil {
		ui.ShowError("Failed to load config", err)
		os.Exit(1)
	}

	records := openRecords(cfg)
	scheduler := openScheduler(cfg)
	if err := scheduler.Start(); err != nil {
		ui.ShowError("Failed to start reminder scheduler", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	engine := newEngine(cfg, scheduler, telephony.LogLauncher{})

	if err := mcpserver.RunServer(engine, records, scheduler, Version); err != nil && err.Error() != "server is closing: EOF" {
		fmt.Fprintf(os.Stderr, "[mcp-stdio] error: %v\n", err)
		os.Exit(1)
	}
}

// isStdinPipe returns true when stdin is a pipe or file (not a terminal),
// i.e. elmora was spawned by another process feeding it data.
func isStdinPipe() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}

// generateToken returns a random 32-char hex token.
func generateToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
