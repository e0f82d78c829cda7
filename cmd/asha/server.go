package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/graminseva/asha/internal/api"
	"github.com/graminseva/asha/internal/classify"
	"github.com/graminseva/asha/internal/config"
	"github.com/graminseva/asha/internal/dialogue"
	"github.com/graminseva/asha/internal/referral"
	"github.com/graminseva/asha/internal/storage"
	"github.com/graminseva/asha/internal/telephony"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the asha server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running asha server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show asha system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "asha.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func removePIDFile(path string) {
	os.Remove(path)
}

// buildClassifier assembles the severity classifier from configuration:
// remote model with rule fallback when an API key is present, rules only
// otherwise.
func buildClassifier(cfg config.ClassifierConfig) classify.Classifier {
	if cfg.RulesOnly || cfg.OpenAIAPIKey == "" {
		slog.Info("severity classifier: rules only")
		return classify.NewRules()
	}
	client := openai.NewClient(cfg.OpenAIAPIKey)
	remote := classify.NewRemote(client, cfg.Model, time.Duration(cfg.TimeoutSeconds)*time.Second)
	slog.Info("severity classifier: remote with rule fallback", "model", cfg.Model)
	return classify.NewFallback(remote, classify.NewRules())
}

func buildRouter(cfg config.ReferralConfig) (*referral.Router, error) {
	if cfg.Centers == "" {
		return referral.NewRouter(referral.DefaultCenters), nil
	}
	centers, err := referral.ParseCenters(cfg.Centers)
	if err != nil {
		return nil, fmt.Errorf("parsing referral centers: %w", err)
	}
	return referral.NewRouter(centers), nil
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "asha version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	// Refuse to double-start: probe the health endpoint before taking the
	// PID file.
	pidPath := pidFilePath(cfg.Storage.DataDir)
	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Server.Port)
	healthClient := &http.Client{Timeout: 2 * time.Second}
	if resp, err := healthClient.Get(healthURL); err == nil {
		resp.Body.Close()
		if pid, pidErr := readPIDFile(pidPath); pidErr == nil {
			printWarning("asha is already running (PID %d)", pid)
			return fmt.Errorf("server already running (PID %d)", pid)
		}
		printWarning("asha is already running on port %d", cfg.Server.Port)
		return fmt.Errorf("server already running on port %d", cfg.Server.Port)
	}
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer removePIDFile(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
		}
	}()

	router, err := buildRouter(cfg.Referral)
	if err != nil {
		return err
	}
	controller := dialogue.New(store, buildClassifier(cfg.Classifier), router)

	dialer := telephony.NewClient(cfg.Telephony)
	if dialer.Simulated() {
		slog.Info("telephony credentials not configured, outbound calls are simulated")
	}

	handler := api.NewHandler(api.Deps{
		Controller: controller,
		Store:      store,
		Dialer:     dialer,
		AdminToken: cfg.Admin.Token,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "asha listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	pid, err := readPIDFile(pidPath)
	if err != nil {
		printError("asha is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop asha (PID %d): %v", pid, err)
		removePIDFile(pidPath)
		return err
	}

	printSuccess("Sent stop signal to asha (PID %d)", pid)
	return nil
}

func showStatus() error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(serverURL + "/health")
	running := false
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		resp.Body.Close()
		if resp.StatusCode == 200 {
			running = true
			printStatus("Server", "running on port %d", cfg.Server.Port)
		} else {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		}
	}

	if cfg.Classifier.RulesOnly || cfg.Classifier.OpenAIAPIKey == "" {
		printStatus("Classifier", "rules only")
	} else {
		printStatus("Classifier", "%s with rule fallback", cfg.Classifier.Model)
	}

	if cfg.Telephony.Configured() {
		printStatus("Telephony", "configured (from %s)", cfg.Telephony.FromNumber)
	} else {
		printStatus("Telephony", "simulation mode")
	}

	if running {
		if stats, err := fetchStats(client, serverURL); err == nil {
			printStatus("Total calls", "%d", stats.TotalCalls)
			printStatus("Critical calls", "%d", stats.CriticalCalls)
			printStatus("Unique callers", "%d", stats.UniqueCallers)
		}
	}

	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}

func fetchStats(client *http.Client, serverURL string) (storage.Stats, error) {
	var stats storage.Stats
	resp, err := client.Get(serverURL + "/stats")
	if err != nil {
		return stats, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return stats, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return stats, decodeJSONBody(resp.Body, &stats)
}
