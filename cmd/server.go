package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/gridironlabs/nflsim/internal/api"
	"github.com/gridironlabs/nflsim/internal/cache"
	"github.com/gridironlabs/nflsim/internal/config"
	"github.com/gridironlabs/nflsim/internal/echo"
	"github.com/gridironlabs/nflsim/internal/jobs"
	"github.com/gridironlabs/nflsim/internal/middleware"
	"github.com/gridironlabs/nflsim/internal/overrides"
	"github.com/gridironlabs/nflsim/internal/store"
)

// TODO: configurable baseURL
const baseURL string = "http://localhost:8080/v1/"

// jobRetention is how long a completed job stays queryable before the
// registry reaps it.
const jobRetention = time.Hour

// ServerCmd creates the server command group.
func ServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Server operations",
		Long:  "Start and probe the simulation API server.",
	}

	cmd.AddCommand(ServerStartCmd())
	cmd.AddCommand(ServerFetchCmd())
	cmd.AddCommand(ServerHealthCmd())
	return cmd
}

// ServerStartCmd creates the start command.
func ServerStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the API server",
		Long:  "Start the NFL Monte Carlo simulator HTTP server.",
		RunE:  startServer,
	}

	cmd.Flags().Bool("debug", false, "Enable debug mode (verbose logging, caller info)")
	return cmd
}

// ServerFetchCmd creates the server fetch command.
func ServerFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [path]",
		Short: "Test API endpoints",
		Long: `cURL-like tool for testing API endpoints with formatted output.

Path should be relative to /v1/ (e.g., 'standings' or 'simulation-jobs/<id>').`,
		Args: cobra.ExactArgs(1),
		RunE: fetchEndpoint,
	}

	cmd.Flags().StringP("format", "f", "json", "Output format (json|table)")
	cmd.Flags().BoolP("raw", "r", false, "Output raw JSON without colors or formatting (suitable for piping to jq)")
	cmd.Flags().StringP("method", "X", "GET", "HTTP method")
	cmd.Flags().StringP("body", "d", "", "Request body (for POST)")
	return cmd
}

// ServerHealthCmd creates the health command.
func ServerHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Long:  "Perform a health check against the running API server.",
		RunE:  checkHealth,
	}
}

func fetchEndpoint(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, _ := cmd.Flags().GetString("format")
	raw, _ := cmd.Flags().GetBool("raw")
	method, _ := cmd.Flags().GetString("method")
	reqBody, _ := cmd.Flags().GetString("body")

	url := baseURL + path

	if !raw {
		echo.Header("API Test")
		echo.Infof("%s %s", method, url)
		echo.Info("")
	}

	var bodyReader io.Reader
	if reqBody != "" {
		bodyReader = bytes.NewBufferString(reqBody)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("error: failed to create request: %w", err)
	}
	if reqBody != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	defer resp.Body.Close()

	if !raw {
		echo.Infof("Status: %s", resp.Status)
		echo.Info("")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error: failed to read response: %w", err)
	}

	if raw {
		var prettyJSON bytes.Buffer
		if err := json.Indent(&prettyJSON, body, "", "  "); err != nil {
			fmt.Println(string(body))
		} else {
			fmt.Println(prettyJSON.String())
		}
		return nil
	}

	if format == "table" {
		echo.Info("Table format not yet implemented, showing JSON:")
		echo.Info("")
	}

	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, body, "", "  "); err != nil {
		echo.Info(string(body))
	} else {
		echo.Info(prettyJSON.String())
	}

	echo.Info("")
	echo.Successf("✓ Request completed (%d bytes)", len(body))
	return nil
}

func checkHealth(cmd *cobra.Command, args []string) error {
	echo.Header("Health Check")

	serverURL := "http://localhost:8080/v1/health"
	echo.Infof("Checking: %s", serverURL)
	echo.Info("")

	resp, err := http.Get(serverURL)
	if err != nil {
		return fmt.Errorf("error: server is not running or unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		echo.Successf("✓ Server is healthy (Status: %s)", resp.Status)

		body, err := io.ReadAll(resp.Body)
		if err == nil && len(body) > 0 {
			var prettyJSON bytes.Buffer
			if err := json.Indent(&prettyJSON, body, "", "  "); err == nil {
				echo.Info("")
				echo.Info(prettyJSON.String())
			}
		}
		return nil
	}

	return fmt.Errorf("error: server returned status: %s", resp.Status)
}

func startServer(cmd *cobra.Command, args []string) error {
	echo.Header("Starting Server")
	echo.Info("Loading configuration...")

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error: failed to load config: %w", err)
	}

	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		cfg.Server.DebugMode = true
	}

	if cfg.Server.DebugMode {
		echo.Info("⚠ Debug mode enabled - verbose logging")
	}

	echo.Info("Opening local stores...")
	teamStore, err := store.Open(cfg.Cache.Directory)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	overrideStore, err := overrides.Open(cfg.Cache.Directory)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	echo.Success("✓ Stores opened at " + cfg.Cache.Directory)

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		echo.Info("Connecting to Redis...")
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("error: failed to parse Redis URL: %w", err)
		}
		redisClient = redis.NewClient(redisOpts)
		if _, err := redisClient.Ping(cmd.Context()).Result(); err != nil {
			echo.Infof("⚠ Redis connection failed: %v", err)
			echo.Info("  Job progress fan-out and the response cache will be disabled; rate limiting falls back to in-process")
			redisClient = nil
		} else {
			echo.Success("✓ Connected to Redis")
			defer redisClient.Close()
		}
	}

	timeFmt := time.DateTime
	if cfg.Server.DebugMode {
		timeFmt = time.Kitchen
	}

	logLevel := log.InfoLevel
	if cfg.Log.Level == "off" {
		logLevel = log.FatalLevel + 1
	} else if parsed, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logLevel = parsed
	}

	logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{
		Level:           logLevel,
		ReportTimestamp: true,
		TimeFormat:      timeFmt,
		Prefix:          "🏈",
		ReportCaller:    cfg.Server.DebugMode,
	})

	registry := jobs.NewRegistry(jobRetention)
	if redisClient != nil {
		registry.Bus().AttachRedis(redisClient, logger)
	}

	var cacheClient *cache.Client
	if redisClient != nil {
		env := "prod"
		if cfg.Server.DebugMode {
			env = "dev"
		}
		cacheClient = cache.NewClient(redisClient, cache.Config{
			App:     "nflsim",
			Env:     env,
			Version: cfg.Cache.Version,
			Enabled: true,
			TTLs: cache.TTLConfig{
				List:     time.Duration(cfg.Cache.TTLs.List) * time.Second,
				Negative: time.Duration(cfg.Cache.TTLs.Negative) * time.Second,
			},
		})
		echo.Success("✓ Response cache enabled (schedule, standings)")
	}

	app := &api.App{
		Store:     teamStore,
		Overrides: overrideStore,
		Jobs:      registry,
		Season:    cfg.Server.Season,
		Cache:     cacheClient,
	}
	server := api.NewServer(app)

	var handler http.Handler = server
	handler = middleware.TraceMiddleware(handler)
	handler = middleware.MetricsMiddleware(middleware.DefaultRouteNamer)(handler)
	handler = middleware.CORS()(handler)
	handler = middleware.Logger(logger)(handler)

	rateLimiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.PerMinute)
	handler = rateLimiter.Middleware(handler)
	if redisClient != nil {
		echo.Infof("✓ Rate limiting enabled (%d req/min per IP, shared via Redis)", cfg.RateLimit.PerMinute)
	} else {
		echo.Infof("✓ Rate limiting enabled (%d req/min per IP, in-process)", cfg.RateLimit.PerMinute)
	}

	echo.Info("✓ Request logging enabled")
	echo.Info("✓ Swagger UI at /docs/")

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	echo.Success(fmt.Sprintf("✓ Server starting on %s", addr))
	echo.Info("Press Ctrl+C to stop")
	echo.Info("")
	return http.ListenAndServe(addr, handler)
}
