package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ironsheep/icon-factory-mcp/internal/config"
	"github.com/ironsheep/icon-factory-mcp/internal/iconkit"
	"github.com/ironsheep/icon-factory-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle version and help subcommands the way MCP clients document them
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("icon-factory-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		}
	}

	configPath := flag.String("config", os.Getenv(config.EnvConfig), "path to a JSON config file")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	logFile := flag.String("log-file", "", "write logs to a rotating file instead of stderr")
	flag.Usage = usage
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Config error: %v", err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	cfg.Resolve(config.Flags{LogLevel: *logLevel, LogFile: *logFile})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	out := setupLogging(cfg)

	if cfg.Debug() {
		iconkit.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})))
		log.Printf("Icon Factory MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// setupLogging points the standard logger at stderr or the configured log
// file and returns the writer it chose.
func setupLogging(cfg config.Config) io.Writer {
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // MB
			MaxBackups: 2,
			MaxAge:     28, // days
			Compress:   true,
		}
	}
	log.SetOutput(out)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	return out
}

func usage() {
	fmt.Println("icon-factory-mcp - MCP server that turns logos into clean icons")
	fmt.Println()
	fmt.Println("Usage: icon-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v        Print version information")
	fmt.Println("  --help, -h           Print this help message")
	fmt.Println("  -config <path>       JSON config file")
	fmt.Println("  -log-level <level>   debug, info, warn or error")
	fmt.Println("  -log-file <path>     Rotating log file (default stderr)")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  ICON_MCP_CONFIG=<path>       JSON config file")
	fmt.Println("  ICON_MCP_LOG_LEVEL=debug     Enable debug logging")
	fmt.Println("  ICON_MCP_LOG_FILE=<path>     Rotating log file")
	fmt.Println("  ICON_MCP_CACHE_LIMIT=<n>     Decoded images kept in memory (0 = unbounded)")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
