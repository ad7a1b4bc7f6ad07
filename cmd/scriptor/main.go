// Command scriptor runs shell scripts and reports their outcome.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/scriptor"
	"github.com/deixis/scriptor/internal/config"
	"github.com/deixis/scriptor/internal/history"
	scrmcp "github.com/deixis/scriptor/internal/mcp"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("scriptor: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = runMain(args)
	case "spawn":
		err = spawnMain(args)
	case "mcp":
		err = mcpMain(args)
	case "version":
		fmt.Println(scriptor.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "scriptor: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: scriptor <command> [flags] [script]

Commands:
  run         Run a script and print its captured output
  spawn       Launch a script in the foreground and wait on it
  mcp         Start the MCP server
  version     Print the version
  help        Show this help

The script is taken from the remaining arguments, or from stdin when absent.
Use "scriptor <command> -h" for command-specific flags.`)
}

// --- run ---

func runMain(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verboseFlag := fs.Bool("v", false, "echo the script and result around execution")
	jsonFlag := fs.Bool("json", false, "output the result as JSON")
	strategyFlag := fs.String("strategy", "", "execution strategy: posix, powershell, or embedded")
	timeoutFlag := fs.Duration("timeout", 0, "abort the run after this duration (e.g. 5m)")
	_ = fs.Parse(args)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	script, err := readScript(fs.Args())
	if err != nil {
		return err
	}

	name := cfg.RawStrategy
	if *strategyFlag != "" {
		name = *strategyFlag
	}
	strategy, err := scriptor.StrategyByName(name)
	if err != nil {
		return err
	}

	timeout := cfg.Timeout()
	if *timeoutFlag > 0 {
		timeout = *timeoutFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	e := &scriptor.Executor{Strategy: strategy, Diag: os.Stderr}
	out, err := e.RunScript(ctx, script, *verboseFlag || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		if out.Stdout != "" {
			fmt.Println(out.Stdout)
		}
		if out.Stderr != "" {
			fmt.Fprintln(os.Stderr, out.Stderr)
		}
	}

	if !out.Success() {
		os.Exit(exitCode(out))
	}
	return nil
}

// exitCode maps a failed result to the process exit status. Strict-strategy
// failures with a zero exit code and signal-killed children (code -1) both
// map to 1.
func exitCode(out *scriptor.ProcessOutput) int {
	if out.Code > 0 {
		return out.Code
	}
	return 1
}

// readScript joins the remaining arguments into a script body, falling
// back to stdin when no arguments are given.
func readScript(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading script from stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no script given")
	}
	return string(data), nil
}

// --- spawn ---

func spawnMain(args []string) error {
	fs := flag.NewFlagSet("spawn", flag.ExitOnError)
	_ = fs.Parse(args)

	script, err := readScript(fs.Args())
	if err != nil {
		return err
	}

	child, err := scriptor.SpawnScript(script)
	if err != nil {
		return fmt.Errorf("spawn: %w", err)
	}

	// SpawnScript hands ownership of the child back to us; waiting and
	// interpreting the raw exit status is our job.
	if err := child.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("waiting on script: %w", err)
	}
	return nil
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(scrmcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return serve(ctx, *httpAddr)
}

func serve(ctx context.Context, httpAddr string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	strategy, err := cfg.Strategy()
	if err != nil {
		return err
	}

	disk := history.NewDiskStore(cfg.History.Dir)
	store := history.NewMemoryStore(cfg.HistorySize(), disk)

	e := &scriptor.Executor{Strategy: strategy, Diag: os.Stderr}
	server := scrmcp.NewServer(cfg, e, store)

	if httpAddr != "" {
		return serveHTTP(ctx, server, httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// --- shared ---

func loadConfig() (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
