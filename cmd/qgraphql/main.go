package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	qgraphql "github.com/quithub/qgraphql"
	"github.com/quithub/qgraphql/internal/elaborate"
	"github.com/quithub/qgraphql/internal/eventbus"
	"github.com/quithub/qgraphql/internal/otel"
	"github.com/quithub/qgraphql/internal/schema"
	"github.com/quithub/qgraphql/internal/server"
)

const rootUsage = `qgraphql — GraphQL query compiler & tools

USAGE:
  qgraphql <command> [flags]

COMMANDS:
  compile          Compile an operation against a schema, print the plan tree
  schema           Print the normalized, introspection-extended schema as SDL
  serve            Run the HTTP compile-and-render endpoint
  help             Show help for any command
`

const schemaUsage = `schema FLAGS:
  -schema <file>           GraphQL SDL file (required)
`

const compileUsage = `compile FLAGS:
  -schema <file>           GraphQL SDL file (required)
  -query <file>            Operation source file (default: stdin)
  -operation <name>        Operation name, when the document has more than one
  (Exits non-zero and prints problems as JSON on compile failure)
`

const serveUsage = `serve FLAGS:
  -schema <file>               GraphQL SDL file (required)
  -server.addr <addr>          HTTP listen address (default: :8080)
  -server.pretty               Pretty-print JSON responses
  -server.timeout <duration>   Per-request timeout, e.g. 10s (default: 10s)
  -otel.endpoint <addr>        OTLP collector endpoint
  -otel.service <name>         OpenTelemetry service name (default: qgraphql)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("qgraphql", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "compile":
		return cmdCompile(cmdArgs)
	case "schema":
		return cmdSchema(cmdArgs)
	case "serve":
		return cmdServe(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "compile":
		fmt.Print(compileUsage)
	case "schema":
		fmt.Print(schemaUsage)
	case "serve":
		fmt.Print(serveUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdCompile(args []string) error {
	schemaFile := ""
	queryFile := ""
	operationName := ""

	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL file")
	fs.StringVar(&queryFile, "query", queryFile, "Operation source file")
	fs.StringVar(&operationName, "operation", operationName, "Operation name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, compileUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, compileUsage)
		return fmt.Errorf("-schema is required")
	}

	sdl, err := os.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	sch, err := schema.BuildFromSDL(string(sdl))
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}

	var text []byte
	if queryFile == "" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(queryFile)
	}
	if err != nil {
		return fmt.Errorf("read query: %w", err)
	}

	res := qgraphql.Compile(&elaborate.Context{Schema: sch}, string(text), operationName)
	if res.IsFailure() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(res.Problems())
		return fmt.Errorf("compile failed with %d problem(s)", len(res.Problems()))
	}
	op, _ := res.Value()
	fmt.Println(op.Root.Render())
	return nil
}

// cmdSchema prints the schema back out as SDL, extended with the
// __schema/__type introspection types and root fields every compiled
// operation sees — the same normalization qgraphql.Compile applies
// before elaborating, surfaced for inspection rather than execution.
func cmdSchema(args []string) error {
	schemaFile := ""

	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, schemaUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, schemaUsage)
		return fmt.Errorf("-schema is required")
	}

	sdl, err := os.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	sch, err := schema.BuildFromSDL(string(sdl))
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}

	fmt.Print(schema.Render(sch.WithIntrospection()))
	return nil
}

func cmdServe(args []string) error {
	schemaFile := ""
	addr := ":8080"
	pretty := false
	timeout := 10 * time.Second
	otelEndpoint := ""
	otelService := "qgraphql"

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL file")
	fs.StringVar(&addr, "server.addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "server.pretty", pretty, "Pretty-print JSON responses")
	fs.DurationVar(&timeout, "server.timeout", timeout, "Per-request timeout")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, serveUsage)
		return fmt.Errorf("-schema is required")
	}

	sdl, err := os.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	sch, err := schema.BuildFromSDL(string(sdl))
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	var sopts []server.Option
	if pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if timeout > 0 {
		sopts = append(sopts, server.WithTimeout(timeout))
	}
	h, err := server.New(sch, nil, nil, sopts...)
	if err != nil {
		return fmt.Errorf("server init: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)

	log.Printf("qgraphql compile server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
