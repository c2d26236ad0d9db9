// Package cli implements the recordkeeper command.
//
//	recordkeeper serve [flags]
//	recordkeeper call [flags] <Method> [json]
//	recordkeeper exec [flags] <Method> [json]
//
// serve serves the configured application over gRPC and, when a
// REST address is configured, over HTTP. call invokes a method of a
// running server. exec invokes a method directly against the store.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jrife/recordkeeper/apps"
	"github.com/jrife/recordkeeper/config"
	"github.com/jrife/recordkeeper/records"
	"github.com/jrife/recordkeeper/transport"
	"github.com/jrife/recordkeeper/transport/clients"
	"go.uber.org/zap"
)

// ErrUsage is returned for malformed command lines
var ErrUsage = errors.New("usage: recordkeeper serve|call|exec [flags] [<Method> [json]]")

type options struct {
	configPath string
	overrides  config.Config
	addr       string
}

func parse(name string, args []string, stderr io.Writer) (config.Config, options, []string, error) {
	var opts options

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.overrides.App, "app", "", "application to open: "+strings.Join(apps.Names(), ", "))
	fs.StringVar(&opts.overrides.Driver, "driver", "", "kv driver")
	fs.StringVar(&opts.overrides.DataPath, "data", "", "database file")
	fs.StringVar(&opts.overrides.Listen, "listen", "", "gRPC listen address")
	fs.StringVar(&opts.overrides.RESTListen, "rest-listen", "", "HTTP listen address")
	fs.StringVar(&opts.overrides.LogLevel, "log-level", "", "log level")

	if name == "call" {
		fs.StringVar(&opts.addr, "addr", "", "server address, defaults to the listen address")
	}

	if err := fs.Parse(args); err != nil {
		return config.Config{}, options{}, nil, err
	}

	cfg, err := config.Load(opts.configPath)

	if err != nil {
		return config.Config{}, options{}, nil, err
	}

	override(&cfg.App, opts.overrides.App)
	override(&cfg.Driver, opts.overrides.Driver)
	override(&cfg.DataPath, opts.overrides.DataPath)
	override(&cfg.Listen, opts.overrides.Listen)
	override(&cfg.RESTListen, opts.overrides.RESTListen)
	override(&cfg.LogLevel, opts.overrides.LogLevel)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, options{}, nil, err
	}

	return cfg, opts, fs.Args(), nil
}

func override(field *string, value string) {
	if value != "" {
		*field = value
	}
}

// Run runs the command named by args[0]. It returns when the command
// completes or, for serve, when ctx is done.
func Run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "serve", "call", "exec":
	default:
		return ErrUsage
	}

	cfg, opts, rest, err := parse(args[0], args[1:], stderr)

	if err != nil {
		return err
	}

	logger, err := cfg.Logger()

	if err != nil {
		return err
	}

	defer logger.Sync()

	switch args[0] {
	case "serve":
		if len(rest) != 0 {
			return ErrUsage
		}

		server, err := Start(ctx, cfg, logger)

		if err != nil {
			return err
		}

		return server.Wait(ctx)
	case "call":
		method, body, err := call(rest)

		if err != nil {
			return err
		}

		if opts.addr == "" {
			opts.addr = cfg.Listen
		}

		return Call(ctx, cfg.App, opts.addr, method, body, stdout)
	case "exec":
		method, body, err := call(rest)

		if err != nil {
			return err
		}

		return Exec(ctx, cfg, logger, method, body, stdout)
	}

	return ErrUsage
}

func call(args []string) (string, []byte, error) {
	switch len(args) {
	case 1:
		return args[0], nil, nil
	case 2:
		if !json.Valid([]byte(args[1])) {
			return "", nil, fmt.Errorf("request for %s is not valid JSON", args[0])
		}

		return args[0], []byte(args[1]), nil
	}

	return "", nil, ErrUsage
}

// Call invokes method of a running server and
// writes the JSON response to stdout
func Call(ctx context.Context, appName string, addr string, method string, body []byte, stdout io.Writer) error {
	app, err := apps.Lookup(appName)

	if err != nil {
		return err
	}

	conn, err := clients.Dial(addr)

	if err != nil {
		return fmt.Errorf("could not dial %s: %w", addr, err)
	}

	defer conn.Close()

	var request interface{} = transport.Empty{}

	if len(body) > 0 {
		request = json.RawMessage(body)
	}

	var response json.RawMessage

	if err := clients.New(conn, app.ServiceName).Invoke(ctx, method, request, &response); err != nil {
		return err
	}

	return writeResponse(stdout, response)
}

// Exec opens the configured application, invokes method and
// writes the JSON response to stdout
func Exec(ctx context.Context, cfg config.Config, logger *zap.Logger, method string, body []byte, stdout io.Writer) error {
	instance, err := apps.Open(cfg.App, records.Config{Driver: cfg.Driver, Options: cfg.PluginOptions(), Logger: logger})

	if err != nil {
		return err
	}

	defer instance.Close()

	response, err := instance.Transport().Invoke(ctx, method, body)

	if err != nil {
		return err
	}

	return writeResponse(stdout, response)
}

func writeResponse(stdout io.Writer, response []byte) error {
	_, err := fmt.Fprintf(stdout, "%s\n", response)

	return err
}
