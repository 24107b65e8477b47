// sdkwa is a command-line front end for the SDKWA messaging API.
//
// Credentials come from flags or from the SDKWA_* environment variables:
//
//	sdkwa state
//	sdkwa --messenger telegram settings --output yaml
//	sdkwa send-message --chat 79001234567@c.us --text "hello"
//	sdkwa set-settings --file settings.jsonc
//	sdkwa listen --interval 5s
//	sdkwa serve --addr :8080
//	sdkwa instances list
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	sdkwa "github.com/sdkwa/sdkwa-go"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	instanceID string
	apiToken   string
	apiHost    string
	userID     string
	userToken  string
	messenger  string
	output     string
	logLevel   string
	timeout    time.Duration
	insecure   bool
}

type app struct {
	flags    globalFlags
	stdout   io.Writer
	stderr   io.Writer
	logger   zerolog.Logger
	registry *prometheus.Registry
	metrics  *sdkwa.Metrics

	mu sync.Mutex // serializes stdout writes from concurrent webhook deliveries
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"state":        {"show the instance state", runState},
	"settings":     {"show the account settings", runSettings},
	"set-settings": {"apply settings from a JSON or JSONC file", runSetSettings},
	"send-message": {"send a text message", runSendMessage},
	"qr":           {"show the authorization QR code", runQR},
	"listen":       {"poll and print incoming notifications", runListen},
	"serve":        {"receive pushed notifications over HTTP", runServe},
	"instances":    {"manage account instances (list, create, extend, delete, restore)", runInstances},
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{stdout: stdout, stderr: stderr}

	flagSet := pflag.NewFlagSet("sdkwa", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&a.flags.instanceID, "instance", "", "instance id (default $"+sdkwa.EnvInstanceID+")")
	flagSet.StringVar(&a.flags.apiToken, "token", "", "API token (default $"+sdkwa.EnvAPIToken+")")
	flagSet.StringVar(&a.flags.apiHost, "host", "", "API host (default $"+sdkwa.EnvAPIHost+" or "+sdkwa.DefaultAPIHost+")")
	flagSet.StringVar(&a.flags.userID, "user-id", "", "account user id for instance management (default $"+sdkwa.EnvUserID+")")
	flagSet.StringVar(&a.flags.userToken, "user-token", "", "account user token for instance management (default $"+sdkwa.EnvUserToken+")")
	flagSet.StringVar(&a.flags.messenger, "messenger", string(sdkwa.MessengerWhatsApp), "messenger: whatsapp or telegram")
	flagSet.StringVarP(&a.flags.output, "output", "o", "json", "output format: json or yaml")
	flagSet.StringVar(&a.flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.DurationVar(&a.flags.timeout, "timeout", sdkwa.DefaultTimeout, "per-request timeout")
	flagSet.BoolVar(&a.flags.insecure, "insecure", false, "skip TLS certificate verification")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(stderr, flagSet)
		return nil
	}

	if a.flags.output != "json" && a.flags.output != "yaml" {
		return fmt.Errorf("unsupported output format %q", a.flags.output)
	}

	level, err := zerolog.ParseLevel(a.flags.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.flags.logLevel, err)
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	a.registry = prometheus.NewRegistry()
	a.metrics = sdkwa.NewMetrics(a.registry)

	name := flagSet.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q (run sdkwa --help)", name)
	}
	return cmd.run(ctx, a, flagSet.Args()[1:])
}

func (a *app) clientOptions() []sdkwa.Option {
	return []sdkwa.Option{
		sdkwa.WithInstanceID(a.flags.instanceID),
		sdkwa.WithAPIToken(a.flags.apiToken),
		sdkwa.WithAPIHost(a.flags.apiHost),
		sdkwa.WithUserID(a.flags.userID),
		sdkwa.WithUserToken(a.flags.userToken),
		sdkwa.WithDefaultMessenger(sdkwa.Messenger(a.flags.messenger)),
		sdkwa.WithTimeout(a.flags.timeout),
		sdkwa.WithVerifyTLS(!a.flags.insecure),
		sdkwa.WithRequestLogger(sdkwa.NewZerologLogger(a.logger)),
		sdkwa.WithMetrics(a.metrics),
	}
}

func (a *app) client() (*sdkwa.Client, error) {
	return sdkwa.New(a.clientOptions()...)
}

func (a *app) instanceClient() (*sdkwa.InstanceClient, error) {
	return sdkwa.NewInstanceClient(a.clientOptions()...)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "  %-14s %s\n", name, commands[name].summary)
	}

	fmt.Fprintf(w, `sdkwa: command-line client for the SDKWA messaging API.

Usage:
  sdkwa [flags] <command> [command flags]

Commands:
%s
Flags:
`, b.String())
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
