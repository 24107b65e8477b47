package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	sdkwa "github.com/sdkwa/sdkwa-go"
	"github.com/sdkwa/sdkwa-go/webhook"
)

var knownTypes = []webhook.Type{
	webhook.TypeIncomingMessageReceived,
	webhook.TypeOutgoingMessageReceived,
	webhook.TypeOutgoingAPIMessageReceived,
	webhook.TypeOutgoingMessageStatus,
	webhook.TypeStateInstanceChanged,
	webhook.TypeDeviceInfo,
	webhook.TypeStatusInstanceChanged,
}

// printingRouter prints every known notification type to stdout.
func (a *app) printingRouter(deliveries *prometheus.CounterVec) *webhook.Router {
	router := webhook.NewRouter()
	for _, tag := range knownTypes {
		router.RegisterFunc(tag, func(_ context.Context, body webhook.Body) error {
			if deliveries != nil {
				deliveries.WithLabelValues(tag.String()).Inc()
			}
			return a.print(body)
		})
	}
	return router
}

// runListen polls the notification queue until interrupted. An empty queue
// waits --interval before the next poll; a delivered notification is followed
// immediately by the next one.
func runListen(ctx context.Context, a *app, args []string) error {
	var (
		interval time.Duration
		once     bool
	)
	flagSet := newCommandFlags("listen", a)
	flagSet.DurationVar(&interval, "interval", 5*time.Second, "wait between polls of an empty queue")
	flagSet.BoolVar(&once, "once", false, "process at most one notification and exit")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if interval <= 0 {
		return errors.New("listen: --interval must be positive")
	}

	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	router := a.printingRouter(nil)
	a.logger.Info().Str("instance", client.Config().InstanceID).Dur("interval", interval).Msg("listening for notifications")

	for {
		processed, err := client.ProcessNotification(ctx, router)
		switch {
		case ctx.Err() != nil:
			return nil
		case sdkwa.IsKind(err, sdkwa.KindAuthentication):
			return err
		case err != nil:
			a.logger.Warn().Err(err).Msg("notification poll failed")
		}
		if once {
			return err
		}
		if processed && err == nil {
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

// runServe exposes the webhook endpoint together with /health and /metrics.
func runServe(ctx context.Context, a *app, args []string) error {
	var (
		addr string
		path string
	)
	flagSet := newCommandFlags("serve", a)
	flagSet.StringVar(&addr, "addr", ":8080", "listen address")
	flagSet.StringVar(&path, "path", "/webhook", "webhook path")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	mux := a.serveMux(path)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", addr).Str("path", path).Msg("webhook server started")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.logger.Info().Msg("webhook server stopping")
	return server.Shutdown(shutdownCtx)
}

func (a *app) serveMux(path string) *http.ServeMux {
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deliveries := promauto.With(a.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "sdkwa",
		Subsystem: "webhook",
		Name:      "deliveries_total",
		Help:      "Pushed notifications routed to a callback, by type.",
	}, []string{"type"})

	handler := webhook.NewHandler(a.printingRouter(deliveries), webhook.WithLogger(a.logger))

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	return mux
}
