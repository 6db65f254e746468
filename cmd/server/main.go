package main

import (
	"context"
	"crypto/tls"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"time"

	"github.com/charithe/notation/pkg/calculator"
	"github.com/charithe/notation/pkg/v1pb"
	"github.com/charithe/notation/pkg/webapp"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_zap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpc_ctxtags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	prom "github.com/prometheus/client_golang/prometheus"
	"go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/plugin/ocgrpc"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/zpages"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/channelz/service"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"gopkg.in/alecthomas/kingpin.v2"
)

const httpTimeout = 5 * time.Second

var (
	app = kingpin.New("Calculator Server", "Prefix and infix notation calculator server")

	debug            = app.Flag("debug", "Enable debug mode").Envar("CALC_DEBUG").Bool()
	listenAddr       = app.Flag("listen_addr", "gRPC listen address").Default(":8080").Envar("CALC_LISTEN_ADDR").String()
	httpAddr         = app.Flag("http_addr", "JSON API listen address").Default(":3456").Envar("CALC_HTTP_ADDR").String()
	logLevel         = app.Flag("log_level", "Log level").Default("info").Envar("CALC_LOG_LEVEL").Enum("error", "warn", "info", "debug")
	maxExpressionLen = app.Flag("max_expression_len", "Maximum expression length in bytes (0 for unlimited)").Default("65536").Envar("CALC_MAX_EXPRESSION_LEN").Int()
	statusAddr       = app.Flag("status_addr", "Status address").Default(":5000").Envar("CALC_STATUS_ADDR").String()
	tlsCA            = app.Flag("tls_ca", "Path to TLS CA certificate").Envar("CALC_TLS_CA").ExistingFile()
	tlsCert          = app.Flag("tls_cert", "Path to TLS certificate").Envar("CALC_TLS_CERT").ExistingFile()
	tlsKey           = app.Flag("tls_key", "Path to TLS key").Envar("CALC_TLS_KEY").ExistingFile()
)

func main() {
	_ = kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := newLogger(*logLevel)
	zap.ReplaceGlobals(logger.Named("app"))
	zap.RedirectStdLog(logger.Named("stdlog"))

	startServer()
}

func startServer() {
	promExporter, err := initOCPromExporter()
	if err != nil {
		zap.S().Fatalw("Failed to create OpenCensus exporter", "error", err)
	}

	metrics, err := calculator.NewMetrics(prom.DefaultRegisterer)
	if err != nil {
		zap.S().Fatalw("Failed to create metrics", "error", err)
	}

	svc := calculator.NewService(
		calculator.WithMetrics(metrics),
		calculator.WithMaxExpressionLen(*maxExpressionLen),
	)

	grpcListener, apiListener, httpListener := startListeners()
	grpcServer := startGRPCServer(grpcListener, svc)
	apiServer := startAPIServer(apiListener, svc)
	statusServer := startHTTPServer(httpListener, svc, promExporter)

	// await interruption
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt)
	<-shutdownChan

	zap.S().Info("Shutting down")
	svc.Shutdown()
	grpcServer.GracefulStop()

	ctx, cancelFunc := context.WithTimeout(context.Background(), httpTimeout)
	defer cancelFunc()
	shutdownHTTPServer(ctx, "api", apiServer)
	shutdownHTTPServer(ctx, "status", statusServer)
}

func shutdownHTTPServer(ctx context.Context, name string, srv *http.Server) {
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Warnw("Failed to shut down HTTP server", "server", name, "error", err)
	}
}

func initOCPromExporter() (*prometheus.Exporter, error) {
	if err := view.Register(ocgrpc.DefaultServerViews...); err != nil {
		return nil, err
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return nil, err
	}

	registry, ok := prom.DefaultRegisterer.(*prom.Registry)
	if !ok {
		zap.S().Warn("Unable to obtain default Prometheus registry. Creating new one.")
		registry = nil
	}

	exporter, err := prometheus.NewExporter(prometheus.Options{Registry: registry})
	if err != nil {
		return nil, err
	}

	view.RegisterExporter(exporter)
	view.SetReportingPeriod(15 * time.Second)

	return exporter, nil
}

func startListeners() (net.Listener, net.Listener, net.Listener) {
	grpcListener, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		zap.S().Fatalw("Failed to create grpc listener", "error", err)
	}

	if *tlsKey != "" && *tlsCert != "" {
		zap.S().Info("Configuring TLS")
		tlsConf, err := getTLSConfig(*tlsCert, *tlsKey, *tlsCA)
		if err != nil {
			zap.S().Fatalw("Failed to configure TLS", "error", err)
		}

		grpcListener = tls.NewListener(grpcListener, tlsConf)
	}

	apiListener, err := net.Listen("tcp", *httpAddr)
	if err != nil {
		zap.S().Fatalw("Failed to create API listener", "error", err)
	}

	httpListener, err := net.Listen("tcp", *statusAddr)
	if err != nil {
		zap.S().Fatalw("Failed to create http listener", "error", err)
	}

	return grpcListener, apiListener, httpListener
}

func startGRPCServer(listener net.Listener, svc *calculator.Service) *grpc.Server {
	grpc.EnableTracing = true
	grpcLogger := zap.L().Named("grpc")

	codeToLevel := grpc_zap.CodeToLevel(func(code codes.Code) zapcore.Level {
		if code == codes.OK {
			return zapcore.DebugLevel
		}
		return grpc_zap.DefaultCodeToLevel(code)
	})

	recoveryHandler := grpc_recovery.WithRecoveryHandler(func(p interface{}) error {
		zap.S().Errorw("Recovered from panic", "panic", p)
		return status.Errorf(codes.Internal, "internal error")
	})

	serverOpts := []grpc.ServerOption{
		grpc.StatsHandler(&ocgrpc.ServerHandler{}),
		grpc_middleware.WithUnaryServerChain(
			grpc_ctxtags.UnaryServerInterceptor(),
			grpc_zap.UnaryServerInterceptor(grpcLogger, grpc_zap.WithLevels(codeToLevel)),
			grpc_recovery.UnaryServerInterceptor(recoveryHandler),
		),
		grpc_middleware.WithStreamServerChain(
			grpc_ctxtags.StreamServerInterceptor(),
			grpc_zap.StreamServerInterceptor(grpcLogger, grpc_zap.WithLevels(codeToLevel)),
			grpc_recovery.StreamServerInterceptor(recoveryHandler),
		),
	}

	grpcServer := grpc.NewServer(serverOpts...)

	v1pb.RegisterCalculatorServer(grpcServer, svc)
	healthpb.RegisterHealthServer(grpcServer, svc)

	service.RegisterChannelzServiceToServer(grpcServer)

	go func() {
		zap.S().Infow("Starting grpc server", "addr", *listenAddr)
		if err := grpcServer.Serve(listener); err != nil {
			zap.S().Fatalw("grpc server failed", "error", err)
		}
	}()

	return grpcServer
}

func startAPIServer(listener net.Listener, svc *calculator.Service) *http.Server {
	logger := zap.L().Named("api")

	// JSON escaping can grow an expression up to six times.
	bodyLimit := int64(0)
	if *maxExpressionLen > 0 {
		bodyLimit = 6*int64(*maxExpressionLen) + 1024
	}
	handler := webapp.New(svc, webapp.WithMaxBodyBytes(bodyLimit))

	apiServer := &http.Server{
		Handler:           &ochttp.Handler{Handler: handler},
		ErrorLog:          zap.NewStdLog(logger),
		ReadHeaderTimeout: httpTimeout,
		WriteTimeout:      httpTimeout,
		IdleTimeout:       httpTimeout,
	}

	go func() {
		zap.S().Infow("Starting API server", "addr", *httpAddr)
		if err := apiServer.Serve(listener); err != http.ErrServerClosed {
			zap.S().Fatalw("Failed to start API server", "error", err)
		}
	}()

	return apiServer
}

func startHTTPServer(listener net.Listener, svc *calculator.Service, promExporter *prometheus.Exporter) *http.Server {
	logger := zap.L().Named("http")

	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			io.Copy(ioutil.Discard, r.Body)
			r.Body.Close()
		}

		resp, err := svc.Check(r.Context(), &healthpb.HealthCheckRequest{Service: v1pb.ServiceName})
		if err != nil || resp.Status != healthpb.HealthCheckResponse_SERVING {
			w.WriteHeader(http.StatusServiceUnavailable)
			io.WriteString(w, "NOT SERVING")
			return
		}
		io.WriteString(w, "OK")
	})
	mux.Handle("/metrics", promExporter)

	if *debug {
		mux.Handle("/debug/pprof/", http.HandlerFunc(pprof.Index))
		mux.Handle("/debug/pprof/cmdline", http.HandlerFunc(pprof.Cmdline))
		mux.Handle("/debug/pprof/profile", http.HandlerFunc(pprof.Profile))
		mux.Handle("/debug/pprof/symbol", http.HandlerFunc(pprof.Symbol))
		mux.Handle("/debug/pprof/trace", http.HandlerFunc(pprof.Trace))
		mux.Handle("/debug/", http.StripPrefix("/debug", zpages.Handler))
	}

	httpServer := &http.Server{
		Handler:           mux,
		ErrorLog:          zap.NewStdLog(logger),
		ReadHeaderTimeout: httpTimeout,
		WriteTimeout:      httpTimeout,
		IdleTimeout:       httpTimeout,
	}

	go func() {
		zap.S().Infow("Starting HTTP server", "addr", *statusAddr)
		if err := httpServer.Serve(listener); err != http.ErrServerClosed {
			zap.S().Fatalw("Failed to start HTTP server", "error", err)
		}
	}()

	return httpServer
}
