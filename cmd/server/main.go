package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/db"
	cctGrpc "liyu1981.xyz/cct-cloud-service/pkg/grpc"
	cctHttp "liyu1981.xyz/cct-cloud-service/pkg/http"
	cctMqtt "liyu1981.xyz/cct-cloud-service/pkg/mqtt"
	"liyu1981.xyz/cct-cloud-service/pkg/notify"
	"liyu1981.xyz/cct-cloud-service/pkg/scheduler"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatal("Error loading .env file: ", err)
	}

	cfg, err := common.LoadConfig()
	if err != nil {
		log.Fatal("Invalid configuration, copy .env.example to .env first if in development: ", err)
	}

	dialector, err := db.UseConfigDialector(cfg)
	if err != nil {
		log.Fatal(err)
	}
	dbInstance := db.GetInstance(dialector)

	logger := common.GetLogger()

	cctCore := cct.New(dbInstance, cfg)
	channels, mailer := notify.BuildChannels(cfg)
	for name, channel := range channels {
		cctCore.WithChannel(name, channel)
		logger.Info("Notification channel enabled", zap.String("channel", string(name)))
	}
	if mailer != nil {
		cctCore.WithOTPMailer(mailer)
	}

	defaultLimiter := zap.String("default_limiter",
		fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst))
	newLimiterStore := func() *cct.RateLimiterStore {
		return cct.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var grpcServer *grpc.Server
	if cfg.GrpcHostPort != "" {
		telemetry := &cctGrpc.TelemetryServer{
			Cct:              cctCore,
			RateLimiterStore: newLimiterStore(),
		}
		grpcServer = grpc.NewServer(telemetry.Interceptors())
		cctGrpc.RegisterDeviceTelemetryServer(grpcServer, telemetry)
		logger.Info("gRPC server created with:", defaultLimiter)

		listener, err := net.Listen("tcp", cfg.GrpcHostPort)
		if err != nil {
			log.Fatalf("failed to listen: %v", err)
		}

		go func() {
			logger.Info("Starting gRPC server on: " + cfg.GrpcHostPort)
			if err := grpcServer.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
	}

	var mqttClient *cctMqtt.Client
	if cfg.MQTTBrokerURL != "" {
		mqttClient, err = cctMqtt.Connect(cfg.MQTTBrokerURL, "")
		if err != nil {
			log.Fatalf("failed to connect to mqtt broker: %v", err)
		}
		ingestor := &cctMqtt.Ingestor{
			Cct:              cctCore,
			RateLimiterStore: newLimiterStore(),
			Topic:            cfg.MQTTTopic,
		}
		if err := ingestor.Run(mqttClient); err != nil {
			log.Fatalf("failed to subscribe to %s: %v", cfg.MQTTTopic, err)
		}
		logger.Info("MQTT ingestion subscribed", zap.String("topic", cfg.MQTTTopic), defaultLimiter)
	}

	sweeper, err := scheduler.New(cctCore.Liveness, cfg.LivenessSchedule)
	if err != nil {
		log.Fatalf("invalid %s: %v", common.EnvKeyCCTLivenessSchedule, err)
	}
	sweeper.Start()

	rs := &cctHttp.RestfulServer{
		Server:           gin.Default(),
		Cct:              cctCore,
		RateLimiterStore: newLimiterStore(),
	}
	rs.Setup()

	logger.Info("http server created with:", defaultLimiter)

	httpServer := &http.Server{
		Addr:    cfg.HttpHostPort,
		Handler: rs.Server,
	}

	go func() {
		logger.Info("Starting HTTP server on: " + cfg.HttpHostPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	mqttClient.Close()
	sweeper.Stop()

	_ = logger.Sync()
}
