package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/urbanreach/routing-gateway/config"
	"github.com/urbanreach/routing-gateway/dispatch"
	"github.com/urbanreach/routing-gateway/internal"
	"github.com/urbanreach/routing-gateway/request"
	"github.com/urbanreach/routing-gateway/server"
	"github.com/urbanreach/routing-gateway/transport"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot")
	configPath := flag.String("config", "", "path to config.yml (optional)")
	from := flag.String("from", "", "origin \"lat,lon\" (oneshot)")
	to := flag.String("to", "", "destination \"lat,lon\" (oneshot)")
	provider := flag.String("provider", "", "provider name (oneshot, optional)")
	leaveAt := flag.String("leaveAt", "", "departure epoch ms (oneshot, optional)")
	arriveBy := flag.String("arriveBy", "", "arrival epoch ms (oneshot, optional)")
	modes := flag.String("modes", "", "comma-separated mode filter (oneshot, optional)")
	format := flag.String("format", "", "normalized|original (oneshot, optional)")
	flag.Parse()

	_ = godotenv.Load()

	log, err := internal.NewLogger(os.Getenv("APP_ENV"), "routing-gateway")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	cfg, err := config.LoadAppConfig(paths...)
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	trans := transport.NewHTTPTransport(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutMS)*time.Millisecond)
	dispatcher := dispatch.New(cfg, trans, log)

	switch *mode {
	case "serve":
		srv := server.New(cfg, dispatcher, log)
		go func() {
			if err := srv.Start(); err != nil {
				log.Fatal("server error", zap.Error(err))
			}
		}()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		log.Info("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	case "oneshot":
		req, err := request.Validate(request.Raw{
			From:     *from,
			To:       *to,
			Provider: *provider,
			LeaveAt:  *leaveAt,
			ArriveBy: *arriveBy,
			Modes:    *modes,
			Format:   *format,
		})
		if err != nil {
			log.Fatal("invalid request", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Upstream.TimeoutMS)*time.Millisecond)
		defer cancel()
		res, err := dispatcher.Dispatch(ctx, req)
		if err != nil {
			log.Fatal("dispatch failed", zap.Error(err))
		}

		var buf []byte
		if res.Raw != nil {
			buf = res.Raw
		} else {
			buf, err = json.MarshalIndent(res.Plan, "", "  ")
			if err != nil {
				log.Fatal("encoding plan failed", zap.Error(err))
			}
		}
		fmt.Println(string(buf))
	default:
		log.Fatal("unknown mode", zap.String("mode", *mode))
	}
}
