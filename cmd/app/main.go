package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	inhttp "github.com/bosco250/uruti-schedule-service/internal/adapters/in/http"
	"github.com/bosco250/uruti-schedule-service/internal/adapters/in/rabbitmq"
	"github.com/bosco250/uruti-schedule-service/internal/adapters/out/cache"
	"github.com/bosco250/uruti-schedule-service/internal/adapters/out/logger"
	"github.com/bosco250/uruti-schedule-service/internal/adapters/out/salonapi"
	"github.com/bosco250/uruti-schedule-service/internal/config"
	"github.com/bosco250/uruti-schedule-service/internal/core/ports/out"
	"github.com/bosco250/uruti-schedule-service/internal/core/services/schedule_service"
	"github.com/bosco250/uruti-schedule-service/internal/core/services/worklog_service"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	salonAdapter := salonapi.NewSalonAdapter(cfg, mainLogger.WithModule("SalonAdapter"))

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = adapter
	}

	clock := out.SystemClock{Location: cfg.Location}

	scheduleService := schedule_service.NewScheduleService(
		salonAdapter,
		cacheAdapter,
		clock,
		cfg,
		mainLogger,
	)
	worklogService := worklog_service.NewWorkLogService(
		salonAdapter,
		clock,
		cfg,
		mainLogger,
	)

	router := gin.Default()
	controller := inhttp.NewScheduleController(scheduleService, worklogService, cfg)
	controller.RegisterRoutes(router)

	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewAppointmentListener(
			scheduleService,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
