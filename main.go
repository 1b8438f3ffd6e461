// File: slotbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotbook/config"
	"slotbook/cron"
	"slotbook/database"
	"slotbook/database/memstore"
	appointmentRepo "slotbook/database/repository/appointment"
	availabilityRepo "slotbook/database/repository/availability"
	consumerRepo "slotbook/database/repository/consumer"
	paymentRepo "slotbook/database/repository/payment"
	providerRepo "slotbook/database/repository/provider"
	timeslotRepo "slotbook/database/repository/timeslot"
	"slotbook/handlers"
	"slotbook/middleware"
	"slotbook/routes"
	"slotbook/services/admin"
	"slotbook/services/availability"
	"slotbook/services/booking"
	"slotbook/services/events"
	"slotbook/services/payment"
	"slotbook/services/tasks"
	"slotbook/telemetry"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// stores is the set of repositories the services run on.
type stores struct {
	slots        timeslotRepo.TimeSlotRepository
	availability availabilityRepo.AvailabilityRepository
	appointments appointmentRepo.AppointmentRepository
	payments     paymentRepo.PaymentRepository
	providers    providerRepo.ProviderRepository
	consumers    consumerRepo.ConsumerRepository
	transactor   database.Transactor
	pinger       utils.Pinger
}

func openStores(ctx context.Context, logger *zap.Logger) (*stores, error) {
	if config.AppConfig.DatabaseDriver == "memory" {
		logger.Warn("Using in-memory store; data is lost on restart")
		mem := memstore.New()
		return &stores{
			slots:        mem.Slots(),
			availability: mem.Availability(),
			appointments: mem.Appointments(),
			payments:     mem.Payments(),
			providers:    mem.Providers(),
			consumers:    mem.Consumers(),
			transactor:   mem,
			pinger:       mem,
		}, nil
	}

	db, err := database.InitDB(logger)
	if err != nil {
		return nil, err
	}
	s := &stores{
		slots:        timeslotRepo.NewMongoTimeSlotRepo(db),
		availability: availabilityRepo.NewMongoAvailabilityRepo(db),
		appointments: appointmentRepo.NewMongoAppointmentRepo(db),
		payments:     paymentRepo.NewMongoPaymentRepo(db),
		providers:    providerRepo.NewMongoProviderRepo(db),
		consumers:    consumerRepo.NewMongoConsumerRepo(db),
		transactor:   database.NewMongoTransactor(database.MongoClient),
		pinger:       database.MongoPinger{Client: database.MongoClient},
	}

	indexers := []interface {
		EnsureIndexes(ctx context.Context) error
	}{s.slots, s.availability, s.appointments, s.payments, s.providers, s.consumers}
	for _, ix := range indexers {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, logger)
	if err != nil {
		logger.Fatal("main: failed to set up tracing", zap.Error(err))
	}

	clock, err := utils.NewNaiveClock(config.AppConfig.SlotTimezone)
	if err != nil {
		logger.Fatal("main: invalid slot timezone", zap.Error(err))
	}

	st, err := openStores(ctx, logger)
	if err != nil {
		logger.Fatal("main: failed to open store", zap.Error(err))
	}

	// Redis backs the profile cache and the task queue.
	var cache *redis.Client
	var queue *asynq.Client
	if config.AppConfig.RedisAddr != "" {
		cache = utils.GetCacheClient()
		queue = asynq.NewClient(cron.RedisOpt())
		defer queue.Close()
	} else {
		logger.Warn("REDIS_ADDR not set; profile cache and background release disabled")
	}
	utils.StartHealthMonitor(ctx, cache, st.pinger)
	consumers := consumerRepo.NewCachedConsumerRepo(st.consumers, cache, logger)

	var publisher interface {
		booking.EventPublisher
		Close() error
	}
	if config.AppConfig.KafkaBrokers != "" {
		publisher = events.NewKafkaPublisher(config.AppConfig.KafkaBrokers, logger)
	} else {
		publisher = &events.LogPublisher{Logger: logger}
	}
	defer publisher.Close()

	var verifier payment.Verifier = payment.NoopVerifier{}
	if config.AppConfig.StripeKey != "" {
		verifier = payment.NewStripeVerifier(config.AppConfig.StripeKey, logger)
	} else {
		logger.Warn("STRIPE_KEY not set; payments are accepted as submitted")
	}

	// services.
	generator := &availability.Generator{
		Slots:    st.slots,
		Duration: config.AppConfig.SlotDurationMinutes,
		Logger:   logger,
	}
	availabilityService := &availability.DefaultAvailabilityService{
		Repo:       st.availability,
		Slots:      st.slots,
		Providers:  st.providers,
		Transactor: st.transactor,
		Generator:  generator,
		Clock:      clock,
		Logger:     logger,
	}
	coordinator := &booking.Coordinator{
		Slots:        st.slots,
		Availability: st.availability,
		Appointments: st.appointments,
		Payments:     st.payments,
		Providers:    st.providers,
		Consumers:    consumers,
		Transactor:   st.transactor,
		Policy: booking.HoldPolicy{
			DefaultMinutes: config.AppConfig.HoldDefaultMinutes,
			AllowedMinutes: config.AppConfig.AllowedHoldMinutes(),
		},
		Clock:  clock,
		Events: publisher,
		Logger: logger,
	}
	if queue != nil {
		coordinator.Scheduler = &tasks.AsynqScheduler{Client: queue, Location: clock.Location}
	}
	adminService := &admin.DefaultAdminService{
		Providers: st.providers,
		Clock:     clock,
		Logger:    logger,
	}

	var worker *cron.Worker
	if queue != nil {
		worker, err = cron.InitSlotWorker(coordinator, logger)
		if err != nil {
			logger.Fatal("main: failed to start slot worker", zap.Error(err))
		}
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, logger))

	routes.RegisterRoutes(router, &handlers.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Booking:      handlers.NewBookingHandler(coordinator, verifier),
		Admin:        handlers.NewAdminHandler(adminService),
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: otelhttp.NewHandler(router, telemetry.ServiceName),
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("main: failed to flush traces", zap.Error(err))
	}
	if database.MongoClient != nil {
		if err := database.MongoClient.Disconnect(shutdownCtx); err != nil {
			logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
		}
	}

	logger.Info("main: server stopped gracefully")
}
