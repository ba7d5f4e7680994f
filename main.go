package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"allure-backend/config"
	"allure-backend/controllers"
	"allure-backend/routes"
	"allure-backend/services"
	"allure-backend/storage"
	"allure-backend/store"
	"allure-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/romana/rlog"
)

const usage = `usage: allure-backend [command]

commands:
  serve        run the HTTP API (default)
  reminders    push the delivery reminder summary to every subscribed user and exit
  vapid-keys   print a new VAPID key pair for web push
  jwt-secret   print a random JWT secret
`

type app struct {
	cfg       *config.AppConfig
	media     *storage.LocalStore
	handlers  routes.Handlers
	reminders *services.ReminderService
	shutdown  []func(context.Context) error
}

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "vapid-keys":
		priv, pub, err := services.GenerateVAPIDKeys()
		if err != nil {
			fatal("Failed to generate VAPID keys: %v", err)
		}
		fmt.Printf("VAPID_PUBLIC_KEY=%s\nVAPID_PRIVATE_KEY=%s\n", pub, priv)
		return
	case "jwt-secret":
		fmt.Printf("JWT_SECRET=%s\n", utils.GenerateJWTSecret())
		return
	case "serve", "reminders":
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("Invalid configuration: %v", err)
	}
	a, err := newApp(cfg)
	if err != nil {
		fatal("Startup failed: %v", err)
	}
	defer a.close()

	if cmd == "reminders" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		run, err := a.reminders.NotifyAll(ctx)
		if err != nil {
			rlog.Errorf("Reminder run failed: %v", err)
			a.close()
			os.Exit(1)
		}
		fmt.Printf("due=%d users=%d sent=%d total=%d\n", run.Due, run.Users, run.Sent, run.Total)
		return
	}
	a.serve()
}

func newApp(cfg *config.AppConfig) (*app, error) {
	a := &app{cfg: cfg}

	if cfg.OTLPEndpoint != "" {
		tp, err := config.InitTracer("allure-backend", cfg.OTLPEndpoint)
		if err != nil {
			return nil, err
		}
		a.shutdown = append(a.shutdown, tp.Shutdown)
	}
	if err := config.InitRateLimit(cfg.PushSendQPS); err != nil {
		return nil, fmt.Errorf("init rate limit: %w", err)
	}

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var cache services.SettingsCache
	rdb, err := config.InitRedis(cfg)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		cache = store.NewRedisSettingsCache(rdb, cfg.SettingsCacheTTL)
		a.shutdown = append(a.shutdown, func(context.Context) error { return rdb.Close() })
	}

	media, err := storage.NewLocalStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		return nil, err
	}
	a.media = media

	var pushSender services.PushSender
	vapidPublic := ""
	if cfg.PushEnabled() {
		wp := services.NewWebPushSender(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubscriber)
		pushSender = wp
		vapidPublic = wp.PublicKey()
	} else {
		rlog.Warn("VAPID keys not set, push notifications disabled")
	}

	var whatsappSender services.WhatsAppSender
	if cfg.TwilioEnabled() {
		whatsappSender = services.NewTwilioWhatsApp(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber)
	}

	calendar := services.NewCalendar(cfg.Timezone)
	orderStore := store.NewOrderStore(db)
	customerStore := store.NewCustomerStore(db)
	pushStore := store.NewPushStore(db)

	settingsSvc := services.NewSettingsService(store.NewSettingsStore(db), cache)
	orderSvc := services.NewOrderService(orderStore, customerStore, media, calendar, cfg.MaxImageBytes)
	customerSvc := services.NewCustomerService(customerStore, media, calendar)
	pushSvc := services.NewPushService(pushStore, pushSender, cfg.PushConcurrency)
	a.reminders = services.NewReminderService(orderStore, pushStore, pushSvc, settingsSvc, calendar)

	a.handlers = routes.Handlers{
		Auth:      controllers.NewAuthController(services.NewAuthService(store.NewUserStore(db), cfg.JWTSecret, cfg.JWTExpiry, cfg.AllowRegistration)),
		Customers: controllers.NewCustomerController(customerSvc),
		Orders:    controllers.NewOrderController(orderSvc, settingsSvc, services.NewWhatsAppService(orderSvc, whatsappSender)),
		Settings:  controllers.NewSettingsController(settingsSvc),
		Dashboard: controllers.NewDashboardController(
			services.NewDashboardService(store.NewDashboardStore(db), calendar),
			services.NewReportService(store.NewReportStore(db), calendar),
		),
		Push: controllers.NewPushController(pushSvc, a.reminders, vapidPublic),
	}

	if sqlDB, err := db.DB(); err == nil {
		a.shutdown = append(a.shutdown, func(context.Context) error { return sqlDB.Close() })
	}
	return a, nil
}

func (a *app) serve() {
	r := routes.SetupRouter(a.cfg, a.handlers, a.media.Root())
	printRoutes(r)

	srv := &http.Server{
		Addr:    ":" + a.cfg.Port,
		Handler: r,
	}
	go func() {
		rlog.Infof("Allure backend listening on :%s", a.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	rlog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		rlog.Errorf("Forced shutdown: %v", err)
	}
}

// close releases resources in reverse order of acquisition. Safe to call twice.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(a.shutdown) - 1; i >= 0; i-- {
		if err := a.shutdown[i](ctx); err != nil {
			rlog.Warnf("Shutdown: %v", err)
		}
	}
	a.shutdown = nil
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		rlog.Debugf("%-6s %s", route.Method, route.Path)
	}
}

func fatal(format string, args ...interface{}) {
	rlog.Criticalf(format, args...)
	os.Exit(1)
}
