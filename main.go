package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"restaurant-backend/auth"
	"restaurant-backend/config"
	"restaurant-backend/db"
	"restaurant-backend/httpapi"
	"restaurant-backend/notify"
	"restaurant-backend/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(ctx, cfg, log)
		return
	}

	var st store.Store
	switch cfg.StoreBackend {
	case "memory":
		mem := store.NewMemory()
		if err := mem.SeedSampleMenu(ctx); err != nil {
			log.WithError(err).Fatal("seed menu")
		}
		st = mem
		log.Info("using in-memory store")
	default:
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			log.WithError(err).Fatal("db connect")
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.WithError(err).Fatal("db ping")
		}

		// Optional auto-migration (useful in production and for fresh
		// DBs). Set AUTO_MIGRATE=1 (or "true") to enable.
		if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
			if err := applyMigrations(ctx, pool, false); err != nil {
				log.WithError(err).Fatal("migrate")
			}
		}
		st = store.NewPostgres(pool)
	}

	if err := ensureAdmin(ctx, st, cfg.Auth, log); err != nil {
		log.WithError(err).Fatal("admin seed")
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		// Tokens signed with an ephemeral secret stop working on
		// restart. Fine for development, set JWT_SECRET in production.
		secret = randomSecret()
		log.Warn("JWT_SECRET not set, using an ephemeral secret")
	}
	tokens := auth.NewTokens(secret)

	var notifier notify.Notifier
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
		if err != nil {
			log.WithError(err).Fatal("telegram")
		}
		notifier = tg
		log.WithField("chat_id", cfg.Telegram.ChatID).Info("telegram notifications enabled")
	}

	h := httpapi.New(st, tokens, notifier, log)
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      h.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.HTTP.Addr).Info("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}

// ensureAdmin creates the admin account on first start. When no password
// is configured a random one is generated and printed exactly once.
func ensureAdmin(ctx context.Context, st store.Store, cfg config.AuthConfig, log *logrus.Logger) error {
	_, err := st.GetAdminByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	password := cfg.AdminPassword
	if password == "" {
		password, err = auth.GeneratePassword()
		if err != nil {
			return err
		}
		log.WithField("username", cfg.AdminUsername).
			WithField("password", password).
			Warn("generated admin password, change it after first login")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = st.CreateAdmin(ctx, cfg.AdminUsername, hash)
	return err
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		logrus.WithError(err).Fatal("rand")
	}
	return hex.EncodeToString(buf)
}

func runMigrate(ctx context.Context, cfg *config.Config, log *logrus.Logger) {
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("db connect")
	}
	defer pool.Close()

	if err := applyMigrations(ctx, pool, true); err != nil {
		log.WithError(err).Fatal("migrate")
	}
}
