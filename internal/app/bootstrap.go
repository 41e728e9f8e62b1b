package app

import (
	"context"
	"log/slog"

	"tvalert_go/internal/domain"
	"tvalert_go/internal/infra"
	"tvalert_go/internal/infra/discord"
)

// Bootstrap orchestrates the application startup sequence.
type Bootstrap struct {
	Config   *infra.Config
	Notifier *discord.Notifier
}

// NewBootstrap creates a new Bootstrap instance.
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration, installs the logger and builds the
// notifier. Chat delivery being unconfigured is not an error: the webhook
// service must run regardless.
func (b *Bootstrap) Initialize() error {
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	if cfg.Server.WebhookSecret == "" {
		slog.Warn("WEBHOOK_SECRET is empty; every webhook will be rejected as unauthorized")
	}

	notifier, err := discord.NewNotifier(cfg)
	if err != nil {
		return err
	}
	b.Notifier = notifier

	if !notifier.Enabled() {
		slog.Warn("Discord credentials not configured, chat delivery disabled")
		slog.Info("Set DISCORD_BOT_TOKEN and DISCORD_CHANNEL_ID to enable Discord integration")
	}
	return nil
}

// StartNotifier performs the gateway login. A failed login disables delivery
// for the process lifetime but never aborts startup.
func (b *Bootstrap) StartNotifier(ctx context.Context) {
	if b.Notifier == nil || !b.Notifier.Enabled() {
		return
	}
	if err := b.Notifier.Initialize(ctx); err != nil {
		slog.Error("Failed to initialize Discord bot", slog.Any("error", err))
		slog.Info("Server will continue running without Discord functionality")
		return
	}
	slog.Info("✅ Discord bot initialized")
}

// AlertNotifier exposes the notifier behind the domain interface.
func (b *Bootstrap) AlertNotifier() domain.AlertNotifier {
	return b.Notifier
}

// Close releases the notifier session.
func (b *Bootstrap) Close() {
	if b.Notifier != nil {
		b.Notifier.Close()
	}
}
