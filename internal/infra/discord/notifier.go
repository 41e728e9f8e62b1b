package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"tvalert_go/internal/domain"
	"tvalert_go/internal/infra"
)

// State is the lifecycle position of the bot session.
type State int

const (
	StateNotReady State = iota
	StateConnecting
	StateReady
	StateDisabled // terminal: login failed or was aborted, no reconnect
)

func (s State) String() string {
	switch s {
	case StateNotReady:
		return "not_ready"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Notifier owns the long-lived Discord gateway session and pushes alert
// embeds to one configured channel. Delivery is best effort: Send absorbs
// every failure so the webhook path never depends on Discord health.
type Notifier struct {
	session      *discordgo.Session
	channelID    string
	readyTimeout time.Duration
	logger       *slog.Logger

	mu    sync.RWMutex
	state State
}

// NewNotifier builds a notifier from configuration. When Discord is not
// configured (missing or placeholder credentials) the notifier is created
// without a session and stays permanently NotReady; callers must skip
// Initialize in that case.
func NewNotifier(cfg *infra.Config) (*Notifier, error) {
	n := &Notifier{
		channelID:    cfg.Discord.ChannelID,
		readyTimeout: time.Duration(cfg.Discord.ReadyTimeoutSec) * time.Second,
		logger:       slog.Default().With("module", "discord_notifier"),
	}
	if !cfg.DiscordEnabled() {
		return n, nil
	}

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	n.session = session
	return n, nil
}

// Enabled reports whether a session was configured at all.
func (n *Notifier) Enabled() bool {
	return n.session != nil
}

// Initialize logs in to the Discord gateway and blocks until the session
// reports ready, the timeout elapses, or ctx is cancelled. Any failure is
// terminal for the process lifetime: the state moves to Disabled and no
// reconnect is attempted. The caller decides whether that is fatal (it is
// not: the HTTP service keeps running without delivery).
func (n *Notifier) Initialize(ctx context.Context) error {
	if n.session == nil {
		return domain.ErrNotifierDisabled
	}
	n.setState(StateConnecting)

	ready := make(chan *discordgo.Ready, 1)
	n.session.AddHandlerOnce(func(_ *discordgo.Session, r *discordgo.Ready) {
		ready <- r
	})

	if err := n.session.Open(); err != nil {
		n.setState(StateDisabled)
		return fmt.Errorf("discord login: %w", err)
	}

	select {
	case r := <-ready:
		n.setState(StateReady)
		n.logger.Info("Discord bot logged in", slog.String("user", r.User.Username))
		return nil
	case <-ctx.Done():
		n.session.Close()
		n.setState(StateDisabled)
		return fmt.Errorf("discord login aborted: %w", ctx.Err())
	case <-time.After(n.readyTimeout):
		n.session.Close()
		n.setState(StateDisabled)
		return domain.ErrLoginTimeout
	}
}

// IsReady reports whether the session completed login.
func (n *Notifier) IsReady() bool {
	return n.getState() == StateReady
}

// Send pushes an alert embed to the configured channel. When the session is
// not ready this is a silent no-op: a missing Discord integration must never
// turn into a webhook-caller-visible failure. All delivery errors are logged
// and swallowed.
func (n *Notifier) Send(ctx context.Context, alert *domain.Alert) {
	if !n.IsReady() {
		n.logger.Warn("Discord session not ready, alert not delivered",
			slog.String("symbol", alert.Symbol), slog.String("state", n.getState().String()))
		infra.DiscordSends.WithLabelValues("not_ready").Inc()
		return
	}

	channel, err := n.session.Channel(n.channelID, discordgo.WithContext(ctx))
	if err != nil {
		n.logger.Error("Discord channel lookup failed",
			slog.String("channel_id", n.channelID), slog.Any("error", err))
		infra.DiscordSends.WithLabelValues("channel_error").Inc()
		return
	}
	if !postableChannel(channel.Type) {
		n.logger.Error("Discord channel is not a text channel",
			slog.String("channel_id", n.channelID), slog.Int("type", int(channel.Type)))
		infra.DiscordSends.WithLabelValues("channel_error").Inc()
		return
	}

	embed := BuildAlertEmbed(alert)
	if _, err := n.session.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		n.logger.Error("Failed to send Discord message",
			slog.String("symbol", alert.Symbol), slog.Any("error", err))
		infra.DiscordSends.WithLabelValues("send_error").Inc()
		return
	}

	n.logger.Info("Trading alert sent to Discord", slog.String("symbol", alert.Symbol))
	infra.DiscordSends.WithLabelValues("sent").Inc()
}

// Close shuts the gateway session down.
func (n *Notifier) Close() {
	if n.session == nil {
		return
	}
	if err := n.session.Close(); err != nil {
		n.logger.Warn("Discord session close failed", slog.Any("error", err))
	}
}

func postableChannel(t discordgo.ChannelType) bool {
	switch t {
	case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews, discordgo.ChannelTypeDM:
		return true
	default:
		return false
	}
}

func (n *Notifier) setState(s State) {
	n.mu.Lock()
	n.state = s
	n.mu.Unlock()
}

func (n *Notifier) getState() State {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}
