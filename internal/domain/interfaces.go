package domain

import "context"

// AlertNotifier defines the interface for chat delivery backends.
// Send is best effort: implementations log and absorb every failure so that
// a broken chat integration never surfaces to the webhook caller.
type AlertNotifier interface {
	Initialize(ctx context.Context) error
	Send(ctx context.Context, alert *Alert)
	IsReady() bool
}
