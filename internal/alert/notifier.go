package alert

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

// Player plays the notification sound for one triggered alert.
type Player interface {
	Play(ctx context.Context, a Alert) error
}

// Publisher pushes notifier output to whatever renders it.
type Publisher interface {
	PublishBadge(activeCount int)
	PublishTriggered(a Alert)
}

// Notifier surfaces freshly triggered alerts. Sound is off until the user
// enables it once; the permission lives for the process and is not persisted.
type Notifier struct {
	player    Player
	publisher Publisher
	logger    *zap.Logger

	audio atomic.Bool
	badge atomic.Int64
}

// NewNotifier accepts a nil publisher for headless use.
func NewNotifier(player Player, publisher Publisher, logger *zap.Logger) *Notifier {
	return &Notifier{
		player:    player,
		publisher: publisher,
		logger:    logger.Named("notifier"),
	}
}

// EnableAudio records the user's permission. It reports whether this call
// changed the flag.
func (n *Notifier) EnableAudio() bool {
	changed := n.audio.CompareAndSwap(false, true)
	if changed {
		n.logger.Info("audio notifications enabled by user")
	}
	return changed
}

func (n *Notifier) AudioEnabled() bool {
	return n.audio.Load()
}

// ActiveCount is the last published badge value.
func (n *Notifier) ActiveCount() int {
	return int(n.badge.Load())
}

// Notify handles one batch of newly triggered alerts: a sound per alert when
// permitted, then the recomputed badge. Playback errors are logged only.
func (n *Notifier) Notify(ctx context.Context, triggered []Alert, activeCount int) {
	for _, a := range triggered {
		n.logger.Info("alert triggered",
			zap.Int64("alert_id", a.ID),
			zap.String("symbol", a.Symbol),
			zap.String("condition", string(a.Condition)),
			zap.Float64("price", a.Price),
		)

		if n.publisher != nil {
			n.publisher.PublishTriggered(a)
		}

		if !n.AudioEnabled() {
			n.logger.Debug("audio not enabled by user, skipping sound", zap.Int64("alert_id", a.ID))
			continue
		}
		if n.player == nil {
			continue
		}
		if err := n.player.Play(ctx, a); err != nil {
			n.logger.Warn("failed to play alert sound", zap.Int64("alert_id", a.ID), zap.Error(err))
		}
	}

	n.UpdateBadge(activeCount)
}

// UpdateBadge publishes the active-alert count.
func (n *Notifier) UpdateBadge(activeCount int) {
	n.badge.Store(int64(activeCount))
	if n.publisher != nil {
		n.publisher.PublishBadge(activeCount)
	}
}

// LogPlayer stands in for a sound device when no dashboard is attached.
type LogPlayer struct {
	Logger *zap.Logger
}

func (p LogPlayer) Play(_ context.Context, a Alert) error {
	p.Logger.Info("beep", zap.Int64("alert_id", a.ID), zap.String("symbol", a.Symbol))
	return nil
}
