package alert

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingPlayer struct {
	mu     sync.Mutex
	played []int64
	err    error
}

func (p *recordingPlayer) Play(_ context.Context, a Alert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, a.ID)
	return p.err
}

type recordingPublisher struct {
	badges    []int
	triggered []int64
}

func (p *recordingPublisher) PublishBadge(n int) { p.badges = append(p.badges, n) }
func (p *recordingPublisher) PublishTriggered(a Alert) {
	p.triggered = append(p.triggered, a.ID)
}

// go test -v --run TestNotifierAudioGate
func TestNotifierAudioGate(t *testing.T) {
	player := &recordingPlayer{}
	pub := &recordingPublisher{}
	n := NewNotifier(player, pub, zap.NewNop())
	batch := []Alert{{ID: 1, Symbol: "BTC"}, {ID: 2, Symbol: "ETH"}}

	n.Notify(context.Background(), batch, 3)
	assert.Empty(t, player.played, "no sound before the user enables audio")
	assert.Equal(t, []int64{1, 2}, pub.triggered)
	assert.Equal(t, 3, n.ActiveCount())

	assert.True(t, n.EnableAudio())
	assert.False(t, n.EnableAudio(), "permission is granted once")
	assert.True(t, n.AudioEnabled())

	n.Notify(context.Background(), batch, 1)
	assert.Equal(t, []int64{1, 2}, player.played, "one sound per triggered alert")
	assert.Equal(t, []int{3, 1}, pub.badges)
	assert.Equal(t, 1, n.ActiveCount())
}

// go test -v --run TestNotifierPlaybackFailureIsLogged
func TestNotifierPlaybackFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	player := &recordingPlayer{err: errors.New("autoplay blocked")}
	n := NewNotifier(player, nil, zap.New(core))
	n.EnableAudio()

	assert.NotPanics(t, func() {
		n.Notify(context.Background(), []Alert{{ID: 9, Symbol: "SOL"}}, 0)
	})

	assert.Equal(t, 1, logs.FilterMessage("failed to play alert sound").Len())
	assert.Equal(t, 0, n.ActiveCount())
}
