package systems

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/ecs"
	"github.com/decker502/garage/pkg/entities"
	"github.com/decker502/garage/pkg/game"
)

// fakeCue 可控位置的假音频，用于模拟暂停、漂移和回绕的音频时钟
type fakeCue struct {
	playing  bool
	position time.Duration
	volume   float64
	plays    int
}

func (c *fakeCue) Play()                   { c.playing = true; c.plays++ }
func (c *fakeCue) Pause()                  { c.playing = false }
func (c *fakeCue) IsPlaying() bool         { return c.playing }
func (c *fakeCue) Position() time.Duration { return c.position }
func (c *fakeCue) SetVolume(v float64)     { c.volume = v }
func (c *fakeCue) SetPosition(d time.Duration) error {
	c.position = d
	return nil
}

// stubRandom 按顺序循环返回预设值
type stubRandom struct {
	values []float64
	next   int
}

func (r *stubRandom) Float64() float64 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

// testPanel 测试用仪表盘：一个面板实体 + 内存视觉输出 + 假音频
type testPanel struct {
	em      *ecs.EntityManager
	id      ecs.EntityID
	cfg     *config.PanelConfig
	sink    *game.MemorySink
	audio   *game.AudioManager
	frames  *game.FrameLoop
	session *game.SessionStore

	engineCue  *fakeCue
	hornCue    *fakeCue
	funnyCue   *fakeCue
	blinkerCue *fakeCue
}

func newTestPanel(t *testing.T) *testPanel {
	t.Helper()

	em := ecs.NewEntityManager()
	cfg := config.DefaultPanelConfig()
	id, err := entities.NewInstrumentPanelEntity(em, cfg)
	if err != nil {
		t.Fatalf("NewInstrumentPanelEntity: %v", err)
	}

	p := &testPanel{
		em:         em,
		id:         id,
		cfg:        cfg,
		sink:       game.NewMemorySink(game.PanelElements...),
		audio:      game.NewAudioManager(nil, nil),
		frames:     game.NewFrameLoop(),
		session:    game.NewSessionStore(nil, "test-session"),
		engineCue:  &fakeCue{},
		hornCue:    &fakeCue{},
		funnyCue:   &fakeCue{},
		blinkerCue: &fakeCue{},
	}
	p.audio.RegisterCue(game.CueEngineStart, p.engineCue)
	p.audio.RegisterCue(game.CueHorn, p.hornCue)
	p.audio.RegisterCue(game.CueHornFunny, p.funnyCue)
	p.audio.RegisterCue(game.CueBlinker, p.blinkerCue)
	return p
}

// startEngine 直接把发动机置为已启动
func (p *testPanel) startEngine(t *testing.T) {
	t.Helper()
	engine := NewEngineSystem(p.em, p.cfg.Engine, p.sink, p.audio, p.session)
	engine.Start()
}

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func localTime(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}
