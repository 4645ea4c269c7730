package audio

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid"
)

const sampleRate = beep.SampleRate(44100)

// ErrDisabled is returned by Initialize when audio is turned off in config.
var ErrDisabled = errors.New("audio: disabled")

// SoundManager plays bounce blips through a shared mixer. It implements
// arkanoid.Sounder. Until Initialize succeeds every Play call is a no-op.
type SoundManager struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	rng         core.Random
	mixer       *beep.Mixer
	log         *log.Logger
	initialized bool
}

// NewSoundManager creates a manager. Pitch randomization draws from its own
// generator so sound never perturbs the simulation's RNG.
func NewSoundManager(cfg config.AudioConfig, seed int64, logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SoundManager{
		cfg:   cfg,
		rng:   core.NewRNG(seed),
		mixer: &beep.Mixer{},
		log:   logger,
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrDisabled
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Close stops playback and releases the speaker.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Pitch returns a random pitch multiplier in [MinPitch, MaxPitch].
func (sm *SoundManager) Pitch() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.pitch()
}

func (sm *SoundManager) pitch() float64 {
	lo, hi := sm.cfg.MinPitch, sm.cfg.MaxPitch
	if hi <= lo {
		return lo
	}
	return core.RangeF(sm.rng, lo, hi)
}

// PlayBounce queues a blip for the bounce category and returns immediately.
func (sm *SoundManager) PlayBounce(cat arkanoid.Category) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s, err := Blip(sampleRate, cat, sm.pitch(), sm.cfg.Volume)
	if err != nil {
		sm.log.Warn("blip synthesis failed", "category", cat, "err", err)
		return
	}
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
