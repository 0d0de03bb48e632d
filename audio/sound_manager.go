// Package audio plays the eat and game over sounds.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"snake-autopilot/game/manager"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
	crashFreq  = 160
)

// SoundManager mixes game sounds onto the speaker. It satisfies
// game.Listener; before Initialize every call is a no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	log         *slog.Logger
}

func NewSoundManager(logger *slog.Logger) *SoundManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SoundManager{
		mixer: &beep.Mixer{},
		log:   logger,
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Close stops all sounds and releases the speaker
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

func (sm *SoundManager) FoodEaten(score int) {
	blip, err := NewBlip(sampleRate, score)
	if err != nil {
		sm.log.Warn("eat sound unavailable", "error", err)
		return
	}
	sm.play(blip)
}

func (sm *SoundManager) GameOver(_ int, cause manager.CollisionType) {
	if cause == manager.BoardFull {
		// a full board is a win, no crash
		return
	}
	sm.play(NewCrashGenerator(sampleRate, crashFreq, 400*time.Millisecond))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	// the speaker goroutine reads the mixer
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Pending is the number of sounds still in the mixer
func (sm *SoundManager) Pending() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return sm.mixer.Len()
}
