package main

import (
	"bytes"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog/log"
)

type SoundEvent int

const (
	SoundLock SoundEvent = iota
	SoundLine
	SoundPerfectClear
	SoundLevelUp
	SoundRotate
	SoundMove
	SoundDrop
	SoundMenuMove
	SoundMenuSelect
	SoundGameOver
)

const soundSampleRate = 44100

var (
	audioOnce sync.Once
	audioCtx  *oto.Context
	audioErr  error
)

// initAudioContext opens the shared output once; oto allows a single context per process.
func initAudioContext() (*oto.Context, error) {
	audioOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   soundSampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			audioErr = err
			return
		}
		<-ready
		audioCtx = ctx
	})
	return audioCtx, audioErr
}

type SoundEngine struct {
	mu      sync.RWMutex
	enabled bool
	ctx     *oto.Context
	volume  float64
}

// NewSoundEngine returns an engine that stays silent when ctx is nil.
func NewSoundEngine(ctx *oto.Context, enabled bool) *SoundEngine {
	return &SoundEngine{
		enabled: enabled,
		ctx:     ctx,
		volume:  0.7,
	}
}

func (s *SoundEngine) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
}

func (s *SoundEngine) Play(event SoundEvent) {
	s.mu.RLock()
	ctx := s.ctx
	enabled := s.enabled
	volume := s.volume
	s.mu.RUnlock()
	if !enabled || ctx == nil {
		return
	}
	sequence := tonesForEvent(event)
	if len(sequence) == 0 {
		return
	}
	go func() {
		buffer := renderToneSequence(sequence, soundSampleRate, volume)
		player := ctx.NewPlayer(bytes.NewReader(buffer))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(5 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			log.Debug().Err(err).Int("event", int(event)).Msg("close player")
		}
	}()
}

type toneSpec struct {
	frequency float64
	duration  time.Duration
	volume    float64
}

func tonesForEvent(event SoundEvent) []toneSpec {
	switch event {
	case SoundLock:
		return []toneSpec{{frequency: 220, duration: 70 * time.Millisecond, volume: 0.3}}
	case SoundLine:
		return []toneSpec{
			{frequency: 440, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 660, duration: 90 * time.Millisecond, volume: 0.3},
		}
	case SoundPerfectClear:
		return []toneSpec{
			{frequency: 660, duration: 80 * time.Millisecond, volume: 0.3},
			{frequency: 880, duration: 80 * time.Millisecond, volume: 0.3},
			{frequency: 990, duration: 80 * time.Millisecond, volume: 0.3},
			{frequency: 1320, duration: 160 * time.Millisecond, volume: 0.3},
		}
	case SoundLevelUp:
		return []toneSpec{
			{frequency: 523, duration: 60 * time.Millisecond, volume: 0.25},
			{frequency: 784, duration: 120 * time.Millisecond, volume: 0.25},
		}
	case SoundRotate:
		return []toneSpec{{frequency: 520, duration: 40 * time.Millisecond, volume: 0.25}}
	case SoundMove:
		return []toneSpec{{frequency: 380, duration: 25 * time.Millisecond, volume: 0.18}}
	case SoundDrop:
		return []toneSpec{{frequency: 240, duration: 55 * time.Millisecond, volume: 0.22}}
	case SoundMenuMove:
		return []toneSpec{{frequency: 260, duration: 24 * time.Millisecond, volume: 0.16}}
	case SoundMenuSelect:
		return []toneSpec{{frequency: 520, duration: 70 * time.Millisecond, volume: 0.2}}
	case SoundGameOver:
		return []toneSpec{{frequency: 180, duration: 160 * time.Millisecond, volume: 0.28}}
	default:
		return nil
	}
}

// renderToneSequence returns 16-bit little-endian stereo PCM with a short gap
// between tones.
func renderToneSequence(sequence []toneSpec, sampleRate int, masterVolume float64) []byte {
	const bytesPerFrame = 4
	gapSamples := int(float64(sampleRate) * (10 * time.Millisecond).Seconds())
	total := 0
	for i, spec := range sequence {
		total += int(float64(sampleRate) * spec.duration.Seconds())
		if i < len(sequence)-1 {
			total += gapSamples
		}
	}
	buffer := make([]byte, total*bytesPerFrame)
	index := 0
	for i, spec := range sequence {
		volume := spec.volume * clampVolume(masterVolume)
		renderTone(buffer, index, spec, sampleRate, volume)
		index += int(float64(sampleRate)*spec.duration.Seconds()) * bytesPerFrame
		if i < len(sequence)-1 {
			index += gapSamples * bytesPerFrame
		}
	}
	return buffer
}

func renderTone(buffer []byte, start int, spec toneSpec, sampleRate int, volume float64) {
	const maxInt16 = 1<<15 - 1
	samples := int(float64(sampleRate) * spec.duration.Seconds())
	fadeSamples := int(float64(sampleRate) * 0.003)
	for i := 0; i < samples; i++ {
		env := 1.0
		if fadeSamples > 0 {
			if i < fadeSamples {
				env = float64(i) / float64(fadeSamples)
			} else if i > samples-fadeSamples {
				env = math.Max(0, float64(samples-i)/float64(fadeSamples))
			}
		}
		sample := math.Sin(2 * math.Pi * spec.frequency * float64(i) / float64(sampleRate))
		value := int16(sample * volume * env * maxInt16)
		buffer[start+i*4] = byte(value)
		buffer[start+i*4+1] = byte(value >> 8)
		buffer[start+i*4+2] = byte(value)
		buffer[start+i*4+3] = byte(value >> 8)
	}
}

func clampVolume(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
