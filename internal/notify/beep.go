package notify

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// ErrAudioUnavailable indicates the host has no usable audio output.
var ErrAudioUnavailable = errors.New("audio unavailable")

const (
	beepSampleRate = 44100
	beepFrequency  = 800
	beepDuration   = 500 * time.Millisecond
	beepStartGain  = 0.3
	beepEndGain    = 0.01
)

// Beep plays a short sine cue. The audio context is created on first use;
// if that fails every later call returns ErrAudioUnavailable.
type Beep struct {
	once    sync.Once
	context *oto.Context
	err     error
	pcm     []byte
}

// NewBeep creates the cue without touching the audio device.
func NewBeep() *Beep {
	return &Beep{
		pcm: sinePCM(beepSampleRate, beepFrequency, beepDuration, beepStartGain, beepEndGain),
	}
}

// Notify starts playback and returns without waiting for it to finish.
func (beep *Beep) Notify(Event) error {
	beep.once.Do(beep.open)
	if beep.err != nil {
		return beep.err
	}

	player := beep.context.NewPlayer(bytes.NewReader(beep.pcm))
	player.Play()
	go func() {
		for player.IsPlaying() {
			time.Sleep(20 * time.Millisecond)
		}
		_ = player.Close()
	}()
	return nil
}

func (beep *Beep) open() {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   beepSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		beep.err = fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
		return
	}
	<-ready
	beep.context = context
}

// sinePCM renders a mono signed 16-bit little-endian sine wave whose gain
// ramps exponentially from startGain to endGain.
func sinePCM(sampleRate int, frequency float64, duration time.Duration, startGain, endGain float64) []byte {
	samples := int(float64(sampleRate) * duration.Seconds())
	buffer := make([]byte, samples*2)
	if samples == 0 {
		return buffer
	}
	ratio := endGain / startGain
	for i := 0; i < samples; i++ {
		position := float64(i) / float64(samples)
		gain := startGain * math.Pow(ratio, position)
		value := gain * math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate))
		binary.LittleEndian.PutUint16(buffer[i*2:], uint16(int16(value*math.MaxInt16)))
	}
	return buffer
}
