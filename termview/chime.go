package termview

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/evergreen"
)

const (
	chimeRate   = beep.SampleRate(44100)
	chimeNote   = 90 * time.Millisecond
	chimeVolume = -1.5 // in halvings, see effects.Volume
)

// Pentatonic notes, in Hz, played upward on assembly and downward on
// scatter.
var chimeScale = []float64{1046.50, 1174.66, 1318.51, 1567.98, 1760.00}

// chimeNotes returns the note frequencies for a transition into state.
func chimeNotes(state evergreen.MorphState) []float64 {
	notes := make([]float64, len(chimeScale))
	for i, f := range chimeScale {
		if state == evergreen.TreeShape {
			notes[i] = f
		} else {
			notes[len(chimeScale)-1-i] = f
		}
	}
	return notes
}

// Chime plays a short arpeggio on the default audio device.
type Chime struct {
	ready bool
}

// NewChime initializes the speaker. On failure the returned Chime is silent
// and the error says why.
func NewChime() (*Chime, error) {
	if err := speaker.Init(chimeRate, chimeRate.N(time.Second/10)); err != nil {
		return &Chime{}, fmt.Errorf("init speaker: %w", err)
	}
	return &Chime{ready: true}, nil
}

// Play queues the arpeggio for a transition into state.
func (c *Chime) Play(state evergreen.MorphState) {
	if c == nil || !c.ready {
		return
	}
	s, err := chimeStreamer(state)
	if err != nil {
		return
	}
	speaker.Play(s)
}

func chimeStreamer(state evergreen.MorphState) (beep.Streamer, error) {
	var parts []beep.Streamer
	for _, f := range chimeNotes(state) {
		tone, err := generators.SineTone(chimeRate, f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(chimeRate.N(chimeNote), tone))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: chimeVolume}, nil
}
