// This file is part of Goyan.
//
// Goyan is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Goyan is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Goyan.  If not, see <https://www.gnu.org/licenses/>.

package extaudio

import (
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/goyan-emu/goyan/curated"
	"github.com/goyan-emu/goyan/logger"
)

// Output is how decoded audio reaches the host machine's speakers. The
// cartridge core itself never requires an Output; attaching one is optional.
type Output interface {
	Start() error
	Stop()
	Close()
}

// Silent is an Output that discards everything. Useful for tests and for
// hosts that only want the protocol side of the emulation.
type Silent struct{}

// Start implements the Output interface.
func (Silent) Start() error { return nil }

// Stop implements the Output interface.
func (Silent) Stop() {}

// Close implements the Output interface.
func (Silent) Close() {}

// Device is an oto backed implementation of the Output interface. It pulls
// samples from the shared Audio state at the rate the platform mixer demands.
type Device struct {
	ctx    *oto.Context
	player *oto.Player

	mu  sync.Mutex
	aud *Audio
}

// NewDevice is the preferred method of initialisation for the Device type.
//
// The sample rate and channel count are fixed for the lifetime of the oto
// context, so they are given here rather than read from the Audio state.
func NewDevice(aud *Audio, sampleRate int, channels int) (*Device, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, curated.Errorf("extaudio: %v", err)
	}
	<-ready

	dev := &Device{
		ctx: ctx,
		aud: aud,
	}
	dev.player = ctx.NewPlayer(dev)

	logger.Logf("extaudio", "output device open: %dHz, %d channels", sampleRate, channels)

	return dev, nil
}

// Read implements the io.Reader interface. This is the hot path called by the
// oto mixer goroutine.
func (dev *Device) Read(p []byte) (int, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()

	aud := dev.aud

	// silence unless the cartridge has started playback
	if aud == nil || !aud.Playing || aud.Channels == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	numSamples := len(p) / 2

	for i := 0; i < numSamples; i++ {
		var s int16

		idx := aud.SamplePos*int(aud.Channels) + i%int(aud.Channels)
		if idx < len(aud.Buffer) {
			s = aud.Buffer[idx]
			s = int16(int32(s) * int32(aud.Volume) / MaxVolume)
		}

		p[i*2] = byte(s)
		p[i*2+1] = byte(s >> 8)

		// advance the shared playback position once per frame
		if i%int(aud.Channels) == int(aud.Channels)-1 {
			aud.SamplePos++
		}
	}

	if aud.EndOfData() {
		aud.Playing = false
	}

	return len(p), nil
}

// Start implements the Output interface.
func (dev *Device) Start() error {
	dev.player.Play()
	return nil
}

// Stop implements the Output interface.
func (dev *Device) Stop() {
	dev.player.Pause()
}

// Close implements the Output interface.
func (dev *Device) Close() {
	_ = dev.player.Close()
	logger.Log("extaudio", "output device closed")
}
