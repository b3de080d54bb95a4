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

// Package extaudio represents the external audio channel of the MP3 player
// cartridge. Decoded PCM lives here along with the playback position and
// output settings. The cartridge core reads and writes these fields directly,
// in the same way the real hardware's DSP and output stage share state.
package extaudio

// MaxVolume is the upper limit of the Volume field. The cartridge core
// rescales the device volume (0 to 46) into this range.
const MaxVolume = 63

// Audio is the shared state block for the external audio channel.
//
// The fields are deliberately public. The cartridge core owns the protocol
// side of playback and mutates this struct in response to register accesses;
// an Output implementation consumes it.
type Audio struct {
	// decoded source PCM. interleaved when Channels is more than one
	Buffer []int16

	// format of the data in Buffer
	Channels  uint32
	Frequency uint32

	// current playback position, in samples per channel
	SamplePos int

	// the last absolute buffer offset touched by the cartridge's resampler.
	// used to recover the playback position when switching output modes
	LastPos int

	Playing       bool
	UseHeadphones bool

	// output volume, 0 to MaxVolume
	Volume uint8
}

// EndOfData returns true if the playback position is at or beyond the end of
// the source buffer.
func (aud *Audio) EndOfData() bool {
	if aud.Channels == 0 {
		return true
	}
	return aud.SamplePos*int(aud.Channels) >= len(aud.Buffer)
}
