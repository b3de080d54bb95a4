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

package nmp

import (
	"bytes"
	"testing"

	"github.com/goyan-emu/goyan/test"
)

// startStreaming puts the device into speaker-mode streaming with the given
// source audio, as if play-music had already loaded it.
func startStreaming(py *NMP, src []int16, rate uint32, channels uint32, length uint32) {
	py.ext.Buffer = src
	py.sampleRate = rate
	py.channels = channels
	py.musicLength = length
	py.musicPlaying = true
	py.mediaPlaying = true
	py.updateAudioStream = true
	py.cmd = cmdUpdateAudio
	py.manualCmd = cmdUpdateAudio
	py.audioBufferSize = audioFrameSize
}

// noiseSource generates a deterministic pseudo-random source buffer.
func noiseSource(n int) []int16 {
	src := make([]int16, n)
	seed := uint32(0x2545)
	for i := range src {
		seed = seed*1103515245 + 12345
		src[i] = int16(seed >> 16)
	}
	return src
}

func TestStreamSilence(t *testing.T) {
	py, _, _ := newTestNMP(t, t.TempDir())

	// one second of silence at the device's native rate
	startStreaming(py, make([]int16, deviceSampleRate), deviceSampleRate, 1, 1)

	beginAccess(py, uint16(accessSD))
	test.Equate(t, py.State() == StateGetSDData, true)
	test.Equate(t, len(py.cardData), audioFrameSize+2)

	// every sample slot is zero and playback has not stopped
	for i := 2; i < len(py.cardData); i++ {
		if py.cardData[i] != 0 {
			t.Fatalf("nonzero sample at offset %d", i)
		}
	}
	test.Equate(t, py.musicPlaying, true)
}

func TestStreamDeterminism(t *testing.T) {
	src := noiseSource(44100 * 2)

	frames := func() [][]uint8 {
		py, _, _ := newTestNMP(t, t.TempDir())
		startStreaming(py, src, 44100, 2, 100)

		f := make([][]uint8, 0, 2)

		// a left-channel pass followed by a right-channel pass
		for i := 0; i < 2; i++ {
			beginAccess(py, uint16(accessSD))
			c := make([]uint8, len(py.cardData))
			copy(c, py.cardData)
			f = append(f, c)
		}

		return f
	}

	a := frames()
	b := frames()

	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			t.Fatalf("frame %d differs between runs", i)
		}
	}
}

func TestStreamChannelAlternation(t *testing.T) {
	py, _, _ := newTestNMP(t, t.TempDir())
	startStreaming(py, noiseSource(44100*2), 44100, 2, 100)

	// start mid-track so the start-of-song timestamp phase does not cut in
	py.sampleIndex = 1000

	// odd frame: left channel. the sample index is rolled back afterwards
	// so the right channel pass covers the same span
	beginAccess(py, uint16(accessSD))
	test.Equate(t, py.frameCount, uint32(1))
	test.Equate(t, py.sampleIndex, uint32(1000))

	beginAccess(py, uint16(accessSD))
	test.Equate(t, py.frameCount, uint32(2))
	test.Equate(t, py.sampleIndex, uint32(1000+audioFrameSize/2))
}

func TestSpeakerStreamStatus(t *testing.T) {
	py, _, _ := newTestNMP(t, t.TempDir())
	startStreaming(py, make([]int16, deviceSampleRate), deviceSampleRate, 1, 10)

	py.cmd = cmdUpdateAudio
	py.processCommand()

	// buffer size at status bytes 2-3, SD access ID at bytes 4-5
	test.Equate(t, py.statusData[2], 0x04)
	test.Equate(t, py.statusData[3], 0x80)
	test.Equate(t, py.statusData[4], 0x02)
	test.Equate(t, py.statusData[5], 0x02)

	// the audio-index sentinel is derived from the buffer size
	test.Equate(t, py.audioIndex, uint32(0x202+audioFrameSize/4))

	// a begin-access naming the sentinel is a bulk data access, not a
	// register window
	beginAccess(py, uint16(py.audioIndex))
	test.Equate(t, py.State() == StateGetSDData, true)
	test.Equate(t, len(py.cardData), audioFrameSize+2)
}

func TestStreamEndOfTrack(t *testing.T) {
	py, _, _ := newTestNMP(t, t.TempDir())

	// source much shorter than one frame
	startStreaming(py, make([]int16, 100), deviceSampleRate, 1, 1)

	beginAccess(py, uint16(accessSD))
	test.Equate(t, py.musicPlaying, false)
	test.Equate(t, py.mediaPlaying, false)
}

func TestTrackbarProgress(t *testing.T) {
	py, _, aud := newTestNMP(t, t.TempDir())

	aud.UseHeadphones = true
	py.musicPlaying = true
	py.mediaPlaying = true
	py.updateTrackbarTimestamp = true
	py.sampleRate = 16384
	py.channels = 1
	py.musicLength = 21

	// five seconds into a twenty second track (length-1) is 25%
	aud.SamplePos = 16384 * 5
	py.cmd = cmdUpdateAudio
	py.processCommand()

	test.Equate(t, py.statusData[8], 25)

	// elapsed seconds as a big-endian 16-bit value
	test.Equate(t, py.statusData[12], 0)
	test.Equate(t, py.statusData[13], 5)

	// headphone mode re-arms itself with a 60 tick delay
	test.Equate(t, py.Pending().Opcode, cmdUpdateAudio)
	test.Equate(t, py.Pending().Delay, 60)
	test.Equate(t, py.updateTrackbarTimestamp, true)
	test.Equate(t, py.updateAudioStream, false)
}

func TestTrackbarEndOfTrack(t *testing.T) {
	py, irq, aud := newTestNMP(t, t.TempDir())

	aud.UseHeadphones = true
	py.musicPlaying = true
	py.mediaPlaying = true
	py.updateTrackbarTimestamp = true
	py.sampleRate = 16384
	py.channels = 1
	py.musicLength = 11

	// at the end of the track the device stops itself on the next tick
	aud.SamplePos = 16384 * 10
	py.cmd = cmdUpdateAudio
	py.processCommand()

	test.Equate(t, py.Pending().Opcode, cmdStopMusic)
	test.Equate(t, py.Pending().Delay, 1)

	raised := irq.count
	py.Step()
	test.Equate(t, py.musicPlaying, false)
	test.Equate(t, irq.count, raised+1)
	test.Equate(t, py.Pending().Opcode, 0)
}

func TestStreamTriggersTimestampAtStart(t *testing.T) {
	py, irq, _ := newTestNMP(t, t.TempDir())
	startStreaming(py, noiseSource(44100*4), 44100, 2, 100)

	// the left-channel pass does not trigger a timestamp update
	beginAccess(py, uint16(accessSD))
	test.Equate(t, py.updateAudioStream, true)

	// the first right-channel pass does, forcing an out-of-band interrupt.
	// the re-entrant update-audio command flips the device back into
	// streaming mode before it returns
	raised := irq.count
	beginAccess(py, uint16(accessSD))
	test.Equate(t, irq.count, raised+1)
	test.Equate(t, py.updateAudioStream, true)
	test.Equate(t, py.frameCount, uint32(0))
}
