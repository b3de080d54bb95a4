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

// size of an audio frame in bytes, excluding the 2-byte header reserved at
// the front of the bulk buffer. must be a multiple of 16.
const audioFrameSize = 0x480

// updateAudio is the internal re-entrant command driving playback. It is
// never issued by the host directly; the device re-arms it while media is
// playing and the scheduler re-executes it when the interrupt delay expires.
func (py *NMP) updateAudio() {
	py.cmdStatus = cmdUpdateAudio
	py.validCommand = false
	py.dataIndex = 0

	if !py.musicPlaying {
		return
	}

	// trigger additional IRQs for processing music
	py.manualCmd = cmdUpdateAudio
	py.audioBufferSize = audioFrameSize

	// prioritise audio stream updates
	if py.updateAudioStream && !py.ext.UseHeadphones {
		py.putStatus(2, uint16(py.audioBufferSize))

		// SD card access ID. seems arbitrary on real hardware
		py.putStatus(4, uint16(accessSD))

		py.audioIndex = accessSD + py.audioBufferSize/4
	} else if py.updateTrackbarTimestamp {
		py.updateAudioStream = true
		py.updateTrackbarTimestamp = false
		py.frameCount = 0

		pos := py.sampleIndex
		rate := uint32(deviceSampleRate)
		if py.ext.UseHeadphones {
			pos = uint32(py.ext.SamplePos)
			rate = py.sampleRate
		}

		if rate != 0 {
			py.trackerUpdate = pos / rate
		}

		// trackbar position, 0 to 99
		if py.musicLength != 1 {
			progress := float64(py.trackerUpdate) / float64(py.musicLength-1) * 100.0

			if progress > 255 {
				py.statusData[8] = 255
			} else {
				py.statusData[8] = uint8(progress)
			}

			if progress >= 100 {
				// end of track. stop playback on the next tick
				py.manualCmd = cmdStopMusic
				py.irqDelay = 1
				return
			}
		}

		// song timestamp in seconds
		py.putStatus(12, uint16(py.trackerUpdate))

		if py.ext.UseHeadphones {
			// in headphone mode the trackbar phase re-arms itself
			py.irqDelay = 60
			py.updateAudioStream = false
			py.updateTrackbarTimestamp = true
		}
	}

	// start external audio output
	if !py.ext.Playing && py.sampleRate != 0 && py.channels != 0 {
		py.ext.Channels = py.channels
		py.ext.Frequency = py.sampleRate
		py.ext.SamplePos = 0
		py.ext.Playing = true
	}
}

// streamAudio fills the bulk data buffer with one frame of resampled, dithered
// 8-bit audio. Even frames produce left-channel samples and odd frames
// right-channel samples; the two interleave across the same buffer offsets so
// the host reads them back as one stream.
func (py *NMP) streamAudio() {
	if !py.updateAudioStream {
		return
	}

	py.cardData = make([]uint8, py.audioBufferSize+2)
	py.dataIndex = 0
	py.frameCount++

	triggerTimestamp := false

	if py.sampleRate != 0 && len(py.ext.Buffer) != 0 {
		ratio := float64(py.sampleRate) / deviceSampleRate
		stream := py.ext.Buffer
		streamSize := uint32(len(stream))

		isLeft := py.frameCount&0x01 == 0x01

		// trigger timestamp update early when first playing a song
		if py.sampleIndex == 0 && !isLeft {
			triggerTimestamp = true
		}

		var indexShift uint32
		if !isLeft {
			indexShift = 1
		}

		var index uint32
		var sampleCount uint32

		limit := py.audioBufferSize/2 + 2
		for x := uint32(2); x < limit; x++ {
			errAcc := py.lDitherError
			if !isLeft {
				errAcc = py.rDitherError
			}

			index = uint32(ratio * float64(py.sampleIndex))
			index *= py.channels
			index += indexShift

			// end of track. clamp to the last valid sample and stop
			if index >= streamSize {
				index = streamSize - 1
				py.musicPlaying = false
				py.mediaPlaying = false
			}

			// one-tap error-feedback dither: add 7/16 of the carried error,
			// quantise to 8 bits, clip
			sample := int32(stream[index])
			sample += int32(errAcc>>4) * 7
			sample >>= 8

			if sample > 127 {
				sample = 127
			} else if sample < -128 {
				sample = -128
			}

			// the low byte of the raw source sample carries to the next
			// sample of the same channel
			errAcc = stream[index] & 0xff
			if isLeft {
				py.lDitherError = errAcc
			} else {
				py.rDitherError = errAcc
			}

			// output position depends on the parity of the running sample
			// index. the left and right passes fill each other's gaps
			offset := x + 1
			if py.sampleIndex&0x01 == 0x01 {
				offset = x - 1
			}
			py.cardData[offset] = uint8(sample)

			py.sampleIndex++
			sampleCount++

			// periodic timestamp update, using samples to count seconds
			if py.sampleIndex%deviceSampleRate == 0 && !isLeft {
				triggerTimestamp = true
			}
		}

		if isLeft {
			// the right-channel pass re-advances the sample index
			py.sampleIndex -= sampleCount
		} else {
			// remember the absolute source offset for headphone-mode resume
			py.ext.LastPos = int(index)
		}
	}

	if triggerTimestamp {
		py.updateAudioStream = false
		py.updateTrackbarTimestamp = true
		py.irqDelay = 0
		py.forceIRQ()
	}
}
