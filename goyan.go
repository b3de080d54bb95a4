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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/goyan-emu/goyan/environment"
	"github.com/goyan-emu/goyan/hardware/extaudio"
	"github.com/goyan-emu/goyan/hardware/nmp"
	"github.com/goyan-emu/goyan/logger"
	"github.com/goyan-emu/goyan/modalflag"
	"github.com/goyan-emu/goyan/version"
	"github.com/goyan-emu/goyan/wavwriter"
)

// the side of the register protocol a game ROM would implement. the values
// below are what the real firmware writes to the cartridge.
const (
	ctrlBootConfirm uint16 = 0x0808
	ctrlEndCommand  uint16 = 0x0404

	winStatus  uint16 = 0x0100
	winCommand uint16 = 0x010f

	accessID3 uint16 = 0x0101
	accessSD  uint16 = 0x0202
)

// the command opcodes used by the demonstration host.
const (
	opFileList  uint16 = 0x1000
	opNextEntry uint16 = 0x1001
	opGetID3    uint16 = 0x1003
	opPlay      uint16 = 0x1004
	opStop      uint16 = 0x1005
	opSetVolume uint16 = 0x1009
	opInit      uint16 = 0x8001
	opUpdate    uint16 = 0x8100
)

// the loudest volume the firmware can ask for.
const maxVolume = 46

// the rate of the speaker-mode stream.
const deviceRate = 16384

const helpRun = `The run mode attaches a directory of MP3 files to an emulated
Nintendo MP3 Player cartridge and drives it the way the real firmware would:
boot handshake, file listing, ID3 extraction and playback.`

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "VERSION":
		vers, rev, rel := version.Version()
		fmt.Printf("%s %s\n", version.ApplicationName, vers)
		if !rel {
			fmt.Printf("  %s\n", rev)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	mute := md.AddBool("mute", false, "run without an audio output device")
	record := md.AddString("record", "", "capture the speaker-mode stream to a WAV file")
	echoLog := md.AddBool("log", false, "echo the log to stderr")

	md.AdditionalHelp(helpRun)

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	if *echoLog {
		logger.SetEcho(os.Stderr, true)
	}

	dir := md.GetArg(0)
	if dir == "" {
		dir = "."
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	aud := &extaudio.Audio{Volume: extaudio.MaxVolume}
	irq := &irqCounter{}
	env := environment.NewEnvironment("main", dir)

	h := &host{
		py:  nmp.NewNMP(env, irq, aud, dir),
		aud: aud,
		irq: irq,
	}

	h.boot()

	name := h.firstFile()
	if name == "" {
		return fmt.Errorf("no music files in %s", dir)
	}

	title, artist := h.id3(name)
	if title != "" {
		fmt.Printf("playing %s (%s - %s)\n", name, artist, title)
	} else {
		fmt.Printf("playing %s\n", name)
	}

	if *record != "" {
		return h.record(name, *record)
	}

	return h.play(name, *mute, intChan)
}

// irqCounter implements the nmp.IRQLine interface.
type irqCounter struct {
	count int
}

func (l *irqCounter) Raise() {
	l.count++
}

// host drives the cartridge through the four 16-bit registers, the way a
// game ROM running on the console would.
type host struct {
	py  *nmp.NMP
	aud *extaudio.Audio
	irq *irqCounter
}

// reg16 writes a 16-bit value as two byte writes, high byte first.
func (h *host) reg16(addr uint32, v uint16) {
	h.py.Write(addr, uint8(v>>8))
	h.py.Write(addr+1, uint8(v))
}

// window selects an access window or begins a bulk data session.
func (h *host) window(p uint16) {
	h.reg16(nmp.AddrControl, 0x0000)
	h.reg16(nmp.AddrParameter, p)
}

// data reads the next n bytes from the data-out register.
func (h *host) data(n int) []uint8 {
	d := make([]uint8, n)
	for i := range d {
		d[i] = h.py.Read(nmp.AddrDataOut)
	}
	return d
}

// status returns the 16-byte status block.
func (h *host) status() []uint8 {
	h.window(winStatus)
	return h.data(16)
}

// command runs the full submission protocol and returns the resulting status
// block: select the command window, stream the opcode and arguments through
// the data-in port, terminate, poll for the result.
func (h *host) command(opcode uint16, args ...uint8) []uint8 {
	h.window(winCommand)

	h.py.Write(nmp.AddrDataIn, uint8(opcode>>8))
	h.py.Write(nmp.AddrDataIn, uint8(opcode))
	for _, a := range args {
		h.py.Write(nmp.AddrDataIn, a)
	}

	h.reg16(nmp.AddrControl, ctrlEndCommand)

	h.window(winCommand)
	_ = h.data(2)

	return h.status()
}

// nameArgs encodes a file name the way the firmware sends it: one padding
// byte, then each character as a 16-bit value, null terminated.
func nameArgs(name string) []uint8 {
	b := []uint8{0x00}
	for i := 0; i < len(name); i++ {
		b = append(b, name[i], 0x00)
	}
	b = append(b, 0x00)
	return b
}

// decode16 reads a big-endian 16-bit character string out of a bulk data
// buffer.
func decode16(data []uint8) string {
	s := []byte{}
	for i := 0; i+1 < len(data); i += 2 {
		if data[i+1] == 0 {
			break
		}
		s = append(s, data[i+1])
	}
	return string(s)
}

// boot performs the firmware-load handshake. The real firmware uploads the
// cartridge program through the data-in port first but the emulated cartridge
// does not need it to function.
func (h *host) boot() {
	h.reg16(nmp.AddrControl, ctrlBootConfirm)

	for h.py.Pending().Delay > 0 {
		h.py.Step()
	}

	// the firmware reads the boot status four times before the cartridge
	// starts reporting command status
	for i := 0; i < 4; i++ {
		h.window(winStatus)
		_ = h.data(2)
	}

	_ = h.command(opInit)
}

// firstFile walks the file listing and returns the first music file in the
// attached directory.
func (h *host) firstFile() string {
	st := h.command(opFileList)

	for st[3] == 0 {
		h.window(accessID3)
		entry := h.data(528)

		// 0x02 marks a file entry, 0x01 a folder
		if entry[525] == 0x02 {
			return decode16(entry[2:])
		}

		st = h.command(opNextEntry)
	}

	return ""
}

// id3 returns the title and artist the cartridge reports for the named file.
func (h *host) id3(name string) (string, string) {
	_ = h.command(opGetID3, nameArgs(name)...)

	h.window(accessID3)
	d := h.data(272)

	return decode16(d[4:136]), decode16(d[136:])
}

// play the named file in headphone mode, with progress reported on the
// terminal. Playback runs until the end of the track or until interrupted.
func (h *host) play(name string, mute bool, intChan chan os.Signal) error {
	h.aud.UseHeadphones = true

	_ = h.command(opSetVolume, 0x00, maxVolume)
	_ = h.command(opPlay, nameArgs(name)...)

	// the first trackbar update starts external playback
	for i := 0; i < 60 && !h.aud.Playing; i++ {
		h.py.Step()
	}
	if !h.aud.Playing {
		return fmt.Errorf("could not start playback of %s", name)
	}

	var out extaudio.Output = extaudio.Silent{}
	if !mute {
		dev, err := extaudio.NewDevice(h.aud, int(h.aud.Frequency), int(h.aud.Channels))
		if err != nil {
			return err
		}
		out = dev
		defer out.Close()
	}

	if err := out.Start(); err != nil {
		return err
	}
	defer out.Stop()

	tick := time.NewTicker(time.Second / 60)
	defer tick.Stop()

	lastIRQ := h.irq.count

	for h.aud.Playing {
		select {
		case <-intChan:
			_ = h.command(opStop)
			fmt.Println()
			return nil

		case <-tick.C:
			h.py.Step()

			if mute {
				// no device pulling samples so playback has to be simulated
				h.aud.SamplePos += int(h.aud.Frequency) / 60
			}

			// a raised interrupt means new trackbar information
			if n := h.irq.count; n != lastIRQ {
				lastIRQ = n
				st := h.status()
				secs := int(st[12])<<8 | int(st[13])
				fmt.Printf("\r%3d%%  %02d:%02d", st[8], secs/60, secs%60)
			}
		}
	}

	fmt.Println()
	return nil
}

// record the named file through the speaker-mode stream, saving the 8-bit
// output to a WAV file. The stream is pulled as fast as the cartridge can
// produce it.
func (h *host) record(name string, filename string) error {
	h.aud.UseHeadphones = false

	_ = h.command(opSetVolume, 0x00, maxVolume)
	_ = h.command(opPlay, nameArgs(name)...)

	if len(h.aud.Buffer) == 0 {
		return fmt.Errorf("nothing to record: %s did not decode", name)
	}

	st := h.command(opUpdate)
	size := int(st[2])<<8 | int(st[3])

	aw, err := wavwriter.New(filename, deviceRate)
	if err != nil {
		return err
	}

	for {
		// a frame of left-channel samples followed by a frame of
		// right-channel samples, each filling the same buffer offsets
		h.window(accessSD)
		left := h.data(size + 2)
		h.window(accessSD)
		right := h.data(size + 2)

		// sequential sample k lives at buffer offset (2+k)^1. adjacent
		// samples are stored pairwise swapped
		stereo := make([]uint8, 0, size*2)
		for k := 0; k < size; k++ {
			i := (2 + k) ^ 1
			stereo = append(stereo, left[i], right[i])
		}
		aw.AddSamples(stereo)

		h.py.Step()

		if h.aud.LastPos >= len(h.aud.Buffer)-1 {
			break
		}
		if !h.aud.Playing {
			break
		}
	}

	return aw.End()
}
