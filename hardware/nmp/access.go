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

// sizes of the fixed bulk data buffers.
const (
	fileListDataSize = 528
	id3DataSize      = 272
)

// layout of a file list entry in the bulk data buffer.
const (
	fileListNameOffset = 2
	fileListNameLimit  = 255
	fileListFlagOffset = 525
)

// layout of the metadata block in the bulk data buffer.
const (
	id3TitleOffset  = 4
	id3TitleLimit   = 66
	id3ArtistOffset = 136
	id3ArtistLimit  = 68
)

// beginAccess classifies a completed zero-mode parameter write: either a
// register window access (status, command submission, busy flag) or a bulk
// SD data access keyed by the last executed command.
func (py *NMP) beginAccess() {
	py.firmwareAddr = 0

	p := py.accessParam

	// anything that isn't one of the reserved bulk-data sentinels is a
	// register window access
	if p != 0 && p != accessID3 && p != accessSD && p != py.audioIndex {
		py.firmwareAddr = p << 1

		var stat uint16

		switch p {
		case winStatus:
			if py.initStage < 4 {
				// cartridge status during the initial boot phase
				stat = bootStatus[py.initStage>>1]
				py.initStage++

				if py.initStage == 2 {
					py.irq.Raise()
				}
			} else if py.cmdStatus != 0 {
				// status after running a command
				stat = py.cmdStatus
			}

		case winCommand:
			py.state = StateProcessCmd
			py.firmwareAddr = 0
			py.commandStream = py.commandStream[:0]

			// finish command
			if py.validCommand {
				py.irq.Raise()
				py.validCommand = false
			}

			// increment internal ticks. 6 ticks is a rough average of how
			// often a real NMP updates at ~60Hz
			py.ticks += 6
			stat = py.ticks

		case winBusy:
			// 1 = I/O busy, 0 = I/O ready. for now, we are never busy
			py.state = StateWait
		}

		py.putStatus(0, stat)
		py.dataIndex = 0
		py.accessParam = 0

		return
	}

	// bulk SD card data access. the meaning of the data depends on the last
	// executed command
	py.cardData = py.cardData[:0]
	py.state = StateGetSDData

	switch py.cmd {
	case cmdStartFileList, cmdContinueFileList:
		py.fileListData()

	case cmdGetID3Data:
		py.id3Data()

	case cmdUpdateAudio:
		py.streamAudio()
	}
}

// fileListData builds the bulk data buffer for a single file list entry.
// Folders are enumerated before files.
func (py *NMP) fileListData() {
	py.dataIndex = 0
	py.cardData = make([]uint8, fileListDataSize)

	if py.entryCount == 0 {
		return
	}

	var entry string
	var isFolder bool

	idx := py.entryCount - 1
	if idx < len(py.folders) {
		entry = py.folders[idx]
		isFolder = true
	} else {
		idx -= len(py.folders)
		if idx >= len(py.musicFiles) {
			// the host has continued the list past the end. there is no
			// entry to report
			return
		}
		entry = py.musicFiles[idx]
	}

	if len(entry) > fileListNameLimit {
		entry = entry[:fileListNameLimit]
	}

	// entry type as a 16-bit marker. folders sort first by using the lower
	// non-zero value
	if isFolder {
		py.cardData[1] = 0x01
	} else {
		py.cardData[1] = 0x02
	}

	// each character as a big-endian 16-bit code
	for i := 0; i < len(entry); i++ {
		py.cardData[(i*2)+fileListNameOffset+1] = entry[i]
	}

	// file/folder flag expected by the NMP. 0x01 = folder, 0x02 = file
	if isFolder {
		py.cardData[fileListFlagOffset] = 0x01
	} else {
		py.cardData[fileListFlagOffset] = 0x02
	}
}

// id3Data builds the bulk data buffer holding the title and artist of the
// last file examined with get-id3-data.
func (py *NMP) id3Data() {
	py.dataIndex = 0
	py.cardData = make([]uint8, id3DataSize)

	title := py.title
	if len(title) > id3TitleLimit {
		title = title[:id3TitleLimit]
	}
	for i := 0; i < len(title); i++ {
		py.cardData[(i*2)+id3TitleOffset+1] = title[i]
	}

	artist := py.artist
	if len(artist) > id3ArtistLimit {
		artist = artist[:id3ArtistLimit]
	}
	for i := 0; i < len(artist); i++ {
		py.cardData[(i*2)+id3ArtistOffset+1] = artist[i]
	}
}
