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
	"os"
	"path/filepath"
	"testing"

	"github.com/goyan-emu/goyan/test"
)

// cardString reads a big-endian 16-bit character string out of the bulk data
// buffer.
func cardString(data []uint8, offset int) string {
	s := []byte{}
	for i := offset; i+1 < len(data); i += 2 {
		if data[i+1] == 0 {
			break
		}
		s = append(s, data[i+1])
	}
	return string(s)
}

// makeMediaDir builds an SD card directory with the given subdirectories and
// files.
func makeMediaDir(t *testing.T, dirs []string, files []string) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range dirs {
		if err := os.Mkdir(filepath.Join(root, d), 0700); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(root, f), []byte{}, 0600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestFileListEmptyDirectory(t *testing.T) {
	root := makeMediaDir(t, nil, nil)
	py, _, _ := newTestNMP(t, root)

	submitCommand(py, cmdStartFileList)

	// the status block signals an already-exhausted list
	test.Equate(t, py.statusData[2], 0)
	test.Equate(t, py.statusData[3], 1)

	// the bulk buffer holds no entry. type marker is zero
	beginAccess(py, uint16(accessID3))
	test.Equate(t, py.State() == StateGetSDData, true)
	test.Equate(t, len(py.cardData), fileListDataSize)
	test.Equate(t, py.cardData[0], 0)
	test.Equate(t, py.cardData[1], 0)
}

func TestFileListFoldersBeforeFiles(t *testing.T) {
	// the folder sorts lexically after the files but must be listed first
	root := makeMediaDir(t, []string{"zz"}, []string{"aa.mp3", "bb.mp3", "skip.txt"})
	py, _, _ := newTestNMP(t, root)

	submitCommand(py, cmdStartFileList)
	test.Equate(t, py.statusData[3], 0)

	beginAccess(py, uint16(accessID3))
	test.Equate(t, py.cardData[1], 0x01)
	test.Equate(t, cardString(py.cardData, fileListNameOffset), "zz")
	test.Equate(t, py.cardData[fileListFlagOffset], 0x01)

	// each continue advances exactly one entry
	submitCommand(py, cmdContinueFileList)
	test.Equate(t, py.statusData[3], 0)
	beginAccess(py, uint16(accessID3))
	test.Equate(t, py.cardData[1], 0x02)
	test.Equate(t, cardString(py.cardData, fileListNameOffset), "aa.mp3")
	test.Equate(t, py.cardData[fileListFlagOffset], 0x02)

	submitCommand(py, cmdContinueFileList)
	beginAccess(py, uint16(accessID3))
	test.Equate(t, cardString(py.cardData, fileListNameOffset), "bb.mp3")

	// the non-media file is not part of the list. continuing past the end
	// reports completion and an empty entry
	submitCommand(py, cmdContinueFileList)
	test.Equate(t, py.statusData[3], 1)
	beginAccess(py, uint16(accessID3))
	test.Equate(t, py.cardData[1], 0x00)
}

func TestFileListRestarts(t *testing.T) {
	root := makeMediaDir(t, nil, []string{"aa.mp3"})
	py, _, _ := newTestNMP(t, root)

	submitCommand(py, cmdStartFileList)
	submitCommand(py, cmdContinueFileList)
	test.Equate(t, py.statusData[3], 1)

	// start-file-list re-enumerates and rewinds the cursor
	submitCommand(py, cmdStartFileList)
	test.Equate(t, py.statusData[3], 0)
	beginAccess(py, uint16(accessID3))
	test.Equate(t, cardString(py.cardData, fileListNameOffset), "aa.mp3")
}

func TestFileListCursorStopsPastEnd(t *testing.T) {
	root := makeMediaDir(t, nil, []string{"aa.mp3"})
	py, _, _ := newTestNMP(t, root)

	submitCommand(py, cmdStartFileList)
	test.Equate(t, py.entryCount, 1)

	// however often the list is continued, the cursor stops one past the
	// last entry
	for i := 0; i < 5; i++ {
		submitCommand(py, cmdContinueFileList)
		test.Equate(t, py.statusData[3], 1)
	}
	test.Equate(t, py.entryCount, 2)

	beginAccess(py, uint16(accessID3))
	test.Equate(t, py.cardData[1], 0x00)
}

func TestID3Data(t *testing.T) {
	py, _, _ := newTestNMP(t, t.TempDir())

	py.title = "Title"
	py.artist = "Artist"
	py.cmd = cmdGetID3Data

	beginAccess(py, uint16(accessID3))
	test.Equate(t, len(py.cardData), id3DataSize)
	test.Equate(t, cardString(py.cardData, id3TitleOffset), "Title")
	test.Equate(t, cardString(py.cardData, id3ArtistOffset), "Artist")
}

func TestID3DataTruncation(t *testing.T) {
	py, _, _ := newTestNMP(t, t.TempDir())

	long := ""
	for i := 0; i < 100; i++ {
		long += "x"
	}

	py.title = long
	py.artist = ""
	py.cmd = cmdGetID3Data

	beginAccess(py, uint16(accessID3))
	test.Equate(t, len(cardString(py.cardData, id3TitleOffset)), id3TitleLimit)

	py.title = ""
	py.artist = long
	beginAccess(py, uint16(accessID3))
	test.Equate(t, len(cardString(py.cardData, id3ArtistOffset)), id3ArtistLimit)
}

func TestCardDataReadPastEnd(t *testing.T) {
	root := makeMediaDir(t, nil, []string{"aa.mp3"})
	py, _, _ := newTestNMP(t, root)

	submitCommand(py, cmdStartFileList)
	beginAccess(py, uint16(accessID3))

	for i := 0; i < fileListDataSize; i++ {
		py.Read(AddrDataOut)
	}

	// reads past the filled length yield zero, never garbage
	test.Equate(t, py.Read(AddrDataOut), 0)
	test.Equate(t, py.Read(AddrDataOut), 0)
}
