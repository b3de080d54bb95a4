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

package id3_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goyan-emu/goyan/hardware/nmp/id3"
	"github.com/goyan-emu/goyan/test"
)

func TestMakePrintable(t *testing.T) {
	test.Equate(t, id3.MakePrintable("Plain Title"), "Plain Title")
	test.Equate(t, id3.MakePrintable("tab\there"), "tabhere")
	test.Equate(t, id3.MakePrintable("nul\x00term"), "nulterm")
	test.Equate(t, id3.MakePrintable("élan"), "lan")
	test.Equate(t, id3.MakePrintable(""), "")
}

func TestReadTagsMissingFile(t *testing.T) {
	title, artist := id3.ReadTags(filepath.Join(t.TempDir(), "no-such-file.mp3"))
	test.Equate(t, title, "")
	test.Equate(t, artist, "")
}

func TestReadTagsUntaggedFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "untagged.mp3")
	if err := os.WriteFile(fn, []byte("not really an mp3"), 0600); err != nil {
		t.Fatal(err)
	}

	// extraction is best effort. no tags means empty fields
	title, artist := id3.ReadTags(fn)
	test.Equate(t, title, "")
	test.Equate(t, artist, "")
}
