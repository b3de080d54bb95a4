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

// Package id3 extracts the title and artist tags the cartridge reports for
// a music file. Extraction is best-effort: the device shows an empty field
// rather than refusing to play an untagged file.
package id3

import (
	"os"
	"strings"

	"github.com/dhowden/tag"

	"github.com/goyan-emu/goyan/logger"
)

// ReadTags returns the title and artist for the named music file. Both are
// empty strings if the file has no readable tags.
func ReadTags(filename string) (string, string) {
	f, err := os.Open(filename)
	if err != nil {
		logger.Logf("id3", "%v", err)
		return "", ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		logger.Logf("id3", "no tags in %s: %v", filename, err)
		return "", ""
	}

	return m.Title(), m.Artist()
}

// MakePrintable strips characters that cannot be sent through the cartridge's
// 8-bit character protocol. Anything outside the printable ASCII range is
// dropped.
func MakePrintable(s string) string {
	b := strings.Builder{}
	for _, r := range s {
		if r >= 0x20 && r <= 0x7e {
			b.WriteRune(r)
		}
	}
	return b.String()
}
