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

// Package mediafs enumerates the directory tree the cartridge presents as
// its SD card. The device firmware lists folders before files, so the two
// groups are returned separately.
package mediafs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goyan-emu/goyan/logger"
)

// List returns the names of subdirectories and of files matching the
// extension, in that grouping. Both groups are in lexical order. A directory
// that cannot be read yields two empty lists, never an error.
func List(dir string, ext string) ([]string, []string) {
	folders := make([]string, 0)
	files := make([]string, 0)

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Logf("mediafs", "%v", err)
		return folders, files
	}

	// os.ReadDir guarantees lexical order
	for _, e := range entries {
		if e.IsDir() {
			folders = append(folders, e.Name())
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			files = append(files, e.Name())
		}
	}

	return folders, files
}
