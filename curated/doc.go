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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with the Errorf() function, which takes a
// formatting pattern and placeholder values, like fmt.Errorf().
//
// The Is() function can be used to check whether an error was created by
// Errorf() with a specific pattern. The Has() function is similar but checks
// whether the pattern occurs anywhere in the error chain.
//
//	e := curated.Errorf("pcmdata: %v", err)
//
//	if curated.Has(e, "pcmdata: %v") {
//		...
//	}
//
// The IsAny() function answers whether the error was created by Errorf() at
// all. We can think of the difference as being 'expected' and 'unexpected'
// errors, depending on how we choose to handle the result of a function call.
package curated
