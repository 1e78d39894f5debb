// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout

import (
	"encoding/binary"
	"slices"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// InvalidLabel is returned by Label when the partition name is not valid UTF-16.
const InvalidLabel = "Invalid UTF-16"

// Label returns the partition name.
//
// The name ends at the first NUL code unit. Names with unpaired surrogates
// decode to InvalidLabel.
func (p *PartitionExtraGPT) Label() string {
	return decodeName(p.Name[:])
}

func decodeName(units []uint16) string {
	if idx := slices.Index(units, 0); idx >= 0 {
		units = units[:idx]
	}

	if !isValidUTF16(units) {
		return InvalidLabel
	}

	raw := make([]byte, 2*len(units))

	for i, u := range units {
		binary.LittleEndian.PutUint16(raw[2*i:], u)
	}

	name, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
	if err != nil {
		return InvalidLabel
	}

	return string(name)
}

func isValidUTF16(units []uint16) bool {
	for i := 0; i < len(units); i++ {
		if !utf16.IsSurrogate(rune(units[i])) {
			continue
		}

		if i+1 >= len(units) || utf16.DecodeRune(rune(units[i]), rune(units[i+1])) == utf8.RuneError {
			return false
		}

		i++
	}

	return true
}
