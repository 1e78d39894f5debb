// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/siderolabs/go-disklayout/internal/layoutstructs"
	"github.com/siderolabs/go-disklayout/internal/layouttest"
	"github.com/siderolabs/go-disklayout/layout"
)

func TestPartitionStyleString(t *testing.T) {
	assert.Equal(t, "mbr", layout.PartitionStyleMBR.String())
	assert.Equal(t, "gpt", layout.PartitionStyleGPT.String())
	assert.Equal(t, "raw", layout.PartitionStyleRAW.String())
	assert.Equal(t, "unknown(5)", layout.PartitionStyle(5).String())
}

func TestLabel(t *testing.T) {
	full := [layoutstructs.GPT_NAME_LENGTH]uint16{}
	for i := range full {
		full[i] = 'a'
	}

	for _, test := range []struct {
		name     string
		input    [layoutstructs.GPT_NAME_LENGTH]uint16
		expected string
	}{
		{
			name:     "empty",
			expected: "",
		},
		{
			name:     "ascii",
			input:    layouttest.Name("Basic data partition"),
			expected: "Basic data partition",
		},
		{
			name:     "non-ascii",
			input:    layouttest.Name("Données système"),
			expected: "Données système",
		},
		{
			name:     "surrogate pair",
			input:    layouttest.Name("disk \U0001F4BE"),
			expected: "disk \U0001F4BE",
		},
		{
			name:     "no terminator",
			input:    full,
			expected: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		},
		{
			name:     "garbage after terminator",
			input:    [layoutstructs.GPT_NAME_LENGTH]uint16{'o', 'k', 0, 0xd800},
			expected: "ok",
		},
		{
			name:     "unpaired low surrogate",
			input:    [layoutstructs.GPT_NAME_LENGTH]uint16{'a', 0xdc00, 'b'},
			expected: layout.InvalidLabel,
		},
		{
			name:     "unpaired high surrogate",
			input:    [layoutstructs.GPT_NAME_LENGTH]uint16{'a', 0xd800, 'b'},
			expected: layout.InvalidLabel,
		},
		{
			name:     "high surrogate before terminator",
			input:    [layoutstructs.GPT_NAME_LENGTH]uint16{'a', 0xdbff},
			expected: layout.InvalidLabel,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			part := &layout.PartitionExtraGPT{Name: test.input}

			assert.Equal(t, test.expected, part.Label())
		})
	}
}

func TestAttributes(t *testing.T) {
	part := &layout.PartitionExtraGPT{
		Attributes: uint64(layout.GPTAttributePlatformRequired | layout.GPTBasicDataAttributeNoDriveLetter),
	}

	assert.True(t, part.Has(layout.GPTAttributePlatformRequired))
	assert.True(t, part.Has(layout.GPTBasicDataAttributeNoDriveLetter))
	assert.True(t, part.Has(layout.GPTAttributePlatformRequired|layout.GPTBasicDataAttributeNoDriveLetter))
	assert.False(t, part.Has(layout.GPTBasicDataAttributeHidden))
	assert.False(t, part.Has(layout.GPTAttributePlatformRequired|layout.GPTBasicDataAttributeHidden))

	assert.Equal(t, "required,no-drive-letter", layout.GPTAttribute(part.Attributes).String())
	assert.Equal(t, "", layout.GPTAttribute(1<<30).String())
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "Linux swap", (&layout.PartitionExtraGPT{PartitionType: layout.GPTTypeLinuxSwap}).TypeName())
	assert.Equal(t, "", (&layout.PartitionExtraGPT{PartitionType: uuid.New()}).TypeName())

	assert.Equal(t, "NTFS/exFAT", (&layout.PartitionExtraMBR{PartitionType: layout.MBRTypeNTFS}).TypeName())
	assert.Equal(t, "", (&layout.PartitionExtraMBR{PartitionType: 0x99}).TypeName())

	assert.True(t, (&layout.PartitionExtraMBR{PartitionType: layout.MBRTypeExtended}).IsContainer())
	assert.False(t, (&layout.PartitionExtraMBR{PartitionType: layout.MBRTypeLinux}).IsContainer())
}
