// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout

import "strings"

// GPTAttribute is a single GPT partition attribute bit.
type GPTAttribute uint64

// GPT partition attributes.
const (
	GPTAttributePlatformRequired   GPTAttribute = 1 << 0
	GPTAttributeNoBlockIOProtocol  GPTAttribute = 1 << 1
	GPTAttributeLegacyBIOSBootable GPTAttribute = 1 << 2

	// Attributes defined for Microsoft basic data partitions.
	GPTBasicDataAttributeReadOnly      GPTAttribute = 1 << 60
	GPTBasicDataAttributeShadowCopy    GPTAttribute = 1 << 61
	GPTBasicDataAttributeHidden        GPTAttribute = 1 << 62
	GPTBasicDataAttributeNoDriveLetter GPTAttribute = 1 << 63
)

var gptAttributeNames = []struct {
	attr GPTAttribute
	name string
}{
	{GPTAttributePlatformRequired, "required"},
	{GPTAttributeNoBlockIOProtocol, "no-block-io"},
	{GPTAttributeLegacyBIOSBootable, "legacy-bios-bootable"},
	{GPTBasicDataAttributeReadOnly, "read-only"},
	{GPTBasicDataAttributeShadowCopy, "shadow-copy"},
	{GPTBasicDataAttributeHidden, "hidden"},
	{GPTBasicDataAttributeNoDriveLetter, "no-drive-letter"},
}

// String returns the names of the known attribute bits, comma-separated.
func (a GPTAttribute) String() string {
	var names []string

	for _, known := range gptAttributeNames {
		if a&known.attr != 0 {
			names = append(names, known.name)
		}
	}

	return strings.Join(names, ",")
}

// Has returns true if all bits of attr are set on the partition.
func (p *PartitionExtraGPT) Has(attr GPTAttribute) bool {
	return GPTAttribute(p.Attributes)&attr == attr
}
