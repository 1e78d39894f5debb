// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/siderolabs/go-disklayout/layout"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// enumerate is replaced in tests.
var enumerate = layout.Enumerate

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List physical disks and their partitions",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd)
	},
}

func runList(cmd *cobra.Command) error {
	var write func(io.Writer, []layout.Disk) error

	switch rootCmdFlags.output {
	case outputTable:
		write = func(w io.Writer, disks []layout.Disk) error {
			return writeTable(w, disks, rootCmdFlags.geometry)
		}
	case outputJSON:
		write = writeJSON
	default:
		return fmt.Errorf("unknown output format %q", rootCmdFlags.output)
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("error setting up logging: %w", err)
	}

	defer logger.Sync() //nolint:errcheck

	disks, err := enumerate(
		layout.WithLogger(logger),
		layout.WithMaxIndex(rootCmdFlags.maxIndex),
		layout.WithInitialBufferSize(rootCmdFlags.initialBufferSize),
		layout.WithGeometry(rootCmdFlags.geometry),
	)
	if err != nil {
		return fmt.Errorf("error listing disks: %w", err)
	}

	return write(cmd.OutOrStdout(), disks)
}

func writeTable(out io.Writer, disks []layout.Disk, geometry bool) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	labels := []string{"DISK", "STYLE"}

	if geometry {
		labels = append(labels, "DISK SIZE", "SECTOR")
	}

	labels = append(labels, "NUMBER", "OFFSET", "SIZE", "TYPE", "ID", "LABEL")

	fmt.Fprintln(w, strings.Join(labels, "\t"))

	for _, disk := range disks {
		prefix := []string{strconv.FormatUint(uint64(disk.Index), 10), disk.PartitionStyle.String()}

		if geometry {
			prefix = append(prefix, humanize.Bytes(disk.Size), strconv.FormatUint(uint64(disk.SectorSize), 10))
		}

		if len(disk.Partitions) == 0 {
			fmt.Fprintln(w, strings.Join(append(prefix, "-", "-", "-", "-", "-", "-"), "\t"))

			continue
		}

		for _, part := range disk.Partitions {
			row := append(prefix[:len(prefix):len(prefix)],
				strconv.FormatUint(uint64(part.PartitionNumber), 10),
				strconv.FormatInt(part.StartingOffset, 10),
				humanize.Bytes(uint64(part.PartitionLength)),
				partitionType(part),
				withPlaceholder(partitionID(part)),
				withPlaceholder(partitionLabel(part)),
			)

			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
	}

	return w.Flush()
}

func withPlaceholder(in string) string {
	if in == "" {
		return "-"
	}

	return in
}

func partitionType(part layout.Partition) string {
	switch extra := part.Extra.(type) {
	case *layout.PartitionExtraMBR:
		if name := extra.TypeName(); name != "" {
			return fmt.Sprintf("0x%02x (%s)", extra.PartitionType, name)
		}

		return fmt.Sprintf("0x%02x", extra.PartitionType)
	case *layout.PartitionExtraGPT:
		if name := extra.TypeName(); name != "" {
			return name
		}

		return extra.PartitionType.String()
	default:
		return "-"
	}
}

func partitionID(part layout.Partition) string {
	if extra, ok := part.Extra.(*layout.PartitionExtraGPT); ok {
		return extra.PartitionID.String()
	}

	return ""
}

func partitionLabel(part layout.Partition) string {
	if extra, ok := part.Extra.(*layout.PartitionExtraGPT); ok {
		return extra.Label()
	}

	return ""
}
