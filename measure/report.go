package measure

import (
	"fmt"
	"io"
	"strings"
)

// WriteTable prints the report as a fixed-width table. Codec columns show the
// compressed size and the space saved relative to the GOS payload.
func (r *Report) WriteTable(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%-5s | %-14s | %-7s | %-7s | %-9s | %-9s | %-16s",
		"Type", "Layout", "Entries", "Escapes", "Source", "GOS", "Digest")
	for _, ct := range r.Codecs {
		fmt.Fprintf(&b, " | %-13s", ct)
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", 90+16*len(r.Codecs)))
	b.WriteString("\n")

	for _, res := range r.Results {
		if !res.OK() {
			fmt.Fprintf(&b, "%-5d | %-14s | error: %v\n", res.Requested, res.Requested, res.Err)
			continue
		}

		fmt.Fprintf(&b, "%-5d | %-14s | %-7d | %-7d | %-9d | %-9s | %016x",
			res.Type, res.Type, res.Entries, res.Escapes, res.SourceSize,
			fmt.Sprintf("%d (%.0f%%)", res.Size, percent(res.Size, res.SourceSize)),
			res.Digest)
		for _, s := range res.Compressed {
			fmt.Fprintf(&b, " | %-13s", fmt.Sprintf("%d (%.0f%%)", s.CompressedSize, s.SpaceSavings()))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nContainer: %d bytes\n", r.ContainerSize())

	_, err := io.WriteString(w, b.String())

	return err
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}

	return float64(part) / float64(whole) * 100
}
