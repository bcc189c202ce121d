package keynote

import (
	"fmt"
	"strconv"
	"strings"
)

type itemInfo struct {
	class       ItemClass
	index       int
	locked      bool
	placeholder Placeholder
	font        string
}

func parseCount(out string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("unexpected count reply %q: %w", out, err)
	}
	return n, nil
}

// parseItemLines decodes the tab-separated item listing produced by the
// slide enumeration script: class, index, locked, placeholder, font. The
// font field is empty for items without object text.
func parseItemLines(out string) ([]itemInfo, error) {
	if strings.TrimSpace(out) == "" {
		return nil, nil
	}
	lines := strings.Split(out, "\n")
	infos := make([]itemInfo, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 5)
		if len(fields) < 4 {
			return nil, fmt.Errorf("unexpected item reply %q", line)
		}
		index, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("unexpected item index in %q: %w", line, err)
		}
		font := ""
		if len(fields) == 5 {
			font = fields[4]
		}
		infos = append(infos, itemInfo{
			class:       ItemClass(fields[0]),
			index:       index,
			locked:      fields[2] == "true",
			placeholder: parsePlaceholder(fields[3]),
			font:        font,
		})
	}
	return infos, nil
}

func parsePlaceholder(s string) Placeholder {
	switch s {
	case "title":
		return PlaceholderTitle
	case "body":
		return PlaceholderBody
	default:
		return PlaceholderNone
	}
}
