package beam

import (
	"strconv"
	"strings"

	"github.com/vk/latticego/internal/gmadio"
)

// WriteUserFile writes particle coordinates for the userfile distribution:
// one particle per line, coordinates tab-separated, no trailing newline. A
// compressed-file suffix on the path selects a gzip write.
func WriteUserFile(path string, coords [][]float64) error {
	lines := make([]string, len(coords))
	for i, row := range coords {
		cols := make([]string, len(row))
		for j, v := range row {
			cols[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		lines[i] = strings.Join(cols, "\t")
	}
	return gmadio.Write(path, strings.Join(lines, "\n"))
}
