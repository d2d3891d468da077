package zarr

import (
	"strconv"
	"strings"
)

// ChunkKey builds the store key for a chunk from its grid indices, joined by
// the separator ("." in the classic v2 layout). Rank-0 arrays store their
// single chunk under the key "0".
func ChunkKey(indices []int, separator string) string {
	if len(indices) == 0 {
		return "0"
	}

	if len(indices) == 1 {
		return strconv.Itoa(indices[0])
	}

	var sb strings.Builder
	for i, idx := range indices {
		if i > 0 {
			sb.WriteString(separator)
		}
		sb.WriteString(strconv.Itoa(idx))
	}
	return sb.String()
}
