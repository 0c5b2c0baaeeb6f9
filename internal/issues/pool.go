package issues

import (
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

// FormatPath formats location segments as a dotted path.
func FormatPath(segments ...string) string {
	switch len(segments) {
	case 0:
		return ""
	case 1:
		return segments[0]
	}

	sb := stringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	for i, seg := range segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg)
	}
	result := sb.String()
	stringBuilderPool.Put(sb)
	return result
}
