// Package pool provides sync.Pool backed buffers for frame rendering.
package pool

import (
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// GetStringBuilder returns an empty builder from the pool.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets sb and returns it to the pool.
func PutStringBuilder(sb *strings.Builder) {
	// Huge frames would pin their memory forever.
	if sb.Cap() > 1<<20 {
		return
	}
	sb.Reset()
	stringBuilderPool.Put(sb)
}

const lineSliceCap = 64

var lineSlicePool = sync.Pool{
	New: func() any {
		s := make([]string, 0, lineSliceCap)
		return &s
	},
}

// GetLineSlice returns an empty slice of rendered lines.
func GetLineSlice() *[]string {
	return lineSlicePool.Get().(*[]string)
}

// PutLineSlice clears lines and returns it to the pool.
func PutLineSlice(lines *[]string) {
	clear(*lines)
	*lines = (*lines)[:0]
	lineSlicePool.Put(lines)
}
