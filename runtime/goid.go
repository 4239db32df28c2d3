package runtime

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

var (
	stackBuf = sync.Pool{
		New: func() any { bytes := make([]byte, 64); return &bytes },
	}

	goroutinePrefix = []byte("goroutine ")
)

// GetCurrentGoroutineID parses the goroutine id out of the first stack
// header line, "goroutine N [...]".
func GetCurrentGoroutineID() int64 {
	bp := stackBuf.Get().(*[]byte)
	defer stackBuf.Put(bp)

	b := *bp
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}

	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		panic(err)
	}
	return id
}
