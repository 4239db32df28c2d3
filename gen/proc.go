package gen

import (
	annotation "github.com/bincooo/go-annotation/pkg"

	gen "github.com/3636adesh/spring-proxies/gen/annotation"
	"github.com/3636adesh/spring-proxies/gen/internal/core"
)

func Alias[T gen.M]() {
	core.Alias[T]()
}

// Process scans root for @Proxy / @Delegate annotations and writes the
// stand-in adapters next to the annotated declarations.
func Process(root, logLv string) {
	core.Root(root)
	annotation.Process(root, logLv)
}
