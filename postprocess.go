package proxies

import (
	"github.com/3636adesh/spring-proxies/marker"
	"github.com/3636adesh/spring-proxies/proxy"
)

// PostProcessor is the construction hook an object-lifecycle manager invokes
// on every freshly built object. It decides whether the object needs
// interception at all and, if so, which strategy wraps it:
//
//  1. an object that is already a stand-in passes through (idempotence);
//  2. an object with no marked operation passes through untouched;
//  3. a target matching a registered contract gets a contract stand-in;
//  4. otherwise a registered concrete delegator wraps it;
//  5. a marked target with no stand-in of either kind aborts construction.
//
// The decision depends only on the target's shape and the init-time
// registries, so the same shape always selects the same strategy.
type PostProcessor struct {
	entries []proxy.Interceptor
}

func NewPostProcessor(entries ...proxy.Interceptor) *PostProcessor {
	return &PostProcessor{entries: entries}
}

// Advise appends interceptors; registration order is chain order. Stand-ins
// built by earlier PostProcess calls keep the chain they were built with.
func (p *PostProcessor) Advise(entries ...proxy.Interceptor) {
	p.entries = append(p.entries, entries...)
}

// PostProcess returns either obj unchanged or a stand-in wrapping it. It
// never returns a half-built stand-in: any strategy failure surfaces as an
// error and the caller keeps the raw object out of circulation.
func (p *PostProcessor) PostProcess(obj any) (any, error) {
	if obj == nil || proxy.IsStandIn(obj) {
		return obj, nil
	}

	if !marker.HasAnyMarked(obj) {
		return obj, nil
	}

	chain := proxy.NewChain(p.entries...)
	if proxy.HasContract(obj) {
		return proxy.Contract(obj, chain)
	}
	return proxy.Concrete(obj, chain)
}
