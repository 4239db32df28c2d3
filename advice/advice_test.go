package advice

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/3636adesh/spring-proxies/marker"
	"github.com/3636adesh/spring-proxies/proxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentService struct{}

func (paymentService) Charge() {}
func (paymentService) Quote()  {}

func init() {
	marker.Reg[paymentService]("Charge")
}

func charge(target any, entries ...proxy.Interceptor) error {
	ctx := &proxy.Context{Method: "Charge", Receiver: target, Do: func() {}}
	return proxy.NewChain(entries...).Invoke(ctx)
}

func TestTransactionalGatesOnMarker(t *testing.T) {
	var buf bytes.Buffer
	tx := Transactional(&buf)

	require.NoError(t, charge(paymentService{}, tx))
	assert.Equal(t, "tx-start\ntx-end\n", buf.String())

	buf.Reset()
	ctx := &proxy.Context{Method: "Quote", Receiver: paymentService{}, Do: func() {}}
	require.NoError(t, proxy.NewChain(tx).Invoke(ctx))
	assert.Empty(t, buf.String(), "unmarked operation stays silent")
}

func TestTracingOutput(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, charge(paymentService{}, Tracing(&buf)))
	assert.Equal(t, "before charge\nafter charge\n", buf.String())
}

func TestTransactionalAfterRunsOnFailure(t *testing.T) {
	var buf bytes.Buffer
	failure := errors.New("declined")

	ctx := &proxy.Context{Method: "Charge", Receiver: paymentService{}, Out: make([]any, 1)}
	ctx.Do = func() { ctx.Out[0] = failure }

	err := proxy.NewChain(Transactional(&buf)).Invoke(ctx)
	assert.Same(t, failure, err)
	assert.Equal(t, "tx-start\ntx-end\n", buf.String())
}

func TestRetryResubmits(t *testing.T) {
	attempts := 0
	flaky := errors.New("transient")

	ctx := &proxy.Context{Method: "Charge", Receiver: paymentService{}, Out: make([]any, 1)}
	ctx.Do = func() {
		attempts++
		if attempts < 3 {
			ctx.Out[0] = flaky
		} else {
			ctx.Out[0] = nil
		}
	}

	require.NoError(t, proxy.NewChain(Retry(3)).Invoke(ctx))
	assert.Equal(t, 3, attempts)
}

func TestRetryGivesUp(t *testing.T) {
	attempts := 0
	down := errors.New("permanent")

	ctx := &proxy.Context{Method: "Charge", Receiver: paymentService{}, Out: make([]any, 1)}
	ctx.Do = func() {
		attempts++
		ctx.Out[0] = down
	}

	assert.Same(t, down, proxy.NewChain(Retry(2)).Invoke(ctx))
	assert.Equal(t, 2, attempts)
}

func TestSynchronizedIsReentrant(t *testing.T) {
	entry := Synchronized()

	inner := func() error {
		ctx := &proxy.Context{Method: "Charge", Receiver: paymentService{}, Do: func() {}}
		return proxy.NewChain(entry).Invoke(ctx)
	}

	outer := &proxy.Context{Method: "Charge", Receiver: paymentService{}}
	outer.Do = func() {
		// a marked operation calling back into another marked operation
		if err := inner(); err != nil {
			panic(err)
		}
	}

	require.NoError(t, proxy.NewChain(entry).Invoke(outer))
}

func TestSynchronizedSerializes(t *testing.T) {
	entry := Synchronized()

	count := 0
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				ctx := &proxy.Context{Method: "Charge", Receiver: paymentService{}, Do: func() { count++ }}
				if err := proxy.NewChain(entry).Invoke(ctx); err != nil {
					panic(err)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, count)
}
