package proxies

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	run "runtime"
	"slices"
	"strings"
	"sync"

	"github.com/3636adesh/spring-proxies/proxy"
	"github.com/3636adesh/spring-proxies/runtime"
	"github.com/samber/do/v2"
)

type keys struct {
	sync.Mutex
	g []string
}

type Initializer interface {
	Init(*Container) error
	Order() int
}

type singleInitializer struct {
	order int
	init  func(*Container) error
}

// Container resolves beans over a do scope and runs every freshly resolved
// bean through the post-processor, so callers only ever see either the raw
// bean or its stand-in.
type Container struct {
	inject *do.RootScope
	alias  map[string]string
	post   *PostProcessor
	init   []func() error
}

var (
	threadLocal = runtime.NewThreadLocal[*keys](func() *keys {
		return &keys{}
	})
)

func (k *keys) push(key string) (re bool) {
	k.Lock()
	defer k.Unlock()

	if !slices.Contains(k.g, key) {
		re = true
	}

	k.g = append(k.g, key)
	return
}

func (i singleInitializer) Init(container *Container) (err error) {
	if i.init == nil {
		return
	}
	return i.init(container)
}

func (i singleInitializer) Order() int {
	return i.order
}

func NewContainer() *Container {
	return &Container{
		inject: do.New(),
		alias:  make(map[string]string),
		post:   NewPostProcessor(),
	}
}

func InitializedWrapper(order int, init func(*Container) error) Initializer {
	return &singleInitializer{order, init}
}

// Advise installs interceptors for every stand-in built after this call;
// registration order is chain order.
func (c *Container) Advise(entries ...proxy.Interceptor) {
	c.post.Advise(entries...)
}

// PostProcessor exposes the construction hook for collaborators that build
// objects outside the container.
func (c *Container) PostProcessor() *PostProcessor {
	return c.post
}

func (c *Container) AddInitialized(i func() error) {
	c.init = append(c.init, i)
}

func (c *Container) Run(signals ...os.Signal) (err error) {
	beans := ListInvokeAs[Initializer](c)
	beans = append(beans, &singleInitializer{999, func(container *Container) (iErr error) {
		for _, exec := range c.init {
			if iErr = exec(); iErr != nil {
				return iErr
			}
		}
		return
	}})

	slices.SortFunc(beans, func(a, b Initializer) int {
		return elseOf(a.Order() == b.Order(), 0, elseOf(a.Order() > b.Order(), 1, -1))
	})

	for _, bean := range beans {
		if err = bean.Init(c); err != nil {
			return
		}
	}

	if len(signals) > 0 {
		w := make(chan os.Signal, 1)
		signal.Notify(w, signals...)
		<-w
	}
	return
}

func (c *Container) Inject() *do.RootScope {
	return c.inject
}

func (c *Container) Alias(name, fullName string) {
	if n, ok := c.alias[name]; ok {
		panic("alias '" + n + "' already exists")
	}
	c.alias[name] = fullName
}

func (c *Container) HealthLogger() string {
	injector := do.ExplainInjector(c.inject)
	return injector.String()
}

func (c *Container) Stop() (err error) {
	if shutdownErr := c.inject.Shutdown(); shutdownErr != nil {
		err = shutdownErr
	}
	return
}

func NameOf[T any]() string {
	return do.NameOf[T]()
}

func ProvideBean[T any](container *Container, name string, provider func() (T, error)) {
	do.ProvideNamed[T](container.inject, name, func(i do.Injector) (T, error) {
		return provider()
	})
}

func ProvideTransient[T any](container *Container, name string, provider func() (T, error)) {
	do.ProvideNamedTransient[T](container.inject, name, func(i do.Injector) (T, error) {
		return provider()
	})
}

func OverrideBean[T any](container *Container, name string, provider func() (T, error)) {
	do.OverrideNamed[T](container.inject, name, func(i do.Injector) (T, error) {
		return provider()
	})
}

// InvokeBean resolves a bean and hands it to the post-processor before the
// caller sees it. Beans whose stand-in cannot satisfy T (a concrete bean
// whose delegator is a distinct type) surface an error rather than leaking
// the unwrapped target.
func InvokeBean[T any](container *Container, name string) (t T, err error) {
	if name != "" {
		for {
			if n, ok := container.alias[name]; ok {
				name = n
			} else {
				break
			}
		}
	}

	var zero T
	if !threadLocal.Ex(true) {
		defer threadLocal.Remove()
	}

	value := threadLocal.Load()
	if !value.push(name) {
		return zero, wrapError(fmt.Errorf("circular dependency occurs:\n%s", join(value.g, name)))
	}

	if name == "" {
		t, err = do.Invoke[T](container.inject)
	} else {
		t, err = do.InvokeNamed[T](container.inject, name)
	}

	if err != nil {
		return
	}

	processed, err := container.post.PostProcess(t)
	if err != nil {
		return zero, wrapError(err)
	}

	t, err = AssertToError[T](processed)
	if err != nil {
		return zero, wrapError(err)
	}
	return
}

func ListInvokeAs[T any](container *Container) (re []T) {
	services := container.inject.ListProvidedServices()
	for _, ser := range services {
		t, err := do.InvokeNamed[T](container.inject, ser.Service)
		if err == nil {
			re = append(re, t)
		}
	}
	return
}

func wrapError(err error) error {
	if err != nil {
		count := -1
		frame := runtime.CallerFrame(func(fe run.Frame) (ok bool) {
			if count > -1 {
				count++
				return count >= 2
			}

			if i := len(fe.File); i >= 12 && fe.File[i-12:] == "container.go" &&
				strings.HasSuffix(fe.Function, "spring-proxies.wrapError") {
				count = 0
			}
			return
		})

		if frame != nil {
			tr := strings.Split(frame.Function, ".")
			err = errors.Join(err, fmt.Errorf(`in %s # %s:%d`, frame.File, tr[:len(tr)-1], frame.Line))
		}
	}

	return err
}

func join(slice []string, n string) (str string) {
	idx := -1
	sliceL := len(slice)
	for i, it := range slice {
		if idx == -1 && it == n {
			idx = i
		}

		switch i {
		case idx:
			str += "╭- " + it + "\n"
		case sliceL - 1:
			str += "╰> " + it + "\n"
		default:
			if idx == -1 {
				str += "   " + it + "\n"
			} else {
				str += "|  " + it + "\n"
			}
		}
	}
	return
}

func elseOf[T any](condition bool, a1, a2 T) T {
	if condition {
		return a1
	}
	return a2
}
