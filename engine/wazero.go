package engine

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-hal/errors"
	"github.com/wippyai/wasm-hal/native"
)

// Config holds configuration for engine creation.
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages
	// (64KB each). 0 means the embedding default of 256 pages (16MB);
	// bare-metal targets run far below that.
	MemoryLimitPages uint32
}

const defaultMemoryLimitPages = 256

// Engine wraps a wazero runtime configured the way the bare-metal embedding
// runs it: interpreter only, no compiler assumptions about the target.
// Host functions reach the guest through the native bridge's word-packed
// calling convention.
type Engine struct {
	runtime wazero.Runtime

	mu       sync.Mutex
	compiled []wazero.CompiledModule
	bound    map[string]bool
}

// New creates an engine with default configuration.
func New(ctx context.Context) (*Engine, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(ctx context.Context, cfg *Config) (*Engine, error) {
	pages := uint32(defaultMemoryLimitPages)
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		pages = cfg.MemoryLimitPages
	}

	runtimeCfg := wazero.NewRuntimeConfigInterpreter().
		WithMemoryLimitPages(pages)

	return &Engine{
		runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		bound:   make(map[string]bool),
	}, nil
}

// BindRegistry exposes every function in reg to guests, one wazero host
// module per registered namespace. Versioned namespaces bind under their
// bare name, since that is the string guests import; two versions of the
// same bare namespace therefore cannot both be bound.
//
// Must be called before instantiating modules that import these functions.
func (e *Engine) BindRegistry(ctx context.Context, reg *native.Registry) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ns := range reg.Namespaces() {
		bare := bareNamespace(ns)
		if e.bound[bare] {
			return errors.Registration(ns, "", errors.New(errors.PhaseEngine, errors.KindRegistration).
				Detail("namespace %q already bound", bare).
				Build())
		}

		builder := e.runtime.NewHostModuleBuilder(bare)
		for _, f := range reg.Functions(ns) {
			f := f
			params := make([]api.ValueType, f.Arity)
			for i := range params {
				params[i] = api.ValueTypeI32
			}
			results := []api.ValueType{api.ValueTypeI32}

			adapter := api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
				words := make([]uint32, f.Arity)
				for i := range words {
					words[i] = uint32(stack[i])
				}
				ret, err := f.Invoke(native.PackWords(words...))
				if err != nil {
					// Shapes are validated at registration; only an arity
					// drift between registry and guest import lands here.
					Logger().Error("native call failed",
						zap.String("namespace", f.Namespace),
						zap.String("function", f.Name),
						zap.Error(err))
					ret = 0
				}
				stack[0] = uint64(ret)
			})

			builder.NewFunctionBuilder().
				WithGoModuleFunction(adapter, params, results).
				Export(f.Name)
		}

		if _, err := builder.Instantiate(ctx); err != nil {
			return errors.Registration(ns, "", err)
		}
		e.bound[bare] = true
	}
	return nil
}

// LoadModule compiles a core wasm binary.
func (e *Engine) LoadModule(ctx context.Context, wasm []byte) (*Module, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	e.mu.Lock()
	e.compiled = append(e.compiled, compiled)
	e.mu.Unlock()

	return &Module{engine: e, compiled: compiled}, nil
}

// Close releases the runtime and every module compiled through it.
// All instances must be closed first.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var err error
	for _, c := range e.compiled {
		err = multierr.Append(err, c.Close(ctx))
	}
	e.compiled = nil
	return multierr.Append(err, e.runtime.Close(ctx))
}

// Module is a compiled guest module; Instantiate creates runnable instances.
type Module struct {
	engine   *Engine
	compiled wazero.CompiledModule
}

// ExportedFunctions returns the module's exported function names, sorted.
func (m *Module) ExportedFunctions() []string {
	defs := m.compiled.ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instantiate creates a running instance. Instances are anonymous, so one
// module can back several concurrently live instances.
func (m *Module) Instantiate(ctx context.Context) (*Instance, error) {
	cfg := wazero.NewModuleConfig().WithName("")
	mod, err := m.engine.runtime.InstantiateModule(ctx, m.compiled, cfg)
	if err != nil {
		return nil, errors.Instantiation(err)
	}
	return &Instance{mod: mod}, nil
}

// Instance is one running guest. It is not safe for concurrent use.
type Instance struct {
	mod api.Module
}

// Call invokes an exported function with uint32 word arguments, the same
// shape the native bridge speaks. Functions with no result return 0.
func (i *Instance) Call(ctx context.Context, name string, args ...uint32) (uint32, error) {
	if len(args) > native.MaxArity {
		return 0, errors.UnsupportedArity(len(args))
	}

	fn := i.mod.ExportedFunction(name)
	if fn == nil {
		return 0, errors.NotFound(errors.PhaseEngine, "exported function", name)
	}

	stack := make([]uint64, len(args))
	for idx, a := range args {
		stack[idx] = uint64(a)
	}

	results, err := fn.Call(ctx, stack...)
	if err != nil {
		return 0, errors.New(errors.PhaseEngine, errors.KindInvalidData).
			Detail("call %s", name).
			Cause(err).
			Build()
	}
	if len(results) == 0 {
		return 0, nil
	}
	return uint32(results[0]), nil
}

// Close releases the instance.
func (i *Instance) Close(ctx context.Context) error {
	return i.mod.Close(ctx)
}

func bareNamespace(ns string) string {
	bare, _, _ := strings.Cut(ns, "@")
	return bare
}
