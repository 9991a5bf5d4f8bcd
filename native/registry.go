package native

import (
	"sort"
	"strings"
	"sync"

	"github.com/coreos/go-semver/semver"

	"github.com/wippyai/wasm-hal/errors"
)

// Func is one registered host function with its shape validated up front.
type Func struct {
	Namespace string
	Name      string
	Arity     int
	fn        any
}

// Invoke dispatches the registered callable through the bridge.
func (f *Func) Invoke(args []byte) (uint32, error) {
	return Invoke(f.fn, args)
}

// Registry is the signature table of host functions the engine may call out
// to, keyed by namespace and name. Namespaces may carry a version suffix
// ("env@1.2.0"); Resolve matches a versioned request against a compatible
// registered version the way the linker resolves imports: same major, and a
// registered minor/patch at least the requested one.
type Registry struct {
	mu     sync.RWMutex
	spaces map[string][]*space // keyed by bare namespace name
}

type space struct {
	full    string // namespace as registered, version suffix included
	version *semver.Version
	funcs   map[string]*Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{spaces: make(map[string][]*space)}
}

// Register adds fn under namespace and name. The callable must have one of
// the bridge's supported shapes (0 to 4 uint32 arguments, uint32 result);
// anything else is rejected here instead of failing at call time.
func (r *Registry) Register(namespace, name string, fn any) error {
	if namespace == "" {
		return errors.InvalidInput(errors.PhaseNative, "namespace cannot be empty")
	}
	if name == "" {
		return errors.InvalidInput(errors.PhaseNative, "function name cannot be empty")
	}

	bare, version, err := splitNamespace(namespace)
	if err != nil {
		return errors.Registration(namespace, name, err)
	}

	arity, ok := arityOf(fn)
	if !ok {
		return errors.Registration(namespace, name,
			errors.New(errors.PhaseNative, errors.KindInvalidInput).
				Detail("unsupported function shape %T", fn).
				Build())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sp := r.findSpaceLocked(bare, version)
	if sp == nil {
		sp = &space{full: namespace, version: version, funcs: make(map[string]*Func)}
		r.spaces[bare] = append(r.spaces[bare], sp)
	}

	sp.funcs[name] = &Func{
		Namespace: sp.full,
		Name:      name,
		Arity:     arity,
		fn:        fn,
	}
	return nil
}

// Resolve looks up a function. An unversioned request matches only an
// unversioned registration; a versioned request matches the exact version
// first and otherwise the lowest compatible registered version.
func (r *Registry) Resolve(namespace, name string) (*Func, error) {
	bare, want, err := splitNamespace(namespace)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if sp := r.findSpaceLocked(bare, want); sp != nil {
		if f, ok := sp.funcs[name]; ok {
			return f, nil
		}
		return nil, errors.NotFound(errors.PhaseNative, "function", namespace+"#"+name)
	}

	if want != nil {
		var best *space
		for _, sp := range r.spaces[bare] {
			if sp.version == nil || !compatible(sp.version, want) {
				continue
			}
			if best == nil || sp.version.LessThan(*best.version) {
				best = sp
			}
		}
		if best != nil {
			if f, ok := best.funcs[name]; ok {
				return f, nil
			}
		}
	}

	return nil, errors.NotFound(errors.PhaseNative, "function", namespace+"#"+name)
}

// Call resolves and invokes in one step.
func (r *Registry) Call(namespace, name string, args []byte) (uint32, error) {
	f, err := r.Resolve(namespace, name)
	if err != nil {
		return 0, err
	}
	return f.Invoke(args)
}

// Namespaces returns every registered namespace string, sorted. The engine
// iterates this when binding host modules.
func (r *Registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, spaces := range r.spaces {
		for _, sp := range spaces {
			out = append(out, sp.full)
		}
	}
	sort.Strings(out)
	return out
}

// Functions returns the functions of one exact namespace, sorted by name.
func (r *Registry) Functions(namespace string) []*Func {
	bare, version, err := splitNamespace(namespace)
	if err != nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sp := r.findSpaceLocked(bare, version)
	if sp == nil {
		return nil
	}

	out := make([]*Func, 0, len(sp.funcs))
	for _, f := range sp.funcs {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// findSpaceLocked returns the space with an exactly matching version, where
// nil matches an unversioned registration. Callers hold r.mu.
func (r *Registry) findSpaceLocked(bare string, version *semver.Version) *space {
	for _, sp := range r.spaces[bare] {
		if version == nil && sp.version == nil {
			return sp
		}
		if version != nil && sp.version != nil && sp.version.Equal(*version) {
			return sp
		}
	}
	return nil
}

// splitNamespace separates "env@1.2.0" into name and version.
func splitNamespace(namespace string) (string, *semver.Version, error) {
	bare, v, found := strings.Cut(namespace, "@")
	if !found {
		return namespace, nil, nil
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return "", nil, errors.New(errors.PhaseNative, errors.KindInvalidInput).
			Detail("bad namespace version %q", v).
			Cause(err).
			Build()
	}
	return bare, version, nil
}

// compatible reports whether registered can serve a request for want:
// same major version, and registered not older than want.
func compatible(registered, want *semver.Version) bool {
	if registered.Major != want.Major {
		return false
	}
	return !registered.LessThan(*want)
}
