package calc

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/msto63/cplx/foundation/core/errors"
	cplxerror "github.com/msto63/cplx/foundation/core/error"
	cplxlog "github.com/msto63/cplx/foundation/core/log"
	"github.com/msto63/cplx/foundation/utils/complexx"
	"github.com/msto63/cplx/foundation/utils/stringx"
)

// Category groups functions in listings
type Category string

const (
	CategoryConstruct     Category = "construct"
	CategoryArithmetic    Category = "arithmetic"
	CategoryProperties    Category = "properties"
	CategoryPower         Category = "power"
	CategoryTrigonometric Category = "trigonometric"
	CategoryHyperbolic    Category = "hyperbolic"
	CategoryMeans         Category = "means"
	CategoryNorms         Category = "norms"
	CategoryRounding      Category = "rounding"
	CategoryInterpolation Category = "interpolation"
	CategorySpecial       Category = "special"
)

// categoryOrder is the listing order of categories
var categoryOrder = []Category{
	CategoryConstruct, CategoryArithmetic, CategoryProperties, CategoryPower,
	CategoryTrigonometric, CategoryHyperbolic, CategoryMeans, CategoryNorms,
	CategoryRounding, CategoryInterpolation, CategorySpecial,
}

// Categories returns all categories in listing order
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// callFunc applies a function to arguments whose count was already checked
type callFunc func(args []complexx.Complex) (Result, error)

// Function describes a callable kernel function
type Function struct {
	Name        string
	Category    Category
	Params      []string
	Description string
	Aliases     []string

	call callFunc
}

// Arity returns the number of arguments the function takes
func (f *Function) Arity() int {
	return len(f.Params)
}

// Signature renders the call form, e.g. "pow(base, exponent)"
func (f *Function) Signature() string {
	return f.Name + "(" + strings.Join(f.Params, ", ") + ")"
}

// Call applies the function after checking the argument count
func (f *Function) Call(args ...complexx.Complex) (Result, error) {
	if len(args) != f.Arity() {
		return Result{}, errors.CalcArityMismatch(f.Name, f.Arity(), len(args))
	}
	return f.call(args)
}

// Registry maps normalized names and aliases to functions.
// It is safe for concurrent use.
type Registry struct {
	functions map[string]*Function
	aliases   map[string]string
	logger    *cplxlog.Logger
	mutex     sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry(logger *cplxlog.Logger) *Registry {
	if logger == nil {
		logger = cplxlog.GetDefault()
	}
	return &Registry{
		functions: make(map[string]*Function),
		aliases:   make(map[string]string),
		logger:    logger.WithField("component", "calc-registry"),
	}
}

// NewDefaultRegistry creates a registry holding the complete kernel
func NewDefaultRegistry(logger *cplxlog.Logger) *Registry {
	r := NewRegistry(logger)
	for _, fn := range builtins() {
		if err := r.Register(fn); err != nil {
			panic(fmt.Sprintf("calc: builtin %s: %v", fn.Name, err))
		}
	}

	r.logger.Debug("function registry initialized", cplxlog.Fields{
		"functions": len(r.functions),
		"aliases":   len(r.aliases),
	})
	return r
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds fn and its aliases. Names and aliases must be unique.
func (r *Registry) Register(fn *Function) error {
	if fn == nil || fn.call == nil {
		return errors.InvalidInput(errors.ModuleCalc, "register", fn, "function with implementation")
	}
	if stringx.IsBlank(fn.Name) {
		return errors.InvalidInput(errors.ModuleCalc, "register", fn.Name, "non-blank function name")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	name := normalize(fn.Name)
	if r.taken(name) {
		return duplicateName(name)
	}
	for _, alias := range fn.Aliases {
		if a := normalize(alias); a == name || r.taken(a) {
			return duplicateName(a)
		}
	}

	fn.Name = name
	r.functions[name] = fn
	for _, alias := range fn.Aliases {
		r.aliases[normalize(alias)] = name
	}

	r.logger.Trace("function registered", cplxlog.Fields{
		"function": name,
		"category": fn.Category,
		"arity":    fn.Arity(),
	})
	return nil
}

// RegisterAlias makes alias resolve to the registered function name
func (r *Registry) RegisterAlias(alias, name string) error {
	if stringx.IsBlank(alias) {
		return errors.InvalidInput(errors.ModuleCalc, "alias", alias, "non-blank alias")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	target, ok := r.resolve(normalize(name))
	if !ok {
		return errors.CalcUnknownFunction(name, nil)
	}
	a := normalize(alias)
	if r.taken(a) {
		return duplicateName(a)
	}
	r.aliases[a] = target.Name
	target.Aliases = append(target.Aliases, a)
	return nil
}

func duplicateName(name string) error {
	return errors.NewErrorBuilder(errors.ModuleCalc).
		Operation("register").
		Messagef("name %q is already registered", name).
		Code(cplxerror.CodeInvalidInput).
		Detail("function", name).
		Build()
}

// taken must be called with the lock held
func (r *Registry) taken(name string) bool {
	_, fn := r.functions[name]
	_, alias := r.aliases[name]
	return fn || alias
}

// resolve must be called with the lock held
func (r *Registry) resolve(name string) (*Function, bool) {
	if fn, ok := r.functions[name]; ok {
		return fn, true
	}
	if target, ok := r.aliases[name]; ok {
		fn, ok := r.functions[target]
		return fn, ok
	}
	return nil, false
}

// Lookup finds a function by name or alias, ignoring case. Unknown names
// return an UNKNOWN_FUNCTION error listing close matches.
func (r *Registry) Lookup(name string) (*Function, error) {
	r.mutex.RLock()
	fn, ok := r.resolve(normalize(name))
	r.mutex.RUnlock()

	if !ok {
		return nil, errors.CalcUnknownFunction(name, r.Suggest(name))
	}
	return fn, nil
}

// Suggest returns up to three registered names close to name
func (r *Registry) Suggest(name string) []string {
	return stringx.Closest(normalize(name), r.Names(), 2, 3)
}

// Names returns all function names in alphabetical order
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Functions returns all functions ordered by category and name
func (r *Registry) Functions() []*Function {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	rank := make(map[Category]int, len(categoryOrder))
	for i, c := range categoryOrder {
		rank[c] = i
	}

	fns := make([]*Function, 0, len(r.functions))
	for _, fn := range r.functions {
		fns = append(fns, fn)
	}
	sort.Slice(fns, func(i, j int) bool {
		ri, ok := rank[fns[i].Category]
		if !ok {
			ri = len(categoryOrder)
		}
		rj, ok := rank[fns[j].Category]
		if !ok {
			rj = len(categoryOrder)
		}
		if ri != rj {
			return ri < rj
		}
		return fns[i].Name < fns[j].Name
	})
	return fns
}

// ByCategory returns the functions of one category ordered by name
func (r *Registry) ByCategory(c Category) []*Function {
	var out []*Function
	for _, fn := range r.Functions() {
		if fn.Category == c {
			out = append(out, fn)
		}
	}
	return out
}

// Len returns the number of registered functions
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.functions)
}
