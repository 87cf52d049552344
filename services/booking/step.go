package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"bookify/models"
	"bookify/utils"
)

// StepContext tells whether a step's state belongs to the cart as a whole or
// to the cart item being assembled. The "new item" transition resets only
// per-item steps.
type StepContext string

const (
	ContextCart     StepContext = "cart"
	ContextCartItem StepContext = "cartItem"
)

// Property value types accepted by a step schema.
const (
	PropString = "string"
	PropInt    = "int"
	PropBool   = "bool"
)

// PropertySchema validates and coerces one incoming step property.
type PropertySchema struct {
	Type    string
	Default interface{}
	// Options, when non-nil, returns the currently allowed values. Empty
	// incoming values bypass the check so a dependent field can be cleared
	// on purpose.
	Options func() []string
}

// Step is one controller in the wizard sequence.
type Step interface {
	ID() string
	Context() StepContext
	// Hidden steps auto-resolve: once Load settles the wizard advances (or
	// retreats) past them without user interaction.
	Hidden() bool
	Load(ctx context.Context)
	IsValidInput() bool
	SetProperty(name string, value interface{})
	GetProperty(name string) interface{}
	Properties() map[string]interface{}
	RestoreProperties(props map[string]interface{})
	// Submit returns true when the step accepted its data; the wizard then
	// fires the next transition. On failure the step stays active for
	// correction.
	Submit(ctx context.Context) bool
	Reset()
	LastError() string
}

// stepHooks are the step-specific parts StepBase delegates to.
type stepHooks interface {
	// LoadEntities runs on the first load; Reload on subsequent ones, and is
	// expected to be cheap (typically a hash-based no-op check). Both receive
	// the load generation: results applied through ApplyIfCurrent are
	// discarded when a newer load has started since.
	LoadEntities(ctx context.Context, gen uint64)
	Reload(ctx context.Context, gen uint64)
	// React runs once per logical property update, after the change applied.
	React()
	// MaybeSubmit performs the step's submit work.
	MaybeSubmit(ctx context.Context) bool
	ResetState()
}

// StepBase carries the machinery shared by all steps: the property schema,
// load bookkeeping, generation counting and the single-reaction guard.
type StepBase struct {
	id          string
	stepContext StepContext
	hidden      bool
	cart        *models.Cart
	schema      map[string]PropertySchema
	props       map[string]interface{}
	hooks       stepHooks

	mu       sync.Mutex
	loaded   bool
	gen      uint64
	reacting bool
	lastErr  string
}

func newStepBase(id string, stepContext StepContext, cart *models.Cart, schema map[string]PropertySchema) StepBase {
	props := make(map[string]interface{}, len(schema))
	for name, s := range schema {
		props[name] = s.Default
	}
	return StepBase{
		id:          id,
		stepContext: stepContext,
		cart:        cart,
		schema:      schema,
		props:       props,
	}
}

func (b *StepBase) ID() string           { return b.id }
func (b *StepBase) Context() StepContext { return b.stepContext }
func (b *StepBase) Cart() *models.Cart   { return b.cart }

func (b *StepBase) Hidden() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hidden
}

// SetHidden is called by concrete steps when they discover they have exactly
// one valid default and nothing to ask.
func (b *StepBase) SetHidden(hidden bool) {
	b.mu.Lock()
	b.hidden = hidden
	b.mu.Unlock()
}

// Load triggers LoadEntities on the first call and Reload afterwards. Each
// call bumps the step's generation so results of superseded loads are
// discarded instead of clobbering fresher state.
func (b *StepBase) Load(ctx context.Context) {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	first := !b.loaded
	b.loaded = true
	b.mu.Unlock()

	if first {
		b.hooks.LoadEntities(ctx, gen)
	} else {
		b.hooks.Reload(ctx, gen)
	}
}

// ApplyIfCurrent runs apply only when gen is still the latest load
// generation, closing the stale-async-result race.
func (b *StepBase) ApplyIfCurrent(gen uint64, apply func()) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		utils.GetLogger().Debug("discarding stale load result",
			zap.String("step", b.id), zap.Uint64("gen", gen))
		return false
	}
	apply()
	return true
}

// SetProperty validates and coerces value against the schema, applies it
// only when changed, and triggers a single React pass. Nested SetProperty
// calls made from within React (cascading resets) do not re-trigger it.
func (b *StepBase) SetProperty(name string, value interface{}) {
	schema, ok := b.schema[name]
	if !ok {
		utils.GetLogger().Warn("unknown step property",
			zap.String("step", b.id), zap.String("property", name))
		return
	}

	previous := b.props[name]
	coerced := coerceProperty(schema, value, previous)

	if coerced == previous {
		return
	}
	b.props[name] = coerced

	b.mu.Lock()
	if b.reacting {
		b.mu.Unlock()
		return
	}
	b.reacting = true
	b.mu.Unlock()

	b.hooks.React()

	b.mu.Lock()
	b.reacting = false
	b.mu.Unlock()
}

// GetProperty returns the current value of a schema property.
func (b *StepBase) GetProperty(name string) interface{} {
	return b.props[name]
}

// Properties snapshots the current property values, for session persistence.
func (b *StepBase) Properties() map[string]interface{} {
	out := make(map[string]interface{}, len(b.props))
	for name, value := range b.props {
		out[name] = value
	}
	return out
}

// RestoreProperties reinstates persisted values without firing reactions.
// Values are coerced by schema type only; option membership is not
// re-checked because option caches are rebuilt lazily on the next load.
func (b *StepBase) RestoreProperties(props map[string]interface{}) {
	for name, value := range props {
		schema, ok := b.schema[name]
		if !ok {
			continue
		}
		switch schema.Type {
		case PropBool:
			b.props[name] = coerceBool(value)
		case PropInt:
			b.props[name] = coerceInt(value)
		default:
			b.props[name] = coerceString(value)
		}
	}
}

// StringProp and IntProp are typed accessors for concrete steps.
func (b *StepBase) StringProp(name string) string {
	v, _ := b.props[name].(string)
	return v
}

func (b *StepBase) IntProp(name string) int {
	v, _ := b.props[name].(int)
	return v
}

func (b *StepBase) BoolProp(name string) bool {
	v, _ := b.props[name].(bool)
	return v
}

// Submit delegates to MaybeSubmit and records the outcome.
func (b *StepBase) Submit(ctx context.Context) bool {
	b.setError("")
	return b.hooks.MaybeSubmit(ctx)
}

// Reset restores the schema defaults and clears load state.
func (b *StepBase) Reset() {
	for name, schema := range b.schema {
		b.props[name] = schema.Default
	}
	b.mu.Lock()
	b.loaded = false
	b.gen++
	b.lastErr = ""
	b.mu.Unlock()
	b.hooks.ResetState()
}

func (b *StepBase) LastError() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

func (b *StepBase) setError(msg string) {
	b.mu.Lock()
	b.lastErr = msg
	b.mu.Unlock()
}

// FailSubmit records an inline validation message and reports failure.
func (b *StepBase) FailSubmit(msg string) bool {
	b.setError(msg)
	return false
}

// coerceProperty applies the schema's type coercion and options check.
// Invalid values never raise: a disallowed option keeps the previous value,
// a nil value falls back to the default.
func coerceProperty(schema PropertySchema, value, previous interface{}) interface{} {
	if value == nil {
		return schema.Default
	}

	var coerced interface{}
	switch schema.Type {
	case PropBool:
		coerced = coerceBool(value)
	case PropInt:
		coerced = coerceInt(value)
	default:
		coerced = coerceString(value)
	}

	// Empty values bypass the options check so dependent fields can be
	// cleared intentionally.
	if schema.Options != nil && !isEmptyValue(coerced) {
		allowed := false
		needle := fmt.Sprintf("%v", coerced)
		for _, option := range schema.Options() {
			if option == needle {
				allowed = true
				break
			}
		}
		if !allowed {
			return previous
		}
	}

	return coerced
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

func coerceInt(value interface{}) int {
	switch v := value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return parsed
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func coerceString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func isEmptyValue(value interface{}) bool {
	switch v := value.(type) {
	case string:
		return v == ""
	case int:
		return v == 0
	default:
		return false
	}
}
