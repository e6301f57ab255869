// Package tool defines the tool descriptor the runtime executes on behalf of
// a language model: a name, a description, a parameters schema, and a typed
// call function whose arguments are reconstructible from structured content.
package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/stepforge/agentcore/tool/schema"
)

// Output is anything a tool result can be rendered to as a prompt string.
type Output interface {
	Render() string
}

// StringOutput is the trivial Output wrapping a pre-rendered string.
type StringOutput string

// Render returns the string itself.
func (s StringOutput) Render() string { return string(s) }

// Descriptor is a typed tool: Args must round-trip through JSON so the
// middleware pipeline can re-deserialize modified arguments before
// invocation.
type Descriptor[Args any, Out Output] struct {
	Name        string
	Description string
	// Schema is the JSON schema document describing Args, used both to
	// advertise the tool to a model and to validate incoming arguments.
	Schema json.RawMessage
	Call   func(ctx context.Context, args Args) (Out, error)
}

// Tool is the type-erased protocol the runtime holds a heterogeneous
// collection of: a common call shape over structured content producing a
// prompt-renderable string.
type Tool interface {
	Name() string
	Description() string
	Schema() json.RawMessage
	// Invoke decodes argsJSON into the tool's typed arguments and runs Call,
	// returning the rendered output string.
	Invoke(ctx context.Context, argsJSON json.RawMessage) (string, error)
}

type erased[Args any, Out Output] struct {
	d Descriptor[Args, Out]

	compileOnce sync.Once
	compiled    *schema.Compiled
	compileErr  error
}

// Erase adapts a typed Descriptor into the type-erased Tool protocol.
func Erase[Args any, Out Output](d Descriptor[Args, Out]) Tool {
	return &erased[Args, Out]{d: d}
}

func (e *erased[Args, Out]) Name() string           { return e.d.Name }
func (e *erased[Args, Out]) Description() string    { return e.d.Description }
func (e *erased[Args, Out]) Schema() json.RawMessage { return e.d.Schema }

// Invoke validates argsJSON against the tool's declared Schema (if any),
// then decodes it into the typed arguments and runs Call. The schema is
// compiled once, on first invocation, and reused thereafter.
func (e *erased[Args, Out]) Invoke(ctx context.Context, argsJSON json.RawMessage) (string, error) {
	if len(e.d.Schema) > 0 {
		e.compileOnce.Do(func() {
			e.compiled, e.compileErr = schema.Compile(e.d.Schema)
		})
		if e.compileErr != nil {
			return "", fmt.Errorf("tool: %s: schema compile: %w", e.d.Name, e.compileErr)
		}
		if err := e.compiled.Validate(argsJSON); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrInvalidArguments, e.d.Name, err)
		}
	}

	var args Args
	if err := json.Unmarshal(argsJSON, &args); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrArgumentParseFailed, e.d.Name, err)
	}
	out, err := e.d.Call(ctx, args)
	if err != nil {
		return "", err
	}
	return out.Render(), nil
}
