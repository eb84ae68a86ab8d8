// Package wizard implements a reusable multi-step form controller. The
// checkout session and vendor onboarding both drive their flows through a
// Definition; the controller owns only the step index and the field bag,
// never the domain side effects.
package wizard

import (
	"fmt"
	"strings"

	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
)

// Step is one stage of a flow: the field keys it requires and an optional
// extra validation hook over the full field bag.
type Step struct {
	Name     string
	Required []string
	Validate func(fields map[string]string) error
}

// Definition is an ordered, immutable list of steps for one flow.
type Definition struct {
	Name  string
	Steps []Step
}

// State is the mutable position in a flow: a zero-based step index plus a
// flat field bag. It serializes cleanly to JSON so flows can park it in
// redis between requests.
type State struct {
	Index  int               `json:"index"`
	Fields map[string]string `json:"fields"`
}

// NewState starts a flow at its first step with an empty field bag.
func NewState() State {
	return State{Fields: make(map[string]string)}
}

// Set records one field value, preserving everything already entered.
func (s State) Set(key, value string) State {
	if s.Fields == nil {
		s.Fields = make(map[string]string)
	}
	s.Fields[key] = value
	return s
}

// Merge records a batch of field values.
func (s State) Merge(fields map[string]string) State {
	for key, value := range fields {
		s = s.Set(key, value)
	}
	return s
}

// CurrentStep returns the step the state points at.
func (d Definition) CurrentStep(s State) (Step, error) {
	if len(d.Steps) == 0 {
		return Step{}, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("flow %q has no steps", d.Name))
	}
	if s.Index < 0 || s.Index >= len(d.Steps) {
		return Step{}, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("flow %q has no step %d", d.Name, s.Index))
	}
	return d.Steps[s.Index], nil
}

// IsFinal reports whether the state sits on the last step.
func (d Definition) IsFinal(s State) bool {
	return len(d.Steps) > 0 && s.Index == len(d.Steps)-1
}

func (d Definition) validateStep(step Step, fields map[string]string) error {
	var missing []string
	for _, key := range step.Required {
		if strings.TrimSpace(fields[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return pkgerrors.
			New(pkgerrors.CodeValidation, fmt.Sprintf("step %q is missing required fields", step.Name)).
			WithDetails(map[string][]string{"missing_fields": missing})
	}
	if step.Validate != nil {
		if err := step.Validate(fields); err != nil {
			return err
		}
	}
	return nil
}

// Next validates the current step and advances. Advancing past the final
// step is a state conflict; Submit is the only way out of the last step.
func (d Definition) Next(s State) (State, error) {
	step, err := d.CurrentStep(s)
	if err != nil {
		return s, err
	}
	if err := d.validateStep(step, s.Fields); err != nil {
		return s, err
	}
	if d.IsFinal(s) {
		return s, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("flow %q is already on its final step", d.Name))
	}
	s.Index++
	return s, nil
}

// Prev retreats one step, clamping at the first. The field bag is kept, so
// going back and forward preserves entered values.
func (d Definition) Prev(s State) State {
	if s.Index > 0 {
		s.Index--
	}
	return s
}

// Submit validates the final step and invokes the terminal callback. It
// refuses to run from any earlier step.
func (d Definition) Submit(s State, submit func(fields map[string]string) error) error {
	step, err := d.CurrentStep(s)
	if err != nil {
		return err
	}
	if !d.IsFinal(s) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("flow %q can only be submitted from its final step", d.Name))
	}
	if err := d.validateStep(step, s.Fields); err != nil {
		return err
	}
	if submit == nil {
		return nil
	}
	return submit(s.Fields)
}
