// File: chain.go
// Title: Validator Composition
// Description: Sequential chains, conditional validators and a concurrent
//              validator group. All three implement Validator themselves and
//              can be nested freely.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-24
// Modified: 2026-10-08
//
// Change History:
// - 2026-09-24 v0.1.0: Chain and conditional validators
// - 2026-10-08 v0.2.0: Parallel group keeps validator order in its result

package validation

import (
	"context"
	"fmt"
	"sync"
)

// ValidatorChain runs validators in sequence
type ValidatorChain struct {
	validators       []Validator
	name             string
	stopOnFirstError bool
	context          map[string]interface{}
}

// NewValidatorChain creates an empty chain with an optional name
func NewValidatorChain(name ...string) *ValidatorChain {
	c := &ValidatorChain{context: make(map[string]interface{})}
	if len(name) > 0 {
		c.name = name[0]
	}
	return c
}

// Add appends a validator
func (c *ValidatorChain) Add(v Validator) *ValidatorChain {
	c.validators = append(c.validators, v)
	return c
}

// AddFunc appends a validator function
func (c *ValidatorChain) AddFunc(fn ValidatorFunc) *ValidatorChain {
	return c.Add(fn)
}

// StopOnFirstError makes the chain stop at the first failing validator.
// By default all validators run and all failures are collected.
func (c *ValidatorChain) StopOnFirstError(stop bool) *ValidatorChain {
	c.stopOnFirstError = stop
	return c
}

// WithContext attaches a value that is copied into the combined result
func (c *ValidatorChain) WithContext(key string, value interface{}) *ValidatorChain {
	c.context[key] = value
	return c
}

// WithName renames the chain
func (c *ValidatorChain) WithName(name string) *ValidatorChain {
	c.name = name
	return c
}

// Validate implements Validator
func (c *ValidatorChain) Validate(value interface{}) ValidationResult {
	return c.ValidateWithContext(context.Background(), value)
}

// ValidateWithContext runs the chain. A canceled context stops the chain
// before the next validator.
func (c *ValidatorChain) ValidateWithContext(ctx context.Context, value interface{}) ValidationResult {
	if c.name != "" {
		ctx = context.WithValue(ctx, chainNameKey, c.name)
	}

	results := make([]ValidationResult, 0, len(c.validators))
	for i, v := range c.validators {
		if err := ctx.Err(); err != nil {
			canceled := NewValidationError(CodeCustom, "validation canceled: "+err.Error())
			results = append(results, canceled)
			break
		}

		result := v.ValidateWithContext(ctx, value)
		if !result.Valid {
			for j := range result.Errors {
				if result.Errors[j].Context == nil {
					result.Errors[j].Context = make(map[string]interface{})
				}
				result.Errors[j].Context["validator_index"] = i
			}
		}
		results = append(results, result)

		if c.stopOnFirstError && !result.Valid {
			break
		}
	}

	combined := Combine(results...)
	for k, v := range c.context {
		combined.WithContext(k, v)
	}
	if c.name != "" {
		combined.WithContext("validator_chain", c.name)
	}
	combined.WithContext("total_validators", len(c.validators))
	combined.WithContext("executed_validators", len(results))
	return combined
}

// Length returns the number of validators
func (c *ValidatorChain) Length() int {
	return len(c.validators)
}

// Name returns the chain name
func (c *ValidatorChain) Name() string {
	return c.name
}

// String implements fmt.Stringer
func (c *ValidatorChain) String() string {
	return fmt.Sprintf("ValidatorChain{name: %s, validators: %d, stopOnFirstError: %v}",
		nameOrUnnamed(c.name), len(c.validators), c.stopOnFirstError)
}

// ConditionalValidator runs its validator only when the condition holds
type ConditionalValidator struct {
	condition func(interface{}) bool
	validator Validator
	name      string
}

// NewConditionalValidator wraps v behind condition
func NewConditionalValidator(condition func(interface{}) bool, v Validator, name ...string) *ConditionalValidator {
	cv := &ConditionalValidator{condition: condition, validator: v}
	if len(name) > 0 {
		cv.name = name[0]
	}
	return cv
}

// Validate implements Validator
func (c *ConditionalValidator) Validate(value interface{}) ValidationResult {
	return c.ValidateWithContext(context.Background(), value)
}

// ValidateWithContext implements Validator; a skipped validator passes
func (c *ConditionalValidator) ValidateWithContext(ctx context.Context, value interface{}) ValidationResult {
	if !c.condition(value) {
		result := NewValidationResult()
		result.WithContext("condition_met", false)
		return result
	}
	result := c.validator.ValidateWithContext(ctx, value)
	result.WithContext("condition_met", true)
	return result
}

// String implements fmt.Stringer
func (c *ConditionalValidator) String() string {
	return fmt.Sprintf("ConditionalValidator{name: %s}", nameOrUnnamed(c.name))
}

// ParallelValidator runs its validators concurrently. Failures are reported
// in the order the validators were added.
type ParallelValidator struct {
	validators []Validator
	name       string
}

// NewParallelValidator creates an empty group with an optional name
func NewParallelValidator(name ...string) *ParallelValidator {
	p := &ParallelValidator{}
	if len(name) > 0 {
		p.name = name[0]
	}
	return p
}

// Add appends a validator to the group
func (p *ParallelValidator) Add(v Validator) *ParallelValidator {
	p.validators = append(p.validators, v)
	return p
}

// Validate implements Validator
func (p *ParallelValidator) Validate(value interface{}) ValidationResult {
	return p.ValidateWithContext(context.Background(), value)
}

// ValidateWithContext implements Validator
func (p *ParallelValidator) ValidateWithContext(ctx context.Context, value interface{}) ValidationResult {
	if len(p.validators) == 0 {
		return NewValidationResult()
	}

	results := make([]ValidationResult, len(p.validators))
	var wg sync.WaitGroup
	for i, v := range p.validators {
		wg.Add(1)
		go func(i int, v Validator) {
			defer wg.Done()
			results[i] = v.ValidateWithContext(ctx, value)
		}(i, v)
	}
	wg.Wait()

	combined := Combine(results...)
	if p.name != "" {
		combined.WithContext("parallel_validator", p.name)
	}
	combined.WithContext("total_validators", len(p.validators))
	return combined
}

// String implements fmt.Stringer
func (p *ParallelValidator) String() string {
	return fmt.Sprintf("ParallelValidator{name: %s, validators: %d}", nameOrUnnamed(p.name), len(p.validators))
}

func nameOrUnnamed(name string) string {
	if name == "" {
		return "unnamed"
	}
	return name
}
