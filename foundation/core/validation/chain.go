// File: chain.go
// Title: Validator Chains
// Description: Sequential composition of validators.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-12-14

package validation

import "fmt"

// ValidatorChain runs validators in order and combines their results
type ValidatorChain struct {
	validators       []Validator
	name             string
	stopOnFirstError bool
}

// NewValidatorChain creates a new validator chain with an optional name
func NewValidatorChain(name ...string) *ValidatorChain {
	chainName := ""
	if len(name) > 0 {
		chainName = name[0]
	}
	return &ValidatorChain{name: chainName}
}

// Add adds a validator to the chain
func (c *ValidatorChain) Add(validator Validator) *ValidatorChain {
	c.validators = append(c.validators, validator)
	return c
}

// AddFunc adds a validator function to the chain
func (c *ValidatorChain) AddFunc(fn ValidatorFunc) *ValidatorChain {
	c.validators = append(c.validators, fn)
	return c
}

// StopOnFirstError makes the chain return after the first failing validator
func (c *ValidatorChain) StopOnFirstError(stop bool) *ValidatorChain {
	c.stopOnFirstError = stop
	return c
}

// Validate executes the validators and returns the combined result
func (c *ValidatorChain) Validate(value interface{}) ValidationResult {
	results := make([]ValidationResult, 0, len(c.validators))
	for _, v := range c.validators {
		result := v.Validate(value)
		results = append(results, result)
		if c.stopOnFirstError && !result.Valid {
			break
		}
	}
	return Combine(results...)
}

// Length returns the number of validators in the chain
func (c *ValidatorChain) Length() int {
	return len(c.validators)
}

// String returns a string representation of the validator chain
func (c *ValidatorChain) String() string {
	name := c.name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("ValidatorChain{name: %s, validators: %d, stopOnFirstError: %v}",
		name, len(c.validators), c.stopOnFirstError)
}
