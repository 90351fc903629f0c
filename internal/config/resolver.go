package config

import (
	"fmt"
	"os"
	"strings"
)

// Resolver expands environment variable references in configuration values.
// A value of the form "$NAME" resolves to the variable's contents; anything
// else passes through unchanged.
type Resolver struct {
	lookup func(string) (string, bool)
}

// NewResolver creates a resolver backed by the process environment.
func NewResolver() *Resolver {
	return &Resolver{lookup: os.LookupEnv}
}

// NewResolverWithLookup creates a resolver with a custom lookup, for tests.
func NewResolverWithLookup(lookup func(string) (string, bool)) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve expands a "$NAME" reference. Unset variables are an error so
// callers can distinguish a missing key from a literal empty one.
func (r *Resolver) Resolve(value string) (string, error) {
	if !strings.HasPrefix(value, "$") {
		return value, nil
	}

	name := strings.TrimPrefix(value, "$")
	resolved, ok := r.lookup(name)
	if !ok {
		return "", fmt.Errorf("environment variable %q is not set", name)
	}
	return resolved, nil
}
