// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes distinguish entity kinds at a glance.
const (
	AreaPrefix    = "ar-"
	ProcessPrefix = "pr-"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// NewAreaID returns a new unique area identifier.
func NewAreaID() (string, error) {
	return generate(AreaPrefix)
}

// NewProcessID returns a new unique process identifier.
func NewProcessID() (string, error) {
	return generate(ProcessPrefix)
}

func generate(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
