// Package main demonstrates the graphlens error code system.
package main

import (
	"fmt"

	"github.com/kart-io/graphlens/pkg/errors"
)

func main() {
	// Predefined errors carry code, HTTP status and bilingual messages.
	err := errors.ErrUnsupportedFormat
	fmt.Printf("code=%d http=%d message=%s\n", err.Code, err.HTTPStatus(), err.MessageEN)

	// Wrapping keeps the template untouched and preserves the cause chain.
	wrapped := errors.ErrIndexingFailed.WithCause(fmt.Errorf("connection refused"))
	fmt.Println("wrapped:", wrapped)
	fmt.Println("matches template:", errors.Is(wrapped, errors.ErrIndexingFailed))

	// Any error converts to an Errno for the HTTP layer.
	e := errors.FromError(fmt.Errorf("plain error"))
	fmt.Printf("fallback code=%d http=%d\n", e.Code, e.HTTPStatus())

	// Codes are registered and can be looked up.
	if reg, ok := errors.Lookup(errors.ErrDocumentNotFound.Code); ok {
		fmt.Printf("lookup: %d -> %s / %s\n", reg.Code, reg.MessageEN, reg.MessageZH)
	}
}
