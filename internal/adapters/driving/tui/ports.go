// Package tui provides an interactive terminal user interface for docvault.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docvault/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Archive stores and queries document chunks.
	Archive driving.ArchiveService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(archive driving.ArchiveService) *Ports {
	return &Ports{Archive: archive}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Archive == nil {
		return ErrMissingArchiveService
	}
	return nil
}
