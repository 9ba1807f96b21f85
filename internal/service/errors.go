package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/ecostats/internal/repository"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = fmt.Errorf("session %w", repository.ErrNotFound)
	// ErrEmptyDataset is returned when an import yields no stations.
	ErrEmptyDataset = errors.New("dataset has no station readings")
)
