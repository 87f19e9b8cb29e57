package calculation

import (
	"time"

	"github.com/google/uuid"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// idFunc returns a new report identifier (override for deterministic tests).
var idFunc = func() string { return uuid.New().String() }

// SetIDFunc overrides the report id provider (use only in tests).
func SetIDFunc(f func() string) { idFunc = f }
