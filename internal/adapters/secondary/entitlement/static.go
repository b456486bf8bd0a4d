// Package entitlement provides the local entitlement checker. Extraction
// fails closed on any checker error, so an adapter here can only ever
// under-report entitlement, never unlock by accident.
package entitlement

import (
	"context"
	"os"
	"strings"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// licenseEnvVar unlocks the full deck without a config file.
const licenseEnvVar = "DECKSMITH_LICENSE_KEY"

// StaticChecker resolves entitlement once from local configuration: the
// licensed flag, a configured license key, or the license environment
// variable. It performs no network I/O.
type StaticChecker struct {
	licensed bool
}

// NewStaticChecker creates a checker from the limiter configuration.
func NewStaticChecker(cfg entities.LimiterConfig) *StaticChecker {
	licensed := cfg.Licensed ||
		strings.TrimSpace(cfg.LicenseKey) != "" ||
		strings.TrimSpace(os.Getenv(licenseEnvVar)) != ""
	return &StaticChecker{licensed: licensed}
}

// HasEntitlement reports the resolved entitlement. A cancelled context is
// reported as an error so the caller's fail-closed policy applies.
func (c *StaticChecker) HasEntitlement(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return c.licensed, nil
}

// Ensure StaticChecker implements ports.EntitlementChecker
var _ ports.EntitlementChecker = (*StaticChecker)(nil)
