package ports

import "context"

// EntitlementChecker resolves whether the current user is exempt from the
// free-tier slide cap. Implementations may block on external lookups, so the
// call is context-bound. The extraction pipeline fails closed: any error from
// HasEntitlement is treated as "not entitled", never propagated.
type EntitlementChecker interface {
	HasEntitlement(ctx context.Context) (bool, error)
}
