package booking

import (
	"context"
	"fmt"
	"time"

	"salonbook/utils"
)

const workstationLockTTL = 10 * time.Second

// RedisWorkstationLocker implements WorkstationLocker with a Redis advisory
// lock keyed by workstation id.
type RedisWorkstationLocker struct{}

func (RedisWorkstationLocker) Acquire(ctx context.Context, workstationID string) (func(), bool, error) {
	return utils.AcquireLock(ctx, "wslock:"+workstationID, workstationLockTTL)
}

// allocateWorkstation scans the salon's workstations in stable order and picks
// the first one with no intersecting non-cancelled booking. The returned
// release function holds the workstation's advisory lock; the caller must keep
// it held through the ledger write so a concurrent creation cannot observe the
// same workstation as free.
func (svc *DefaultBookingService) allocateWorkstation(ctx context.Context, salonID string, start, end time.Time) (workstationID string, release func(), err error) {
	workstations, err := svc.Catalog.GetWorkstationsBySalon(ctx, salonID)
	if err != nil {
		return "", nil, NewStorageError("failed to fetch workstations", err)
	}
	if len(workstations) == 0 {
		return "", nil, NewNotFoundError(CodeNoWorkstations,
			fmt.Sprintf("salon %s has no workstations", salonID))
	}

	for _, ws := range workstations {
		rel, ok, lockErr := svc.Locks.Acquire(ctx, ws.ID)
		if lockErr != nil {
			return "", nil, NewStorageError("failed to acquire workstation lock", lockErr)
		}
		if !ok {
			// Another allocation holds this workstation; treat it as busy.
			continue
		}

		count, countErr := svc.Bookings.CountOverlapping(ctx, ws.ID, start, end)
		if countErr != nil {
			rel()
			return "", nil, NewStorageError("failed to count overlapping bookings", countErr)
		}
		if count == 0 {
			return ws.ID, rel, nil
		}
		rel()
	}

	return "", nil, NewResourceExhaustedError(
		fmt.Sprintf("no workstation free between %s and %s", start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)))
}
