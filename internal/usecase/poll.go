package usecase

import "time"

// pollUntilReady invokes query until isDone holds or the attempt budget
// runs out. The first query is issued immediately; each retry sleeps
// interval first and consumes one of maxAttempts. The last result is
// returned either way: exhausting the budget is not an error by itself,
// the caller decides whether a still-not-done result is fatal.
//
// Errors from query propagate immediately and are never retried here —
// only the "not done yet" condition is.
func pollUntilReady[T any](query func() (T, error), isDone func(T) bool, interval time.Duration, maxAttempts int, sleep func(time.Duration)) (T, error) {
	result, err := query()
	if err != nil || isDone(result) {
		return result, err
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		sleep(interval)
		result, err = query()
		if err != nil || isDone(result) {
			return result, err
		}
	}
	return result, nil
}
