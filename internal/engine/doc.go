// Package engine provides an HTTP client for the outbound call campaign engine.
//
// The engine is an external service that sequentially dials batches of phone
// numbers with an automated caller. This package covers the two operations the
// engine exposes to operator tooling:
//
//   - GET /api/v1/outbound/status — a point-in-time snapshot of engine state
//     (running flag, queue depth, active call SID). Idempotent and safe to
//     poll on a timer.
//   - POST /api/v1/outbound/start — enqueue a batch of phone numbers. Not
//     idempotent: every call enqueues work, so the client never retries it.
//
// # Usage Example
//
//	client := engine.NewClient("http://localhost:8000")
//
//	status, err := client.GetStatus()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(status.FormatCompact())
//
//	numbers := engine.ParseNumbers("+15550100, +15550101")
//	result, err := client.StartCalls(numbers)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Message)
//
// # Error Handling
//
// All failures are returned as *EngineError with a classified category
// (network, timeout, connection refused, DNS, HTTP, parse, validation) so
// callers can distinguish transient transport problems from protocol ones.
// Errors wrap their cause for errors.Is/As inspection.
package engine
