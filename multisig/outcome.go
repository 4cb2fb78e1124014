package multisig

import "fmt"

// Status of an authorization attempt.
type Status uint8

const (
	// StatusExecuted means that the action was committed.
	StatusExecuted Status = iota + 1
	// StatusInsufficientWeight means that valid signatures did not reach the threshold.
	StatusInsufficientWeight
	// StatusRejected means that the action can't be executed regardless of signatures.
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusExecuted:
		return "executed"
	case StatusInsufficientWeight:
		return "insufficient_weight"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Outcome of Client.Authorize. Only fields relevant to the Status are set.
type Outcome struct {
	Status Status
	// Result is set for StatusExecuted.
	Result CommitResult
	// Collected and Threshold are set for StatusInsufficientWeight.
	Collected uint64
	Threshold uint32
	// Reason is set for StatusRejected.
	Reason error
}

func (o Outcome) String() string {
	switch o.Status {
	case StatusExecuted:
		return fmt.Sprintf("%s nonce=%d collected=%d", o.Status, o.Result.Nonce, o.Result.Collected)
	case StatusInsufficientWeight:
		return fmt.Sprintf("%s collected=%d threshold=%d", o.Status, o.Collected, o.Threshold)
	default:
		return fmt.Sprintf("%s: %v", o.Status, o.Reason)
	}
}

func executed(result CommitResult) Outcome {
	return Outcome{Status: StatusExecuted, Result: result}
}

func insufficient(collected uint64, threshold uint32) Outcome {
	return Outcome{Status: StatusInsufficientWeight, Collected: collected, Threshold: threshold}
}

func rejected(reason error) Outcome {
	return Outcome{Status: StatusRejected, Reason: reason}
}
