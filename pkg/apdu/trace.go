package apdu

// A Transaction is one command and the response it produced. A Trace is the chronological list of
// transactions issued for one logical operation: a single entry for plain commands, one entry per
// frame for chunked transfers.

// Transaction represents a completed Command-Response pair.
type Transaction struct {
	Command  *CommandAPDU
	Response *ResponseAPDU
}

// IsSuccess checks if the transaction ended with a successful status.
// It returns false if the response is missing.
func (t *Transaction) IsSuccess() bool {
	if t.Response == nil {
		return false
	}
	return t.Response.Status.IsSuccess()
}

// Trace is a sequence of transactions.
type Trace []Transaction

// Last returns the final transaction of the trace.
// Returns nil if the trace is empty.
func (t Trace) Last() *Transaction {
	if len(t) == 0 {
		return nil
	}
	return &t[len(t)-1]
}

// IsSuccess reports whether every transaction of the trace succeeded.
// A chunked transfer aborts on the first failure, so only a complete trace can pass.
func (t Trace) IsSuccess() bool {
	if len(t) == 0 {
		return false
	}
	for i := range t {
		if !t[i].IsSuccess() {
			return false
		}
	}
	return true
}

// FinalData returns the body of the last response, or nil when there is none.
func (t Trace) FinalData() []byte {
	last := t.Last()
	if last == nil || last.Response == nil {
		return nil
	}
	return last.Response.Data
}
