package booking

// Results the remote service is known to return. The taxonomy is open: any
// value outside this set is treated as a failure.
const (
	ResultBooked            = "Booked"
	ResultUserAlreadyBooked = "UserAlreadyBooked"
	ResultError             = "Error"
	ResultUnknown           = "Unknown"
)

// Outcome is the classified result of one booking attempt.
type Outcome struct {
	Result       string
	ErrorMessage string
}

// Success reports whether the attempt needs no further action. An already
// held reservation counts as success: the call is idempotent and is not
// retried or escalated.
func (o Outcome) Success() bool {
	return o.Result == ResultBooked || o.Result == ResultUserAlreadyBooked
}
