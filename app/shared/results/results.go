// Package results defines the generic success/failure envelope returned by
// service operations. Infrastructure errors travel in the error return;
// business failures are values carried in the Failure payload with a nil
// error.
package results

// OperationResult holds either a success payload or a failure payload.
// Exactly one pointer is set on a populated result; the zero value means
// the operation never produced an outcome (panic or infrastructure error).
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult builds a success envelope.
func SuccessResult[S any, F any](success S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &success}
}

// FailureResult builds a business-failure envelope.
func FailureResult[S any, F any](failure F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &failure}
}

// IsSuccess reports whether a success payload is present.
func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

// IsFailure reports whether a failure payload is present.
func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}
