package gateway

import "fmt"

// ConnectivityError reports that the store could not be reached or refused
// the credentials.
type ConnectivityError struct {
	Driver string
	Err    error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: cannot connect to log store: %v", e.Driver, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// QueryError reports that a statement was rejected or failed while running.
type QueryError struct {
	Driver string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: query failed: %v", e.Driver, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
