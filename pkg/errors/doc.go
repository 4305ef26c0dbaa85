// Package errors provides structured error types for better observability
// and programmatic error handling across the scheduling engine.
//
// Example usage:
//
//	err := errors.NewWithContext(
//	    errors.ErrCodeStructuralInfeasibility,
//	    "stage requirement exceeds inventory capacity",
//	    map[string]any{
//	        "instance": instanceID,
//	        "resource": "Chef",
//	        "required": 3,
//	        "capacity": 2,
//	    },
//	)
package errors
