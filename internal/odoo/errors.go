package odoo

import "fmt"

// ValidationError reports a malformed instance name, domain or email.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// NotFoundError reports a lookup for an instance that is not registered,
// or a selection outside the current listing range.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return "no instances found"
	}
	return fmt.Sprintf("instance %q not found", e.Name)
}

// DatabaseError wraps a failed role or database operation.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// DependencyError wraps a failed runtime environment setup step.
type DependencyError struct {
	Step string
	Err  error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency setup (%s): %v", e.Step, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// ExternalToolError wraps a non-zero exit from an invoked system command.
type ExternalToolError struct {
	Tool string
	Args []string
	Err  error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }
