package nav

import "fmt"

// LoadError is kept by a list whose latest load failed
type LoadError struct {
	Region Region
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Region, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
