package treads

import "fmt"

// DecodeError reports bytes that could not be parsed as a supported image.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("decode %s image: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IOError reports an unreadable image source.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("read %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("read image: %v", e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
