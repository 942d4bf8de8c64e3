package notify

import (
	"fmt"
	"io"
)

// Sink presents a notification to the user. Fire-and-forget: errors
// are non-fatal and only logged by the dispatcher.
type Sink interface {
	Present(n Notification) error
}

// WriterSink renders notifications as single lines to a writer,
// typically stderr when running in the foreground.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Present(n Notification) error {
	marker := "!"
	if n.Priority == PriorityCritical {
		marker = "!!"
	}
	_, err := fmt.Fprintf(s.W, "[%s] %s: %s\n", marker, n.Title, n.Message)
	return err
}

// CollectSink records notifications in memory. Tests only.
type CollectSink struct {
	Sent []Notification
}

func (s *CollectSink) Present(n Notification) error {
	s.Sent = append(s.Sent, n)
	return nil
}
