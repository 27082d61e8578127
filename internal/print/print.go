// Package print is the print-sink collaborator: receipts and kitchen
// tickets are handed over fire-and-forget, with no acknowledgement.
package print

import "log"

// Kind selects the target printer.
type Kind string

const (
	KindReceipt Kind = "receipt"
	KindKitchen Kind = "kitchen"
)

// Sink accepts rendered ticket text for printing.
type Sink interface {
	Print(content string, kind Kind)
}

// LogSink simulates a printer by writing tickets to the process log.
type LogSink struct{}

func (LogSink) Print(content string, kind Kind) {
	log.Printf("print [%s]:\n%s", kind, content)
}
