// Package smtp opens authenticated STARTTLS sessions to the outgoing mail
// server.
package smtp

import "io"

// Client is the subset of *smtp.Client used to deliver one message.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface opens sessions and names the envelope sender.
type TransportInterface interface {
	Connect() (Client, error)
	Sender() string
}
