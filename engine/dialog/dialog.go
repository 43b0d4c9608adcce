// Package dialog holds the cyclic message lists front-ends display when a
// scripted action asks for one.
package dialog

// Dialog is an ordered, cycling list of messages.
type Dialog struct {
	messages []string
	current  int
}

// New returns a dialog over the given messages. At least one message is
// required; an empty dialog is a programming error.
func New(messages []string) *Dialog {
	if len(messages) == 0 {
		panic("dialog: no messages")
	}
	return &Dialog{messages: messages}
}

// Msg returns the current message without advancing.
func (d *Dialog) Msg() string {
	return d.messages[d.current]
}

// Next returns the current message and advances to the following one,
// wrapping at the end.
func (d *Dialog) Next() string {
	msg := d.messages[d.current]
	d.current = (d.current + 1) % len(d.messages)
	return msg
}

// Finished reports whether the last message is the current one.
func (d *Dialog) Finished() bool {
	return d.current == len(d.messages)-1
}
