package mailbox

// Status reports the message counts of a folder at one point in time.
type Status struct {
	// The folder name.
	Name string
	// The number of messages in this folder.
	Messages uint32
	// The number of unread messages.
	Unseen uint32
}

// Count tallies a message listing into a status snapshot.
func Count(name string, messages []Message) Status {
	status := Status{
		Name:     name,
		Messages: uint32(len(messages)),
	}
	for _, message := range messages {
		if message.Unread {
			status.Unseen++
		}
	}
	return status
}
