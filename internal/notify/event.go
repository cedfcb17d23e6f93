package notify

// Event is a single notification fanned out to every channel.
type Event struct {
	Title string
	Body  string
	Icon  string
	// Tag groups notifications of one category; a newer desktop notification
	// with the same tag replaces the older one.
	Tag string
}

// Text returns the title and body joined for single-line channels.
func (event Event) Text() string {
	if event.Body == "" {
		return event.Title
	}
	return event.Title + " " + event.Body
}
