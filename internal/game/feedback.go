package game

// feedbackCapacity bounds the feedback ring; the UI only ever shows the
// most recent handful of lines.
const feedbackCapacity = 64

// FeedbackEvent is one textual feedback line for the UI ("+1 point",
// "Cloned", ...), stamped with the tick it happened on.
type FeedbackEvent struct {
	Tick int
	Text string
}

// FeedbackLog is a bounded ring of feedback events, oldest evicted first.
type FeedbackLog struct {
	events []FeedbackEvent
}

// Push appends an event, evicting the oldest when full.
func (fl *FeedbackLog) Push(tick int, text string) {
	fl.events = append(fl.events, FeedbackEvent{Tick: tick, Text: text})
	if len(fl.events) > feedbackCapacity {
		fl.events = fl.events[1:]
	}
}

// Recent returns up to n of the newest events, oldest first.
func (fl *FeedbackLog) Recent(n int) []FeedbackEvent {
	if n > len(fl.events) {
		n = len(fl.events)
	}
	return fl.events[len(fl.events)-n:]
}

// All returns every retained event, oldest first.
func (fl *FeedbackLog) All() []FeedbackEvent {
	return fl.events
}
