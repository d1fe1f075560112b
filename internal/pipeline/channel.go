package pipeline

// Sender is the producer-facing half of the pipeline: C3, C5, and C6
// each hold one. It narrows the raw channel to a single blocking Send
// so producers can't accidentally range over or close someone else's
// channel.
type Sender struct {
	ch chan<- Event
}

// Send delivers e to the dispatcher. The channel's buffer holds the
// number of events given to New; once it is full, Send blocks until the
// dispatcher receives. The pipeline does not grow beyond that capacity.
func (s Sender) Send(e Event) {
	s.ch <- e
}

// Receiver is the dispatcher-facing half of the pipeline.
type Receiver struct {
	ch <-chan Event
}

// Recv blocks for the next Event, or returns ok=false once the
// underlying channel has been closed and drained. Dropping a Sender does
// not close the channel.
func (r Receiver) Recv() (Event, bool) {
	e, ok := <-r.ch
	return e, ok
}

// New creates a fresh pipeline channel pair. size is the channel's
// buffer capacity; spec.md §4.7 calls the pipeline "unbounded" from a
// producer's perspective, so callers should size it generously (the
// dispatcher is the sole, fast consumer) rather than pass 0.
func New(size int) (Sender, Receiver) {
	ch := make(chan Event, size)
	return Sender{ch: ch}, Receiver{ch: ch}
}
