package pipeline

import "testing"

func TestSenderReceiverFIFO(t *testing.T) {
	tx, rx := New(4)

	tx.Send(NewConfigWatchEvent("/a"))
	tx.Send(NewDeviceWatchEvent([]string{"/dev/input/event3"}, nil))

	first, ok := rx.Recv()
	if !ok || first.Kind != KindConfigWatch || first.ConfigPath != "/a" {
		t.Fatalf("first = %+v, ok=%v", first, ok)
	}

	second, ok := rx.Recv()
	if !ok || second.Kind != KindDeviceWatch || len(second.Added) != 1 {
		t.Fatalf("second = %+v, ok=%v", second, ok)
	}
}

func TestReceiverSeesCloseAsNotOK(t *testing.T) {
	ch := make(chan Event)
	rx := Receiver{ch: ch}
	close(ch)

	if _, ok := rx.Recv(); ok {
		t.Error("Recv on closed channel returned ok=true")
	}
}
