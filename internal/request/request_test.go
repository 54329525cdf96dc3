package request

import "testing"

func TestBusDeliversInOrder(t *testing.T) {
	b := NewBus(4)
	defer b.Close()

	if !b.Send(App("about", "About")) || !b.Send(URL("https://example.com", "")) {
		t.Fatal("Send dropped a request on an empty bus")
	}

	first, ok := b.Listen()().(Msg)
	if !ok || first.Request.Kind != OpenApp || first.Request.AppID != "about" {
		t.Errorf("first = %+v", first)
	}
	second, ok := b.Listen()().(Msg)
	if !ok || second.Request.Kind != OpenURL || second.Request.URL != "https://example.com" {
		t.Errorf("second = %+v", second)
	}
}

func TestBusDropsWhenFull(t *testing.T) {
	b := NewBus(1)
	defer b.Close()
	if !b.Send(App("a", "")) {
		t.Fatal("first send failed")
	}
	if b.Send(App("b", "")) {
		t.Error("send on a full bus should report a drop")
	}
}

func TestClosedBus(t *testing.T) {
	b := NewBus(1)
	b.Close()
	b.Close()
	if b.Send(App("a", "")) {
		t.Error("send on a closed bus should fail")
	}
	if msg := b.Listen()(); msg != nil {
		t.Errorf("Listen on a closed bus = %v, want nil", msg)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{OpenApp: "open-app", OpenURL: "open-url", Kind(9): "unknown"}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

func TestDiscard(t *testing.T) {
	if Discard.Send(App("a", "")) {
		t.Error("Discard accepted a request")
	}
}
