package bot

import (
	"errors"
	"testing"
)

func TestDecodeActionRoundTrip(t *testing.T) {
	actions := []Action{
		MainMenu{},
		MyOrders{},
		About{},
		AdminPanel{},
		AddProduct{},
		ListProducts{Page: 3},
		EditChoose{},
		EditProduct{ProductID: 12},
		EditPhotos{ProductID: 12},
		DeleteChoose{},
		DeleteConfirm{ProductID: 7},
		DeleteDo{ProductID: 7},
		PromptOption{Key: "kites"},
		PromptOption{Key: "done"},
		OrderAccept{CustomerChatID: 99123, OrderID: "99123-17"},
		OrderDecline{CustomerChatID: 99123, OrderID: "99123-17"},
	}
	for _, action := range actions {
		decoded, err := DecodeAction(action.Data())
		if err != nil {
			t.Fatalf("decode %q failed: %v", action.Data(), err)
		}
		if decoded != action {
			t.Fatalf("round trip mismatch: %#v != %#v", decoded, action)
		}
	}
}

func TestDecodeActionRejectsGarbage(t *testing.T) {
	for _, data := range []string{
		"",
		"nonsense",
		"admin_list_abc",
		"edit_p_x",
		"del_do_",
		"ord_accept_notanumber_1",
		"ord_accept_123",
	} {
		if _, err := DecodeAction(data); !errors.Is(err, ErrUnknownAction) {
			t.Fatalf("expected ErrUnknownAction for %q, got %v", data, err)
		}
	}
}

func TestDecodeOrderSuffixKeepsUnderscoresInOrderID(t *testing.T) {
	action, err := DecodeAction("ord_accept_42_42_9000")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	accept, ok := action.(OrderAccept)
	if !ok {
		t.Fatalf("expected OrderAccept, got %#v", action)
	}
	if accept.CustomerChatID != 42 || accept.OrderID != "42_9000" {
		t.Fatalf("unexpected split: %+v", accept)
	}
}
