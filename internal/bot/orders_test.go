package bot

import (
	"strings"
	"testing"
)

func TestParseOrder(t *testing.T) {
	payload := `{"items":[{"name":"Apex 9m","color":"Синий","size":"9м²","qty":2,"price":45000}],"total":90000}`
	order, err := ParseOrder(payload)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(order.Items) != 1 || order.Total != 90000 {
		t.Fatalf("unexpected order: %+v", order)
	}
	item := order.Items[0]
	if item.Name != "Apex 9m" || item.Qty != 2 || item.Price != 45000 {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestParseOrderRejectsBadPayloads(t *testing.T) {
	for _, payload := range []string{
		"",
		"not json",
		`{"items":[],"total":0}`,
		`{"total":100}`,
	} {
		if _, err := ParseOrder(payload); err == nil {
			t.Fatalf("expected error for payload %q", payload)
		}
	}
}

func TestOrderLinesIncludeVariantsAndTotals(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{Name: "Apex 9m", Color: "Синий", Size: "9м²", Qty: 2, Price: 45000},
			{Name: "Bar", Qty: 1, Price: 12000},
		},
		Total: 102000,
	}
	lines := order.lines()
	if !strings.Contains(lines, "Apex 9m (Синий) 9м² × 2 — 90,000 ₽") {
		t.Fatalf("unexpected first line: %q", lines)
	}
	if !strings.Contains(lines, "Bar × 1 — 12,000 ₽") {
		t.Fatalf("variantless item must skip the color/size parts: %q", lines)
	}

	text := customerOrderText("42-7", order)
	if !strings.Contains(text, "Заказ #42-7") || !strings.Contains(text, "Итого: 102,000 ₽") {
		t.Fatalf("unexpected customer text: %q", text)
	}
}

func TestAdminOrderTextIdentifiesCustomer(t *testing.T) {
	order := &Order{Items: []OrderItem{{Name: "Bar", Qty: 1, Price: 12000}}, Total: 12000}
	customer := &User{ID: 555, FirstName: "Иван", LastName: "Петров", Username: "ivan"}

	text := adminOrderText("555-3", customer, order)
	if !strings.Contains(text, "tg://user?id=555") {
		t.Fatalf("admin text must deep-link the customer: %q", text)
	}
	if !strings.Contains(text, "Иван Петров") || !strings.Contains(text, "@ivan") {
		t.Fatalf("admin text must name the customer: %q", text)
	}

	markup := adminOrderMarkup(555, "555-3")
	accept := markup.InlineKeyboard[0][0].CallbackData
	decoded, err := DecodeAction(accept)
	if err != nil {
		t.Fatalf("accept button data does not decode: %v", err)
	}
	if decoded != (OrderAccept{CustomerChatID: 555, OrderID: "555-3"}) {
		t.Fatalf("unexpected accept action: %#v", decoded)
	}
}
