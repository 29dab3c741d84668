package bot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kitestore-next/internal/wizard"
)

// OrderItem is one cart line from the storefront mini-app.
type OrderItem struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Size  string `json:"size"`
	Qty   int    `json:"qty"`
	Price int    `json:"price"`
}

// Order is the payload the mini-app sends back through the chat.
type Order struct {
	Items []OrderItem `json:"items"`
	Total int         `json:"total"`
}

// ParseOrder decodes a mini-app order payload.
func ParseOrder(data string) (*Order, error) {
	var order Order
	if err := json.Unmarshal([]byte(data), &order); err != nil {
		return nil, fmt.Errorf("decode order payload: %w", err)
	}
	if len(order.Items) == 0 {
		return nil, errors.New("order has no items")
	}
	return &order, nil
}

// lines renders the cart as one indented line per item.
func (o *Order) lines() string {
	parts := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		line := "  • " + item.Name
		if item.Color != "" {
			line += " (" + item.Color + ")"
		}
		if item.Size != "" {
			line += " " + item.Size
		}
		line += fmt.Sprintf(" × %d — %s ₽", item.Qty, wizard.FormatPrice(item.Price*item.Qty))
		parts = append(parts, line)
	}
	return strings.Join(parts, "\n")
}

// customerOrderText is the confirmation sent back to the ordering chat.
func customerOrderText(orderID string, order *Order) string {
	return fmt.Sprintf(
		"✅ *Заказ #%s принят!*\n\n📋 *Состав:*\n%s\n\n💰 *Итого: %s ₽*\n\n"+
			"Мы свяжемся с вами для подтверждения доставки. 🌊",
		orderID, order.lines(), wizard.FormatPrice(order.Total),
	)
}

// adminOrderText is the relay message shown to the administrator.
func adminOrderText(orderID string, customer *User, order *Order) string {
	name := strings.TrimSpace(customer.FirstName + " " + customer.LastName)
	username := ""
	if customer.Username != "" {
		username = "📱 @" + customer.Username + "\n"
	}
	return fmt.Sprintf(
		"🆕 *Заказ #%s*\n\n👤 [%s](tg://user?id=%d)\n🆔 `%d`\n%s\n"+
			"📋 *Товары:*\n%s\n\n💰 *Сумма: %s ₽*",
		orderID, name, customer.ID, customer.ID, username,
		order.lines(), wizard.FormatPrice(order.Total),
	)
}

func adminOrderMarkup(customerChatID int64, orderID string) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{{
		{Text: "✅ Принять", CallbackData: OrderAccept{CustomerChatID: customerChatID, OrderID: orderID}.Data()},
		{Text: "❌ Отклонить", CallbackData: OrderDecline{CustomerChatID: customerChatID, OrderID: orderID}.Data()},
	}}}
}

func orderAcceptedCustomerText(orderID string) string {
	return fmt.Sprintf("🎉 *Заказ #%s подтверждён!*\nМенеджер свяжется с вами в течение 30 минут.", orderID)
}

func orderDeclinedCustomerText(orderID string) string {
	return fmt.Sprintf("😔 *Заказ #%s отклонён.*\nПожалуйста, свяжитесь с нами.", orderID)
}
