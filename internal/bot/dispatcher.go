package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kitestore-next/internal/logger"
	"github.com/kitestore-next/internal/service"
	"github.com/kitestore-next/internal/wizard"
)

const accessDeniedText = "⛔ Нет доступа."
const actionFailedText = "⚠️ Ошибка, попробуйте ещё раз."

// api is the slice of the Bot API the dispatcher talks to.
type api interface {
	SendMessage(ctx context.Context, msg OutgoingMessage) error
	EditMessageText(ctx context.Context, msg EditMessage) error
	AnswerCallbackQuery(ctx context.Context, callbackID string) error
}

// Dispatcher turns incoming updates into menu renders, catalog operations,
// and dialog state machine transitions. Updates are processed one at a
// time in arrival order; that ordering is what upholds the single-writer
// assumption of the catalog store.
type Dispatcher struct {
	api         api
	sessions    *wizard.Manager
	catalog     *service.CatalogService
	adminChatID int64
	webAppURL   string
}

// NewDispatcher creates an update dispatcher.
func NewDispatcher(client api, sessions *wizard.Manager, catalogSvc *service.CatalogService, adminChatID int64, webAppURL string) *Dispatcher {
	return &Dispatcher{
		api:         client,
		sessions:    sessions,
		catalog:     catalogSvc,
		adminChatID: adminChatID,
		webAppURL:   webAppURL,
	}
}

// HandleUpdate processes one update. Failures are logged, never fatal:
// the poll loop must survive any single bad update.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update Update) {
	var err error
	switch {
	case update.Message != nil:
		err = d.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		err = d.handleCallback(ctx, update.CallbackQuery)
	}
	if err != nil {
		logger.Errorw("update_handling_failed", "update_id", update.UpdateID, "error", err)
	}
}

// notifyFailure tells the chat its action failed before the error is
// logged. A dialog stays on its current step after a failed transition,
// so without this message a dropped photo or a failed save would look
// like the bot simply ignored the input.
func (d *Dispatcher) notifyFailure(ctx context.Context, chatID int64, err error) error {
	if sendErr := d.send(ctx, chatID, actionFailedText, nil); sendErr != nil {
		logger.Warnw("failure_notify_failed", "chat_id", chatID, "error", sendErr)
	}
	return err
}

func (d *Dispatcher) isAdmin(user *User) bool {
	return user != nil && user.ID == d.adminChatID
}

func sessionKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func (d *Dispatcher) handleMessage(ctx context.Context, m *Message) error {
	if m.WebAppData != nil {
		return d.handleOrder(ctx, m)
	}

	text := strings.TrimSpace(m.Text)
	switch {
	case strings.HasPrefix(text, "/start"):
		name := ""
		if m.From != nil {
			name = m.From.FirstName
		}
		menuText, markup := startMenu(name, d.webAppURL, d.isAdmin(m.From))
		return d.send(ctx, m.Chat.ID, menuText, markup)
	case strings.HasPrefix(text, "/admin"):
		if !d.isAdmin(m.From) {
			logger.Warnw("admin_gate_denied", "chat_id", m.Chat.ID)
			return d.send(ctx, m.Chat.ID, accessDeniedText, nil)
		}
		return d.sendAdminPanel(ctx, m.Chat.ID)
	case strings.HasPrefix(text, "/cancel"):
		if !d.isAdmin(m.From) {
			return nil
		}
		prompt, err := d.sessions.Submit(ctx, sessionKey(m.Chat.ID), wizard.Cancel{})
		if errors.Is(err, service.ErrNoActiveSession) {
			return d.send(ctx, m.Chat.ID, "❌ Отменено.", backToAdminMarkup())
		}
		if err != nil {
			return d.notifyFailure(ctx, m.Chat.ID, err)
		}
		return d.send(ctx, m.Chat.ID, prompt.Text, promptMarkup(prompt))
	}

	// Everything else only matters inside an open admin dialog.
	if !d.isAdmin(m.From) {
		return nil
	}
	var event wizard.Event
	if len(m.Photo) > 0 {
		// The API lists photo sizes ascending; take the original.
		event = wizard.Photo{Ref: m.Photo[len(m.Photo)-1].FileID}
	} else if text != "" {
		event = wizard.Text{Value: text}
	} else {
		return nil
	}
	prompt, err := d.sessions.Submit(ctx, sessionKey(m.Chat.ID), event)
	if errors.Is(err, service.ErrNoActiveSession) {
		return nil
	}
	if err != nil {
		return d.notifyFailure(ctx, m.Chat.ID, err)
	}
	return d.send(ctx, m.Chat.ID, prompt.Text, promptMarkup(prompt))
}

func (d *Dispatcher) handleCallback(ctx context.Context, cq *CallbackQuery) error {
	if err := d.api.AnswerCallbackQuery(ctx, cq.ID); err != nil {
		logger.Warnw("callback_answer_failed", "callback_id", cq.ID, "error", err)
	}
	if cq.Message == nil {
		return nil
	}
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID

	action, err := DecodeAction(cq.Data)
	if err != nil {
		logger.Warnw("callback_decode_failed", "data", cq.Data, "error", err)
		return nil
	}

	switch action.(type) {
	case MainMenu:
		text, markup := returnMenu(d.webAppURL, d.isAdmin(cq.From))
		return d.edit(ctx, chatID, messageID, text, markup)
	case MyOrders:
		text, markup := myOrdersView()
		return d.edit(ctx, chatID, messageID, text, markup)
	case About:
		text, markup := aboutView()
		return d.edit(ctx, chatID, messageID, text, markup)
	}

	// Every remaining action mutates the catalog or drives an admin
	// dialog; gate them all.
	if !d.isAdmin(cq.From) {
		logger.Warnw("admin_gate_denied", "chat_id", chatID, "data", cq.Data)
		return d.edit(ctx, chatID, messageID, accessDeniedText, nil)
	}

	switch a := action.(type) {
	case AdminPanel:
		return d.editAdminPanel(ctx, chatID, messageID)
	case AddProduct:
		prompt := d.sessions.StartCreation(sessionKey(chatID))
		return d.edit(ctx, chatID, messageID, prompt.Text, promptMarkup(prompt))
	case ListProducts:
		products, err := d.catalog.All()
		if err != nil {
			return d.notifyFailure(ctx, chatID, err)
		}
		text, markup := productListView(products, a.Page)
		return d.edit(ctx, chatID, messageID, text, markup)
	case EditChoose:
		products, err := d.catalog.All()
		if err != nil {
			return d.notifyFailure(ctx, chatID, err)
		}
		text, markup := editPickerView(products)
		return d.edit(ctx, chatID, messageID, text, markup)
	case EditProduct:
		prompt, err := d.sessions.StartEdit(sessionKey(chatID), a.ProductID)
		if err != nil {
			return d.notifyFailure(ctx, chatID, err)
		}
		return d.edit(ctx, chatID, messageID, prompt.Text, promptMarkup(prompt))
	case EditPhotos:
		prompt, err := d.sessions.StartPhotoReplace(sessionKey(chatID), a.ProductID)
		if err != nil {
			return d.notifyFailure(ctx, chatID, err)
		}
		return d.edit(ctx, chatID, messageID, prompt.Text, promptMarkup(prompt))
	case DeleteChoose:
		products, err := d.catalog.All()
		if err != nil {
			return d.notifyFailure(ctx, chatID, err)
		}
		text, markup := deletePickerView(products)
		return d.edit(ctx, chatID, messageID, text, markup)
	case DeleteConfirm:
		product, err := d.catalog.Get(a.ProductID)
		if errors.Is(err, service.ErrNotFound) {
			return d.edit(ctx, chatID, messageID, "⚠️ Не найден.", backToAdminMarkup())
		}
		if err != nil {
			return d.notifyFailure(ctx, chatID, err)
		}
		text, markup := deleteConfirmView(product)
		return d.edit(ctx, chatID, messageID, text, markup)
	case DeleteDo:
		if err := d.deleteProduct(ctx, chatID, messageID, a.ProductID); err != nil {
			return d.notifyFailure(ctx, chatID, err)
		}
		return nil
	case PromptOption:
		prompt, err := d.sessions.Submit(ctx, sessionKey(chatID), wizard.Choice{Key: a.Key})
		if errors.Is(err, service.ErrNoActiveSession) {
			return nil
		}
		if err != nil {
			return d.notifyFailure(ctx, chatID, err)
		}
		return d.edit(ctx, chatID, messageID, prompt.Text, promptMarkup(prompt))
	case OrderAccept:
		if err := d.send(ctx, a.CustomerChatID, orderAcceptedCustomerText(a.OrderID), nil); err != nil {
			return err
		}
		logger.Infow("order_accepted", "order_id", a.OrderID, "customer_chat_id", a.CustomerChatID)
		return d.send(ctx, chatID, fmt.Sprintf("✅ Заказ #%s принят.", a.OrderID), nil)
	case OrderDecline:
		if err := d.send(ctx, a.CustomerChatID, orderDeclinedCustomerText(a.OrderID), nil); err != nil {
			return err
		}
		logger.Infow("order_declined", "order_id", a.OrderID, "customer_chat_id", a.CustomerChatID)
		return d.send(ctx, chatID, fmt.Sprintf("❌ Заказ #%s отклонён.", a.OrderID), nil)
	}
	return nil
}

func (d *Dispatcher) deleteProduct(ctx context.Context, chatID int64, messageID, productID int) error {
	name := strconv.Itoa(productID)
	if product, err := d.catalog.Get(productID); err == nil {
		name = product.Name
	}
	if err := d.catalog.Delete(productID); err != nil && !errors.Is(err, service.ErrNotFound) {
		return err
	}
	remaining, err := d.catalog.Count()
	if err != nil {
		return err
	}
	text := fmt.Sprintf("✅ Товар *%s* удалён.\nОсталось: %d", name, remaining)
	return d.edit(ctx, chatID, messageID, text, backToAdminMarkup())
}

// handleOrder relays a mini-app order: confirmation to the customer,
// accept/decline notification to the administrator.
func (d *Dispatcher) handleOrder(ctx context.Context, m *Message) error {
	if m.From == nil {
		return nil
	}
	order, err := ParseOrder(m.WebAppData.Data)
	if err != nil {
		logger.Warnw("order_payload_invalid", "chat_id", m.Chat.ID, "error", err)
		return nil
	}
	orderID := fmt.Sprintf("%d-%d", m.From.ID, m.MessageID)

	continueMarkup := &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{{
		{Text: "🛍 Продолжить", WebApp: &WebAppInfo{URL: d.webAppURL}},
	}}}
	if err := d.send(ctx, m.Chat.ID, customerOrderText(orderID, order), continueMarkup); err != nil {
		return err
	}
	if err := d.send(ctx, d.adminChatID, adminOrderText(orderID, m.From, order), adminOrderMarkup(m.Chat.ID, orderID)); err != nil {
		return err
	}
	logger.Infow("order_relayed", "order_id", orderID, "items", len(order.Items), "total", order.Total)
	return nil
}

func (d *Dispatcher) sendAdminPanel(ctx context.Context, chatID int64) error {
	count, err := d.catalog.Count()
	if err != nil {
		return err
	}
	text, markup := adminPanelView(count)
	return d.send(ctx, chatID, text, markup)
}

func (d *Dispatcher) editAdminPanel(ctx context.Context, chatID int64, messageID int) error {
	count, err := d.catalog.Count()
	if err != nil {
		return err
	}
	text, markup := adminPanelView(count)
	return d.edit(ctx, chatID, messageID, text, markup)
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, text string, markup *InlineKeyboardMarkup) error {
	return d.api.SendMessage(ctx, OutgoingMessage{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   "Markdown",
		ReplyMarkup: markup,
	})
}

func (d *Dispatcher) edit(ctx context.Context, chatID int64, messageID int, text string, markup *InlineKeyboardMarkup) error {
	return d.api.EditMessageText(ctx, EditMessage{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   "Markdown",
		ReplyMarkup: markup,
	})
}
