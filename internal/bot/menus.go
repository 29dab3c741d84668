package bot

import (
	"fmt"
	"strings"

	"github.com/kitestore-next/internal/constants"
	"github.com/kitestore-next/internal/models"
	"github.com/kitestore-next/internal/wizard"
)

const emptyCatalogText = "📭 Каталог пуст."

func backToAdminMarkup() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{{
		{Text: "⚙️ Админ-панель", CallbackData: AdminPanel{}.Data()},
	}}}
}

// startMenu is the greeting shown on /start and "back to menu".
func startMenu(firstName, webAppURL string, isAdmin bool) (string, *InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"🌊 Привет, %s!\n\n🪁 Добро пожаловать в *KITESTORE*\n\nПрофессиональное снаряжение для кайтсёрфинга.",
		firstName,
	)
	rows := [][]InlineKeyboardButton{
		{{Text: "🛍 Открыть магазин", WebApp: &WebAppInfo{URL: webAppURL}}},
		{
			{Text: "📦 Мои заказы", CallbackData: MyOrders{}.Data()},
			{Text: "ℹ️ О нас", CallbackData: About{}.Data()},
		},
	}
	if isAdmin {
		rows = append(rows, []InlineKeyboardButton{
			{Text: "⚙️ Админ-панель", CallbackData: AdminPanel{}.Data()},
		})
	}
	return text, &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// returnMenu is the compact variant of the start menu used when a button
// navigates back instead of a /start command.
func returnMenu(webAppURL string, isAdmin bool) (string, *InlineKeyboardMarkup) {
	_, markup := startMenu("", webAppURL, isAdmin)
	return "🪁 *KITESTORE*\n\nВыберите действие:", markup
}

func aboutView() (string, *InlineKeyboardMarkup) {
	text := "ℹ️ *KITESTORE*\n\nПрофессиональное снаряжение для кайтсёрфинга\n\n" +
		"🌊 Доставка по всей России\n💳 Оплата при получении или онлайн\n" +
		"🔄 Возврат 14 дней\n📞 Поддержка 24/7"
	markup := &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{{
		{Text: "🔙 Назад", CallbackData: MainMenu{}.Data()},
	}}}
	return text, markup
}

func myOrdersView() (string, *InlineKeyboardMarkup) {
	markup := &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{{
		{Text: "🔙 Назад", CallbackData: MainMenu{}.Data()},
	}}}
	return "📦 *Ваши заказы*\n\nИстория пуста.", markup
}

func adminPanelView(productCount int) (string, *InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"⚙️ *Админ-панель KITESTORE*\n\n📦 Товаров в каталоге: *%d*\n\nВыберите действие:",
		productCount,
	)
	markup := &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{{Text: "➕ Добавить товар", CallbackData: AddProduct{}.Data()}},
		{{Text: "📋 Список товаров", CallbackData: ListProducts{Page: 0}.Data()}},
		{{Text: "✏️ Редактировать", CallbackData: EditChoose{}.Data()}},
		{{Text: "🗑 Удалить товар", CallbackData: DeleteChoose{}.Data()}},
		{{Text: "🔙 В главное меню", CallbackData: MainMenu{}.Data()}},
	}}
	return text, markup
}

// productListView renders one admin list page with prev/next navigation.
func productListView(products []models.Product, page int) (string, *InlineKeyboardMarkup) {
	start := page * constants.ListPageSize
	if start >= len(products) || start < 0 {
		return emptyCatalogText, backToAdminMarkup()
	}
	end := start + constants.ListPageSize
	if end > len(products) {
		end = len(products)
	}

	var lines []string
	for _, p := range products[start:end] {
		sizesStr := "—"
		if len(p.Sizes) > 0 {
			sizesStr = fmt.Sprintf("%d р-ров", len(p.Sizes))
		}
		colorsStr := "—"
		if len(p.Colors) > 0 {
			colorsStr = fmt.Sprintf("%d цвета", len(p.Colors))
		}
		photosStr := "📷 нет фото"
		if len(p.Photos) > 0 {
			photosStr = fmt.Sprintf("📸 %d", len(p.Photos))
		}
		lines = append(lines, fmt.Sprintf(
			"%s *%s*  `ID:%d`\n   💰 %s ₽  •  %s\n   %s  •  %s  •  %s",
			p.Emoji, p.Name, p.ID,
			wizard.FormatPrice(p.BasePrice()), constants.CategoryLabel(p.Category),
			photosStr, sizesStr, colorsStr,
		))
	}

	var nav []InlineKeyboardButton
	if page > 0 {
		nav = append(nav, InlineKeyboardButton{Text: "◀️", CallbackData: ListProducts{Page: page - 1}.Data()})
	}
	if end < len(products) {
		nav = append(nav, InlineKeyboardButton{Text: "▶️", CallbackData: ListProducts{Page: page + 1}.Data()})
	}
	var rows [][]InlineKeyboardButton
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, []InlineKeyboardButton{{Text: "🔙 Назад", CallbackData: AdminPanel{}.Data()}})

	text := fmt.Sprintf("📋 *Товары (стр.%d)*\n\n%s", page+1, strings.Join(lines, "\n\n"))
	return text, &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// editPickerView lists products as buttons for the edit flow.
func editPickerView(products []models.Product) (string, *InlineKeyboardMarkup) {
	if len(products) == 0 {
		return emptyCatalogText, backToAdminMarkup()
	}
	var rows [][]InlineKeyboardButton
	for _, p := range products {
		rows = append(rows, []InlineKeyboardButton{{
			Text:         fmt.Sprintf("%s %s", p.Emoji, p.Name),
			CallbackData: EditProduct{ProductID: p.ID}.Data(),
		}})
	}
	rows = append(rows, []InlineKeyboardButton{{Text: "🔙 Назад", CallbackData: AdminPanel{}.Data()}})
	return "✏️ Выберите товар:", &InlineKeyboardMarkup{InlineKeyboard: rows}
}

// deletePickerView lists products as buttons for the delete flow.
func deletePickerView(products []models.Product) (string, *InlineKeyboardMarkup) {
	if len(products) == 0 {
		return emptyCatalogText, backToAdminMarkup()
	}
	var rows [][]InlineKeyboardButton
	for _, p := range products {
		rows = append(rows, []InlineKeyboardButton{{
			Text:         fmt.Sprintf("%s %s (%s₽)", p.Emoji, p.Name, wizard.FormatPrice(p.BasePrice())),
			CallbackData: DeleteConfirm{ProductID: p.ID}.Data(),
		}})
	}
	rows = append(rows, []InlineKeyboardButton{{Text: "🔙 Назад", CallbackData: AdminPanel{}.Data()}})
	return "🗑 Выберите товар для удаления:", &InlineKeyboardMarkup{InlineKeyboard: rows}
}

func deleteConfirmView(p *models.Product) (string, *InlineKeyboardMarkup) {
	text := fmt.Sprintf("🗑 Удалить *%s*?\n\nЭто действие необратимо.", p.Name)
	markup := &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{{
		{Text: "✅ Да, удалить", CallbackData: DeleteDo{ProductID: p.ID}.Data()},
		{Text: "❌ Отмена", CallbackData: AdminPanel{}.Data()},
	}}}
	return text, markup
}

// promptMarkup renders a dialog prompt's options as inline buttons. A
// terminal prompt instead gets the back-to-admin button.
func promptMarkup(prompt wizard.Prompt) *InlineKeyboardMarkup {
	if prompt.Terminal {
		return backToAdminMarkup()
	}
	if len(prompt.Options) == 0 {
		return nil
	}
	rows := make([][]InlineKeyboardButton, 0, len(prompt.Options))
	for _, option := range prompt.Options {
		rows = append(rows, []InlineKeyboardButton{{
			Text:         option.Label,
			CallbackData: PromptOption{Key: option.Key}.Data(),
		}})
	}
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}
