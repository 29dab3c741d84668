// Package bot is the chat transport: a Bot API client, callback action
// decoding, menu rendering, order relay, and the long-poll dispatcher that
// feeds administrator input into the dialog state machines.
package bot

import "encoding/json"

// Update is one incoming event from the Bot API.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

// Message is an incoming or sent chat message.
type Message struct {
	MessageID  int         `json:"message_id"`
	From       *User       `json:"from"`
	Chat       Chat        `json:"chat"`
	Text       string      `json:"text"`
	Photo      []PhotoSize `json:"photo"`
	WebAppData *WebAppData `json:"web_app_data"`
}

// User identifies a chat participant.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// Chat identifies a conversation.
type Chat struct {
	ID int64 `json:"id"`
}

// CallbackQuery is a pressed inline button.
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    *User    `json:"from"`
	Message *Message `json:"message"`
	Data    string   `json:"data"`
}

// PhotoSize is one resolution of an uploaded photo. The API sends sizes in
// ascending order; the last entry is the original quality.
type PhotoSize struct {
	FileID   string `json:"file_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileSize int64  `json:"file_size"`
}

// WebAppData carries the payload a mini-app sent back to the chat.
type WebAppData struct {
	Data string `json:"data"`
}

// File is the download handle resolved from a file id.
type File struct {
	FileID   string `json:"file_id"`
	FilePath string `json:"file_path"`
}

// InlineKeyboardMarkup is an inline button grid attached to a message.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// InlineKeyboardButton is one inline button. Exactly one of CallbackData,
// URL, or WebApp is set.
type InlineKeyboardButton struct {
	Text         string      `json:"text"`
	CallbackData string      `json:"callback_data,omitempty"`
	URL          string      `json:"url,omitempty"`
	WebApp       *WebAppInfo `json:"web_app,omitempty"`
}

// WebAppInfo points a button at a mini-app.
type WebAppInfo struct {
	URL string `json:"url"`
}

// apiResponse is the Bot API envelope around every method result.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
	ErrorCode   int             `json:"error_code"`
}

// OutgoingMessage is the sendMessage payload.
type OutgoingMessage struct {
	ChatID      int64                 `json:"chat_id"`
	Text        string                `json:"text"`
	ParseMode   string                `json:"parse_mode,omitempty"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// EditMessage is the editMessageText payload.
type EditMessage struct {
	ChatID      int64                 `json:"chat_id"`
	MessageID   int                   `json:"message_id"`
	Text        string                `json:"text"`
	ParseMode   string                `json:"parse_mode,omitempty"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}
