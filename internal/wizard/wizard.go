package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kitestore-next/internal/catalog"
	"github.com/kitestore-next/internal/constants"
	"github.com/kitestore-next/internal/logger"
	"github.com/kitestore-next/internal/models"
	"github.com/kitestore-next/internal/photos"
	"github.com/kitestore-next/internal/variants"
)

// Step is a creation wizard state. Steps advance strictly in declaration
// order; a failed validation re-enters the same step.
type Step int

const (
	StepName Step = iota
	StepPrice
	StepOldPrice
	StepCategory
	StepBadge
	StepDescription
	StepTags
	StepVariants
	StepPhotos
)

// DoneKey is the option key of the explicit "done" button in photo loops.
const DoneKey = "done"

const cancelledText = "❌ Отменено."

// Wizard drives one product creation dialog. It owns the draft exclusively
// until commit or cancel; the store never sees a partial record.
type Wizard struct {
	step    Step
	draft   models.Product
	provKey string

	store  *catalog.Store
	photos *photos.Manager
	source PhotoSource
}

// NewWizard creates a creation wizard with an empty draft.
func NewWizard(store *catalog.Store, photoManager *photos.Manager, source PhotoSource) *Wizard {
	return &Wizard{
		step:   StepName,
		store:  store,
		photos: photoManager,
		source: source,
		draft: models.Product{
			Emoji:  constants.DefaultEmoji,
			Tags:   []string{},
			Colors: []models.Color{},
			Sizes:  []models.Size{},
			Photos: []string{},
		},
	}
}

// Start returns the opening prompt.
func (w *Wizard) Start() Prompt {
	return Prompt{Text: "➕ *Новый товар — шаг 1/9*\n\nВведите *название* товара:\n\n_/cancel — отменить_"}
}

// Handle consumes one input event and returns the next prompt. A returned
// error is infrastructure failure (storage, photo download), never bad
// user input: bad input re-prompts the current step instead.
func (w *Wizard) Handle(ctx context.Context, event Event) (Prompt, error) {
	if _, ok := event.(Cancel); ok {
		return w.cancel(), nil
	}
	switch w.step {
	case StepName:
		return w.handleName(event), nil
	case StepPrice:
		return w.handlePrice(event), nil
	case StepOldPrice:
		return w.handleOldPrice(event), nil
	case StepCategory:
		return w.handleCategory(event), nil
	case StepBadge:
		return w.handleBadge(event), nil
	case StepDescription:
		return w.handleDescription(event), nil
	case StepTags:
		return w.handleTags(event), nil
	case StepVariants:
		return w.handleVariants(event), nil
	case StepPhotos:
		return w.handlePhotos(ctx, event)
	}
	return Prompt{}, fmt.Errorf("wizard in unknown step %d", w.step)
}

// cancel discards the draft. Provisional assets are cleaned best effort;
// the catalog file is never touched.
func (w *Wizard) cancel() Prompt {
	if w.provKey != "" {
		w.photos.Cleanup(w.provKey)
	}
	return terminal(cancelledText)
}

func (w *Wizard) handleName(event Event) Prompt {
	text, ok := event.(Text)
	if !ok || strings.TrimSpace(text.Value) == "" {
		return Prompt{Text: "⚠️ Введите название текстом:"}
	}
	w.draft.Name = strings.TrimSpace(text.Value)
	w.step = StepPrice
	return Prompt{Text: "Шаг 2/9 — Введите *базовую цену* (₽, только цифры):"}
}

func (w *Wizard) handlePrice(event Event) Prompt {
	text, ok := event.(Text)
	if !ok {
		return Prompt{Text: "⚠️ Только цифры! Повторите:"}
	}
	price, err := variants.ParsePrice(text.Value)
	if err != nil {
		return Prompt{Text: "⚠️ Только цифры! Повторите:"}
	}
	w.draft.Price = price
	w.step = StepOldPrice
	return Prompt{Text: "Шаг 3/9 — Введите *старую цену* (для зачёркивания) или `нет`:"}
}

func (w *Wizard) handleOldPrice(event Event) Prompt {
	text, ok := event.(Text)
	if !ok {
		return Prompt{Text: "⚠️ Цифры или 'нет':"}
	}
	old, err := variants.ParseOptionalPrice(text.Value)
	if err != nil {
		return Prompt{Text: "⚠️ Цифры или 'нет':"}
	}
	w.draft.OldPrice = old
	w.step = StepCategory
	return w.categoryPrompt()
}

func (w *Wizard) categoryPrompt() Prompt {
	options := make([]Option, 0, len(constants.CategoryOrder))
	for _, key := range constants.CategoryOrder {
		options = append(options, Option{Key: key, Label: constants.CategoryLabels[key]})
	}
	return Prompt{Text: "Шаг 4/9 — Выберите *категорию*:", Options: options}
}

func (w *Wizard) handleCategory(event Event) Prompt {
	choice, ok := event.(Choice)
	if !ok || !constants.IsCategory(choice.Key) {
		return w.categoryPrompt()
	}
	w.draft.Category = choice.Key
	w.step = StepBadge
	return Prompt{Text: "Шаг 5/9 — Введите *бейдж* на карточке (ХИТ, NEW, -20% …) или `нет`:"}
}

func (w *Wizard) handleBadge(event Event) Prompt {
	text, ok := event.(Text)
	if !ok {
		return Prompt{Text: "⚠️ Введите бейдж текстом или `нет`:"}
	}
	if !variants.IsNone(text.Value) {
		badge := strings.TrimSpace(text.Value)
		w.draft.Badge = &badge
	}
	w.step = StepDescription
	return Prompt{Text: "Шаг 6/9 — Введите *описание* товара:"}
}

func (w *Wizard) handleDescription(event Event) Prompt {
	text, ok := event.(Text)
	if !ok || strings.TrimSpace(text.Value) == "" {
		return Prompt{Text: "⚠️ Введите описание текстом:"}
	}
	w.draft.Description = strings.TrimSpace(text.Value)
	w.step = StepTags
	return Prompt{Text: "Шаг 7/9 — Введите *теги* через запятую:\nПример: `Фрирайд, Профи, 3-strut`"}
}

func (w *Wizard) handleTags(event Event) Prompt {
	text, ok := event.(Text)
	if !ok {
		return Prompt{Text: "⚠️ Введите теги текстом:"}
	}
	w.draft.Tags = variants.SplitTags(text.Value)
	w.step = StepVariants
	return Prompt{Text: "Шаг 8/9 — Добавьте *цвета и размеры с ценами*.\n\n" +
		"📌 *Формат цветов* (по одному на строку):\n`Синий #1a5fe8`\n`Красный #cc0000`\n\n" +
		"📌 *Формат размеров* (по одному на строку):\n`9м² -10000` (отрицательная дельта)\n`12м² 0` (базовая цена)\n`15м² +12000`\n\n" +
		"Пример сообщения:\n```\nЦВЕТА:\nСиний #0055ff\nЧёрный #111111\n\nРАЗМЕРЫ:\n9м² -10000\n12м² 0\n15м² 12000\n```\n\n" +
		"_Если нет вариантов — напишите `нет`_"}
}

func (w *Wizard) handleVariants(event Event) Prompt {
	text, ok := event.(Text)
	if !ok {
		return Prompt{Text: "⚠️ Введите варианты текстом или `нет`:"}
	}
	w.draft.Colors, w.draft.Sizes = variants.Parse(text.Value)
	w.step = StepPhotos
	return Prompt{
		Text: "Шаг 9/9 — Отправьте *фотографии* товара (можно несколько).\n\n" +
			"📸 Отправьте фото по одному или альбомом.\n" +
			"Когда закончите — нажмите кнопку ✅ Готово.",
		Options: []Option{{Key: DoneKey, Label: "✅ Готово (без фото)"}},
	}
}

func (w *Wizard) handlePhotos(ctx context.Context, event Event) (Prompt, error) {
	switch ev := event.(type) {
	case Photo:
		data, err := w.source.Fetch(ctx, ev.Ref)
		if err != nil {
			return Prompt{}, fmt.Errorf("fetch photo: %w", err)
		}
		if w.provKey == "" {
			w.provKey = photos.NewProvisionalKey()
		}
		url, err := w.photos.Attach(w.provKey, data)
		if err != nil {
			return Prompt{}, err
		}
		w.draft.Photos = append(w.draft.Photos, url)
		return Prompt{
			Text:    fmt.Sprintf("📸 Фото %d добавлено!\n_Отправьте ещё или нажмите Готово._", len(w.draft.Photos)),
			Options: []Option{{Key: DoneKey, Label: "✅ Готово"}},
		}, nil
	case Done:
		return w.commit()
	case Choice:
		if ev.Key == DoneKey {
			return w.commit()
		}
	}
	return Prompt{
		Text:    "📸 Отправьте фото или нажмите Готово.",
		Options: []Option{{Key: DoneKey, Label: "✅ Готово"}},
	}, nil
}

// commit turns the draft into a persisted product: allocate the real id,
// move provisional assets under it, append, save. The draft stays intact
// if any step fails, so the dialog can be retried or cancelled cleanly.
func (w *Wizard) commit() (Prompt, error) {
	products, err := w.store.Load()
	if err != nil {
		return Prompt{}, err
	}
	id := catalog.NextID(products)
	if w.provKey != "" {
		urls, err := w.photos.Finalize(w.provKey, strconv.Itoa(id), w.draft.Photos)
		if err != nil {
			return Prompt{}, err
		}
		w.draft.Photos = urls
	}
	w.draft.ID = id
	products = append(products, w.draft)
	if err := w.store.Save(products); err != nil {
		return Prompt{}, err
	}
	logger.Infow("product_created",
		"product_id", id,
		"category", w.draft.Category,
		"photos", len(w.draft.Photos),
	)

	committed := w.draft
	prompt := terminal(creationSummary(&committed))
	prompt.Product = &committed
	return prompt, nil
}

func creationSummary(p *models.Product) string {
	min, max := p.PriceRange()
	priceInfo := FormatPrice(p.Price) + " ₽"
	if len(p.Sizes) > 0 {
		priceInfo = fmt.Sprintf("%s–%s ₽", FormatPrice(min), FormatPrice(max))
	}
	sizeLabels := make([]string, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizeLabels = append(sizeLabels, s.Label)
	}
	colorNames := make([]string, 0, len(p.Colors))
	for _, c := range p.Colors {
		colorNames = append(colorNames, c.Name)
	}
	sizesStr := strings.Join(sizeLabels, ", ")
	if sizesStr == "" {
		sizesStr = "нет"
	}
	colorsStr := strings.Join(colorNames, ", ")
	if colorsStr == "" {
		colorsStr = "нет"
	}
	photosStr := "нет фото"
	if len(p.Photos) > 0 {
		photosStr = fmt.Sprintf("%d фото", len(p.Photos))
	}
	return fmt.Sprintf(
		"✅ *Товар добавлен!*\n\n"+
			"%s *%s*\n"+
			"💰 %s\n"+
			"🏷 %s\n"+
			"📐 Размеры: %s\n"+
			"🎨 Цвета: %s\n"+
			"📸 Фото: %s\n"+
			"🆔 ID: `%d`",
		p.Emoji, p.Name, priceInfo, constants.CategoryLabel(p.Category),
		sizesStr, colorsStr, photosStr, p.ID,
	)
}
