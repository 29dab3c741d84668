package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kitestore-next/internal/catalog"
	"github.com/kitestore-next/internal/constants"
	"github.com/kitestore-next/internal/logger"
	"github.com/kitestore-next/internal/photos"
	"github.com/kitestore-next/internal/variants"
)

type editStep int

const (
	editChooseField editStep = iota
	editAwaitValue
)

const productNotFoundText = "⚠️ Товар не найден."

// valueHints shows an input example for the fields with a non-obvious
// format.
var valueHints = map[string]string{
	constants.FieldColors: "Пример:\n`Синий #0055ff`\n`Красный #cc0000`",
	constants.FieldSizes:  "Пример:\n`9м² -10000`\n`12м² 0`\n`15м² 12000`",
	constants.FieldTags:   "Пример: `Фрирайд, Профи, LEI`",
}

// Edit drives a single-field edit of one existing product. The target id
// is fixed for the whole dialog; the product is re-loaded at apply time so
// the edit writes on top of the freshest catalog state.
type Edit struct {
	step      editStep
	productID int
	field     string
	store     *catalog.Store
}

// NewEdit creates an edit dialog scoped to productID.
func NewEdit(store *catalog.Store, productID int) *Edit {
	return &Edit{step: editChooseField, productID: productID, store: store}
}

// Start returns the field-choice prompt, or a terminal prompt when the
// product no longer exists.
func (e *Edit) Start() (Prompt, error) {
	products, err := e.store.Load()
	if err != nil {
		return Prompt{}, err
	}
	idx := catalog.IndexByID(products, e.productID)
	if idx < 0 {
		return terminal(productNotFoundText), nil
	}
	options := make([]Option, 0, len(constants.EditFieldOrder))
	for _, key := range constants.EditFieldOrder {
		options = append(options, Option{Key: key, Label: constants.EditFieldLabels[key]})
	}
	return Prompt{
		Text:    fmt.Sprintf("✏️ *%s*\n\nЧто изменить?", products[idx].Name),
		Options: options,
	}, nil
}

// Handle consumes one input event. Bad values for typed fields re-prompt
// in place; a missing product at apply time ends the dialog with a
// user-visible message.
func (e *Edit) Handle(ctx context.Context, event Event) (Prompt, error) {
	if _, ok := event.(Cancel); ok {
		return terminal(cancelledText), nil
	}
	switch e.step {
	case editChooseField:
		return e.handleField(event), nil
	case editAwaitValue:
		return e.handleValue(event)
	}
	return Prompt{}, fmt.Errorf("edit in unknown step %d", e.step)
}

func (e *Edit) handleField(event Event) Prompt {
	choice, ok := event.(Choice)
	if !ok {
		return Prompt{Text: "✏️ Выберите поле кнопкой."}
	}
	if _, known := constants.EditFieldLabels[choice.Key]; !known {
		return Prompt{Text: "✏️ Выберите поле кнопкой."}
	}
	e.field = choice.Key
	e.step = editAwaitValue
	text := fmt.Sprintf("✏️ Новое значение для *%s*:", constants.EditFieldLabels[e.field])
	if hint, ok := valueHints[e.field]; ok {
		text += "\n\n" + hint
	}
	text += "\n\n_/cancel — отменить_"
	return Prompt{Text: text}
}

func (e *Edit) handleValue(event Event) (Prompt, error) {
	text, ok := event.(Text)
	if !ok {
		return Prompt{Text: "⚠️ Введите значение текстом:"}, nil
	}
	value := strings.TrimSpace(text.Value)

	products, err := e.store.Load()
	if err != nil {
		return Prompt{}, err
	}
	idx := catalog.IndexByID(products, e.productID)
	if idx < 0 {
		return terminal(productNotFoundText), nil
	}
	p := &products[idx]

	switch e.field {
	case constants.FieldName:
		if value == "" {
			return Prompt{Text: "⚠️ Название не может быть пустым:"}, nil
		}
		p.Name = value
	case constants.FieldPrice:
		price, err := variants.ParsePrice(value)
		if err != nil {
			return Prompt{Text: "⚠️ Только цифры."}, nil
		}
		p.Price = price
	case constants.FieldOldPrice:
		old, err := variants.ParseOptionalPrice(value)
		if err != nil {
			return Prompt{Text: "⚠️ Цифры или 'нет':"}, nil
		}
		p.OldPrice = old
	case constants.FieldDescription:
		p.Description = value
	case constants.FieldBadge:
		if variants.IsNone(value) {
			p.Badge = nil
		} else {
			badge := value
			p.Badge = &badge
		}
	case constants.FieldTags:
		p.Tags = variants.SplitTags(value)
	case constants.FieldColors:
		p.Colors = variants.ParseColors(value)
	case constants.FieldSizes:
		p.Sizes = variants.ParseSizes(value)
	default:
		return Prompt{}, fmt.Errorf("edit targets unknown field %q", e.field)
	}

	if err := e.store.Save(products); err != nil {
		return Prompt{}, err
	}
	logger.Infow("product_field_updated", "product_id", e.productID, "field", e.field)

	updated := products[idx]
	prompt := terminal(fmt.Sprintf("✅ *%s* обновлено для товара *%s*!",
		constants.EditFieldLabels[e.field], updated.Name))
	prompt.Product = &updated
	return prompt, nil
}

// PhotoReplace drives the photo replacement sub-flow of an existing
// product. Uploads are buffered in memory and only written at the explicit
// done signal, so an interrupted dialog leaves the old photo set intact
// and a zero-upload done is a no-op rather than a wipe.
type PhotoReplace struct {
	productID int
	pending   [][]byte

	store  *catalog.Store
	photos *photos.Manager
	source PhotoSource
}

// NewPhotoReplace creates a photo replacement dialog scoped to productID.
func NewPhotoReplace(store *catalog.Store, photoManager *photos.Manager, source PhotoSource, productID int) *PhotoReplace {
	return &PhotoReplace{productID: productID, store: store, photos: photoManager, source: source}
}

// Start returns the upload prompt, or a terminal prompt when the product
// no longer exists.
func (r *PhotoReplace) Start() (Prompt, error) {
	products, err := r.store.Load()
	if err != nil {
		return Prompt{}, err
	}
	idx := catalog.IndexByID(products, r.productID)
	if idx < 0 {
		return terminal(productNotFoundText), nil
	}
	p := products[idx]
	return Prompt{
		Text: fmt.Sprintf("📸 *Фото для товара %s*\n\nСейчас: %d фото\n\n"+
			"Отправьте новые фото (они заменят старые).\nКогда закончите — нажмите Готово.",
			p.Name, len(p.Photos)),
		Options: []Option{{Key: DoneKey, Label: "✅ Готово"}},
	}, nil
}

// Handle consumes one input event.
func (r *PhotoReplace) Handle(ctx context.Context, event Event) (Prompt, error) {
	switch ev := event.(type) {
	case Cancel:
		return terminal(cancelledText), nil
	case Photo:
		data, err := r.source.Fetch(ctx, ev.Ref)
		if err != nil {
			return Prompt{}, fmt.Errorf("fetch photo: %w", err)
		}
		r.pending = append(r.pending, data)
		return Prompt{
			Text:    fmt.Sprintf("📸 Фото %d загружено!", len(r.pending)),
			Options: []Option{{Key: DoneKey, Label: "✅ Готово"}},
		}, nil
	case Done:
		return r.apply()
	case Choice:
		if ev.Key == DoneKey {
			return r.apply()
		}
	}
	return Prompt{
		Text:    "📸 Отправьте фото или нажмите Готово.",
		Options: []Option{{Key: DoneKey, Label: "✅ Готово"}},
	}, nil
}

func (r *PhotoReplace) apply() (Prompt, error) {
	if len(r.pending) == 0 {
		return terminal("Фото не изменены."), nil
	}
	products, err := r.store.Load()
	if err != nil {
		return Prompt{}, err
	}
	idx := catalog.IndexByID(products, r.productID)
	if idx < 0 {
		return terminal(productNotFoundText), nil
	}
	urls, err := r.photos.ReplaceAll(strconv.Itoa(r.productID), r.pending)
	if err != nil {
		return Prompt{}, err
	}
	products[idx].Photos = urls
	if err := r.store.Save(products); err != nil {
		return Prompt{}, err
	}
	logger.Infow("product_photos_replaced", "product_id", r.productID, "photos", len(urls))

	updated := products[idx]
	prompt := terminal(fmt.Sprintf("✅ Обновлено *%d фото* для *%s*!", len(urls), updated.Name))
	prompt.Product = &updated
	return prompt, nil
}
