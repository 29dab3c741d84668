package constants

// Catalog category keys.
const (
	CategoryKites       = "kites"
	CategoryBoards      = "boards"
	CategoryHarnesses   = "harnesses"
	CategoryAccessories = "accessories"
)

// CategoryOrder is the fixed presentation order of categories.
var CategoryOrder = []string{
	CategoryKites,
	CategoryBoards,
	CategoryHarnesses,
	CategoryAccessories,
}

// CategoryLabels maps category keys to their display labels.
var CategoryLabels = map[string]string{
	CategoryKites:       "🪁 Кайты",
	CategoryBoards:      "🏄 Доски",
	CategoryHarnesses:   "🦺 Трапеции",
	CategoryAccessories: "🎒 Аксессуары",
}

// IsCategory reports whether key belongs to the fixed category set.
func IsCategory(key string) bool {
	_, ok := CategoryLabels[key]
	return ok
}

// CategoryLabel returns the display label for a category key, falling back
// to the key itself for records written before the set was fixed.
func CategoryLabel(key string) string {
	if label, ok := CategoryLabels[key]; ok {
		return label
	}
	return key
}

// Editable product field keys.
const (
	FieldName        = "name"
	FieldPrice       = "price"
	FieldOldPrice    = "oldPrice"
	FieldDescription = "desc"
	FieldBadge       = "badge"
	FieldTags        = "tags"
	FieldColors      = "colors"
	FieldSizes       = "sizes"
)

// EditFieldOrder is the fixed presentation order of editable fields.
var EditFieldOrder = []string{
	FieldName,
	FieldPrice,
	FieldOldPrice,
	FieldDescription,
	FieldBadge,
	FieldTags,
	FieldColors,
	FieldSizes,
}

// EditFieldLabels maps editable field keys to chat display labels.
var EditFieldLabels = map[string]string{
	FieldName:        "Название",
	FieldPrice:       "Базовая цена (₽)",
	FieldOldPrice:    "Старая цена (₽ или 'нет')",
	FieldDescription: "Описание",
	FieldBadge:       "Бейдж",
	FieldTags:        "Теги (через запятую)",
	FieldColors:      "Цвета (формат: Синий #hex, каждый с новой строки)",
	FieldSizes:       "Размеры (формат: 12м² 0, каждый с новой строки)",
}

// DefaultEmoji decorates product cards that never picked their own.
const DefaultEmoji = "🪁"

// ListPageSize is the admin product list page size.
const ListPageSize = 5
