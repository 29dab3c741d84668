package main

import (
	"github.com/kitestore-next/internal/catalog"
	"github.com/kitestore-next/internal/config"
	"github.com/kitestore-next/internal/constants"
	"github.com/kitestore-next/internal/logger"
	"github.com/kitestore-next/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	store := catalog.NewStore(cfg.Catalog.File)
	products, err := store.Load()
	if err != nil {
		stdLog.Fatalf("failed to load catalog: %v", err)
	}
	if len(products) > 0 {
		stdLog.Printf("catalog already has %d products, nothing to seed", len(products))
		return
	}

	samples := []models.Product{
		{
			Name:        "Apex 9m",
			Price:       45000,
			OldPrice:    intPtr(52000),
			Category:    constants.CategoryKites,
			Badge:       strPtr("SALE"),
			Emoji:       "🪁",
			Description: "Универсальный кайт для фрирайда и прыжков. Стабильный, с широким ветровым диапазоном.",
			Tags:        []string{"фрирайд", "прыжки"},
			Colors: []models.Color{
				{Name: "Красный", Value: "#d32f2f"},
				{Name: "Синий", Value: "#1976d2"},
			},
			Sizes: []models.Size{
				{Label: "7м²", PriceDelta: -4000},
				{Label: "9м²", PriceDelta: 0},
				{Label: "12м²", PriceDelta: 5000},
			},
			Photos: []string{},
		},
		{
			Name:        "Drifter 12m",
			Price:       58000,
			Category:    constants.CategoryKites,
			Badge:       strPtr("NEW"),
			Emoji:       "🪁",
			Description: "Кайт для волн и стрэплесс-фристайла. Отличный дрифт по ветру.",
			Tags:        []string{"волны", "фристайл"},
			Colors: []models.Color{
				{Name: "Оранжевый", Value: "#f57c00"},
			},
			Sizes: []models.Size{
				{Label: "10м²", PriceDelta: -3000},
				{Label: "12м²", PriceDelta: 0},
			},
			Photos: []string{},
		},
		{
			Name:        "Twin Pro 138",
			Price:       32000,
			Category:    constants.CategoryBoards,
			Emoji:       constants.DefaultEmoji,
			Description: "Твинтип для прогрессии. Мягкий флекс, уверенный зацеп на кромке.",
			Tags:        []string{"твинтип"},
			Colors:      []models.Color{},
			Sizes: []models.Size{
				{Label: "136", PriceDelta: 0},
				{Label: "138", PriceDelta: 0},
				{Label: "141", PriceDelta: 1500},
			},
			Photos: []string{},
		},
		{
			Name:        "Comfort Harness",
			Price:       14000,
			Category:    constants.CategoryHarnesses,
			Emoji:       constants.DefaultEmoji,
			Description: "Сидячая трапеция с мягкой спинкой, подходит для обучения.",
			Tags:        []string{"трапеция"},
			Colors: []models.Color{
				{Name: "Чёрный", Value: "#212121"},
			},
			Sizes: []models.Size{
				{Label: "S", PriceDelta: 0},
				{Label: "M", PriceDelta: 0},
				{Label: "L", PriceDelta: 0},
			},
			Photos: []string{},
		},
		{
			Name:        "Bar 52cm",
			Price:       21000,
			Category:    constants.CategoryAccessories,
			Emoji:       constants.DefaultEmoji,
			Description: "Планка с чикен-лупом и страховкой, стропы 24 метра.",
			Tags:        []string{"планка"},
			Colors:      []models.Color{},
			Sizes:       []models.Size{},
			Photos:      []string{},
		},
	}

	for _, sample := range samples {
		sample.ID = catalog.NextID(products)
		products = append(products, sample)
		stdLog.Printf("seeded product %d: %s", sample.ID, sample.Name)
	}

	if err := store.Save(products); err != nil {
		stdLog.Fatalf("failed to save catalog: %v", err)
	}
	stdLog.Printf("seeded %d products into %s", len(samples), cfg.Catalog.File)
}
