// Package nutrition aggregates per-ingredient nutrition facts from the
// API Ninjas lookup.
package nutrition

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/recipe-cli/internal/model"
	"github.com/sells-group/recipe-cli/pkg/ninjas"
)

const lookupConcurrency = 4

// Adapter wraps a ninjas.Client with the pipeline's degradation policy.
type Adapter struct {
	client ninjas.Client
}

// NewAdapter creates a nutrition adapter.
func NewAdapter(client ninjas.Client) *Adapter {
	return &Adapter{client: client}
}

// Lookup fetches nutrition facts for one food term and sums the free-tier
// fields across every returned match. A transport failure degrades to an
// all-zero result.
func (a *Adapter) Lookup(ctx context.Context, food string) model.NutritionData {
	var total model.NutritionData

	items, err := a.client.Nutrition(ctx, food)
	if err != nil {
		zap.L().Warn("nutrition: lookup failed",
			zap.String("food", food),
			zap.Error(err),
		)
		return total
	}

	for _, item := range items {
		total.Add(fromItem(item))
	}
	return total
}

// AnalyzeIngredients sums nutrition across all ingredients, field by
// field. Repeated names are looked up repeatedly, not deduplicated.
// Lookups run concurrently; accumulation into the shared total is
// serialized behind a mutex, which is safe because the sum is commutative.
func (a *Adapter) AnalyzeIngredients(ctx context.Context, ingredients []model.Ingredient) model.NutritionData {
	var (
		mu    sync.Mutex
		total model.NutritionData
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)

	for _, ing := range ingredients {
		ing := ing
		g.Go(func() error {
			data := a.Lookup(gCtx, ing.Name)
			mu.Lock()
			total.Add(data)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return total
}

func fromItem(item ninjas.Item) model.NutritionData {
	return model.NutritionData{
		ServingSizeG:        float64(item.ServingSizeG),
		FatTotalG:           float64(item.FatTotalG),
		FatSaturatedG:       float64(item.FatSaturatedG),
		CarbohydratesTotalG: float64(item.CarbohydratesTotalG),
		FiberG:              float64(item.FiberG),
		SugarG:              float64(item.SugarG),
		SodiumMg:            float64(item.SodiumMg),
		PotassiumMg:         float64(item.PotassiumMg),
		CholesterolMg:       float64(item.CholesterolMg),
	}
}
