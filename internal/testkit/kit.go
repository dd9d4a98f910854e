package testkit

import (
	"context"

	"healthlens/adapters/lexical"
	"healthlens/domain/retrieval"
	"healthlens/internal"
	ret "healthlens/internal/retrieval"
)

// TestKit bundles a seeded data generator and a pre-populated in-memory
// search index so the demo server and tests run without external backends.
type TestKit struct {
	Generator *DataGenerator
	Searcher  *lexical.Searcher
}

// NewTestKit builds the kit and ingests the built-in demo corpus.
func NewTestKit() (*TestKit, error) {
	kit := &TestKit{
		Generator: NewDataGenerator(DefaultGeneratorConfig()),
		Searcher:  lexical.NewSearcher(),
	}

	ingestor := ret.NewIngestor(kit.Searcher, internal.DefaultLogger)
	ctx := context.Background()

	if _, err := ingestor.Ingest(ctx, "nutrition_docs", demoNutritionDocs); err != nil {
		return nil, err
	}
	if _, err := ingestor.Ingest(ctx, "pubmed_abstracts", demoPubmedDocs); err != nil {
		return nil, err
	}

	return kit, nil
}

var demoNutritionDocs = []retrieval.IngestDocument{
	{
		ID:      "usda-171705",
		Source:  "usda",
		Content: "Chicken breast, skinless, roasted. Per 100 g: 165 kcal, 31 g protein, 3.6 g fat, 0 g carbohydrate. A lean complete protein source commonly used to meet daily protein targets.",
		Extra:   map[string]string{"fdc_id": "171705"},
	},
	{
		ID:      "usda-173944",
		Source:  "usda",
		Content: "Oats, whole grain, raw. Per 100 g: 389 kcal, 16.9 g protein, 6.9 g fat, 66 g carbohydrate of which 10.6 g fiber. Beta-glucan fiber in oats supports LDL cholesterol reduction.",
		Extra:   map[string]string{"fdc_id": "173944"},
	},
	{
		ID:      "usda-175167",
		Source:  "usda",
		Content: "Salmon, Atlantic, farmed, cooked. Per 100 g: 206 kcal, 22 g protein, 12 g fat rich in omega-3 fatty acids EPA and DHA. Oily fish intake twice weekly is widely recommended.",
		Extra:   map[string]string{"fdc_id": "175167"},
	},
}

var demoPubmedDocs = []retrieval.IngestDocument{
	{
		ID:      "pmid-34417979",
		Source:  "pubmed",
		Content: "Daily step counts of 7000 or more were associated with lower all-cause mortality in middle-aged adults. The association plateaued above approximately 10000 steps per day.",
		Extra:   map[string]string{"pmid": "34417979", "title": "Steps per Day and All-Cause Mortality in Middle-aged Adults"},
	},
	{
		ID:      "pmid-28579842",
		Source:  "pubmed",
		Content: "Protein intakes of 1.6 g per kg body weight per day maximized resistance-training induced gains in lean mass; higher intakes conferred no additional benefit in most adults.",
		Extra:   map[string]string{"pmid": "28579842", "title": "Protein Supplementation and Resistance Training Adaptations"},
	},
	{
		ID:      "pmid-25454674",
		Source:  "pubmed",
		Content: "Irregular sleep timing and weekend catch-up sleep, often described as social jet lag, were associated with adverse metabolic markers independent of sleep duration.",
		Extra:   map[string]string{"pmid": "25454674", "title": "Social Jetlag and Metabolic Risk"},
	},
}
