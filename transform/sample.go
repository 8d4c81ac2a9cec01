package transform

import (
	"github.com/andys/csvforge/table"
	"github.com/brianvoe/gofakeit/v7"
)

var sampleCategories = []string{"A", "B", "C"}

// SampleDataset generates a demonstration dataset with the standard
// sample columns: sequential id, a category letter, an integer value1
// in [10,50) and a float value2 in [0,100). A non-zero seed makes the
// output reproducible.
func SampleDataset(rows int, seed uint64) *table.Dataset {
	faker := gofakeit.New(seed)

	ds := &table.Dataset{
		Schema: &table.Schema{Columns: []table.Column{
			{Name: "id", Type: table.Int},
			{Name: "category", Type: table.String},
			{Name: "value1", Type: table.Int},
			{Name: "value2", Type: table.Float},
		}},
		Rows: make([]map[string]interface{}, 0, rows),
	}

	for i := 0; i < rows; i++ {
		ds.Rows = append(ds.Rows, map[string]interface{}{
			"id":       int64(i + 1),
			"category": faker.RandomString(sampleCategories),
			"value1":   int64(faker.IntRange(10, 49)),
			"value2":   faker.Float64Range(0, 100),
		})
	}

	return ds
}
