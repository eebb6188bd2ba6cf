package e2e_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/mcncl/structconv/internal/codec"
	"github.com/mcncl/structconv/internal/decoder"
	"github.com/mcncl/structconv/internal/encoder"
	"github.com/mcncl/structconv/internal/models"
	"github.com/mcncl/structconv/internal/protoconv"
	"github.com/stretchr/testify/require"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(depth int, width int) models.JSONObject {
	if depth <= 0 {
		return models.JSONObject{
			"leaf_value": "data",
			"timestamp":  time.Now().Format(time.RFC3339),
			"count":      float64(rand.Intn(100)),
			"enabled":    rand.Intn(2) == 1,
		}
	}

	result := make(models.JSONObject)

	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(depth-1, width)
	}

	return result
}

// generateWideJSON creates a JSON object with many fields at the same level
func generateWideJSON(fieldCount int) models.JSONObject {
	result := make(models.JSONObject)

	for i := 0; i < fieldCount; i++ {
		// Mix different types of fields
		switch i % 5 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", i)
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = float64(i)
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = i%2 == 0
		case 3:
			result[fmt.Sprintf("list_field_%d", i)] = models.JSONArray{float64(i), "x", true}
		case 4:
			result[fmt.Sprintf("object_field_%d", i)] = models.JSONObject{
				"id":    float64(i),
				"name":  fmt.Sprintf("Object %d", i),
				"value": float64(i * 10),
			}
		}
	}

	return result
}

// generateArrayJSON creates an object holding one large array of records
func generateArrayJSON(size int) models.JSONObject {
	rng := rand.New(rand.NewSource(42))
	items := make(models.JSONArray, size)
	for i := 0; i < size; i++ {
		items[i] = models.JSONObject{
			"id":       float64(i),
			"name":     fmt.Sprintf("Item %d", i),
			"value":    rng.Float64() * 100,
			"active":   i%2 == 0,
			"category": fmt.Sprintf("Category %d", i%5),
		}
	}
	return models.JSONObject{"items": items}
}

func benchmarkRoundTrip(b *testing.B, obj models.JSONObject) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = decoder.FromStruct(encoder.ToStruct(obj))
	}
}

// BenchmarkDeepNesting benchmarks conversion of deeply nested objects
func BenchmarkDeepNesting(b *testing.B) {
	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},   // Moderate nesting
		{"Depth5Width2", 5, 2},   // Deep nesting
		{"Depth2Width10", 2, 10}, // Wide but shallow
	}

	for _, depth := range depths {
		b.Run(depth.name, func(b *testing.B) {
			benchmarkRoundTrip(b, generateNestedJSON(depth.depth, depth.width))
		})
	}
}

// BenchmarkWideStructures benchmarks conversion of objects with many fields
func BenchmarkWideStructures(b *testing.B) {
	widths := []struct {
		name       string
		fieldCount int
	}{
		{"Fields10", 10},
		{"Fields100", 100},
		{"Fields1000", 1000},
	}

	for _, width := range widths {
		b.Run(width.name, func(b *testing.B) {
			benchmarkRoundTrip(b, generateWideJSON(width.fieldCount))
		})
	}
}

// BenchmarkArrayProcessing benchmarks conversion of large arrays
func BenchmarkArrayProcessing(b *testing.B) {
	sizes := []struct {
		name      string
		arraySize int
	}{
		{"Array100", 100},
		{"Array1000", 1000},
		{"Array5000", 5000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			benchmarkRoundTrip(b, generateArrayJSON(size.arraySize))
		})
	}
}

// BenchmarkWireFormats compares the tagged and protobuf JSON encodings
func BenchmarkWireFormats(b *testing.B) {
	s := encoder.ToStruct(generateArrayJSON(1000))

	b.Run("Tagged", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			data, err := codec.MarshalStruct(s, false)
			require.NoError(b, err)
			_, err = codec.UnmarshalStruct(data)
			require.NoError(b, err)
		}
	})

	b.Run("ProtoJSON", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			data, err := protoconv.MarshalJSON(s, false)
			require.NoError(b, err)
			_, err = protoconv.UnmarshalJSON(data)
			require.NoError(b, err)
		}
	})
}

// TestGeneratedDataRoundTrips keeps the benchmark inputs honest
func TestGeneratedDataRoundTrips(t *testing.T) {
	for name, obj := range map[string]models.JSONObject{
		"nested": generateNestedJSON(2, 2),
		"wide":   generateWideJSON(20),
		"array":  generateArrayJSON(10),
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, obj, decoder.FromStruct(encoder.ToStruct(obj)))
		})
	}
}
