package classify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func animal(conf float64, bbox ...float64) Detection {
	return Detection{Category: "1", Label: "animal", Conf: conf, BBox: bbox}
}

func TestNormalizeFullTaxonomyLabel(t *testing.T) {
	raw := &RawPredictions{Predictions: []Prediction{{
		Prediction:      "uuid-1;Mammalia;Carnivora;Felidae;Panthera;leo;Lion",
		PredictionScore: 0.93,
		Detections:      []Detection{animal(0.88, 0.1, 0.2, 0.3, 0.4)},
	}}}

	res := Normalize(raw)

	require.NotNil(t, res.BiologicalClass)
	require.Equal(t, "Mammalia", *res.BiologicalClass)
	require.Equal(t, "Carnivora", *res.Order)
	require.Equal(t, "Felidae", *res.Family)
	require.Equal(t, "Panthera", *res.Genus)
	require.Equal(t, "leo", *res.Species)
	require.Equal(t, "Lion", *res.CommonName)
	require.Equal(t, 0.93, res.Score)
	require.Equal(t, 0.1, *res.BBoxX)
	require.Equal(t, 0.2, *res.BBoxY)
	require.Equal(t, 0.3, *res.BBoxWidth)
	require.Equal(t, 0.4, *res.BBoxHeight)
}

func TestNormalizeShortLabelLeavesTrailingFieldsNull(t *testing.T) {
	raw := &RawPredictions{Predictions: []Prediction{{
		Prediction:      "uuid-1;Mammalia;Carnivora",
		PredictionScore: 0.5,
		Detections:      []Detection{animal(0.7, 0.1, 0.1, 0.2, 0.2)},
	}}}

	res := Normalize(raw)

	require.Equal(t, "Mammalia", *res.BiologicalClass)
	require.Equal(t, "Carnivora", *res.Order)
	require.Nil(t, res.Family)
	require.Nil(t, res.Genus)
	require.Nil(t, res.Species)
	require.Nil(t, res.CommonName)
	// Score and bbox still come from the record and chosen detection.
	require.Equal(t, 0.5, res.Score)
	require.Equal(t, 0.1, *res.BBoxX)
}

func TestNormalizeEmptyLabelComponentIsNull(t *testing.T) {
	raw := &RawPredictions{Predictions: []Prediction{{
		Prediction:      "uuid-1;Mammalia;;Felidae",
		PredictionScore: 0.4,
		Detections:      []Detection{animal(0.6, 0, 0, 1, 1)},
	}}}

	res := Normalize(raw)

	require.Equal(t, "Mammalia", *res.BiologicalClass)
	require.Nil(t, res.Order)
	require.Equal(t, "Felidae", *res.Family)
}

func TestNormalizeNoPredictions(t *testing.T) {
	require.Equal(t, Result{}, Normalize(&RawPredictions{}))
	require.Equal(t, Result{}, Normalize(nil))
}

func TestNormalizeNoAnimalDetections(t *testing.T) {
	// A non-empty label without a category-1 detection is still "no usable
	// detection".
	raw := &RawPredictions{Predictions: []Prediction{{
		Prediction:      "uuid-1;Mammalia;Carnivora;Felidae;Panthera;leo;Lion",
		PredictionScore: 0.9,
		Detections: []Detection{
			{Category: "2", Label: "person", Conf: 0.95, BBox: []float64{0, 0, 1, 1}},
			{Category: "3", Label: "vehicle", Conf: 0.8, BBox: []float64{0, 0, 1, 1}},
		},
	}}}

	require.Equal(t, Result{}, Normalize(raw))
}

func TestNormalizePicksHighestConfidenceAnimal(t *testing.T) {
	raw := &RawPredictions{Predictions: []Prediction{{
		Prediction:      "uuid-1;Aves",
		PredictionScore: 0.6,
		Detections: []Detection{
			animal(0.55, 0.1, 0.1, 0.1, 0.1),
			{Category: "2", Label: "person", Conf: 0.99, BBox: []float64{0.9, 0.9, 0.1, 0.1}},
			animal(0.72, 0.5, 0.5, 0.2, 0.2),
			animal(0.31, 0.3, 0.3, 0.1, 0.1),
		},
	}}}

	res := Normalize(raw)

	require.Equal(t, 0.5, *res.BBoxX)
	require.Equal(t, 0.5, *res.BBoxY)
	// Score is the classifier's, not the detector's confidence.
	require.Equal(t, 0.6, res.Score)
}

func TestNormalizeTieKeepsFirstDetection(t *testing.T) {
	raw := &RawPredictions{Predictions: []Prediction{{
		Prediction:      "uuid-1;Aves",
		PredictionScore: 0.6,
		Detections: []Detection{
			animal(0.5, 0.1, 0.1, 0.1, 0.1),
			animal(0.5, 0.9, 0.9, 0.1, 0.1),
		},
	}}}

	res := Normalize(raw)
	require.Equal(t, 0.1, *res.BBoxX)
}

func TestNormalizeShortBBoxDefaultsToZero(t *testing.T) {
	raw := &RawPredictions{Predictions: []Prediction{{
		Prediction:      "uuid-1;Aves",
		PredictionScore: 0.6,
		Detections:      []Detection{animal(0.5, 0.25, 0.5)},
	}}}

	res := Normalize(raw)
	require.Equal(t, 0.25, *res.BBoxX)
	require.Equal(t, 0.5, *res.BBoxY)
	require.Equal(t, 0.0, *res.BBoxWidth)
	require.Equal(t, 0.0, *res.BBoxHeight)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := &RawPredictions{Predictions: []Prediction{{
		Prediction:      "uuid-1;Mammalia;Carnivora;Felidae;Panthera;leo;Lion",
		PredictionScore: 0.93,
		Detections:      []Detection{animal(0.88, 0.1, 0.2, 0.3, 0.4)},
	}}}

	require.Equal(t, Normalize(raw), Normalize(raw))
	require.Equal(t, Normalize(&RawPredictions{}), Normalize(&RawPredictions{}))
}
