package classify

import "strings"

// Normalize projects raw model output onto the stable Result schema. Pure and
// total: inputs without a usable animal detection degrade to the all-null,
// zero-score result.
//
// The taxonomy comes from the record's prediction label, a semicolon-delimited
// "id;class;order;family;genus;species;commonName" string; the bbox comes from
// the highest-confidence animal detection; the score is the species
// classifier's, not the detector's.
func Normalize(raw *RawPredictions) Result {
	if raw == nil || len(raw.Predictions) == 0 {
		return Result{}
	}
	p := raw.Predictions[0]

	// Stable max: ties keep the earliest detection.
	var best *Detection
	for i := range p.Detections {
		d := &p.Detections[i]
		if d.Category != animalCategory {
			continue
		}
		if best == nil || d.Conf > best.Conf {
			best = d
		}
	}
	if best == nil {
		// A label without a qualifying animal detection is "no usable
		// detection", even when the label itself is non-empty.
		return Result{}
	}

	var bbox [4]float64
	for i := 0; i < len(best.BBox) && i < 4; i++ {
		bbox[i] = best.BBox[i]
	}

	parts := strings.Split(p.Prediction, ";")

	return Result{
		BiologicalClass: field(parts, 1),
		Order:           field(parts, 2),
		Family:          field(parts, 3),
		Genus:           field(parts, 4),
		Species:         field(parts, 5),
		CommonName:      field(parts, 6),

		Score: p.PredictionScore,

		BBoxX:      ptr(bbox[0]),
		BBoxY:      ptr(bbox[1]),
		BBoxWidth:  ptr(bbox[2]),
		BBoxHeight: ptr(bbox[3]),
	}
}

// field returns the i-th label component, or nil when the component is out of
// range or empty. Index 0 is an internal model identifier and never mapped.
func field(parts []string, i int) *string {
	if i >= len(parts) || parts[i] == "" {
		return nil
	}
	s := parts[i]
	return &s
}

func ptr(f float64) *float64 { return &f }
