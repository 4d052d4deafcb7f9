package classify

// Category tag SpeciesNet's detector assigns to animal boxes. Other tags
// (human, vehicle, blank) are outside this API's contract.
const animalCategory = "1"

// RawPredictions is the parsed shape of the model's predictions file. Raw
// holds the unmodified bytes so the raw endpoint can return the document
// verbatim, unknown fields included.
type RawPredictions struct {
	Predictions []Prediction `json:"predictions"`

	Raw []byte `json:"-"`
}

// Prediction is one per-image record. The model emits exactly one per
// single-image invocation; that ordering contract belongs to the model, not
// to this package.
type Prediction struct {
	FilePath        string      `json:"filepath"`
	Prediction      string      `json:"prediction"`
	PredictionScore float64     `json:"prediction_score"`
	Detections      []Detection `json:"detections"`
}

type Detection struct {
	Category string    `json:"category"`
	Label    string    `json:"label"`
	Conf     float64   `json:"conf"`
	BBox     []float64 `json:"bbox"`
}

// Result is the stable response schema, decoupled from the model's raw
// format. Taxonomy and bbox fields are nullable; Score defaults to 0.
type Result struct {
	BiologicalClass *string `json:"biologicalClass"`
	Order           *string `json:"order"`
	Family          *string `json:"family"`
	Genus           *string `json:"genus"`
	Species         *string `json:"species"`
	CommonName      *string `json:"commonName"`

	Score float64 `json:"score"`

	BBoxX      *float64 `json:"bboxX"`
	BBoxY      *float64 `json:"bboxY"`
	BBoxWidth  *float64 `json:"bboxWidth"`
	BBoxHeight *float64 `json:"bboxHeight"`
}
