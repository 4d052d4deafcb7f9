package handle

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"speciesnet-api/api/internal/classify"
	"speciesnet-api/api/internal/config"
	"speciesnet-api/api/internal/store"
	"speciesnet-api/api/internal/upload"
)

const ServiceName = "SpeciesNet Image Classification API"

// Classifier runs the model against a stored image.
type Classifier interface {
	Classify(ctx context.Context, imagePath string) (*classify.RawPredictions, error)
}

type Handle struct {
	cfg   *config.Config
	store *upload.Store
	model Classifier
	preds *store.PredictionRepo // nil when persistence is disabled
}

func New(cfg *config.Config, st *upload.Store, model Classifier, preds *store.PredictionRepo) *Handle {
	return &Handle{
		cfg:   cfg,
		store: st,
		model: model,
		preds: preds,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handle) methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
		"error":   "Method not allowed",
		"message": "This endpoint does not support the requested HTTP method",
	})
}

// validationError answers client-caused failures. These are 400s and never
// logged at error severity.
func (h *Handle) validationError(w http.ResponseWriter, verr *upload.ValidationError) {
	switch verr.Kind {
	case upload.MissingField:
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "No image field in request",
			"message": `Request must contain a file field named "image"`,
		})
	case upload.EmptyFilename:
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "No file selected",
			"message": "Please select a file to upload",
		})
	case upload.UnsupportedExtension:
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    "Invalid file type",
			"message":  "Allowed file types: " + allowedExtensionList(),
			"filename": verr.Filename,
		})
	}
}

func (h *Handle) internalError(w http.ResponseWriter, err error) {
	log.Printf("unexpected error during image classification: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error":   "Internal server error",
		"message": "An unexpected error occurred during processing",
		"details": err.Error(),
	})
}
