package handle

import (
	"net/http"

	"speciesnet-api/api/internal/upload"
)

var availableEndpoints = []string{
	"/classify (POST)",
	"/classify/raw (POST)",
	"/predictions (GET)",
	"/health (GET)",
}

// Health handles GET /health.
func (h *Handle) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"service":            ServiceName,
		"upload_folder":      h.store.Dir,
		"allowed_extensions": upload.Extensions,
	})
}

// NotFound answers any route the mux does not know.
func (h *Handle) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":               "Endpoint not found",
		"message":             "The requested endpoint does not exist",
		"available_endpoints": availableEndpoints,
	})
}

// Index handles GET /: a static description of the API. The root pattern also
// catches unknown paths, which get the 404 body instead.
func (h *Handle) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        ServiceName,
		"version":     "2.0.0",
		"description": "Backend API for classifying wildlife in camera trap images using SpeciesNet",
		"endpoints": map[string]any{
			"POST /classify": map[string]any{
				"description": "Upload an image for species classification (clean format)",
				"parameters":  map[string]string{"image": "File upload field (multipart/form-data)"},
				"response_format": map[string]string{
					"biologicalClass": "string",
					"order":           "string",
					"family":          "string",
					"genus":           "string",
					"species":         "string",
					"commonName":      "string",
					"score":           "float (0-1)",
					"bboxX":           "float (normalized 0-1)",
					"bboxY":           "float (normalized 0-1)",
					"bboxWidth":       "float (normalized 0-1)",
					"bboxHeight":      "float (normalized 0-1)",
				},
				"example": `curl -X POST -F "image=@your_image.jpg" http://localhost:5000/classify`,
			},
			"POST /classify/raw": map[string]any{
				"description": "Upload an image for species classification (raw SpeciesNet format)",
				"parameters":  map[string]string{"image": "File upload field (multipart/form-data)"},
				"example":     `curl -X POST -F "image=@your_image.jpg" http://localhost:5000/classify/raw`,
			},
			"GET /predictions": map[string]any{
				"description": "List recorded classifications (requires DATABASE_URL)",
			},
			"GET /health": map[string]any{
				"description": "Health check endpoint",
				"example":     "curl -X GET http://localhost:5000/health",
			},
		},
	})
}
