package handle

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"speciesnet-api/api/internal/classify"
	"speciesnet-api/api/internal/store"
	"speciesnet-api/api/internal/upload"
)

func allowedExtensionList() string {
	return strings.Join(upload.Extensions, ", ")
}

func (h *Handle) tooLarge(w http.ResponseWriter) {
	writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{
		"error":   "File too large",
		"message": "The uploaded file exceeds the maximum allowed size",
	})
}

// Classify handles POST /classify: validate, store, run the model, normalize.
func (h *Handle) Classify(w http.ResponseWriter, r *http.Request) {
	h.classify(w, r, false)
}

// ClassifyRaw handles POST /classify/raw: same pipeline, but the model's
// output is returned verbatim instead of normalized.
func (h *Handle) ClassifyRaw(w http.ResponseWriter, r *http.Request) {
	h.classify(w, r, true)
}

func (h *Handle) classify(w http.ResponseWriter, r *http.Request, raw bool) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w)
		return
	}

	if r.ContentLength > h.cfg.MaxUploadBytes {
		h.tooLarge(w)
		return
	}
	// Backstop for chunked bodies that never declared a length.
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(w)
			return
		}
		h.validationError(w, &upload.ValidationError{Kind: upload.MissingField})
		return
	}

	headers := r.MultipartForm.File["image"]
	if len(headers) == 0 {
		// Browsers submit an empty file input as a part with an empty
		// filename; the parser files those under Value, not File.
		if _, ok := r.MultipartForm.Value["image"]; ok {
			h.validationError(w, &upload.ValidationError{Kind: upload.EmptyFilename})
		} else {
			h.validationError(w, &upload.ValidationError{Kind: upload.MissingField})
		}
		return
	}
	header := headers[0]

	safeName, verr := upload.Validate(header.Filename)
	if verr != nil {
		h.validationError(w, verr)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.internalError(w, err)
		return
	}
	defer file.Close()

	path, err := h.store.Save(file, safeName)
	if err != nil {
		h.internalError(w, err)
		return
	}
	// Cleanup runs on every exit path from here on.
	defer h.store.Remove(path)
	log.Printf("saved uploaded file: %s", path)

	preds, err := h.model.Classify(r.Context(), path)
	if err != nil {
		h.classifierError(w, err)
		return
	}

	if raw {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(preds.Raw)
		return
	}

	result := classify.Normalize(preds)
	h.record(r, header, result)
	log.Printf("successfully processed classification for %s", safeName)
	writeJSON(w, http.StatusOK, result)
}

// classifierError maps model-side failures onto the response taxonomy.
func (h *Handle) classifierError(w http.ResponseWriter, err error) {
	var nf *classify.NotFoundError
	if errors.As(err, &nf) {
		log.Printf("speciesnet installation not found: %v", nf)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "SpeciesNet not found",
			"message": "The SpeciesNet installation directory could not be located",
			"details": nf.Error(),
		})
		return
	}
	var ee *classify.ExecError
	if errors.As(err, &ee) {
		log.Printf("speciesnet failed with return code %d, stderr: %s", ee.ExitCode, ee.Stderr)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":       "Model execution failed",
			"message":     "The SpeciesNet model script encountered an error",
			"return_code": ee.ExitCode,
			"stderr":      ee.Stderr,
		})
		return
	}
	var te *classify.TimeoutError
	if errors.As(err, &te) {
		log.Printf("speciesnet timed out after %s", te.Limit)
		writeJSON(w, http.StatusGatewayTimeout, map[string]any{
			"error":   "Model execution timed out",
			"message": "The SpeciesNet model did not finish within " + te.Limit.String(),
		})
		return
	}
	var oe *classify.OutputError
	if errors.As(err, &oe) {
		log.Printf("unparseable speciesnet output: %v", oe.Err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Malformed model output",
			"message": "The SpeciesNet model returned output that could not be parsed",
			"details": oe.Excerpt,
		})
		return
	}
	h.internalError(w, err)
}

// record persists a successful classification when a repository is
// configured. Best effort: recording never blocks or fails the response.
func (h *Handle) record(r *http.Request, header *multipart.FileHeader, result classify.Result) {
	if h.preds == nil {
		return
	}
	rec := &store.PredictionRecord{
		ImageName: header.Filename,
		ImageType: header.Header.Get("Content-Type"),
		ImageSize: header.Size,
		Result:    result,
	}
	if id, err := h.preds.Save(r.Context(), rec); err != nil {
		log.Printf("failed to record prediction for %s: %v", header.Filename, err)
	} else {
		log.Printf("recorded prediction %d for %s", id, header.Filename)
	}
}
