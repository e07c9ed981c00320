package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"p9e.in/mtmaterial/config"
	"p9e.in/mtmaterial/models"
)

const (
	maxUploadSizeBytes int64 = 10 * 1024 * 1024
	maxImageDimension        = 2000
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// useGCS reports whether uploads go to Google Cloud Storage instead of the
// local filesystem. Cloud Run sets K_SERVICE.
func useGCS() bool {
	return os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""
}

// UploadAttachment accepts one photo plus an optional category tag, stores
// the bytes (local disk or GCS depending on environment) and only then writes
// the attachment metadata row. The row stays unlinked until a submission
// claims it.
func UploadAttachment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSizeBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Keine Datei hochgeladen")
		return
	}
	defer file.Close()

	category := strings.TrimSpace(r.FormValue("category"))
	if category != "" && !models.ValidPhotoCategory(category) {
		writeError(w, http.StatusBadRequest, "Ungültige Kategorie")
		return
	}

	mime := header.Header.Get("Content-Type")
	if !allowedMimeTypes[mime] {
		writeError(w, http.StatusBadRequest, "Dateityp nicht erlaubt")
		return
	}
	if header.Size > maxUploadSizeBytes {
		writeError(w, http.StatusBadRequest, "Datei zu groß (max. 10MB)")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSizeBytes+1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}
	if int64(len(data)) > maxUploadSizeBytes {
		writeError(w, http.StatusBadRequest, "Datei zu groß (max. 10MB)")
		return
	}

	data, mime = downscaleImage(data, mime)

	storageKey := fmt.Sprintf("%s/%s-%s",
		time.Now().Format("2006/01/02"), uuid.NewString(), sanitizeFilename(header.Filename))

	if useGCS() {
		err = storeGCS(r.Context(), storageKey, data, mime)
	} else {
		err = storeLocal(storageKey, data)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store file: "+err.Error())
		return
	}

	attachment := models.Attachment{
		StorageKey: storageKey,
		Filename:   header.Filename,
		Mime:       mime,
		Size:       int64(len(data)),
	}
	if category != "" {
		attachment.Category = &category
	}
	if err := config.DB.Create(&attachment).Error; err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, attachment)
}

// downscaleImage re-encodes oversized JPEG/PNG photos to a bounded JPEG.
// Formats the decoder does not handle (webp, heic) are stored untouched.
func downscaleImage(data []byte, mime string) ([]byte, string) {
	if mime != "image/jpeg" && mime != "image/png" {
		return data, mime
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, mime
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxImageDimension && bounds.Dy() <= maxImageDimension {
		return data, mime
	}

	resized := imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return data, mime
	}
	return buf.Bytes(), "image/jpeg"
}

func sanitizeFilename(name string) string {
	name = path.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}
