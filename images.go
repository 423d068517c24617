package lonja

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processImage decodes an image from src, resizes it down to
// maxImageWidth when wider, and encodes it as JPEG. Returns metadata
// and the encoded bytes.
func processImage(src io.Reader, originalName string) (Image, []byte, error) {
	decoded, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	decoded = resizeToWidth(decoded, maxImageWidth)
	size := decoded.Bounds().Size()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, decoded, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return Image{
		Filename:     slugifyFilename(originalName) + ".jpg",
		OriginalName: originalName,
		Width:        size.X,
		Height:       size.Y,
		Size:         buf.Len(),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

// resizeToWidth scales img down to the given width, preserving aspect
// ratio. Images at or below the limit pass through untouched.
func resizeToWidth(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= width {
		return img
	}
	height := bounds.Dy() * width / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return Slugify(base)
}

// ensureUniqueFilename appends a counter while the filename collides
// with an existing upload on disk or in the database.
func (a *App) ensureUniqueFilename(img *Image) {
	base := strings.TrimSuffix(img.Filename, ".jpg")
	candidate := img.Filename
	for counter := 2; a.uploadNameTaken(candidate); counter++ {
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
	}
	img.Filename = candidate
}

func (a *App) uploadNameTaken(name string) bool {
	if _, err := os.Stat(filepath.Join(a.Config.StaticDir, uploadsSubdir, name)); err == nil {
		return true
	}
	existing, _ := a.Store.ListImages()
	for _, ex := range existing {
		if ex.Filename == name {
			return true
		}
	}
	return false
}

func (a *App) handleImageUpload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No image file provided"})
	}
	if file.Size > maxUploadSize {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "File too large (max 10MB)"})
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid image", Details: err.Error()})
	}

	a.ensureUniqueFilename(&img)

	dir := filepath.Join(a.Config.StaticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, img.Filename), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := a.Store.SaveImage(img); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, img)
}

func (a *App) handleImageList(c echo.Context) error {
	images, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	if images == nil {
		images = []Image{}
	}
	return c.JSON(http.StatusOK, map[string][]Image{"images": images})
}

func (a *App) handleImageDelete(c echo.Context) error {
	filename := c.Param("filename")
	if filename == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Filename required"})
	}
	// ignore removal error if the file is already gone
	_ = os.Remove(filepath.Join(a.Config.StaticDir, uploadsSubdir, filename))
	if err := a.Store.DeleteImage(filename); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
