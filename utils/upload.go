package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// RejectError marks an upload that failed validation (bad type or size) as
// opposed to a filesystem failure.
type RejectError struct {
	Reason string
}

func (e *RejectError) Error() string { return e.Reason }

var allowedImageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var (
	baseNamePattern = regexp.MustCompile(`[^a-zA-Z0-9]`)
	extPattern      = regexp.MustCompile(`^\.[a-zA-Z0-9]+$`)
)

// GenerateUploadFilename builds a collision-resistant filename from a
// millisecond timestamp, a random hex suffix, and an alphanumeric-only
// version of the original base name plus its extension. The result never
// contains path separators.
func GenerateUploadFilename(original string) string {
	suffix := make([]byte, 6)
	_, _ = rand.Read(suffix)

	ext := strings.ToLower(filepath.Ext(original))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = baseNamePattern.ReplaceAllString(base, "_")
	if base == "" || base == "_" {
		base = "image"
	}

	return fmt.Sprintf("%d-%s-%s%s", time.Now().UnixMilli(), hex.EncodeToString(suffix), base, ext)
}

// SaveImage validates and stores a single uploaded image under dir, returning
// the generated filename. Validation failures return a *RejectError and leave
// no partial file behind. The MIME type is checked twice: the declared
// Content-Type of the part, and a sniff of the first 512 bytes.
func SaveImage(fh *multipart.FileHeader, dir string, maxBytes int64) (string, error) {
	if fh.Size > maxBytes {
		return "", &RejectError{Reason: fmt.Sprintf("image exceeds the maximum size of %d bytes", maxBytes)}
	}

	declared := fh.Header.Get("Content-Type")
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if !allowedImageMIMEs[declared] {
		return "", &RejectError{Reason: "invalid file type, only JPEG, PNG, WebP and GIF images are allowed"}
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	head = head[:n]

	sniffed := http.DetectContentType(head)
	if i := strings.IndexByte(sniffed, ';'); i >= 0 {
		sniffed = strings.TrimSpace(sniffed[:i])
	}
	if !allowedImageMIMEs[sniffed] {
		return "", &RejectError{Reason: "invalid file type, only JPEG, PNG, WebP and GIF images are allowed"}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := GenerateUploadFilename(fh.Filename)
	dstPath := filepath.Join(dir, name)

	out, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}

	fail := func(e error) (string, error) {
		out.Close()
		_ = os.Remove(dstPath)
		return "", e
	}

	if _, err := out.Write(head); err != nil {
		return fail(err)
	}

	// Copy one byte past the limit so oversized streams are detected even
	// when the multipart header lied about the size.
	lr := &io.LimitedReader{R: src, N: maxBytes - int64(n) + 1}
	written, err := io.Copy(out, lr)
	if err != nil {
		return fail(err)
	}
	if int64(n)+written > maxBytes {
		return fail(&RejectError{Reason: fmt.Sprintf("image exceeds the maximum size of %d bytes", maxBytes)})
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dstPath)
		return "", err
	}

	return name, nil
}

// DeleteUpload removes a stored upload by filename. Only the base name is
// used, so traversal outside dir is impossible. Returns whether a file was
// actually removed; a missing file is not an error.
func DeleteUpload(dir, filename string) (bool, error) {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return false, nil
	}
	err := os.Remove(filepath.Join(dir, base))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
