package imagemeta

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/piwi3910/spritepack/internal/apperr"
)

// decodeFile opens path and decodes it according to its (lower-cased)
// extension. PNG/JPEG decoding is delegated to the standard library, BMP
// to golang.org/x/image/bmp, and TGA to the package's own minimal
// decoder.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.New(apperr.Input, "decode", fmt.Errorf("not found: %s", path))
		}
		return nil, apperr.New(apperr.Input, "decode", fmt.Errorf("unreadable: %w", err))
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, apperr.New(apperr.Input, "decode", fmt.Errorf("%s: %w", path, err))
		}
		return img, nil
	case ".bmp":
		img, err := bmp.Decode(f)
		if err != nil {
			return nil, apperr.New(apperr.Input, "decode", fmt.Errorf("%s: %w", path, err))
		}
		return img, nil
	case ".tga":
		img, err := decodeTGA(f)
		if err != nil {
			return nil, apperr.New(apperr.Input, "decode", fmt.Errorf("%s: %w", path, err))
		}
		return img, nil
	default:
		return nil, apperr.New(apperr.Input, "decode", fmt.Errorf("unsupported format: %s", path))
	}
}

// DecodeImage exposes decodeFile for downstream packages (rasterpack)
// that need full pixel data rather than just metadata.
func DecodeImage(path string) (image.Image, error) {
	return decodeFile(path)
}

// RecognizedSuffixes is the case-insensitive set of image file extensions
// the input resolvers treat as recognized images.
var RecognizedSuffixes = []string{".png", ".jpg", ".jpeg", ".bmp", ".tga"}

// IsRecognizedImage reports whether path's extension is one spritepack can
// decode.
func IsRecognizedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range RecognizedSuffixes {
		if ext == s {
			return true
		}
	}
	return false
}
