package segment

import "errors"

var (
	// ErrUnsupportedLanguage indicates no segmenter is registered for a language code.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrModel indicates a registered segmenter failed to load its model.
	ErrModel = errors.New("segmentation model unavailable")
)
