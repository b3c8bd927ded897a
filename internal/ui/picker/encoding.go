package picker

import "github.com/zjrosen/charcode/internal/charcode"

// EncodingTitle is the title of the encoding picker.
const EncodingTitle = "select encoding charset"

// EncodingOptions lists the encodings in display order.
func EncodingOptions() []Option {
	encs := charcode.Encodings()
	options := make([]Option, 0, len(encs))
	for _, enc := range encs {
		options = append(options, Option{
			Label:       enc.String(),
			Value:       enc.String(),
			Description: enc.Description(),
		})
	}
	return options
}

// NewEncodingPicker returns the encoding picker with current highlighted.
func NewEncodingPicker(current charcode.Encoding) Model {
	options := EncodingOptions()
	return New(EncodingTitle, options).SetSelected(FindIndexByValue(options, current.String()))
}
