package service

// ImageProcessor turns raw upload bytes into an opaque storable string
// reference. The store treats the result as a plain text field.
type ImageProcessor interface {
	// Process validates, bounds and encodes an uploaded image.
	Process(data []byte) (string, error)

	// Thumbnail produces a small preview reference from a stored one.
	Thumbnail(stored string) (string, error)
}
