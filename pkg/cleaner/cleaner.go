// Package cleaner provides interfaces and implementations for cleaning
// extracted page text. Cleaners strip repeated boilerplate (navigation,
// headers, footers) so that only real page content reaches the output.
package cleaner

// Cleaner transforms extracted text into a cleaned form.
type Cleaner interface {
	// Clean transforms the input text.
	Clean(text string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
