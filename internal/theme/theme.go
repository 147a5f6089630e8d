package theme

// Theme decorates the parts of a printed result.
type Theme interface {
	Label(s string) string
	Value(s string) string
	PP(s string) string
	Stars(stars float64, s string) string
	Warn(s string) string
}
