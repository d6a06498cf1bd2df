package common

// PageMeta holds the data the page shell needs.
type PageMeta struct {
	Title string
	IsDev bool
}
