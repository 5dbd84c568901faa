package category

// Category is the public DTO returned by the category API.
// Icon and image hold stored filenames; handlers rewrite them to
// absolute upload URLs before responding.
type Category struct {
	ID    int     `json:"categoryId"`
	Name  string  `json:"categoryName"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Image *string `json:"image,omitempty"`
}
