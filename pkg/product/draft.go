// Package product implements the resource-creation workflow: a local
// draft of a new product's fields, and the single-shot authenticated
// submit that turns the draft into one remote write.
package product

import (
	"strings"

	"github.com/titanstore/storefront/pkg/api"
)

// Field identifies a draft field. Each field owns its input transform,
// selected by identity rather than by comparing names at runtime.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldPrice       Field = "price"
	FieldCategory    Field = "category"
	FieldImageURLs   Field = "imageUrls"
)

// Draft is the client-local, not-yet-persisted product. It has no
// identity; the remote API assigns one on successful creation.
type Draft struct {
	Name        string
	Description string
	Price       string
	Category    string
	ImageURLs   []string
}

// update applies user input to one field. The image-URL field splits its
// comma-separated text into an ordered sequence, preserving order,
// duplicates, and empty entries; whether an entry is acceptable is the
// server's concern. Every other field stores the raw text.
func (d *Draft) update(field Field, value string) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldDescription:
		d.Description = value
	case FieldPrice:
		d.Price = value
	case FieldCategory:
		d.Category = value
	case FieldImageURLs:
		d.ImageURLs = strings.Split(value, ",")
	}
}

// ImageURLText re-joins the URL sequence for display. It reproduces the
// exact text the sequence was split from.
func (d Draft) ImageURLText() string {
	return strings.Join(d.ImageURLs, ",")
}

// input converts the draft to the wire shape.
func (d Draft) input() api.ProductInput {
	return api.ProductInput{
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		ImageURLs:   d.ImageURLs,
	}
}

// clone copies the draft so callers cannot alias the workflow's state.
func (d Draft) clone() Draft {
	out := d
	if d.ImageURLs != nil {
		out.ImageURLs = append([]string(nil), d.ImageURLs...)
	}
	return out
}
