// Package endpoints builds the URLs of the remote gallery API from a configured base URL.
package endpoints

import "fmt"

const itemsPath = "/api/gallery/items"

// Gallery is the endpoint table for gallery items. Base is used verbatim; ids are interpolated
// without validation using their default format, so a nil id yields a trailing "<nil>" segment.
type Gallery struct {
	Base string
}

func New(base string) Gallery {
	return Gallery{Base: base}
}

func (g Gallery) GetItems() string {
	return g.Base + itemsPath
}

func (g Gallery) CreateItem() string {
	return g.Base + itemsPath
}

func (g Gallery) UpdateItem(id any) string {
	return g.item(id)
}

func (g Gallery) DeleteItem(id any) string {
	return g.item(id)
}

// GetItem addresses a single item for reads.
func (g Gallery) GetItem(id any) string {
	return g.item(id)
}

func (g Gallery) item(id any) string {
	return fmt.Sprintf("%s%s/%v", g.Base, itemsPath, id)
}
