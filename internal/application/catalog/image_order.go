package catalog

import (
	"sort"

	"github.com/secondhandshop/backend/internal/domain/catalog"
)

// SortImages returns a copy of images in gallery order: sort order, then upload time
func SortImages(images []catalog.ProductImage) []catalog.ProductImage {
	out := make([]catalog.ProductImage, len(images))
	copy(out, images)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
