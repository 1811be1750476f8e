// services/catalog.go - Paged catalog composition over priority partitions
package services

import (
	"apexfit/models"
)

// Partition is one independently ordered, independently countable slice of
// the challenge catalog.
type Partition interface {
	Count() (int64, error)
	Fetch(offset, limit int) ([]models.Challenge, error)
}

// CatalogPage is a single composed page window.
type CatalogPage struct {
	Items      []models.Challenge `json:"items"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
	TotalCount int64              `json:"total_count"`
}

// DefaultPageSize matches the catalog grid on the client.
const DefaultPageSize = 12

// ComposeCatalog builds one page of the challenge listing out of the given
// partitions, walked in priority order, without materializing the full
// corpus. A global skip is consumed partition by partition: partitions wholly
// before the window contribute only their count; the partition the window
// starts in is fetched from its local offset; fetching continues until the
// page budget is spent. Out-of-range page numbers are clamped, never errors.
//
// Counting and fetching are two separate reads per partition; if membership
// changes in between, a page may be one item short or long of the stated
// total. That drift is accepted, eventually-consistent behavior.
func ComposeCatalog(page, pageSize int, partitions ...Partition) (*CatalogPage, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	counts := make([]int64, len(partitions))
	var total int64
	for i, p := range partitions {
		n, err := p.Count()
		if err != nil {
			return nil, err
		}
		counts[i] = n
		total += n
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	skip := int64(page-1) * int64(pageSize)
	budget := pageSize
	items := make([]models.Challenge, 0, pageSize)

	for i, p := range partitions {
		if budget == 0 {
			break
		}
		if skip >= counts[i] {
			skip -= counts[i]
			continue
		}
		want := counts[i] - skip
		if int64(budget) < want {
			want = int64(budget)
		}
		fetched, err := p.Fetch(int(skip), int(want))
		if err != nil {
			return nil, err
		}
		items = append(items, fetched...)
		budget -= len(fetched)
		skip = 0
	}

	return &CatalogPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}
