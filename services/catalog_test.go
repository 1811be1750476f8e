package services

import (
	"errors"
	"fmt"
	"testing"

	"apexfit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPartition serves a fixed slice; countOverride simulates membership
// changing between the count and fetch reads.
type memPartition struct {
	items         []models.Challenge
	countOverride *int64
	err           error
}

func (p *memPartition) Count() (int64, error) {
	if p.err != nil {
		return 0, p.err
	}
	if p.countOverride != nil {
		return *p.countOverride, nil
	}
	return int64(len(p.items)), nil
}

func (p *memPartition) Fetch(offset, limit int) ([]models.Challenge, error) {
	if p.err != nil {
		return nil, p.err
	}
	if offset >= len(p.items) {
		return nil, nil
	}
	end := offset + limit
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[offset:end], nil
}

func namedChallenges(prefix string, n int) []models.Challenge {
	out := make([]models.Challenge, n)
	for i := range out {
		out[i] = models.Challenge{ID: uint(i + 1), Name: fmt.Sprintf("%s-%02d", prefix, i+1)}
	}
	return out
}

func names(items []models.Challenge) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Name
	}
	return out
}

func TestComposeCatalogSpansPartitions(t *testing.T) {
	forYou := &memPartition{items: namedChallenges("for-you", 5)}
	others := &memPartition{items: namedChallenges("other", 4)}
	done := &memPartition{items: namedChallenges("done", 3)}

	// Page 1: all of for-you plus the first other.
	page, err := ComposeCatalog(1, 6, forYou, others, done)
	require.NoError(t, err)
	assert.Equal(t, int64(12), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, []string{
		"for-you-01", "for-you-02", "for-you-03", "for-you-04", "for-you-05",
		"other-01",
	}, names(page.Items))

	// Page 2 picks up exactly where page 1 stopped.
	page, err = ComposeCatalog(2, 6, forYou, others, done)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"other-02", "other-03", "other-04",
		"done-01", "done-02", "done-03",
	}, names(page.Items))
}

func TestComposeCatalogConcatenationLaw(t *testing.T) {
	forYou := &memPartition{items: namedChallenges("a", 7)}
	others := &memPartition{items: namedChallenges("b", 5)}
	done := &memPartition{items: namedChallenges("c", 2)}

	var whole []string
	whole = append(whole, names(forYou.items)...)
	whole = append(whole, names(others.items)...)
	whole = append(whole, names(done.items)...)

	// Walking every page at any page size reproduces the concatenation with
	// no gaps or duplicates.
	for _, pageSize := range []int{1, 3, 5, 14, 50} {
		var walked []string
		page := 1
		for {
			got, err := ComposeCatalog(page, pageSize, forYou, others, done)
			require.NoError(t, err)
			walked = append(walked, names(got.Items)...)
			if page >= got.TotalPages {
				break
			}
			page++
		}
		assert.Equal(t, whole, walked, "pageSize=%d", pageSize)
	}
}

func TestComposeCatalogClampsPage(t *testing.T) {
	p := &memPartition{items: namedChallenges("x", 10)}

	// Page 0 and negatives clamp to 1.
	page, err := ComposeCatalog(0, 4, p)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, "x-01", page.Items[0].Name)

	// Beyond the end clamps to the last page.
	page, err = ComposeCatalog(99, 4, p)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, []string{"x-09", "x-10"}, names(page.Items))
}

func TestComposeCatalogEmpty(t *testing.T) {
	page, err := ComposeCatalog(1, 12, &memPartition{}, &memPartition{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalCount)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Empty(t, page.Items)
}

func TestComposeCatalogDefaultPageSize(t *testing.T) {
	p := &memPartition{items: namedChallenges("x", 20)}
	page, err := ComposeCatalog(1, 0, p)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Len(t, page.Items, DefaultPageSize)
}

func TestComposeCatalogCountFetchDrift(t *testing.T) {
	// The count says 5 but an item vanished before the fetch. The page comes
	// back one short of its stated total; that drift is accepted.
	stale := int64(5)
	p := &memPartition{items: namedChallenges("x", 4), countOverride: &stale}

	page, err := ComposeCatalog(1, 12, p)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalCount)
	assert.Len(t, page.Items, 4)
}

func TestComposeCatalogPropagatesErrors(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := ComposeCatalog(1, 12, &memPartition{err: boom})
	assert.ErrorIs(t, err, boom)
}
