package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/whiteglove/internal/models"
)

var serviceCodes = []string{"cd", "td", "rocd", "wg"}

func TestFilterNoMatchingTags(t *testing.T) {
	fake := &fakePlatform{
		tags: map[int64][]string{
			100: {"furniture", "sale"},
		},
	}
	filter := NewEligibilityFilter(fake, serviceCodes, testLogger())

	items := []models.LineItem{{ID: 1, ProductID: 100}}

	eligible, err := filter.Filter(items, testSession)
	require.NoError(t, err)
	assert.Empty(t, eligible)
}

func TestFilterAttachesIntersectionTags(t *testing.T) {
	fake := &fakePlatform{
		tags: map[int64][]string{
			100: {"furniture", "wg", "td"},
			200: {"wg"},
		},
	}
	filter := NewEligibilityFilter(fake, serviceCodes, testLogger())

	items := []models.LineItem{
		{ID: 1, ProductID: 100},
		{ID: 2, ProductID: 200},
	}

	eligible, err := filter.Filter(items, testSession)
	require.NoError(t, err)
	require.Len(t, eligible, 2)
	assert.Equal(t, []string{"wg", "td"}, eligible[0].Tags)
	assert.Equal(t, []string{"wg"}, eligible[1].Tags)
}

func TestFilterDropsUnknownProducts(t *testing.T) {
	fake := &fakePlatform{
		tags: map[int64][]string{
			100: {"wg"},
		},
	}
	filter := NewEligibilityFilter(fake, serviceCodes, testLogger())

	items := []models.LineItem{
		{ID: 1, ProductID: 100},
		{ID: 2, ProductID: 999},
	}

	eligible, err := filter.Filter(items, testSession)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, int64(1), eligible[0].ID)
}

func TestFilterPreservesInputOrder(t *testing.T) {
	fake := &fakePlatform{
		tags: map[int64][]string{
			100: {"wg"},
			200: {"nope"},
			300: {"cd"},
		},
	}
	filter := NewEligibilityFilter(fake, serviceCodes, testLogger())

	items := []models.LineItem{
		{ID: 1, ProductID: 100},
		{ID: 2, ProductID: 200},
		{ID: 3, ProductID: 300},
	}

	eligible, err := filter.Filter(items, testSession)
	require.NoError(t, err)
	require.Len(t, eligible, 2)
	assert.Equal(t, int64(1), eligible[0].ID)
	assert.Equal(t, int64(3), eligible[1].ID)
}

func TestFilterSharedProductQueriedOnce(t *testing.T) {
	fake := &fakePlatform{
		tags: map[int64][]string{
			100: {"wg"},
		},
	}
	filter := NewEligibilityFilter(fake, serviceCodes, testLogger())

	items := []models.LineItem{
		{ID: 1, ProductID: 100},
		{ID: 2, ProductID: 100},
	}

	eligible, err := filter.Filter(items, testSession)
	require.NoError(t, err)
	assert.Len(t, eligible, 2)
	assert.Equal(t, 1, fake.tagCalls)
}

func TestFilterAllProductsUnknown(t *testing.T) {
	fake := &fakePlatform{tags: map[int64][]string{}}
	filter := NewEligibilityFilter(fake, serviceCodes, testLogger())

	items := []models.LineItem{
		{ID: 1, ProductID: 100},
		{ID: 2, ProductID: 200},
	}

	// Unknown products are a silent drop, not a filter failure.
	eligible, err := filter.Filter(items, testSession)
	require.NoError(t, err)
	assert.Empty(t, eligible)
}

func TestFilterAllLookupsFailed(t *testing.T) {
	fake := &fakePlatform{tagsErr: errors.New("platform down")}
	filter := NewEligibilityFilter(fake, serviceCodes, testLogger())

	items := []models.LineItem{{ID: 1, ProductID: 100}}

	_, err := filter.Filter(items, testSession)
	assert.Error(t, err)
}

func TestFilterEmptyInput(t *testing.T) {
	filter := NewEligibilityFilter(&fakePlatform{}, serviceCodes, testLogger())

	eligible, err := filter.Filter(nil, testSession)
	require.NoError(t, err)
	assert.Empty(t, eligible)
}
