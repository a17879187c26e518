package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/foodsnap/backend/internal/models"
	"github.com/pageza/foodsnap/backend/internal/testhelpers"
)

// fixedClock returns successive timestamps one minute apart
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func TestAnalysisStore_Append(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	store := NewAnalysisStore(db)
	ctx := context.Background()

	social := "post"
	first := &models.FoodAnalysis{ID: 42, Ingredients: "eggs", AnalysisResult: "omelette", SocialContent: &social}
	id1, err := store.Append(ctx, first)
	require.NoError(t, err)

	id2, err := store.Append(ctx, &models.FoodAnalysis{Ingredients: "rice", AnalysisResult: "pilaf"})
	require.NoError(t, err)

	assert.NotEqual(t, uint(42), id1, "caller-supplied IDs are ignored")
	assert.Greater(t, id2, id1)
	assert.False(t, first.CreatedAt.IsZero())

	var stored models.FoodAnalysis
	require.NoError(t, db.First(&stored, id1).Error)
	assert.Equal(t, "eggs", stored.Ingredients)
	assert.Equal(t, "omelette", stored.AnalysisResult)
	assert.Equal(t, "post", stored.Social())
	assert.Equal(t, models.AnalysisStatusCompleted, stored.Status)
}

func TestAnalysisStore_RecentHistory(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		store := NewAnalysisStore(testhelpers.SetupTestDatabase(t))

		entries, err := store.RecentHistory(context.Background(), DefaultHistoryLimit)
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("newest first and capped at the limit", func(t *testing.T) {
		store := NewAnalysisStore(testhelpers.SetupTestDatabase(t))
		store.now = fixedClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
		ctx := context.Background()

		for i := 0; i < 12; i++ {
			_, err := store.Append(ctx, &models.FoodAnalysis{
				Ingredients:    fmt.Sprintf("ingredients %d", i),
				AnalysisResult: fmt.Sprintf("result %d", i),
			})
			require.NoError(t, err)
		}

		entries, err := store.RecentHistory(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, DefaultHistoryLimit)

		assert.Equal(t, "ingredients 11", entries[0].Ingredients)
		assert.Equal(t, "ingredients 2", entries[len(entries)-1].Ingredients)
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i].Timestamp.After(entries[i-1].Timestamp))
		}
	})

	t.Run("identical timestamps fall back to id order", func(t *testing.T) {
		store := NewAnalysisStore(testhelpers.SetupTestDatabase(t))
		instant := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return instant }
		ctx := context.Background()

		idA, err := store.Append(ctx, &models.FoodAnalysis{Ingredients: "a", AnalysisResult: "a"})
		require.NoError(t, err)
		idB, err := store.Append(ctx, &models.FoodAnalysis{Ingredients: "b", AnalysisResult: "b"})
		require.NoError(t, err)

		entries, err := store.RecentHistory(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, idB, entries[0].ID)
		assert.Equal(t, idA, entries[1].ID)
	})

	t.Run("long fields are truncated", func(t *testing.T) {
		store := NewAnalysisStore(testhelpers.SetupTestDatabase(t))
		ctx := context.Background()

		long := strings.Repeat("помидор ", 30)
		_, err := store.Append(ctx, &models.FoodAnalysis{Ingredients: long, AnalysisResult: strings.Repeat("x", 250)})
		require.NoError(t, err)

		entries, err := store.RecentHistory(ctx, DefaultHistoryLimit)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		assert.Equal(t, string([]rune(long)[:100])+"...", entries[0].Ingredients)
		assert.Equal(t, strings.Repeat("x", 100)+"...", entries[0].AnalysisPreview)
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"short", "eggs", "eggs"},
		{"exactly the limit", strings.Repeat("a", 100), strings.Repeat("a", 100)},
		{"one over", strings.Repeat("a", 101), strings.Repeat("a", 100) + "..."},
		{"multibyte", strings.Repeat("я", 120), strings.Repeat("я", 100) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.input, previewLength))
		})
	}
}
