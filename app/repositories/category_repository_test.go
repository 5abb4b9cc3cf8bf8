package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aureajoias/aurea/app/models"
)

func TestCategoryCRUD(t *testing.T) {
	db := testDB(t)
	repo := NewCategoryRepository(db)

	category := models.Category{Name: "Colares", Slug: "colares"}
	require.NoError(t, repo.Create(&category))
	require.NotEqual(t, "", category.ID.String())

	bySlug, err := repo.GetBySlug("colares")
	require.NoError(t, err)
	assert.Equal(t, category.ID, bySlug.ID)

	description := "Colares em ouro e prata"
	bySlug.Description = &description
	require.NoError(t, repo.Update(&bySlug))

	byID, err := repo.GetByID(category.ID)
	require.NoError(t, err)
	require.NotNil(t, byID.Description)
	assert.Equal(t, description, *byID.Description)

	require.NoError(t, repo.Delete(category.ID))
	_, err = repo.GetBySlug("colares")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCategoryAllSortedByName(t *testing.T) {
	db := testDB(t)
	repo := NewCategoryRepository(db)

	for _, name := range []string{"Pulseiras", "Anéis", "Colares"} {
		category := models.Category{Name: name, Slug: name}
		require.NoError(t, repo.Create(&category))
	}

	categories, err := repo.All()
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Anéis", categories[0].Name)
}
