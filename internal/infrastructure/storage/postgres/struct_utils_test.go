package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quarryledger/internal/core/entity"
	"quarryledger/internal/core/id"
)

type mockCatalogRow struct {
	ID   id.ID  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`

	Ignored string `db:"-" json:"ignored"`
	NoTag   string

	entity.Owned
	entity.SoftDelete
}

func TestExtractDBColumnsFlattensEmbedded(t *testing.T) {
	cols := ExtractDBColumns[mockCatalogRow]()

	expected := []string{
		"id", "name", "created_by", "created_by_name", "created_at", "is_deleted", "deleted_at",
	}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expected), "untagged and ignored fields stay out")
}

func TestStructToMapUsesDBTags(t *testing.T) {
	now := time.Now().UTC()
	row := mockCatalogRow{
		ID:      id.New(),
		Name:    "Blue Metal",
		Ignored: "skip me",
		NoTag:   "skip me too",
		Owned: entity.Owned{
			CreatedBy:     "user-1",
			CreatedByName: "Ravi",
			CreatedAt:     now,
		},
		SoftDelete: entity.SoftDelete{
			IsDeleted: true,
			DeletedAt: &now,
		},
	}

	m := StructToMap(row)

	assert.Equal(t, row.ID, m["id"])
	assert.Equal(t, "Blue Metal", m["name"])
	assert.Equal(t, "user-1", m["created_by"])
	assert.Equal(t, "Ravi", m["created_by_name"])
	assert.Equal(t, true, m["is_deleted"])
	assert.Equal(t, &now, m["deleted_at"])
	_, hasIgnored := m["-"]
	assert.False(t, hasIgnored)
}
