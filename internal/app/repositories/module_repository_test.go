package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Position is assigned inside the insert statement. Over an empty course the
// COALESCE makes the first module position 1; afterwards each insert reads
// max(position)+1 scoped to the same course in the same statement.
func TestCreateModuleSQLAssignsNextPosition(t *testing.T) {
	assert.Contains(t, createModuleSQL, "COALESCE(MAX(position), 0) + 1")
	assert.Contains(t, createModuleSQL, "WHERE course_id = $1")
	assert.Contains(t, createModuleSQL, "INSERT INTO modules (course_id, title, position)")
	assert.Contains(t, createModuleSQL, "RETURNING id, position, created_at")
}
