package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readInitialSchema(t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	return string(content)
}

// Deleting a user row must take the profile, its enrollments and its refresh
// tokens with it; DeleteUser relies on this chain instead of issuing the
// deletes itself.
func TestInitialSchemaCascadesFromUsers(t *testing.T) {
	schema := readInitialSchema(t)

	assert.Contains(t, schema, "id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE")
	assert.Contains(t, schema, "profile_id BIGINT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE")
	assert.Contains(t, schema, "user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE")
}

// The content tree cascades the same way: course deletion removes modules,
// module deletion removes videos and course deletion removes enrollments.
func TestInitialSchemaCascadesContentTree(t *testing.T) {
	schema := readInitialSchema(t)

	assert.Contains(t, schema, "course_id BIGINT NOT NULL REFERENCES courses(id) ON DELETE CASCADE")
	assert.Contains(t, schema, "module_id BIGINT NOT NULL REFERENCES modules(id) ON DELETE CASCADE")
}
