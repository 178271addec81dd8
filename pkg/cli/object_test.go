package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `name: John
age: 30
active: true
scores:
  - 1
  - 2
`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestObjectCommand(t *testing.T) {
	f := writeTestFile(t, "doc.yaml", testDoc)

	out, err := runApp(t, "object", "--file", f, "--name", "Person")
	require.NoError(t, err)

	assert.Contains(t, out, "Analysis of Person object:")
	assert.Contains(t, out, "Data Attributes (name: type):")
	assert.Contains(t, out, "- active: bool")
	assert.Contains(t, out, "- age: int")
	assert.Contains(t, out, "- name: string")
}

func TestObjectCommand_StructuredOutput(t *testing.T) {
	f := writeTestFile(t, "doc.yaml", testDoc)

	out, err := runApp(t, "--format", "json", "object", "--file", f)
	require.NoError(t, err)
	assert.Contains(t, out, `"data_attributes"`)
	assert.Contains(t, out, `"methods"`)
}

func TestObjectCommand_BadFile(t *testing.T) {
	_, err := runApp(t, "object", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestObjectCommand_InvalidDoc(t *testing.T) {
	f := writeTestFile(t, "doc.yaml", "- just\n- a\n- list\n")

	_, err := runApp(t, "object", "--file", f)
	assert.Error(t, err)
}
