package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchema_ValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(resumeDocumentSchema), &v))
	assert.Equal(t, "ResumeDocument", v["title"])
}

func TestValidateResumeDocument_Valid(t *testing.T) {
	doc := `{
		"candidate": {"name": "Alice", "email": "alice@example.com", "phone": null},
		"education": [{"course": "BSc", "institution": "Uni"}],
		"experience": [{"title": "Engineer", "company": "Acme", "end_date": null}],
		"skills": ["Go", "SQL"],
		"profile": "Builder",
		"achievements": [],
		"raw_text": "..."
	}`
	assert.NoError(t, ValidateResumeDocument([]byte(doc)))
}

func TestValidateResumeDocument_AllFieldsOptional(t *testing.T) {
	assert.NoError(t, ValidateResumeDocument([]byte(`{}`)))
	assert.NoError(t, ValidateResumeDocument([]byte(`null`)))
	assert.NoError(t, ValidateResumeDocument([]byte(`{"skills": null, "candidate": null}`)))
}

func TestValidateResumeDocument_WrongType(t *testing.T) {
	err := ValidateResumeDocument([]byte(`{"skills": "Go, SQL", "candidate": {"name": 42}}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Errors, 2)

	fields := []string{validationErr.Errors[0].Field, validationErr.Errors[1].Field}
	assert.Contains(t, fields, "skills")
	assert.Contains(t, fields, "candidate.name")
}

func TestValidateResumeDocument_RootNotObject(t *testing.T) {
	err := ValidateResumeDocument([]byte(`[1, 2, 3]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateResumeDocument_NotJSON(t *testing.T) {
	err := ValidateResumeDocument([]byte(`{oops`))
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
