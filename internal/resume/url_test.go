package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDownloadURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "google docs edit url",
			in:   "https://docs.google.com/document/d/ABC123/edit",
			want: "https://docs.google.com/document/d/ABC123/export?format=docx",
		},
		{
			name: "google docs url with query and fragment",
			in:   "https://docs.google.com/document/d/ABC-123_x/edit?usp=sharing#heading=h.1",
			want: "https://docs.google.com/document/d/ABC-123_x/export?format=docx",
		},
		{
			name: "google docs uppercase host",
			in:   "https://DOCS.GOOGLE.COM/document/d/XYZ/view",
			want: "https://docs.google.com/document/d/XYZ/export?format=docx",
		},
		{name: "direct docx", in: "https://host/file.docx", want: "https://host/file.docx"},
		{name: "direct docx uppercase", in: "https://host/FILE.DOCX", want: "https://host/FILE.DOCX"},
		{
			name: "already an export url",
			in:   "https://docs.google.com/document/d/ABC123/export?format=docx",
			want: "https://docs.google.com/document/d/ABC123/export?format=docx",
		},
		{
			name: "export query wins over id rewrite",
			in:   "https://docs.google.com/document/d/ABC123/export?format=docx&tab=t.0",
			want: "https://docs.google.com/document/d/ABC123/export?format=docx&tab=t.0",
		},
		{name: "other url unchanged", in: "https://files.example.com/resume?id=7", want: "https://files.example.com/resume?id=7"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildDownloadURL(tt.in))
		})
	}
}

func TestDocumentID(t *testing.T) {
	assert.Equal(t, "ABC123", DocumentID("https://docs.google.com/document/d/ABC123/export?format=docx"))
	assert.Equal(t, "ABC123", DocumentID("docs.google.com/document/d/ABC123"))
	assert.Equal(t, "", DocumentID("https://host/file.docx"))
}
