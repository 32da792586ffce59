package resume

import (
	"bytes"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
)

// ExtractText pulls plain text out of .docx bytes locally. It backs up the
// parser when the parser leaves raw_text empty.
func ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty document")
	}
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to extract docx text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
