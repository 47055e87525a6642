package email

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBodyFromHTML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "code.html"), []byte(`<h1>{{.Code}}</h1>`), 0o600))

	input := SendEmailInput{To: "user@sjsu.edu", Subject: "code"}
	require.NoError(t, input.GenerateBodyFromHTML(dir, "code.html", struct{ Code string }{"<1234>"}))

	assert.Equal(t, "<h1>&lt;1234&gt;</h1>", input.Body)
}

func TestGenerateBodyFromHTML_MissingTemplate(t *testing.T) {
	input := SendEmailInput{}

	err := input.GenerateBodyFromHTML(t.TempDir(), "missing.html", nil)

	assert.ErrorContains(t, err, "parse file failed")
}

func TestSendEmailInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   SendEmailInput
		wantErr string
	}{
		{"ok", SendEmailInput{To: "user@sjsu.edu", Subject: "s", Body: "b"}, ""},
		{"empty to", SendEmailInput{Subject: "s", Body: "b"}, "empty to"},
		{"empty body", SendEmailInput{To: "user@sjsu.edu", Subject: "s"}, "empty subject/body"},
		{"bad to", SendEmailInput{To: "user", Subject: "s", Body: "b"}, "invalid to email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
