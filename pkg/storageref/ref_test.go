package storageref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		container string
		path      string
	}{
		{
			name:      "public url",
			in:        "https://host/storage/v1/object/public/study_notes/user123/1700000000_ab12cd34.pdf",
			container: "study_notes",
			path:      "user123/1700000000_ab12cd34.pdf",
		},
		{
			name:      "bare",
			in:        "study_notes/user123/file.pdf",
			container: "study_notes",
			path:      "user123/file.pdf",
		},
		{
			name:      "url without access segment",
			in:        "http://127.0.0.1:8080/storage/v1/object/study_notes/a/b/c.pdf",
			container: "study_notes",
			path:      "a/b/c.pdf",
		},
		{
			name:      "escaped path",
			in:        "https://host/storage/v1/object/public/study_notes/u1/my%20notes.pdf",
			container: "study_notes",
			path:      "u1/my notes.pdf",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.container, ref.Container)
			assert.Equal(t, tc.path, ref.Path)
		})
	}
}

func TestParse_Unparsable(t *testing.T) {
	for _, in := range []string{
		"",
		"justafilename.pdf",
		"https://host/files/study_notes/a.pdf",
		"https://host/storage/v1/object/public/study_notes",
		"https://host/storage/v1/object/public/",
		"study_notes/",
	} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrUnparsable, in)
	}
}

func TestPublicURLRoundTrip(t *testing.T) {
	u := PublicURL("https://api.example.com/", "study_notes", "user123/1700000000_ab12cd34.pdf")
	assert.Equal(t, "https://api.example.com/storage/v1/object/public/study_notes/user123/1700000000_ab12cd34.pdf", u)

	ref, err := Parse(u)
	require.NoError(t, err)
	assert.Equal(t, Ref{Container: "study_notes", Path: "user123/1700000000_ab12cd34.pdf"}, ref)
}
