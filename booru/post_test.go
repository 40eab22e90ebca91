package booru

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRatingSubfolder(t *testing.T) {
	tests := []struct {
		rating Rating
		want   string
	}{
		{RatingSensitive, "sensitive"},
		{RatingQuestionable, "questionable"},
		{RatingExplicit, "explicit"},
		{RatingGeneral, "general"},
		{RatingUnknown, "unknown"},
		{Rating('x'), "unknown"},
		{Rating('S'), "unknown"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.rating.Subfolder(), "rating=%q", byte(tt.rating))
	}
}

func TestRatingUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want Rating
	}{
		{`"s"`, RatingSensitive},
		{`"q"`, RatingQuestionable},
		{`"e"`, RatingExplicit},
		{`"g"`, RatingGeneral},
		{`"z"`, Rating('z')},
		{`""`, RatingUnknown},
		{`"explicit"`, RatingUnknown},
		{`null`, RatingUnknown},
		{`7`, RatingUnknown},
	}

	for _, tt := range tests {
		var r Rating
		require.NoError(t, json.Unmarshal([]byte(tt.in), &r), "in=%s", tt.in)
		require.Equal(t, tt.want, r, "in=%s", tt.in)
	}
}

func TestPostUnmarshal(t *testing.T) {
	in := `{
		"id": 7,
		"score": -3,
		"rating": "g",
		"file_ext": "zip",
		"file_url": "http://x/7.zip",
		"large_file_url": "http://x/7.webm",
		"tag_string": "ignored"
	}`

	var p Post
	require.NoError(t, json.Unmarshal([]byte(in), &p))
	require.Equal(t, 7, p.ID)
	require.Equal(t, -3, p.Score)
	require.Equal(t, RatingGeneral, p.Rating)
	require.Equal(t, "zip", p.FileExt)
	require.NotNil(t, p.FileURL)
	require.Equal(t, "http://x/7.zip", *p.FileURL)
	require.NotNil(t, p.LargeFileURL)
	require.Equal(t, "http://x/7.webm", *p.LargeFileURL)
}

func TestPostUnmarshalAbsentURLs(t *testing.T) {
	var p Post
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"file_url":null,"rating":"q"}`), &p))
	require.Nil(t, p.FileURL)
	require.Nil(t, p.LargeFileURL)

	// An empty url is present, not absent.
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"file_url":""}`), &p))
	require.NotNil(t, p.FileURL)
	require.Equal(t, "", *p.FileURL)
}

func TestReadPosts(t *testing.T) {
	dir := t.TempDir()

	single := filepath.Join(dir, "single.json")
	require.NoError(t, os.WriteFile(single, []byte(`{"id":42,"score":17,"rating":"e","file_ext":"jpg"}`), 0644))

	ps, err := ReadPosts(single)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	require.Equal(t, 42, ps[0].ID)
	require.Equal(t, RatingExplicit, ps[0].Rating)

	many := filepath.Join(dir, "many.json")
	require.NoError(t, os.WriteFile(many, []byte("\n[{\"id\":1},{\"id\":2,\"rating\":\"?\"}]\n"), 0644))

	ps, err = ReadPosts(many)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	require.Equal(t, 2, ps[1].ID)
	require.Equal(t, "unknown", ps[1].Rating.Subfolder())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id":`), 0644))
	_, err = ReadPosts(bad)
	require.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = ReadPosts(empty)
	require.Error(t, err)

	_, err = ReadPosts(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
