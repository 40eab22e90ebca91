package booru

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Rating is a post's content rating. On the wire it is a single character.
type Rating byte

const (
	RatingUnknown      Rating = 0
	RatingSensitive    Rating = 's'
	RatingQuestionable Rating = 'q'
	RatingExplicit     Rating = 'e'
	RatingGeneral      Rating = 'g'
)

// Subfolder returns the name of the directory that posts with this rating are
// saved to. Unrecognized ratings map to "unknown".
func (r Rating) Subfolder() string {
	switch r {
	case RatingSensitive:
		return "sensitive"
	case RatingQuestionable:
		return "questionable"
	case RatingExplicit:
		return "explicit"
	case RatingGeneral:
		return "general"
	default:
		return "unknown"
	}
}

// UnmarshalJSON decodes a one character rating string. Anything else (null,
// an empty string, a longer string) decodes to RatingUnknown rather than
// failing.
func (r *Rating) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || len(s) != 1 {
		*r = RatingUnknown
		return nil
	}
	*r = Rating(s[0])
	return nil
}

// Post is the metadata record of a single booru post.
type Post struct {
	ID      int    `json:"id"`
	Score   int    `json:"score"`
	Rating  Rating `json:"rating"`
	FileExt string `json:"file_ext"`

	// FileURL is the standard resolution file. LargeFileURL is an
	// alternate, sometimes differently encoded, version of the same file.
	// Either may be absent.
	FileURL      *string `json:"file_url"`
	LargeFileURL *string `json:"large_file_url"`
}

// ReadPosts unmarshals posts from a json file on disk. The file may hold a
// single post object or an array of posts.
func ReadPosts(filename string) ([]Post, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("empty post file: %s", filename)
	}

	if b[0] != '[' {
		var p Post
		if err := json.Unmarshal(b, &p); err != nil {
			return nil, fmt.Errorf("failed to decode post: file=%s: %w", filename, err)
		}
		return []Post{p}, nil
	}

	var ps []Post
	if err := json.Unmarshal(b, &ps); err != nil {
		return nil, fmt.Errorf("failed to decode posts: file=%s: %w", filename, err)
	}

	return ps, nil
}
