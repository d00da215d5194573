package source

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

const s3Scheme = "s3://"

// Location identifies a dataset.
type Location struct {
	// Path is set for local files.
	Path string

	// Bucket and Key are set for S3 objects.
	Bucket string
	Key    string
}

// ParseLocation splits raw into a local path or an S3 bucket and key.
func ParseLocation(raw string) (Location, error) {
	if !strings.HasPrefix(strings.ToLower(raw), s3Scheme) {
		return Location{Path: raw}, nil
	}
	rest := raw[len(s3Scheme):]
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || strings.Trim(key, "/") == "" {
		return Location{}, fmt.Errorf("invalid S3 location %q: expected s3://bucket/key", raw)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// IsS3 reports whether the location refers to an S3 object.
func (l Location) IsS3() bool { return l.Bucket != "" }

// Ext returns the lower-cased file extension of the dataset name.
func (l Location) Ext() string {
	if l.IsS3() {
		return strings.ToLower(path.Ext(l.Key))
	}
	return strings.ToLower(filepath.Ext(l.Path))
}

func (l Location) String() string {
	if l.IsS3() {
		return s3Scheme + l.Bucket + "/" + l.Key
	}
	return l.Path
}
