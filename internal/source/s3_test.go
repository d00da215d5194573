package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyam-logistics/trackseed/internal/logging"
	"github.com/adyam-logistics/trackseed/pkg/trackseed"
)

// objectRoundTripper serves GET requests for path-style bucket/key URLs.
type objectRoundTripper struct {
	mu       sync.Mutex
	objects  map[string][]byte
	requests []*http.Request
}

func (m *objectRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	key := strings.TrimPrefix(req.URL.Path, "/")
	body, ok := m.objects[key]
	if req.Method != http.MethodGet || !ok {
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	}
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(body)), Header: http.Header{
		"Content-Length": {fmt.Sprintf("%d", len(body))},
		"Content-Type":   {"text/csv"},
		"ETag":           {"\"etag\""},
	}}, nil
}

func newMockS3Client(t *testing.T, rt http.RoundTripper) *s3.Client {
	t.Helper()
	client, err := NewS3Client(context.Background(), trackseed.S3Options{
		Endpoint:        "https://mock.s3.local",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
	}, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
	})
	require.NoError(t, err)
	return client
}

func TestNewS3Client_Options(t *testing.T) {
	client, err := NewS3Client(context.Background(), trackseed.S3Options{
		Endpoint:        "http://minio:9000",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
	})
	require.NoError(t, err)

	opts := client.Options()
	assert.Equal(t, "us-east-1", opts.Region)
	assert.True(t, opts.UsePathStyle)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://minio:9000", *opts.BaseEndpoint)

	creds, err := opts.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIA", creds.AccessKeyID)
}

func TestLoad_S3OverHTTP(t *testing.T) {
	rt := &objectRoundTripper{objects: map[string][]byte{
		"ops/exports/tracking.csv": []byte("AWBNO.,STATUS,WEIGHT\nAWB9,Booked,1.5\n"),
	}}
	loader := NewLoader(logging.NewDiscardLogger(), WithS3Client(newMockS3Client(t, rt)))

	rows, err := loader.Load(context.Background(), "s3://ops/exports/tracking.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, trackseed.Row{"AWBNO.": "AWB9", "STATUS": "Booked", "WEIGHT": "1.5"}, rows[0])

	require.Len(t, rt.requests, 1)
	assert.Equal(t, http.MethodGet, rt.requests[0].Method)
	assert.Equal(t, "mock.s3.local", rt.requests[0].URL.Host)
	assert.Equal(t, "/ops/exports/tracking.csv", rt.requests[0].URL.Path)
	assert.Contains(t, rt.requests[0].Header.Get("Authorization"), "Credential=AKIA/")
}

func TestLoad_S3OverHTTPMissingObject(t *testing.T) {
	rt := &objectRoundTripper{objects: map[string][]byte{}}
	loader := NewLoader(logging.NewDiscardLogger(), WithS3Client(newMockS3Client(t, rt)))

	_, err := loader.Load(context.Background(), "s3://ops/DataSet.xlsx")
	require.Error(t, err)
	assert.ErrorIs(t, err, trackseed.ErrSourceRead)
}
