package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/xerrors"
)

func TestFetch(t *testing.T) {
	t.Run("test HTTPFetch", testHTTPFetch)
	t.Run("test HTTPFetchHeaders", testHTTPFetchHeaders)
	t.Run("test HTTPFetchBadStatus", testHTTPFetchBadStatus)
	t.Run("test HTTPFetchTransportFailure", testHTTPFetchTransportFailure)
	t.Run("test DummyFetch", testDummyFetch)
	t.Run("test DummyFetchFailure", testDummyFetchFailure)
	t.Run("test DummyFetchCount", testDummyFetchCount)
	t.Run("test BadStatusError", testBadStatusError)
}

func testHTTPFetch(t *testing.T) {
	testBody := []byte("test image bytes")

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
		writer.Write(testBody)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(nil)
	defer fetcher.Release()

	result, err := fetcher.Fetch(context.Background(), server.URL, nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, testBody, result.Body)
}

func testHTTPFetchHeaders(t *testing.T) {
	receivedHeaders := map[string]string{}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		receivedHeaders["Authorization"] = request.Header.Get("Authorization")
		receivedHeaders["X-Custom"] = request.Header.Get("X-Custom")
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(server.Client())
	defer fetcher.Release()

	requestHeaders := map[string]string{
		"Authorization": "Bearer testtoken",
		"X-Custom":      "testvalue",
	}

	result, err := fetcher.Fetch(context.Background(), server.URL, requestHeaders)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)

	assert.Equal(t, "Bearer testtoken", receivedHeaders["Authorization"])
	assert.Equal(t, "testvalue", receivedHeaders["X-Custom"])
}

func testHTTPFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(nil)
	defer fetcher.Release()

	// a response with a non-success status code is not a transport failure
	result, err := fetcher.Fetch(context.Background(), server.URL, nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func testHTTPFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	serverURL := server.URL
	server.Close()

	fetcher := NewHTTPFetcher(nil)
	defer fetcher.Release()

	result, err := fetcher.Fetch(context.Background(), serverURL, nil)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func testDummyFetch(t *testing.T) {
	fetcher := NewDummyFetcher()
	defer fetcher.Release()

	testBody := []byte("test image bytes")
	fetcher.AddDummyResult("http://example.com/image1.png", http.StatusOK, testBody)

	result, err := fetcher.Fetch(context.Background(), "http://example.com/image1.png", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, testBody, result.Body)

	// urls without a canned result respond with 404
	result, err = fetcher.Fetch(context.Background(), "http://example.com/unknown.png", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func testDummyFetchFailure(t *testing.T) {
	fetcher := NewDummyFetcher()
	defer fetcher.Release()

	fetcher.AddDummyFailure("http://example.com/broken.png", xerrors.Errorf("failed to connect to the host"))

	result, err := fetcher.Fetch(context.Background(), "http://example.com/broken.png", nil)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func testDummyFetchCount(t *testing.T) {
	fetcher := NewDummyFetcher()
	defer fetcher.Release()

	fetcher.AddDummyResult("http://example.com/image1.png", http.StatusOK, []byte("content1"))
	fetcher.AddDummyResult("http://example.com/image2.png", http.StatusOK, []byte("content2"))

	assert.Equal(t, 0, fetcher.GetTotalFetchCount())

	for i := 0; i < 3; i++ {
		_, err := fetcher.Fetch(context.Background(), "http://example.com/image1.png", nil)
		assert.NoError(t, err)
	}

	_, err := fetcher.Fetch(context.Background(), "http://example.com/image2.png", nil)
	assert.NoError(t, err)

	assert.Equal(t, 3, fetcher.GetFetchCount("http://example.com/image1.png"))
	assert.Equal(t, 1, fetcher.GetFetchCount("http://example.com/image2.png"))
	assert.Equal(t, 0, fetcher.GetFetchCount("http://example.com/unknown.png"))
	assert.Equal(t, 4, fetcher.GetTotalFetchCount())
}

func testBadStatusError(t *testing.T) {
	err := NewBadStatusError("http://example.com/missing.png", http.StatusNotFound)
	assert.Error(t, err)

	// the message must name the url and the status code
	assert.Contains(t, err.Error(), "http://example.com/missing.png")
	assert.Contains(t, err.Error(), "404")

	assert.True(t, IsBadStatusError(err))
	assert.False(t, IsBadStatusError(xerrors.Errorf("failed to connect to the host")))

	wrapped := xerrors.Errorf("failed to load image: %w", err)
	assert.True(t, IsBadStatusError(wrapped))
}
