package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source provides the raw event document
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// NewSource returns an HTTP source for http(s) URLs and a file source
// for everything else
func NewSource(location string, timeout time.Duration, userAgent string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{
			URL:       location,
			UserAgent: userAgent,
			Client:    NewHTTPClient(timeout),
		}
	}
	return &FileSource{Path: location}
}

// NewHTTPClient returns a client with bounded dial and handshake times
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// HTTPSource fetches the event document with a single GET
type HTTPSource struct {
	URL       string
	UserAgent string
	Client    *http.Client
}

func (s *HTTPSource) String() string { return s.URL }

// Fetch performs the GET. Any non-2xx status is a FetchError.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &FetchError{Source: s.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: s.URL, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Error closing response body: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Source: s.URL, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: s.URL, Err: err}
	}
	return data, nil
}

// FileSource reads the event document from disk
type FileSource struct {
	Path string
}

func (s *FileSource) String() string { return s.Path }

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Source: s.Path, Err: err}
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return nil, &FetchError{Source: s.Path, Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Error closing events file: %v", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &FetchError{Source: s.Path, Err: err}
	}
	return data, nil
}

// LoadEvents fetches and validates the event document into a store
func LoadEvents(ctx context.Context, src Source) (*EventStore, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	events, err := DecodeEvents(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}
	return NewEventStore(events), nil
}
