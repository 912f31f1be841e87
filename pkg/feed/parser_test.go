package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Fetch(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Test Feed</title>
	<link>http://example.com</link>
	<description>Test Description</description>
	<item>
		<title>Test Article 1</title>
		<link>http://example.com/article1</link>
		<description><![CDATA[<p>Article 1 description</p>]]></description>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
	</item>
	<item>
		<title>Test Article 2</title>
		<link>http://example.com/article2</link>
		<description>Article 2 description</description>
	</item>
	<item>
		<title>Test Article 3</title>
		<link>http://example.com/article3</link>
	</item>
</channel>
</rss>`

	var gotUA, gotAccept, gotCache string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotCache = r.Header.Get("Cache-Control")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssContent))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "TestAgent/1.0")
	items, err := parser.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "TestAgent/1.0", gotUA)
	assert.Equal(t, feedAccept, gotAccept)
	assert.NotContains(t, gotAccept, "text/html")
	assert.Equal(t, "no-cache", gotCache)

	// order is kept as published by the feed
	assert.Equal(t, "Test Article 1", items[0].Title)
	assert.Equal(t, "http://example.com/article1", items[0].Link)
	assert.Equal(t, "<p>Article 1 description</p>", items[0].Summary)

	assert.Equal(t, "Test Article 2", items[1].Title)
	assert.Equal(t, "Article 2 description", items[1].Summary)

	assert.Equal(t, "Test Article 3", items[2].Title)
	assert.Empty(t, items[2].Summary)
}

func TestParser_Fetch_AtomFeed(t *testing.T) {
	atomContent := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Test Atom Feed</title>
	<link href="http://example.com"/>
	<entry>
		<title>Atom Entry 1</title>
		<link href="http://example.com/entry1"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<summary>Entry 1 summary</summary>
	</entry>
	<entry>
		<title>Atom Entry 2</title>
		<link href="http://example.com/entry2"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6b</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<content type="html">&lt;p&gt;Entry 2 content&lt;/p&gt;</content>
	</entry>
</feed>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(atomContent))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "")
	items, err := parser.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Atom Entry 1", items[0].Title)
	assert.Equal(t, "http://example.com/entry1", items[0].Link)
	assert.Equal(t, "Entry 1 summary", items[0].Summary)

	// no summary, falls back to content
	assert.Equal(t, "Atom Entry 2", items[1].Title)
	assert.Equal(t, "<p>Entry 2 content</p>", items[1].Summary)
}

func TestParser_Fetch_Errors(t *testing.T) {
	t.Run("HTTP error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		parser := NewParser(5*time.Second, "")
		items, err := parser.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Nil(t, items)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
	})

	t.Run("Invalid XML", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not xml"))
		}))
		defer server.Close()

		parser := NewParser(5*time.Second, "")
		_, err := parser.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("Timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte("too late"))
		}))
		defer server.Close()

		parser := NewParser(50*time.Millisecond, "")
		_, err := parser.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("Context canceled", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		parser := NewParser(5*time.Second, "")
		_, err := parser.Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "context deadline exceeded")
	})

	t.Run("Invalid URL", func(t *testing.T) {
		parser := NewParser(5*time.Second, "")
		_, err := parser.Fetch(context.Background(), "not-a-url")
		require.Error(t, err)
	})
}

func TestParser_Fetch_EmptyFeed(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Empty Feed</title>
</channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssContent))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "")
	items, err := parser.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, items)
}
