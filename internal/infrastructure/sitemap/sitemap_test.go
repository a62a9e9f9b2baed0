package sitemap

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_URLsAbsolutas(t *testing.T) {
	out, err := Build("https://cutman.com.ar/", time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), []Entry{
		{Path: "/", ChangeFreq: "weekly", Priority: 1},
		{Path: "/login"},
	})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	urls := doc.FindElements("//url")
	require.Len(t, urls, 2)
	assert.Equal(t, "https://cutman.com.ar/", urls[0].FindElement("loc").Text())
	assert.Equal(t, "2026-04-02", urls[0].FindElement("lastmod").Text())
	assert.Equal(t, "1.0", urls[0].FindElement("priority").Text())
	assert.Nil(t, urls[1].FindElement("changefreq"))
	assert.Equal(t, "http://www.sitemaps.org/schemas/sitemap/0.9", doc.Root().SelectAttrValue("xmlns", ""))
}
