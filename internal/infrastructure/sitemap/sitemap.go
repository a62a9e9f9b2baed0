// Package sitemap arma el sitemap.xml de las páginas públicas.
package sitemap

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Entry una URL pública.
type Entry struct {
	Path       string
	ChangeFreq string // daily, weekly, monthly
	Priority   float64
}

// Build devuelve el documento XML con baseURL + Path por entrada.
func Build(baseURL string, lastMod time.Time, entries []Entry) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNS)

	base := strings.TrimRight(baseURL, "/")
	for _, e := range entries {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(base + e.Path)
		u.CreateElement("lastmod").SetText(lastMod.Format("2006-01-02"))
		if e.ChangeFreq != "" {
			u.CreateElement("changefreq").SetText(e.ChangeFreq)
		}
		if e.Priority > 0 {
			u.CreateElement("priority").SetText(fmt.Sprintf("%.1f", e.Priority))
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("sitemap: serializar: %w", err)
	}
	return out, nil
}
