package catalog

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/partsight/backend/internal/domain"
)

// Catalog pages render article attributes as label/value pairs. Labels are
// matched case-insensitively by substring because the catalog mixes English
// and German labels across product categories.
var attributeLabels = []struct {
	needle string
	assign func(*domain.ProductRecord, string)
}{
	{"alternative", func(r *domain.ProductRecord, v string) { r.AlternateID = v }},
	{"weight", func(r *domain.ProductRecord, v string) { r.WeightText = v }},
	{"gewicht", func(r *domain.ProductRecord, v string) { r.WeightText = v }},
	{"dimension", func(r *domain.ProductRecord, v string) { r.DimensionText = v }},
	{"abmessung", func(r *domain.ProductRecord, v string) { r.DimensionText = v }},
	{"material class", func(r *domain.ProductRecord, v string) { r.MaterialClass = v }},
	{"werkstoffklass", func(r *domain.ProductRecord, v string) { r.MaterialClass = v }},
	{"material", func(r *domain.ProductRecord, v string) { r.MaterialText = v }},
	{"werkstoff", func(r *domain.ProductRecord, v string) { r.MaterialText = v }},
}

// parseProductPage maps one catalog HTML page to a ProductRecord. Missing
// attributes stay empty; downstream comparison treats them as absent rather
// than failing the fetch.
func parseProductPage(key domain.ProductKey, url string, body io.Reader) (*domain.ProductRecord, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, err
	}

	record := &domain.ProductRecord{
		Key: key,
		URL: url,
	}

	record.Title = strings.TrimSpace(doc.Find("h1.product-title").First().Text())
	if record.Title == "" {
		record.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find(".product-attributes tr, dl.product-details > div").Each(func(_ int, row *goquery.Selection) {
		label := strings.TrimSpace(row.Find("th, dt").First().Text())
		value := strings.TrimSpace(row.Find("td, dd").First().Text())
		if label == "" || value == "" {
			return
		}
		assignAttribute(record, label, value)
	})

	return record, nil
}

// assignAttribute maps a label/value pair onto the record. First matching
// label wins, so "material class" is listed before the bare "material"
// substring it contains.
func assignAttribute(record *domain.ProductRecord, label, value string) {
	lower := strings.ToLower(label)
	for _, attr := range attributeLabels {
		if strings.Contains(lower, attr.needle) {
			attr.assign(record, value)
			return
		}
	}
}
