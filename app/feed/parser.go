package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"strconv"

	"github.com/mmcdole/gofeed"
)

// Placeholder strings for source fields that are absent.
const (
	NoTitle       = "(no title)"
	NoLink        = "(no link)"
	NoDescription = "(no description)"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses raw feed data into a normalized document.
func (p *Parser) Run(data []byte) (*Document, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	doc := &Document{
		Title:       cmp.Or(parsed.Title, NoTitle),
		Link:        cmp.Or(parsed.Link, NoLink),
		Description: cmp.Or(parsed.Description, NoDescription),
	}

	doc.Entries = make([]Item, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		doc.Entries = append(doc.Entries, p.normalizeItem(item))
	}

	return doc, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Item {
	// Identity: declared id, else link, else title. Stable across
	// fetches for the same logical item.
	normalized := Item{
		GUID:        cmp.Or(item.GUID, item.Link, item.Title),
		Title:       cmp.Or(item.Title, NoTitle),
		Link:        cmp.Or(item.Link, NoLink),
		Description: cmp.Or(item.Description, NoDescription),
	}

	if item.PublishedParsed != nil {
		normalized.UpdatedAt = item.PublishedParsed.Unix()
	} else if item.UpdatedParsed != nil {
		normalized.UpdatedAt = item.UpdatedParsed.Unix()
	}

	// Extract first enclosure if available (RSS 2.0 spec allows only one per item)
	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
		enclosure := item.Enclosures[0]
		normalized.EnclosureURL = enclosure.URL
		normalized.EnclosureType = enclosure.Type

		if enclosure.Length != "" {
			if length, err := strconv.ParseInt(enclosure.Length, 10, 64); err == nil {
				normalized.EnclosureLength = length
			}
		}
	}

	return normalized
}
