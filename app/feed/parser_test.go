package feed

import (
	"testing"
	"time"
)

func TestParseRSS2(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>Test Item 1</title>
      <link>https://example.com/item1</link>
      <description>Test Item 1 Description</description>
      <guid>item-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Test Item 2</title>
      <link>https://example.com/item2</link>
      <description>Test Item 2 Description</description>
      <guid>item-2</guid>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	doc, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if doc.Title != "Test Feed" {
		t.Errorf("Expected title 'Test Feed', got: %s", doc.Title)
	}
	if doc.Link != "https://example.com" {
		t.Errorf("Expected link 'https://example.com', got: %s", doc.Link)
	}
	if doc.Description != "Test Description" {
		t.Errorf("Expected description 'Test Description', got: %s", doc.Description)
	}

	if len(doc.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(doc.Entries))
	}

	item1 := doc.Entries[0]
	if item1.GUID != "item-1" {
		t.Errorf("Expected GUID 'item-1', got: %s", item1.GUID)
	}
	if item1.Title != "Test Item 1" {
		t.Errorf("Expected title 'Test Item 1', got: %s", item1.Title)
	}

	wantUpdated := time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC).Unix()
	if item1.UpdatedAt != wantUpdated {
		t.Errorf("Expected updated %d, got: %d", wantUpdated, item1.UpdatedAt)
	}

	item2 := doc.Entries[1]
	if item2.UpdatedAt != 0 {
		t.Errorf("Expected zero updated for item without pubDate, got: %d", item2.UpdatedAt)
	}
}

func TestParseGUIDFallback(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>Linked Item</title>
      <link>https://example.com/item1</link>
    </item>
    <item>
      <title>Title Only Item</title>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	doc, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(doc.Entries))
	}

	if doc.Entries[0].GUID != "https://example.com/item1" {
		t.Errorf("Expected GUID to fall back to link, got: %s", doc.Entries[0].GUID)
	}
	if doc.Entries[1].GUID != "Title Only Item" {
		t.Errorf("Expected GUID to fall back to title, got: %s", doc.Entries[1].GUID)
	}
}

func TestParsePlaceholders(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <guid>item-1</guid>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	doc, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if doc.Link != NoLink {
		t.Errorf("Expected link placeholder, got: %s", doc.Link)
	}
	if doc.Description != NoDescription {
		t.Errorf("Expected description placeholder, got: %s", doc.Description)
	}

	if len(doc.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got: %d", len(doc.Entries))
	}

	item := doc.Entries[0]
	if item.Title != NoTitle {
		t.Errorf("Expected title placeholder, got: %s", item.Title)
	}
	if item.Link != NoLink {
		t.Errorf("Expected link placeholder, got: %s", item.Link)
	}
	if item.Description != NoDescription {
		t.Errorf("Expected description placeholder, got: %s", item.Description)
	}
}

func TestParseEnclosures(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Podcast Feed</title>
    <item>
      <guid>episode-1</guid>
      <title>Episode 1</title>
      <enclosure url="https://example.com/ep1.mp3" length="12345678" type="audio/mpeg"/>
      <enclosure url="https://example.com/ep1.ogg" length="99" type="audio/ogg"/>
    </item>
    <item>
      <guid>episode-2</guid>
      <title>Episode 2</title>
      <enclosure url="https://example.com/ep2.mp3" length="not-a-number" type="audio/mpeg"/>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	doc, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(doc.Entries))
	}

	item1 := doc.Entries[0]
	if item1.EnclosureURL != "https://example.com/ep1.mp3" {
		t.Errorf("Expected first enclosure to win, got: %s", item1.EnclosureURL)
	}
	if item1.EnclosureLength != 12345678 {
		t.Errorf("Expected enclosure length 12345678, got: %d", item1.EnclosureLength)
	}
	if item1.EnclosureType != "audio/mpeg" {
		t.Errorf("Expected enclosure type 'audio/mpeg', got: %s", item1.EnclosureType)
	}

	item2 := doc.Entries[1]
	if item2.EnclosureLength != 0 {
		t.Errorf("Expected zero length for unparsable value, got: %d", item2.EnclosureLength)
	}
}

func TestParseAtom(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <link href="https://example.com/"/>
  <updated>2023-07-03T12:00:00Z</updated>
  <entry>
    <id>urn:uuid:entry-1</id>
    <title>Atom Entry</title>
    <link href="https://example.com/entry1"/>
    <updated>2023-07-03T11:00:00Z</updated>
    <summary>Atom entry summary</summary>
  </entry>
</feed>`

	parser := NewParser()
	doc, err := parser.Run([]byte(atomData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if doc.Title != "Atom Feed" {
		t.Errorf("Expected title 'Atom Feed', got: %s", doc.Title)
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got: %d", len(doc.Entries))
	}

	item := doc.Entries[0]
	if item.GUID != "urn:uuid:entry-1" {
		t.Errorf("Expected GUID 'urn:uuid:entry-1', got: %s", item.GUID)
	}

	wantUpdated := time.Date(2023, 7, 3, 11, 0, 0, 0, time.UTC).Unix()
	if item.UpdatedAt != wantUpdated {
		t.Errorf("Expected updated %d, got: %d", wantUpdated, item.UpdatedAt)
	}
}

func TestParseInvalidData(t *testing.T) {
	parser := NewParser()
	_, err := parser.Run([]byte("not a feed"))

	if err == nil {
		t.Fatal("Expected an error for invalid data")
	}
}
