package api

import "feedbox/app/database"

type feedResponse struct {
	ID          int64  `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Priority    int    `json:"priority"`
	RefreshedAt int64  `json:"refreshed_at"`
	UpdatedAt   int64  `json:"updated_at"`
	IsActive    bool   `json:"is_active"`
}

type entryResponse struct {
	ID              int64   `json:"id"`
	FeedID          int64   `json:"feed_id"`
	GUID            string  `json:"guid"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Link            string  `json:"link"`
	RefreshedAt     int64   `json:"refreshed_at"`
	UpdatedAt       int64   `json:"updated_at"`
	EnclosureURL    string  `json:"enclosure_url,omitempty"`
	EnclosureLength int64   `json:"enclosure_length,omitempty"`
	EnclosureType   string  `json:"enclosure_type,omitempty"`
	Progress        float64 `json:"progress"`
	IsImportant     bool    `json:"is_important"`
}

type categoryResponse struct {
	Name   string `json:"name"`
	Unread int    `json:"unread"`
}

func toFeedResponse(f database.Feed) feedResponse {
	return feedResponse{
		ID:          f.ID,
		URL:         f.URL,
		Title:       f.Title,
		Description: f.Description,
		Link:        f.Link,
		Category:    f.Category,
		Priority:    f.Priority,
		RefreshedAt: f.RefreshedAt,
		UpdatedAt:   f.UpdatedAt,
		IsActive:    f.IsActive,
	}
}

func toEntryResponse(e database.Entry) entryResponse {
	return entryResponse{
		ID:              e.ID,
		FeedID:          e.FeedID,
		GUID:            e.GUID,
		Title:           e.Title,
		Description:     e.Description,
		Link:            e.Link,
		RefreshedAt:     e.RefreshedAt,
		UpdatedAt:       e.UpdatedAt,
		EnclosureURL:    e.EnclosureURL,
		EnclosureLength: e.EnclosureLength,
		EnclosureType:   e.EnclosureType,
		Progress:        e.Progress,
		IsImportant:     e.IsImportant,
	}
}
