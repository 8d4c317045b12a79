package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Block is one typed unit of article or event body content. Data carries the
// type-specific attributes; position in the enclosing list is the only thing
// that determines render order.
type Block struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// BlockList is the ordered block sequence persisted as an entity's content.
type BlockList []Block

func (bl *BlockList) Scan(value interface{}) error {
	if value == nil {
		*bl = BlockList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan BlockList")
	}

	return json.Unmarshal(bytes, bl)
}

func (bl BlockList) Value() (driver.Value, error) {
	if len(bl) == 0 {
		return nil, nil
	}
	return json.Marshal(bl)
}

type CreateNewsRequest struct {
	Title    string    `json:"title" binding:"required"`
	Summary  string    `json:"summary"`
	CoverURL string    `json:"cover_url"`
	Content  BlockList `json:"content"`
	AuthorID *uint     `json:"author_id"`
	TagNames []string  `json:"tags"`
}

type UpdateNewsRequest struct {
	Title    *string    `json:"title"`
	Summary  *string    `json:"summary"`
	CoverURL *string    `json:"cover_url"`
	Content  *BlockList `json:"content"`
	AuthorID *uint      `json:"author_id"`
	TagNames []string   `json:"tags"`
}

type CreateEventRequest struct {
	Title            string    `json:"title" binding:"required"`
	Summary          string    `json:"summary"`
	CoverURL         string    `json:"cover_url"`
	Location         string    `json:"location"`
	StartsAt         string    `json:"starts_at"`
	EndsAt           string    `json:"ends_at"`
	RegistrationOpen bool      `json:"registration_open"`
	Content          BlockList `json:"content"`
	AuthorID         *uint     `json:"author_id"`
}

type UpdateEventRequest struct {
	Title            *string    `json:"title"`
	Summary          *string    `json:"summary"`
	CoverURL         *string    `json:"cover_url"`
	Location         *string    `json:"location"`
	StartsAt         *string    `json:"starts_at"`
	EndsAt           *string    `json:"ends_at"`
	RegistrationOpen *bool      `json:"registration_open"`
	Content          *BlockList `json:"content"`
	AuthorID         *uint      `json:"author_id"`
}

type CreateJournalIssueRequest struct {
	Title       string `json:"title" binding:"required"`
	Number      int    `json:"number"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url"`
	FileURL     string `json:"file_url"`
}

type CreateRegistrationRequest struct {
	EventID  uint   `json:"event_id" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Group    string `json:"group"`
}

type UpdateRegistrationRequest struct {
	Status *string `json:"status"`
	Note   *string `json:"note"`
}

type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}
