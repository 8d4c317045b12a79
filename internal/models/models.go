package models

import (
	"time"

	"gorm.io/gorm"

	"union-site-backend/pkg/utils"
)

type Member struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName string `gorm:"not null" json:"full_name"`
	Role     string `json:"role"`
	PhotoURL string `json:"photo_url"`
	Email    string `json:"email"`
	VKLink   string `json:"vk_link"`

	Order int `gorm:"default:0" json:"order"`
}

type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `gorm:"uniqueIndex;not null" json:"name"`

	News []News `gorm:"many2many:news_tags;" json:"news,omitempty"`
}

type News struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title     string    `gorm:"not null" json:"title"`
	Summary   string    `json:"summary"`
	CoverURL  string    `json:"cover_url"`
	Published bool      `gorm:"default:true" json:"published"`
	Content   BlockList `gorm:"type:jsonb" json:"content"`

	AuthorID *uint   `json:"author_id,omitempty"`
	Author   *Member `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Tags []Tag `gorm:"many2many:news_tags;" json:"tags,omitempty"`
}

// Link is the encoded identity detail routes carry: "<id>-<slug>".
func (n News) Link() string {
	return utils.DetailLink(n.ID, n.Title)
}

type Event struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title    string     `gorm:"not null" json:"title"`
	Summary  string     `json:"summary"`
	CoverURL string     `json:"cover_url"`
	Location string     `json:"location"`
	StartsAt *time.Time `gorm:"index" json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`

	RegistrationOpen bool      `gorm:"default:false" json:"registration_open"`
	Content          BlockList `gorm:"type:jsonb" json:"content"`

	AuthorID *uint   `json:"author_id,omitempty"`
	Author   *Member `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Registrations []Registration `gorm:"foreignKey:EventID" json:"registrations,omitempty"`
}

func (e Event) Link() string {
	return utils.DetailLink(e.ID, e.Title)
}

type JournalIssue struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string     `gorm:"not null" json:"title"`
	Number      int        `gorm:"index" json:"number"`
	Description string     `json:"description"`
	CoverURL    string     `json:"cover_url"`
	FileURL     string     `json:"file_url"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type Registration struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	EventID uint   `gorm:"not null;index" json:"event_id"`
	Event   *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`

	FullName string `gorm:"not null" json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Group    string `json:"group"`
	Status   string `gorm:"default:'pending'" json:"status"`
	Note     string `json:"note"`
}

type Contact struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `gorm:"type:text" json:"message"`
}

// User is the account record owned by the BaaS auth service.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// Session is the authenticated state held for the lifetime of a sign-in.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != "" && time.Now().Before(s.ExpiresAt)
}
