package domain

import "time"

// LocalizedText holds one rich-text value per locale, e.g. {"en": "...", "de": "..."}.
type LocalizedText map[string]string

// LocalizedField is one named rich-text field of an entity. The name is the
// stable identifier used to pair old and new values when diffing an update.
type LocalizedField struct {
	Name   string
	Values LocalizedText
}

type Kind string

const (
	KindPage   Kind = "page"
	KindFaq    Kind = "faq"
	KindPost   Kind = "post"
	KindEvent  Kind = "event"
	KindNotice Kind = "notice"
)

// Entity is implemented by every content kind. ContentFields exposes every
// rich-text field (live and draft) so image cleanup never depends on
// per-kind field lists scattered across handlers.
type Entity interface {
	EntityID() string
	SetEntityID(id string)
	EntityKind() Kind
	ContentFields() []LocalizedField
}

type Page struct {
	ID        string        `json:"id"`
	Slug      string        `json:"slug" validate:"required"`
	Title     LocalizedText `json:"title" validate:"required"`
	Body      LocalizedText `json:"body"`
	DraftBody LocalizedText `json:"draftBody"`
	Published bool          `json:"published"`
	CreatedAt time.Time     `json:"createdAt,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt,omitempty"`
}

func (p *Page) EntityID() string      { return p.ID }
func (p *Page) SetEntityID(id string) { p.ID = id }
func (p *Page) EntityKind() Kind      { return KindPage }
func (p *Page) ContentFields() []LocalizedField {
	return []LocalizedField{
		{Name: "body", Values: p.Body},
		{Name: "draftBody", Values: p.DraftBody},
	}
}

type Faq struct {
	ID          string        `json:"id"`
	Category    string        `json:"category"`
	Question    LocalizedText `json:"question" validate:"required"`
	Answer      LocalizedText `json:"answer"`
	DraftAnswer LocalizedText `json:"draftAnswer"`
	Position    int           `json:"position"`
	CreatedAt   time.Time     `json:"createdAt,omitempty"`
	UpdatedAt   time.Time     `json:"updatedAt,omitempty"`
}

func (f *Faq) EntityID() string      { return f.ID }
func (f *Faq) SetEntityID(id string) { f.ID = id }
func (f *Faq) EntityKind() Kind      { return KindFaq }
func (f *Faq) ContentFields() []LocalizedField {
	return []LocalizedField{
		{Name: "answer", Values: f.Answer},
		{Name: "draftAnswer", Values: f.DraftAnswer},
	}
}

type Post struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug" validate:"required"`
	Title       LocalizedText `json:"title" validate:"required"`
	Body        LocalizedText `json:"body"`
	DraftBody   LocalizedText `json:"draftBody"`
	Tags        []string      `json:"tags"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt,omitempty"`
	UpdatedAt   time.Time     `json:"updatedAt,omitempty"`
}

func (p *Post) EntityID() string      { return p.ID }
func (p *Post) SetEntityID(id string) { p.ID = id }
func (p *Post) EntityKind() Kind      { return KindPost }
func (p *Post) ContentFields() []LocalizedField {
	return []LocalizedField{
		{Name: "body", Values: p.Body},
		{Name: "draftBody", Values: p.DraftBody},
	}
}

type Event struct {
	ID          string        `json:"id"`
	Title       LocalizedText `json:"title" validate:"required"`
	Description LocalizedText `json:"description"`
	Location    string        `json:"location"`
	StartsAt    time.Time     `json:"startsAt"`
	EndsAt      time.Time     `json:"endsAt"`
	CreatedAt   time.Time     `json:"createdAt,omitempty"`
	UpdatedAt   time.Time     `json:"updatedAt,omitempty"`
}

func (e *Event) EntityID() string      { return e.ID }
func (e *Event) SetEntityID(id string) { e.ID = id }
func (e *Event) EntityKind() Kind      { return KindEvent }
func (e *Event) ContentFields() []LocalizedField {
	return []LocalizedField{
		{Name: "description", Values: e.Description},
	}
}

type Notice struct {
	ID        string        `json:"id"`
	Title     LocalizedText `json:"title" validate:"required"`
	Body      LocalizedText `json:"body"`
	Pinned    bool          `json:"pinned"`
	CreatedAt time.Time     `json:"createdAt,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt,omitempty"`
}

func (n *Notice) EntityID() string      { return n.ID }
func (n *Notice) SetEntityID(id string) { n.ID = id }
func (n *Notice) EntityKind() Kind      { return KindNotice }
func (n *Notice) ContentFields() []LocalizedField {
	return []LocalizedField{
		{Name: "body", Values: n.Body},
	}
}

// NewEntity returns the zero value for a kind, or nil for an unknown kind.
func NewEntity(kind Kind) Entity {
	switch kind {
	case KindPage:
		return &Page{}
	case KindFaq:
		return &Faq{}
	case KindPost:
		return &Post{}
	case KindEvent:
		return &Event{}
	case KindNotice:
		return &Notice{}
	default:
		return nil
	}
}
