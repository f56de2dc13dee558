package models

// Person represents a household member.
// People are immutable once created; obligations reference them by ID.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string `json:"id"`

	// Name is the display name of the person.
	Name string `json:"name"`

	// Color is a UI color tag (e.g. "#4f9da6"). Presentation only.
	Color string `json:"color"`

	// CreatedAt is the Unix timestamp when the person was created.
	CreatedAt int64 `json:"created_at"`
}
