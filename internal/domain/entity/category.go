package entity

import "time"

// Category groups products. Parent is a nullable self-reference, expanded to a
// CategoryRef on reads.
type Category struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description,omitempty"`
	Image       string       `json:"image,omitempty"`
	ParentID    *string      `json:"parentId,omitempty"`
	Parent      *CategoryRef `json:"parent,omitempty"`
	IsActive    bool         `json:"isActive"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
