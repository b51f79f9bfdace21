package models

// Reaction is an emoji response to a confession. Rows are append-only: a
// reaction is never updated after creation and only disappears together with
// its confession.
type Reaction struct {
	BaseModel
	Emoji string `gorm:"not null" json:"emoji"`

	ConfessionID string               `gorm:"type:uuid;not null;index" json:"confession_id"`
	Confession   *AnonymousConfession `gorm:"foreignKey:ConfessionID;constraint:OnDelete:CASCADE" json:"-"`

	// Reacting user, nullable: anonymous reactions carry no user, and deleting
	// the user nulls the reference instead of removing the reaction.
	UserID *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
}
