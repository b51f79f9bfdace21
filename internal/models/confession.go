package models

// AnonymousConfession is a confession post. The author reference is optional:
// a confession posted without an account (or with attribution switched off)
// carries no user at all.
type AnonymousConfession struct {
	BaseModel
	Message string `gorm:"type:text;not null" json:"message"`

	// Author, nullable. Deleting the user keeps the confession and nulls the
	// reference.
	UserID *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`

	Reactions []Reaction `gorm:"foreignKey:ConfessionID" json:"reactions,omitempty"`
}
