package models

// User represents an account owner. Links, categories, collections and
// refresh tokens all hang off a user and are removed with it.
type User struct {
	BaseModel
	Name     string `json:"name" gorm:"not null;size:100" validate:"required,min=2,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	Password string `json:"-" gorm:"not null;size:100"`

	Links         []Link         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Categories    []Category     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Collections   []Collection   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	RefreshTokens []RefreshToken `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
