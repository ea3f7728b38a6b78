package models

// Account roles stored on User rows.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. Every row with role "user" is a donor entry;
// Availability controls whether it shows up in directory search.
type User struct {
	BaseModel
	FullName     string `json:"full_name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	Phone        string `gorm:"uniqueIndex" json:"phone"`
	Whatsapp     string `json:"whatsapp,omitempty"`
	Country      string `json:"country"`
	State        string `json:"state"`
	District     string `json:"district,omitempty"`
	City         string `json:"city,omitempty"`
	BloodGroup   string `json:"blood_group"`
	PasswordHash string `json:"-"`
	// No column default: a default would silently overwrite an explicit
	// false on insert, since gorm omits zero-valued fields from Create.
	Availability bool   `json:"availability"`
	Role         string `gorm:"default:user" json:"role"`
}

// Admin is a moderator account. Admins live in their own table and their
// tokens are signed in a separate realm from user tokens.
type Admin struct {
	BaseModel
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"default:admin" json:"role"`
}
