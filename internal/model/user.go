package model

const DefaultProfilePic = "https://placehold.co/150x150/cccccc/ffffff?text=Profile"

// swagger:model User
type User struct {
	UUIDBase
	Username             string     `gorm:"size:30;uniqueIndex;not null" json:"username"`
	ProfileName          string     `gorm:"size:50;not null" json:"profileName"`
	Bio                  string     `gorm:"size:500" json:"bio"`
	Country              string     `gorm:"size:50;not null" json:"country"`
	ProfilePic           string     `gorm:"size:512" json:"profilePic"`
	SwipeImages          StringList `gorm:"type:text" json:"swipeImages"`
	InstagramUsername    string     `gorm:"size:100" json:"instagramUsername"`
	InstagramProfileLink string     `gorm:"size:255" json:"instagramProfileLink"`
	Password             string     `gorm:"size:100;not null" json:"-"`
	IsVerified           bool       `gorm:"default:false" json:"isVerified"`
}

func (User) TableName() string {
	return "users"
}
