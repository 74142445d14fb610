package model

// UserLevel 用户等级：1-普通/家庭用户 2-雇员 3-雇主 4-管理员
type UserLevel int

const (
	LevelOther    UserLevel = 1
	LevelEmployee UserLevel = 2
	LevelEmployer UserLevel = 3
	LevelAdmin    UserLevel = 4

	// LevelAll 通配符，表示不按等级过滤
	LevelAll UserLevel = 0
)

// ValidLevel reports whether l is one of the four assignable user levels.
func ValidLevel(l UserLevel) bool {
	return l >= LevelOther && l <= LevelAdmin
}

// ParseUserType maps the user-facing type string to a numeric level.
// "All" maps to the LevelAll wildcard; ok is false for any other string.
func ParseUserType(userType string) (UserLevel, bool) {
	switch userType {
	case "FamilyUser", "OtherUser":
		return LevelOther, true
	case "Employee":
		return LevelEmployee, true
	case "Employer":
		return LevelEmployer, true
	case "Admin":
		return LevelAdmin, true
	case "All":
		return LevelAll, true
	default:
		return 0, false
	}
}

// swagger:model User
type User struct {
	BaseModel
	UserName   string    `gorm:"size:100;unique;not null" json:"userName"`
	FirstName  string    `gorm:"size:100" json:"firstName"`
	LastName   string    `gorm:"size:100" json:"lastName"`
	Email      string    `gorm:"size:100" json:"email"`
	PwHash     string    `gorm:"size:100" json:"-"`
	Phone      string    `gorm:"size:20" json:"phone"`
	StreetAddr string    `gorm:"size:255" json:"streetAddr"`
	City       string    `gorm:"size:100" json:"city"`
	County     string    `gorm:"size:100" json:"county"`
	State      string    `gorm:"size:50" json:"state"`
	Zipcode    string    `gorm:"size:10" json:"zipcode"`
	Company    string    `gorm:"size:100" json:"company"`
	Supervisor string    `gorm:"size:100" json:"supervisor"`
	UserLevel  UserLevel `gorm:"default:1" json:"userLevel"`
}

func (User) TableName() string {
	return "users"
}
