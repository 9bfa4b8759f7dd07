package entity

type Skill struct {
	Base

	Name        string `gorm:"unique"`
	Description string
}
