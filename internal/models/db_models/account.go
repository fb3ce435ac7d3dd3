package db_models

type Account struct {
	BaseModel
	StageName    string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string `gorm:"default:'performer'"`
}
