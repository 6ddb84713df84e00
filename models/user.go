package models

// User is the only resource the service exposes.
// It maps to the `user` table in SQLite; ID is supplied by the client.
type User struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
	Age  int64  `gorm:"column:age;not null" json:"age"`
}

// TableName matches the table name existing users.db files were created with.
func (User) TableName() string {
	return "user"
}
