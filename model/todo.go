package model

// Todo is a single work item. Order is a display hint owned by clients and
// carries no meaning on the server.
type Todo struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string `gorm:"type:text;not null" json:"title"`
	Completed bool   `gorm:"not null" json:"completed"`
	Order     int    `gorm:"column:order;not null" json:"order"`
}

// TableName specifies the table name for Todo
func (Todo) TableName() string {
	return "todos"
}
