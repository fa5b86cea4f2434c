package model

// Counterは連番の発番元。typeごとに1行、valueは単調増加。
type Counter struct {
	Type  string `gorm:"primaryKey;type:varchar(50)" json:"type"`
	Value int64  `gorm:"not null" json:"value"`
}
