package model

// swagger:model TrainingCourse
type TrainingCourse struct {
	BaseModel
	CourseName string        `gorm:"size:255;not null" json:"courseName"`
	CourseDesc string        `gorm:"type:text" json:"courseDesc"`
	EstMinutes int           `json:"estMinutes"`
	Pages      []ContentPage `gorm:"foreignKey:TrainingID" json:"pages,omitempty"`
}

func (TrainingCourse) TableName() string {
	return "training_courses"
}
