package models

type Location struct {
	ID                  int     `json:"id" db:"id"`
	Code                string  `json:"code" db:"code"`
	Name                string  `json:"name" db:"name"`
	Active              bool    `json:"active" db:"active"`
	ResponsiblePersonID *int    `json:"responsible_person_id,omitempty" db:"responsible_person_id"`
	Details             *string `json:"details,omitempty" db:"details"`
}

func (l *Location) CreateLogView() ActivityLog {
	return ActivityLog{
		TargetID:   l.ID,
		TargetType: "location",
	}
}
