package models

// Hospital represents a clinical site a rotation can be placed at.
// Reference data: this service only reads it.
type Hospital struct {
	ID      int64   `gorm:"column:id;primaryKey" json:"id"`
	Name    *string `gorm:"column:name;size:255" json:"name"`
	Address *string `gorm:"column:address;size:255" json:"address,omitempty"`
	City    *string `gorm:"column:city;size:100" json:"city,omitempty"`
	State   *string `gorm:"column:state;size:50" json:"state,omitempty"`
	Phone   *string `gorm:"column:phone;size:50" json:"phone,omitempty"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospital"
}

// Discipline is a clinical specialty (e.g. Family Medicine / FM).
type Discipline struct {
	DiscID    int64   `gorm:"column:discid;primaryKey" json:"id"`
	Name      *string `gorm:"column:name;size:255" json:"name"`
	ShortName *string `gorm:"column:shortname;size:50" json:"shortName,omitempty"`
}

func (Discipline) TableName() string {
	return "discipline"
}

// Preceptor is the supervising clinician for a rotation.
type Preceptor struct {
	ID        int64   `gorm:"column:id;primaryKey" json:"id"`
	FirstName *string `gorm:"column:firstname;size:100" json:"firstName"`
	LastName  *string `gorm:"column:lastname;size:100" json:"lastName"`
	Email     *string `gorm:"column:email;size:255" json:"email,omitempty"`
	Phone1    *string `gorm:"column:phone1;size:50" json:"phone1,omitempty"`
	Phone2    *string `gorm:"column:phone2;size:50" json:"phone2,omitempty"`
}

func (Preceptor) TableName() string {
	return "preceptor"
}
