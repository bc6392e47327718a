package staff

import "time"

// Roles a staff member can hold. Doctors are excluded from the daily
// rotation; every other role participates.
const (
	RoleDoctor    = "doctor"
	RoleNurse     = "nurse"
	RoleCaretaker = "caretaker"
	RoleTherapist = "therapist"
)

// Member maps to the staff table.
type Member struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Role      string    `db:"role" json:"role"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	IsOnDuty  bool      `db:"is_on_duty" json:"isOnDuty"`
	PhotoURL  *string   `db:"photo_url" json:"photoUrl,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// IsDoctor reports whether the member holds the doctor role.
func (m *Member) IsDoctor() bool { return m.Role == RoleDoctor }
