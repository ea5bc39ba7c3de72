package course

// Course catalog discriminators
const (
	TypeInPerson   = "IN_PERSON"
	TypeOnlineLive = "ONLINE_LIVE"
	TypeSelfPaced  = "SELF_PACED"
)

// Course lifecycle
const (
	CourseStatusDraft    = "DRAFT"
	CourseStatusActive   = "ACTIVE"
	CourseStatusInactive = "INACTIVE"
)

// Enrollment status values
const (
	StatusWishlist   = "WISHLIST"
	StatusCart       = "CART"
	StatusPaid       = "PAID"
	StatusRegistered = "REGISTERED"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Progress status values on an enrollment
const (
	ProgressInProgress = "IN_PROGRESS"
	ProgressCompleted  = "COMPLETED"
)

// IsValidType reports whether t names one of the three course catalogs
func IsValidType(t string) bool {
	return t == TypeInPerson || t == TypeOnlineLive || t == TypeSelfPaced
}
